package services

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/requiem-ai/gemchat/config"
	"github.com/requiem-ai/gemchat/context"
	"github.com/requiem-ai/gemchat/render"
	"github.com/rs/zerolog/log"
)

var ErrMissingCredential = errors.New("missing credential")

func missingCredential(env string) error {
	return fmt.Errorf("%w: %s", ErrMissingCredential, env)
}

// SetupService runs first. It either checks that the Required credentials
// are present or, when Interactive, prompts for Keys and saves them to .env.
type SetupService struct {
	context.DefaultService

	Config   *config.Config
	Renderer render.Renderer
	Required []string

	Interactive bool
	Keys        []string
	EnvPath     string
	In          io.Reader
}

const SETUP_SVC = "setup_svc"

func (svc SetupService) Id() string {
	return SETUP_SVC
}

func (svc *SetupService) Configure(ctx *context.Context) error {
	if err := svc.DefaultService.Configure(ctx); err != nil {
		return err
	}

	if svc.Interactive {
		return svc.runCredentialSetup()
	}

	return svc.checkCredentials()
}

func (svc *SetupService) checkCredentials() error {
	for _, env := range svc.Required {
		if strings.TrimSpace(svc.Config.Credential(env)) != "" {
			continue
		}

		svc.Renderer.Error(fmt.Sprintf("❌ ERROR: No se encontró %s en el archivo .env", env))
		return missingCredential(env)
	}

	return nil
}

func (svc *SetupService) runCredentialSetup() error {
	in := svc.In
	if in == nil {
		in = os.Stdin
	}
	reader := bufio.NewReader(in)

	path := svc.EnvPath
	if path == "" {
		var err error
		if path, err = envFilePath(); err != nil {
			return err
		}
	}

	existing, err := godotenv.Read(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("read %s: %w", path, err)
		}
		existing = make(map[string]string)
	}

	svc.Renderer.Info("gemchat credential setup")
	svc.Renderer.Dim("Press Enter to keep the current value shown in brackets.")

	updates := make(map[string]string, len(svc.Keys))
	for _, key := range svc.Keys {
		current := existing[key]
		if current == "" && svc.Config != nil {
			current = svc.Config.Credential(key)
		}

		value, err := svc.promptWithDefault(reader, key, current)
		if err != nil {
			return err
		}
		if value == "" || value == existing[key] {
			continue
		}
		updates[key] = value
	}

	if len(updates) == 0 {
		svc.Renderer.Warn("Nothing to save.")
		return nil
	}

	for key, value := range updates {
		existing[key] = value
		_ = os.Setenv(key, value)
	}

	if err := godotenv.Write(existing, path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	log.Info().Str("path", path).Int("updated", len(updates)).Msg("credentials saved")
	svc.Renderer.Success(fmt.Sprintf("Credentials saved to %s.", path))
	return nil
}

func (svc *SetupService) promptWithDefault(reader *bufio.Reader, label, current string) (string, error) {
	if current != "" {
		svc.Renderer.Prompt(fmt.Sprintf("%s [%s]: ", label, maskSecret(current)))
	} else {
		svc.Renderer.Prompt(fmt.Sprintf("%s: ", label))
	}

	text, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return current, nil
	}

	return text, nil
}

func maskSecret(value string) string {
	if len(value) <= 4 {
		return "****"
	}
	return "****" + value[len(value)-4:]
}

func envFilePath() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	return filepath.Join(wd, ".env"), nil
}
