package main

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/requiem-ai/gemchat/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	if code := exitCode(rootCmd.Execute()); code != 0 {
		os.Exit(code)
	}
}

// exitCode maps a command error to the process status. A missing credential
// has already been shown to the user and ends the run normally.
func exitCode(err error) int {
	if err == nil || errors.Is(err, services.ErrMissingCredential) {
		return 0
	}
	return 1
}

func setupLogging() {
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	})
	zerolog.TimeFieldFormat = time.RFC3339
	logLevel := strings.ToLower(os.Getenv("LOG_LEVEL"))
	switch logLevel {
	case "trace":
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case "warn":
		fallthrough
	default:
		// chat output shares the terminal, keep it quiet unless asked
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}
	log.Debug().Str("level", zerolog.GlobalLevel().String()).Msg("Setting Log Level")
}

// loadEnv loads path into the process environment. A missing file is fine:
// credentials may already be exported. The result is logged once logging is set
// up, since LOG_LEVEL itself may come from the file.
func loadEnv(path string) func() {
	err := godotenv.Load(path)
	return func() { logEnvLoad(path, err) }
}

func logEnvLoad(path string, err error) {
	switch {
	case err == nil:
		log.Debug().Str("path", path).Msg("loaded env file")
	case errors.Is(err, fs.ErrNotExist):
		log.Debug().Str("path", path).Msg("no env file")
	default:
		log.Warn().Err(err).Str("path", path).Msg("Error loading env file")
	}
}
