package services

import (
	"bufio"
	context2 "context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/requiem-ai/gemchat/config"
	"github.com/requiem-ai/gemchat/context"
	"github.com/requiem-ai/gemchat/llm"
	"github.com/requiem-ai/gemchat/render"
	"github.com/requiem-ai/gemchat/transcript"
	"github.com/rs/zerolog/log"
)

const (
	promptLabel  = "TÚ ➜ "
	thinkingText = "Pensando..."
	farewellText = "Cerrando sesión... Hasta luego."
	errorTitle   = "❌ ERROR CRÍTICO:"
	errorHint    = "Intenta reformular tu pregunta o verifica tu cuota."
)

var exitKeywords = map[string]bool{
	"salir": true,
	"exit":  true,
	"quit":  true,
}

// SessionService is the interactive read-print loop against the chat provider.
type SessionService struct {
	context.DefaultService

	Config   *config.Config
	Renderer render.Renderer
	In       io.Reader
	Now      func() time.Time

	transcript *transcript.Transcript
	// history seeds the chat once. Later turns are tracked by the provider
	// chat itself and the transcript; nothing appends here.
	history []llm.Turn
	chat    llm.Chat
	reader  *bufio.Reader
}

const SESSION_SVC = "session_svc"

func (svc SessionService) Id() string {
	return SESSION_SVC
}

func (svc *SessionService) Configure(ctx *context.Context) error {
	if err := svc.DefaultService.Configure(ctx); err != nil {
		return err
	}

	if svc.Now == nil {
		svc.Now = time.Now
	}
	if svc.In == nil {
		svc.In = os.Stdin
	}
	svc.reader = bufio.NewReader(svc.In)
	svc.history = []llm.Turn{}

	tr, err := transcript.Open(svc.Config.TranscriptPath, svc.Now())
	if err != nil {
		return err
	}
	svc.transcript = tr

	log.Debug().Str("path", tr.Path()).Msg("transcript opened")
	return nil
}

func (svc *SessionService) Start() error {
	agent, ok := svc.Service(AGENT_SVC).(*AgentService)
	if !ok {
		return errors.New("agent service not available")
	}

	starter, err := agent.ChatStarter()
	if err != nil {
		return err
	}

	ctx := svc.Root()

	svc.Renderer.Banner("GEMINI PRO CLI", fmt.Sprintf("🚀 INICIANDO SISTEMA [Model: %s]", svc.Config.Model))

	chat, err := starter.StartChat(ctx, llm.ChatConfig{
		SystemInstruction: svc.Config.SystemInstruction,
		Temperature:       svc.Config.Temperature,
	}, svc.history)
	if err != nil {
		return err
	}
	svc.chat = chat

	return svc.loop(ctx)
}

func (svc *SessionService) loop(ctx context2.Context) error {
	for {
		svc.Renderer.Prompt(promptLabel)

		line, err := svc.reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("read input: %w", err)
		}
		eof := err != nil

		input := strings.TrimRight(line, "\r\n")
		trimmed := strings.TrimSpace(input)

		if isExitKeyword(trimmed) || (eof && trimmed == "") {
			if eof {
				svc.Renderer.Newline()
			}
			svc.Renderer.Warn(farewellText)
			return nil
		}

		if trimmed != "" {
			svc.turn(ctx, input)
		}

		if ctx.Err() != nil {
			return nil
		}
	}
}

// turn records the user line, streams the reply to the console and records
// the full reply. Provider errors are shown and swallowed.
func (svc *SessionService) turn(ctx context2.Context, input string) {
	svc.record(transcript.RoleUser, input)

	svc.Renderer.Dim(thinkingText)
	svc.Renderer.Newline()

	started := time.Now()
	reply, err := llm.Collect(svc.chat.SendStream(ctx, input), svc.Renderer.Fragment)
	svc.Renderer.Newline()

	if err != nil {
		log.Debug().Err(err).Int("partial_len", len(reply)).Msg("chat turn failed")
		svc.Renderer.Error(errorTitle)
		svc.Renderer.Info(err.Error())
		svc.Renderer.Warn(errorHint)
		return
	}

	log.Debug().Dur("elapsed", time.Since(started)).Int("reply_len", len(reply)).Msg("chat turn complete")
	svc.record(transcript.RoleModel, reply)
}

func (svc *SessionService) record(role, text string) {
	if err := svc.transcript.Append(role, text); err != nil {
		log.Debug().Err(err).Str("path", svc.transcript.Path()).Str("role", role).Msg("failed to write transcript")
		svc.Renderer.Warn(fmt.Sprintf("No se pudo guardar en %s: %v", svc.transcript.Path(), err))
	}
}

func isExitKeyword(input string) bool {
	return exitKeywords[strings.ToLower(input)]
}
