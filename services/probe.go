package services

import (
	context2 "context"
	"errors"
	"fmt"
	"strings"

	"github.com/requiem-ai/gemchat/config"
	"github.com/requiem-ai/gemchat/context"
	"github.com/requiem-ai/gemchat/llm"
	"github.com/requiem-ai/gemchat/render"
	"github.com/rs/zerolog/log"
)

type ProbeResult struct {
	Provider string
	Model    string
	Text     string
	Err      error
}

func (r ProbeResult) OK() bool {
	return r.Err == nil
}

// ProbeService sends one fixed prompt to every agent target in order and
// reports each outcome. A failing target never stops the next one.
type ProbeService struct {
	context.DefaultService

	Config   *config.Config
	Renderer render.Renderer
	Notify   bool

	Results []ProbeResult
}

const PROBE_SVC = "probe_svc"

func (svc ProbeService) Id() string {
	return PROBE_SVC
}

func (svc *ProbeService) Start() error {
	agent, ok := svc.Service(AGENT_SVC).(*AgentService)
	if !ok {
		return errors.New("agent service not available")
	}

	ctx := svc.Root()
	svc.Results = nil

	svc.Renderer.Info("--- 🚀 INICIANDO PRUEBA ---")

	for _, target := range agent.Targets {
		client, err := agent.Client(target.ID)
		if err != nil && target.Optional && errors.Is(err, ErrMissingCredential) {
			log.Debug().Str("provider", target.ID).Msg("skipping optional probe target")
			continue
		}

		svc.Results = append(svc.Results, svc.probe(ctx, target, client, err))
	}

	svc.Renderer.Newline()
	svc.Renderer.Success("--- ✅ FIN DE LA PRUEBA ---")

	if svc.Notify {
		svc.notify()
	}

	return nil
}

func (svc *ProbeService) probe(ctx context2.Context, target Target, client llm.Client, clientErr error) ProbeResult {
	name := strings.ToUpper(target.ID)
	result := ProbeResult{Provider: target.ID, Model: target.Model, Err: clientErr}

	svc.Renderer.Newline()
	svc.Renderer.Info(fmt.Sprintf("Conectando con %s (%s)...", name, target.Model))

	if clientErr == nil {
		resp, err := client.Send(ctx, llm.Request{
			Message:   svc.Config.Probe.Prompt,
			MaxTokens: svc.Config.Probe.MaxTokens,
		})
		result.Text = strings.TrimSpace(resp.Text)
		result.Err = err
	}

	if result.Err != nil {
		log.Debug().Err(result.Err).Str("provider", target.ID).Str("model", target.Model).Msg("probe failed")
		svc.Renderer.Error(fmt.Sprintf("❌ ERROR %s: %v", name, result.Err))
		return result
	}

	log.Debug().Str("provider", target.ID).Str("model", target.Model).Msg("probe succeeded")
	svc.Renderer.Success(fmt.Sprintf("✅ %s (%s) RESPONDIÓ: %s", name, target.Model, result.Text))
	return result
}

func (svc *ProbeService) notify() {
	tg, ok := svc.Service(TELEGRAM_SVC).(*TelegramService)
	if !ok {
		svc.Renderer.Warn("Telegram no está configurado; no se envió el reporte.")
		return
	}

	if err := tg.SendReport(svc.Results); err != nil {
		log.Debug().Err(err).Msg("failed to send probe report")
		svc.Renderer.Warn(fmt.Sprintf("No se pudo enviar el reporte a Telegram: %v", err))
		return
	}

	svc.Renderer.Dim("Reporte enviado a Telegram.")
}
