package services

import (
	context2 "context"
	"fmt"

	"github.com/requiem-ai/gemchat/config"
	"github.com/requiem-ai/gemchat/context"
	"github.com/requiem-ai/gemchat/llm"
	"github.com/rs/zerolog/log"
)

// Target names one provider client to build.
type Target struct {
	ID    string
	Model string
	// Optional targets are skipped when their credential is missing.
	Optional bool
}

type ClientFactory func(ctx context2.Context, cfg *config.Config, target Target) (llm.Client, error)

// AgentService owns the provider clients for the running command.
type AgentService struct {
	context.DefaultService

	Config  *config.Config
	Targets []Target
	Factory ClientFactory

	clients map[string]llm.Client
	errs    map[string]error
}

const AGENT_SVC = "agent_svc"

func (svc AgentService) Id() string {
	return AGENT_SVC
}

func ChatTargets(cfg *config.Config) []Target {
	return []Target{
		{ID: llm.GeminiID, Model: cfg.Model},
	}
}

func ProbeTargets(cfg *config.Config) []Target {
	return []Target{
		{ID: llm.GeminiID, Model: cfg.Probe.GeminiModel},
		{ID: llm.ClaudeID, Model: cfg.Probe.ClaudeModel},
		{ID: llm.OpenAIID, Model: cfg.Probe.OpenAIModel, Optional: true},
	}
}

func (svc *AgentService) Configure(ctx *context.Context) error {
	if err := svc.DefaultService.Configure(ctx); err != nil {
		return err
	}

	if svc.Factory == nil {
		svc.Factory = NewClient
	}

	svc.clients = make(map[string]llm.Client, len(svc.Targets))
	svc.errs = make(map[string]error)

	for _, target := range svc.Targets {
		client, err := svc.Factory(svc.Root(), svc.Config, target)
		if err != nil {
			log.Debug().Err(err).Str("provider", target.ID).Msg("provider client unavailable")
			svc.errs[target.ID] = err
			continue
		}

		log.Debug().Str("provider", target.ID).Str("model", target.Model).Msg("provider client ready")
		svc.clients[target.ID] = client
	}

	return nil
}

// Client returns the client built for id, or the error that prevented it.
func (svc *AgentService) Client(id string) (llm.Client, error) {
	if err, ok := svc.errs[id]; ok {
		return nil, err
	}
	client, ok := svc.clients[id]
	if !ok {
		return nil, fmt.Errorf("provider %s not configured", id)
	}
	return client, nil
}

func (svc *AgentService) ChatStarter() (llm.ChatStarter, error) {
	client, err := svc.Client(llm.GeminiID)
	if err != nil {
		return nil, err
	}

	starter, ok := client.(llm.ChatStarter)
	if !ok {
		return nil, fmt.Errorf("provider %s does not support chat", client.ID())
	}
	return starter, nil
}

// NewClient builds the SDK-backed client for target using the credentials in cfg.
func NewClient(ctx context2.Context, cfg *config.Config, target Target) (llm.Client, error) {
	switch target.ID {
	case llm.GeminiID:
		key := cfg.Credential(config.EnvGoogleAPIKey)
		if key == "" {
			return nil, missingCredential(config.EnvGoogleAPIKey)
		}
		client, err := llm.NewGeminiClient(ctx, key, target.Model)
		if err != nil {
			return nil, err
		}
		return client, nil
	case llm.ClaudeID:
		key := cfg.Credential(config.EnvAnthropicAPIKey)
		if key == "" {
			return nil, missingCredential(config.EnvAnthropicAPIKey)
		}
		client, err := llm.NewClaudeClient(key, target.Model)
		if err != nil {
			return nil, err
		}
		return client, nil
	case llm.OpenAIID:
		key := cfg.Credential(config.EnvOpenAIAPIKey)
		if key == "" {
			return nil, missingCredential(config.EnvOpenAIAPIKey)
		}
		client, err := llm.NewOpenAIClient(key, target.Model)
		if err != nil {
			return nil, err
		}
		return client, nil
	}

	return nil, fmt.Errorf("unknown provider %q", target.ID)
}
