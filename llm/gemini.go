package llm

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"google.golang.org/genai"
)

type GeminiClient struct {
	client *genai.Client
	model  string
}

const GeminiID = "gemini"

func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, errors.New("missing gemini api key")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		model:  model,
	}, nil
}

func (c *GeminiClient) ID() string {
	return GeminiID
}

func (c *GeminiClient) Model() string {
	return c.model
}

func (c *GeminiClient) Send(ctx context.Context, req Request) (Response, error) {
	if req.Message == "" {
		return Response{}, errors.New("missing prompt")
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(req.Message), nil)
	if err != nil {
		return Response{}, err
	}

	return Response{Text: resp.Text()}, nil
}

func (c *GeminiClient) StartChat(ctx context.Context, cfg ChatConfig, history []Turn) (Chat, error) {
	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(cfg.Temperature),
	}
	if cfg.SystemInstruction != "" {
		config.SystemInstruction = genai.NewContentFromText(cfg.SystemInstruction, genai.RoleUser)
	}

	chat, err := c.client.Chats.Create(ctx, c.model, config, geminiHistory(history))
	if err != nil {
		return nil, fmt.Errorf("create gemini chat: %w", err)
	}

	return &geminiChat{chat: chat}, nil
}

type geminiChat struct {
	chat *genai.Chat
}

func (g *geminiChat) SendStream(ctx context.Context, text string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for resp, err := range g.chat.SendMessageStream(ctx, genai.Part{Text: text}) {
			if err != nil {
				yield("", err)
				return
			}
			if !yield(resp.Text(), nil) {
				return
			}
		}
	}
}

func geminiHistory(history []Turn) []*genai.Content {
	if len(history) == 0 {
		return nil
	}

	out := make([]*genai.Content, 0, len(history))
	for _, turn := range history {
		var role genai.Role = genai.RoleUser
		if turn.Role == RoleModel {
			role = genai.RoleModel
		}
		out = append(out, genai.NewContentFromText(turn.Text, role))
	}
	return out
}
