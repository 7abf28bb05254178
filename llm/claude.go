package llm

import (
	"context"
	"errors"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

type ClaudeClient struct {
	client anthropic.Client
	model  string
}

const ClaudeID = "claude"

// defaultClaudeMaxTokens applies when a request leaves MaxTokens unset; the
// messages API requires it.
const defaultClaudeMaxTokens = 1024

func NewClaudeClient(apiKey, model string) (*ClaudeClient, error) {
	if apiKey == "" {
		return nil, errors.New("missing anthropic api key")
	}

	return &ClaudeClient{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}, nil
}

func (c *ClaudeClient) ID() string {
	return ClaudeID
}

func (c *ClaudeClient) Model() string {
	return c.model
}

func (c *ClaudeClient) Send(ctx context.Context, req Request) (Response, error) {
	if req.Message == "" {
		return Response{}, errors.New("missing prompt")
	}

	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultClaudeMaxTokens
	}

	msg, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: int64(maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Message)),
		},
	})
	if err != nil {
		return Response{}, err
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return Response{}, errors.New("claude returned no text content")
	}

	return Response{Text: sb.String()}, nil
}
