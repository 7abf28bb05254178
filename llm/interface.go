package llm

import (
	"context"
	"iter"
)

type Request struct {
	Message   string
	MaxTokens int
}

type Response struct {
	Text string
}

// Client is a single-shot completion against one provider and model.
type Client interface {
	ID() string
	Model() string
	Send(ctx context.Context, req Request) (Response, error)
}

const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Turn is one prior message used to seed a chat.
type Turn struct {
	Role string
	Text string
}

type ChatConfig struct {
	SystemInstruction string
	Temperature       float32
}

// ChatStarter is implemented by clients that support multi-turn streaming chats.
type ChatStarter interface {
	StartChat(ctx context.Context, cfg ChatConfig, history []Turn) (Chat, error)
}

// Chat is an open conversation. The provider keeps the turns sent through it.
type Chat interface {
	// SendStream yields response fragments in arrival order. The sequence is
	// finite and can only be ranged over once.
	SendStream(ctx context.Context, text string) iter.Seq2[string, error]
}
