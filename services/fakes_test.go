package services

import (
	"bytes"
	context2 "context"
	"iter"
	"path/filepath"
	"testing"

	"github.com/requiem-ai/gemchat/config"
	"github.com/requiem-ai/gemchat/llm"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// captureWarnLogs redirects the global logger at the default console level
// (warn) into a buffer for the rest of the test.
func captureWarnLogs(t *testing.T) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf).Level(zerolog.WarnLevel)
	t.Cleanup(func() { log.Logger = prev })
	return &buf
}

func testConfig(dir string) *config.Config {
	return &config.Config{
		Model:             "gemini-test",
		Temperature:       0.7,
		SystemInstruction: "sé breve",
		TranscriptPath:    filepath.Join(dir, "historial_sesion.md"),
		Probe: config.Probe{
			Prompt:      "Responde en una palabra: ¡OPERATIVO!",
			MaxTokens:   50,
			GeminiModel: "gemini-2.5-flash",
			ClaudeModel: "claude-3-haiku-20240307",
			OpenAIModel: "gpt-4o-mini",
		},
		GoogleAPIKey: "test-key",
	}
}

type fakeClient struct {
	id    string
	model string
	text  string
	err   error

	requests []llm.Request
}

func (c *fakeClient) ID() string    { return c.id }
func (c *fakeClient) Model() string { return c.model }

func (c *fakeClient) Send(ctx context2.Context, req llm.Request) (llm.Response, error) {
	c.requests = append(c.requests, req)
	if c.err != nil {
		return llm.Response{}, c.err
	}
	return llm.Response{Text: c.text}, nil
}

type fakeReply struct {
	fragments []string
	err       error
}

// fakeChatClient scripts one reply per SendStream call.
type fakeChatClient struct {
	fakeClient

	replies []fakeReply
	sent    []string

	startCfg     llm.ChatConfig
	startHistory []llm.Turn
	started      int
}

func (c *fakeChatClient) StartChat(ctx context2.Context, cfg llm.ChatConfig, history []llm.Turn) (llm.Chat, error) {
	c.started++
	c.startCfg = cfg
	c.startHistory = history
	return c, nil
}

func (c *fakeChatClient) SendStream(ctx context2.Context, text string) iter.Seq2[string, error] {
	c.sent = append(c.sent, text)
	var reply fakeReply
	if i := len(c.sent) - 1; i < len(c.replies) {
		reply = c.replies[i]
	}

	return func(yield func(string, error) bool) {
		for _, fragment := range reply.fragments {
			if !yield(fragment, nil) {
				return
			}
		}
		if reply.err != nil {
			yield("", reply.err)
		}
	}
}

func factoryFor(clients map[string]llm.Client, errs map[string]error) ClientFactory {
	return func(ctx context2.Context, cfg *config.Config, target Target) (llm.Client, error) {
		if err, ok := errs[target.ID]; ok {
			return nil, err
		}
		return clients[target.ID], nil
	}
}
