package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/requiem-ai/gemchat/config"
	"github.com/requiem-ai/gemchat/context"
	"github.com/rs/zerolog/log"
	tb "gopkg.in/telebot.v3"
)

// TelegramService posts probe reports to the main Telegram chat. Problems
// with its configuration are kept until SendReport so they never stop a probe.
type TelegramService struct {
	context.DefaultService

	Config *config.Config
	Bot    *tb.Bot
	// APIURL overrides the Bot API endpoint; empty uses telebot's default.
	APIURL string

	chatID int64
	err    error
}

const TELEGRAM_SVC = "telegram_svc"

func (svc TelegramService) Id() string {
	return TELEGRAM_SVC
}

func (svc *TelegramService) Configure(ctx *context.Context) error {
	if err := svc.DefaultService.Configure(ctx); err != nil {
		return err
	}

	if strings.TrimSpace(svc.Config.TelegramSecret) == "" {
		svc.err = missingCredential(config.EnvTelegramSecret)
		return nil
	}

	chatID, err := parseChatID(svc.Config.TelegramChatID)
	if err != nil {
		svc.err = err
		return nil
	}
	svc.chatID = chatID

	return nil
}

// SendReport connects lazily so a probe without --notify never talks to Telegram.
func (svc *TelegramService) SendReport(results []ProbeResult) error {
	if svc.err != nil {
		return svc.err
	}

	if svc.Bot == nil {
		bot, err := tb.NewBot(tb.Settings{
			URL:   svc.APIURL,
			Token: svc.Config.TelegramSecret,
		})
		if err != nil {
			return fmt.Errorf("connect telegram bot: %w", err)
		}
		svc.Bot = bot
	}

	_, err := svc.Bot.Send(&tb.Chat{ID: svc.chatID}, FormatProbeReport(results, time.Now()))
	if err != nil {
		return err
	}

	log.Info().Int64("chat_id", svc.chatID).Int("results", len(results)).Msg("sent probe report")
	return nil
}

// FormatProbeReport renders results as plain text, one provider per line.
func FormatProbeReport(results []ProbeResult, at time.Time) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "gemchat probe %s\n", at.Format("2006-01-02 15:04:05"))

	if len(results) == 0 {
		sb.WriteString("(sin proveedores)\n")
		return sb.String()
	}

	passed := 0
	for _, r := range results {
		name := strings.ToUpper(r.Provider)
		if r.OK() {
			passed++
			fmt.Fprintf(&sb, "✅ %s (%s): %s\n", name, r.Model, r.Text)
			continue
		}
		fmt.Fprintf(&sb, "❌ %s (%s): %v\n", name, r.Model, r.Err)
	}
	fmt.Fprintf(&sb, "%d/%d OK\n", passed, len(results))

	return sb.String()
}

func parseChatID(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, missingCredential(config.EnvTelegramChatID)
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", config.EnvTelegramChatID, raw, err)
	}
	if value == 0 {
		return 0, errors.New("telegram chat id must not be zero")
	}
	return value, nil
}
