package main

import (
	"errors"
	"fmt"

	"github.com/requiem-ai/gemchat/config"
	appctx "github.com/requiem-ai/gemchat/context"
	"github.com/requiem-ai/gemchat/render"
	"github.com/requiem-ai/gemchat/services"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	envFile     string
	forcePlain  bool
	forceStyled bool
	probeNotify bool
)

var rootCmd = &cobra.Command{
	Use:           "gemchat",
	Short:         "Chat with Gemini from the terminal and keep a markdown transcript",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logLoad := loadEnv(envFile)
		setupLogging()
		logLoad()
	},
	RunE: runChat,
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session (default)",
	RunE:  runChat,
}

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Send one test prompt to each provider and report pass/fail",
	RunE:  runProbe,
}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Save provider credentials to the .env file",
	RunE:  runSetup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "path to .env file")
	rootCmd.PersistentFlags().BoolVar(&forcePlain, "plain", false, "plain text output")
	rootCmd.PersistentFlags().BoolVar(&forceStyled, "styled", false, "colored output even when stdout is not a terminal")
	rootCmd.MarkFlagsMutuallyExclusive("plain", "styled")

	probeCmd.Flags().BoolVar(&probeNotify, "notify", false, "post the report to TELEGRAM_MAIN_CHAT_ID")

	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(probeCmd)
	rootCmd.AddCommand(setupCmd)
}

func newRenderer(cmd *cobra.Command, cfg *config.Config) render.Renderer {
	mode := cfg.Render
	switch {
	case forcePlain:
		mode = render.ModePlain
	case forceStyled:
		mode = render.ModeStyled
	}
	return render.New(mode, cmd.OutOrStdout())
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	r := newRenderer(cmd, cfg)

	ctx, err := appctx.NewCtx(
		&services.SetupService{Config: cfg, Renderer: r, Required: []string{config.EnvGoogleAPIKey}},
		&services.AgentService{Config: cfg, Targets: services.ChatTargets(cfg)},
		&services.SessionService{Config: cfg, Renderer: r, In: cmd.InOrStdin()},
	)
	if err != nil {
		return err
	}

	return report(ctx.Run())
}

func runProbe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	r := newRenderer(cmd, cfg)

	svcs := []appctx.Service{
		&services.AgentService{Config: cfg, Targets: services.ProbeTargets(cfg)},
	}
	if probeNotify {
		svcs = append(svcs, &services.TelegramService{Config: cfg})
	}
	svcs = append(svcs, &services.ProbeService{Config: cfg, Renderer: r, Notify: probeNotify})

	ctx, err := appctx.NewCtx(svcs...)
	if err != nil {
		return err
	}

	return report(ctx.Run())
}

func runSetup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	ctx, err := appctx.NewCtx(&services.SetupService{
		Config:      cfg,
		Renderer:    newRenderer(cmd, cfg),
		Interactive: true,
		Keys: []string{
			config.EnvGoogleAPIKey,
			config.EnvAnthropicAPIKey,
			config.EnvOpenAIAPIKey,
			config.EnvTelegramSecret,
			config.EnvTelegramChatID,
		},
		EnvPath: envFile,
		In:      cmd.InOrStdin(),
	})
	if err != nil {
		return err
	}

	return report(ctx.Run())
}

// report logs err unless the user has already been shown it.
func report(err error) error {
	if err != nil && !errors.Is(err, services.ErrMissingCredential) {
		log.Error().Err(err).Msg("gemchat failed")
	}
	return err
}
