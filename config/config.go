package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

// Credential variables keep their conventional names; everything else is read
// with the GEMCHAT_ prefix.
const (
	EnvGoogleAPIKey    = "GOOGLE_API_KEY"
	EnvAnthropicAPIKey = "ANTHROPIC_API_KEY"
	EnvOpenAIAPIKey    = "OPENAI_API_KEY"
	EnvTelegramSecret  = "TELEGRAM_SECRET"
	EnvTelegramChatID  = "TELEGRAM_MAIN_CHAT_ID"
)

const DefaultSystemInstruction = `Eres un Arquitecto de Software Senior y experto en Pensamiento Crítico.
Tu objetivo no es solo responder, sino cuestionar, analizar y proponer la mejor solución técnica.
Reglas de comportamiento:
1.  **Análisis Primero:** Antes de dar código, piensa en los casos borde (edge cases).
2.  **Calidad:** Tu código debe ser robusto, limpio y seguir las convenciones del lenguaje.
3.  **Seguridad:** Advierte siempre sobre vulnerabilidades potenciales.
4.  **Concisión:** Sé directo. Evita la cortesía excesiva. Ve al grano técnico.
5.  **Formato:** Usa Markdown para estructurar tus respuestas.
`

type Config struct {
	Model             string  `mapstructure:"model"`
	Temperature       float32 `mapstructure:"temperature"`
	SystemInstruction string  `mapstructure:"system_instruction"`
	TranscriptPath    string  `mapstructure:"transcript_path"`
	Render            string  `mapstructure:"render"`

	Probe Probe `mapstructure:"probe"`

	GoogleAPIKey    string `mapstructure:"google_api_key"`
	AnthropicAPIKey string `mapstructure:"anthropic_api_key"`
	OpenAIAPIKey    string `mapstructure:"openai_api_key"`
	TelegramSecret  string `mapstructure:"telegram_secret"`
	TelegramChatID  string `mapstructure:"telegram_chat_id"`
}

type Probe struct {
	Prompt      string `mapstructure:"prompt"`
	MaxTokens   int    `mapstructure:"max_tokens"`
	GeminiModel string `mapstructure:"gemini_model"`
	ClaudeModel string `mapstructure:"claude_model"`
	OpenAIModel string `mapstructure:"openai_model"`
}

var credentialEnv = map[string]string{
	"google_api_key":    EnvGoogleAPIKey,
	"anthropic_api_key": EnvAnthropicAPIKey,
	"openai_api_key":    EnvOpenAIAPIKey,
	"telegram_secret":   EnvTelegramSecret,
	"telegram_chat_id":  EnvTelegramChatID,
}

// Load reads gemchat.yaml from . or ./config when present, then applies
// GEMCHAT_* environment overrides and the provider credentials.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("gemchat")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("GEMCHAT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	for key, env := range credentialEnv {
		v.SetDefault(key, "")
		if err := v.BindEnv(key, env); err != nil {
			return nil, err
		}
	}

	if err := v.ReadInConfig(); err != nil {
		// env-only configuration is the common case
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) {
			return nil, err
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("model", "gemini-3-pro-preview")
	v.SetDefault("temperature", 0.7)
	v.SetDefault("system_instruction", DefaultSystemInstruction)
	v.SetDefault("transcript_path", "historial_sesion.md")
	v.SetDefault("render", "")

	v.SetDefault("probe.prompt", "Responde en una palabra: ¡OPERATIVO!")
	v.SetDefault("probe.max_tokens", 50)
	v.SetDefault("probe.gemini_model", "gemini-2.5-flash")
	v.SetDefault("probe.claude_model", "claude-3-haiku-20240307")
	v.SetDefault("probe.openai_model", "gpt-4o-mini")
}

// Credential returns the configured value for a credential variable name.
func (c *Config) Credential(env string) string {
	switch env {
	case EnvGoogleAPIKey:
		return c.GoogleAPIKey
	case EnvAnthropicAPIKey:
		return c.AnthropicAPIKey
	case EnvOpenAIAPIKey:
		return c.OpenAIAPIKey
	case EnvTelegramSecret:
		return c.TelegramSecret
	case EnvTelegramChatID:
		return c.TelegramChatID
	}
	return ""
}
