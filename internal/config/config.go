// Package config loads runtime settings from an optional config file,
// AUTOFILL_* environment variables and bound command line flags.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/goliatone/go-autofill/pkg/export"
)

const appName = "autofill"

var (
	// ErrMissingAPIKey is returned by RequireAPIKey when no key is configured.
	ErrMissingAPIKey = errors.New("config: openai api key is not set (OPENAI_API_KEY)")
	// ErrInvalid wraps validation failures.
	ErrInvalid = errors.New("config: invalid")
)

type Config struct {
	OpenAI   OpenAIConfig   `mapstructure:"openai"`
	Server   ServerConfig   `mapstructure:"server"`
	Theme    ThemeConfig    `mapstructure:"theme"`
	Terminal TerminalConfig `mapstructure:"terminal"`
	Log      LogConfig      `mapstructure:"log"`
	// Catalog points at a directory of field catalog files. Empty uses the
	// embedded catalog.
	Catalog string `mapstructure:"catalog"`
}

type OpenAIConfig struct {
	APIKey      string        `mapstructure:"api_key"`
	BaseURL     string        `mapstructure:"base_url"`
	Model       string        `mapstructure:"model"`
	Temperature float64       `mapstructure:"temperature"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

type ServerConfig struct {
	Addr       string        `mapstructure:"addr"`
	BasePath   string        `mapstructure:"base_path"`
	SessionTTL time.Duration `mapstructure:"session_ttl"`
	CookieName string        `mapstructure:"cookie_name"`
	// Templates shadows the bundled page templates when set.
	Templates string `mapstructure:"templates"`
}

type ThemeConfig struct {
	Name    string `mapstructure:"name"`
	Variant string `mapstructure:"variant"`
}

type TerminalConfig struct {
	Style    string `mapstructure:"style"`
	WordWrap int    `mapstructure:"word_wrap"`
	Export   string `mapstructure:"export"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

var defaults = map[string]any{
	"openai.api_key":     "",
	"openai.base_url":    "",
	"openai.model":       "gpt-4",
	"openai.temperature": 0.7,
	"openai.timeout":     "60s",
	"server.addr":        ":8080",
	"server.base_path":   "",
	"server.session_ttl": "1h",
	"server.cookie_name": "autofill_session",
	"server.templates":   "",
	"theme.name":         "default",
	"theme.variant":      "light",
	"terminal.style":     "dark",
	"terminal.word_wrap": 80,
	"terminal.export":    "markdown",
	"log.level":          "info",
	"log.format":         "text",
	"catalog":            "",
}

// New returns a viper instance with defaults and environment bindings. Flags
// may be bound to it before calling Load.
func New() *viper.Viper {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(strings.ToUpper(appName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("openai.api_key", "AUTOFILL_OPENAI_API_KEY", "OPENAI_API_KEY")
	_ = v.BindEnv("openai.base_url", "AUTOFILL_OPENAI_BASE_URL", "OPENAI_BASE_URL")
	return v
}

// Load reads file, or autofill.{yaml,json,toml} from the working directory
// and the user config directory when file is empty. A missing default file
// is not an error.
func Load(v *viper.Viper, file string) (Config, error) {
	if v == nil {
		v = New()
	}
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(appName)
		v.AddConfigPath(".")
		v.AddConfigPath(fmt.Sprintf("$XDG_CONFIG_HOME/%s", appName))
		v.AddConfigPath(fmt.Sprintf("$HOME/.config/%s", appName))
	}

	if err := readConfig(v.ReadInConfig()); err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func readConfig(err error) error {
	if err == nil {
		return nil
	}
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return nil
	}
	return fmt.Errorf("config: read: %w", err)
}

// Validate checks ranges and enumerations.
func (c Config) Validate() error {
	var problems []string
	if strings.TrimSpace(c.OpenAI.Model) == "" {
		problems = append(problems, "openai.model is required")
	}
	if c.OpenAI.Temperature < 0 || c.OpenAI.Temperature > 2 {
		problems = append(problems, "openai.temperature must be between 0 and 2")
	}
	if c.OpenAI.Timeout <= 0 {
		problems = append(problems, "openai.timeout must be positive")
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json", "logfmt":
	default:
		problems = append(problems, fmt.Sprintf("log.format %q is not one of text, json, logfmt", c.Log.Format))
	}
	if _, err := export.ParseFormat(c.Terminal.Export); err != nil {
		problems = append(problems, fmt.Sprintf("terminal.export: %v", err))
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}
	return nil
}

// RequireAPIKey reports ErrMissingAPIKey unless a key is configured or a
// custom base URL points at a gateway that may not need one.
func (c Config) RequireAPIKey() error {
	if strings.TrimSpace(c.OpenAI.APIKey) == "" && strings.TrimSpace(c.OpenAI.BaseURL) == "" {
		return ErrMissingAPIKey
	}
	return nil
}
