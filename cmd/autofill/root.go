package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/goliatone/go-autofill/internal/config"
	"github.com/goliatone/go-autofill/internal/logging"
	"github.com/goliatone/go-autofill/pkg/catalog"
	"github.com/goliatone/go-autofill/pkg/llm"
	"github.com/goliatone/go-autofill/pkg/suggest"
)

// app carries state shared by every command once flags are parsed.
type app struct {
	configFile string
	v          *viper.Viper
	cfg        config.Config
	logger     *slog.Logger

	// newCompleter builds the completion client. Tests replace it.
	newCompleter func(cfg config.Config, logger *slog.Logger) (llm.Completer, error)
}

func newApp() *app {
	return &app{v: config.New(), newCompleter: openAICompleter}
}

func newRootCmd() *cobra.Command {
	return newApp().rootCmd()
}

func (a *app) rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "autofill",
		Short: "Suggest assistant design metadata with a language model",
		Long: `autofill asks a chat completion model to fill twenty assistant design
fields (description, inputs, outputs, edge cases, ...) from a function name,
then lets you edit, lock and regenerate each field.`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}
	cmd.Version = Version

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (default ./autofill.yaml)")
	flags.String("log-level", "", "log level: debug, info, warn, error")
	flags.String("log-format", "", "log format: text, json, logfmt")
	flags.String("model", "", "chat completion model")
	flags.String("base-url", "", "OpenAI compatible API base URL")
	flags.Float64("temperature", 0, "sampling temperature")
	flags.String("catalog", "", "directory of field catalog files")
	a.bind(flags.Lookup("log-level"), "log.level")
	a.bind(flags.Lookup("log-format"), "log.format")
	a.bind(flags.Lookup("model"), "openai.model")
	a.bind(flags.Lookup("base-url"), "openai.base_url")
	a.bind(flags.Lookup("temperature"), "openai.temperature")
	a.bind(flags.Lookup("catalog"), "catalog")

	cmd.AddCommand(
		newServeCmd(a),
		newFillCmd(a),
		newGenerateCmd(a),
		newFieldsCmd(a),
		newVersionCmd(),
	)
	return cmd
}

func (a *app) bind(flag *pflag.Flag, key string) {
	if flag == nil {
		return
	}
	if err := a.v.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("autofill: bind flag %s: %v", flag.Name, err))
	}
}

func (a *app) load(cmd *cobra.Command) error {
	cfg, err := config.Load(a.v, a.configFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := logging.Install(logging.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cmd.ErrOrStderr(),
		Prefix: "autofill",
	})
	if err != nil {
		return err
	}
	a.logger = logger
	return nil
}

func (a *app) catalog() (*catalog.Catalog, error) {
	if a.cfg.Catalog == "" {
		return catalog.Default(), nil
	}
	c, err := catalog.LoadFS(os.DirFS(a.cfg.Catalog))
	if err != nil {
		return nil, err
	}
	if c.Len() == 0 {
		return nil, fmt.Errorf("catalog: %s: no fields found", a.cfg.Catalog)
	}
	return c, nil
}

func (a *app) requester() (*suggest.Requester, *catalog.Catalog, error) {
	c, err := a.catalog()
	if err != nil {
		return nil, nil, err
	}
	completer, err := a.newCompleter(a.cfg, a.logger)
	if err != nil {
		return nil, nil, err
	}
	requester := suggest.New(completer,
		suggest.WithModel(a.cfg.OpenAI.Model),
		suggest.WithTemperature(a.cfg.OpenAI.Temperature),
		suggest.WithCatalog(c),
		suggest.WithLogger(a.logger),
	)
	return requester, c, nil
}

func openAICompleter(cfg config.Config, logger *slog.Logger) (llm.Completer, error) {
	if err := cfg.RequireAPIKey(); err != nil {
		return nil, err
	}
	return llm.NewOpenAI(
		llm.WithAPIKey(cfg.OpenAI.APIKey),
		llm.WithBaseURL(cfg.OpenAI.BaseURL),
		llm.WithTimeout(cfg.OpenAI.Timeout),
		llm.WithLogger(logger),
	), nil
}
