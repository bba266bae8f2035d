package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-autofill/pkg/export"
	"github.com/goliatone/go-autofill/pkg/orchestrator"
	"github.com/goliatone/go-autofill/pkg/suggest"
	"github.com/goliatone/go-autofill/pkg/themes"
)

type generateOptions struct {
	name     string
	renderer string
	format   string
	output   string
}

func newGenerateCmd(a *app) *cobra.Command {
	var opts generateOptions
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate suggestions once and print them",
		Long: `generate runs a single completion for --name and prints either the
rendered form (--renderer) or an export document (--format).`,
		Example: `  autofill generate --name="header fixer" --format=json
  autofill generate --name="header fixer" --renderer=html -o form.html`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.generate(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.name, "name", "", "assistant name")
	flags.StringVar(&opts.renderer, "renderer", "", "render the form with html or tui")
	flags.StringVar(&opts.format, "format", "", "print an export instead: json, yaml, markdown")
	flags.StringVarP(&opts.output, "output", "o", "", "write to this file instead of stdout")
	_ = cmd.MarkFlagRequired("name")
	cmd.MarkFlagsMutuallyExclusive("renderer", "format")
	return cmd
}

func (a *app) generate(cmd *cobra.Command, opts generateOptions) error {
	requester, c, err := a.requester()
	if err != nil {
		return err
	}
	selector, err := themes.NewSelector(a.cfg.Theme.Name, a.cfg.Theme.Variant)
	if err != nil {
		return err
	}

	orch := orchestrator.New(
		orchestrator.WithRequester(requester),
		orchestrator.WithCatalog(c),
		orchestrator.WithThemeSelector(selector, a.cfg.Theme.Name, a.cfg.Theme.Variant),
		orchestrator.WithLogger(a.logger),
	)

	res, genErr := orch.Generate(cmd.Context(), orchestrator.Request{
		Name:     opts.name,
		Renderer: opts.renderer,
	})
	var reqErr *suggest.Error
	if genErr != nil && !errors.As(genErr, &reqErr) {
		return genErr
	}

	out := res.Output
	if opts.format != "" {
		if genErr != nil {
			return genErr
		}
		format, err := export.ParseFormat(opts.format)
		if err != nil {
			return err
		}
		out, err = export.Encode(export.Build(res.View), format)
		if err != nil {
			return err
		}
	}

	if err := a.write(cmd, opts.output, out); err != nil {
		return err
	}
	return genErr
}

func (a *app) write(cmd *cobra.Command, path string, data []byte) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	a.logger.Info("output written", "path", path, "bytes", len(data))
	return nil
}
