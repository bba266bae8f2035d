package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-autofill/pkg/export"
	"github.com/goliatone/go-autofill/pkg/renderers/tui"
	"github.com/goliatone/go-autofill/pkg/session"
)

type fillOptions struct {
	name   string
	output string
}

func newFillCmd(a *app) *cobra.Command {
	var opts fillOptions
	cmd := &cobra.Command{
		Use:   "fill",
		Short: "Review suggestions interactively in the terminal",
		Example: `  autofill fill
  autofill fill --name="header fixer" --export=yaml -o header_fixer.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.fill(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.name, "name", "", "assistant name (prompted when empty)")
	flags.StringVarP(&opts.output, "output", "o", "", "also write the export to this file")
	flags.String("export", "", "export format: markdown, json, yaml")
	flags.String("style", "", "glamour style: dark, light, notty, ...")
	flags.Int("width", 0, "word wrap width")
	a.bind(flags.Lookup("export"), "terminal.export")
	a.bind(flags.Lookup("style"), "terminal.style")
	a.bind(flags.Lookup("width"), "terminal.word_wrap")
	return cmd
}

func (a *app) fill(cmd *cobra.Command, opts fillOptions) error {
	format, err := export.ParseFormat(a.cfg.Terminal.Export)
	if err != nil {
		return err
	}
	requester, c, err := a.requester()
	if err != nil {
		return err
	}

	renderer, err := tui.New(
		tui.WithPromptDriver(tui.NewSurveyDriver(cmd.OutOrStdout())),
		tui.WithOutput(cmd.OutOrStdout()),
		tui.WithMarkdownStyle(a.cfg.Terminal.Style),
		tui.WithWordWrap(a.cfg.Terminal.WordWrap),
		tui.WithExportFormat(format),
	)
	if err != nil {
		return err
	}

	sess := session.New(uuid.NewString(), requester,
		session.WithCatalog(c),
		session.WithLogger(a.logger),
	)
	sess.SetName(opts.name)

	doc, err := renderer.Fill(cmd.Context(), sess)
	switch {
	case errors.Is(err, tui.ErrAborted):
		return nil
	case err != nil:
		return err
	}

	if opts.output == "" {
		return nil
	}
	data, err := export.Encode(doc, format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	a.logger.Info("export written", "path", opts.output, "format", format)
	return nil
}
