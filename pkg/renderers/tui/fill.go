package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-autofill/pkg/export"
	"github.com/goliatone/go-autofill/pkg/render"
	"github.com/goliatone/go-autofill/pkg/session"
	"github.com/goliatone/go-autofill/pkg/suggest"
)

const (
	actionEdit       = "Edit text"
	actionLock       = "Lock"
	actionUnlock     = "Unlock"
	actionRegenerate = "Regenerate"
	actionBack       = "Back"

	choiceRegenerateAll = "Regenerate all fields"
	choiceDone          = "Done"
)

// Fill runs an interactive session: it asks for the assistant name when the
// session has none, generates suggestions and lets the user edit, lock or
// regenerate fields until done. The final document is printed in the
// configured export format and returned.
func (r *Renderer) Fill(ctx context.Context, s *session.Session) (export.Document, error) {
	if r.driver == nil {
		return export.Document{}, ErrNoDriver
	}

	if strings.TrimSpace(s.Name()) == "" {
		name, err := r.driver.Input(ctx, InputConfig{
			Message:   "Enter Assistant Name",
			Help:      "A function style name such as header_fixer.",
			Validator: requireText,
		})
		if err != nil {
			return export.Document{}, err
		}
		s.SetName(name)
	}

	if err := r.generate(ctx, s); err != nil {
		return export.Document{}, err
	}

	for {
		view, err := r.show(ctx, s)
		if err != nil {
			return export.Document{}, err
		}

		options := fieldChoices(view)
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:  "Choose a field",
			Options:  options,
			PageSize: 12,
			Describe: func(i int) string { return describeChoice(view, i) },
		})
		if err != nil {
			return export.Document{}, err
		}

		switch {
		case idx < 0 || idx >= len(options):
			continue
		case options[idx] == choiceDone:
			return r.finish(ctx, s)
		case options[idx] == choiceRegenerateAll:
			if err := r.generate(ctx, s); err != nil {
				return export.Document{}, err
			}
		default:
			if err := r.fieldAction(ctx, s, view.Rows[idx]); err != nil {
				return export.Document{}, err
			}
		}
	}
}

// generate retries on request until a generation succeeds.
func (r *Renderer) generate(ctx context.Context, s *session.Session) error {
	for {
		err := s.Generate(ctx)
		if err == nil {
			return nil
		}
		var reqErr *suggest.Error
		if !errors.As(err, &reqErr) {
			return err
		}
		if _, err := r.show(ctx, s); err != nil {
			return err
		}
		retry, err := r.driver.Confirm(ctx, ConfirmConfig{Message: "Try again?", Default: true})
		if err != nil {
			return err
		}
		if !retry {
			return ErrNoSuggestions
		}
	}
}

func (r *Renderer) fieldAction(ctx context.Context, s *session.Session, row session.Row) error {
	actions := []string{actionEdit, actionLock, actionRegenerate, actionBack}
	if row.Locked {
		actions = []string{actionUnlock, actionRegenerate, actionBack}
	}
	idx, err := r.driver.Select(ctx, SelectConfig{
		Message: fmt.Sprintf("%s (%s)", row.Label, row.ConfidenceText),
		Options: actions,
		Help:    row.Hint,
	})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(actions) {
		return nil
	}

	switch actions[idx] {
	case actionEdit:
		text, err := r.driver.TextArea(ctx, TextAreaConfig{
			Message: row.Label,
			Default: row.Draft,
			Help:    row.Hint,
		})
		if err != nil {
			return err
		}
		return s.Edit(row.Field, text)
	case actionLock:
		return s.SetLocked(row.Field, true)
	case actionUnlock:
		return s.SetLocked(row.Field, false)
	case actionRegenerate:
		err := s.Regenerate(ctx, row.Field)
		var reqErr *suggest.Error
		if errors.As(err, &reqErr) {
			// the failure notice is shown on the next redraw
			return nil
		}
		return err
	}
	return nil
}

func (r *Renderer) show(ctx context.Context, s *session.Session) (session.View, error) {
	view := s.Flush()
	out, err := r.Render(ctx, view, render.RenderOptions{})
	if err != nil {
		return view, err
	}
	if err := r.driver.Info(ctx, string(out)); err != nil {
		return view, err
	}
	return view, nil
}

func (r *Renderer) finish(ctx context.Context, s *session.Session) (export.Document, error) {
	doc := export.Build(s.Snapshot())
	var out string
	if r.exportFormat == export.FormatMarkdown {
		styled, err := r.present(export.Markdown(doc))
		if err != nil {
			return doc, err
		}
		out = string(styled)
	} else {
		encoded, err := export.Encode(doc, r.exportFormat)
		if err != nil {
			return doc, fmt.Errorf("tui: export: %w", err)
		}
		out = string(encoded)
	}
	if err := r.driver.Info(ctx, out); err != nil {
		return doc, err
	}
	return doc, nil
}

// fieldChoices lists one entry per row, in view order, followed by the
// global choices.
func fieldChoices(view session.View) []string {
	options := make([]string, 0, len(view.Rows)+2)
	for _, row := range view.Rows {
		label := fmt.Sprintf("%s (%s)", row.Label, row.ConfidenceText)
		if row.Locked {
			label += " [locked]"
		}
		options = append(options, label)
	}
	return append(options, choiceRegenerateAll, choiceDone)
}

// describeChoice returns the hint of row i, or nothing for the global choices.
func describeChoice(view session.View, i int) string {
	if i < 0 || i >= len(view.Rows) {
		return ""
	}
	return view.Rows[i].Hint
}

func requireText(value string) error {
	if strings.TrimSpace(value) == "" {
		return errors.New("a name is required")
	}
	return nil
}
