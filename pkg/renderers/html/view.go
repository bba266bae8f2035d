package html

import (
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-autofill/pkg/export"
	"github.com/goliatone/go-autofill/pkg/render"
	"github.com/goliatone/go-autofill/pkg/session"
	"github.com/goliatone/go-autofill/pkg/themes"
)

type pageView struct {
	Title      string            `json:"title"`
	BasePath   string            `json:"base_path"`
	Name       string            `json:"name"`
	Ready      bool              `json:"ready"`
	Generating bool              `json:"generating"`
	Rows       []rowView         `json:"rows"`
	Notices    []noticeView      `json:"notices"`
	Styles     string            `json:"styles"`
	Theme      themeView         `json:"theme"`
	Classes    map[string]string `json:"classes"`
	Exports    []exportLink      `json:"exports"`
}

type previewView struct {
	Title    string            `json:"title"`
	BasePath string            `json:"base_path"`
	Body     string            `json:"body"`
	Styles   string            `json:"styles"`
	Theme    themeView         `json:"theme"`
	Classes  map[string]string `json:"classes"`
}

type rowView struct {
	Field          string   `json:"field"`
	ControlID      string   `json:"control_id"`
	Label          string   `json:"label"`
	Hint           string   `json:"hint"`
	Text           string   `json:"text"`
	ConfidenceText string   `json:"confidence_text"`
	State          string   `json:"state"`
	Locked         bool     `json:"locked"`
	Regenerating   bool     `json:"regenerating"`
	Errors         []string `json:"errors"`
}

type noticeView struct {
	Level   string `json:"level"`
	Class   string `json:"class"`
	Message string `json:"message"`
}

type themeView struct {
	Name         string `json:"name"`
	Variant      string `json:"variant"`
	CSSVarsStyle string `json:"css_vars_style"`
}

type exportLink struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

func buildPageView(view session.View, opts render.RenderOptions, title, styles string) pageView {
	basePath := strings.TrimRight(strings.TrimSpace(opts.BasePath), "/")
	mapping := render.MapFieldErrors(view, opts.Errors)

	page := pageView{
		Title:      title,
		BasePath:   basePath,
		Name:       view.Name,
		Ready:      view.Ready(),
		Generating: view.Generating,
		Styles:     styles,
		Theme:      buildThemeView(opts.Theme),
		Classes:    chromeClasses(),
	}

	for _, row := range view.Rows {
		page.Rows = append(page.Rows, rowView{
			Field:          row.Field,
			ControlID:      controlID(row.Field),
			Label:          row.Label,
			Hint:           row.Hint,
			Text:           row.Text,
			ConfidenceText: row.ConfidenceText,
			State:          string(row.State),
			Locked:         row.Locked,
			Regenerating:   row.Regenerating,
			Errors:         mapping.Fields[row.Field],
		})
	}

	extras := append([]session.Notice(nil), opts.Notices...)
	for _, message := range mapping.Form {
		extras = append(extras, session.Notice{Level: session.NoticeError, Message: message})
	}
	notices := render.MergeNotices(view.Notices, extras...)
	if view.Ready() {
		notices = append(notices, session.Notice{Level: session.NoticeSuccess, Message: session.ReadyMessage})
	}
	for _, notice := range notices {
		page.Notices = append(page.Notices, noticeView{
			Level:   string(notice.Level),
			Class:   noticeClass(string(notice.Level)),
			Message: notice.Message,
		})
	}

	if page.Ready {
		for _, link := range []struct{ label, format string }{
			{"JSON", "json"}, {"YAML", "yaml"}, {"Markdown", "markdown"},
		} {
			page.Exports = append(page.Exports, exportLink{
				Label: link.label,
				Href:  basePath + "/export?format=" + link.format,
			})
		}
		page.Exports = append(page.Exports, exportLink{Label: "Preview", Href: basePath + "/preview"})
	}
	return page
}

func buildThemeView(cfg *theme.RendererConfig) themeView {
	if cfg == nil {
		return themeView{}
	}
	return themeView{
		Name:         cfg.Theme,
		Variant:      cfg.Variant,
		CSSVarsStyle: themes.CSSVarsStyle(cfg.CSSVars),
	}
}

func buildPreviewView(view session.View, opts render.RenderOptions, title, styles string) previewView {
	if name := strings.TrimSpace(view.Name); name != "" {
		title = name + " · " + title
	}
	doc := export.Build(view)
	return previewView{
		Title:    title,
		BasePath: strings.TrimRight(strings.TrimSpace(opts.BasePath), "/"),
		Body:     export.PreviewHTML(export.Markdown(doc)),
		Styles:   styles,
		Theme:    buildThemeView(opts.Theme),
		Classes:  chromeClasses(),
	}
}
