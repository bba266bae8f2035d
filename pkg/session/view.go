package session

import "github.com/goliatone/go-autofill/pkg/model"

// Row is the render-ready view of a single field.
type Row struct {
	Field          string  `json:"field"`
	Label          string  `json:"label"`
	Hint           string  `json:"hint,omitempty"`
	Text           string  `json:"text"`
	Suggested      string  `json:"suggested"`
	Draft          string  `json:"draft"`
	Confidence     float64 `json:"confidence"`
	ConfidenceText string  `json:"confidence_text"`
	State          State   `json:"state"`
	Locked         bool    `json:"locked"`
	Regenerating   bool    `json:"regenerating"`
}

// View is an immutable snapshot of a session.
type View struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Rows       []Row    `json:"rows"`
	Notices    []Notice `json:"notices,omitempty"`
	Generating bool     `json:"generating"`
}

// Ready reports whether there is anything to edit.
func (v View) Ready() bool {
	return len(v.Rows) > 0
}

// Fields returns the row keys in display order.
func (v View) Fields() []string {
	out := make([]string, 0, len(v.Rows))
	for _, row := range v.Rows {
		out = append(out, row.Field)
	}
	return out
}

// Row returns the row for field.
func (v View) Row(field string) (Row, bool) {
	for _, row := range v.Rows {
		if row.Field == field {
			return row, true
		}
	}
	return Row{}, false
}

// AllNotices returns pending notices followed by the ready notice when the
// view holds suggestions.
func (v View) AllNotices() []Notice {
	out := append([]Notice(nil), v.Notices...)
	if v.Ready() {
		out = append(out, Notice{Level: NoticeSuccess, Message: ReadyMessage})
	}
	return out
}

// Suggestions rebuilds the ordered mapping shown by the view, with the text
// each row currently displays.
func (v View) Suggestions() model.Suggestions {
	var out model.Suggestions
	for _, row := range v.Rows {
		out.Set(model.FieldSuggestion{Field: row.Field, Text: row.Text, Confidence: row.Confidence})
	}
	return out
}
