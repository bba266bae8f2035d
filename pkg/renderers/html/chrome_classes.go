package html

// ChromeClass is a typed identifier for the page's semantic CSS classes.
type ChromeClass string

const (
	ClassPage       ChromeClass = "autofill-page"
	ClassForm       ChromeClass = "autofill-form"
	ClassNameBar    ChromeClass = "autofill-name"
	ClassNotices    ChromeClass = "autofill-notices"
	ClassRow        ChromeClass = "autofill-row"
	ClassField      ChromeClass = "autofill-field"
	ClassLocked     ChromeClass = "autofill-locked"
	ClassMetric     ChromeClass = "autofill-metric"
	ClassFieldError ChromeClass = "autofill-field-error"
	ClassActions    ChromeClass = "autofill-actions"
	ClassPreview    ChromeClass = "autofill-preview"
)

func chromeClasses() map[string]string {
	return map[string]string{
		"page":        string(ClassPage),
		"form":        string(ClassForm),
		"name":        string(ClassNameBar),
		"notices":     string(ClassNotices),
		"row":         string(ClassRow),
		"field":       string(ClassField),
		"locked":      string(ClassLocked),
		"metric":      string(ClassMetric),
		"field_error": string(ClassFieldError),
		"actions":     string(ClassActions),
		"preview":     string(ClassPreview),
	}
}
