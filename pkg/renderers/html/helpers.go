package html

import (
	"strings"
	"unicode"
)

// controlID turns a field key into a safe element id. Keys come from the
// model and may contain anything.
func controlID(field string) string {
	var b strings.Builder
	b.WriteString("af-")
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(field)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteByte('-')
			lastDash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

func noticeClass(level string) string {
	switch level {
	case "error":
		return "autofill-notice autofill-notice--error"
	case "success":
		return "autofill-notice autofill-notice--success"
	default:
		return "autofill-notice"
	}
}
