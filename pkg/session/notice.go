package session

import "fmt"

// NoticeLevel classifies a notice.
type NoticeLevel string

const (
	NoticeError   NoticeLevel = "error"
	NoticeSuccess NoticeLevel = "success"
	NoticeInfo    NoticeLevel = "info"
)

// Notice is a user-facing message produced by a session operation.
type Notice struct {
	Level   NoticeLevel `json:"level"`
	Message string      `json:"message"`
}

const (
	// GenerationFailedMessage is shown once per failed generation.
	GenerationFailedMessage = "Failed to parse model output. Check prompt or model response."
	// ReadyMessage is shown whenever the session holds suggestions.
	ReadyMessage = "All fields editable and ready for assistant code generation!"
)

// RegenerationFailedMessage is shown once per failed field regeneration.
func RegenerationFailedMessage(field string) string {
	return fmt.Sprintf("Failed to regenerate field: %s", field)
}
