package app

// Danger grades how destructive a pending command is.
type Danger string

// Danger levels.
const (
	DangerWarning Danger = "warning"
	DangerHigh    Danger = "danger"
)

// Decision describes a command that needs the user's confirmation before it
// runs. Shells present Message and call the command only when the user agrees.
type Decision struct {
	RequiresConfirmation bool   `json:"requiresConfirmation"`
	Danger               Danger `json:"danger"`
	Title                string `json:"title"`
	Message              string `json:"message"`
	ConfirmText          string `json:"confirmText"`
}
