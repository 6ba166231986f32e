package models

// Roles of a generative conversation turn.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of a conversation sent to a generative model.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
