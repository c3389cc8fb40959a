package entities

// Message roles for conversation history.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of a user/assistant conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
