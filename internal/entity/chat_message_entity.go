package entity

// ChatMessage is one entry of a session's conversation history.
// Messages are immutable once appended; slice order is conversation order.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
