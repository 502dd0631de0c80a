package store

import "time"

// Citation is a web reference attached to an assistant reply.
type Citation struct {
	Title string `json:"title"`
	Link  string `json:"link"`
}

// Message is one entry of an assistant conversation transcript.
type Message struct {
	Role      string     `json:"role"` // "user" | "assistant"
	Text      string     `json:"text"`
	Citations []Citation `json:"citations,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// Conversation is the append-only transcript of one open assistant widget.
// It lives only in memory.
type Conversation struct {
	ID       string    `json:"id"`
	UserID   string    `json:"user_id"`
	Messages []Message `json:"messages"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)
