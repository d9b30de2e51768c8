// internal/models/chat.go
package models

// ChatMessage is one entry in a chat-widget transcript. Messages are
// append-only; IsError marks assistant replies that stand in for a failed
// service call.
type ChatMessage struct {
	Role    ChatRole `json:"role"`
	Text    string   `json:"text"`
	IsError bool     `json:"is_error,omitempty"`
}
