package models

import "time"

// Message covers both chat messages and contact form submissions; the
// latter carry Source "contact_form".
type Message struct {
	ID        string     `json:"id"`
	Text      string     `json:"text"`
	Sender    string     `json:"sender"`
	Email     string     `json:"email,omitempty"`
	RoomID    string     `json:"roomId,omitempty"`
	Source    string     `json:"source,omitempty"`
	Read      bool       `json:"read"`
	Replied   bool       `json:"replied"`
	ReplyText string     `json:"replyText,omitempty"`
	RepliedAt *time.Time `json:"repliedAt,omitempty"`
	Timestamp time.Time  `json:"timestamp"`
}
