package models

import "time"

// ChatMessage is a persisted group chat message. Ids are strictly
// increasing per store; timestamps are UTC.
type ChatMessage struct {
	ID        int       `json:"id"`
	GroupID   int       `json:"group_id"`
	SenderID  int       `json:"sender_id"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatMessageView is the API shape for listed messages, with the sender
// display name resolved.
type ChatMessageView struct {
	SenderID int    `json:"sender_id"`
	Sender   string `json:"sender"`
	Message  string `json:"message"`
	Time     string `json:"time"`
	Type     string `json:"type"`
}
