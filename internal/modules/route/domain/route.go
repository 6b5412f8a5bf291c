package domain

import "time"

// Route forwards messages from one chat to another when they pass a filter
type Route struct {
	ID                string    `json:"id"`
	SourceChatID      int64     `json:"source_chat_id"`
	SourceTitle       string    `json:"source_title"`
	SourceUsername    string    `json:"source_username,omitempty"`
	DestinationChatID int64     `json:"destination_chat_id"`
	FilterID          string    `json:"filter_id"`
	AddedBy           int64     `json:"added_by"`
	AddedAt           time.Time `json:"added_at"`
	LastForward       time.Time `json:"last_forward"`
	IsActive          bool      `json:"is_active"`
}
