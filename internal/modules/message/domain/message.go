package domain

import "time"

// Message is a journal entry for a message that was forwarded along a route
type Message struct {
	ID                int64     `json:"id"`
	RouteID           string    `json:"route_id"`
	SourceChatID      int64     `json:"source_chat_id"`
	DestinationChatID int64     `json:"destination_chat_id"`
	FilterID          string    `json:"filter_id"`
	Label             Label     `json:"label"`
	Text              string    `json:"text"`
	Author            string    `json:"author"`
	Link              string    `json:"link,omitempty"`
	Date              time.Time `json:"date"`
	ForwardedAt       time.Time `json:"forwarded_at"`
}
