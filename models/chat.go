package models

import "time"

// Sender identifies who authored a chat message.
type Sender string

const (
	SenderCustomer   Sender = "CUSTOMER"
	SenderTechnician Sender = "TECHNICIAN"
	SenderSystem     Sender = "SYSTEM"
)

// ChatMessage is one entry in the booking chat log.
type ChatMessage struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Sender    Sender    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
	Read      bool      `json:"isRead"`
}
