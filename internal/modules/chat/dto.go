package chat

import "time"

// Message is one chat message inside an appointment's conversation.
// Conversations live in memory only and do not survive a restart.
type Message struct {
	ID            string    `json:"id"`
	AppointmentID int64     `json:"appointment_id"`
	SenderID      int64     `json:"sender_id"`
	Text          string    `json:"text"`
	SentAt        time.Time `json:"sent_at"`
}

// Template is a provider-authored quick reply.
type Template struct {
	ID         string    `json:"id"`
	ProviderID int64     `json:"provider_id"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created_at"`
}

type SendMessageRequest struct {
	Text string `json:"text" binding:"required,max=2000"`
}

type CreateTemplateRequest struct {
	Text string `json:"text" binding:"required,max=500"`
}
