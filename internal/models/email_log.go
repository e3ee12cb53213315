package models

import (
	"time"

	"github.com/google/uuid"
)

// EmailLogStatus values for receipt emails.
const (
	EmailStatusPending = "pending"
	EmailStatusSent    = "sent"
	EmailStatusFailed  = "failed"
)

// EmailLog records a donation receipt email written by the background worker.
type EmailLog struct {
	ID             uuid.UUID  `json:"id"`
	DonationID     uuid.UUID  `json:"donation_id"`
	RecipientEmail string     `json:"recipient_email"`
	Subject        string     `json:"subject"`
	Status         string     `json:"status"`
	SentAt         *time.Time `json:"sent_at,omitempty"`
	ErrorMessage   string     `json:"error_message,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}
