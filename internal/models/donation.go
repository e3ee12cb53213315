package models

import (
	"time"

	"github.com/google/uuid"
)

// DonorType is the declared donor kind on a donation.
const (
	DonorIndividual   = "Individual"
	DonorOrganization = "Organization"
)

// PaymentMethod tags for donations. Capture is simulated; no gateway is involved.
const (
	PaymentCard        = "Card"
	PaymentMobileMoney = "Mobile Money"
)

// Donation is an immutable donation record against a project.
// UserID is optional; anonymous and guest donations carry only a display name.
type Donation struct {
	ID            uuid.UUID  `json:"id"`
	ProjectID     uuid.UUID  `json:"project_id"`
	UserID        *uuid.UUID `json:"user_id,omitempty"`
	DonorType     string     `json:"donor_type"`
	Name          string     `json:"name"`
	Amount        float64    `json:"amount"`
	Message       string     `json:"message,omitempty"`
	Cause         string     `json:"cause"`
	PaymentMethod string     `json:"payment_method"`
	CreatedAt     time.Time  `json:"created_at"`
}
