package models

import (
	"time"

	"github.com/google/uuid"
)

// ProfileKind distinguishes organization and individual supporter profiles.
type ProfileKind string

const (
	KindOrganization ProfileKind = "organization"
	KindIndividual   ProfileKind = "individual"
)

// Profile is the per-role supplementary record, 1:1 with a non-Admin user.
// SetupStatus is the verification state machine field; ActionReason is set
// when the profile is banned or suspended.
type Profile struct {
	ID           uuid.UUID   `json:"id"`
	UserID       uuid.UUID   `json:"user_id"`
	Kind         ProfileKind `json:"kind"`
	Category     string      `json:"category,omitempty"`
	Description  string      `json:"description,omitempty"`
	Phone        string      `json:"phone,omitempty"`
	Website      string      `json:"website,omitempty"`
	Interest     string      `json:"interest,omitempty"`
	SetupStatus  string      `json:"setup_status"`
	ActionReason string      `json:"action_reason,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// ProfileWithUser embeds the owning account details for admin listings.
type ProfileWithUser struct {
	Profile
	User UserPublic `json:"user"`
}
