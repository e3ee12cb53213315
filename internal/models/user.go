package models

import (
	"time"

	"github.com/google/uuid"
)

// UserType is the account type, fixed at registration.
type UserType string

const (
	TypeOrganization UserType = "Organization"
	TypeIndividual   UserType = "Individual"
	TypeAdmin        UserType = "Admin"
)

// User represents a platform account. SetupStatus and AccountStatus mirror the
// owning profile's verification status; Admin accounts have no profile and stay verified.
type User struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Password      string    `json:"-"`
	Type          UserType  `json:"type"`
	SetupStatus   string    `json:"setup_status"`
	AccountStatus string    `json:"account_status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// UserPublic is User without sensitive fields for API responses.
type UserPublic struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Type          UserType  `json:"type"`
	SetupStatus   string    `json:"setup_status"`
	AccountStatus string    `json:"account_status"`
	CreatedAt     time.Time `json:"created_at"`
}

// ToPublic converts User to UserPublic.
func (u *User) ToPublic() UserPublic {
	return UserPublic{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		Type:          u.Type,
		SetupStatus:   u.SetupStatus,
		AccountStatus: u.AccountStatus,
		CreatedAt:     u.CreatedAt,
	}
}
