package profiles

import (
	"context"

	"github.com/google/uuid"

	"github.com/kamp-aid/backend/internal/models"
)

// DetailsUpdate carries the user-editable setup form fields. Nil fields are
// left unchanged.
type DetailsUpdate struct {
	Category    *string
	Description *string
	Phone       *string
	Website     *string
	Interest    *string
}

// Store persists profiles together with the status mirror on the owning user.
// SetStatus and Delete span the profile and user rows atomically, so a
// successful call never leaves the two records disagreeing.
type Store interface {
	// Create inserts a profile for a user.
	Create(ctx context.Context, p *models.Profile) error
	// GetByID returns a profile with its owning user, or ErrNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (*models.ProfileWithUser, error)
	// GetByUser returns the profile owned by userID with the given kind, or ErrNotFound.
	GetByUser(ctx context.Context, userID uuid.UUID, kind models.ProfileKind) (*models.Profile, error)
	// List returns all profiles of a kind with their owning users, newest first.
	List(ctx context.Context, kind models.ProfileKind) ([]models.ProfileWithUser, error)
	// UpdateDetails applies the setup form fields to the profile owned by userID.
	UpdateDetails(ctx context.Context, userID uuid.UUID, kind models.ProfileKind, upd DetailsUpdate) (*models.Profile, error)
	// SetStatus writes the profile status and mirrors it onto the owning
	// user's setup_status and account_status in one transaction. A non-nil
	// reason also overwrites action_reason.
	SetStatus(ctx context.Context, id uuid.UUID, status Status, reason *string) (*models.ProfileWithUser, error)
	// Delete removes the profile and its owning user, or returns ErrNotFound.
	Delete(ctx context.Context, id uuid.UUID) error
	// CountByStatus returns profile counts per status for a kind.
	CountByStatus(ctx context.Context, kind models.ProfileKind) (map[string]int, error)
}
