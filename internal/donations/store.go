package donations

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/kamp-aid/backend/internal/models"
)

// ErrProjectNotFound is returned when recording against a missing project.
var ErrProjectNotFound = errors.New("project not found")

// Store persists donations. Record inserts the donation and applies the
// project raised/donors increment atomically, so a recorded donation is
// always reflected in the project totals.
type Store interface {
	// Record inserts the donation and increments the project totals in one
	// transaction. Fills ID and CreatedAt on success.
	Record(ctx context.Context, d *models.Donation) error
	// ListByProject returns donations for a project, newest first.
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Donation, error)
	// Totals returns the sum of amounts and the donation count across all projects.
	Totals(ctx context.Context) (float64, int, error)
}
