package donations

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kamp-aid/backend/internal/models"
)

// PostgresStore is the pgx-backed donation store.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a donation store on the given pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Record inserts the donation and increments the project's raised total and
// donor count in one transaction. Concurrent donations serialize on the
// project row, so the totals always equal the sum of recorded donations.
func (s *PostgresStore) Record(ctx context.Context, d *models.Donation) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `UPDATE projects SET raised = raised + $2, donors = donors + 1, updated_at = NOW() WHERE id = $1`,
		d.ProjectID, d.Amount)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrProjectNotFound
	}

	const q = `INSERT INTO donations (project_id, user_id, donor_type, name, amount, message, cause, payment_method)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6,''), $7, $8)
		RETURNING id, created_at`
	if err := tx.QueryRow(ctx, q, d.ProjectID, d.UserID, d.DonorType, d.Name, d.Amount, d.Message, d.Cause, d.PaymentMethod).
		Scan(&d.ID, &d.CreatedAt); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// ListByProject returns donations for a project, newest first.
func (s *PostgresStore) ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Donation, error) {
	const q = `SELECT id, project_id, user_id, donor_type, name, amount, COALESCE(message,''), cause, payment_method, created_at
		FROM donations WHERE project_id = $1 ORDER BY created_at DESC`
	rows, err := s.pool.Query(ctx, q, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Donation
	for rows.Next() {
		var d models.Donation
		if err := rows.Scan(&d.ID, &d.ProjectID, &d.UserID, &d.DonorType, &d.Name, &d.Amount, &d.Message, &d.Cause, &d.PaymentMethod, &d.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// Totals returns the sum of amounts and the donation count across all projects.
func (s *PostgresStore) Totals(ctx context.Context) (float64, int, error) {
	var sum float64
	var count int
	err := s.pool.QueryRow(ctx, `SELECT COALESCE(SUM(amount), 0), COUNT(*) FROM donations`).Scan(&sum, &count)
	return sum, count, err
}
