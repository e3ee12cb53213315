package emaillog

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kamp-aid/backend/internal/models"
)

// Repository handles email_logs persistence for donation receipts.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an email log repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts a pending receipt log.
func (r *Repository) Create(ctx context.Context, el *models.EmailLog) error {
	const q = `INSERT INTO email_logs (donation_id, recipient_email, subject, status)
		VALUES ($1, $2, NULLIF($3,''), $4)
		RETURNING id, created_at`
	if el.Status == "" {
		el.Status = models.EmailStatusPending
	}
	return r.pool.QueryRow(ctx, q, el.DonationID, el.RecipientEmail, el.Subject, el.Status).
		Scan(&el.ID, &el.CreatedAt)
}

// MarkSent records successful delivery.
func (r *Repository) MarkSent(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `UPDATE email_logs SET status = $2, sent_at = NOW() WHERE id = $1`, id, models.EmailStatusSent)
	return err
}

// MarkFailed records a delivery failure with its message.
func (r *Repository) MarkFailed(ctx context.Context, id uuid.UUID, errMsg string) error {
	_, err := r.pool.Exec(ctx, `UPDATE email_logs SET status = $2, error_message = $3 WHERE id = $1`, id, models.EmailStatusFailed, errMsg)
	return err
}

// ListByDonation returns receipt logs for a donation, newest first.
func (r *Repository) ListByDonation(ctx context.Context, donationID uuid.UUID) ([]models.EmailLog, error) {
	const q = `SELECT id, donation_id, recipient_email, COALESCE(subject,''), status, sent_at, COALESCE(error_message,''), created_at
		FROM email_logs WHERE donation_id = $1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, q, donationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.EmailLog
	for rows.Next() {
		var el models.EmailLog
		if err := rows.Scan(&el.ID, &el.DonationID, &el.RecipientEmail, &el.Subject, &el.Status, &el.SentAt, &el.ErrorMessage, &el.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, el)
	}
	return list, rows.Err()
}
