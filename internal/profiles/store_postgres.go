package profiles

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kamp-aid/backend/internal/models"
)

// PostgresStore is the pgx-backed profile store.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a profile store on the given pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const profileColumns = `p.id, p.user_id, p.kind,
	COALESCE(p.category,''), COALESCE(p.description,''), COALESCE(p.phone,''), COALESCE(p.website,''), COALESCE(p.interest,''),
	p.setup_status, COALESCE(p.action_reason,''), p.created_at, p.updated_at`

const userJoinColumns = `u.id, u.name, u.email, u.type, u.setup_status, u.account_status, u.created_at`

func scanProfile(row pgx.Row) (*models.Profile, error) {
	var p models.Profile
	err := row.Scan(&p.ID, &p.UserID, &p.Kind, &p.Category, &p.Description, &p.Phone, &p.Website, &p.Interest,
		&p.SetupStatus, &p.ActionReason, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func scanProfileWithUser(row pgx.Row) (*models.ProfileWithUser, error) {
	var pw models.ProfileWithUser
	err := row.Scan(&pw.ID, &pw.UserID, &pw.Kind, &pw.Category, &pw.Description, &pw.Phone, &pw.Website, &pw.Interest,
		&pw.SetupStatus, &pw.ActionReason, &pw.CreatedAt, &pw.UpdatedAt,
		&pw.User.ID, &pw.User.Name, &pw.User.Email, &pw.User.Type, &pw.User.SetupStatus, &pw.User.AccountStatus, &pw.User.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &pw, nil
}

// Create inserts a profile for a user.
func (s *PostgresStore) Create(ctx context.Context, p *models.Profile) error {
	const q = `INSERT INTO profiles (user_id, kind, category, description, phone, website, interest, setup_status)
		VALUES ($1, $2, NULLIF($3,''), NULLIF($4,''), NULLIF($5,''), NULLIF($6,''), NULLIF($7,''), $8)
		RETURNING id, created_at, updated_at`
	if p.SetupStatus == "" {
		p.SetupStatus = string(StatusDetailsPending)
	}
	return s.pool.QueryRow(ctx, q, p.UserID, string(p.Kind), p.Category, p.Description, p.Phone, p.Website, p.Interest, p.SetupStatus).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

// GetByID returns a profile with its owning user.
func (s *PostgresStore) GetByID(ctx context.Context, id uuid.UUID) (*models.ProfileWithUser, error) {
	q := `SELECT ` + profileColumns + `, ` + userJoinColumns + `
		FROM profiles p INNER JOIN users u ON u.id = p.user_id
		WHERE p.id = $1`
	return scanProfileWithUser(s.pool.QueryRow(ctx, q, id))
}

// GetByUser returns the profile owned by userID with the given kind.
func (s *PostgresStore) GetByUser(ctx context.Context, userID uuid.UUID, kind models.ProfileKind) (*models.Profile, error) {
	q := `SELECT ` + profileColumns + ` FROM profiles p WHERE p.user_id = $1 AND p.kind = $2`
	return scanProfile(s.pool.QueryRow(ctx, q, userID, string(kind)))
}

// List returns all profiles of a kind with their owning users, newest first.
func (s *PostgresStore) List(ctx context.Context, kind models.ProfileKind) ([]models.ProfileWithUser, error) {
	q := `SELECT ` + profileColumns + `, ` + userJoinColumns + `
		FROM profiles p INNER JOIN users u ON u.id = p.user_id
		WHERE p.kind = $1
		ORDER BY p.created_at DESC`
	rows, err := s.pool.Query(ctx, q, string(kind))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.ProfileWithUser
	for rows.Next() {
		var pw models.ProfileWithUser
		if err := rows.Scan(&pw.ID, &pw.UserID, &pw.Kind, &pw.Category, &pw.Description, &pw.Phone, &pw.Website, &pw.Interest,
			&pw.SetupStatus, &pw.ActionReason, &pw.CreatedAt, &pw.UpdatedAt,
			&pw.User.ID, &pw.User.Name, &pw.User.Email, &pw.User.Type, &pw.User.SetupStatus, &pw.User.AccountStatus, &pw.User.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, pw)
	}
	return list, rows.Err()
}

// UpdateDetails applies the setup form fields to the profile owned by userID.
func (s *PostgresStore) UpdateDetails(ctx context.Context, userID uuid.UUID, kind models.ProfileKind, upd DetailsUpdate) (*models.Profile, error) {
	const q = `UPDATE profiles p SET
			category = COALESCE($3::text, category),
			description = COALESCE($4::text, description),
			phone = COALESCE($5::text, phone),
			website = COALESCE($6::text, website),
			interest = COALESCE($7::text, interest),
			updated_at = NOW()
		WHERE user_id = $1 AND kind = $2
		RETURNING p.id, p.user_id, p.kind,
			COALESCE(p.category,''), COALESCE(p.description,''), COALESCE(p.phone,''), COALESCE(p.website,''), COALESCE(p.interest,''),
			p.setup_status, COALESCE(p.action_reason,''), p.created_at, p.updated_at`
	return scanProfile(s.pool.QueryRow(ctx, q, userID, string(kind), upd.Category, upd.Description, upd.Phone, upd.Website, upd.Interest))
}

// SetStatus writes the profile status and mirrors it onto the owning user in
// one transaction, so the two records cannot end up disagreeing.
func (s *PostgresStore) SetStatus(ctx context.Context, id uuid.UUID, status Status, reason *string) (*models.ProfileWithUser, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var userID uuid.UUID
	const updProfile = `UPDATE profiles SET
			setup_status = $2,
			action_reason = CASE WHEN $3::text IS NULL THEN action_reason ELSE NULLIF($3, '') END,
			updated_at = NOW()
		WHERE id = $1
		RETURNING user_id`
	err = tx.QueryRow(ctx, updProfile, id, string(status), reason).Scan(&userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	const updUser = `UPDATE users SET setup_status = $2, account_status = $2, updated_at = NOW() WHERE id = $1`
	if _, err := tx.Exec(ctx, updUser, userID, string(status)); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// Delete removes the profile's owning user; the profile row cascades.
func (s *PostgresStore) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM users u USING profiles p WHERE p.id = $1 AND u.id = p.user_id`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CountByStatus returns profile counts per status for a kind.
func (s *PostgresStore) CountByStatus(ctx context.Context, kind models.ProfileKind) (map[string]int, error) {
	rows, err := s.pool.Query(ctx, `SELECT setup_status, COUNT(*) FROM profiles WHERE kind = $1 GROUP BY setup_status`, string(kind))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	counts := make(map[string]int)
	for rows.Next() {
		var st string
		var n int
		if err := rows.Scan(&st, &n); err != nil {
			return nil, err
		}
		counts[st] = n
	}
	return counts, rows.Err()
}
