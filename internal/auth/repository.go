package auth

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kamp-aid/backend/internal/models"
)

// Repository handles user persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an auth repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const userColumns = `id, name, email, password_hash, type, setup_status, account_status, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Type, &u.SetupStatus, &u.AccountStatus, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByID returns a user by ID.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

// GetByEmail returns a user by email.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

// Create inserts a new user. Non-Admin users start with setup_status details_pending.
func (r *Repository) Create(ctx context.Context, name, email, passwordHash string, userType models.UserType) (*models.User, error) {
	status := "verified"
	if userType != models.TypeAdmin {
		status = "details_pending"
	}
	const q = `INSERT INTO users (name, email, password_hash, type, setup_status, account_status)
		VALUES ($1, $2, $3, $4, $5, $5)
		RETURNING ` + userColumns
	return scanUser(r.pool.QueryRow(ctx, q, name, email, passwordHash, string(userType), status))
}

// ListByType returns users of the given type, e.g. all admins.
func (r *Repository) ListByType(ctx context.Context, userType models.UserType) ([]models.UserPublic, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, email, type, setup_status, account_status, created_at
		FROM users WHERE type = $1 ORDER BY name, email`, string(userType))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.UserPublic
	for rows.Next() {
		var u models.UserPublic
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Type, &u.SetupStatus, &u.AccountStatus, &u.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// Update changes name, email and optionally the password hash of a user.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, name, email, passwordHash string) (*models.User, error) {
	const q = `UPDATE users SET
			name = COALESCE(NULLIF($1, ''), name),
			email = COALESCE(NULLIF($2, ''), email),
			password_hash = COALESCE(NULLIF($3, ''), password_hash),
			updated_at = NOW()
		WHERE id = $4
		RETURNING ` + userColumns
	return scanUser(r.pool.QueryRow(ctx, q, name, email, passwordHash, id))
}

// Delete removes a user; the profile row cascades.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
