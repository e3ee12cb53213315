package applications

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kamp-aid/backend/internal/models"
)

// ErrNotFound is returned when the referenced application does not exist.
var ErrNotFound = errors.New("application not found")

// Repository handles NGO partnership application persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an applications repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const applicationColumns = `a.id, a.project_id, a.organization_name, a.representative_name, a.email, a.phone,
	a.involvement_type, a.message, a.status, a.created_at, a.updated_at`

// Create inserts an application with status pending.
func (r *Repository) Create(ctx context.Context, a *models.Application) error {
	const q = `INSERT INTO applications (project_id, organization_name, representative_name, email, phone, involvement_type, message)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, status, created_at, updated_at`
	return r.pool.QueryRow(ctx, q, a.ProjectID, a.OrganizationName, a.RepresentativeName, a.Email, a.Phone, a.InvolvementType, a.Message).
		Scan(&a.ID, &a.Status, &a.CreatedAt, &a.UpdatedAt)
}

// List returns all applications with their project names, newest first.
func (r *Repository) List(ctx context.Context) ([]models.ApplicationWithProject, error) {
	const q = `SELECT ` + applicationColumns + `, p.name
		FROM applications a INNER JOIN projects p ON p.id = a.project_id
		ORDER BY a.created_at DESC`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.ApplicationWithProject
	for rows.Next() {
		var ap models.ApplicationWithProject
		if err := rows.Scan(&ap.ID, &ap.ProjectID, &ap.OrganizationName, &ap.RepresentativeName, &ap.Email, &ap.Phone,
			&ap.InvolvementType, &ap.Message, &ap.Status, &ap.CreatedAt, &ap.UpdatedAt, &ap.ProjectName); err != nil {
			return nil, err
		}
		list = append(list, ap)
	}
	return list, rows.Err()
}

// UpdateStatus overwrites the status unconditionally. Applications have no
// transition guards; any status may follow any other.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Application, error) {
	const q = `UPDATE applications a SET status = $2, updated_at = NOW() WHERE id = $1
		RETURNING ` + applicationColumns
	var a models.Application
	err := r.pool.QueryRow(ctx, q, id, status).Scan(&a.ID, &a.ProjectID, &a.OrganizationName, &a.RepresentativeName,
		&a.Email, &a.Phone, &a.InvolvementType, &a.Message, &a.Status, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}
