package projects

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kamp-aid/backend/internal/models"
)

// ErrNotFound is returned when the referenced project does not exist.
var ErrNotFound = errors.New("project not found")

// Repository handles project persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a projects repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const projectColumns = `id, name, ngos, categories, districts, target_audience, status, start_date, end_date,
	goal, raised, donors, COALESCE(budget_breakdown,''), COALESCE(ngo_roles,''), description,
	COALESCE(milestones,''), COALESCE(impact_goals,''), is_public, is_open_for_donations,
	is_open_for_organizations, compliance_agreed, COALESCE(image,''), COALESCE(image_type,''), created_at, updated_at`

func scanProject(row pgx.Row) (*models.Project, error) {
	var p models.Project
	err := row.Scan(&p.ID, &p.Name, &p.NGOs, &p.Categories, &p.Districts, &p.TargetAudience, &p.Status,
		&p.StartDate, &p.EndDate, &p.Goal, &p.Raised, &p.Donors, &p.BudgetBreakdown, &p.NGORoles,
		&p.Description, &p.Milestones, &p.ImpactGoals, &p.IsPublic, &p.IsOpenForDonations,
		&p.IsOpenForOrganizations, &p.ComplianceAgreed, &p.Image, &p.ImageType, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a project.
func (r *Repository) Create(ctx context.Context, p *models.Project) error {
	const q = `INSERT INTO projects (name, ngos, categories, districts, target_audience, status, start_date, end_date,
			goal, raised, donors, budget_breakdown, ngo_roles, description, milestones, impact_goals,
			is_public, is_open_for_donations, is_open_for_organizations, compliance_agreed, image, image_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NULLIF($12,''), NULLIF($13,''), $14, NULLIF($15,''), NULLIF($16,''),
			$17, $18, $19, $20, NULLIF($21,''), NULLIF($22,''))
		RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, q, p.Name, p.NGOs, p.Categories, p.Districts, p.TargetAudience, p.Status,
		p.StartDate, p.EndDate, p.Goal, p.Raised, p.Donors, p.BudgetBreakdown, p.NGORoles, p.Description,
		p.Milestones, p.ImpactGoals, p.IsPublic, p.IsOpenForDonations, p.IsOpenForOrganizations,
		p.ComplianceAgreed, p.Image, p.ImageType).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

// GetByID returns a project by ID.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	return scanProject(r.pool.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1`, id))
}

// List returns projects, optionally restricted to public ones, newest first.
func (r *Repository) List(ctx context.Context, publicOnly bool) ([]models.Project, error) {
	q := `SELECT ` + projectColumns + ` FROM projects`
	if publicOnly {
		q += ` WHERE is_public`
	}
	q += ` ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProjects(rows)
}

// ListByNGO returns projects whose ngos array contains the given display name.
// Association is by name, matching how the rest of the system refers to NGOs.
func (r *Repository) ListByNGO(ctx context.Context, name string) ([]models.Project, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+projectColumns+` FROM projects WHERE $1 = ANY(ngos) ORDER BY created_at DESC`, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProjects(rows)
}

func collectProjects(rows pgx.Rows) ([]models.Project, error) {
	var list []models.Project
	for rows.Next() {
		var p models.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.NGOs, &p.Categories, &p.Districts, &p.TargetAudience, &p.Status,
			&p.StartDate, &p.EndDate, &p.Goal, &p.Raised, &p.Donors, &p.BudgetBreakdown, &p.NGORoles,
			&p.Description, &p.Milestones, &p.ImpactGoals, &p.IsPublic, &p.IsOpenForDonations,
			&p.IsOpenForOrganizations, &p.ComplianceAgreed, &p.Image, &p.ImageType, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Update overwrites the editable fields of a project. Raised and donors are
// mutated only by donations, never here.
func (r *Repository) Update(ctx context.Context, p *models.Project) (*models.Project, error) {
	const q = `UPDATE projects SET
			name = $2, ngos = $3, categories = $4, districts = $5, target_audience = $6, status = $7,
			start_date = $8, end_date = $9, goal = $10, budget_breakdown = NULLIF($11,''), ngo_roles = NULLIF($12,''),
			description = $13, milestones = NULLIF($14,''), impact_goals = NULLIF($15,''),
			is_public = $16, is_open_for_donations = $17, is_open_for_organizations = $18,
			compliance_agreed = $19, image = NULLIF($20,''), image_type = NULLIF($21,''), updated_at = NOW()
		WHERE id = $1
		RETURNING ` + projectColumns
	return scanProject(r.pool.QueryRow(ctx, q, p.ID, p.Name, p.NGOs, p.Categories, p.Districts, p.TargetAudience,
		p.Status, p.StartDate, p.EndDate, p.Goal, p.BudgetBreakdown, p.NGORoles, p.Description, p.Milestones,
		p.ImpactGoals, p.IsPublic, p.IsOpenForDonations, p.IsOpenForOrganizations, p.ComplianceAgreed, p.Image, p.ImageType))
}

// SetImage stores the image URL and type after an upload.
func (r *Repository) SetImage(ctx context.Context, id uuid.UUID, url, imageType string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE projects SET image = $2, image_type = $3, updated_at = NOW() WHERE id = $1`, id, url, imageType)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a project.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
