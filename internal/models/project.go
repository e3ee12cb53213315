package models

import (
	"time"

	"github.com/google/uuid"
)

// Project is an aid project with a running donation total.
// NGOs are referenced by display name, not by account ID (denormalized
// association carried over from the data this system reports on).
type Project struct {
	ID                     uuid.UUID  `json:"id"`
	Name                   string     `json:"name"`
	NGOs                   []string   `json:"ngos"`
	Categories             []string   `json:"categories"`
	Districts              []string   `json:"districts"`
	TargetAudience         []string   `json:"target_audience"`
	Status                 string     `json:"status"`
	StartDate              *time.Time `json:"start_date,omitempty"`
	EndDate                *time.Time `json:"end_date,omitempty"`
	Goal                   float64    `json:"goal"`
	Raised                 float64    `json:"raised"`
	Donors                 int        `json:"donors"`
	BudgetBreakdown        string     `json:"budget_breakdown,omitempty"`
	NGORoles               string     `json:"ngo_roles,omitempty"`
	Description            string     `json:"description"`
	Milestones             string     `json:"milestones,omitempty"`
	ImpactGoals            string     `json:"impact_goals,omitempty"`
	IsPublic               bool       `json:"is_public"`
	IsOpenForDonations     bool       `json:"is_open_for_donations"`
	IsOpenForOrganizations bool       `json:"is_open_for_organizations"`
	ComplianceAgreed       bool       `json:"compliance_agreed"`
	Image                  string     `json:"image,omitempty"`
	ImageType              string     `json:"image_type,omitempty"`
	CreatedAt              time.Time  `json:"created_at"`
	UpdatedAt              time.Time  `json:"updated_at"`
}
