package models

import (
	"time"

	"github.com/google/uuid"
)

// ApplicationStatus values. Any status may follow any other; the admin
// endpoint performs an unconditional overwrite, unlike profile verification.
const (
	ApplicationPending  = "pending"
	ApplicationReviewed = "reviewed"
	ApplicationAccepted = "accepted"
	ApplicationRejected = "rejected"
)

// InvolvementTypes are the recognized ways an NGO can join a project.
var InvolvementTypes = map[string]bool{
	"Technical Support":  true,
	"Funding":            true,
	"Resource Provision": true,
	"Operations":         true,
	"Other":              true,
}

// Application is an NGO's request to partner on a project.
type Application struct {
	ID                 uuid.UUID `json:"id"`
	ProjectID          uuid.UUID `json:"project_id"`
	OrganizationName   string    `json:"organization_name"`
	RepresentativeName string    `json:"representative_name"`
	Email              string    `json:"email"`
	Phone              string    `json:"phone"`
	InvolvementType    string    `json:"involvement_type"`
	Message            string    `json:"message"`
	Status             string    `json:"status"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// ApplicationWithProject embeds the target project name for admin listings.
type ApplicationWithProject struct {
	Application
	ProjectName string `json:"project_name"`
}
