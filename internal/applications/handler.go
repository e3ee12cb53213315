package applications

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kamp-aid/backend/internal/models"
	"github.com/kamp-aid/backend/pkg/response"
)

var validStatuses = map[string]bool{
	models.ApplicationPending:  true,
	models.ApplicationReviewed: true,
	models.ApplicationAccepted: true,
	models.ApplicationRejected: true,
}

// Handler handles application HTTP endpoints.
type Handler struct {
	repo   *Repository
	logger *zap.Logger
}

// NewHandler creates an applications handler.
func NewHandler(repo *Repository, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{repo: repo, logger: logger}
}

// CreateRequest is the body for POST /applications.
type CreateRequest struct {
	ProjectID          string `json:"projectId" binding:"required"`
	OrganizationName   string `json:"organizationName" binding:"required"`
	RepresentativeName string `json:"representativeName"`
	Email              string `json:"email" binding:"required,email"`
	Phone              string `json:"phone"`
	InvolvementType    string `json:"involvementType"`
	Message            string `json:"message" binding:"required"`
}

// UpdateStatusRequest is the body for PATCH /applications/:id.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// Create handles POST /applications.
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Missing required fields")
		return
	}
	projectID, err := uuid.Parse(req.ProjectID)
	if err != nil {
		response.BadRequest(c, "invalid project id")
		return
	}
	involvement := req.InvolvementType
	if involvement == "" {
		involvement = "Other"
	}
	if !models.InvolvementTypes[involvement] {
		response.BadRequest(c, "invalid involvement type")
		return
	}
	a := &models.Application{
		ProjectID:          projectID,
		OrganizationName:   req.OrganizationName,
		RepresentativeName: req.RepresentativeName,
		Email:              req.Email,
		Phone:              req.Phone,
		InvolvementType:    involvement,
		Message:            req.Message,
	}
	if err := h.repo.Create(c.Request.Context(), a); err != nil {
		h.logger.Error("create application failed", zap.Error(err), zap.String("project_id", projectID.String()))
		response.Internal(c, "Failed to submit application")
		return
	}
	response.Created(c, gin.H{"message": "Application submitted successfully", "id": a.ID})
}

// List handles GET /applications (admin only).
func (h *Handler) List(c *gin.Context) {
	list, err := h.repo.List(c.Request.Context())
	if err != nil {
		h.logger.Error("list applications failed", zap.Error(err))
		response.Internal(c, "Failed to fetch applications")
		return
	}
	response.OK(c, list)
}

// UpdateStatus handles PATCH /applications/:id (admin only). The status is
// overwritten unconditionally once it parses.
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid application id")
		return
	}
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "status required")
		return
	}
	if !validStatuses[req.Status] {
		response.BadRequest(c, "invalid status")
		return
	}
	a, err := h.repo.UpdateStatus(c.Request.Context(), id, req.Status)
	if err == ErrNotFound {
		response.NotFound(c, "Application not found")
		return
	}
	if err != nil {
		h.logger.Error("update application failed", zap.Error(err), zap.String("application_id", id.String()))
		response.Internal(c, "Failed to update application")
		return
	}
	response.OK(c, a)
}
