package profiles

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kamp-aid/backend/internal/middleware"
	"github.com/kamp-aid/backend/internal/models"
	"github.com/kamp-aid/backend/pkg/response"
)

// Handler handles the authenticated profile setup endpoints.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a profiles handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{service: service, logger: logger}
}

// UpdateRequest is the body for PUT /profiles/org/me and /profiles/individual/me.
// Finalize submits the setup form for review.
type UpdateRequest struct {
	Category    *string `json:"category"`
	Description *string `json:"description"`
	Phone       *string `json:"phone"`
	Website     *string `json:"website"`
	Interest    *string `json:"interest"`
	Finalize    bool    `json:"finalize"`
}

// GetOrg handles GET /profiles/org/me.
func (h *Handler) GetOrg(c *gin.Context) { h.get(c, models.KindOrganization) }

// GetIndividual handles GET /profiles/individual/me.
func (h *Handler) GetIndividual(c *gin.Context) { h.get(c, models.KindIndividual) }

// UpdateOrg handles PUT /profiles/org/me.
func (h *Handler) UpdateOrg(c *gin.Context) { h.update(c, models.KindOrganization) }

// UpdateIndividual handles PUT /profiles/individual/me.
func (h *Handler) UpdateIndividual(c *gin.Context) { h.update(c, models.KindIndividual) }

func (h *Handler) get(c *gin.Context, kind models.ProfileKind) {
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)
	p, err := h.service.Store().GetByUser(c.Request.Context(), userID, kind)
	if err == ErrNotFound {
		response.NotFound(c, "Profile not found")
		return
	}
	if err != nil {
		h.logger.Error("load profile failed", zap.Error(err), zap.String("user_id", userID.String()))
		response.Internal(c, "failed to load profile")
		return
	}
	response.OK(c, p)
}

func (h *Handler) update(c *gin.Context, kind models.ProfileKind) {
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	upd := DetailsUpdate{
		Category:    req.Category,
		Description: req.Description,
		Phone:       req.Phone,
		Website:     req.Website,
		Interest:    req.Interest,
	}
	p, err := h.service.UpdateDetails(c.Request.Context(), userID, kind, upd, req.Finalize)
	switch {
	case err == ErrNotFound:
		response.NotFound(c, "Profile not found")
	case err == ErrIncomplete:
		response.BadRequest(c, "required profile details are missing")
	case err != nil:
		h.logger.Error("update profile failed", zap.Error(err), zap.String("user_id", userID.String()))
		response.Internal(c, "failed to update profile")
	default:
		response.OK(c, p)
	}
}
