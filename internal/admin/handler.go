package admin

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kamp-aid/backend/internal/models"
	"github.com/kamp-aid/backend/internal/profiles"
	"github.com/kamp-aid/backend/internal/projects"
	"github.com/kamp-aid/backend/pkg/response"
)

// Handler exposes the admin moderation endpoints over organization and
// supporter profiles. The same handler serves both kinds; routes bind it with
// the matching ProfileKind so error messages name the right noun.
type Handler struct {
	service     *profiles.Service
	projectRepo *projects.Repository
	logger      *zap.Logger
}

// NewHandler creates an admin moderation handler.
func NewHandler(service *profiles.Service, projectRepo *projects.Repository, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{service: service, projectRepo: projectRepo, logger: logger}
}

// StatusRequest is the body for PUT .../:id/status.
type StatusRequest struct {
	SetupStatus string `json:"setupStatus" binding:"required"`
}

// ActionRequest is the body for PUT .../:id/action.
type ActionRequest struct {
	Action string `json:"action" binding:"required"`
	Reason string `json:"reason"`
}

func noun(kind models.ProfileKind) string {
	if kind == models.KindIndividual {
		return "Supporter"
	}
	return "Organization"
}

// List returns all profiles of a kind with their owning users.
func (h *Handler) List(kind models.ProfileKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := h.service.Store().List(c.Request.Context(), kind)
		if err != nil {
			h.logger.Error("list profiles failed", zap.Error(err), zap.String("kind", string(kind)))
			response.Internal(c, "Failed to fetch "+string(kind)+" profiles")
			return
		}
		response.OK(c, list)
	}
}

// Get returns one profile with its owning user.
func (h *Handler) Get(kind models.ProfileKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			response.BadRequest(c, "invalid profile id")
			return
		}
		p, err := h.service.Store().GetByID(c.Request.Context(), id)
		if errors.Is(err, profiles.ErrNotFound) || (err == nil && p.Kind != kind) {
			response.NotFound(c, noun(kind)+" not found")
			return
		}
		if err != nil {
			h.logger.Error("get profile failed", zap.Error(err), zap.String("profile_id", id.String()))
			response.Internal(c, "Failed to fetch profile")
			return
		}
		response.OK(c, p)
	}
}

// Projects returns the projects that reference the organization by name.
func (h *Handler) Projects(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid profile id")
		return
	}
	p, err := h.service.Store().GetByID(c.Request.Context(), id)
	if errors.Is(err, profiles.ErrNotFound) {
		response.NotFound(c, "Organization not found")
		return
	}
	if err != nil {
		h.logger.Error("get profile failed", zap.Error(err), zap.String("profile_id", id.String()))
		response.Internal(c, "Failed to fetch organization")
		return
	}
	list, err := h.projectRepo.ListByNGO(c.Request.Context(), p.User.Name)
	if err != nil {
		h.logger.Error("list org projects failed", zap.Error(err), zap.String("profile_id", id.String()))
		response.Internal(c, "Failed to fetch projects")
		return
	}
	response.OK(c, list)
}

// SetStatus moves a profile through the review pipeline. Only the four
// directly settable statuses are accepted here; restrictions go through
// Action.
func (h *Handler) SetStatus(kind models.ProfileKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			response.BadRequest(c, "invalid profile id")
			return
		}
		var req StatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "setupStatus required")
			return
		}
		p, err := h.service.SetStatus(c.Request.Context(), id, req.SetupStatus)
		switch {
		case errors.Is(err, profiles.ErrUnknownStatus):
			response.BadRequest(c, "Invalid status")
		case errors.Is(err, profiles.ErrNotFound):
			response.NotFound(c, noun(kind)+" not found")
		case err != nil:
			h.logger.Error("set status failed", zap.Error(err), zap.String("profile_id", id.String()))
			response.Internal(c, "Failed to update status")
		default:
			response.OK(c, p)
		}
	}
}

// Action bans or suspends a verified profile. Profiles in any other state are
// rejected without a write.
func (h *Handler) Action(kind models.ProfileKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			response.BadRequest(c, "invalid profile id")
			return
		}
		var req ActionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "action required")
			return
		}
		p, err := h.service.ApplyRestriction(c.Request.Context(), id, req.Action, req.Reason)
		switch {
		case errors.Is(err, profiles.ErrUnknownAction):
			response.BadRequest(c, "invalid action")
		case errors.Is(err, profiles.ErrNotVerified):
			response.BadRequest(c, "Only verified "+pluralNoun(kind)+" can be banned or suspended")
		case errors.Is(err, profiles.ErrNotFound):
			response.NotFound(c, noun(kind)+" not found")
		case err != nil:
			h.logger.Error("apply restriction failed", zap.Error(err), zap.String("profile_id", id.String()))
			response.Internal(c, "Failed to apply action")
		default:
			response.OK(c, p)
		}
	}
}

func pluralNoun(kind models.ProfileKind) string {
	if kind == models.KindIndividual {
		return "supporters"
	}
	return "organizations"
}

// Delete removes a profile together with its owning account.
func (h *Handler) Delete(kind models.ProfileKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			response.BadRequest(c, "invalid profile id")
			return
		}
		if err := h.service.Delete(c.Request.Context(), id); err != nil {
			if errors.Is(err, profiles.ErrNotFound) {
				response.NotFound(c, noun(kind)+" not found")
				return
			}
			h.logger.Error("delete profile failed", zap.Error(err), zap.String("profile_id", id.String()))
			response.Internal(c, "Failed to delete "+string(kind))
			return
		}
		response.OK(c, gin.H{"message": noun(kind) + " deleted successfully"})
	}
}
