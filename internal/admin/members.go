package admin

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/kamp-aid/backend/internal/auth"
	"github.com/kamp-aid/backend/internal/models"
	"github.com/kamp-aid/backend/pkg/response"
	"github.com/kamp-aid/backend/pkg/utils"
)

// MembersHandler manages admin team accounts.
type MembersHandler struct {
	users  *auth.Repository
	logger *zap.Logger
}

// NewMembersHandler creates a members handler.
func NewMembersHandler(users *auth.Repository, logger *zap.Logger) *MembersHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MembersHandler{users: users, logger: logger}
}

// MemberRequest is the body for creating or updating an admin member. On
// update, empty fields are left unchanged.
type MemberRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// List handles GET /admin/members.
func (h *MembersHandler) List(c *gin.Context) {
	members, err := h.users.ListByType(c.Request.Context(), models.TypeAdmin)
	if err != nil {
		h.logger.Error("list members failed", zap.Error(err))
		response.Internal(c, "Failed to fetch members")
		return
	}
	response.OK(c, members)
}

// Create handles POST /admin/members.
func (h *MembersHandler) Create(c *gin.Context) {
	var req MemberRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" || req.Email == "" || req.Password == "" {
		response.BadRequest(c, "name, email and password are required")
		return
	}
	if existing, err := h.users.GetByEmail(c.Request.Context(), req.Email); err == nil && existing != nil {
		response.BadRequest(c, "An account with this email already exists")
		return
	}
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		h.logger.Error("hash password failed", zap.Error(err))
		response.Internal(c, "Failed to create member")
		return
	}
	member, err := h.users.Create(c.Request.Context(), req.Name, req.Email, hash, models.TypeAdmin)
	if err != nil {
		h.logger.Error("create member failed", zap.Error(err))
		response.Internal(c, "Failed to create member")
		return
	}
	response.Created(c, member.ToPublic())
}

// Update handles PUT /admin/members/:id.
func (h *MembersHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid member id")
		return
	}
	var req MemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	hash := ""
	if req.Password != "" {
		if hash, err = utils.HashPassword(req.Password); err != nil {
			h.logger.Error("hash password failed", zap.Error(err))
			response.Internal(c, "Failed to update member")
			return
		}
	}
	member, err := h.users.Update(c.Request.Context(), id, req.Name, req.Email, hash)
	if errors.Is(err, pgx.ErrNoRows) {
		response.NotFound(c, "Member not found")
		return
	}
	if err != nil {
		h.logger.Error("update member failed", zap.Error(err), zap.String("member_id", id.String()))
		response.Internal(c, "Failed to update member")
		return
	}
	response.OK(c, member.ToPublic())
}

// Delete handles DELETE /admin/members/:id.
func (h *MembersHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid member id")
		return
	}
	deleted, err := h.users.Delete(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("delete member failed", zap.Error(err), zap.String("member_id", id.String()))
		response.Internal(c, "Failed to delete member")
		return
	}
	if !deleted {
		response.NotFound(c, "Member not found")
		return
	}
	response.OK(c, gin.H{"message": "Member deleted successfully"})
}
