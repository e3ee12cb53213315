package auth

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kamp-aid/backend/internal/models"
	"github.com/kamp-aid/backend/pkg/response"
	"github.com/kamp-aid/backend/pkg/utils"
)

// ProfileCreator creates the role profile that accompanies a non-Admin
// account. Implemented by the profiles service.
type ProfileCreator interface {
	CreateForRegistration(ctx context.Context, userID uuid.UUID, userType models.UserType, category, description, phone, interest string) (*models.Profile, error)
}

// RegisterRequest is the body for POST /auth/register.
type RegisterRequest struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	Type        string `json:"type" binding:"required"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Phone       string `json:"phone"`
	Interest    string `json:"interest"`
}

// LoginRequest is the body for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse is the auth response with JWT.
type TokenResponse struct {
	Token string            `json:"token"`
	User  models.UserPublic `json:"user"`
}

// Handler handles auth HTTP endpoints.
type Handler struct {
	repo     *Repository
	profiles ProfileCreator
	jwt      *JWTService
	logger   *zap.Logger
}

// NewHandler creates an auth handler.
func NewHandler(repo *Repository, profileCreator ProfileCreator, jwt *JWTService, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, profiles: profileCreator, jwt: jwt, logger: logger}
}

// Register handles POST /auth/register. Non-Admin registrations also create
// the role profile, which starts in details_pending.
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	var userType models.UserType
	switch req.Type {
	case string(models.TypeOrganization):
		userType = models.TypeOrganization
	case string(models.TypeIndividual):
		userType = models.TypeIndividual
	default:
		// Admin accounts are created through the admin members endpoint, not
		// public registration.
		response.BadRequest(c, "type must be Organization or Individual")
		return
	}

	if _, err := h.repo.GetByEmail(c.Request.Context(), req.Email); err == nil {
		response.BadRequest(c, "An account with this email already exists")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		response.Internal(c, "failed to hash password")
		return
	}

	user, err := h.repo.Create(c.Request.Context(), req.Name, req.Email, hash, userType)
	if err != nil {
		h.logger.Error("create user failed", zap.Error(err), zap.String("email", req.Email))
		response.Internal(c, "failed to create account")
		return
	}

	if _, err := h.profiles.CreateForRegistration(c.Request.Context(), user.ID, userType,
		req.Category, req.Description, req.Phone, req.Interest); err != nil {
		// Compensate so a failed registration does not leave an account
		// without its profile.
		_, _ = h.repo.Delete(c.Request.Context(), user.ID)
		h.logger.Error("create profile failed", zap.Error(err), zap.String("user_id", user.ID.String()))
		response.Internal(c, "failed to create account")
		return
	}

	token, err := h.jwt.Generate(user.ID, user.Email, string(user.Type))
	if err != nil {
		response.Internal(c, "failed to generate token")
		return
	}

	response.Created(c, TokenResponse{Token: token, User: user.ToPublic()})
}

// Login handles POST /auth/login.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	user, err := h.repo.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		response.Unauthorized(c, "Invalid email or password")
		return
	}

	if !utils.CheckPassword(req.Password, user.Password) {
		response.Unauthorized(c, "Invalid email or password")
		return
	}

	token, err := h.jwt.Generate(user.ID, user.Email, string(user.Type))
	if err != nil {
		response.Internal(c, "failed to generate token")
		return
	}

	response.OK(c, TokenResponse{Token: token, User: user.ToPublic()})
}
