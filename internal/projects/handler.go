package projects

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kamp-aid/backend/internal/middleware"
	"github.com/kamp-aid/backend/internal/models"
	"github.com/kamp-aid/backend/pkg/response"
	"github.com/kamp-aid/backend/pkg/storage"
)

// Handler handles project HTTP endpoints.
type Handler struct {
	repo   *Repository
	s3     *storage.S3
	logger *zap.Logger
}

// NewHandler creates a projects handler. s3 may be nil; image upload is then disabled.
func NewHandler(repo *Repository, s3 *storage.S3, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{repo: repo, s3: s3, logger: logger}
}

// ProjectRequest is the body for POST /projects and PUT /projects/:id.
type ProjectRequest struct {
	Name                   string   `json:"name" binding:"required"`
	NGOs                   []string `json:"ngos"`
	Categories             []string `json:"categories"`
	Districts              []string `json:"districts"`
	TargetAudience         []string `json:"target_audience"`
	Status                 string   `json:"status"`
	StartDate              *string  `json:"start_date"`
	EndDate                *string  `json:"end_date"`
	Goal                   float64  `json:"goal"`
	BudgetBreakdown        string   `json:"budget_breakdown"`
	NGORoles               string   `json:"ngo_roles"`
	Description            string   `json:"description" binding:"required"`
	Milestones             string   `json:"milestones"`
	ImpactGoals            string   `json:"impact_goals"`
	IsPublic               *bool    `json:"is_public"`
	IsOpenForDonations     *bool    `json:"is_open_for_donations"`
	IsOpenForOrganizations *bool    `json:"is_open_for_organizations"`
	ComplianceAgreed       bool     `json:"compliance_agreed"`
	Image                  string   `json:"image"`
	ImageType              string   `json:"image_type"`
}

func (req *ProjectRequest) toModel() (*models.Project, error) {
	p := &models.Project{
		Name:             req.Name,
		NGOs:             orEmpty(req.NGOs),
		Categories:       orEmpty(req.Categories),
		Districts:        orEmpty(req.Districts),
		TargetAudience:   orEmpty(req.TargetAudience),
		Status:           req.Status,
		Goal:             req.Goal,
		BudgetBreakdown:  req.BudgetBreakdown,
		NGORoles:         req.NGORoles,
		Description:      req.Description,
		Milestones:       req.Milestones,
		ImpactGoals:      req.ImpactGoals,
		IsPublic:         true,
		ComplianceAgreed: req.ComplianceAgreed,
		Image:            req.Image,
		ImageType:        req.ImageType,
	}
	if p.Status == "" {
		p.Status = "Planned"
	}
	if req.IsPublic != nil {
		p.IsPublic = *req.IsPublic
	}
	p.IsOpenForDonations = req.IsOpenForDonations == nil || *req.IsOpenForDonations
	p.IsOpenForOrganizations = req.IsOpenForOrganizations == nil || *req.IsOpenForOrganizations
	var err error
	if p.StartDate, err = parseDate(req.StartDate); err != nil {
		return nil, err
	}
	if p.EndDate, err = parseDate(req.EndDate); err != nil {
		return nil, err
	}
	return p, nil
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func parseDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// List handles GET /projects. Non-admin callers see public projects only.
func (h *Handler) List(c *gin.Context) {
	userType, _ := c.Get(middleware.ContextUserType)
	publicOnly := userType != string(models.TypeAdmin)
	list, err := h.repo.List(c.Request.Context(), publicOnly)
	if err != nil {
		h.logger.Error("list projects failed", zap.Error(err))
		response.Internal(c, "failed to load projects")
		return
	}
	response.OK(c, list)
}

// GetByID handles GET /projects/:id.
func (h *Handler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid project id")
		return
	}
	p, err := h.repo.GetByID(c.Request.Context(), id)
	if err == ErrNotFound {
		response.NotFound(c, "Project not found")
		return
	}
	if err != nil {
		h.logger.Error("load project failed", zap.Error(err), zap.String("project_id", id.String()))
		response.Internal(c, "failed to load project")
		return
	}
	response.OK(c, p)
}

// Create handles POST /projects (admin only).
func (h *Handler) Create(c *gin.Context) {
	var req ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	p, err := req.toModel()
	if err != nil {
		response.BadRequest(c, "dates must be YYYY-MM-DD")
		return
	}
	if err := h.repo.Create(c.Request.Context(), p); err != nil {
		h.logger.Error("create project failed", zap.Error(err))
		response.Internal(c, "failed to create project")
		return
	}
	response.Created(c, p)
}

// Update handles PUT /projects/:id (admin only).
func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid project id")
		return
	}
	var req ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	p, err := req.toModel()
	if err != nil {
		response.BadRequest(c, "dates must be YYYY-MM-DD")
		return
	}
	p.ID = id
	updated, err := h.repo.Update(c.Request.Context(), p)
	if err == ErrNotFound {
		response.NotFound(c, "Project not found")
		return
	}
	if err != nil {
		h.logger.Error("update project failed", zap.Error(err), zap.String("project_id", id.String()))
		response.Internal(c, "failed to update project")
		return
	}
	response.OK(c, updated)
}

// Delete handles DELETE /projects/:id (admin only).
func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid project id")
		return
	}
	err = h.repo.Delete(c.Request.Context(), id)
	if err == ErrNotFound {
		response.NotFound(c, "Project not found")
		return
	}
	if err != nil {
		h.logger.Error("delete project failed", zap.Error(err), zap.String("project_id", id.String()))
		response.Internal(c, "failed to delete project")
		return
	}
	response.OK(c, gin.H{"message": "Project deleted successfully"})
}

// UploadImage handles POST /projects/:id/image (admin only, multipart form).
// The file is stored in S3 and the project image URL updated.
func (h *Handler) UploadImage(c *gin.Context) {
	if h.s3 == nil {
		response.BadRequest(c, "image upload is not configured")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid project id")
		return
	}
	if _, err := h.repo.GetByID(c.Request.Context(), id); err != nil {
		response.NotFound(c, "Project not found")
		return
	}
	file, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "file required")
		return
	}
	if file.Size > storage.MaxImageFileSize {
		response.BadRequest(c, "file too large (max 10MB)")
		return
	}
	contentType := file.Header.Get("Content-Type")
	if !storage.ValidateImageFileType(contentType, file.Filename) {
		response.BadRequest(c, "unsupported image type")
		return
	}
	src, err := file.Open()
	if err != nil {
		response.Internal(c, "failed to read upload")
		return
	}
	defer src.Close()

	key := storage.ImageKey(id.String(), file.Filename)
	if contentType == "" {
		contentType = storage.ContentTypeForFilename(file.Filename)
	}
	url, err := h.s3.Upload(c.Request.Context(), h.s3.ImagesBucket(), key, contentType, src, file.Size, true)
	if err != nil {
		h.logger.Error("image upload failed", zap.Error(err), zap.String("project_id", id.String()))
		response.Internal(c, "failed to upload image")
		return
	}
	if err := h.repo.SetImage(c.Request.Context(), id, url, "upload"); err != nil {
		h.logger.Error("store image url failed", zap.Error(err), zap.String("project_id", id.String()))
		response.Internal(c, "failed to store image")
		return
	}
	response.OK(c, gin.H{"image": url, "image_type": "upload"})
}
