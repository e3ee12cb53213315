package donations

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kamp-aid/backend/internal/models"
	"github.com/kamp-aid/backend/pkg/queue"
	"github.com/kamp-aid/backend/pkg/response"
)

// Handler handles donation HTTP endpoints.
type Handler struct {
	store  Store
	queue  *queue.Queue
	logger *zap.Logger
}

// NewHandler creates a donations handler. q may be nil; receipt jobs are then skipped.
func NewHandler(store Store, q *queue.Queue, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{store: store, queue: q, logger: logger}
}

// CreateRequest is the body for POST /donations. Amount arrives as an
// arbitrary JSON value and must coerce to a positive number.
type CreateRequest struct {
	ProjectID     string      `json:"projectId" binding:"required"`
	Amount        interface{} `json:"amount" binding:"required"`
	DonorType     string      `json:"donorType" binding:"required"`
	Name          string      `json:"name" binding:"required"`
	Message       string      `json:"message"`
	Cause         string      `json:"cause" binding:"required"`
	UserID        string      `json:"userId"`
	Email         string      `json:"email"`
	PaymentMethod string      `json:"paymentMethod"`
}

func coerceAmount(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, n > 0
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil && f > 0
	}
	return 0, false
}

// Create handles POST /donations. Records the donation and the project
// increment, then enqueues a receipt job.
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	projectID, err := uuid.Parse(req.ProjectID)
	if err != nil {
		response.BadRequest(c, "invalid project id")
		return
	}
	amount, ok := coerceAmount(req.Amount)
	if !ok {
		response.BadRequest(c, "amount must be a positive number")
		return
	}
	if req.DonorType != models.DonorIndividual && req.DonorType != models.DonorOrganization {
		response.BadRequest(c, "donorType must be Individual or Organization")
		return
	}
	paymentMethod := req.PaymentMethod
	switch paymentMethod {
	case "":
		paymentMethod = models.PaymentCard
	case models.PaymentCard, models.PaymentMobileMoney:
	default:
		response.BadRequest(c, "paymentMethod must be Card or Mobile Money")
		return
	}

	d := &models.Donation{
		ProjectID:     projectID,
		DonorType:     req.DonorType,
		Name:          req.Name,
		Amount:        amount,
		Message:       req.Message,
		Cause:         req.Cause,
		PaymentMethod: paymentMethod,
	}
	if req.UserID != "" {
		userID, err := uuid.Parse(req.UserID)
		if err != nil {
			response.BadRequest(c, "invalid user id")
			return
		}
		d.UserID = &userID
	}

	if err := h.store.Record(c.Request.Context(), d); err != nil {
		if err == ErrProjectNotFound {
			response.NotFound(c, "Project not found")
			return
		}
		h.logger.Error("record donation failed", zap.Error(err), zap.String("project_id", projectID.String()))
		response.Internal(c, "failed to record donation")
		return
	}

	// Receipt delivery is best effort; the donation is already durable.
	if h.queue != nil && req.Email != "" {
		payload := queue.ReceiptPayload{
			DonationID:     d.ID,
			ProjectID:      d.ProjectID,
			RecipientEmail: req.Email,
			DonorName:      d.Name,
			Amount:         d.Amount,
		}
		if err := h.queue.EnqueueReceipt(c.Request.Context(), payload); err != nil {
			h.logger.Warn("enqueue receipt failed", zap.Error(err), zap.String("donation_id", d.ID.String()))
		}
	}

	response.Created(c, d)
}

// ListByProject handles GET /donations/project/:projectId.
func (h *Handler) ListByProject(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("projectId"))
	if err != nil {
		response.BadRequest(c, "invalid project id")
		return
	}
	list, err := h.store.ListByProject(c.Request.Context(), projectID)
	if err != nil {
		h.logger.Error("list donations failed", zap.Error(err), zap.String("project_id", projectID.String()))
		response.Internal(c, "failed to load donations")
		return
	}
	response.OK(c, list)
}
