package admin

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kamp-aid/backend/internal/donations"
	"github.com/kamp-aid/backend/internal/models"
	"github.com/kamp-aid/backend/internal/profiles"
	"github.com/kamp-aid/backend/pkg/response"
)

// StatsHandler serves the admin dashboard counters.
type StatsHandler struct {
	store     profiles.Store
	donations donations.Store
	logger    *zap.Logger
}

// NewStatsHandler creates a stats handler.
func NewStatsHandler(store profiles.Store, donationStore donations.Store, logger *zap.Logger) *StatsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatsHandler{store: store, donations: donationStore, logger: logger}
}

// Stats handles GET /admin/stats: per-status profile counts for both kinds
// plus platform-wide donation totals.
func (h *StatsHandler) Stats(c *gin.Context) {
	ctx := c.Request.Context()

	orgCounts, err := h.store.CountByStatus(ctx, models.KindOrganization)
	if err != nil {
		h.logger.Error("count organizations failed", zap.Error(err))
		response.Internal(c, "Failed to fetch stats")
		return
	}
	supCounts, err := h.store.CountByStatus(ctx, models.KindIndividual)
	if err != nil {
		h.logger.Error("count supporters failed", zap.Error(err))
		response.Internal(c, "Failed to fetch stats")
		return
	}
	totalRaised, donationCount, err := h.donations.Totals(ctx)
	if err != nil {
		h.logger.Error("donation totals failed", zap.Error(err))
		response.Internal(c, "Failed to fetch stats")
		return
	}

	response.OK(c, gin.H{
		"organizations": orgCounts,
		"supporters":    supCounts,
		"donations": gin.H{
			"totalRaised": totalRaised,
			"count":       donationCount,
		},
	})
}
