package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nordsym/guldkant/internal/app"
	"github.com/nordsym/guldkant/internal/domain"
)

// DashboardHandler serves the dashboard widgets derived from the loaded
// quote collection.
type DashboardHandler struct {
	store *app.Store
	now   func() time.Time
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(store *app.Store) *DashboardHandler {
	return &DashboardHandler{
		store: store,
		now:   time.Now,
	}
}

// DashboardResponse aggregates the dashboard widgets in one payload.
type DashboardResponse struct {
	ActiveCount   int              `json:"activeCount"`
	PipelineValue float64          `json:"pipelineValue"`
	Actionable    []*QuoteResponse `json:"actionable"`
	Upcoming      []*QuoteResponse `json:"upcoming"`
}

// GetDashboard handles GET /api/v1/dashboard
// Returns the active count, pipeline value, quotes awaiting action, and
// the next upcoming events.
//
// @Summary Get dashboard widgets
// @Tags dashboard
// @Produce json
// @Success 200 {object} DashboardResponse
// @Router /api/v1/dashboard [get]
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	quotes := h.store.Quotes()
	summary := domain.Summarize(quotes)

	c.JSON(http.StatusOK, &DashboardResponse{
		ActiveCount:   summary.ActiveCount,
		PipelineValue: summary.PipelineValue,
		Actionable:    toQuoteResponses(domain.ActionableQuotes(quotes)),
		Upcoming:      toQuoteResponses(domain.UpcomingEvents(quotes, h.now())),
	})
}

// RegisterDashboardRoutes registers dashboard routes on the given router group.
func (h *DashboardHandler) RegisterDashboardRoutes(rg *gin.RouterGroup) {
	rg.GET("/dashboard", h.GetDashboard)
}
