package analytics

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"servicehub/internal/middleware"
	"servicehub/internal/pkg/response"
	"servicehub/internal/repository"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/analytics/monthly", h.MonthlyRollup)
}

// MonthlyRollup reports the acting provider's own monthly booking counts
// and revenue.
func (h *Handler) MonthlyRollup(c *gin.Context) {
	stats, err := h.service.MonthlyRollup(c.Request.Context(), middleware.ActingEmail(c))
	if err != nil {
		if repository.IsUnavailable(err) {
			response.Error(c, http.StatusServiceUnavailable, "STORE_UNAVAILABLE", "Store temporarily unavailable")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to compute rollup")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"months": stats})
}
