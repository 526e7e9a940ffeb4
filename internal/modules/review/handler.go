package review

import (
	"errors"
	"net/http"
	"strconv"

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

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/services/:id/reviews", h.ListReviews)
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/services/:id/reviews", h.SubmitReview)
}

func (h *Handler) SubmitReview(c *gin.Context) {
	serviceID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid service id")
		return
	}

	var req SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Rating must be between 1 and 5")
		return
	}

	result, err := h.service.SubmitReview(c.Request.Context(), middleware.ActingEmail(c), serviceID, req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

func (h *Handler) ListReviews(c *gin.Context) {
	serviceID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid service id")
		return
	}

	reviews, err := h.service.ListReviews(c.Request.Context(), serviceID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"reviews": reviews})
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid review data")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Service not found")
	case errors.Is(err, ErrReviewNotAllowed):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Only customers who booked this service may review it")
	case repository.IsUnavailable(err):
		response.Error(c, http.StatusServiceUnavailable, "STORE_UNAVAILABLE", "Store temporarily unavailable")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to submit review")
	}
}
