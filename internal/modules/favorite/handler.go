package favorite

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

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/favorites/:serviceId", h.Add)
	rg.DELETE("/favorites/:serviceId", h.Remove)
	rg.GET("/favorites", h.List)
}

func (h *Handler) Add(c *gin.Context) {
	serviceID, err := strconv.ParseInt(c.Param("serviceId"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid service id")
		return
	}

	f, err := h.service.Add(c.Request.Context(), middleware.ActingEmail(c), serviceID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, f)
}

func (h *Handler) Remove(c *gin.Context) {
	serviceID, err := strconv.ParseInt(c.Param("serviceId"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid service id")
		return
	}

	if err := h.service.Remove(c.Request.Context(), middleware.ActingEmail(c), serviceID); err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"removed": true})
}

func (h *Handler) List(c *gin.Context) {
	favorites, err := h.service.List(c.Request.Context(), middleware.ActingEmail(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"favorites": favorites})
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid favorite data")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Service or favorite not found")
	case repository.IsUnavailable(err):
		response.Error(c, http.StatusServiceUnavailable, "STORE_UNAVAILABLE", "Store temporarily unavailable")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update favorites")
	}
}
