package catalog

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
	rg.GET("/services", h.ListServices)
	rg.GET("/services/:id", h.GetService)
	rg.GET("/services/slug/:slug", h.GetServiceBySlug)
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/services", h.CreateService)
	rg.PUT("/services/:id", h.UpdateService)
	rg.DELETE("/services/:id", h.DeleteService)
}

func (h *Handler) CreateService(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	svc, err := h.service.CreateService(c.Request.Context(), middleware.ActingEmail(c), c.GetString("name"), req)
	if err != nil {
		respondError(c, err, "Failed to create service")
		return
	}
	response.Success(c, http.StatusCreated, svc)
}

func (h *Handler) UpdateService(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid service id")
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	svc, err := h.service.UpdateService(c.Request.Context(), middleware.ActingEmail(c), id, req)
	if err != nil {
		respondError(c, err, "Failed to update service")
		return
	}
	response.Success(c, http.StatusOK, svc)
}

func (h *Handler) DeleteService(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid service id")
		return
	}

	if err := h.service.DeleteService(c.Request.Context(), middleware.ActingEmail(c), id); err != nil {
		respondError(c, err, "Failed to delete service")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) GetService(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid service id")
		return
	}

	svc, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to load service")
		return
	}
	response.Success(c, http.StatusOK, svc)
}

func (h *Handler) GetServiceBySlug(c *gin.Context) {
	svc, err := h.service.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err, "Failed to load service")
		return
	}
	response.Success(c, http.StatusOK, svc)
}

func (h *Handler) ListServices(c *gin.Context) {
	f := repository.ServiceFilter{
		Category: c.Query("category"),
		Query:    c.Query("q"),
	}
	f.MinPrice, _ = strconv.ParseFloat(c.Query("min_price"), 64)
	f.MaxPrice, _ = strconv.ParseFloat(c.Query("max_price"), 64)
	f.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	f.Offset, _ = strconv.Atoi(c.Query("offset"))

	services, total, err := h.service.List(c.Request.Context(), f)
	if err != nil {
		respondError(c, err, "Failed to list services")
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"services": services,
		"total":    total,
	})
}

func respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid service data")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Service not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Only the provider may modify this service")
	case errors.Is(err, ErrSlugExhausted):
		response.Error(c, http.StatusInternalServerError, "SLUG_EXHAUSTED", "Could not allocate a unique slug")
	case repository.IsUnavailable(err):
		response.Error(c, http.StatusServiceUnavailable, "STORE_UNAVAILABLE", "Store temporarily unavailable")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}
