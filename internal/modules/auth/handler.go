package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

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
	rg.POST("/auth/register", h.Register)
	rg.POST("/auth/login", h.Login)
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid registration data")
		return
	}

	u, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid registration data")
		case errors.Is(err, ErrEmailTaken):
			response.Error(c, http.StatusConflict, "EMAIL_TAKEN", "Email already registered")
		case repository.IsUnavailable(err):
			response.Error(c, http.StatusServiceUnavailable, "STORE_UNAVAILABLE", "Store temporarily unavailable")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to register")
		}
		return
	}
	response.Success(c, http.StatusCreated, u)
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid login data")
		return
	}

	result, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Wrong email or password")
		case repository.IsUnavailable(err):
			response.Error(c, http.StatusServiceUnavailable, "STORE_UNAVAILABLE", "Store temporarily unavailable")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to log in")
		}
		return
	}
	response.Success(c, http.StatusOK, result)
}
