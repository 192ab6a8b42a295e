package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reviewhub/internal/pkg/response"
	"reviewhub/internal/pkg/validator"
)

type Handler struct {
	svc *Service
}

var errorMap = response.ErrorMap{
	ErrValidation:         {Status: http.StatusBadRequest, Code: "VALIDATION_ERROR", Message: "Passwords do not match"},
	ErrEmailTaken:         {Status: http.StatusConflict, Code: "CONFLICT", Message: "Email is already registered"},
	ErrInvalidCredentials: {Status: http.StatusUnauthorized, Code: "UNAUTHORIZED", Message: "Invalid email or password"},
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(public *gin.RouterGroup) {
	public.POST("/auth/register", h.Register)
	public.POST("/auth/login", h.Login)
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", errs)
		return
	}

	result, err := h.svc.Register(c.Request.Context(), req)
	if err != nil {
		errorMap.Write(c, err)
		return
	}
	response.Success(c, http.StatusCreated, result)
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", errs)
		return
	}

	result, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		errorMap.Write(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}
