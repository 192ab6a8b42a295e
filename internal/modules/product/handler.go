package product

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"reviewhub/internal/pkg/response"
	"reviewhub/internal/pkg/validator"
)

type Handler struct {
	svc *Service
}

var errorMap = response.ErrorMap{
	ErrValidation: {Status: http.StatusBadRequest, Code: "VALIDATION_ERROR", Message: "Invalid input"},
	ErrNotFound:   {Status: http.StatusNotFound, Code: "NOT_FOUND", Message: "Product not found"},
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(public, admin *gin.RouterGroup) {
	if public != nil {
		public.GET("/products", h.List)
		public.GET("/products/:id", h.Get)
	}
	if admin != nil {
		admin.POST("/products", h.Create)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", errs)
		return
	}

	p, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		errorMap.Write(c, err)
		return
	}
	response.Success(c, http.StatusCreated, p)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID")
		return
	}

	p, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		errorMap.Write(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

func (h *Handler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		errorMap.Write(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}
