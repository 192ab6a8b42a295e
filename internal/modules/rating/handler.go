package rating

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"reviewhub/internal/pkg/response"
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

func (h *Handler) RegisterRoutes(admin *gin.RouterGroup) {
	if admin != nil {
		admin.POST("/products/:id/recalculate-rating", h.Recalculate)
		admin.POST("/products/recalculate-ratings", h.RecalculateAll)
	}
}

func (h *Handler) Recalculate(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || productID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID")
		return
	}

	result, err := h.svc.Recalculate(c.Request.Context(), productID)
	if err != nil {
		errorMap.Write(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

func (h *Handler) RecalculateAll(c *gin.Context) {
	results, err := h.svc.RecalculateAll(c.Request.Context())
	if err != nil {
		errorMap.Write(c, err)
		return
	}
	response.Success(c, http.StatusOK, results)
}
