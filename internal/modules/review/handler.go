package review

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"reviewhub/internal/domain"
	"reviewhub/internal/pkg/authz"
	"reviewhub/internal/pkg/response"
	"reviewhub/internal/pkg/validator"
)

type Handler struct {
	svc *Service
}

var errorMap = response.ErrorMap{
	ErrValidation:   {Status: http.StatusBadRequest, Code: "VALIDATION_ERROR", Message: "Invalid input"},
	ErrUnauthorized: {Status: http.StatusForbidden, Code: "FORBIDDEN", Message: "You are not allowed to modify this review"},
	ErrNotFound:     {Status: http.StatusNotFound, Code: "NOT_FOUND", Message: "Review not found"},
	ErrConflict:     {Status: http.StatusConflict, Code: "CONFLICT", Message: "Conflicting review operation"},
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(public, protected, admin *gin.RouterGroup) {
	if public != nil {
		public.GET("/reviews", h.List)
		public.GET("/reviews/search", h.Search)
		public.GET("/reviews/premium", h.ListPremium)
		public.GET("/reviews/:id", h.Get)
	}
	if protected != nil {
		protected.POST("/reviews", h.Create)
		protected.PUT("/reviews/:id", h.Update)
		protected.DELETE("/reviews/:id", h.Delete)
	}
	if admin != nil {
		admin.GET("/reviews/pending", h.ListPending)
		admin.GET("/reviews", h.ListByStatus)
		admin.PATCH("/reviews/:id/approve", h.Approve)
		admin.PATCH("/reviews/:id/unpublish", h.Unpublish)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", errs)
		return
	}

	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	rv, err := h.svc.Create(c.Request.Context(), userID, req)
	if err != nil {
		errorMap.Write(c, err)
		return
	}
	response.Success(c, http.StatusCreated, rv)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid review ID")
		return
	}

	// Viewer identity is optional here: anonymous readers get the preview.
	var viewer *authz.Actor
	if userID := c.GetInt64("user_id"); userID != 0 {
		viewer = &authz.Actor{UserID: userID, Role: domain.UserRole(c.GetString("role"))}
	}

	view, err := h.svc.Get(c.Request.Context(), id, viewer)
	if err != nil {
		errorMap.Write(c, err)
		return
	}
	response.Success(c, http.StatusOK, view)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid review ID")
		return
	}

	var req UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", errs)
		return
	}

	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	rv, err := h.svc.Update(c.Request.Context(), id, actor, req)
	if err != nil {
		errorMap.Write(c, err)
		return
	}
	response.Success(c, http.StatusOK, rv)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid review ID")
		return
	}

	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id, actor); err != nil {
		errorMap.Write(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Review deleted successfully"})
}

func (h *Handler) List(c *gin.Context) {
	var categoryID *int64
	if raw := c.Query("category"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid category ID")
			return
		}
		categoryID = &id
	}

	items, err := h.svc.ListPublished(c.Request.Context(), categoryID)
	if err != nil {
		errorMap.Write(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

func (h *Handler) ListPremium(c *gin.Context) {
	items, err := h.svc.ListPremium(c.Request.Context())
	if err != nil {
		errorMap.Write(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

func (h *Handler) Search(c *gin.Context) {
	req := SearchRequest{
		Keyword: c.Query("keyword"),
		Sort:    c.DefaultQuery("sort", "date"),
		Order:   c.DefaultQuery("order", "desc"),
	}
	req.Page, _ = strconv.Atoi(c.Query("page"))
	req.Limit, _ = strconv.Atoi(c.Query("limit"))

	if raw := c.Query("category"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid category ID")
			return
		}
		req.CategoryID = &id
	}
	if raw := c.Query("rating"); raw != "" {
		rating, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid rating")
			return
		}
		req.Rating = &rating
	}
	if raw := c.Query("is_premium"); raw != "" {
		premium, err := strconv.ParseBool(raw)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid is_premium")
			return
		}
		req.IsPremium = &premium
	}

	result, err := h.svc.Search(c.Request.Context(), req)
	if err != nil {
		errorMap.Write(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

func (h *Handler) ListPending(c *gin.Context) {
	items, err := h.svc.ListPending(c.Request.Context())
	if err != nil {
		errorMap.Write(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

func (h *Handler) ListByStatus(c *gin.Context) {
	status := domain.ReviewStatus(c.DefaultQuery("status", string(domain.ReviewStatusPending)))
	items, err := h.svc.ListByStatus(c.Request.Context(), status)
	if err != nil {
		errorMap.Write(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

func (h *Handler) Approve(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid review ID")
		return
	}

	rv, err := h.svc.Approve(c.Request.Context(), id)
	if err != nil {
		errorMap.Write(c, err)
		return
	}
	response.Success(c, http.StatusOK, rv)
}

func (h *Handler) Unpublish(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid review ID")
		return
	}

	var req UnpublishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", errs)
		return
	}

	rv, err := h.svc.Unpublish(c.Request.Context(), id, req.Reason)
	if err != nil {
		errorMap.Write(c, err)
		return
	}
	response.Success(c, http.StatusOK, rv)
}

func actorFrom(c *gin.Context) (authz.Actor, bool) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return authz.Actor{}, false
	}
	return authz.Actor{UserID: userID, Role: domain.UserRole(c.GetString("role"))}, true
}
