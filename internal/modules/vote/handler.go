package vote

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"reviewhub/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

var errorMap = response.ErrorMap{
	ErrValidation:   {Status: http.StatusBadRequest, Code: "VALIDATION_ERROR", Message: "Invalid input"},
	ErrNotFound:     {Status: http.StatusNotFound, Code: "NOT_FOUND", Message: "Review or vote not found"},
	ErrAlreadyVoted: {Status: http.StatusConflict, Code: "CONFLICT", Message: "You have already voted this way on this review"},
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	if public != nil {
		public.GET("/reviews/:id/votes/counts", h.Counts)
		public.GET("/reviews/:id/votes", h.List)
	}
	if protected != nil {
		protected.POST("/reviews/:id/upvote", h.Upvote)
		protected.POST("/reviews/:id/downvote", h.Downvote)
		protected.DELETE("/reviews/:id/vote", h.Remove)
		protected.GET("/reviews/:id/vote", h.UserVote)
	}
}

func (h *Handler) Upvote(c *gin.Context) {
	h.cast(c, h.svc.Upvote)
}

func (h *Handler) Downvote(c *gin.Context) {
	h.cast(c, h.svc.Downvote)
}

func (h *Handler) cast(c *gin.Context, castFn func(ctx context.Context, reviewID, userID int64) (*CastResult, error)) {
	reviewID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || reviewID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid review ID")
		return
	}

	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	result, err := castFn(c.Request.Context(), reviewID, userID)
	if err != nil {
		errorMap.Write(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

func (h *Handler) Remove(c *gin.Context) {
	reviewID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || reviewID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid review ID")
		return
	}

	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	if err := h.svc.Remove(c.Request.Context(), reviewID, userID); err != nil {
		errorMap.Write(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Vote removed successfully"})
}

func (h *Handler) Counts(c *gin.Context) {
	reviewID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || reviewID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid review ID")
		return
	}

	counts, err := h.svc.Counts(c.Request.Context(), reviewID)
	if err != nil {
		errorMap.Write(c, err)
		return
	}
	response.Success(c, http.StatusOK, counts)
}

func (h *Handler) UserVote(c *gin.Context) {
	reviewID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || reviewID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid review ID")
		return
	}

	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	result, err := h.svc.UserVote(c.Request.Context(), reviewID, userID)
	if err != nil {
		errorMap.Write(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

func (h *Handler) List(c *gin.Context) {
	reviewID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || reviewID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid review ID")
		return
	}

	votes, err := h.svc.List(c.Request.Context(), reviewID)
	if err != nil {
		errorMap.Write(c, err)
		return
	}
	response.Success(c, http.StatusOK, votes)
}
