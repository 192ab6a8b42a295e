package payment

import (
	"io"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"reviewhub/internal/domain"
	"reviewhub/internal/pkg/response"
	"reviewhub/internal/pkg/validator"
)

type Handler struct {
	svc *Service
}

var errorMap = response.ErrorMap{
	ErrValidation: {Status: http.StatusBadRequest, Code: "VALIDATION_ERROR", Message: "This review is not a purchasable premium review"},
	ErrNotFound:   {Status: http.StatusNotFound, Code: "NOT_FOUND", Message: "User or review not found"},
	ErrUpstream:   {Status: http.StatusBadGateway, Code: "UPSTREAM_FAILURE", Message: "Payment gateway did not accept the transaction"},
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(public, protected, admin *gin.RouterGroup) {
	if public != nil {
		// Gateway callbacks arrive unauthenticated and may be POSTed more
		// than once per transaction.
		public.POST("/payments/success", h.resolve(domain.PaymentStatusPaid))
		public.POST("/payments/fail", h.resolve(domain.PaymentStatusFailed))
		public.POST("/payments/cancel", h.resolve(domain.PaymentStatusCancelled))
	}
	if protected != nil {
		protected.POST("/payments/initiate", h.Initiate)
		protected.GET("/payments/history", h.History)
	}
	if admin != nil {
		admin.GET("/payments/analytics", h.Analytics)
	}
}

func (h *Handler) Initiate(c *gin.Context) {
	var req InitiateRequest
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

	result, err := h.svc.Initiate(c.Request.Context(), userID, req.ReviewID)
	if err != nil {
		errorMap.Write(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// resolve handles one terminal callback outcome. Failures are swallowed at
// this boundary: whatever happens, the external gateway gets a redirect back.
func (h *Handler) resolve(outcome domain.PaymentStatus) gin.HandlerFunc {
	return func(c *gin.Context) {
		// The raw body is the audit payload and must be read before anything
		// parses the form, or gin drains it and stores an empty string.
		payload, _ := io.ReadAll(c.Request.Body)

		transactionID := c.Query("transactionId")
		if transactionID == "" {
			if form, err := url.ParseQuery(string(payload)); err == nil {
				transactionID = form.Get("tran_id")
			}
		}

		target, err := h.svc.Resolve(c.Request.Context(), transactionID, outcome, string(payload))
		if err != nil {
			target = h.svc.FailureRedirect()
		}
		c.Redirect(http.StatusFound, target)
	}
}

func (h *Handler) History(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	history, err := h.svc.History(c.Request.Context(), userID)
	if err != nil {
		errorMap.Write(c, err)
		return
	}
	response.Success(c, http.StatusOK, history)
}

func (h *Handler) Analytics(c *gin.Context) {
	analytics, err := h.svc.AdminAnalytics(c.Request.Context())
	if err != nil {
		errorMap.Write(c, err)
		return
	}
	response.Success(c, http.StatusOK, analytics)
}
