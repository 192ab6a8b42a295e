package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"reviewhub/internal/domain"
	"reviewhub/internal/repository"
)

const topReviewsLimit = 10

type Service struct {
	payments paymentStore
	users    userReader
	reviews  reviewReader
	gateway  GatewayClient
	loggerf  func(format string, args ...interface{})

	currency       string
	backendBaseURL string
	clientBaseURL  string
}

func NewService(payments paymentStore, users userReader, reviews reviewReader, gateway GatewayClient, currency, backendBaseURL, clientBaseURL string, loggerf func(format string, args ...interface{})) *Service {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Service{
		payments:       payments,
		users:          users,
		reviews:        reviews,
		gateway:        gateway,
		loggerf:        loggerf,
		currency:       currency,
		backendBaseURL: backendBaseURL,
		clientBaseURL:  clientBaseURL,
	}
}

// Initiate opens a gateway session for a premium review and persists the
// pending payment keyed by a fresh transaction id.
func (s *Service) Initiate(ctx context.Context, userID, reviewID int64) (*InitiateResponse, error) {
	if userID <= 0 || reviewID <= 0 {
		return nil, ErrValidation
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	rv, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !rv.IsPremium || rv.Price == nil || *rv.Price <= 0 {
		return nil, ErrValidation
	}

	transactionID := newTransactionID()
	redirectURL, err := s.gateway.InitiateTransaction(ctx, TransactionParams{
		TransactionID: transactionID,
		Amount:        *rv.Price,
		Currency:      s.currency,
		ProductName:   rv.Title,
		CustomerName:  user.Name,
		CustomerEmail: user.Email,
		SuccessURL:    fmt.Sprintf("%s/payments/success?transactionId=%s", s.backendBaseURL, transactionID),
		FailURL:       fmt.Sprintf("%s/payments/fail?transactionId=%s", s.backendBaseURL, transactionID),
		CancelURL:     fmt.Sprintf("%s/payments/cancel?transactionId=%s", s.backendBaseURL, transactionID),
		IPNURL:        fmt.Sprintf("%s/payments/ipn", s.backendBaseURL),
	})
	if err != nil {
		s.loggerf("level=error msg=gateway initiation failed transaction_id=%s err=%v", transactionID, err)
		return nil, ErrUpstream
	}

	p := &domain.Payment{
		TransactionID: transactionID,
		UserID:        userID,
		ReviewID:      reviewID,
		Amount:        *rv.Price,
		Currency:      s.currency,
		Status:        domain.PaymentStatusPending,
	}
	if err := s.payments.Create(ctx, p); err != nil {
		return nil, err
	}

	return &InitiateResponse{TransactionID: transactionID, PaymentURL: redirectURL}, nil
}

// Resolve applies a gateway callback. Terminal statuses are write-once:
// re-delivery of the same outcome is a no-op and a different outcome keeps
// the stored status and only logs the inconsistency. The returned URL is the
// caller-facing redirect, chosen from the status actually stored.
func (s *Service) Resolve(ctx context.Context, transactionID string, outcome domain.PaymentStatus, payload string) (string, error) {
	if transactionID == "" || !outcome.Terminal() {
		return "", ErrValidation
	}

	resolution, stored, err := s.payments.ResolveTerminal(ctx, transactionID, outcome, payload)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}

	switch resolution {
	case repository.PaymentAlreadyResolved:
		s.loggerf("level=info msg=duplicate callback transaction_id=%s status=%s", transactionID, stored.Status)
	case repository.PaymentOutcomeConflict:
		s.loggerf("level=error msg=conflicting callback outcome transaction_id=%s stored=%s delivered=%s", transactionID, stored.Status, outcome)
	}

	return s.redirectFor(stored.Status, transactionID), nil
}

// FailureRedirect is the generic destination used when a callback cannot be
// resolved at all; the gateway must always get some redirect back.
func (s *Service) FailureRedirect() string {
	return s.clientBaseURL + "/payment/failed"
}

// HasPaid reports whether a paid payment exists for the (user, review) pair.
// This is the predicate the review module's premium gate consults.
func (s *Service) HasPaid(ctx context.Context, userID, reviewID int64) (bool, error) {
	return s.payments.HasPaid(ctx, userID, reviewID)
}

func (s *Service) History(ctx context.Context, userID int64) ([]repository.PaymentWithReview, error) {
	if userID <= 0 {
		return nil, ErrValidation
	}
	return s.payments.HistoryByUser(ctx, userID)
}

func (s *Service) AdminAnalytics(ctx context.Context) (*Analytics, error) {
	total, err := s.payments.TotalEarnings(ctx)
	if err != nil {
		return nil, err
	}
	popular, err := s.payments.TopReviews(ctx, topReviewsLimit)
	if err != nil {
		return nil, err
	}
	return &Analytics{TotalEarnings: total, PopularReviews: popular}, nil
}

func (s *Service) redirectFor(status domain.PaymentStatus, transactionID string) string {
	switch status {
	case domain.PaymentStatusPaid:
		return fmt.Sprintf("%s/payment/success?transactionId=%s", s.clientBaseURL, transactionID)
	case domain.PaymentStatusCancelled:
		return fmt.Sprintf("%s/payment/cancel?transactionId=%s", s.clientBaseURL, transactionID)
	default:
		return fmt.Sprintf("%s/payment/failed?transactionId=%s", s.clientBaseURL, transactionID)
	}
}

// newTransactionID builds a time-based id with a random suffix; the unique
// index on payments.transaction_id is the hard collision guard.
func newTransactionID() string {
	suffix := uuid.NewString()[:8]
	return fmt.Sprintf("TXN-%d-%s", time.Now().UnixMilli(), suffix)
}
