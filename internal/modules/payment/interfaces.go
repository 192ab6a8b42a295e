package payment

import (
	"context"

	"reviewhub/internal/domain"
	"reviewhub/internal/repository"
)

type paymentStore interface {
	Create(ctx context.Context, p *domain.Payment) error
	GetByTransactionID(ctx context.Context, transactionID string) (*domain.Payment, error)
	ResolveTerminal(ctx context.Context, transactionID string, outcome domain.PaymentStatus, payload string) (repository.PaymentResolution, *domain.Payment, error)
	HasPaid(ctx context.Context, userID, reviewID int64) (bool, error)
	HistoryByUser(ctx context.Context, userID int64) ([]repository.PaymentWithReview, error)
	TotalEarnings(ctx context.Context) (float64, error)
	TopReviews(ctx context.Context, limit int) ([]repository.ReviewEarnings, error)
}

type userReader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type reviewReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Review, error)
}

// TransactionParams is what the external gateway needs to open a checkout
// session for one premium review.
type TransactionParams struct {
	TransactionID string
	Amount        float64
	Currency      string
	ProductName   string
	CustomerName  string
	CustomerEmail string
	SuccessURL    string
	FailURL       string
	CancelURL     string
	IPNURL        string
}

// GatewayClient is the black-box payment processor: it accepts transaction
// params and answers with a checkout redirect URL.
type GatewayClient interface {
	InitiateTransaction(ctx context.Context, params TransactionParams) (string, error)
}
