package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"reviewhub/internal/domain"
	"reviewhub/internal/repository"
)

type fakePaymentStore struct {
	byTxn map[string]*domain.Payment
}

func newFakePaymentStore() *fakePaymentStore {
	return &fakePaymentStore{byTxn: map[string]*domain.Payment{}}
}

func (f *fakePaymentStore) Create(ctx context.Context, p *domain.Payment) error {
	if _, ok := f.byTxn[p.TransactionID]; ok {
		return errors.New("duplicate key value violates unique constraint \"idx_payments_transaction_id\"")
	}
	cp := *p
	f.byTxn[p.TransactionID] = &cp
	return nil
}

func (f *fakePaymentStore) GetByTransactionID(ctx context.Context, transactionID string) (*domain.Payment, error) {
	p, ok := f.byTxn[transactionID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePaymentStore) ResolveTerminal(ctx context.Context, transactionID string, outcome domain.PaymentStatus, payload string) (repository.PaymentResolution, *domain.Payment, error) {
	p, ok := f.byTxn[transactionID]
	if !ok {
		return 0, nil, gorm.ErrRecordNotFound
	}
	if p.Status.Terminal() {
		cp := *p
		if p.Status == outcome {
			return repository.PaymentAlreadyResolved, &cp, nil
		}
		return repository.PaymentOutcomeConflict, &cp, nil
	}
	p.Status = outcome
	p.GatewayPayload = payload
	cp := *p
	return repository.PaymentResolved, &cp, nil
}

func (f *fakePaymentStore) HasPaid(ctx context.Context, userID, reviewID int64) (bool, error) {
	for _, p := range f.byTxn {
		if p.UserID == userID && p.ReviewID == reviewID && p.Status == domain.PaymentStatusPaid {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakePaymentStore) HistoryByUser(ctx context.Context, userID int64) ([]repository.PaymentWithReview, error) {
	var out []repository.PaymentWithReview
	for _, p := range f.byTxn {
		if p.UserID == userID {
			out = append(out, repository.PaymentWithReview{Payment: *p})
		}
	}
	return out, nil
}

func (f *fakePaymentStore) TotalEarnings(ctx context.Context) (float64, error) {
	var total float64
	for _, p := range f.byTxn {
		if p.Status == domain.PaymentStatusPaid {
			total += p.Amount
		}
	}
	return total, nil
}

func (f *fakePaymentStore) TopReviews(ctx context.Context, limit int) ([]repository.ReviewEarnings, error) {
	return nil, nil
}

type fakeUserReader struct {
	users map[int64]*domain.User
}

func (f *fakeUserReader) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

type fakeReviewReader struct {
	reviews map[int64]*domain.Review
}

func (f *fakeReviewReader) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	rv, ok := f.reviews[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return rv, nil
}

type fakeGateway struct {
	url    string
	err    error
	params TransactionParams
	calls  int
}

func (f *fakeGateway) InitiateTransaction(ctx context.Context, params TransactionParams) (string, error) {
	f.calls++
	f.params = params
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

func testFixtures() (*fakePaymentStore, *fakeUserReader, *fakeReviewReader) {
	price := 120.0
	store := newFakePaymentStore()
	users := &fakeUserReader{users: map[int64]*domain.User{
		7: {ID: 7, Name: "Demo User", Email: "demo@reviewhub.local"},
	}}
	reviews := &fakeReviewReader{reviews: map[int64]*domain.Review{
		1: {ID: 1, UserID: 3, Title: "Premium insights", IsPremium: true, Price: &price, Status: domain.ReviewStatusPublished},
		2: {ID: 2, UserID: 3, Title: "Plain review", Status: domain.ReviewStatusPublished},
	}}
	return store, users, reviews
}

func newPaymentService(store *fakePaymentStore, users *fakeUserReader, reviews *fakeReviewReader, gw GatewayClient, logs *[]string) *Service {
	loggerf := func(format string, args ...interface{}) {
		if logs != nil {
			*logs = append(*logs, fmt.Sprintf(format, args...))
		}
	}
	return NewService(store, users, reviews, gw, "BDT", "http://api.local/api/v1", "http://app.local", loggerf)
}

func TestInitiate_PersistsPendingPayment(t *testing.T) {
	store, users, reviews := testFixtures()
	gw := &fakeGateway{url: "https://gateway.example/checkout/abc"}
	svc := newPaymentService(store, users, reviews, gw, nil)

	res, err := svc.Initiate(context.Background(), 7, 1)
	assert.NoError(t, err)
	assert.Equal(t, "https://gateway.example/checkout/abc", res.PaymentURL)
	assert.True(t, strings.HasPrefix(res.TransactionID, "TXN-"))

	stored, err := store.GetByTransactionID(context.Background(), res.TransactionID)
	assert.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusPending, stored.Status)
	assert.Equal(t, 120.0, stored.Amount)
	assert.Equal(t, "BDT", stored.Currency)
	assert.Equal(t, int64(7), stored.UserID)
	assert.Equal(t, int64(1), stored.ReviewID)

	// The gateway got the callback URLs keyed by the same transaction id.
	assert.Contains(t, gw.params.SuccessURL, res.TransactionID)
	assert.Contains(t, gw.params.FailURL, res.TransactionID)
	assert.Contains(t, gw.params.CancelURL, res.TransactionID)
}

func TestInitiate_RejectsNonPremiumReview(t *testing.T) {
	store, users, reviews := testFixtures()
	gw := &fakeGateway{url: "https://gateway.example/checkout/abc"}
	svc := newPaymentService(store, users, reviews, gw, nil)

	_, err := svc.Initiate(context.Background(), 7, 2)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, 0, gw.calls)
	assert.Empty(t, store.byTxn)
}

func TestInitiate_MissingUserOrReview(t *testing.T) {
	store, users, reviews := testFixtures()
	svc := newPaymentService(store, users, reviews, &fakeGateway{}, nil)

	_, err := svc.Initiate(context.Background(), 99, 1)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Initiate(context.Background(), 7, 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInitiate_GatewayFailureLeavesNoPayment(t *testing.T) {
	store, users, reviews := testFixtures()
	gw := &fakeGateway{err: errors.New("SSLCommerz session init failed: invalid store credentials")}
	var logs []string
	svc := newPaymentService(store, users, reviews, gw, &logs)

	_, err := svc.Initiate(context.Background(), 7, 1)
	assert.ErrorIs(t, err, ErrUpstream)
	assert.Empty(t, store.byTxn)
	assert.NotEmpty(t, logs)
}

func TestResolve_TerminalOutcomeIsWriteOnce(t *testing.T) {
	store, users, reviews := testFixtures()
	svc := newPaymentService(store, users, reviews, &fakeGateway{url: "u"}, nil)
	ctx := context.Background()

	res, err := svc.Initiate(ctx, 7, 1)
	assert.NoError(t, err)
	txn := res.TransactionID

	redirect, err := svc.Resolve(ctx, txn, domain.PaymentStatusPaid, `{"status":"VALID"}`)
	assert.NoError(t, err)
	assert.Equal(t, "http://app.local/payment/success?transactionId="+txn, redirect)

	stored, _ := store.GetByTransactionID(ctx, txn)
	assert.Equal(t, domain.PaymentStatusPaid, stored.Status)
	assert.Equal(t, `{"status":"VALID"}`, stored.GatewayPayload)
}

func TestResolve_DuplicateCallbackIsNoOp(t *testing.T) {
	store, users, reviews := testFixtures()
	var logs []string
	svc := newPaymentService(store, users, reviews, &fakeGateway{url: "u"}, &logs)
	ctx := context.Background()

	res, _ := svc.Initiate(ctx, 7, 1)
	txn := res.TransactionID

	_, err := svc.Resolve(ctx, txn, domain.PaymentStatusPaid, `{"attempt":1}`)
	assert.NoError(t, err)

	redirect, err := svc.Resolve(ctx, txn, domain.PaymentStatusPaid, `{"attempt":2}`)
	assert.NoError(t, err)
	assert.Contains(t, redirect, "/payment/success")

	// The first payload wins; the redelivery only gets logged.
	stored, _ := store.GetByTransactionID(ctx, txn)
	assert.Equal(t, `{"attempt":1}`, stored.GatewayPayload)
	assert.NotEmpty(t, logs)
	assert.Contains(t, logs[len(logs)-1], "duplicate callback")
}

func TestResolve_ConflictingOutcomeKeepsStoredStatus(t *testing.T) {
	store, users, reviews := testFixtures()
	var logs []string
	svc := newPaymentService(store, users, reviews, &fakeGateway{url: "u"}, &logs)
	ctx := context.Background()

	res, _ := svc.Initiate(ctx, 7, 1)
	txn := res.TransactionID

	_, err := svc.Resolve(ctx, txn, domain.PaymentStatusPaid, `{"status":"VALID"}`)
	assert.NoError(t, err)

	// A later contradictory callback must not flip the terminal status, and
	// the redirect reflects what is stored, not what was delivered.
	redirect, err := svc.Resolve(ctx, txn, domain.PaymentStatusFailed, `{"status":"FAILED"}`)
	assert.NoError(t, err)
	assert.Contains(t, redirect, "/payment/success")

	stored, _ := store.GetByTransactionID(ctx, txn)
	assert.Equal(t, domain.PaymentStatusPaid, stored.Status)
	assert.Contains(t, logs[len(logs)-1], "conflicting callback outcome")
}

func TestResolve_Validation(t *testing.T) {
	store, users, reviews := testFixtures()
	svc := newPaymentService(store, users, reviews, &fakeGateway{}, nil)
	ctx := context.Background()

	_, err := svc.Resolve(ctx, "", domain.PaymentStatusPaid, "")
	assert.ErrorIs(t, err, ErrValidation)

	// Pending is not a terminal outcome a gateway may deliver.
	_, err = svc.Resolve(ctx, "TXN-1-abcd1234", domain.PaymentStatusPending, "")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Resolve(ctx, "TXN-1-abcd1234", domain.PaymentStatusPaid, "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestHasPaid(t *testing.T) {
	store, users, reviews := testFixtures()
	svc := newPaymentService(store, users, reviews, &fakeGateway{url: "u"}, nil)
	ctx := context.Background()

	paid, err := svc.HasPaid(ctx, 7, 1)
	assert.NoError(t, err)
	assert.False(t, paid)

	res, _ := svc.Initiate(ctx, 7, 1)
	_, _ = svc.Resolve(ctx, res.TransactionID, domain.PaymentStatusPaid, "")

	paid, err = svc.HasPaid(ctx, 7, 1)
	assert.NoError(t, err)
	assert.True(t, paid)
}

func TestHasPaid_CancelledAttemptDoesNotUnlock(t *testing.T) {
	store, users, reviews := testFixtures()
	users.users[8] = &domain.User{ID: 8, Name: "Other", Email: "other@reviewhub.local"}
	svc := newPaymentService(store, users, reviews, &fakeGateway{url: "u"}, nil)
	ctx := context.Background()

	res, _ := svc.Initiate(ctx, 8, 1)
	_, err := svc.Resolve(ctx, res.TransactionID, domain.PaymentStatusCancelled, "")
	assert.NoError(t, err)

	paid, err := svc.HasPaid(ctx, 8, 1)
	assert.NoError(t, err)
	assert.False(t, paid)
}

func TestFailureRedirect(t *testing.T) {
	store, users, reviews := testFixtures()
	svc := newPaymentService(store, users, reviews, &fakeGateway{}, nil)
	assert.Equal(t, "http://app.local/payment/failed", svc.FailureRedirect())
}
