package domain

import "time"

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusPaid      PaymentStatus = "paid"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusCancelled PaymentStatus = "cancelled"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed, PaymentStatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether the status ends the payment lifecycle. A payment
// transitions pending -> {paid|failed|cancelled} exactly once.
func (s PaymentStatus) Terminal() bool {
	return s == PaymentStatusPaid || s == PaymentStatusFailed || s == PaymentStatusCancelled
}

type Payment struct {
	ID             int64         `gorm:"primaryKey" json:"id"`
	TransactionID  string        `gorm:"type:varchar(64);uniqueIndex;not null" json:"transaction_id"`
	UserID         int64         `gorm:"index;not null" json:"user_id"`
	ReviewID       int64         `gorm:"index;not null" json:"review_id"`
	Amount         float64       `gorm:"not null" json:"amount"`
	Currency       string        `gorm:"type:varchar(10);default:'BDT'" json:"currency"`
	Status         PaymentStatus `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	GatewayPayload string        `gorm:"type:text" json:"gateway_payload,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

func (Payment) TableName() string { return "payments" }
