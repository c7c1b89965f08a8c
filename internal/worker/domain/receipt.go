package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Settlement kinds the worker records
const (
	KindJobPayment = "job_payment"
	KindDeposit    = "deposit"
)

// Receipt is a settlement event as consumed from the queue. One receipt is
// recorded per committed transfer or deposit; receipt_id makes recording
// idempotent under redelivery.
type Receipt struct {
	ReceiptID string          `json:"receipt_id"`
	Kind      string          `json:"kind"`
	JobID     *int64          `json:"job_id,omitempty"`
	PayerID   int64           `json:"payer_id"`
	PayeeID   int64           `json:"payee_id"`
	Amount    decimal.Decimal `json:"amount"`
	SettledAt time.Time       `json:"settled_at"`
}

// Validate checks that the receipt is well-formed enough to persist.
func (r *Receipt) Validate() error {
	if _, err := uuid.Parse(r.ReceiptID); err != nil {
		return fmt.Errorf("%w: receipt_id is not a UUID", ErrInvalidReceipt)
	}

	switch r.Kind {
	case KindJobPayment:
		if r.JobID == nil {
			return fmt.Errorf("%w: job_payment without job_id", ErrInvalidReceipt)
		}
	case KindDeposit:
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidReceipt, r.Kind)
	}

	if r.PayerID <= 0 || r.PayeeID <= 0 {
		return fmt.Errorf("%w: payer and payee ids are required", ErrInvalidReceipt)
	}

	if !r.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidReceipt)
	}

	if r.SettledAt.IsZero() {
		return fmt.Errorf("%w: settled_at is required", ErrInvalidReceipt)
	}

	return nil
}

// ReceiptMessage pairs a parsed receipt with its delivery tag for ack/nack.
type ReceiptMessage struct {
	Receipt     *Receipt
	DeliveryTag uint64
}
