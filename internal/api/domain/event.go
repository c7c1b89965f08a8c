package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Settlement event kinds
const (
	SettlementKindJobPayment = "job_payment"
	SettlementKindDeposit    = "deposit"
)

// SettlementEvent is published to the message bus after a balance-mutating
// transaction commits. The worker records it as an immutable receipt.
type SettlementEvent struct {
	ReceiptID string          `json:"receipt_id"`
	Kind      string          `json:"kind"`
	JobID     *int64          `json:"job_id,omitempty"`
	PayerID   int64           `json:"payer_id"`
	PayeeID   int64           `json:"payee_id"`
	Amount    decimal.Decimal `json:"amount"`
	SettledAt time.Time       `json:"settled_at"`
}
