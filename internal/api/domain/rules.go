package domain

import "github.com/shopspring/decimal"

// IsParty reports whether profileID is an authorized party (client or
// contractor) on a contract identified by its two sides.
func IsParty(profileID, clientID, contractorID int64) bool {
	return profileID == clientID || profileID == contractorID
}

// MaxDeposit returns the largest deposit allowed against the given unpaid debt.
func MaxDeposit(debt decimal.Decimal) decimal.Decimal {
	return debt.Mul(MaxDepositRatio)
}

// AuthorizePayment applies the payment preconditions in order: only the
// contract's client may pay, a job is paid at most once, and the client
// balance must cover the price. Returns nil when the transfer may proceed.
func AuthorizePayment(actorID, clientID int64, paid bool, balance, price decimal.Decimal) error {
	if actorID != clientID {
		return ErrNotClient
	}
	if paid {
		return ErrJobAlreadyPaid
	}
	if balance.LessThan(price) {
		return ErrInsufficientFunds
	}
	return nil
}

// AuthorizeDeposit checks a deposit against the debt-based cap. A client with
// zero outstanding debt has no deposit capacity at all.
func AuthorizeDeposit(amount, debt decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if !debt.IsPositive() {
		return ErrNoDebtCapacity
	}
	if amount.GreaterThan(MaxDeposit(debt)) {
		return ErrDepositCapExceeded
	}
	return nil
}
