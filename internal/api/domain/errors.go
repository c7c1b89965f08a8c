package domain

import "errors"

var (
	// ErrProfileNotFound is returned when a profile cannot be resolved
	ErrProfileNotFound = errors.New("profile not found")

	// ErrContractNotFound is returned when a contract is absent or the caller
	// is not a party on it; the two cases are deliberately indistinguishable
	ErrContractNotFound = errors.New("contract not found")

	// ErrJobNotFound is returned when a job cannot be found
	ErrJobNotFound = errors.New("job not found")

	// ErrNotClient is returned when someone other than the contract's client
	// attempts to pay one of its jobs
	ErrNotClient = errors.New("only the contract's client may pay")

	// ErrJobAlreadyPaid is returned on a second payment attempt for the same job
	ErrJobAlreadyPaid = errors.New("job already paid")

	// ErrInsufficientFunds is returned when the client balance does not cover
	// the job price
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInvalidAmount is returned for a non-positive deposit amount
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrNoDebtCapacity is returned when a client with no unpaid jobs attempts
	// a deposit
	ErrNoDebtCapacity = errors.New("no outstanding debt to deposit against")

	// ErrDepositCapExceeded is returned when a deposit exceeds the debt-based cap
	ErrDepositCapExceeded = errors.New("deposit exceeds allowed cap")
)
