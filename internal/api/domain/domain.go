package domain

import "github.com/shopspring/decimal"

// Profile roles
const (
	RoleClient     = "client"
	RoleContractor = "contractor"
)

// Contract status constants
const (
	ContractStatusNew        = "new"
	ContractStatusInProgress = "in_progress"
	ContractStatusTerminated = "terminated"
)

// MaxDepositRatio bounds a single deposit to a fraction of the client's
// outstanding unpaid debt.
var MaxDepositRatio = decimal.RequireFromString("0.25")
