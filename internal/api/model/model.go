package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Profile is a balance-bearing account for a client or contractor.
type Profile struct {
	ID         int64           `db:"id"`
	FirstName  string          `db:"first_name"`
	LastName   string          `db:"last_name"`
	Profession string          `db:"profession"`
	Role       string          `db:"role"`
	Balance    decimal.Decimal `db:"balance"`
	CreatedAt  time.Time       `db:"created_at"`
	UpdatedAt  time.Time       `db:"updated_at"`
}

// Contract binds one client profile and one contractor profile.
type Contract struct {
	ID           int64     `db:"id"`
	ClientID     int64     `db:"client_id"`
	ContractorID int64     `db:"contractor_id"`
	Terms        string    `db:"terms"`
	Status       string    `db:"status"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// Job is a billable unit of work under a contract, paid at most once.
type Job struct {
	ID          int64           `db:"id"`
	ContractID  int64           `db:"contract_id"`
	Description string          `db:"description"`
	Price       decimal.Decimal `db:"price"`
	Paid        bool            `db:"paid"`
	PaymentDate *time.Time      `db:"payment_date"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

// Payment is the outcome of a successful job payment: the job as persisted
// after the transfer plus both sides of the moved funds.
type Payment struct {
	Job          Job
	ClientID     int64
	ContractorID int64
}

// ProfessionEarnings is a reporting row: total earned by one profession
// within a payment window.
type ProfessionEarnings struct {
	Profession string          `db:"profession"`
	Earned     decimal.Decimal `db:"earned"`
}

// ClientSpend is a reporting row: total paid by one client within a
// payment window.
type ClientSpend struct {
	ID       int64           `db:"id"`
	FullName string          `db:"full_name"`
	Paid     decimal.Decimal `db:"paid"`
}
