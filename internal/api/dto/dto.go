package dto

import "github.com/shopspring/decimal"

type DepositRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

type ProfileDTO struct {
	ID         int64  `json:"id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Profession string `json:"profession"`
	Role       string `json:"role"`
	Balance    string `json:"balance"`
}

type ContractDTO struct {
	ID           int64  `json:"id"`
	ClientID     int64  `json:"client_id"`
	ContractorID int64  `json:"contractor_id"`
	Terms        string `json:"terms"`
	Status       string `json:"status"`
}

type ListContractsResponse struct {
	Contracts []ContractDTO `json:"contracts"`
}

type JobDTO struct {
	ID          int64  `json:"id"`
	ContractID  int64  `json:"contract_id"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Paid        bool   `json:"paid"`
	PaymentDate string `json:"payment_date,omitempty"`
}

type ListJobsResponse struct {
	Jobs []JobDTO `json:"jobs"`
}

type BestProfessionResponse struct {
	Profession string `json:"profession"`
	Earned     string `json:"earned"`
}

type BestClientDTO struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
	Paid     string `json:"paid"`
}

type BestClientsResponse struct {
	Clients []BestClientDTO `json:"clients"`
}
