package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/trinhvq/gigmarket-be/internal/api/domain"
	"github.com/trinhvq/gigmarket-be/internal/api/model"
	"github.com/trinhvq/gigmarket-be/shared/postgresql"
)

// Storage is the ledger store. All reads are scoped to the requesting
// profile; all balance mutations go through the serializable protocols in
// payments.go.
type Storage struct {
	pg     *postgresql.Client
	db     *sqlx.DB
	logger *slog.Logger
}

func NewStorage(pg *postgresql.Client, logger *slog.Logger) *Storage {
	return &Storage{
		pg:     pg,
		db:     pg.GetDB(),
		logger: logger,
	}
}

// GetProfileByID resolves a profile; used by the authentication middleware.
func (s *Storage) GetProfileByID(ctx context.Context, profileID int64) (*model.Profile, error) {
	var profile model.Profile
	query := `
		SELECT id, first_name, last_name, profession, role, balance, created_at, updated_at
		FROM profiles
		WHERE id = $1
	`

	err := s.db.GetContext(ctx, &profile, query, profileID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return &profile, nil
}

// GetContractForProfile returns the contract only when the profile is a
// party on it. An absent contract and a contract the caller may not see are
// the same error, so existence never leaks.
func (s *Storage) GetContractForProfile(ctx context.Context, contractID, profileID int64) (*model.Contract, error) {
	var contract model.Contract
	query := `
		SELECT id, client_id, contractor_id, terms, status, created_at, updated_at
		FROM contracts
		WHERE id = $1 AND (client_id = $2 OR contractor_id = $2)
	`

	err := s.db.GetContext(ctx, &contract, query, contractID, profileID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrContractNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get contract: %w", err)
	}

	return &contract, nil
}

// ListContracts returns the profile's non-terminated contracts.
func (s *Storage) ListContracts(ctx context.Context, profileID int64) ([]model.Contract, error) {
	query := `
		SELECT id, client_id, contractor_id, terms, status, created_at, updated_at
		FROM contracts
		WHERE (client_id = $1 OR contractor_id = $1) AND status <> $2
		ORDER BY id
	`

	var contracts []model.Contract
	err := s.db.SelectContext(ctx, &contracts, query, profileID, domain.ContractStatusTerminated)
	if err != nil {
		return nil, fmt.Errorf("failed to list contracts: %w", err)
	}

	return contracts, nil
}

// ListUnpaidJobs returns unpaid jobs on the profile's in_progress contracts.
func (s *Storage) ListUnpaidJobs(ctx context.Context, profileID int64) ([]model.Job, error) {
	query := `
		SELECT j.id, j.contract_id, j.description, j.price, j.paid, j.payment_date,
		       j.created_at, j.updated_at
		FROM jobs j
		JOIN contracts c ON c.id = j.contract_id
		WHERE (c.client_id = $1 OR c.contractor_id = $1)
		  AND c.status = $2
		  AND NOT j.paid
		ORDER BY j.id
	`

	var jobs []model.Job
	err := s.db.SelectContext(ctx, &jobs, query, profileID, domain.ContractStatusInProgress)
	if err != nil {
		return nil, fmt.Errorf("failed to list unpaid jobs: %w", err)
	}

	return jobs, nil
}
