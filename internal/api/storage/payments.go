package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/trinhvq/gigmarket-be/internal/api/domain"
	"github.com/trinhvq/gigmarket-be/internal/api/model"
)

// jobWithParties is a job row joined with both sides of its contract.
type jobWithParties struct {
	model.Job
	ClientID     int64 `db:"client_id"`
	ContractorID int64 `db:"contractor_id"`
}

const jobColumns = `id, contract_id, description, price, paid, payment_date, created_at, updated_at`

// PayJob moves the job price from the client balance to the contractor
// balance and marks the job paid, all inside one serializable transaction.
// Preconditions (actor is the client, job unpaid, balance covers the price)
// are checked against the state read in the same transaction; serialization
// conflicts retry the whole operation, so concurrent attempts on one job
// yield exactly one success and the rest reject as already paid.
func (s *Storage) PayJob(ctx context.Context, actorID, jobID int64) (*model.Payment, error) {
	var paid model.Job
	var clientID, contractorID int64

	err := s.pg.RunSerializable(ctx, func(tx *sqlx.Tx) error {
		var row jobWithParties
		query := `
			SELECT j.id, j.contract_id, j.description, j.price, j.paid, j.payment_date,
			       j.created_at, j.updated_at,
			       c.client_id, c.contractor_id
			FROM jobs j
			JOIN contracts c ON c.id = j.contract_id
			WHERE j.id = $1
		`
		err := tx.GetContext(ctx, &row, query, jobID)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrJobNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to load job: %w", err)
		}

		var balance decimal.Decimal
		err = tx.GetContext(ctx, &balance, `SELECT balance FROM profiles WHERE id = $1`, row.ClientID)
		if err != nil {
			return fmt.Errorf("failed to load client balance: %w", err)
		}

		if err := domain.AuthorizePayment(actorID, row.ClientID, row.Paid, balance, row.Price); err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE profiles SET balance = balance - $1, updated_at = NOW() WHERE id = $2`,
			row.Price, row.ClientID,
		)
		if err != nil {
			return fmt.Errorf("failed to debit client: %w", err)
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE profiles SET balance = balance + $1, updated_at = NOW() WHERE id = $2`,
			row.Price, row.ContractorID,
		)
		if err != nil {
			return fmt.Errorf("failed to credit contractor: %w", err)
		}

		err = tx.GetContext(ctx, &paid,
			`UPDATE jobs SET paid = TRUE, payment_date = NOW(), updated_at = NOW()
			 WHERE id = $1
			 RETURNING `+jobColumns,
			jobID,
		)
		if err != nil {
			return fmt.Errorf("failed to mark job paid: %w", err)
		}

		clientID = row.ClientID
		contractorID = row.ContractorID
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Job paid",
		slog.Int64("job_id", paid.ID),
		slog.Int64("client_id", clientID),
		slog.Int64("contractor_id", contractorID),
		slog.String("price", paid.Price.String()),
	)

	return &model.Payment{Job: paid, ClientID: clientID, ContractorID: contractorID}, nil
}

// UnpaidDebt sums the prices of the client's unpaid jobs on non-terminated
// contracts, using the given transaction.
func unpaidDebt(ctx context.Context, tx *sqlx.Tx, clientID int64) (decimal.Decimal, error) {
	var debt decimal.Decimal
	query := `
		SELECT COALESCE(SUM(j.price), 0)
		FROM jobs j
		JOIN contracts c ON c.id = j.contract_id
		WHERE c.client_id = $1
		  AND c.status <> $2
		  AND NOT j.paid
	`

	err := tx.GetContext(ctx, &debt, query, clientID, domain.ContractStatusTerminated)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum unpaid debt: %w", err)
	}

	return debt, nil
}

// Deposit credits the client balance inside one serializable transaction,
// after checking the amount against the debt-based cap computed in the same
// transaction. A client with zero outstanding debt cannot deposit at all.
func (s *Storage) Deposit(ctx context.Context, clientID int64, amount decimal.Decimal) (*model.Profile, error) {
	var profile model.Profile

	err := s.pg.RunSerializable(ctx, func(tx *sqlx.Tx) error {
		debt, err := unpaidDebt(ctx, tx, clientID)
		if err != nil {
			return err
		}

		if err := domain.AuthorizeDeposit(amount, debt); err != nil {
			return err
		}

		err = tx.GetContext(ctx, &profile,
			`UPDATE profiles SET balance = balance + $1, updated_at = NOW()
			 WHERE id = $2
			 RETURNING id, first_name, last_name, profession, role, balance, created_at, updated_at`,
			amount, clientID,
		)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrProfileNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to credit balance: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Deposit accepted",
		slog.Int64("client_id", clientID),
		slog.String("amount", amount.String()),
		slog.String("balance", profile.Balance.String()),
	)

	return &profile, nil
}
