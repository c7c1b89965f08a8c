package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/trinhvq/gigmarket-be/internal/worker/domain"
)

// Storage persists settlement receipts for the worker
type Storage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStorage creates a new Storage instance
func NewStorage(db *sqlx.DB, logger *slog.Logger) *Storage {
	return &Storage{
		db:     db,
		logger: logger,
	}
}

// RecordReceipt inserts a settlement receipt. The insert is idempotent on
// receipt_id, so a redelivered event records nothing the second time.
// Returns false when the receipt already existed.
func (s *Storage) RecordReceipt(ctx context.Context, r *domain.Receipt) (bool, error) {
	query := `
		INSERT INTO settlement_receipts (
			receipt_id, kind, job_id, payer_id, payee_id, amount, settled_at, recorded_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, NOW()
		)
		ON CONFLICT (receipt_id) DO NOTHING
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		r.ReceiptID,
		r.Kind,
		r.JobID,
		r.PayerID,
		r.PayeeID,
		r.Amount,
		r.SettledAt,
	)
	if err != nil {
		return false, fmt.Errorf("failed to record receipt: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		s.logger.Warn("Receipt already recorded, skipping",
			slog.String("receipt_id", r.ReceiptID),
		)
		return false, nil
	}

	s.logger.Info("Receipt recorded",
		slog.String("receipt_id", r.ReceiptID),
		slog.String("kind", r.Kind),
		slog.String("amount", r.Amount.String()),
	)

	return true, nil
}
