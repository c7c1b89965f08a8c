package worker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/trinhvq/gigmarket-be/internal/worker/domain"
)

// processReceipt persists one validated settlement event. Database failures
// are wrapped as retryable so the delivery goes back on the queue; the
// idempotent insert makes redelivery safe.
func (w *Worker) processReceipt(ctx context.Context, msg *domain.ReceiptMessage) error {
	w.logger.Debug("Processing settlement event",
		slog.String("receipt_id", msg.Receipt.ReceiptID),
		slog.String("kind", msg.Receipt.Kind),
	)

	inserted, err := w.storage.RecordReceipt(ctx, msg.Receipt)
	if err != nil {
		return domain.NewRetryableError(fmt.Errorf("failed to record receipt: %w", err))
	}

	if !inserted {
		// Duplicate delivery; already recorded, still ACK
		w.logger.Debug("Duplicate settlement event",
			slog.String("receipt_id", msg.Receipt.ReceiptID),
		)
	}

	return nil
}
