package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/trinhvq/gigmarket-be/internal/worker/domain"
	"github.com/trinhvq/gigmarket-be/internal/worker/storage"
	"github.com/trinhvq/gigmarket-be/shared/postgresql"
	"github.com/trinhvq/gigmarket-be/shared/rabbitmq"
)

// Config holds worker configuration
type Config struct {
	Logger        *slog.Logger
	DBClient      *postgresql.Client
	RabbitClient  *rabbitmq.Client
	Concurrency   int
	PrefetchCount int
}

// Worker consumes settlement events from the queue and records them as
// receipts.
type Worker struct {
	logger        *slog.Logger
	rabbitClient  *rabbitmq.Client
	storage       receiptStore
	concurrency   int
	prefetchCount int
	workerID      string
	receiptsChan  chan *domain.ReceiptMessage
	wg            sync.WaitGroup
	stopChan      chan struct{}
}

// receiptStore is the persistence surface the worker needs.
type receiptStore interface {
	RecordReceipt(ctx context.Context, r *domain.Receipt) (bool, error)
}

// NewWorker creates a new worker instance
func NewWorker(cfg *Config) *Worker {
	return &Worker{
		logger:        cfg.Logger,
		rabbitClient:  cfg.RabbitClient,
		storage:       storage.NewStorage(cfg.DBClient.GetDB(), cfg.Logger),
		concurrency:   cfg.Concurrency,
		prefetchCount: cfg.PrefetchCount,
		workerID:      fmt.Sprintf("settlement-worker-%s", uuid.NewString()),
		receiptsChan:  make(chan *domain.ReceiptMessage),
		stopChan:      make(chan struct{}),
	}
}

// Start begins consuming settlement events until the context is canceled.
func (w *Worker) Start(ctx context.Context) error {
	w.logger.Info("Starting settlement worker",
		slog.String("worker_id", w.workerID),
		slog.Int("concurrency", w.concurrency),
	)

	deliveries, err := w.setupConsumer(ctx)
	if err != nil {
		return fmt.Errorf("failed to set up consumer: %w", err)
	}

	w.spawnWorkerPool(ctx)
	go w.startMessageDispatcher(ctx, deliveries)

	<-ctx.Done()
	w.logger.Info("Settlement worker context canceled, stopping...")
	return nil
}

// Stop gracefully stops the worker
func (w *Worker) Stop() {
	w.logger.Info("Stopping settlement worker...")
	close(w.stopChan)
	w.wg.Wait()
	w.logger.Info("Settlement worker stopped")
}
