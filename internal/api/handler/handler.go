package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/trinhvq/gigmarket-be/internal/api/domain"
	"github.com/trinhvq/gigmarket-be/internal/api/dto"
	"github.com/trinhvq/gigmarket-be/internal/api/model"
)

// ProfileContextKey is where the authentication middleware stores the
// resolved *model.Profile. Handlers read the caller identity only from here.
const ProfileContextKey = "profile"

// Ledger is the storage surface the handlers depend on.
type Ledger interface {
	GetProfileByID(ctx context.Context, profileID int64) (*model.Profile, error)
	GetContractForProfile(ctx context.Context, contractID, profileID int64) (*model.Contract, error)
	ListContracts(ctx context.Context, profileID int64) ([]model.Contract, error)
	ListUnpaidJobs(ctx context.Context, profileID int64) ([]model.Job, error)
	PayJob(ctx context.Context, actorID, jobID int64) (*model.Payment, error)
	Deposit(ctx context.Context, clientID int64, amount decimal.Decimal) (*model.Profile, error)
	BestProfession(ctx context.Context, start, end time.Time) (*model.ProfessionEarnings, error)
	BestClients(ctx context.Context, start, end time.Time, limit int) ([]model.ClientSpend, error)
}

// Publisher publishes settlement events to the message bus.
type Publisher interface {
	PublishWithRetry(ctx context.Context, body []byte, contentType string) error
}

// Dependencies holds all dependencies needed by handlers
type Dependencies struct {
	Logger    *slog.Logger
	Store     Ledger
	Publisher Publisher
}

// currentProfile returns the authenticated profile placed into the context
// by the ProfileAuth middleware.
func currentProfile(c *gin.Context) *model.Profile {
	return c.MustGet(ProfileContextKey).(*model.Profile)
}

// respondError maps domain errors to status codes. Business-rule violations
// surface with their message; anything else is an opaque 500, logged
// server-side.
func respondError(c *gin.Context, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrProfileNotFound),
		errors.Is(err, domain.ErrContractNotFound),
		errors.Is(err, domain.ErrJobNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNotClient),
		errors.Is(err, domain.ErrJobAlreadyPaid),
		errors.Is(err, domain.ErrInsufficientFunds),
		errors.Is(err, domain.ErrNoDebtCapacity),
		errors.Is(err, domain.ErrDepositCapExceeded):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidAmount):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error("Request failed",
			slog.String("path", c.Request.URL.Path),
			slog.String("error", err.Error()),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// publishSettlement emits a settlement event after a committed transfer or
// deposit. Best-effort: a publish failure is logged and never unwinds the
// committed transaction.
func publishSettlement(ctx context.Context, logger *slog.Logger, publisher Publisher, event domain.SettlementEvent) {
	event.ReceiptID = uuid.NewString()

	body, err := json.Marshal(event)
	if err != nil {
		logger.Error("Failed to marshal settlement event",
			slog.String("kind", event.Kind),
			slog.String("error", err.Error()),
		)
		return
	}

	if err := publisher.PublishWithRetry(ctx, body, "application/json"); err != nil {
		logger.Error("Failed to publish settlement event",
			slog.String("kind", event.Kind),
			slog.String("receipt_id", event.ReceiptID),
			slog.String("error", err.Error()),
		)
	}
}

func toProfileDTO(p *model.Profile) dto.ProfileDTO {
	return dto.ProfileDTO{
		ID:         p.ID,
		FirstName:  p.FirstName,
		LastName:   p.LastName,
		Profession: p.Profession,
		Role:       p.Role,
		Balance:    p.Balance.String(),
	}
}

func toContractDTO(ct *model.Contract) dto.ContractDTO {
	return dto.ContractDTO{
		ID:           ct.ID,
		ClientID:     ct.ClientID,
		ContractorID: ct.ContractorID,
		Terms:        ct.Terms,
		Status:       ct.Status,
	}
}

func toJobDTO(j *model.Job) dto.JobDTO {
	out := dto.JobDTO{
		ID:          j.ID,
		ContractID:  j.ContractID,
		Description: j.Description,
		Price:       j.Price.String(),
		Paid:        j.Paid,
	}
	if j.PaymentDate != nil {
		out.PaymentDate = j.PaymentDate.Format(time.RFC3339)
	}
	return out
}
