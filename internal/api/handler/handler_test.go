package handler

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/trinhvq/gigmarket-be/internal/api/model"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeLedger implements Ledger with per-test function fields.
type fakeLedger struct {
	getProfileByID        func(ctx context.Context, profileID int64) (*model.Profile, error)
	getContractForProfile func(ctx context.Context, contractID, profileID int64) (*model.Contract, error)
	listContracts         func(ctx context.Context, profileID int64) ([]model.Contract, error)
	listUnpaidJobs        func(ctx context.Context, profileID int64) ([]model.Job, error)
	payJob                func(ctx context.Context, actorID, jobID int64) (*model.Payment, error)
	deposit               func(ctx context.Context, clientID int64, amount decimal.Decimal) (*model.Profile, error)
	bestProfession        func(ctx context.Context, start, end time.Time) (*model.ProfessionEarnings, error)
	bestClients           func(ctx context.Context, start, end time.Time, limit int) ([]model.ClientSpend, error)
}

func (f *fakeLedger) GetProfileByID(ctx context.Context, profileID int64) (*model.Profile, error) {
	return f.getProfileByID(ctx, profileID)
}

func (f *fakeLedger) GetContractForProfile(ctx context.Context, contractID, profileID int64) (*model.Contract, error) {
	return f.getContractForProfile(ctx, contractID, profileID)
}

func (f *fakeLedger) ListContracts(ctx context.Context, profileID int64) ([]model.Contract, error) {
	return f.listContracts(ctx, profileID)
}

func (f *fakeLedger) ListUnpaidJobs(ctx context.Context, profileID int64) ([]model.Job, error) {
	return f.listUnpaidJobs(ctx, profileID)
}

func (f *fakeLedger) PayJob(ctx context.Context, actorID, jobID int64) (*model.Payment, error) {
	return f.payJob(ctx, actorID, jobID)
}

func (f *fakeLedger) Deposit(ctx context.Context, clientID int64, amount decimal.Decimal) (*model.Profile, error) {
	return f.deposit(ctx, clientID, amount)
}

func (f *fakeLedger) BestProfession(ctx context.Context, start, end time.Time) (*model.ProfessionEarnings, error) {
	return f.bestProfession(ctx, start, end)
}

func (f *fakeLedger) BestClients(ctx context.Context, start, end time.Time, limit int) ([]model.ClientSpend, error) {
	return f.bestClients(ctx, start, end, limit)
}

// recordingPublisher captures published settlement events.
type recordingPublisher struct {
	published [][]byte
	err       error
}

func (p *recordingPublisher) PublishWithRetry(ctx context.Context, body []byte, contentType string) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, body)
	return nil
}

// newTestContext builds a gin context carrying an authenticated profile.
func newTestContext(t *testing.T, profile *model.Profile, method, target string, body []byte, params gin.Params) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequest(method, target, reader)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.Request = req
	c.Params = params
	if profile != nil {
		c.Set(ProfileContextKey, profile)
	}

	return c, w
}

func clientProfile(id int64, balance string) *model.Profile {
	return &model.Profile{
		ID:         id,
		FirstName:  "Ada",
		LastName:   "Lovelace",
		Profession: "engineer",
		Role:       "client",
		Balance:    decimal.RequireFromString(balance),
	}
}
