package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trinhvq/gigmarket-be/internal/api/domain"
	"github.com/trinhvq/gigmarket-be/internal/api/dto"
	"github.com/trinhvq/gigmarket-be/internal/api/model"
)

func TestBalanceHandler_Deposit(t *testing.T) {
	tests := []struct {
		name        string
		userIDParam string
		body        string
		depositErr  error
		wantStatus  int
		wantDeposit bool
	}{
		{
			name:        "deposit within cap",
			userIDParam: "1",
			body:        `{"amount": "90"}`,
			wantStatus:  http.StatusOK,
			wantDeposit: true,
		},
		{
			name:        "cap exceeded",
			userIDParam: "1",
			body:        `{"amount": "110"}`,
			depositErr:  domain.ErrDepositCapExceeded,
			wantStatus:  http.StatusForbidden,
		},
		{
			name:        "no outstanding debt",
			userIDParam: "1",
			body:        `{"amount": "10"}`,
			depositErr:  domain.ErrNoDebtCapacity,
			wantStatus:  http.StatusForbidden,
		},
		{
			name:        "negative amount",
			userIDParam: "1",
			body:        `{"amount": "-10"}`,
			depositErr:  domain.ErrInvalidAmount,
			wantStatus:  http.StatusBadRequest,
		},
		{
			name:        "another profile's balance",
			userIDParam: "2",
			body:        `{"amount": "90"}`,
			wantStatus:  http.StatusForbidden,
		},
		{
			name:        "non-numeric user id",
			userIDParam: "abc",
			body:        `{"amount": "90"}`,
			wantStatus:  http.StatusBadRequest,
		},
		{
			name:        "malformed body",
			userIDParam: "1",
			body:        `{"amount": }`,
			wantStatus:  http.StatusBadRequest,
		},
		{
			name:        "store failure is opaque",
			userIDParam: "1",
			body:        `{"amount": "90"}`,
			depositErr:  errors.New("connection reset"),
			wantStatus:  http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotAmount decimal.Decimal
			store := &fakeLedger{
				deposit: func(ctx context.Context, clientID int64, amount decimal.Decimal) (*model.Profile, error) {
					if tt.depositErr != nil {
						return nil, tt.depositErr
					}
					assert.Equal(t, int64(1), clientID)
					gotAmount = amount
					updated := clientProfile(1, "1090")
					return updated, nil
				},
			}
			publisher := &recordingPublisher{}

			h := NewBalanceHandler(&Dependencies{
				Logger:    testLogger(),
				Store:     store,
				Publisher: publisher,
			})

			c, w := newTestContext(t, clientProfile(1, "1000"), http.MethodPost,
				"/balances/deposit/"+tt.userIDParam, []byte(tt.body),
				gin.Params{{Key: "user_id", Value: tt.userIDParam}})

			h.Deposit(c)

			assert.Equal(t, tt.wantStatus, w.Code)

			if tt.wantDeposit {
				assert.True(t, decimal.RequireFromString("90").Equal(gotAmount))

				var resp dto.ProfileDTO
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, int64(1), resp.ID)
				assert.Equal(t, "1090", resp.Balance)

				require.Len(t, publisher.published, 1)
				var event domain.SettlementEvent
				require.NoError(t, json.Unmarshal(publisher.published[0], &event))
				assert.Equal(t, domain.SettlementKindDeposit, event.Kind)
				assert.Equal(t, int64(1), event.PayerID)
				assert.Equal(t, int64(1), event.PayeeID)
				assert.Nil(t, event.JobID)
			} else {
				assert.Empty(t, publisher.published)
			}
		})
	}
}
