package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trinhvq/gigmarket-be/internal/api/domain"
	"github.com/trinhvq/gigmarket-be/internal/api/dto"
	"github.com/trinhvq/gigmarket-be/internal/api/model"
)

func TestContractHandler_GetContract(t *testing.T) {
	tests := []struct {
		name            string
		contractIDParam string
		storeErr        error
		wantStatus      int
	}{
		{
			name:            "party sees the contract",
			contractIDParam: "3",
			wantStatus:      http.StatusOK,
		},
		{
			name:            "non-party gets not found",
			contractIDParam: "3",
			storeErr:        domain.ErrContractNotFound,
			wantStatus:      http.StatusNotFound,
		},
		{
			name:            "absent contract gets not found",
			contractIDParam: "99",
			storeErr:        domain.ErrContractNotFound,
			wantStatus:      http.StatusNotFound,
		},
		{
			name:            "non-numeric id",
			contractIDParam: "abc",
			wantStatus:      http.StatusBadRequest,
		},
		{
			name:            "store failure is opaque",
			contractIDParam: "3",
			storeErr:        errors.New("connection reset"),
			wantStatus:      http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeLedger{
				getContractForProfile: func(ctx context.Context, contractID, profileID int64) (*model.Contract, error) {
					if tt.storeErr != nil {
						return nil, tt.storeErr
					}
					assert.Equal(t, int64(1), profileID)
					return &model.Contract{
						ID:           contractID,
						ClientID:     1,
						ContractorID: 2,
						Status:       domain.ContractStatusInProgress,
					}, nil
				},
			}

			h := NewContractHandler(&Dependencies{Logger: testLogger(), Store: store})

			c, w := newTestContext(t, clientProfile(1, "1000"), http.MethodGet,
				"/contracts/"+tt.contractIDParam, nil,
				gin.Params{{Key: "contract_id", Value: tt.contractIDParam}})

			h.GetContract(c)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				var resp dto.ContractDTO
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, int64(3), resp.ID)
				assert.Equal(t, int64(1), resp.ClientID)
			}
		})
	}
}

func TestContractHandler_ListContracts(t *testing.T) {
	store := &fakeLedger{
		listContracts: func(ctx context.Context, profileID int64) ([]model.Contract, error) {
			assert.Equal(t, int64(1), profileID)
			return []model.Contract{
				{ID: 3, ClientID: 1, ContractorID: 2, Status: domain.ContractStatusInProgress},
				{ID: 5, ClientID: 1, ContractorID: 4, Status: domain.ContractStatusNew},
			}, nil
		},
	}

	h := NewContractHandler(&Dependencies{Logger: testLogger(), Store: store})

	c, w := newTestContext(t, clientProfile(1, "1000"), http.MethodGet, "/contracts", nil, nil)

	h.ListContracts(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.ListContractsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Contracts, 2)
	assert.Equal(t, int64(3), resp.Contracts[0].ID)
	assert.Equal(t, int64(5), resp.Contracts[1].ID)
}
