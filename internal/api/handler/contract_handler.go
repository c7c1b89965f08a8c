package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/trinhvq/gigmarket-be/internal/api/dto"
)

// ContractHandler handles contract-related HTTP requests
type ContractHandler struct {
	logger *slog.Logger
	store  Ledger
}

// NewContractHandler creates a new ContractHandler instance
func NewContractHandler(deps *Dependencies) *ContractHandler {
	return &ContractHandler{
		logger: deps.Logger,
		store:  deps.Store,
	}
}

// GetContract handles GET /contracts/:contract_id
// Returns the contract only when the caller is a party on it.
func (h *ContractHandler) GetContract(c *gin.Context) {
	contractID, err := strconv.ParseInt(c.Param("contract_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "contract_id must be an integer"})
		return
	}

	profile := currentProfile(c)

	contract, err := h.store.GetContractForProfile(c.Request.Context(), contractID, profile.ID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, toContractDTO(contract))
}

// ListContracts handles GET /contracts
// Lists the caller's non-terminated contracts.
func (h *ContractHandler) ListContracts(c *gin.Context) {
	profile := currentProfile(c)

	contracts, err := h.store.ListContracts(c.Request.Context(), profile.ID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	out := make([]dto.ContractDTO, len(contracts))
	for i := range contracts {
		out[i] = toContractDTO(&contracts[i])
	}

	c.JSON(http.StatusOK, dto.ListContractsResponse{Contracts: out})
}
