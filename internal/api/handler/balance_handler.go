package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/trinhvq/gigmarket-be/internal/api/domain"
	"github.com/trinhvq/gigmarket-be/internal/api/dto"
)

// BalanceHandler handles balance-related HTTP requests
type BalanceHandler struct {
	logger    *slog.Logger
	store     Ledger
	publisher Publisher
}

// NewBalanceHandler creates a new BalanceHandler instance
func NewBalanceHandler(deps *Dependencies) *BalanceHandler {
	return &BalanceHandler{
		logger:    deps.Logger,
		store:     deps.Store,
		publisher: deps.Publisher,
	}
}

// Deposit handles POST /balances/deposit/:user_id
// Credits the caller's balance, capped by a fraction of their unpaid debt.
// The authenticated profile is the only source of payer identity: the path
// id must match it.
func (h *BalanceHandler) Deposit(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id must be an integer"})
		return
	}

	profile := currentProfile(c)
	if userID != profile.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "cannot deposit into another profile"})
		return
	}

	var req dto.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid deposit request body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	updated, err := h.store.Deposit(c.Request.Context(), profile.ID, req.Amount)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	if h.publisher != nil {
		publishSettlement(c.Request.Context(), h.logger, h.publisher, domain.SettlementEvent{
			Kind:      domain.SettlementKindDeposit,
			PayerID:   profile.ID,
			PayeeID:   profile.ID,
			Amount:    req.Amount,
			SettledAt: time.Now().UTC(),
		})
	}

	c.JSON(http.StatusOK, toProfileDTO(updated))
}
