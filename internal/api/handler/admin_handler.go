package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/trinhvq/gigmarket-be/internal/api/dto"
)

const defaultBestClientsLimit = 2

// AdminHandler handles the reporting endpoints
type AdminHandler struct {
	logger *slog.Logger
	store  Ledger
}

// NewAdminHandler creates a new AdminHandler instance
func NewAdminHandler(deps *Dependencies) *AdminHandler {
	return &AdminHandler{
		logger: deps.Logger,
		store:  deps.Store,
	}
}

// BestProfession handles GET /admin/best-profession?start&end
// Returns the profession that earned the most within the payment window.
func (h *AdminHandler) BestProfession(c *gin.Context) {
	start, end, err := parseWindow(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	top, err := h.store.BestProfession(c.Request.Context(), start, end)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	if top == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no paid jobs in window"})
		return
	}

	c.JSON(http.StatusOK, dto.BestProfessionResponse{
		Profession: top.Profession,
		Earned:     top.Earned.String(),
	})
}

// BestClients handles GET /admin/best-clients?start&end&limit
// Returns the top clients ranked by paid sum within the payment window.
func (h *AdminHandler) BestClients(c *gin.Context) {
	start, end, err := parseWindow(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	limit := defaultBestClientsLimit
	if raw := c.Query("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
	}

	clients, err := h.store.BestClients(c.Request.Context(), start, end, limit)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	if len(clients) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no paid jobs in window"})
		return
	}

	out := make([]dto.BestClientDTO, len(clients))
	for i, cl := range clients {
		out[i] = dto.BestClientDTO{
			ID:       cl.ID,
			FullName: cl.FullName,
			Paid:     cl.Paid.String(),
		}
	}

	c.JSON(http.StatusOK, dto.BestClientsResponse{Clients: out})
}

// parseWindow reads the start/end query parameters as RFC 3339 timestamps or
// plain dates.
func parseWindow(c *gin.Context) (time.Time, time.Time, error) {
	start, err := parseTimeParam(c.Query("start"))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start: %w", err)
	}

	end, err := parseTimeParam(c.Query("end"))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end: %w", err)
	}

	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("end is before start")
	}

	return start, end, nil
}

func parseTimeParam(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, fmt.Errorf("missing parameter")
	}

	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}

	return time.Parse(time.DateOnly, raw)
}
