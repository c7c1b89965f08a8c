package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/trinhvq/gigmarket-be/internal/api/domain"
	"github.com/trinhvq/gigmarket-be/internal/api/dto"
)

// JobHandler handles job-related HTTP requests
type JobHandler struct {
	logger    *slog.Logger
	store     Ledger
	publisher Publisher
}

// NewJobHandler creates a new JobHandler instance
func NewJobHandler(deps *Dependencies) *JobHandler {
	return &JobHandler{
		logger:    deps.Logger,
		store:     deps.Store,
		publisher: deps.Publisher,
	}
}

// ListUnpaidJobs handles GET /jobs/unpaid
// Lists unpaid jobs on the caller's in_progress contracts.
func (h *JobHandler) ListUnpaidJobs(c *gin.Context) {
	profile := currentProfile(c)

	jobs, err := h.store.ListUnpaidJobs(c.Request.Context(), profile.ID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	out := make([]dto.JobDTO, len(jobs))
	for i := range jobs {
		out[i] = toJobDTO(&jobs[i])
	}

	c.JSON(http.StatusOK, dto.ListJobsResponse{Jobs: out})
}

// PayJob handles POST /jobs/:job_id/pay
// Transfers the job price from the caller (the contract's client) to the
// contractor and marks the job paid, atomically.
func (h *JobHandler) PayJob(c *gin.Context) {
	jobID, err := strconv.ParseInt(c.Param("job_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "job_id must be an integer"})
		return
	}

	profile := currentProfile(c)

	h.logger.Info("PayJob called",
		slog.Int64("job_id", jobID),
		slog.Int64("profile_id", profile.ID),
	)

	payment, err := h.store.PayJob(c.Request.Context(), profile.ID, jobID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	if h.publisher != nil && payment.Job.PaymentDate != nil {
		jid := payment.Job.ID
		publishSettlement(c.Request.Context(), h.logger, h.publisher, domain.SettlementEvent{
			Kind:      domain.SettlementKindJobPayment,
			JobID:     &jid,
			PayerID:   payment.ClientID,
			PayeeID:   payment.ContractorID,
			Amount:    payment.Job.Price,
			SettledAt: *payment.Job.PaymentDate,
		})
	}

	c.JSON(http.StatusOK, toJobDTO(&payment.Job))
}
