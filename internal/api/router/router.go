package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/trinhvq/gigmarket-be/internal/api/handler"
)

// SetupRouter configures and returns the Gin router with all routes
func SetupRouter(deps *handler.Dependencies) *gin.Engine {
	r := gin.New()

	// Middleware
	r.Use(gin.Recovery())
	r.Use(LoggerMiddleware(deps.Logger))
	r.Use(CORSMiddleware())

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "gigmarket-api-service",
		})
	})

	contractHandler := handler.NewContractHandler(deps)
	jobHandler := handler.NewJobHandler(deps)
	balanceHandler := handler.NewBalanceHandler(deps)
	adminHandler := handler.NewAdminHandler(deps)

	// All business routes require an authenticated profile
	authed := r.Group("", ProfileAuth(deps.Logger, deps.Store))
	{
		contracts := authed.Group("/contracts")
		{
			// GET /contracts - list the caller's non-terminated contracts
			contracts.GET("", contractHandler.ListContracts)

			// GET /contracts/:contract_id - fetch one contract, party-scoped
			contracts.GET("/:contract_id", contractHandler.GetContract)
		}

		jobs := authed.Group("/jobs")
		{
			// GET /jobs/unpaid - unpaid jobs on in_progress contracts
			jobs.GET("/unpaid", jobHandler.ListUnpaidJobs)

			// POST /jobs/:job_id/pay - pay for a job
			jobs.POST("/:job_id/pay", jobHandler.PayJob)
		}

		balances := authed.Group("/balances")
		{
			// POST /balances/deposit/:user_id - deposit into own balance
			balances.POST("/deposit/:user_id", balanceHandler.Deposit)
		}

		admin := authed.Group("/admin")
		{
			// GET /admin/best-profession - top earning profession in a window
			admin.GET("/best-profession", adminHandler.BestProfession)

			// GET /admin/best-clients - top paying clients in a window
			admin.GET("/best-clients", adminHandler.BestClients)
		}
	}

	return r
}
