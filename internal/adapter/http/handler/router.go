package handler

import (
	"custody-core/internal/adapter/http/middleware"
	redisStore "custody-core/internal/adapter/storage/redis"
	"custody-core/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	ProvisionerSvc ports.ProvisionerService
	GatewaySvc     ports.GatewayService
	SettlementSvc  ports.SettlementService
	Vault          ports.KeyVault
	WalletRepo     ports.WalletRepository
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	ServiceSecret  string // signs internal service tokens
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Health check (deep — verifies PostgreSQL + Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// Prometheus scrape endpoint
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Rate limit rules
	rules := middleware.DefaultRateLimitRules()

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	internalAuth := middleware.InternalAuth(deps.ServiceSecret, deps.Logger)

	// API v1 routes
	v1 := r.Group("/api/v1")

	walletHandler := NewWalletHandler(deps.ProvisionerSvc, deps.Vault, deps.WalletRepo)
	wallet := v1.Group("/wallet")
	{
		wallet.POST("/create", rl("wallet_create"), walletHandler.Create)
		wallet.POST("/create-batch", rl("wallet_create"), walletHandler.CreateBatch)
		// Internal network path only; guarded by the service token.
		wallet.POST("/decrypt-key", internalAuth, walletHandler.DecryptKey)
	}

	txHandler := NewTransactionHandler(deps.GatewaySvc)
	tx := v1.Group("/transaction")
	{
		tx.POST("/send", rl("transaction_send"), txHandler.Send)
		tx.GET("/receipt/:txHash", rl("receipt"), txHandler.GetReceipt)
		tx.POST("/move-to-cold", rl("custody_move"), txHandler.MoveToCold)
		tx.POST("/move-to-hot", rl("custody_move"), txHandler.MoveToHot)
	}

	settlementHandler := NewSettlementHandler(deps.SettlementSvc)
	settlement := v1.Group("/settlement", internalAuth)
	{
		settlement.POST("/:id/approve", rl("settlement"), settlementHandler.Approve)
		settlement.POST("/:id/reject", rl("settlement"), settlementHandler.Reject)
	}

	return r
}
