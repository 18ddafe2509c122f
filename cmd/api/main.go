package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"custody-core/config"
	"custody-core/internal/adapter/chain"
	"custody-core/internal/adapter/chain/evm"
	"custody-core/internal/adapter/chain/tron"
	httpHandler "custody-core/internal/adapter/http/handler"
	pgStorage "custody-core/internal/adapter/storage/postgres"
	redisStorage "custody-core/internal/adapter/storage/redis"
	"custody-core/internal/core/ports"
	"custody-core/internal/service"
	"custody-core/pkg/apperror"
	"custody-core/pkg/logger"

	"github.com/google/uuid"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting custody core")

	treasuryUserID, err := uuid.Parse(cfg.Settlement.TreasuryUserID)
	if err != nil {
		log.Fatal().Err(err).Msg("settlement.treasury_user_id must be a UUID")
	}

	ctx := context.Background()

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()
	log.Info().Msg("PostgreSQL connected")

	// Apply pending schema migrations
	if err := pgStorage.Migrate(cfg.Database.DSN(), log); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	// Initialize Redis client
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	// Initialize repositories
	walletRepo := pgStorage.NewWalletRepo(pool)
	assetRepo := pgStorage.NewAssetRepo(pool)
	userRepo := pgStorage.NewUserRepo(pool)
	requestRepo := pgStorage.NewTransferRequestRepo(pool)
	depositRepo := pgStorage.NewDepositRepo(pool)
	withdrawalRepo := pgStorage.NewWithdrawalRepo(pool)
	txRepo := pgStorage.NewTransactionRepo(pool)
	notificationRepo := pgStorage.NewNotificationRepo(pool)
	gasPolicyRepo := pgStorage.NewGasPolicyRepo(pool)
	sponsorTokenRepo := pgStorage.NewSponsorTokenRepo(pool)
	transactor := pgStorage.NewTransactor(pool)

	// Initialize Redis stores
	tokenCache := redisStorage.NewTokenCache(rdb)
	rateLimitStore := redisStorage.NewRateLimitStore(rdb)

	// Key vault
	vault, err := service.NewVaultService(cfg.Vault.MasterSecret)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize key vault")
	}

	// Sponsor service client + token cache (EVM path)
	sponsorClient, err := evm.NewSponsorClient(cfg.Sponsor.BaseURL, cfg.Sponsor.ClientID, cfg.Sponsor.ClientSecret, cfg.Sponsor.Timeout)
	if err != nil {
		log.Fatal().Err(err).Msg("Sponsor service credentials missing")
	}
	tokenSvc := service.NewTokenCacheService(sponsorTokenRepo, tokenCache, sponsorClient, service.SystemClock{}, log)

	// Chain adapters
	if cfg.EVM.RPCEndpoint == "" {
		log.Fatal().Err(apperror.ErrMissingChainEndpoint(cfg.EVM.ChainID)).Msg("evm.rpc_endpoint is required")
	}
	if cfg.Tron.Endpoint == "" {
		log.Fatal().Err(apperror.ErrMissingChainEndpoint("tron")).Msg("tron.endpoint is required")
	}
	evmAdapter := evm.New(sponsorClient, tokenSvc, cfg.EVM.RPCEndpoint, cfg.EVM.Timeout, log)
	tronAdapter := tron.New(cfg.Tron.Endpoint, cfg.Tron.FeeLimit, cfg.Tron.Timeout, log)
	registry := chain.NewRegistry(evmAdapter, tronAdapter)

	// Initialize business services
	provisionerSvc := service.NewProvisionerService(walletRepo, assetRepo, vault, log)
	gasPolicySvc := service.NewGasPolicyService(userRepo, gasPolicyRepo, log)
	gatewaySvc := service.NewGatewayService(walletRepo, assetRepo, withdrawalRepo, txRepo, notificationRepo, gasPolicySvc, vault, registry, transactor, log)
	settlementSvc := service.NewSettlementService(requestRepo, walletRepo, userRepo, assetRepo, depositRepo, txRepo, notificationRepo, gatewaySvc, transactor, treasuryUserID, log)

	// Initialize health checkers
	pgHealth := pgStorage.NewHealthCheck(pool)
	redisHealth := redisStorage.NewHealthCheck(rdb)

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		ProvisionerSvc: provisionerSvc,
		GatewaySvc:     gatewaySvc,
		SettlementSvc:  settlementSvc,
		Vault:          vault,
		WalletRepo:     walletRepo,
		RateLimitStore: rateLimitStore,
		HealthCheckers: []ports.HealthChecker{pgHealth, redisHealth},
		ServiceSecret:  cfg.Service.JWTSecret,
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
