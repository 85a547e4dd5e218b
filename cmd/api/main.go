package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"scholarmarket/internal/adapter/repo"
	"scholarmarket/internal/http/handlers"
	"scholarmarket/internal/http/httpapi"
	"scholarmarket/internal/infra"
	"scholarmarket/internal/infra/geoip"
	"scholarmarket/internal/infra/identity"
	"scholarmarket/internal/payment"
	"scholarmarket/internal/providers/stripe"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()
	dbpool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer dbpool.Close()

	runner := infra.NewSQLRunner(dbpool, logger)
	scholarships := repo.NewScholarshipRepository(runner)
	orders := repo.NewOrderRepository(runner)
	users := repo.NewUserRepository(runner)

	checkout, err := stripe.NewClient(stripe.Options{
		SecretKey: cfg.StripeSecretKey,
		BaseURL:   cfg.StripeBaseURL,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build checkout client")
	}

	resolver, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip disabled")
	}

	app := &handlers.App{
		Logger:       logger,
		Cfg:          cfg,
		Scholarships: scholarships,
		Orders:       orders,
		Users:        users,
		Reconciler:   payment.NewReconciler(scholarships, orders, checkout, logger),
		Checkout:     checkout,
		GeoIP:        resolver,
	}

	verifier := identity.NewVerifier(cfg.FirebaseProjectID)
	router := httpapi.NewRouter(app, verifier)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
