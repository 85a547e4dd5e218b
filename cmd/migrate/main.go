package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"

	"scholarmarket/internal/infra"
	"scholarmarket/internal/sqlinline"
)

// Applies the schema DDL. Statements are idempotent, so this runs on every
// deploy before the API starts.
func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	dbpool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer dbpool.Close()

	runner := infra.NewSQLRunner(dbpool, logger)
	for _, ddl := range []string{
		sqlinline.DDLUsers,
		sqlinline.DDLScholarships,
		sqlinline.DDLOrders,
	} {
		if _, err := runner.Exec(ctx, ddl); err != nil {
			logger.Fatal().Err(err).Msg("apply schema failed")
		}
	}
	logger.Info().Msg("schema up to date")
}
