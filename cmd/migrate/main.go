package main

import (
	"context"
	"fmt"
	"os"

	"top250/pkg/config"
	"top250/pkg/logger"
	"top250/store"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cannot load config:", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "cannot init logger:", err)
		os.Exit(1)
	}

	err = migrate(context.Background(), cfg, log)
	_ = log.Sync()
	if err != nil {
		os.Exit(1)
	}
}

// migrate creates indexes, tables or schema for the configured driver.
// MongoDB also converts legacy text scores to numbers.
func migrate(ctx context.Context, cfg *config.Config, log *zap.SugaredLogger) error {
	st, err := store.Open(ctx, cfg, log)
	if err != nil {
		log.Errorw("cannot open store", "driver", cfg.DB.Driver, "error", err)
		return err
	}
	defer func() { _ = st.Close(ctx) }()

	if err := st.Migrate(ctx); err != nil {
		log.Errorw("cannot execute migration", "driver", st.Driver(), "error", err)
		return err
	}

	log.Infow("migration completed", "driver", st.Driver())
	return nil
}
