// Command migrate applies pending schema migrations and exits. The API runs
// the same migrations on start; this is for deploy pipelines that migrate
// ahead of rollout.
package main

import (
	"context"
	"os"

	"github.com/ghuser/lostfound/migrations/lostfound"
	"github.com/ghuser/lostfound/pkg/config"
	"github.com/ghuser/lostfound/pkg/logger"
	"github.com/ghuser/lostfound/pkg/migrator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log := logger.New(cfg)
	if err := migrator.RunMigrations(context.Background(), cfg.DatabaseURL, lostfound.FS, log); err != nil {
		log.Error("migration failed", "error", err)
		os.Exit(1)
	}
}
