package main

import (
	"context"

	"github.com/tanomu-app/tanomu/internal/clock"
	"github.com/tanomu-app/tanomu/internal/config"
	"github.com/tanomu-app/tanomu/internal/daywindow"
	"github.com/tanomu-app/tanomu/internal/logger"
	"github.com/tanomu-app/tanomu/internal/metrics"
	"github.com/tanomu-app/tanomu/internal/push/repository"
	"github.com/tanomu-app/tanomu/internal/quota"
	"github.com/tanomu-app/tanomu/internal/scheduler"
	"github.com/tanomu-app/tanomu/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		db.Module,
		clock.Module,
		daywindow.Module,
		metrics.Module,

		// Dependencies of the jobs
		quota.Module,
		fx.Provide(repository.Provide),

		scheduler.Module,

		// No server module; this binary only runs background jobs.
		fx.Invoke(StartScheduler),
	)
	app.Run()
}

func StartScheduler(lc fx.Lifecycle, s *scheduler.Scheduler) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go s.RunForever(context.Background())
			return nil
		},
	})
}
