package main

import (
	"github.com/tanomu-app/tanomu/internal/clock"
	"github.com/tanomu-app/tanomu/internal/config"
	"github.com/tanomu-app/tanomu/internal/logger"
	"github.com/tanomu-app/tanomu/internal/migration"
	"github.com/tanomu-app/tanomu/internal/server"
	"github.com/tanomu-app/tanomu/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		logger.Module,
		db.Module,
		clock.Module,
		migration.Module,

		// HTTP surface; pulls in the domain modules.
		server.Module,
	)
	app.Run()
}
