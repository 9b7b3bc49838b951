package actorlimit

import (
	"github.com/tanomu-app/tanomu/internal/clock"
	"github.com/tanomu-app/tanomu/internal/config"
	"github.com/tanomu-app/tanomu/internal/daywindow"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	Config config.Config
	DB     *gorm.DB
	Window *daywindow.Window
	Clock  clock.Clock
	Logger *zap.Logger
}

func NewLimiter(p Params) *Limiter {
	return New(p.DB, p.Window, p.Clock, p.Config.Quota.JoinCreateLimitPerActor, p.Logger)
}

var Module = fx.Module("actorlimit",
	fx.Provide(NewLimiter),
)
