package daywindow

import (
	"github.com/tanomu-app/tanomu/internal/config"
	"go.uber.org/fx"
)

func NewFromConfig(cfg config.Config) (*Window, error) {
	return Load(cfg.Quota.Timezone)
}

var Module = fx.Module("daywindow",
	fx.Provide(NewFromConfig),
)
