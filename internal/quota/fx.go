package quota

import (
	"errors"
	"strings"

	"github.com/tanomu-app/tanomu/internal/config"
	"github.com/tanomu-app/tanomu/internal/quota/domain"
	"github.com/tanomu-app/tanomu/internal/quota/gate"
	"github.com/tanomu-app/tanomu/internal/quota/httpapi"
	"github.com/tanomu-app/tanomu/internal/quota/store"
	redis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NewRegistry wires the gate registry with the configured durable backend.
func NewRegistry(cfg config.Config, db *gorm.DB, log *zap.Logger) (*gate.Registry, error) {
	switch cfg.Quota.Store {
	case "", "gorm":
		return gate.NewRegistry(func(name string) domain.Store {
			return store.NewGormStore(db, name)
		}, log), nil
	case "redis":
		addr := strings.TrimSpace(cfg.Quota.RedisAddr)
		if addr == "" {
			return nil, errors.New("quota redis store requires REDIS_ADDR")
		}
		client := redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: cfg.Quota.RedisPassword,
			DB:       cfg.Quota.RedisDB,
		})
		return gate.NewRegistry(func(name string) domain.Store {
			return store.NewRedisStore(client, name)
		}, log), nil
	default:
		return nil, errors.New("unsupported quota store " + cfg.Quota.Store)
	}
}

// NewGate resolves the deployment-wide gate. When QUOTA_GATE_URL is set the
// handlers talk to a remote gate over HTTP; otherwise they call the local
// serialized instance directly.
func NewGate(cfg config.Config, registry *gate.Registry) domain.Gate {
	if cfg.Quota.GateURL != "" {
		return httpapi.NewClient(cfg.Quota.GateURL, gate.GlobalName)
	}
	return registry.Get(gate.GlobalName)
}

var Module = fx.Module("quota",
	fx.Provide(NewRegistry),
	fx.Provide(NewGate),
)
