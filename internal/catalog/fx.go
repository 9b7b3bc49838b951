package catalog

import (
	"github.com/tanomu-app/tanomu/internal/catalog/repository"
	"github.com/tanomu-app/tanomu/internal/catalog/service"
	"go.uber.org/fx"
)

var Module = fx.Module("catalog.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
