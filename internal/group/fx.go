package group

import (
	"github.com/tanomu-app/tanomu/internal/group/repository"
	"github.com/tanomu-app/tanomu/internal/group/service"
	"go.uber.org/fx"
)

var Module = fx.Module("group.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
