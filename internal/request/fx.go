package request

import (
	"github.com/tanomu-app/tanomu/internal/request/repository"
	"github.com/tanomu-app/tanomu/internal/request/service"
	"go.uber.org/fx"
)

var Module = fx.Module("request.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
