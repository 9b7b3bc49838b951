package push

import (
	pushdomain "github.com/tanomu-app/tanomu/internal/push/domain"
	"github.com/tanomu-app/tanomu/internal/push/repository"
	"github.com/tanomu-app/tanomu/internal/push/service"
	requestdomain "github.com/tanomu-app/tanomu/internal/request/domain"
	"go.uber.org/fx"
)

func asNotifier(s pushdomain.Service) requestdomain.Notifier {
	return s
}

var Module = fx.Module("push.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewWebpushSender),
	fx.Provide(service.New),
	fx.Provide(asNotifier),
)
