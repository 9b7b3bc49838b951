package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tanomu-app/tanomu/internal/actorlimit"
	"github.com/tanomu-app/tanomu/internal/catalog"
	catalogdomain "github.com/tanomu-app/tanomu/internal/catalog/domain"
	"github.com/tanomu-app/tanomu/internal/clock"
	"github.com/tanomu-app/tanomu/internal/config"
	"github.com/tanomu-app/tanomu/internal/daywindow"
	"github.com/tanomu-app/tanomu/internal/group"
	groupdomain "github.com/tanomu-app/tanomu/internal/group/domain"
	"github.com/tanomu-app/tanomu/internal/logger"
	"github.com/tanomu-app/tanomu/internal/metrics"
	"github.com/tanomu-app/tanomu/internal/push"
	pushdomain "github.com/tanomu-app/tanomu/internal/push/domain"
	"github.com/tanomu-app/tanomu/internal/quota"
	quotadomain "github.com/tanomu-app/tanomu/internal/quota/domain"
	"github.com/tanomu-app/tanomu/internal/quota/gate"
	"github.com/tanomu-app/tanomu/internal/quota/httpapi"
	"github.com/tanomu-app/tanomu/internal/request"
	requestdomain "github.com/tanomu-app/tanomu/internal/request/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	metrics.Module,
	daywindow.Module,
	quota.Module,
	actorlimit.Module,
	group.Module,
	catalog.Module,
	request.Module,
	push.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(cfg config.Config, log *zap.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.GinMiddleware(log))
	r.Use(securityHeaders())
	r.Use(corsMiddleware(cfg.AppOrigin))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, apiError{Code: "NOT_FOUND", Message: "not found"})
	})

	return r
}

func registerGin(cfg config.Config, log *zap.Logger) *gin.Engine {
	return NewEngine(cfg, log)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server starting", zap.String("addr", cfg.HTTPAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine     *gin.Engine
	cfg        config.Config
	log        *zap.Logger
	clock      clock.Clock
	window     *daywindow.Window
	gate       quotadomain.Gate
	registry   *gate.Registry
	actorLimit *actorlimit.Limiter
	metrics    *metrics.Metrics
	groupSvc   groupdomain.Service
	catalogSvc catalogdomain.Service
	requestSvc requestdomain.Service
	pushSvc    pushdomain.Service
}

type ServerParams struct {
	fx.In

	Gin        *gin.Engine
	Cfg        config.Config
	Log        *zap.Logger
	Clock      clock.Clock
	Window     *daywindow.Window
	Gate       quotadomain.Gate
	Registry   *gate.Registry
	ActorLimit *actorlimit.Limiter
	Metrics    *metrics.Metrics `optional:"true"`
	GroupSvc   groupdomain.Service
	CatalogSvc catalogdomain.Service
	RequestSvc requestdomain.Service
	PushSvc    pushdomain.Service
}

func NewServer(p ServerParams) *Server {
	s := &Server{
		engine:     p.Gin,
		cfg:        p.Cfg,
		log:        p.Log.Named("server"),
		clock:      p.Clock,
		window:     p.Window,
		gate:       p.Gate,
		registry:   p.Registry,
		actorLimit: p.ActorLimit,
		metrics:    p.Metrics,
		groupSvc:   p.GroupSvc,
		catalogSvc: p.CatalogSvc,
		requestSvc: p.RequestSvc,
		pushSvc:    p.PushSvc,
	}

	s.registerAPIRoutes()
	httpapi.RegisterRoutes(s.engine, s.registry)

	return s
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	s.engine.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"service": s.cfg.AppName, "status": "ok"})
	})

	api := s.engine.Group("/api")
	api.Use(noStore())

	api.GET("/catalog", s.GetCatalog)
	api.GET("/quota/status", s.GetQuotaStatus)

	api.POST("/groups/create", s.ActorLimitGuard(), s.QuotaGuard(), s.CreateGroup)
	api.POST("/groups/join", s.ActorLimitGuard(), s.QuotaGuard(), s.JoinGroup)
	api.GET("/groups/:groupId/layout", s.GetGroupLayout)
	api.POST("/groups/:groupId/custom-tabs", s.CreateCustomTab)
	api.POST("/groups/:groupId/custom-items", s.CreateCustomItem)
	api.POST("/groups/:groupId/custom-tabs/:tabId/delete", s.DeleteCustomTab)
	api.POST("/groups/:groupId/custom-items/:itemId/delete", s.DeleteCustomItem)

	api.POST("/push/subscribe", s.SubscribePush)

	api.POST("/requests", s.QuotaGuard(), s.CreateRequest)
	api.GET("/requests/inbox", s.GetInbox)
	api.POST("/requests/:requestId/ack", s.QuotaGuard(), s.AckRequest)
	api.POST("/requests/:requestId/complete", s.QuotaGuard(), s.CompleteRequest)
}
