package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/railzwaylabs/mrrboard/internal/config"
	mrrdomain "github.com/railzwaylabs/mrrboard/internal/mrr/domain"
	subscriptiondomain "github.com/railzwaylabs/mrrboard/internal/subscription/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Server struct {
	log     *zap.Logger
	db      *gorm.DB
	mrrSvc  mrrdomain.Service
	subRepo subscriptiondomain.Repository
}

type ServerParam struct {
	fx.In

	Log     *zap.Logger
	DB      *gorm.DB
	MRRSvc  mrrdomain.Service
	SubRepo subscriptiondomain.Repository
}

func NewServer(p ServerParam) *Server {
	return &Server{
		log:     p.Log.Named("server"),
		db:      p.DB,
		mrrSvc:  p.MRRSvc,
		subRepo: p.SubRepo,
	}
}

func NewEngine(cfg config.Config, log *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(RequestID())
	engine.Use(AccessLog(log))
	engine.Use(Metrics())
	return engine
}

func (s *Server) RegisterRoutes(engine *gin.Engine) {
	api := engine.Group("/api")
	api.GET("/mrr", s.GetMonthlySeries)
	api.GET("/subscriptions", s.ListSubscriptions)
	api.GET("/health", s.GetHealth)

	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func RunHTTP(lc fx.Lifecycle, cfg config.Config, engine *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: engine,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server starting", zap.String("addr", cfg.Server.Addr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("http server failed", zap.Error(err))
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

var Module = fx.Module("server",
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(func(s *Server, engine *gin.Engine) {
		s.RegisterRoutes(engine)
	}),
	fx.Invoke(RunHTTP),
)
