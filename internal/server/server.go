// Package server exposes the HTTP surface: auth, engagement actions,
// the public feed and trending tags.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	activitydomain "github.com/impactlink/engage/internal/activity/domain"
	"github.com/impactlink/engage/internal/config"
	sessiondomain "github.com/impactlink/engage/internal/session/domain"
	trendingdomain "github.com/impactlink/engage/internal/trending/domain"
	userdomain "github.com/impactlink/engage/internal/user/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(NewEngine),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(cfg config.Config, log *zap.Logger) *gin.Engine {
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(log))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
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
	engine      *gin.Engine
	cfg         config.Config
	log         *zap.Logger
	genID       *snowflake.Node
	userSvc     userdomain.Service
	sessionSvc  sessiondomain.Service
	activitySvc activitydomain.Service
	trendingSvc trendingdomain.Service
}

type ServerParams struct {
	fx.In

	Gin         *gin.Engine
	Cfg         config.Config
	Log         *zap.Logger
	GenID       *snowflake.Node
	UserSvc     userdomain.Service
	SessionSvc  sessiondomain.Service
	ActivitySvc activitydomain.Service
	TrendingSvc trendingdomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:      p.Gin,
		cfg:         p.Cfg,
		log:         p.Log.Named("server"),
		genID:       p.GenID,
		userSvc:     p.UserSvc,
		sessionSvc:  p.SessionSvc,
		activitySvc: p.ActivitySvc,
		trendingSvc: p.TrendingSvc,
	}

	svc.registerAuthRoutes()
	svc.registerEngagementRoutes()
	svc.registerPublicRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAuthRoutes() {
	auth := s.engine.Group("/v1/auth")

	auth.POST("/register", s.Register)
	auth.POST("/login", s.Login)
	auth.POST("/logout", s.AuthRequired(), s.Logout)
	auth.POST("/logout-all", s.AuthRequired(), s.LogoutAll)
	auth.GET("/sessions", s.AuthRequired(), s.ListSessions)
}

func (s *Server) registerEngagementRoutes() {
	v1 := s.engine.Group("/v1", s.AuthRequired())

	v1.POST("/posts", s.CreatePost)
	v1.POST("/profile", s.UpdateProfile)
	v1.POST("/skills", s.AddSkill)
	v1.POST("/verification", s.SetVerification)
	v1.POST("/services", s.CreateService)
}

func (s *Server) registerPublicRoutes() {
	v1 := s.engine.Group("/v1")

	v1.GET("/feed", s.Feed)
	v1.GET("/tags/trending", s.TrendingTags)
}
