package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/linguamate/core/internal/config"
	"github.com/linguamate/core/internal/database"
	"github.com/linguamate/core/internal/middleware"
	"github.com/linguamate/core/internal/models"
	"github.com/linguamate/core/internal/modules/auth"
	"github.com/linguamate/core/internal/modules/gateway"
	"github.com/linguamate/core/internal/pkg/assets"
	"github.com/linguamate/core/internal/pkg/chatdir"
	jwtpkg "github.com/linguamate/core/internal/pkg/jwt"
	"github.com/linguamate/core/internal/pkg/redisx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App holds all application dependencies.
type App struct {
	cfg     *config.AppConfig
	router  *gin.Engine
	db      *gorm.DB
	hub     *gateway.Hub
	authSvc *auth.Service
	logger  *zap.Logger
	rc      *redisx.Client
	cancel  context.CancelFunc
}

// New initializes the application: config → DB → Redis → gateway → routes.
func New(logger *zap.Logger, cfg *config.AppConfig) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	jwtpkg.SetSecret(cfg.JWTSecret)

	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	var rc *redisx.Client
	if cfg.RedisURL != "" {
		rc, err = redisx.Connect(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("redis: %w", err)
		}
	}

	if cfg.IsDev() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))
	router.Use(cors.New(corsConfig(cfg)))

	var store assets.Store = assets.Disabled{}
	if cfg.Assets.Enable {
		s3Store, err := assets.NewS3Store(cfg.Assets)
		if err != nil {
			return nil, fmt.Errorf("assets: %w", err)
		}
		store = s3Store
	}

	directory := chatdir.New(cfg.ChatDir)
	authSvc := auth.NewService(db, store, directory, logger)

	// Presence lives in memory unless Redis is configured; the store is
	// injected so the broadcaster contract is unchanged either way.
	var presence gateway.PresenceStore = gateway.NewMemoryPresence()
	if rc != nil {
		presence = gateway.NewRedisPresence(rc, logger)
	}

	hub := gateway.NewHub(presence, logger, func(ctx context.Context, header http.Header) (*models.UserModel, error) {
		return middleware.ResolveUserFromHeader(ctx, authSvc, header)
	})
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	app := &App{
		cfg:     cfg,
		router:  router,
		db:      db,
		hub:     hub,
		authSvc: authSvc,
		logger:  logger,
		rc:      rc,
		cancel:  cancel,
	}
	app.registerRoutes(store)

	return app, nil
}

func corsConfig(cfg *config.AppConfig) cors.Config {
	c := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}
	if cfg.ClientURL != "" {
		c.AllowOrigins = []string{cfg.ClientURL}
	} else {
		c.AllowOriginFunc = func(string) bool { return true }
	}
	return c
}

// Addr returns the listen address.
func (a *App) Addr() string { return fmt.Sprintf(":%d", a.cfg.Port) }

// Router returns the HTTP handler.
func (a *App) Router() http.Handler { return a.router }

// Shutdown cleans up background goroutines and connections.
func (a *App) Shutdown() {
	a.cancel()
	if a.rc != nil {
		_ = a.rc.Close()
	}
}
