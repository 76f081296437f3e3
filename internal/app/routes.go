package app

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linguamate/core/internal/middleware"
	"github.com/linguamate/core/internal/modules/auth"
	"github.com/linguamate/core/internal/modules/chat"
	"github.com/linguamate/core/internal/modules/gateway"
	"github.com/linguamate/core/internal/modules/users"
	"github.com/linguamate/core/internal/pkg/assets"
	"github.com/linguamate/core/internal/pkg/response"
)

func (a *App) registerRoutes(store assets.Store) {
	r := a.router
	authMW := middleware.Auth(a.authSvc)

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	api := r.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	secureCookies := !a.cfg.IsDev()
	auth.NewHandler(a.authSvc, a.logger, secureCookies).RegisterRoutes(api, authMW)
	users.NewHandler(users.NewService(a.db), a.logger).RegisterRoutes(api, authMW)

	chatSvc := chat.NewService(a.db, store, a.hub, a.logger)
	chat.NewHandler(chatSvc, a.logger).RegisterRoutes(api, authMW)

	gateway.RegisterRoutes(r, api, a.hub)
}
