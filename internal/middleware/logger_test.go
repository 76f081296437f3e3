package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/linguamate/core/internal/middleware"
	jwtpkg "github.com/linguamate/core/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedRouter(users middleware.UserSource) (*gin.Engine, *observer.ObservedLogs) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.InfoLevel)
	r := gin.New()
	r.Use(middleware.Logger(zap.New(core)))
	r.GET("/open", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/gated", middleware.Auth(users), func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/socket.io/", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r, logs
}

func TestLogger_RequestFields(t *testing.T) {
	r, logs := newObservedRouter(fakeUsers{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/open", nil))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "request", entry.Message)

	fields := entry.ContextMap()
	assert.Equal(t, http.MethodGet, fields["method"])
	assert.Equal(t, "/open", fields["path"])
	assert.EqualValues(t, http.StatusOK, fields["status"])
	assert.NotContains(t, fields, "user")
}

func TestLogger_TagsAuthenticatedUser(t *testing.T) {
	users, u := knownUser()
	r, logs := newObservedRouter(users)

	token, err := jwtpkg.Sign(u.ID, time.Hour)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/gated", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: token})
	r.ServeHTTP(w, req)

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, u.ID, logs.All()[0].ContextMap()["user"])
}

func TestLogger_SkipsSocketTransport(t *testing.T) {
	r, logs := newObservedRouter(fakeUsers{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/socket.io/?EIO=4&transport=polling", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, logs.Len())
}
