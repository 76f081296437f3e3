package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/linguamate/core/internal/middleware"
	"github.com/linguamate/core/internal/models"
	jwtpkg "github.com/linguamate/core/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUsers map[string]*models.UserModel

func (f fakeUsers) UserByID(_ context.Context, id string) (*models.UserModel, error) {
	return f[id], nil
}

func newGatedRouter(users middleware.UserSource) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", middleware.Auth(users), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": middleware.CurrentUserID(c)})
	})
	return r
}

func knownUser() (fakeUsers, *models.UserModel) {
	u := &models.UserModel{Base: models.Base{ID: "user-1"}, Email: "a@x.com", FullName: "A"}
	return fakeUsers{u.ID: u}, u
}

func TestAuth_NoCookie(t *testing.T) {
	users, _ := knownUser()
	r := newGatedRouter(users)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_InvalidToken(t *testing.T) {
	users, _ := knownUser()
	r := newGatedRouter(users)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: "garbage"})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_ExpiredToken(t *testing.T) {
	users, u := knownUser()
	r := newGatedRouter(users)

	token, err := jwtpkg.Sign(u.ID, -time.Minute)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: token})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_UserGone(t *testing.T) {
	r := newGatedRouter(fakeUsers{})

	token, err := jwtpkg.Sign("deleted-user", time.Hour)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: token})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_ValidSession(t *testing.T) {
	users, u := knownUser()
	r := newGatedRouter(users)

	token, err := jwtpkg.Sign(u.ID, time.Hour)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: token})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), u.ID)
}

func TestResolveUserFromHeader_SharesHTTPSemantics(t *testing.T) {
	users, u := knownUser()

	token, err := jwtpkg.Sign(u.ID, time.Hour)
	require.NoError(t, err)

	header := http.Header{}
	header.Add("Cookie", (&http.Cookie{Name: middleware.SessionCookieName, Value: token}).String())

	got, err := middleware.ResolveUserFromHeader(context.Background(), users, header)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	// Missing cookie rejects the handshake the same way the HTTP gate would.
	_, err = middleware.ResolveUserFromHeader(context.Background(), users, http.Header{})
	assert.Error(t, err)

	// Expired token rejects too.
	expired, err := jwtpkg.Sign(u.ID, -time.Minute)
	require.NoError(t, err)
	header = http.Header{}
	header.Add("Cookie", (&http.Cookie{Name: middleware.SessionCookieName, Value: expired}).String())
	_, err = middleware.ResolveUserFromHeader(context.Background(), users, header)
	assert.Error(t, err)
}
