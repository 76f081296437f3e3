package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linguamate/core/internal/models"
	jwtpkg "github.com/linguamate/core/internal/pkg/jwt"
	"github.com/linguamate/core/internal/pkg/response"
)

const (
	// SessionCookieName is the cookie carrying the session token for both
	// HTTP requests and socket handshakes.
	SessionCookieName = "jwt"

	contextKeyUser = "auth_user"
)

var errUserGone = errors.New("user no longer exists")

// UserSource loads users for session resolution.
type UserSource interface {
	UserByID(ctx context.Context, id string) (*models.UserModel, error)
}

// Auth returns a middleware that enforces cookie session authentication and
// attaches the resolved user to the request context. Any failure collapses to
// a uniform 401.
func Auth(users UserSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookieName)
		if err != nil || token == "" {
			response.Unauthorized(c)
			return
		}
		user, err := ResolveUser(c.Request.Context(), users, token)
		if err != nil {
			response.Unauthorized(c)
			return
		}
		c.Set(contextKeyUser, user)
		c.Next()
	}
}

// ResolveUser verifies a session token and loads its owner. The HTTP gate and
// the socket gate both funnel through here so session validity semantics are
// identical across transports.
func ResolveUser(ctx context.Context, users UserSource, token string) (*models.UserModel, error) {
	claims, err := jwtpkg.Parse(token)
	if err != nil {
		return nil, err
	}
	user, err := users.UserByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errUserGone
	}
	return user, nil
}

// ResolveUserFromHeader authenticates from a raw header set, used during the
// socket handshake where no gin context exists. Handshake headers are not
// guaranteed canonical casing, so keys are normalized before the cookie lookup.
func ResolveUserFromHeader(ctx context.Context, users UserSource, header http.Header) (*models.UserModel, error) {
	normalized := make(http.Header, len(header))
	for k, vs := range header {
		for _, v := range vs {
			normalized.Add(k, v)
		}
	}
	req := http.Request{Header: normalized}
	cookie, err := req.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil, jwtpkg.ErrInvalid
	}
	return ResolveUser(ctx, users, cookie.Value)
}

// CurrentUser extracts the authenticated user from context.
func CurrentUser(c *gin.Context) *models.UserModel {
	v, _ := c.Get(contextKeyUser)
	user, _ := v.(*models.UserModel)
	return user
}

// CurrentUserID extracts the authenticated user ID from context.
func CurrentUserID(c *gin.Context) string {
	if user := CurrentUser(c); user != nil {
		return user.ID
	}
	return ""
}
