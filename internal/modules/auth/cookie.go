package auth

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/linguamate/core/internal/middleware"
	jwtpkg "github.com/linguamate/core/internal/pkg/jwt"
)

// setSessionCookie attaches the session token as an HTTP-only, same-site
// strict cookie. The secure flag is off only in local development.
func setSessionCookie(c *gin.Context, token string, secure bool) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.SessionCookieName, token, int(jwtpkg.SessionTTL/time.Second), "/", "", secure, true)
}

// clearSessionCookie expires the session cookie. The token itself stays valid
// until its natural expiry; there is no server-side revocation.
func clearSessionCookie(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", secure, true)
}
