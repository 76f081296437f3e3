package auth

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/linguamate/core/internal/middleware"
	jwtpkg "github.com/linguamate/core/internal/pkg/jwt"
	"github.com/linguamate/core/internal/pkg/response"
	"go.uber.org/zap"
)

type Handler struct {
	svc    *Service
	logger *zap.Logger
	secure bool
}

// NewHandler wires the auth routes. secure controls the cookie secure flag
// and is false only in development.
func NewHandler(svc *Service, logger *zap.Logger, secure bool) *Handler {
	return &Handler{svc: svc, logger: logger, secure: secure}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	a := rg.Group("/auth")

	a.POST("/signup", h.signup)
	a.POST("/login", h.login)
	a.POST("/logout", h.logout)
	a.POST("/onboarding", authMW, h.onboard)
	a.PATCH("/update-profile", authMW, h.updateProfile)
	a.GET("/me", authMW, h.me)
}

func (h *Handler) signup(c *gin.Context) {
	var dto SignupDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if msg := dto.Validate(); msg != "" {
		response.BadRequest(c, msg)
		return
	}

	u, err := h.svc.Signup(c.Request.Context(), &dto)
	if err != nil {
		if errors.Is(err, errEmailTaken) {
			response.BadRequest(c, "email already exists, please use a different one")
			return
		}
		h.internal(c, "signup failed", err)
		return
	}

	token, err := jwtpkg.Sign(u.ID, jwtpkg.SessionTTL)
	if err != nil {
		h.internal(c, "token issue failed", err)
		return
	}
	setSessionCookie(c, token, h.secure)
	response.Created(c, gin.H{"success": true, "user": u})
}

func (h *Handler) login(c *gin.Context) {
	var dto LoginDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if msg := dto.Validate(); msg != "" {
		response.BadRequest(c, msg)
		return
	}

	u, err := h.svc.Login(c.Request.Context(), dto.Email, dto.Password)
	if err != nil {
		if errors.Is(err, errInvalidCredentials) {
			// Uniform message for unknown email and wrong password.
			response.Unauthorized(c)
			return
		}
		h.internal(c, "login failed", err)
		return
	}

	token, err := jwtpkg.Sign(u.ID, jwtpkg.SessionTTL)
	if err != nil {
		h.internal(c, "token issue failed", err)
		return
	}
	setSessionCookie(c, token, h.secure)
	response.OK(c, gin.H{"success": true, "user": u})
}

// logout clears the cookie and succeeds whether or not a session was present.
func (h *Handler) logout(c *gin.Context) {
	clearSessionCookie(c, h.secure)
	response.OK(c, gin.H{"success": true, "message": "logged out"})
}

func (h *Handler) onboard(c *gin.Context) {
	var dto OnboardDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if missing := dto.MissingFields(); len(missing) > 0 {
		response.BadRequestFields(c, "all fields are required", missing)
		return
	}
	if _, err := parseDOB(dto.DOB); err != nil {
		response.BadRequest(c, "invalid dob, expected YYYY-MM-DD")
		return
	}

	u, err := h.svc.Onboard(c.Request.Context(), middleware.CurrentUserID(c), &dto)
	if err != nil {
		if errors.Is(err, errUserNotFound) {
			response.NotFoundMsg(c, "user not found")
			return
		}
		h.internal(c, "onboarding failed", err)
		return
	}
	response.OK(c, gin.H{"success": true, "user": u})
}

func (h *Handler) updateProfile(c *gin.Context) {
	var dto UpdateProfileDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if dto.TouchesImmutable() {
		response.Forbidden(c, "name, email and dob cannot be changed from this route")
		return
	}

	u, err := h.svc.UpdateProfile(c.Request.Context(), middleware.CurrentUserID(c), &dto)
	if err != nil {
		if errors.Is(err, errUserNotFound) {
			response.NotFoundMsg(c, "user not found")
			return
		}
		h.internal(c, "profile update failed", err)
		return
	}
	response.OK(c, gin.H{"success": true, "user": u})
}

func (h *Handler) me(c *gin.Context) {
	response.OK(c, gin.H{"success": true, "user": middleware.CurrentUser(c)})
}

func (h *Handler) internal(c *gin.Context, msg string, err error) {
	if h.logger != nil {
		h.logger.Error(msg, zap.Error(err))
	}
	response.InternalError(c)
}
