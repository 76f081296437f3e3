package users

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/linguamate/core/internal/middleware"
	"github.com/linguamate/core/internal/pkg/response"
	"go.uber.org/zap"
)

type Handler struct {
	svc    *Service
	logger *zap.Logger
}

func NewHandler(svc *Service, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/users")
	g.Use(authMW)

	g.GET("", h.recommended)
	g.GET("/friends", h.friends)
	g.GET("/friend-requests", h.incomingRequests)
	g.GET("/outgoing-friend-requests", h.outgoingRequests)
	g.POST("/friend-request/:id", h.sendRequest)
	g.PUT("/friend-request/:id/accept", h.acceptRequest)
}

func (h *Handler) recommended(c *gin.Context) {
	out, err := h.svc.Recommended(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		h.internal(c, "list recommended users failed", err)
		return
	}
	response.OK(c, out)
}

func (h *Handler) friends(c *gin.Context) {
	out, err := h.svc.Friends(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		h.internal(c, "list friends failed", err)
		return
	}
	response.OK(c, out)
}

func (h *Handler) sendRequest(c *gin.Context) {
	req, err := h.svc.SendRequest(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, errSelfRequest), errors.Is(err, errAlreadyFriends), errors.Is(err, errRequestExists):
			response.BadRequest(c, err.Error())
		case errors.Is(err, errRecipientNotFound):
			response.NotFoundMsg(c, err.Error())
		default:
			h.internal(c, "send friend request failed", err)
		}
		return
	}
	response.Created(c, gin.H{"success": true, "request": req})
}

func (h *Handler) acceptRequest(c *gin.Context) {
	err := h.svc.AcceptRequest(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, errRequestNotFound):
			response.NotFoundMsg(c, err.Error())
		case errors.Is(err, errNotRecipient):
			response.Forbidden(c, err.Error())
		default:
			h.internal(c, "accept friend request failed", err)
		}
		return
	}
	response.OK(c, gin.H{"success": true, "message": "friend request accepted"})
}

func (h *Handler) incomingRequests(c *gin.Context) {
	pending, accepted, err := h.svc.Incoming(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		h.internal(c, "list friend requests failed", err)
		return
	}
	response.OK(c, gin.H{
		"incomingRequests": pending,
		"acceptedRequests": accepted,
	})
}

func (h *Handler) outgoingRequests(c *gin.Context) {
	out, err := h.svc.Outgoing(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		h.internal(c, "list outgoing friend requests failed", err)
		return
	}
	response.OK(c, out)
}

func (h *Handler) internal(c *gin.Context, msg string, err error) {
	if h.logger != nil {
		h.logger.Error(msg, zap.Error(err))
	}
	response.InternalError(c)
}
