package chat

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/linguamate/core/internal/middleware"
	"github.com/linguamate/core/internal/pkg/response"
	"go.uber.org/zap"
)

// SendMessageDTO is the send-message request body.
type SendMessageDTO struct {
	Text  string `json:"text"`
	Image string `json:"image"`
}

type Handler struct {
	svc    *Service
	logger *zap.Logger
}

func NewHandler(svc *Service, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/chat")
	g.Use(authMW)

	g.GET("/contacts", h.contacts)
	g.GET("/partners", h.partners)
	g.GET("/messages/:id", h.conversation)
	g.POST("/send/:id", h.send)
}

func (h *Handler) contacts(c *gin.Context) {
	out, err := h.svc.Contacts(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		h.internal(c, "list contacts failed", err)
		return
	}
	response.OK(c, out)
}

func (h *Handler) partners(c *gin.Context) {
	out, err := h.svc.Partners(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		h.internal(c, "list chat partners failed", err)
		return
	}
	response.OK(c, out)
}

func (h *Handler) conversation(c *gin.Context) {
	out, err := h.svc.Conversation(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, errUserNotFound) {
			response.NotFoundMsg(c, err.Error())
			return
		}
		h.internal(c, "load conversation failed", err)
		return
	}
	response.OK(c, out)
}

func (h *Handler) send(c *gin.Context) {
	var dto SendMessageDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	msg, err := h.svc.Send(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"), dto.Text, dto.Image)
	if err != nil {
		switch {
		case errors.Is(err, errEmptyMessage):
			response.BadRequest(c, err.Error())
		case errors.Is(err, errUserNotFound):
			response.NotFoundMsg(c, err.Error())
		default:
			h.internal(c, "send message failed", err)
		}
		return
	}
	response.Created(c, gin.H{"success": true, "message": msg})
}

func (h *Handler) internal(c *gin.Context, msg string, err error) {
	if h.logger != nil {
		h.logger.Error(msg, zap.Error(err))
	}
	response.InternalError(c)
}
