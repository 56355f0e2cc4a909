package chat

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"mavina/internal/middleware"
	jwtsvc "mavina/internal/pkg/jwt"
	"mavina/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true }, // Allow all origins (configure in prod)
}

type Handler struct {
	service *Service
	hub     *Hub
	jwt     *jwtsvc.Service
}

func NewHandler(service *Service, hub *Hub, jwt *jwtsvc.Service) *Handler {
	return &Handler{service: service, hub: hub, jwt: jwt}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	group := protected.Group("/chat")
	{
		group.GET("/appointments/:id/messages", h.ListMessages)
		group.POST("/appointments/:id/messages", h.SendMessage)
		// quick replies are a provider feature
		group.GET("/templates", middleware.ProviderOnly(), h.ListTemplates)
		group.POST("/templates", middleware.ProviderOnly(), h.CreateTemplate)
	}
}

// RegisterWSRoute mounts the websocket endpoint outside the Bearer
// middleware; browsers can't set headers on websocket requests, so the
// token travels as a query parameter instead.
func (h *Handler) RegisterWSRoute(v1 *gin.RouterGroup) {
	v1.GET("/chat/ws", h.HandleWebSocket)
}

func (h *Handler) HandleWebSocket(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Token is required")
		return
	}

	claims, err := h.jwt.ValidateToken(token)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or expired token")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	h.hub.ServeWS(conn, claims.UserID, nil)
}

func (h *Handler) ListMessages(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	msgs, err := h.service.ListMessages(c.Request.Context(), id, c.GetInt64("user_id"), c.GetString("role"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, msgs)
}

func (h *Handler) SendMessage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	msg, err := h.service.SendMessage(c.Request.Context(), id, c.GetInt64("user_id"), c.GetString("role"), req.Text)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, msg)
}

func (h *Handler) ListTemplates(c *gin.Context) {
	response.Success(c, http.StatusOK, h.service.ListTemplates(c.GetInt64("user_id")))
}

func (h *Handler) CreateTemplate(c *gin.Context) {
	var req CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	tpl, err := h.service.CreateTemplate(c.GetInt64("user_id"), req.Text)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, tpl)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid message")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Appointment not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You don't have access to this conversation")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid appointment ID")
		return 0, false
	}
	return id, true
}
