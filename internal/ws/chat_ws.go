package ws

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"

	"task-service/internal/auth"
	"task-service/internal/observability"
	"task-service/internal/repositories"
)

// tokenValidator resolves a bearer token to a caller identity.
type tokenValidator interface {
	ValidateToken(token string) (auth.Identity, error)
}

// ChatWebSocketHandler runs the streaming side of group chat. The handshake
// is accepted unconditionally; authentication happens right after against
// the token query parameter, and failures close the socket without an error
// frame. Events received here are broadcast only, never persisted — the
// REST posting path is the durable one.
type ChatWebSocketHandler struct {
	hub       *Hub
	groupRepo repositories.GroupRepository
	userRepo  repositories.UserRepository
	validator tokenValidator
}

// NewChatWebSocketHandler constructs a ChatWebSocketHandler.
func NewChatWebSocketHandler(hub *Hub, groupRepo repositories.GroupRepository, userRepo repositories.UserRepository, validator tokenValidator) *ChatWebSocketHandler {
	return &ChatWebSocketHandler{hub: hub, groupRepo: groupRepo, userRepo: userRepo, validator: validator}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// inboundEvent is the client-to-server event shape. An empty type means
// "text".
type inboundEvent struct {
	Type     string `json:"type"`
	Message  string `json:"message"`
	FileURL  string `json:"file_url"`
	FileName string `json:"file_name"`
	FileType string `json:"file_type"`
}

// Handle upgrades the connection, authenticates it and runs the event loop.
func (h *ChatWebSocketHandler) Handle(c *gin.Context) {
	groupID, err := strconv.Atoi(c.Param("group_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid group id"})
		return
	}

	ctx, span := otel.Tracer("task-service/ws").Start(c.Request.Context(), "ws.handshake")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	identity, err := h.validator.ValidateToken(c.Query("token"))
	if err != nil {
		conn.Close()
		return
	}

	// Same gate as the REST path. The socket is already open, so reject
	// with a policy close instead of an HTTP status.
	member, err := h.groupRepo.IsMember(ctx, groupID, identity.UserID)
	if err != nil || !member {
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "not a group member"))
		conn.Close()
		return
	}

	// Sender display name is resolved once at connect time.
	senderName := "Unknown"
	if user, err := h.userRepo.GetUser(ctx, identity.UserID); err == nil {
		senderName = user.DisplayName()
	}

	traceID := span.SpanContext().TraceID().String()
	requestID := observability.RequestIDFromRequest(c.Request)
	info := ConnInfo{
		ConnID:      newConnID(),
		UserID:      identity.UserID,
		DeviceID:    observability.DeviceIDFromRequest(c.Request),
		IP:          observability.IPFromRequest(c.Request),
		RequestID:   requestID,
		TraceID:     traceID,
		ConnectedAt: time.Now(),
	}
	client := newClient(conn)
	h.hub.AddClient(groupID, client, info)

	observability.IncWSActive("group")
	observability.IncWSEvent("group", "ws_connect")
	_ = observability.PublishEvent(ctx, "ws_events.groups", observability.EventEnvelope{
		EventType: "ws_events",
		EventName: "ws_connect",
		Payload:   wsEventPayload(groupID, info, "ws_connect", 0, ""),
	}, observability.BuildHeaders(requestID, traceID))

	go func() {
		var closeReason string
		defer func() {
			h.hub.RemoveClient(groupID, client)
			observability.DecWSActive("group")
			observability.IncWSEvent("group", "ws_disconnect")
			_ = observability.PublishEvent(ctx, "ws_events.groups", observability.EventEnvelope{
				EventType: "ws_events",
				EventName: "ws_disconnect",
				Payload:   wsEventPayload(groupID, info, "ws_disconnect", time.Since(info.ConnectedAt).Milliseconds(), closeReason),
			}, observability.BuildHeaders(requestID, traceID))
			conn.Close()
		}()

		for {
			var evt inboundEvent
			if err := conn.ReadJSON(&evt); err != nil {
				closeReason = err.Error()
				return
			}

			msgType := evt.Type
			if msgType == "" {
				msgType = "text"
			}

			payload := map[string]any{
				"sender_id": identity.UserID,
				"sender":    senderName,
				"time":      time.Now().UTC().Format(time.RFC3339Nano),
				"type":      msgType,
			}

			switch msgType {
			case "text":
				if evt.Message == "" {
					continue
				}
				payload["message"] = evt.Message
			case "file":
				payload["file_url"] = evt.FileURL
				payload["file_name"] = evt.FileName
				payload["file_type"] = evt.FileType
			default:
				// Unknown types are rejected back to the sender, not
				// forwarded as malformed base payloads.
				_ = client.WriteJSON(map[string]any{
					"type":  "error",
					"error": "unsupported event type: " + msgType,
				})
				continue
			}

			if err := h.hub.Broadcast(groupID, payload); err != nil {
				_ = client.WriteJSON(map[string]any{
					"type":  "error",
					"error": "broadcast rejected",
				})
			}
		}
	}()
}

func wsEventPayload(groupID int, info ConnInfo, event string, durationMS int64, reason string) map[string]any {
	return map[string]any{
		"ws": map[string]any{
			"kind":        "group",
			"resource_id": groupID,
			"event":       event,
			"conn_id":     info.ConnID,
			"duration_ms": durationMS,
			"reason":      reason,
		},
		"identity": map[string]any{
			"user_id":   info.UserID,
			"device_id": info.DeviceID,
			"ip":        info.IP,
		},
	}
}
