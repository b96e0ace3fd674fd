package ws

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"task-service/internal/observability"
)

// ErrBinaryPayload is returned when a broadcast payload contains raw bytes.
var ErrBinaryPayload = fmt.Errorf("binary content in broadcast payload")

// Hub maintains the live websocket connections per group. Delivery never
// crosses group boundaries.
type Hub struct {
	rooms    map[int]map[Conn]bool
	connInfo map[int]map[Conn]ConnInfo
	mu       sync.RWMutex
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		rooms:    make(map[int]map[Conn]bool),
		connInfo: make(map[int]map[Conn]ConnInfo),
	}
}

// AddClient registers a connection to a group room.
func (h *Hub) AddClient(groupID int, conn Conn, info ConnInfo) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.rooms[groupID]; !ok {
		h.rooms[groupID] = make(map[Conn]bool)
	}
	h.rooms[groupID][conn] = true
	if _, ok := h.connInfo[groupID]; !ok {
		h.connInfo[groupID] = make(map[Conn]ConnInfo)
	}
	h.connInfo[groupID][conn] = info
}

// RemoveClient removes a connection; empty rooms are garbage collected.
func (h *Hub) RemoveClient(groupID int, conn Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if conns, ok := h.rooms[groupID]; ok {
		delete(conns, conn)
		if len(conns) == 0 {
			delete(h.rooms, groupID)
		}
	}
	if infos, ok := h.connInfo[groupID]; ok {
		delete(infos, conn)
		if len(infos) == 0 {
			delete(h.connInfo, groupID)
		}
	}
}

// validatePayload rejects payloads carrying raw bytes before any delivery
// is attempted. Only textual/structured values go over the wire.
func validatePayload(payload map[string]any) error {
	for key, value := range payload {
		switch value.(type) {
		case []byte:
			return fmt.Errorf("%w: key %q", ErrBinaryPayload, key)
		}
	}
	return nil
}

// Broadcast delivers the payload to every connection currently registered to
// the group. Validation is all-or-nothing; delivery is not. Sends fan out
// concurrently so one slow client cannot stall the rest, and a failed send
// closes and removes that connection.
func (h *Hub) Broadcast(groupID int, payload map[string]any) error {
	if err := validatePayload(payload); err != nil {
		return err
	}

	h.mu.RLock()
	conns := make([]Conn, 0, len(h.rooms[groupID]))
	for conn := range h.rooms[groupID] {
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	var wg sync.WaitGroup
	for _, conn := range conns {
		wg.Add(1)
		go func(conn Conn) {
			defer wg.Done()
			if err := conn.WriteJSON(payload); err != nil {
				log.Printf("websocket write error: %v", err)
				info, known := h.getConnInfo(groupID, conn)
				conn.Close()
				h.RemoveClient(groupID, conn)
				if known {
					h.publishWSError(groupID, info, err)
				}
			}
		}(conn)
	}
	wg.Wait()
	return nil
}

func (h *Hub) publishWSError(groupID int, info ConnInfo, err error) {
	payload := wsEventPayload(groupID, info, "ws_error", time.Since(info.ConnectedAt).Milliseconds(), err.Error())
	headers := observability.BuildHeaders(info.RequestID, info.TraceID)
	_ = observability.PublishEvent(context.Background(), "ws_events.groups", observability.EventEnvelope{
		EventType: "ws_events",
		EventName: "ws_error",
		Payload:   payload,
	}, headers)
	observability.IncWSEvent("group", "ws_error")
}

func (h *Hub) getConnInfo(groupID int, conn Conn) (ConnInfo, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if infos, ok := h.connInfo[groupID]; ok {
		info, exists := infos[conn]
		return info, exists
	}
	return ConnInfo{}, false
}
