package ws

import (
	"context"
	"errors"
	"sync"

	"github.com/esconsultorescorp1998-eng/mi-bitacora/pkg/logger"
	wrap "github.com/esconsultorescorp1998-eng/mi-bitacora/pkg/logger/wrapper"
	"github.com/esconsultorescorp1998-eng/mi-bitacora/pkg/uuid"
)

var (
	ErrEmptyConn      = errors.New("connection is empty")
	ErrConnIsNotFound = errors.New("connection not found")
)

// ConnectionHub keeps track of every active WebSocket connection.
type ConnectionHub struct {
	clients map[uuid.UUID]*Conn
	l       logger.Logger
	mu      sync.Mutex
	wg      sync.WaitGroup
}

func NewConnHub(l logger.Logger) *ConnectionHub {
	return &ConnectionHub{
		clients: make(map[uuid.UUID]*Conn),
		l:       l,
	}
}

// Add registers a new connection. An existing connection for the same client
// is closed and replaced.
func (h *ConnectionHub) Add(newConn *Conn) error {
	if newConn == nil {
		return ErrEmptyConn
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	ctx := wrap.WithAction(context.Background(), "add_ws_connection")

	if existing, ok := h.clients[newConn.clientID]; ok {
		h.l.Warn(ctx,
			"replacing existing connection",
			"client_id", existing.clientID,
		)
		if err := existing.Close(); err != nil {
			h.l.Warn(ctx,
				"failed to close existing conn",
				"client_id", existing.clientID,
				"err", err.Error(),
			)
		}
	}

	h.clients[newConn.clientID] = newConn
	h.wg.Add(1)

	return nil
}

// Delete removes and closes a connection by client ID.
func (h *ConnectionHub) Delete(clientID uuid.UUID) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	ctx := wrap.WithAction(context.Background(), "ws_connection_delete")

	conn, ok := h.clients[clientID]
	if !ok {
		h.l.Warn(ctx,
			"delete called for unknown client",
			"client_id", clientID,
		)
		return ErrConnIsNotFound
	}

	if err := conn.Close(); err != nil {
		h.l.Warn(ctx,
			"failed to close conn",
			"client_id", conn.clientID,
			"err", err.Error(),
		)
	}

	delete(h.clients, clientID)
	h.wg.Done()

	return nil
}

// Broadcast delivers a message to every connected client. Send failures are
// logged per client and do not stop the fan-out.
func (h *ConnectionHub) Broadcast(msg any) {
	h.mu.Lock()
	clients := make([]*Conn, 0, len(h.clients))
	for _, conn := range h.clients {
		clients = append(clients, conn)
	}
	h.mu.Unlock()

	ctx := wrap.WithAction(context.Background(), "ws_broadcast")
	for _, conn := range clients {
		if err := conn.Send(msg); err != nil {
			h.l.Warn(ctx, "broadcast send failed", "client_id", conn.clientID, "err", err.Error())
		}
	}
}

// Len returns the number of connected clients.
func (h *ConnectionHub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close closes every websocket connection.
func (h *ConnectionHub) Close() {
	ctx := wrap.WithAction(context.Background(), "hub_close")

	// copy clients under lock
	h.mu.Lock()
	clients := make([]*Conn, 0, len(h.clients))
	for _, conn := range h.clients {
		clients = append(clients, conn)
	}
	h.mu.Unlock()
	// close outside the lock
	for _, conn := range clients {
		_ = h.Delete(conn.clientID)
	}

	h.wg.Wait()

	h.l.Info(ctx, "all websocket connections closed gracefully")
}
