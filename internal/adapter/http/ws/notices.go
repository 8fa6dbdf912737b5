package wshandler

import (
	"context"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/esconsultorescorp1998-eng/mi-bitacora/internal/domain/models"
	"github.com/esconsultorescorp1998-eng/mi-bitacora/pkg/logger"
	wrap "github.com/esconsultorescorp1998-eng/mi-bitacora/pkg/logger/wrapper"
	"github.com/esconsultorescorp1998-eng/mi-bitacora/pkg/metrics"
	"github.com/esconsultorescorp1998-eng/mi-bitacora/pkg/uuid"
	ws "github.com/esconsultorescorp1998-eng/mi-bitacora/pkg/wsHub"
)

// NoticeHub pushes advisory notices (pending closure, report ready) to every
// connected UI client.
type NoticeHub struct {
	connections *ws.ConnectionHub
	upgrader    websocket.Upgrader

	l logger.Logger
}

func NewNoticeHub(connHub *ws.ConnectionHub, l logger.Logger) *NoticeHub {
	return &NoticeHub{
		connections: connHub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The UI is served from anywhere on the local network.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		l: l,
	}
}

// Notify pushes a notice to every connected client. Fire-and-forget.
func (h *NoticeHub) Notify(notice models.Notice) {
	h.connections.Broadcast(notice)
}

// HandleWS godoc
// @Summary      Notices stream
// @Description  Upgrades to a WebSocket that receives advisory notices
// @Tags         Notices
// @Success      101
// @Security     BearerAuth
// @Router       /ws/notices [get]
func (h *NoticeHub) HandleWS(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "ws_notices_connect")

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to upgrade websocket", err)
		return
	}

	clientID, err := uuid.New()
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to generate client id", err)
		conn.Close()
		return
	}

	// The request context dies when this handler returns, so the hub
	// connection has to outlive it.
	wsConn := ws.NewConn(context.Background(), clientID, conn)
	if err := h.connections.Add(wsConn); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to register websocket connection", err)
		conn.Close()
		return
	}

	metrics.WebSocketConnectionsGauge.Set(float64(h.connections.Len()))
	h.l.Info(ctx, "notices client connected", "client_id", clientID.String())

	defer func() {
		_ = h.connections.Delete(clientID)
		metrics.WebSocketConnectionsGauge.Set(float64(h.connections.Len()))
		h.l.Info(ctx, "notices client disconnected", "client_id", clientID.String())
	}()

	// The notices stream is one-way. Reading keeps the connection alive and
	// detects the client going away.
	_ = wsConn.Listen(func(msg any) error { return nil })
}
