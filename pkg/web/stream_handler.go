package web

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"mini-livechart/pkg/stream"
)

const writeWait = 5 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
}

// ViewStream upgrades to a WebSocket and forwards every frame the view
// publishes. The connection is closed after the destroy frame.
func ViewStream(views ViewRegistry, subs Subscriber, logger *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		v, ok := lookup(views, w, r)
		if !ok {
			return
		}
		sub, err := subs.Subscribe(v.Key())
		if err != nil {
			writeError(w, http.StatusServiceUnavailable, err)
			return
		}
		defer sub.Close()

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Warn("websocket upgrade failed", "view", v.Name(), "error", err)
			return
		}
		defer conn.Close()

		// 读循环只用来感知对端关闭
		gone := make(chan struct{})
		go func() {
			defer close(gone)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case f, ok := <-sub.C:
				if !ok {
					writeClose(conn, websocket.CloseGoingAway)
					return
				}
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteMessage(websocket.TextMessage, f.Payload); err != nil {
					logger.Debug("websocket write failed", "view", v.Name(), "error", err)
					return
				}
				if f.Mode == stream.ModeDestroy {
					writeClose(conn, websocket.CloseNormalClosure)
					return
				}
			case <-gone:
				return
			case <-r.Context().Done():
				return
			}
		}
	})
}

func writeClose(conn *websocket.Conn, code int) {
	msg := websocket.FormatCloseMessage(code, "")
	_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
}
