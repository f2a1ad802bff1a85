package live

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ctchan-dev/ctchan/internal/domain"
	"github.com/ctchan-dev/ctchan/internal/logger"
)

var liveConnections = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "live_connections",
		Help: "Open websocket connections per stream kind.",
	},
	[]string{"stream"},
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10
)

// Hub bridges bus subscriptions onto websocket connections.
type Hub struct {
	bus      *Bus
	upgrader websocket.Upgrader
}

func NewHub(bus *Bus) *Hub {
	return &Hub{
		bus: bus,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Cross-origin policy is enforced by the router's CORS layer;
			// the handshake accepts any origin the router let through.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// ServeThreads upgrades the connection and streams thread events until the
// peer goes away.
func (h *Hub) ServeThreads(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Component("live").Debug("websocket upgrade failed", "err", err)
		return
	}

	sub := h.bus.SubscribeThreads()
	done := readUntilClose(conn)
	liveConnections.WithLabelValues("threads").Inc()

	go func() {
		defer liveConnections.WithLabelValues("threads").Dec()
		defer sub.Unsubscribe()
		defer conn.Close()

		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()

		for {
			select {
			case <-done:
				return
			case ev := <-sub.C:
				if err := writeJSON(conn, ev); err != nil {
					return
				}
			case <-ticker.C:
				if err := ping(conn); err != nil {
					return
				}
			}
		}
	}()
}

// ServeReplies streams reply inserts for one thread.
func (h *Hub) ServeReplies(threadId domain.ThreadId, w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Component("live").Debug("websocket upgrade failed", "err", err)
		return
	}

	sub := h.bus.SubscribeReplies(threadId)
	done := readUntilClose(conn)
	liveConnections.WithLabelValues("replies").Inc()

	go func() {
		defer liveConnections.WithLabelValues("replies").Dec()
		defer sub.Unsubscribe()
		defer conn.Close()

		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()

		for {
			select {
			case <-done:
				return
			case ev := <-sub.C:
				if err := writeJSON(conn, ev); err != nil {
					return
				}
			case <-ticker.C:
				if err := ping(conn); err != nil {
					return
				}
			}
		}
	}()
}

// readUntilClose drains the connection's read side so close frames and pongs
// are processed, signalling when the peer disconnects.
func readUntilClose(conn *websocket.Conn) <-chan struct{} {
	done := make(chan struct{})
	conn.SetReadLimit(512)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
	return done
}

func writeJSON(conn *websocket.Conn, v any) error {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, payload)
}

func ping(conn *websocket.Conn) error {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteMessage(websocket.PingMessage, nil)
}
