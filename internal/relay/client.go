package relay

import (
	"context"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong from the peer
	pongWait = 60 * time.Second

	// Time between keepalive pings; must be less than pongWait
	pingPeriod = 54 * time.Second

	// Maximum inbound message size in bytes
	maxMessageSize = 64 * 1024

	// Buffer size for outgoing messages
	sendBufferSize = 256
)

// Client is one connected WebSocket peer: either the game-server
// producer or a dashboard consumer. Every client may send mutations and
// every client receives broadcasts; the relay does not distinguish.
type Client struct {
	hub         *Hub
	dispatcher  *Dispatcher
	conn        *websocket.Conn
	logger      *slog.Logger
	addr        string
	connectedAt time.Time
	send        chan []byte
}

// NewClient wraps an upgraded WebSocket connection
func NewClient(hub *Hub, dispatcher *Dispatcher, conn *websocket.Conn, logger *slog.Logger) *Client {
	addr := conn.RemoteAddr().String()
	return &Client{
		hub:         hub,
		dispatcher:  dispatcher,
		conn:        conn,
		logger:      logger.With(slog.String("remote_addr", addr)),
		addr:        addr,
		connectedAt: time.Now(),
		send:        make(chan []byte, sendBufferSize),
	}
}

// readPump reads producer messages off the connection, applies each one
// via the dispatcher, and broadcasts the resulting frame. Messages are
// processed strictly in arrival order per connection. Only transport
// errors end the loop; bad payloads are dropped and reading continues.
func (c *Client) readPump() {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseNormalClosure,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure) {
				c.logger.Warn("relay unexpected close", slog.Any("error", err))
			}
			return
		}

		if frame, ok := c.dispatcher.Apply(context.Background(), raw); ok {
			c.hub.Broadcast(frame)
		}
	}
}

// writePump delivers broadcast frames to the connection and keeps it
// alive with periodic pings. A closed send channel means the hub
// dropped the client.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.logger.Warn("relay write failed", slog.Any("error", err))
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
