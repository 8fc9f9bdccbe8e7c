package ws

import (
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// UserClient owns one websocket connection. UserId stays empty until a
// login succeeds on this connection; ConnId identifies the connection in
// logs before that.
type UserClient struct {
	ConnId string
	UserId string
	IP     string

	conn      *websocket.Conn
	send      chan []byte
	closeOnce sync.Once
}

func NewClient(conn *websocket.Conn, ip string) *UserClient {
	return &UserClient{
		ConnId: uuid.New().String(),
		IP:     ip,
		conn:   conn,
		send:   make(chan []byte, 256),
	}
}

// ReadPump delivers inbound frames to onMessage until the connection
// drops. Frames are handled strictly in arrival order on this goroutine.
func (c *UserClient) ReadPump(onMessage func(data []byte)) {
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		onMessage(data)
	}
}

// WritePump drains the send queue onto the connection. It exits when the
// queue is closed or a write fails, closing the connection either way.
func (c *UserClient) WritePump() {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}

// Send queues a frame without blocking. A full queue means the peer has
// stopped draining; the frame is dropped and logged.
func (c *UserClient) Send(message []byte) {
	select {
	case c.send <- message:
	default:
		log.Printf("send queue full, dropping frame for conn %s (user %q)", c.ConnId, c.UserId)
	}
}

// Close shuts the send queue down, which lets WritePump exit and close
// the underlying connection.
func (c *UserClient) Close() {
	c.closeOnce.Do(func() {
		close(c.send)
	})
}
