package websocket

import (
	"encoding/json"
	"log"
	"net"
	"net/http"
	"time"

	"lanchat/infrastructure/cache"
	"lanchat/infrastructure/ws"
	"lanchat/internal/entity"
	"lanchat/internal/usecase"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type frameFunc func(c *ws.UserClient, msg entity.Message)

// WebsocketHandler is the connection handler: it owns the upgrade, the
// per-connection receive loop, the frame dispatch table and the
// disconnect cleanup path.
type WebsocketHandler struct {
	hub       *ws.Hub
	userUc    usecase.UserUsecase
	groupUc   usecase.GroupUsecase
	chatLogUc usecase.ChatLogUsecase

	authAttempts  *cache.MemCache
	maxAuthPerMin int64

	routes map[entity.MessageKind]frameFunc
}

// NewWebsocketHandler wires the dispatch table. maxAuthPerMin <= 0
// disables login throttling.
func NewWebsocketHandler(hub *ws.Hub, userUc usecase.UserUsecase, groupUc usecase.GroupUsecase, chatLogUc usecase.ChatLogUsecase, maxAuthPerMin int) *WebsocketHandler {
	h := &WebsocketHandler{
		hub:           hub,
		userUc:        userUc,
		groupUc:       groupUc,
		chatLogUc:     chatLogUc,
		maxAuthPerMin: int64(maxAuthPerMin),
	}
	if maxAuthPerMin > 0 {
		h.authAttempts = cache.NewMemCache(time.Minute)
	}

	h.routes = map[entity.MessageKind]frameFunc{
		entity.KindLogin:              h.handleLogin,
		entity.KindRegister:           h.handleRegister,
		entity.KindFriendRequest:      h.handleFriendRequest,
		entity.KindFriendAccept:       h.handleFriendAccept,
		entity.KindFriendReject:       h.handleFriendReject,
		entity.KindDeleteFriend:       h.handleDeleteFriend,
		entity.KindTextMessage:        h.handleTextMessage,
		entity.KindGroupMessage:       h.handleGroupMessage,
		entity.KindImageMessage:       h.handleImageMessage,
		entity.KindGroupInvite:        h.handleGroupInvite,
		entity.KindGroupAccept:        h.handleGroupAccept,
		entity.KindGroupReject:        h.handleGroupReject,
		entity.KindCreateGroup:        h.handleCreateGroup,
		entity.KindGetGroups:          h.handleGetGroups,
		entity.KindGetGroupMembers:    h.handleGetGroupMembers,
		entity.KindGetPendingRequests: h.handleGetPendingRequests,
		entity.KindFriendList:         h.handleFriendList,
	}
	return h
}

// HandleWebSocket upgrades the request and drives the connection until it
// drops. Dispatch is strictly sequential per connection.
func (h *WebsocketHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Upgrade error: %v", err)
		return
	}

	client := ws.NewClient(conn, clientIP(r))
	log.Printf("New connection %s from %s", client.ConnId, client.IP)

	go client.WritePump()
	client.ReadPump(func(data []byte) {
		h.handleFrame(client, data)
	})
	h.handleDisconnect(client)
}

func (h *WebsocketHandler) handleFrame(client *ws.UserClient, data []byte) {
	var msg entity.Message
	if err := json.Unmarshal(data, &msg); err != nil {
		log.Printf("conn %s: bad frame: %v", client.ConnId, err)
		return
	}

	fn, ok := h.routes[msg.Kind]
	if !ok {
		log.Printf("conn %s: unknown message kind %q", client.ConnId, msg.Kind)
		return
	}
	fn(client, msg)
}

// handleDisconnect is the only logout path: unbind the session, clear the
// online flag and fan the presence change out to online friends.
func (h *WebsocketHandler) handleDisconnect(client *ws.UserClient) {
	if client.UserId != "" {
		h.hub.Unbind(client.UserId, client)
		h.userUc.SetOnline(client.UserId, false)
		h.notifyFriendsStatusChange(client.UserId)
	}
	client.Close()
	log.Printf("Connection %s closed (user %q)", client.ConnId, client.UserId)
}

// send queues a frame on the initiating connection.
func (h *WebsocketHandler) send(client *ws.UserClient, msg entity.Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("marshal frame: %v", err)
		return
	}
	client.Send(data)
}

// sendTo queues a frame for whichever connection userId is bound to and
// reports whether one was found.
func (h *WebsocketHandler) sendTo(userId string, msg entity.Message) bool {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("marshal frame: %v", err)
		return false
	}
	return h.hub.SendToClient(userId, data)
}

func (h *WebsocketHandler) allowAuthAttempt(ip string) bool {
	if h.authAttempts == nil {
		return true
	}
	return h.authAttempts.Increment("auth:"+ip, time.Minute) <= h.maxAuthPerMin
}

func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
