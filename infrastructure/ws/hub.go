package ws

import (
	"log"
	"sync"
)

// Hub is the session registry: the single source of truth for which user
// ids currently have a live connection. It does not enforce single-login
// by itself; callers check IsOnline before binding.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*UserClient
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*UserClient),
	}
}

// Bind associates a user id with its connection, replacing any prior
// binding for that id.
func (h *Hub) Bind(userId string, client *UserClient) {
	h.mu.Lock()
	h.clients[userId] = client
	h.mu.Unlock()
	log.Printf("%s is connected (%d online)", userId, h.GetClientCount())
}

// Unbind removes the binding for userId, but only if it still points at
// the given client. A connection that lost a race never evicts its
// successor.
func (h *Hub) Unbind(userId string, client *UserClient) {
	h.mu.Lock()
	if bound, ok := h.clients[userId]; ok && bound == client {
		delete(h.clients, userId)
	}
	h.mu.Unlock()
	log.Printf("%s is disconnected (%d online)", userId, h.GetClientCount())
}

func (h *Hub) IsOnline(userId string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.clients[userId]
	return ok
}

// SendToClient queues a frame for the given user id and reports whether a
// session was bound for it.
func (h *Hub) SendToClient(userId string, message []byte) bool {
	h.mu.RLock()
	client, ok := h.clients[userId]
	h.mu.RUnlock()

	if !ok {
		return false
	}
	client.Send(message)
	return true
}

// Bindings returns a snapshot of all bound clients.
func (h *Hub) Bindings() []*UserClient {
	h.mu.RLock()
	defer h.mu.RUnlock()

	clients := make([]*UserClient, 0, len(h.clients))
	for _, client := range h.clients {
		clients = append(clients, client)
	}
	return clients
}

func (h *Hub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
