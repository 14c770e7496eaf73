package ws

import (
	"sync"

	"go-sales-territory/internal/access"
	"go-sales-territory/pkg/logger"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Subscription is an authenticated websocket connection
type Subscription struct {
	Conn      *websocket.Conn
	Principal access.Principal
}

// Notification is delivered to every subscriber whose sale scope covers
// RepresentativeID: admins and the representative who made the sale.
type Notification struct {
	RepresentativeID uuid.UUID
	Payload          []byte
}

type Hub struct {
	clients    map[*websocket.Conn]access.Principal
	Register   chan Subscription
	Unregister chan *websocket.Conn
	Broadcast  chan Notification
	mutex      sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*websocket.Conn]access.Principal),
		Register:   make(chan Subscription),
		Unregister: make(chan *websocket.Conn),
		Broadcast:  make(chan Notification),
	}
}

func (h *Hub) Run() {
	log := logger.Get()
	for {
		select {
		case sub := <-h.Register:
			h.mutex.Lock()
			h.clients[sub.Conn] = sub.Principal
			h.mutex.Unlock()
			log.Debug("ws client connected", zap.String("username", sub.Principal.Username))

		case conn := <-h.Unregister:
			h.mutex.Lock()
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				conn.Close()
			}
			h.mutex.Unlock()

		case n := <-h.Broadcast:
			h.mutex.Lock()
			for conn, principal := range h.clients {
				if !Receives(principal, n) {
					continue
				}
				if err := conn.WriteMessage(websocket.TextMessage, n.Payload); err != nil {
					conn.Close()
					delete(h.clients, conn)
				}
			}
			h.mutex.Unlock()
		}
	}
}

// NotifySale queues a notification without blocking the caller
func (h *Hub) NotifySale(representativeID uuid.UUID, payload []byte) {
	go func() {
		h.Broadcast <- Notification{RepresentativeID: representativeID, Payload: payload}
	}()
}

// Receives applies the sale visibility rule to push notifications.
func Receives(p access.Principal, n Notification) bool {
	return access.ResolveSaleScope(p).AllowsSale(n.RepresentativeID)
}
