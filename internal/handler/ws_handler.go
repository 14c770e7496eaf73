package handler

import (
	"go-sales-territory/internal/access"
	"go-sales-territory/internal/middleware"
	"go-sales-territory/internal/ws"

	"github.com/gofiber/contrib/websocket"
)

// SaleFeed subscribes an authenticated connection to sale notifications
func SaleFeed(hub *ws.Hub) func(*websocket.Conn) {
	return func(c *websocket.Conn) {
		p, ok := c.Locals(middleware.LocalsPrincipal).(access.Principal)
		if !ok {
			c.Close()
			return
		}

		hub.Register <- ws.Subscription{Conn: c, Principal: p}
		defer func() { hub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}
}
