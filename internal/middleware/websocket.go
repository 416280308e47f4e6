package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// WebSocketUpgrade ensures that requests to WebSocket endpoints are valid WebSocket connection attempts.
// It also checks that the session and client IDs are present before allowing the upgrade.
func WebSocketUpgrade() fiber.Handler {
	return func(c *fiber.Ctx) error {
		// First, check if this is a WebSocket upgrade request
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}

		sessionID := c.Params("sessionId")
		if sessionID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "session ID is required",
			})
		}

		// Set by EnsureClientID
		clientID := ClientID(c)
		if clientID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "client ID is required",
			})
		}

		// The connection context is different from the upgrade context, so carry the IDs over in locals
		c.Locals("wsSessionID", sessionID)
		c.Locals("wsClientID", clientID)

		return c.Next()
	}
}
