package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

const ClientIDHeader = "X-Client-ID"

// EnsureClientID stores the caller's client ID in Locals("clientID"), taken
// from the X-Client-ID header or the clientId query parameter. Callers that
// send neither get a fresh ID, echoed back in the response header.
func EnsureClientID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Check if clientID is already set
		if c.Locals("clientID") != nil {
			return c.Next()
		}

		// Check header first
		clientID := c.Get(ClientIDHeader)
		if clientID == "" {
			clientID = c.Query("clientId")
		}

		if clientID == "" {
			clientID = uuid.New().String()
			log.Debugf("assigned client ID %s to %s", clientID, c.IP())
		}

		c.Set(ClientIDHeader, clientID)
		c.Locals("clientID", clientID)
		return c.Next()
	}
}

// ClientID reads the value EnsureClientID stored.
func ClientID(c *fiber.Ctx) string {
	id, _ := c.Locals("clientID").(string)
	return id
}
