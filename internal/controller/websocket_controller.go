package controller

import (
	"encoding/json"
	"fmt"

	"github.com/benbeisheim/chessrules/internal/service"
	"github.com/benbeisheim/chessrules/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	// Set by middleware.WebSocketUpgrade
	sessionID, _ := c.Locals("wsSessionID").(string)
	clientID, _ := c.Locals("wsClientID").(string)

	// Register this connection with the session; this also sends the current state
	if err := wsc.gameService.RegisterConnection(sessionID, clientID, c); err != nil {
		log.Warnf("session %s: refusing client %s: %v", sessionID, clientID, err)
		c.WriteJSON(ws.NewError(err.Error()))
		c.Close()
		return
	}
	defer wsc.gameService.UnregisterConnection(sessionID, clientID, c)

	// Start message handling loop
	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Debugf("session %s: client %s read: %v", sessionID, clientID, err)
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			wsc.sendError(sessionID, clientID, fmt.Errorf("parse error: %w", err))
			continue
		}

		if err := wsc.handleMessage(sessionID, msg); err != nil {
			wsc.sendError(sessionID, clientID, err)
		}
	}
}

// Handle different types of incoming messages. Successful moves reach the
// client through the session's event broadcast, not through the return value.
func (wsc *WebSocketController) handleMessage(sessionID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeMove:
		var in service.MoveInput
		if err := json.Unmarshal(msg.Payload, &in); err != nil {
			return fmt.Errorf("invalid move payload: %w", err)
		}
		_, _, err := wsc.gameService.HandleMove(sessionID, in)
		return err

	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

// Helper method to send error messages
func (wsc *WebSocketController) sendError(sessionID, clientID string, err error) {
	if sendErr := wsc.gameService.SendTo(sessionID, clientID, ws.NewError(err.Error())); sendErr != nil {
		log.Debugf("session %s: error for client %s not delivered: %v", sessionID, clientID, sendErr)
	}
}
