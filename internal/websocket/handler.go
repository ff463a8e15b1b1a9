package websocket

import (
	"context"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"ai-debtchat-be/internal/dto"
)

// MessageProcessor is the slice of the chat pipeline the socket layer
// needs: one inbound text in, one processed exchange out.
type MessageProcessor interface {
	Process(ctx context.Context, sessionToken, content string) (*dto.SendMessageResponse, error)
}

// ServeWs attaches an accepted websocket connection to its session and
// blocks until the socket closes.
func ServeWs(hub *Hub, c *websocket.Conn, sessionID uuid.UUID, sessionToken string, processor MessageProcessor) {
	client := &Client{
		Hub:          hub,
		Conn:         c,
		SessionID:    sessionID,
		SessionToken: sessionToken,
		Send:         make(chan []byte, 256),
		processor:    processor,
	}
	client.Hub.register <- client

	go client.writePump()
	client.readPump()
}
