package controller

import (
	"encoding/json"
	"fmt"

	"github.com/benbeisheim/clickchess-backend/internal/model"
	"github.com/benbeisheim/clickchess-backend/internal/service"
	"github.com/benbeisheim/clickchess-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

// HandleConnection serves one game observer until the socket closes.
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)
	log := logrus.WithFields(logrus.Fields{"game": gameID, "player": playerID})

	if err := wsc.gameService.RegisterConnection(gameID, playerID, c); err != nil {
		log.WithError(err).Warn("failed to register connection")
		_ = c.WriteJSON(ws.ErrorMessage(err.Error()))
		_ = c.Close()
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, playerID, c)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.WithError(err).Debug("read error")
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			log.WithError(err).Debug("parse error")
			continue
		}

		if err := wsc.handleMessage(gameID, playerID, msg); err != nil {
			log.WithError(err).Debug("handle error")
			if err := wsc.gameService.Send(gameID, playerID, ws.ErrorMessage(err.Error())); err != nil {
				log.WithError(err).Debug("failed to send error")
			}
		}
	}
}

func (wsc *WebSocketController) handleMessage(gameID, playerID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeActivate:
		var activation model.Activation
		if err := json.Unmarshal(msg.Payload, &activation); err != nil {
			return err
		}
		_, err := wsc.gameService.ActivateSquare(gameID, playerID, activation)
		return err

	case ws.MessageTypeNewGame:
		_, err := wsc.gameService.NewGame(gameID, playerID)
		return err

	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

// HandleMatchmaking queues the player and waits for the pairing, which is
// written back as a single matchFound message.
func (wsc *WebSocketController) HandleMatchmaking(c *websocket.Conn) {
	playerID := c.Locals("playerID").(string)
	log := logrus.WithField("player", playerID)

	ch := make(chan string, 1)
	defer wsc.gameService.UnregisterMatchmakingChannel(playerID, ch)

	if err := wsc.gameService.WaitForMatch(playerID, ch); err != nil {
		log.WithError(err).Debug("failed to join matchmaking")
		_ = c.WriteJSON(ws.ErrorMessage(err.Error()))
		return
	}

	// A read goroutine notices the client hanging up while we wait.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	select {
	case event, ok := <-ch:
		if !ok {
			return
		}
		if err := c.WriteJSON(ws.Message{
			Type:    ws.MessageTypeMatchFound,
			Payload: json.RawMessage(event),
		}); err != nil {
			log.WithError(err).Warn("failed to send match found event")
		}
	case <-closed:
		log.Debug("left matchmaking")
	}
}
