package service

import (
	"fmt"

	"github.com/benbeisheim/clickchess-backend/internal/model"
	"github.com/benbeisheim/clickchess-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

func (gs *GameService) CreateGame() (string, error) {
	gameID := uuid.New().String()

	if err := gs.gameManager.CreateGame(gameID); err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}

	logrus.WithField("game", gameID).Info("game created")
	return gameID, nil
}

func (gs *GameService) JoinGame(gameID string, playerID string) (model.Color, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return "", err
	}
	return game.AddPlayer(playerID)
}

func (gs *GameService) GetGameState(gameID string) (model.GameState, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	return game.GetState(), nil
}

// ActivateSquare applies a click from playerID and returns the resulting
// snapshot.
func (gs *GameService) ActivateSquare(gameID string, playerID string, activation model.Activation) (model.GameState, error) {
	pos, err := model.NewPosition(activation.Row, activation.Col)
	if err != nil {
		return model.GameState{}, err
	}
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	if err := game.ActivateSquareFor(playerID, pos); err != nil {
		return model.GameState{}, err
	}
	return game.GetState(), nil
}

// NewGame restarts gameID from the starting position. Only seated players
// may restart.
func (gs *GameService) NewGame(gameID string, playerID string) (model.GameState, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	if !game.IsPlayerInGame(playerID) {
		return model.GameState{}, model.ErrPlayerNotInGame
	}
	game.NewGame()
	return game.GetState(), nil
}

func (gs *GameService) JoinMatchmaking(playerID string) error {
	return gs.gameManager.JoinMatchmaking(playerID)
}

func (gs *GameService) RegisterConnection(gameID string, playerID string, conn *websocket.Conn) error {
	return gs.gameManager.RegisterConnection(gameID, playerID, conn)
}

func (gs *GameService) UnregisterConnection(gameID string, playerID string, conn *websocket.Conn) {
	gs.gameManager.UnregisterConnection(gameID, playerID, conn)
}

// Send writes msg to playerID's registered game socket.
func (gs *GameService) Send(gameID string, playerID string, msg ws.Message) error {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.Send(playerID, msg)
}

// WaitForMatch registers ch for playerID's match notification and makes
// sure the player is queued. Players already queued, for instance through
// the REST endpoint or an earlier socket, keep their place.
func (gs *GameService) WaitForMatch(playerID string, ch chan string) error {
	return gs.gameManager.WaitForMatch(playerID, ch)
}

func (gs *GameService) UnregisterMatchmakingChannel(playerID string, ch chan string) {
	gs.gameManager.UnregisterMatchmakingChannel(playerID, ch)
}
