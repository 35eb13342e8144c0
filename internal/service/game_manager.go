package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/benbeisheim/clickchess-backend/internal/model"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrGameExists   = errors.New("game already exists")
)

type GameManager struct {
	games            map[string]*model.Game
	queue            *model.Queue
	matchingChannels map[string]chan string
	// Matches made for players who had no channel open, keyed by player.
	pendingMatches map[string]model.MatchFoundEvent
	mu             sync.RWMutex
}

func NewGameManager() *GameManager {
	return &GameManager{
		games:            make(map[string]*model.Game),
		queue:            model.NewQueue(),
		matchingChannels: make(map[string]chan string),
		pendingMatches:   make(map[string]model.MatchFoundEvent),
	}
}

// Run pairs queued players every interval until ctx is cancelled.
func (gm *GameManager) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for gm.matchQueued() {
			}
		}
	}
}

// matchQueued seats the two longest-waiting players in a fresh game and
// notifies them. It reports whether a pair was made.
func (gm *GameManager) matchQueued() bool {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	player1, player2, err := gm.queue.NextPair()
	if err != nil {
		return false
	}

	gameID := uuid.New().String()
	game := model.NewGame(gameID)
	p1Color, err := game.AddPlayer(player1.ID)
	if err != nil {
		logrus.WithError(err).Error("failed to seat matched player")
		return true
	}
	p2Color, err := game.AddPlayer(player2.ID)
	if err != nil {
		logrus.WithError(err).Error("failed to seat matched player")
		return true
	}
	gm.games[gameID] = game

	logrus.WithFields(logrus.Fields{
		"game":  gameID,
		"white": player1.ID,
		"black": player2.ID,
	}).Info("match found")

	gm.notifyMatch(player1.ID, model.MatchFoundEvent{GameID: gameID, Color: p1Color})
	gm.notifyMatch(player2.ID, model.MatchFoundEvent{GameID: gameID, Color: p2Color})
	return true
}

// notifyMatch must be called with gm.mu held. Without a registered channel
// the event is kept until the player registers one.
func (gm *GameManager) notifyMatch(playerID string, event model.MatchFoundEvent) {
	log := logrus.WithFields(logrus.Fields{"player": playerID, "game": event.GameID})
	ch, ok := gm.matchingChannels[playerID]
	if !ok {
		log.Debug("no matchmaking channel registered, holding match")
		gm.pendingMatches[playerID] = event
		return
	}
	delete(gm.matchingChannels, playerID)
	deliverMatch(ch, event, log)
}

func deliverMatch(ch chan string, event model.MatchFoundEvent, log *logrus.Entry) {
	select {
	case ch <- mustJSON(event):
		log.Debug("sent match found event")
	default:
		log.Warn("failed to send match found event")
	}
	close(ch)
}

// WaitForMatch makes ch the player's match notification channel, closing
// any channel it replaces, and queues the player unless already queued. A
// match already made for the player is delivered on ch straight away, which
// closes it, and the player is not queued again.
func (gm *GameManager) WaitForMatch(playerID string, ch chan string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	log := logrus.WithField("player", playerID)
	if existing, exists := gm.matchingChannels[playerID]; exists {
		log.Debug("replacing matchmaking channel")
		delete(gm.matchingChannels, playerID)
		close(existing)
	}
	if event, ok := gm.pendingMatches[playerID]; ok {
		delete(gm.pendingMatches, playerID)
		deliverMatch(ch, event, log.WithField("game", event.GameID))
		return nil
	}

	err := gm.queue.AddPlayer(model.Player{ID: playerID})
	if err != nil && !errors.Is(err, model.ErrAlreadyQueued) {
		return err
	}
	gm.matchingChannels[playerID] = ch
	return nil
}

// UnregisterMatchmakingChannel forgets ch and takes the player out of the
// queue. The manager is the only party that closes matchmaking channels, so
// ch is left open.
func (gm *GameManager) UnregisterMatchmakingChannel(playerID string, ch chan string) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if current, ok := gm.matchingChannels[playerID]; ok && current == ch {
		delete(gm.matchingChannels, playerID)
		gm.queue.Remove(playerID)
	}
}

func mustJSON(v interface{}) string {
	bytes, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(bytes)
}

func (gm *GameManager) CreateGame(gameID string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; exists {
		return ErrGameExists
	}

	gm.games[gameID] = model.NewGame(gameID)
	return nil
}

func (gm *GameManager) GetGame(gameID string) (*model.Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, ErrGameNotFound
	}

	return game, nil
}

// JoinMatchmaking queues the player. A match still held from an earlier
// queueing is dropped in favour of the new one.
func (gm *GameManager) JoinMatchmaking(playerID string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if err := gm.queue.AddPlayer(model.Player{ID: playerID}); err != nil {
		return err
	}
	delete(gm.pendingMatches, playerID)
	return nil
}

func (gm *GameManager) RegisterConnection(gameID string, playerID string, conn *websocket.Conn) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.RegisterConnection(playerID, conn)
}

func (gm *GameManager) UnregisterConnection(gameID string, playerID string, conn *websocket.Conn) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return
	}
	game.UnregisterConnection(playerID, conn)
}
