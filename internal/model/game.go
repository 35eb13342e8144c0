package model

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/benbeisheim/clickchess-backend/internal/ws"
	"github.com/sirupsen/logrus"
)

// Observer receives game messages. *websocket.Conn satisfies it.
type Observer interface {
	WriteJSON(v interface{}) error
}

// The connections for a specific game
type GameConnections struct {
	connections map[string]Observer // playerID -> connection
	mu          sync.RWMutex
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]Observer),
	}
}

// Game drives a single board through square activations and fans every
// resulting snapshot out to its observers. Snapshots are broadcast while mu
// is held, so observers receive them in the order they were produced.
type Game struct {
	ID          string
	mu          sync.Mutex
	state       GameState
	connections *GameConnections
}

// GameState is everything a client needs to redraw: the occupants, the
// selected square and its reachable squares, the king square to flag as in
// check, and the outcome.
type GameState struct {
	Board          *BoardState    `json:"boardState"`
	SelectedSquare *Position      `json:"selectedSquare"`
	LegalMoves     []Position     `json:"legalMoves"`
	IsCheck        bool           `json:"isCheck"`
	CheckSquare    *Position      `json:"checkSquare"`
	Outcome        Outcome        `json:"outcome"`
	MoveHistory    []Ply          `json:"moveHistory"`
	CapturedPieces CapturedPieces `json:"capturedPieces"`
	LastMove       *Move          `json:"lastMove"`
	Players        Players        `json:"players"`
}

// CapturedPieces lists, per side, the enemy pieces that side has taken.
type CapturedPieces struct {
	White []Piece `json:"white"`
	Black []Piece `json:"black"`
}

func NewGame(id string) *Game {
	return newGameWithBoard(id, newBoard())
}

func newGameWithBoard(id string, board *BoardState) *Game {
	return &Game{
		ID:          id,
		state:       newGameState(board),
		connections: NewGameConnections(),
	}
}

func newGameState(board *BoardState) GameState {
	state := GameState{
		Board:          board,
		LegalMoves:     make([]Position, 0),
		MoveHistory:    make([]Ply, 0),
		CapturedPieces: newCapturedPieces(),
	}
	state.refreshOutcome()
	return state
}

func newCapturedPieces() CapturedPieces {
	return CapturedPieces{
		White: make([]Piece, 0),
		Black: make([]Piece, 0),
	}
}

func (s *GameState) refreshOutcome() {
	s.Outcome = Evaluate(s.Board)
	s.IsCheck = s.Outcome.Checked != nil
	s.CheckSquare = nil
	if s.IsCheck {
		if king, ok := FindKing(s.Board, *s.Outcome.Checked); ok {
			s.CheckSquare = &king
		}
	}
}

func (s GameState) clone() GameState {
	out := s
	out.Board = s.Board.Clone()
	out.LegalMoves = append(make([]Position, 0, len(s.LegalMoves)), s.LegalMoves...)
	out.MoveHistory = append(make([]Ply, 0, len(s.MoveHistory)), s.MoveHistory...)
	out.CapturedPieces = CapturedPieces{
		White: append(make([]Piece, 0, len(s.CapturedPieces.White)), s.CapturedPieces.White...),
		Black: append(make([]Piece, 0, len(s.CapturedPieces.Black)), s.CapturedPieces.Black...),
	}
	out.SelectedSquare = copyPtr(s.SelectedSquare)
	out.CheckSquare = copyPtr(s.CheckSquare)
	out.LastMove = copyPtr(s.LastMove)
	out.Outcome.Checked = copyPtr(s.Outcome.Checked)
	out.Outcome.Winner = copyPtr(s.Outcome.Winner)
	return out
}

func copyPtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func (g *Game) AddPlayer(playerID string) (Color, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state.Players.White.ID == "" {
		g.state.Players.White = ClientPlayer{ID: playerID, Color: White}
		logrus.WithFields(logrus.Fields{"game": g.ID, "player": playerID}).Debug("seated as white")
		return White, nil
	}
	if g.state.Players.Black.ID == "" {
		g.state.Players.Black = ClientPlayer{ID: playerID, Color: Black}
		logrus.WithFields(logrus.Fields{"game": g.ID, "player": playerID}).Debug("seated as black")
		return Black, nil
	}
	return "", ErrGameFull
}

// GetState returns a snapshot that shares nothing with the live game.
func (g *Game) GetState() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.state.clone()
}

// ColorsFor lists the sides playerID is seated on. A player seated twice
// plays both sides from one device.
func (g *Game) ColorsFor(playerID string) []Color {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.state.Players.seated(playerID)
}

func (g *Game) IsPlayerInGame(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.isPlayerInGame(playerID)
}

func (g *Game) isPlayerInGame(playerID string) bool {
	return len(g.state.Players.seated(playerID)) > 0
}

func (g *Game) CanSpectate() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.canSpectate()
}

func (g *Game) canSpectate() bool {
	return g.state.Players.White.ID == "" || g.state.Players.Black.ID == ""
}

// ActivateSquare feeds one click into the game. Off-board squares are
// rejected before anything is looked up; every other click is either
// applied or silently ignored.
func (g *Game) ActivateSquare(pos Position) error {
	return g.activateSquare(pos, nil)
}

// ActivateSquareFor is ActivateSquare on behalf of a seated player, who must
// hold the side to move.
func (g *Game) ActivateSquareFor(playerID string, pos Position) error {
	return g.activateSquare(pos, func() error {
		colors := g.state.Players.seated(playerID)
		if len(colors) == 0 {
			return ErrPlayerNotInGame
		}
		for _, c := range colors {
			if c == g.state.Board.ToMove {
				return nil
			}
		}
		return ErrNotYourTurn
	})
}

func (g *Game) activateSquare(pos Position, authorize func() error) error {
	if !pos.InBounds() {
		return fmt.Errorf("%w: (%d, %d)", ErrOutOfBounds, pos.Row, pos.Col)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if authorize != nil {
		if err := authorize(); err != nil {
			return err
		}
	}
	if g.activate(pos) {
		g.broadcastState(g.state.clone())
	}
	return nil
}

func (g *Game) activate(pos Position) bool {
	log := logrus.WithFields(logrus.Fields{"game": g.ID, "square": pos.String()})
	s := &g.state

	if s.Outcome.IsTerminal() {
		log.Debug("game over, ignoring activation")
		return false
	}

	clicked := s.Board.PieceAt(pos)
	ownPiece := clicked != nil && clicked.Color == s.Board.ToMove

	if s.SelectedSquare != nil {
		if containsPosition(s.LegalMoves, pos) {
			g.applyMove(Move{From: *s.SelectedSquare, To: pos})
			return true
		}
		if ownPiece {
			g.selectSquare(pos, clicked)
			return true
		}
		log.Debug("selection cleared")
		g.clearSelection()
		return true
	}

	if ownPiece {
		g.selectSquare(pos, clicked)
		return true
	}
	return false
}

func (g *Game) selectSquare(pos Position, piece *Piece) {
	g.state.SelectedSquare = &pos
	g.state.LegalMoves = LegalMoves(g.state.Board, piece, pos)
	logrus.WithFields(logrus.Fields{
		"game":   g.ID,
		"square": pos.String(),
		"moves":  len(g.state.LegalMoves),
	}).Debug("piece selected")
}

func (g *Game) clearSelection() {
	g.state.SelectedSquare = nil
	g.state.LegalMoves = make([]Position, 0)
}

func (g *Game) applyMove(move Move) {
	s := &g.state
	mover := s.Board.ToMove
	ply := Ply{
		Piece: *s.Board.PieceAt(move.From),
		From:  move.From,
		To:    move.To,
	}

	if captured := s.Board.Apply(move); captured != nil {
		ply.CapturedPiece = captured
		switch mover {
		case White:
			s.CapturedPieces.White = append(s.CapturedPieces.White, *captured)
		case Black:
			s.CapturedPieces.Black = append(s.CapturedPieces.Black, *captured)
		}
	}

	s.MoveHistory = append(s.MoveHistory, ply)
	s.LastMove = &move
	g.clearSelection()
	s.refreshOutcome()

	logrus.WithFields(logrus.Fields{
		"game":    g.ID,
		"move":    move.String(),
		"outcome": s.Outcome.Status,
	}).Info("move applied")
	logrus.Tracef("board after %s:\n%s", move, s.Board)
}

// NewGame replaces the board with the starting position. Seats and
// observers are kept.
func (g *Game) NewGame() {
	g.mu.Lock()
	defer g.mu.Unlock()

	players := g.state.Players
	g.state = newGameState(newBoard())
	g.state.Players = players

	logrus.WithField("game", g.ID).Info("new game started")
	g.broadcastState(g.state.clone())
}

func containsPosition(positions []Position, pos Position) bool {
	for _, p := range positions {
		if p == pos {
			return true
		}
	}
	return false
}

func (g *Game) RegisterConnection(playerID string, conn Observer) error {
	log := logrus.WithFields(logrus.Fields{"game": g.ID, "player": playerID})

	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.isPlayerInGame(playerID) && !g.canSpectate() {
		return ErrNotAuthorized
	}

	g.connections.mu.Lock()
	if _, exists := g.connections.connections[playerID]; exists {
		// Keep the healthy connection, reject the newcomer.
		g.connections.mu.Unlock()
		log.Debug("duplicate connection rejected")
		return ErrAlreadyConnected
	}
	g.connections.connections[playerID] = conn
	g.connections.mu.Unlock()
	log.Debug("connection registered")

	g.broadcastState(g.state.clone())
	return nil
}

// UnregisterConnection drops playerID's socket if it is still conn; a stale
// handler must not remove its replacement.
func (g *Game) UnregisterConnection(playerID string, conn Observer) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	if current, exists := g.connections.connections[playerID]; exists && current == conn {
		delete(g.connections.connections, playerID)
		logrus.WithFields(logrus.Fields{"game": g.ID, "player": playerID}).Debug("connection unregistered")
	}
}

// Send writes msg to playerID's socket alone.
func (g *Game) Send(playerID string, msg ws.Message) error {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	conn, ok := g.connections.connections[playerID]
	if !ok {
		return ErrNotConnected
	}
	return conn.WriteJSON(msg)
}

// broadcastState writes state to every observer. The write lock is held for
// the whole fan-out so writes to one socket never interleave. Callers hold
// g.mu; the lock order is g.mu then connections.mu.
func (g *Game) broadcastState(state GameState) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	if len(g.connections.connections) == 0 {
		return
	}

	payload, err := json.Marshal(state)
	if err != nil {
		logrus.WithField("game", g.ID).WithError(err).Error("failed to marshal state")
		return
	}

	for playerID, conn := range g.connections.connections {
		if err := conn.WriteJSON(ws.Message{
			Type:    ws.MessageTypeGameState,
			Payload: json.RawMessage(payload),
		}); err != nil {
			logrus.WithFields(logrus.Fields{"game": g.ID, "player": playerID}).WithError(err).Warn("failed to send state")
			delete(g.connections.connections, playerID)
			continue
		}
	}
}
