package model

import (
	"fmt"
	"strings"
)

const boardSize = 8

type PieceType string

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

func (p PieceType) letter() byte {
	switch p {
	case King:
		return 'k'
	case Queen:
		return 'q'
	case Rook:
		return 'r'
	case Bishop:
		return 'b'
	case Knight:
		return 'n'
	case Pawn:
		return 'p'
	}
	return '?'
}

type Color string

const (
	White Color = "white"
	Black Color = "black"
)

func (c Color) Opponent() Color {
	if c == White {
		return Black
	}
	return White
}

type Piece struct {
	Type     PieceType `json:"type"`
	Color    Color     `json:"color"`
	HasMoved bool      `json:"hasMoved"`
}

// Position addresses a square by row (0 is black's back rank) and column
// (0 is the a-file). It doubles as a direction vector in the piece catalog.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// NewPosition validates a coordinate pair coming from outside the engine.
func NewPosition(row, col int) (Position, error) {
	p := Position{Row: row, Col: col}
	if !p.InBounds() {
		return Position{}, fmt.Errorf("%w: (%d, %d)", ErrOutOfBounds, row, col)
	}
	return p, nil
}

func (p Position) InBounds() bool {
	return p.Row >= 0 && p.Row < boardSize && p.Col >= 0 && p.Col < boardSize
}

func (p Position) add(d Position) Position {
	return Position{Row: p.Row + d.Row, Col: p.Col + d.Col}
}

// String returns the coordinate name, e.g. "e2" for Position{6, 4}.
func (p Position) String() string {
	if !p.InBounds() {
		return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
	}
	return fmt.Sprintf("%c%d", 'a'+p.Col, boardSize-p.Row)
}

// BoardState owns every piece in play. A piece lives in exactly one slot;
// moving it transfers the pointer, capturing drops it.
type BoardState struct {
	Squares [boardSize][boardSize]*Piece `json:"squares"`
	ToMove  Color                        `json:"toMove"`
}

var backRank = [boardSize]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

func newBoard() *BoardState {
	board := &BoardState{ToMove: White}
	for col := 0; col < boardSize; col++ {
		board.Squares[0][col] = &Piece{Type: backRank[col], Color: Black}
		board.Squares[1][col] = &Piece{Type: Pawn, Color: Black}
		board.Squares[6][col] = &Piece{Type: Pawn, Color: White}
		board.Squares[7][col] = &Piece{Type: backRank[col], Color: White}
	}
	return board
}

// PieceAt returns the occupant of pos, or nil for an empty or off-board square.
func (b *BoardState) PieceAt(pos Position) *Piece {
	if !pos.InBounds() {
		return nil
	}
	return b.Squares[pos.Row][pos.Col]
}

func (b *BoardState) set(pos Position, piece *Piece) {
	b.Squares[pos.Row][pos.Col] = piece
}

// Clone returns a deep copy; no piece is shared with the receiver.
func (b *BoardState) Clone() *BoardState {
	clone := &BoardState{ToMove: b.ToMove}
	for row := range b.Squares {
		for col, piece := range b.Squares[row] {
			if piece != nil {
				cp := *piece
				clone.Squares[row][col] = &cp
			}
		}
	}
	return clone
}

// Apply plays m on the board: the destination occupant is discarded, the
// mover relocated and marked as moved, and the side to move flipped. The
// captured piece, if any, is returned. Apply does not check legality; a
// move from an empty or off-board square, or onto an off-board square,
// leaves the board unchanged.
func (b *BoardState) Apply(m Move) *Piece {
	piece := b.PieceAt(m.From)
	if piece == nil || !m.To.InBounds() {
		return nil
	}
	captured := b.PieceAt(m.To)
	b.set(m.To, piece)
	b.set(m.From, nil)
	piece.HasMoved = true
	b.ToMove = b.ToMove.Opponent()
	return captured
}

// simulate returns an independent copy with m played, leaving the side to
// move and the moved flag untouched.
func (b *BoardState) simulate(m Move) *BoardState {
	next := b.Clone()
	next.set(m.To, next.PieceAt(m.From))
	next.set(m.From, nil)
	return next
}

// String renders the board rank by rank, white pieces in upper case.
func (b *BoardState) String() string {
	var sb strings.Builder
	for row := 0; row < boardSize; row++ {
		for col := 0; col < boardSize; col++ {
			piece := b.Squares[row][col]
			switch {
			case piece == nil:
				sb.WriteByte('.')
			case piece.Color == White:
				sb.WriteByte(piece.Type.letter() - 'a' + 'A')
			default:
				sb.WriteByte(piece.Type.letter())
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
