package model

import (
	"sort"
	"strings"
	"testing"
)

var pieceLetters = map[rune]PieceType{
	'p': Pawn, 'n': Knight, 'b': Bishop, 'r': Rook, 'q': Queen, 'k': King,
}

// boardFromFEN builds a board from the placement and side-to-move fields of
// a FEN string. Pawns off their home rank count as moved.
func boardFromFEN(t *testing.T, fen string) *BoardState {
	t.Helper()

	fields := strings.Fields(fen)
	if len(fields) < 2 {
		t.Fatalf("fen %q: need placement and side", fen)
	}
	ranks := strings.Split(fields[0], "/")
	if len(ranks) != boardSize {
		t.Fatalf("fen %q: want %d ranks, got %d", fen, boardSize, len(ranks))
	}

	board := &BoardState{ToMove: White}
	if fields[1] == "b" {
		board.ToMove = Black
	}
	for row, rank := range ranks {
		col := 0
		for _, r := range rank {
			if r >= '1' && r <= '8' {
				col += int(r - '0')
				continue
			}
			color := White
			if r >= 'a' && r <= 'z' {
				color = Black
			}
			kind, ok := pieceLetters[[]rune(strings.ToLower(string(r)))[0]]
			if !ok || col >= boardSize {
				t.Fatalf("fen %q: bad rank %q", fen, rank)
			}
			piece := &Piece{Type: kind, Color: color}
			if kind == Pawn {
				home := 6
				if color == Black {
					home = 1
				}
				piece.HasMoved = row != home
			}
			board.Squares[row][col] = piece
			col++
		}
		if col != boardSize {
			t.Fatalf("fen %q: rank %q has %d files", fen, rank, col)
		}
	}
	return board
}

func pos(row, col int) Position {
	return Position{Row: row, Col: col}
}

func sortedNames(positions []Position) []string {
	names := make([]string, 0, len(positions))
	for _, p := range positions {
		names = append(names, p.String())
	}
	sort.Strings(names)
	return names
}

func assertSquares(t *testing.T, got []Position, want ...Position) {
	t.Helper()
	g, w := sortedNames(got), sortedNames(want)
	if strings.Join(g, " ") != strings.Join(w, " ") {
		t.Fatalf("squares: got %v, want %v", g, w)
	}
}
