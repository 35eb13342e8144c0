package model

import "testing"

func TestNewBoardSetup(t *testing.T) {
	board := newBoard()
	want := "rnbqkbnr\npppppppp\n........\n........\n........\n........\nPPPPPPPP\nRNBQKBNR\n"
	if got := board.String(); got != want {
		t.Fatalf("initial board:\n%s\nwant:\n%s", got, want)
	}
	if board.ToMove != White {
		t.Fatalf("expected white to move, got %s", board.ToMove)
	}
}

func TestPawnDiagonalsNeedEnemy(t *testing.T) {
	for _, color := range []Color{White, Black} {
		for row := 0; row < boardSize; row++ {
			for col := 0; col < boardSize; col++ {
				board := newBoard()
				from := pos(row, col)
				pawn := &Piece{Type: Pawn, Color: color}
				board.set(from, pawn)

				for _, to := range PseudoMoves(board, pawn, from) {
					if to.Col == from.Col {
						continue
					}
					occupant := board.PieceAt(to)
					if occupant == nil || occupant.Color == color {
						t.Fatalf("%s pawn on %s: diagonal %s without enemy", color, from, to)
					}
				}
			}
		}
	}
}

func TestPawnPushes(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		from Position
		want []Position
	}{
		{
			name: "double step from home",
			fen:  "4k3/8/8/8/8/8/4P3/4K3 w",
			from: pos(6, 4),
			want: []Position{pos(5, 4), pos(4, 4)},
		},
		{
			name: "blocked in front",
			fen:  "4k3/8/8/8/8/4n3/4P3/4K3 w",
			from: pos(6, 4),
			want: []Position{},
		},
		{
			name: "blocked two ahead",
			fen:  "4k3/8/8/8/4n3/8/4P3/4K3 w",
			from: pos(6, 4),
			want: []Position{pos(5, 4)},
		},
		{
			name: "moved pawn single step",
			fen:  "4k3/8/8/8/8/4P3/8/4K3 w",
			from: pos(5, 4),
			want: []Position{pos(4, 4)},
		},
		{
			name: "captures both sides",
			fen:  "4k3/8/8/8/8/3n1b2/4P3/4K3 w",
			from: pos(6, 4),
			want: []Position{pos(5, 4), pos(4, 4), pos(5, 3), pos(5, 5)},
		},
		{
			name: "black moves down",
			fen:  "4k3/3p4/2N5/8/8/8/8/4K3 b",
			from: pos(1, 3),
			want: []Position{pos(2, 3), pos(3, 3), pos(2, 2)},
		},
		{
			name: "last rank has nowhere to go",
			fen:  "4P3/8/8/8/8/8/8/k3K3 w",
			from: pos(0, 4),
			want: []Position{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := boardFromFEN(t, tt.fen)
			piece := board.PieceAt(tt.from)
			assertSquares(t, PseudoMoves(board, piece, tt.from), tt.want...)
		})
	}
}

func TestSlidersStopAtFirstBlocker(t *testing.T) {
	// Rook d4, own knight d6, enemy pawn f4.
	board := boardFromFEN(t, "4k3/8/3N4/8/3R1p2/8/8/4K3 w")
	rook := board.PieceAt(pos(4, 3))
	moves := PseudoMoves(board, rook, pos(4, 3))

	assertSquares(t, moves,
		pos(3, 3),
		pos(5, 3), pos(6, 3), pos(7, 3),
		pos(4, 0), pos(4, 1), pos(4, 2),
		pos(4, 4), pos(4, 5),
	)

	for _, p := range moves {
		if p == pos(2, 3) || p == pos(1, 3) || p == pos(4, 6) {
			t.Fatalf("rook moved through a blocker to %s", p)
		}
	}
}

func TestQueenCombinesRookAndBishop(t *testing.T) {
	board := boardFromFEN(t, "4k3/8/8/8/3Q4/8/8/4K3 w")
	from := pos(4, 3)
	queen := board.PieceAt(from)

	rook := &Piece{Type: Rook, Color: White}
	bishop := &Piece{Type: Bishop, Color: White}
	want := append(PseudoMoves(board, rook, from), PseudoMoves(board, bishop, from)...)
	assertSquares(t, PseudoMoves(board, queen, from), want...)
}

func TestLeapers(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		from Position
		want []Position
	}{
		{
			name: "knight in corner",
			fen:  "4k3/8/8/8/8/8/8/N3K3 w",
			from: pos(7, 0),
			want: []Position{pos(5, 1), pos(6, 2)},
		},
		{
			name: "knight jumps over pieces",
			fen:  "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w",
			from: pos(7, 1),
			want: []Position{pos(5, 0), pos(5, 2)},
		},
		{
			name: "king includes attacked squares",
			fen:  "4k3/8/8/8/8/8/r7/4K3 w",
			from: pos(7, 4),
			want: []Position{pos(7, 3), pos(7, 5), pos(6, 3), pos(6, 4), pos(6, 5)},
		},
		{
			name: "king captures but not own pieces",
			fen:  "4k3/8/8/8/8/8/3pP3/4K3 w",
			from: pos(7, 4),
			want: []Position{pos(7, 3), pos(7, 5), pos(6, 3), pos(6, 5)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := boardFromFEN(t, tt.fen)
			assertSquares(t, PseudoMoves(board, board.PieceAt(tt.from), tt.from), tt.want...)
		})
	}
}

func TestPseudoMovesRejectsBadInput(t *testing.T) {
	board := newBoard()
	if moves := PseudoMoves(board, nil, pos(4, 4)); moves != nil {
		t.Fatalf("expected no moves for empty square, got %v", moves)
	}
	pawn := &Piece{Type: Pawn, Color: White}
	if moves := PseudoMoves(board, pawn, pos(8, 0)); moves != nil {
		t.Fatalf("expected no moves off the board, got %v", moves)
	}
}

func TestApplyCapturesAndFlips(t *testing.T) {
	board := boardFromFEN(t, "4k3/8/8/3p4/4P3/8/8/4K3 w")
	pawn := board.PieceAt(pos(4, 4))
	pawn.HasMoved = false

	captured := board.Apply(Move{From: pos(4, 4), To: pos(3, 3)})
	if captured == nil || captured.Type != Pawn || captured.Color != Black {
		t.Fatalf("expected black pawn captured, got %+v", captured)
	}
	if board.PieceAt(pos(3, 3)) != pawn {
		t.Fatalf("mover not relocated")
	}
	if board.PieceAt(pos(4, 4)) != nil {
		t.Fatalf("origin not cleared")
	}
	if !pawn.HasMoved {
		t.Fatalf("mover not marked as moved")
	}
	if board.ToMove != Black {
		t.Fatalf("side to move not flipped")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	board := newBoard()
	clone := board.Clone()
	clone.Apply(Move{From: pos(6, 4), To: pos(4, 4)})

	if board.PieceAt(pos(6, 4)) == nil || board.PieceAt(pos(6, 4)).HasMoved {
		t.Fatalf("original board changed by clone move")
	}
	if board.ToMove != White {
		t.Fatalf("original side to move changed")
	}
}

func TestPositionValidation(t *testing.T) {
	if _, err := NewPosition(0, 7); err != nil {
		t.Fatalf("h8 rejected: %v", err)
	}
	for _, rc := range [][2]int{{-1, 0}, {0, -1}, {8, 0}, {0, 8}} {
		if _, err := NewPosition(rc[0], rc[1]); err == nil {
			t.Fatalf("(%d, %d) accepted", rc[0], rc[1])
		}
	}
	if got := pos(6, 4).String(); got != "e2" {
		t.Fatalf("expected e2, got %s", got)
	}
}

func TestApplyIgnoresMissingMover(t *testing.T) {
	tests := []struct {
		name string
		move Move
	}{
		{name: "empty origin", move: Move{From: pos(4, 4), To: pos(3, 4)}},
		{name: "origin off board", move: Move{From: pos(8, 4), To: pos(3, 4)}},
		{name: "destination off board", move: Move{From: pos(6, 4), To: pos(-1, 4)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := newBoard()
			before := board.String()
			if captured := board.Apply(tt.move); captured != nil {
				t.Fatalf("expected no capture, got %+v", captured)
			}
			if board.String() != before || board.ToMove != White {
				t.Fatalf("board changed:\n%s", board)
			}
		})
	}
}
