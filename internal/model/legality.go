package model

type OutcomeStatus string

const (
	InProgress OutcomeStatus = "in_progress"
	Check      OutcomeStatus = "check"
	Checkmate  OutcomeStatus = "checkmate"
	Stalemate  OutcomeStatus = "stalemate"
)

// Outcome is derived from a board and never stored apart from it.
// Checked is set for Check and Checkmate; Winner only for Checkmate.
type Outcome struct {
	Status  OutcomeStatus `json:"status"`
	Checked *Color        `json:"checked"`
	Winner  *Color        `json:"winner"`
}

func (o Outcome) IsTerminal() bool {
	return o.Status == Checkmate || o.Status == Stalemate
}

// LegalMoves filters the pseudo moves of piece down to those that do not
// leave its own king attacked. Each candidate is tried on a copy of the
// board, so board itself is never touched.
func LegalMoves(board *BoardState, piece *Piece, from Position) []Position {
	legal := []Position{}
	for _, to := range PseudoMoves(board, piece, from) {
		next := board.simulate(Move{From: from, To: to})
		if !IsKingInCheck(next, piece.Color) {
			legal = append(legal, to)
		}
	}
	return legal
}

// AllLegalMoves enumerates the legal moves of every piece of color.
func AllLegalMoves(board *BoardState, color Color) []Move {
	moves := []Move{}
	for row := 0; row < boardSize; row++ {
		for col := 0; col < boardSize; col++ {
			piece := board.Squares[row][col]
			if piece == nil || piece.Color != color {
				continue
			}
			from := Position{Row: row, Col: col}
			for _, to := range LegalMoves(board, piece, from) {
				moves = append(moves, Move{From: from, To: to})
			}
		}
	}
	return moves
}

func hasLegalMove(board *BoardState, color Color) bool {
	for row := 0; row < boardSize; row++ {
		for col := 0; col < boardSize; col++ {
			piece := board.Squares[row][col]
			if piece == nil || piece.Color != color {
				continue
			}
			if len(LegalMoves(board, piece, Position{Row: row, Col: col})) > 0 {
				return true
			}
		}
	}
	return false
}

// Evaluate computes the outcome for the side to move.
func Evaluate(board *BoardState) Outcome {
	side := board.ToMove
	inCheck := IsKingInCheck(board, side)
	canMove := hasLegalMove(board, side)
	switch {
	case inCheck && !canMove:
		winner := side.Opponent()
		return Outcome{Status: Checkmate, Checked: &side, Winner: &winner}
	case inCheck:
		return Outcome{Status: Check, Checked: &side}
	case !canMove:
		return Outcome{Status: Stalemate}
	}
	return Outcome{Status: InProgress}
}
