package model

// FindKing returns the square of color's king. ok is false when the board
// has no such king.
func FindKing(board *BoardState, color Color) (pos Position, ok bool) {
	for row := 0; row < boardSize; row++ {
		for col := 0; col < boardSize; col++ {
			piece := board.Squares[row][col]
			if piece != nil && piece.Type == King && piece.Color == color {
				return Position{Row: row, Col: col}, true
			}
		}
	}
	return Position{}, false
}

// IsSquareAttacked reports whether any piece of attackingColor has target
// among its pseudo moves. Pawn pushes never land on an occupied square, so
// against a king only pawn diagonals count.
func IsSquareAttacked(board *BoardState, target Position, attackingColor Color) bool {
	for row := 0; row < boardSize; row++ {
		for col := 0; col < boardSize; col++ {
			piece := board.Squares[row][col]
			if piece == nil || piece.Color != attackingColor {
				continue
			}
			for _, to := range PseudoMoves(board, piece, Position{Row: row, Col: col}) {
				if to == target {
					return true
				}
			}
		}
	}
	return false
}

// IsKingInCheck is false when color has no king on the board.
func IsKingInCheck(board *BoardState, color Color) bool {
	king, ok := FindKing(board, color)
	if !ok {
		return false
	}
	return IsSquareAttacked(board, king, color.Opponent())
}
