package model

// PseudoMoves lists every square piece could reach from `from` following its
// movement pattern and blocking rules. It does not look at whose turn it is
// and does not care whether the mover's own king ends up attacked.
func PseudoMoves(board *BoardState, piece *Piece, from Position) []Position {
	if piece == nil || !from.InBounds() {
		return nil
	}
	if piece.Type == Pawn {
		return pseudoPawnMoves(board, piece, from)
	}
	shape, ok := shapes[piece.Type]
	if !ok {
		return nil
	}
	if shape.slides {
		return pseudoSliderMoves(board, piece, from, shape.dirs)
	}
	return pseudoLeaperMoves(board, piece, from, shape.dirs)
}

func pseudoPawnMoves(board *BoardState, piece *Piece, from Position) []Position {
	moves := []Position{}
	dir := pawnDirection(piece.Color)

	one := Position{Row: from.Row + dir, Col: from.Col}
	if one.InBounds() && board.PieceAt(one) == nil {
		moves = append(moves, one)
		two := Position{Row: from.Row + 2*dir, Col: from.Col}
		if !piece.HasMoved && two.InBounds() && board.PieceAt(two) == nil {
			moves = append(moves, two)
		}
	}

	for _, dc := range []int{-1, 1} {
		target := Position{Row: from.Row + dir, Col: from.Col + dc}
		if !target.InBounds() {
			continue
		}
		if occupant := board.PieceAt(target); occupant != nil && occupant.Color != piece.Color {
			moves = append(moves, target)
		}
	}
	return moves
}

func pseudoSliderMoves(board *BoardState, piece *Piece, from Position, dirs []Position) []Position {
	moves := []Position{}
	for _, dir := range dirs {
		for target := from.add(dir); target.InBounds(); target = target.add(dir) {
			occupant := board.PieceAt(target)
			if occupant == nil {
				moves = append(moves, target)
				continue
			}
			if occupant.Color != piece.Color {
				moves = append(moves, target)
			}
			break
		}
	}
	return moves
}

func pseudoLeaperMoves(board *BoardState, piece *Piece, from Position, offsets []Position) []Position {
	moves := []Position{}
	for _, offset := range offsets {
		target := from.add(offset)
		if !target.InBounds() {
			continue
		}
		if occupant := board.PieceAt(target); occupant == nil || occupant.Color != piece.Color {
			moves = append(moves, target)
		}
	}
	return moves
}
