package model

var (
	orthogonalDirs = []Position{{Row: 0, Col: 1}, {Row: 0, Col: -1}, {Row: 1, Col: 0}, {Row: -1, Col: 0}}
	diagonalDirs   = []Position{{Row: 1, Col: 1}, {Row: 1, Col: -1}, {Row: -1, Col: 1}, {Row: -1, Col: -1}}
	knightOffsets  = []Position{
		{Row: 2, Col: 1}, {Row: 2, Col: -1}, {Row: -2, Col: 1}, {Row: -2, Col: -1},
		{Row: 1, Col: 2}, {Row: 1, Col: -2}, {Row: -1, Col: 2}, {Row: -1, Col: -2},
	}
	allDirs = append(append([]Position{}, orthogonalDirs...), diagonalDirs...)
)

// moveShape describes how a non-pawn piece moves. Sliders repeat each
// direction until blocked, leapers take a single step.
type moveShape struct {
	dirs   []Position
	slides bool
}

var shapes = map[PieceType]moveShape{
	Knight: {dirs: knightOffsets},
	King:   {dirs: allDirs},
	Bishop: {dirs: diagonalDirs, slides: true},
	Rook:   {dirs: orthogonalDirs, slides: true},
	Queen:  {dirs: allDirs, slides: true},
}

// pawnDirection is the row step of a forward pawn move.
func pawnDirection(c Color) int {
	if c == White {
		return -1
	}
	return 1
}
