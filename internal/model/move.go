package model

type Move struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

func (m Move) String() string {
	return m.From.String() + m.To.String()
}

// Ply is one applied move as recorded in the game history.
type Ply struct {
	Piece         Piece    `json:"piece"`
	From          Position `json:"from"`
	To            Position `json:"to"`
	CapturedPiece *Piece   `json:"capturedPiece"`
}

// Activation is the payload of an activate request: the square the player
// clicked.
type Activation struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// MatchFoundEvent is pushed to a queued player once paired.
type MatchFoundEvent struct {
	GameID string `json:"gameId"`
	Color  Color  `json:"color"`
}
