package model

type Player struct {
	ID string
}

type ClientPlayer struct {
	ID    string `json:"name"`
	Color Color  `json:"color"`
}

type Players struct {
	White ClientPlayer `json:"white"`
	Black ClientPlayer `json:"black"`
}

func (p Players) seated(playerID string) []Color {
	colors := []Color{}
	if playerID == "" {
		return colors
	}
	if p.White.ID == playerID {
		colors = append(colors, White)
	}
	if p.Black.ID == playerID {
		colors = append(colors, Black)
	}
	return colors
}
