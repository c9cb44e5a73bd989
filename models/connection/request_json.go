package connection

type ReqCreateGame struct {
	GameDifficulty uint8 `json:"game_difficulty"`
}

// Grid coordinates used by placement and fire requests
type ReqCoordinates struct {
	X int `json:"x"`
	Y int `json:"y"`
}
