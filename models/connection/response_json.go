package connection

import (
	mb "github.com/saeidalz13/battleship-ai/models/battleship"
)

type RespSessionId struct {
	SessionID string `json:"session_id"`
}

type RespCreateGame struct {
	GameUuid   string       `json:"game_uuid"`
	Difficulty int          `json:"difficulty"`
	GridWidth  int          `json:"grid_width"`
	GridHeight int          `json:"grid_height"`
	ShipSizes  []int        `json:"ship_sizes"`
	Placement  mb.Placement `json:"placement"`
	Status     mb.Status    `json:"status"`
}

type RespPlacement struct {
	Placement mb.Placement `json:"placement"`

	// Length of the next ship to place, 0 when all ships are placed
	NextShipLength int       `json:"next_ship_length"`
	Status         mb.Status `json:"status"`
}

type RespFire struct {
	Report mb.ShotReport `json:"report"`
	Status mb.Status     `json:"status"`
}

type RespEndGame struct {
	Winner    string    `json:"winner"`
	PlayerWon bool      `json:"player_won"`
	Status    mb.Status `json:"status"`
}

type RespShip struct {
	Origin     mb.Position `json:"origin"`
	Length     int         `json:"length"`
	IsSideways bool        `json:"is_sideways"`
	Destroyed  bool        `json:"destroyed"`
}

type RespDebug struct {
	Active bool `json:"active"`

	// Only filled while debug mode is active
	ComputerShips []RespShip `json:"computer_ships,omitempty"`
}

type RespGameStatus struct {
	GameUuid          string    `json:"game_uuid"`
	State             string    `json:"state"`
	Winner            string    `json:"winner"`
	CurrentShipLength int       `json:"current_ship_length"`
	DebugActive       bool      `json:"debug_active"`
	Status            mb.Status `json:"status"`
}

type RespErr struct {
	ErrorDetails string `json:"error_details,omitempty"`
	Message      string `json:"message,omitempty"`
}

func NewRespErr(errorDetails, message string) *RespErr {
	return &RespErr{
		ErrorDetails: errorDetails,
		Message:      message,
	}
}

func NewRespShips(ships []*mb.Ship) []RespShip {
	resp := make([]RespShip, 0, len(ships))
	for _, ship := range ships {
		resp = append(resp, RespShip{
			Origin:     ship.Origin,
			Length:     ship.Length,
			IsSideways: ship.IsSideways,
			Destroyed:  ship.IsDestroyed(),
		})
	}
	return resp
}
