package battleship

import (
	cerr "github.com/saeidalz13/battleship-ai/internal/error"
)

const (
	GameDifficultyEasy int = iota
	GameDifficultyNormal
	GameDifficultyHard
)

type ShotResult uint8

const (
	ShotResultMiss ShotResult = iota
	ShotResultHit
	ShotResultSunk
)

func (r ShotResult) String() string {
	switch r {
	case ShotResultMiss:
		return "miss"
	case ShotResultHit:
		return "hit"
	default:
		return "sunk"
	}
}

// Controller is the computer opponent. SelectMove must never return a
// cell that was already fired upon; NotifyResult feeds back the outcome
// of the move that was just applied to the target grid.
type Controller interface {
	SelectMove() (Position, error)
	NotifyResult(target Position, result ShotResult)
	Reset()
}

// NewController picks the AI variant for the given difficulty. The
// controller reads target, which is the grid it fires at.
func NewController(difficulty int, target *SelectionGrid, rnd Random) (Controller, error) {
	switch difficulty {
	case GameDifficultyEasy:
		return NewRandomSearch(target, rnd), nil
	case GameDifficultyNormal:
		return NewHeuristicSearch(target, rnd, false), nil
	case GameDifficultyHard:
		return NewHeuristicSearch(target, rnd, true), nil
	default:
		return nil, cerr.ErrInvalidGameDifficulty(difficulty)
	}
}

func allCells(grid *SelectionGrid) *cellSet {
	set := newCellSet(grid.Width() * grid.Height())
	for x := 0; x < grid.Width(); x++ {
		for y := 0; y < grid.Height(); y++ {
			set.Add(Position{X: x, Y: y})
		}
	}
	return set
}
