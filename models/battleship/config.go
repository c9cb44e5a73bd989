package battleship

import (
	cerr "github.com/saeidalz13/battleship-ai/internal/error"
)

type Config struct {
	Difficulty    int
	ShipSizes     []int
	GridWidth     int
	GridHeight    int
	TreasureCount int
}

func DefaultConfig(difficulty int) Config {
	return Config{
		Difficulty:    difficulty,
		ShipSizes:     append([]int(nil), DefaultShipSizes...),
		GridWidth:     GridWidth,
		GridHeight:    GridHeight,
		TreasureCount: DefaultTreasureCount,
	}
}

// Validate catches configuration errors before any grid is built, so
// they never surface in the middle of a game.
func (c Config) Validate() error {
	if c.Difficulty < GameDifficultyEasy || c.Difficulty > GameDifficultyHard {
		return cerr.ErrInvalidGameDifficulty(c.Difficulty)
	}
	if c.GridWidth <= 0 || c.GridHeight <= 0 {
		return cerr.ErrInvalidGridSize(c.GridWidth, c.GridHeight)
	}
	if len(c.ShipSizes) == 0 {
		return cerr.ErrInvalidShipSizes("must not be empty")
	}
	if c.TreasureCount < 0 {
		return cerr.ErrInvalidTreasureCount(c.TreasureCount)
	}

	longest := max(c.GridWidth, c.GridHeight)
	total := 0
	for _, size := range c.ShipSizes {
		if size < 1 || size > longest {
			return cerr.ErrInvalidShipSizes("must be between 1 and the longest grid side")
		}
		total += size
	}
	if total > c.GridWidth*c.GridHeight {
		return cerr.ErrInvalidShipSizes("cover more cells than the grid has")
	}
	return nil
}
