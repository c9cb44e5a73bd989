package battleship

import (
	"errors"
	"testing"

	cerr "github.com/saeidalz13/battleship-ai/internal/error"
)

func TestConfigValidate(t *testing.T) {
	valid := DefaultConfig(GameDifficultyNormal)

	tests := []struct {
		name        string
		modify      func(c *Config)
		expectedErr error
	}{
		{name: "default", modify: func(c *Config) {}},
		{name: "hard", modify: func(c *Config) { c.Difficulty = GameDifficultyHard }},
		{name: "difficulty too high", modify: func(c *Config) { c.Difficulty = 3 }, expectedErr: cerr.ErrInvalidConfig},
		{name: "negative difficulty", modify: func(c *Config) { c.Difficulty = -1 }, expectedErr: cerr.ErrInvalidConfig},
		{name: "zero width", modify: func(c *Config) { c.GridWidth = 0 }, expectedErr: cerr.ErrInvalidConfig},
		{name: "no ships", modify: func(c *Config) { c.ShipSizes = []int{} }, expectedErr: cerr.ErrInvalidConfig},
		{name: "zero sized ship", modify: func(c *Config) { c.ShipSizes = []int{3, 0} }, expectedErr: cerr.ErrInvalidConfig},
		{name: "ship longer than grid", modify: func(c *Config) { c.ShipSizes = []int{11} }, expectedErr: cerr.ErrInvalidConfig},
		{name: "too many cells", modify: func(c *Config) {
			c.GridWidth, c.GridHeight = 2, 2
			c.ShipSizes = []int{2, 2, 1}
		}, expectedErr: cerr.ErrInvalidConfig},
		{name: "negative treasures", modify: func(c *Config) { c.TreasureCount = -1 }, expectedErr: cerr.ErrInvalidConfig},
		{name: "no treasures", modify: func(c *Config) { c.TreasureCount = 0 }},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := valid
			cfg.ShipSizes = append([]int(nil), valid.ShipSizes...)
			test.modify(&cfg)

			err := cfg.Validate()
			if test.expectedErr == nil && err != nil {
				t.Fatalf("expected no error, got: %v", err)
			}
			if test.expectedErr != nil && !errors.Is(err, test.expectedErr) {
				t.Fatalf("expected: %v\tgot: %v", test.expectedErr, err)
			}
		})
	}
}
