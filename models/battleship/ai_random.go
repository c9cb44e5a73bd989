package battleship

import (
	"github.com/charmbracelet/log"
	cerr "github.com/saeidalz13/battleship-ai/internal/error"
)

// RandomSearch fires at a uniformly chosen untried cell every turn.
type RandomSearch struct {
	target  *SelectionGrid
	untried *cellSet
	rnd     Random
}

var _ Controller = (*RandomSearch)(nil)

func NewRandomSearch(target *SelectionGrid, rnd Random) *RandomSearch {
	return &RandomSearch{
		target:  target,
		untried: allCells(target),
		rnd:     rnd,
	}
}

func (r *RandomSearch) SelectMove() (Position, error) {
	for {
		p, ok := r.untried.Draw(r.rnd)
		if !ok {
			return Position{}, cerr.ErrNoLegalMove
		}
		if r.target.IsPositionMarked(p) {
			continue
		}

		log.Debug("ai [RandomSearch]", "x", p.X, "y", p.Y, "untried", r.untried.Len())
		return p, nil
	}
}

func (r *RandomSearch) NotifyResult(Position, ShotResult) {}

func (r *RandomSearch) Reset() {
	r.untried = allCells(r.target)
}

func (r *RandomSearch) Untried() int {
	return r.untried.Len()
}
