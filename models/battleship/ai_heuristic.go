package battleship

import (
	"slices"

	"github.com/charmbracelet/log"
	cerr "github.com/saeidalz13/battleship-ai/internal/error"
)

type SearchMode uint8

const (
	SearchModeHunt SearchMode = iota
	SearchModeTarget
)

func (m SearchMode) String() string {
	if m == SearchModeTarget {
		return "target"
	}
	return "hunt"
}

var axes = [2]Position{{X: 1}, {Y: 1}}

// HeuristicSearch is a hunt/target searcher.
//
// In hunt mode it fires on the checkerboard cells ((x+y) even) first,
// which is enough to touch every ship of length two or more, and only
// then on the remaining cells. A hit that does not sink a ship switches
// it to target mode where candidates are the neighbours of the first
// unresolved hit, narrowed down to the two ends of the line once a
// second hit reveals the axis.
//
// The hard tuning prefers candidates that extend a line of hits and, in
// hunt mode, the cell with the most untried neighbours.
type HeuristicSearch struct {
	target *SelectionGrid
	rnd    Random

	preferLine   bool
	maximiseOpen bool

	untried *cellSet
	parity  *cellSet

	// Hits on ships that are not sunk yet, in the order they happened
	hits  []Position
	queue []Position
}

var _ Controller = (*HeuristicSearch)(nil)

func NewHeuristicSearch(target *SelectionGrid, rnd Random, hard bool) *HeuristicSearch {
	h := &HeuristicSearch{
		target:       target,
		rnd:          rnd,
		preferLine:   hard,
		maximiseOpen: hard,
	}
	h.Reset()
	return h
}

func (h *HeuristicSearch) Reset() {
	h.untried = allCells(h.target)
	h.parity = newCellSet(h.untried.Len()/2 + 1)
	for _, p := range h.untried.Members() {
		if (p.X+p.Y)%2 == 0 {
			h.parity.Add(p)
		}
	}
	h.hits = h.hits[:0]
	h.queue = h.queue[:0]
}

func (h *HeuristicSearch) Mode() SearchMode {
	if len(h.hits) > 0 {
		return SearchModeTarget
	}
	return SearchModeHunt
}

// Candidates currently queued in target mode.
func (h *HeuristicSearch) Queue() []Position {
	return append([]Position(nil), h.queue...)
}

func (h *HeuristicSearch) isOpen(p Position) bool {
	return h.untried.Has(p) && !h.target.IsPositionMarked(p)
}

func (h *HeuristicSearch) take(p Position) {
	h.untried.Remove(p)
	h.parity.Remove(p)
}

// SelectMove may discard several stale candidates before it settles on
// a move.
func (h *HeuristicSearch) SelectMove() (Position, error) {
	for {
		if p, ok := h.popCandidate(); ok {
			log.Debug("ai [HeuristicSearch]", "mode", SearchModeTarget, "x", p.X, "y", p.Y, "queued", len(h.queue))
			return p, nil
		}
		if len(h.hits) == 0 {
			break
		}

		h.queue = h.neighbourCandidates()
		if len(h.queue) == 0 {
			log.Debug("ai [HeuristicSearch] no candidates left around hits, back to hunting", "hits", len(h.hits))
			h.hits = h.hits[:0]
			break
		}
	}

	return h.hunt()
}

func (h *HeuristicSearch) popCandidate() (Position, bool) {
	for len(h.queue) > 0 {
		p := h.queue[0]
		h.queue = h.queue[1:]
		if !h.isOpen(p) {
			h.take(p)
			continue
		}
		h.take(p)
		return p, true
	}
	return Position{}, false
}

func (h *HeuristicSearch) hunt() (Position, error) {
	for {
		pool := h.parity
		if pool.Len() == 0 {
			pool = h.untried
		}
		if pool.Len() == 0 {
			return Position{}, cerr.ErrNoLegalMove
		}

		var p Position
		if h.maximiseOpen {
			p = h.mostOpen(pool)
		} else {
			p = pool.At(h.rnd.Intn(pool.Len()))
		}

		h.take(p)
		if h.target.IsPositionMarked(p) {
			continue
		}

		log.Debug("ai [HeuristicSearch]", "mode", SearchModeHunt, "x", p.X, "y", p.Y)
		return p, nil
	}
}

// Ties are broken by starting the scan at a random member.
func (h *HeuristicSearch) mostOpen(pool *cellSet) Position {
	n := pool.Len()
	start := h.rnd.Intn(n)

	best, bestScore := pool.At(start), -1
	for i := 0; i < n; i++ {
		p := pool.At((start + i) % n)
		score := 0
		for _, nb := range p.Neighbours() {
			if h.isOpen(nb) {
				score++
			}
		}
		if score > bestScore {
			best, bestScore = p, score
		}
	}
	return best
}

func (h *HeuristicSearch) NotifyResult(target Position, result ShotResult) {
	switch result {
	case ShotResultHit:
		h.hits = append(h.hits, target)

	case ShotResultSunk:
		h.dropSunkHits()

	default:
		return
	}

	h.queue = h.targetCandidates()
}

// Hits that belong to a destroyed ship are resolved and no longer guide
// the search.
func (h *HeuristicSearch) dropSunkHits() {
	kept := h.hits[:0]
	for _, p := range h.hits {
		if ship, ok := h.target.ShipAt(p); ok && ship.IsDestroyed() {
			continue
		}
		kept = append(kept, p)
	}
	h.hits = kept
}

func (h *HeuristicSearch) isHit(p Position) bool {
	return slices.Contains(h.hits, p)
}

func (h *HeuristicSearch) targetCandidates() []Position {
	if len(h.hits) == 0 {
		return nil
	}

	anchor := h.hits[0]
	if len(h.hits) == 1 {
		return h.orderedNeighbours(anchor)
	}

	for _, axis := range axes {
		lo, hi := anchor, anchor
		for h.isHit(lo.Sub(axis)) {
			lo = lo.Sub(axis)
		}
		for h.isHit(hi.Add(axis)) {
			hi = hi.Add(axis)
		}
		if lo == hi {
			continue
		}

		ends := make([]Position, 0, 2)
		for _, p := range [2]Position{lo.Sub(axis), hi.Add(axis)} {
			if h.isOpen(p) {
				ends = append(ends, p)
			}
		}
		if len(ends) > 0 {
			return ends
		}
	}

	return h.neighbourCandidates()
}

// Untried neighbours of a single hit. The hard tuning tries first the
// directions with the most room for a ship.
func (h *HeuristicSearch) orderedNeighbours(p Position) []Position {
	var candidates []Position
	for _, nb := range p.Neighbours() {
		if h.isOpen(nb) {
			candidates = append(candidates, nb)
		}
	}
	h.rnd.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	if h.maximiseOpen {
		slices.SortStableFunc(candidates, func(a, b Position) int {
			return h.room(p, b) - h.room(p, a)
		})
	}
	return candidates
}

// Number of consecutive open cells starting at next and moving away
// from the hit at from.
func (h *HeuristicSearch) room(from, next Position) int {
	step := next.Sub(from)
	n := 0
	for p := next; h.isOpen(p); p = p.Add(step) {
		n++
	}
	return n
}

// Untried neighbours of every unresolved hit.
func (h *HeuristicSearch) neighbourCandidates() []Position {
	var candidates []Position
	seen := make(map[Position]bool)
	for _, hit := range h.hits {
		for _, nb := range hit.Neighbours() {
			if seen[nb] || !h.isOpen(nb) {
				continue
			}
			seen[nb] = true
			candidates = append(candidates, nb)
		}
	}
	h.rnd.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	if h.preferLine {
		slices.SortStableFunc(candidates, func(a, b Position) int {
			return boolRank(h.formsLine(b)) - boolRank(h.formsLine(a))
		})
	}
	return candidates
}

// formsLine reports whether p extends two hits lying in a row in one
// of the four directions.
func (h *HeuristicSearch) formsLine(p Position) bool {
	for _, nb := range p.Neighbours() {
		step := nb.Sub(p)
		if h.isHit(nb) && h.isHit(nb.Add(step)) {
			return true
		}
	}
	return false
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}
