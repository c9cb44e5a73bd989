package battleship

import "github.com/dolthub/swiss"

// cellSet is an unordered set of positions supporting O(1) insert,
// removal, membership and uniform random draw. cells holds the members
// and index maps a member to its slot in cells.
type cellSet struct {
	cells []Position
	index *swiss.Map[Position, int]
}

func newCellSet(sizeHint int) *cellSet {
	return &cellSet{
		cells: make([]Position, 0, sizeHint),
		index: swiss.NewMap[Position, int](uint32(sizeHint)),
	}
}

func (s *cellSet) Len() int {
	return len(s.cells)
}

func (s *cellSet) Has(p Position) bool {
	return s.index.Has(p)
}

func (s *cellSet) Add(p Position) {
	if s.index.Has(p) {
		return
	}
	s.index.Put(p, len(s.cells))
	s.cells = append(s.cells, p)
}

func (s *cellSet) Remove(p Position) bool {
	i, ok := s.index.Get(p)
	if !ok {
		return false
	}

	last := len(s.cells) - 1
	if i != last {
		moved := s.cells[last]
		s.cells[i] = moved
		s.index.Put(moved, i)
	}
	s.cells = s.cells[:last]
	s.index.Delete(p)
	return true
}

func (s *cellSet) At(i int) Position {
	return s.cells[i]
}

// Draw removes and returns a uniformly chosen member.
func (s *cellSet) Draw(rnd Random) (Position, bool) {
	if len(s.cells) == 0 {
		return Position{}, false
	}
	p := s.cells[rnd.Intn(len(s.cells))]
	s.Remove(p)
	return p, true
}

func (s *cellSet) Clear() {
	s.cells = s.cells[:0]
	s.index.Clear()
}

// Members in their current slot order; the slice is a copy.
func (s *cellSet) Members() []Position {
	return append([]Position(nil), s.cells...)
}
