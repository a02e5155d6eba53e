package sim

// Sand falls straight down, slides diagonally when blocked and goes stale
// after a few steps without room to move.
type Sand struct {
	cellState
	blocked int
}

func (s *Sand) Kind() Kind { return KindSand }

func (s *Sand) Update(n Neighborhood) Result {
	if !n.ExistsAt(South) {
		s.blocked = 0
		return Result{Move: South}
	}
	first, second := SouthWest, SouthEast
	if n.Rand().Bool() {
		first, second = second, first
	}
	for _, d := range [2]Direction{first, second} {
		if !n.ExistsAt(d) {
			s.blocked = 0
			return Result{Move: d}
		}
	}
	s.blocked++
	return Result{Stale: s.blocked >= n.Materials().SandStaleAfter}
}
