package sim

// Snow drifts down slowly with a random sideways wobble and shimmers
// between grays. When it cannot fall any further it bakes into gray static,
// which fire melts.
type Snow struct {
	cellState
	fall float64
}

func (s *Snow) Kind() Kind { return KindSnow }

func (s *Snow) Update(n Neighborhood) Result {
	m := n.Materials()
	rng := n.Rand()
	g := rng.Range(0.5, 1)
	res := Result{Recolor: true, Color: RGBAf(g, g, g, 1)}

	s.fall += m.SnowFallSpeed * n.DT()
	if s.fall < 1 {
		return res
	}
	s.fall -= 1

	d := South
	switch r := rng.Float64(); {
	case r < m.SnowJitter/2:
		d = SouthWest
	case r < m.SnowJitter:
		d = SouthEast
	}
	if !n.ExistsAt(d) {
		res.Move = d
		return res
	}
	if d != South && !n.ExistsAt(South) {
		res.Move = South
		return res
	}
	slide := [2]Direction{SouthWest, SouthEast}
	if rng.Bool() {
		slide[0], slide[1] = slide[1], slide[0]
	}
	for _, alt := range slide {
		if alt != d && !n.ExistsAt(alt) {
			res.Move = alt
			return res
		}
	}
	res.Die = DieBake
	return res
}
