package sim

// Ember is burning wood. It throws fire into its open cardinal neighbors
// every EmberInterval seconds and burns away at a random time.
type Ember struct {
	cellState
	age       float64
	nextBurst float64
	dieAt     float64
}

func (e *Ember) Kind() Kind { return KindEmber }

func (e *Ember) Update(n Neighborhood) Result {
	m := n.Materials()
	e.age += n.DT()
	if e.age >= e.dieAt {
		return Result{Die: DieClear}
	}
	var res Result
	if e.age >= e.nextBurst {
		e.nextBurst += m.EmberInterval
		for _, d := range Cardinals {
			if !n.ExistsAt(d) {
				res.Edits = append(res.Edits, Edit{Op: EditSpawn, Dir: d, Cell: n.Pool().Fire()})
			}
		}
	}
	return res
}
