package sim

// Static is background: a colored slot that never updates.
type Static struct {
	cellState
}

func (s *Static) Kind() Kind { return KindStatic }

func (s *Static) Update(Neighborhood) Result { return Result{Stale: true} }
