package sim

import (
	"image/color"
	"math"
)

// Water is a compressible liquid cell. Mass moves between cells through a
// double buffer: liquid is the amount at the start of the cell's turn and
// newLiquid collects every transfer made during the step, by this cell and
// by its neighbors.
type Water struct {
	cellState
	liquid      float64
	newLiquid   float64
	settled     bool
	settleCount int
}

func (w *Water) Kind() Kind { return KindWater }

// Amount returns the committed liquid, including transfers made this step.
func (w *Water) Amount() float64 { return w.newLiquid }

// Settled reports whether the cell stopped exchanging liquid.
func (w *Water) Settled() bool { return w.settled }

func (w *Water) unsettle() {
	w.settled = false
	w.settleCount = 0
}

func (w *Water) Update(n Neighborhood) Result {
	m := n.Materials()
	w.liquid = w.newLiquid
	if w.liquid < m.MinLiquid {
		w.liquid, w.newLiquid = 0, 0
		return Result{Die: DieClear, Wake: CardinalSet}
	}
	if w.settled {
		if n.ExistsAt(South) {
			return Result{Stale: true}
		}
		w.unsettle()
	}

	var res Result
	start := w.liquid
	remaining := w.liquid

	flows := [4]Direction{South, West, East, North}
	for _, d := range flows {
		dest, open := waterTarget(n, d)
		if !open {
			continue
		}
		level := 0.0
		if dest != nil {
			level = dest.liquid
		}
		var flow float64
		switch d {
		case South:
			flow = m.verticalLevel(remaining+level) - level
		case West:
			flow = (remaining - level) / 4
		case East:
			flow = (remaining - level) / 3
		case North:
			flow = remaining - m.verticalLevel(remaining+level)
		}
		remaining -= w.transfer(n, m, d, dest, flow, remaining, &res)
		if remaining < m.MinLiquid {
			break
		}
	}

	if start == remaining {
		w.settleCount++
		if w.settleCount >= m.SettleSteps {
			w.settled = true
		}
	} else {
		w.unsettle()
	}

	res.Recolor = true
	res.Color = w.tint(m)
	res.Stale = w.settled
	return res
}

// waterTarget classifies a neighbor slot for flow. open is false for solids
// and boundaries; dest is nil for an empty slot.
func waterTarget(n Neighborhood, d Direction) (dest *Water, open bool) {
	if !n.ExistsAt(d) {
		return nil, true
	}
	if other, ok := n.CellAt(d).(*Water); ok {
		return other, true
	}
	return nil, false
}

// transfer moves a clamped flow into the neighbor and returns how much left
// this cell. Empty neighbors get a new water cell unless the flow is too
// small to survive its first turn.
func (w *Water) transfer(n Neighborhood, m *Materials, d Direction, dest *Water, flow, remaining float64, res *Result) float64 {
	if flow > m.MinFlow {
		flow *= m.FlowSpeed
	}
	flow = math.Max(flow, 0)
	if limit := math.Min(m.MaxFlow, remaining); flow > limit {
		flow = limit
	}
	if flow <= 0 {
		return 0
	}
	if dest == nil {
		if flow < m.MinLiquid {
			return 0
		}
		res.Edits = append(res.Edits, Edit{Op: EditSpawn, Dir: d, Cell: n.Pool().Water(flow)})
	} else {
		dest.newLiquid += flow
		dest.unsettle()
		res.Wake = res.Wake.With(d)
	}
	w.newLiquid -= flow
	return flow
}

func (w *Water) tint(m *Materials) color.NRGBA {
	fill := w.newLiquid / (m.MaxLiquid + m.MaxCompression)
	c := Lerp(m.WaterLight, m.WaterDark, fill)
	if w.newLiquid < m.MaxLiquid {
		c.A = unit8(0.35 + 0.65*w.newLiquid/m.MaxLiquid)
	}
	return c
}
