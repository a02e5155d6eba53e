package scene

import (
	"image"
	"image/color"

	"pixsim/internal/sim"
)

// Tool is what a pointer click does to the world.
type Tool int

const (
	ToolSand Tool = iota
	ToolWater
	ToolRock
	ToolWood
	ToolFire
	ToolSnow
	ToolSpray
	ToolBomb
	toolCount
)

var toolNames = [...]string{"sand", "water", "rock", "wood", "fire", "snow", "spray", "bomb"}

func (t Tool) String() string {
	if t < 0 || t >= toolCount {
		return "unknown"
	}
	return toolNames[t]
}

// Tools lists every tool in hotkey order.
func Tools() []Tool {
	out := make([]Tool, toolCount)
	for i := range out {
		out[i] = Tool(i)
	}
	return out
}

// SprayColor is the default color of sprayed particles.
var SprayColor = color.NRGBA{R: 230, G: 153, B: 77, A: 255}

// Apply uses the tool at p with the given brush radius and returns how many
// cells it created.
func (t Tool) Apply(w *sim.World, p image.Point, radius int) int {
	switch t {
	case ToolSand:
		return Paint(w, sim.KindSand, p, radius)
	case ToolWater:
		return Paint(w, sim.KindWater, p, radius)
	case ToolRock:
		return PaintStatic(w, sim.Rock, p, radius)
	case ToolWood:
		return PaintStatic(w, sim.Wood, p, radius)
	case ToolFire:
		return Flame(w, p)
	case ToolSnow:
		return Paint(w, sim.KindSnow, p, radius)
	case ToolSpray:
		if Spray(w, p, SprayColor, 20) {
			return 1
		}
		return 0
	case ToolBomb:
		return Explode(w, p, 4*radius+4)
	}
	return 0
}

// Continuous reports whether the tool keeps applying while the button is held.
func (t Tool) Continuous() bool { return t != ToolBomb }
