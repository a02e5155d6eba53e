package sim

import "image/color"

// Materials holds the tunable constants every rule reads through its
// Neighborhood.
type Materials struct {
	// Liquid model.
	MaxLiquid      float64
	MinLiquid      float64
	MaxCompression float64
	MinFlow        float64
	MaxFlow        float64
	FlowSpeed      float64
	SettleSteps    int
	WaterLight     color.NRGBA
	WaterDark      color.NRGBA

	SandStaleAfter int
	SandLight      color.NRGBA
	SandDark       color.NRGBA

	// Particle motion, in cells per second.
	Gravity float64
	Drag    float64

	FireBuoyancy     float64
	FireLifetime     float64
	FireSpawnChance  float64
	FireIgniteChance float64
	FireOffspringAge float64
	FireStart        color.NRGBA
	FireEnd          color.NRGBA

	Flammable          []color.NRGBA
	FlammableTolerance float64

	EmberLifeMin  float64
	EmberLifeMax  float64
	EmberInterval float64

	SnowFallSpeed float64
	SnowJitter    float64
}

var (
	// Wood is the default flammable static color.
	Wood = color.NRGBA{R: 101, G: 69, B: 27, A: 255}
	// Rock is the default static color.
	Rock = color.NRGBA{R: 94, G: 86, B: 77, A: 255}
)

// DefaultMaterials returns the standard rule constants.
func DefaultMaterials() Materials {
	return Materials{
		MaxLiquid:      1,
		MinLiquid:      0.005,
		MaxCompression: 0.25,
		MinFlow:        0.005,
		MaxFlow:        4,
		FlowSpeed:      1,
		SettleSteps:    10,
		WaterLight:     color.NRGBA{R: 81, G: 181, B: 233, A: 255},
		WaterDark:      color.NRGBA{R: 64, G: 167, B: 218, A: 255},

		SandStaleAfter: 3,
		SandLight:      color.NRGBA{R: 222, G: 205, B: 159, A: 255},
		SandDark:       color.NRGBA{R: 208, G: 191, B: 146, A: 255},

		Gravity: 50,
		Drag:    0.1,

		FireBuoyancy:     20,
		FireLifetime:     1,
		FireSpawnChance:  0.10,
		FireIgniteChance: 0.02,
		FireOffspringAge: 0.3,
		FireStart:        RGBAf(1, 0.7, 0.3, 1),
		FireEnd:          RGBAf(0.7, 0.7, 0, 0),

		Flammable:          []color.NRGBA{Wood},
		FlammableTolerance: 0.05,

		EmberLifeMin:  1,
		EmberLifeMax:  10,
		EmberInterval: 0.4,

		SnowFallSpeed: 10,
		SnowJitter:    0.3,
	}
}

// IsFlammable reports whether a static color catches fire.
func (m *Materials) IsFlammable(c color.NRGBA) bool {
	if c.A < 26 {
		return false
	}
	for _, f := range m.Flammable {
		if ApproxEqual(c, f, m.FlammableTolerance) {
			return true
		}
	}
	return false
}

// verticalLevel returns how much of sum the lower of two stacked liquid
// cells holds once they equalize under compression.
func (m *Materials) verticalLevel(sum float64) float64 {
	switch {
	case sum <= m.MaxLiquid:
		return m.MaxLiquid
	case sum < 2*m.MaxLiquid+m.MaxCompression:
		return (m.MaxLiquid*m.MaxLiquid + sum*m.MaxCompression) / (m.MaxLiquid + m.MaxCompression)
	default:
		return (sum + m.MaxCompression) / 2
	}
}
