package scene

import (
	"strconv"

	"pixsim/internal/core"
	"pixsim/internal/sim"
)

type tunable struct {
	group string
	ctrl  core.ParameterControl
	f     *float64
	i     *int
}

func floatParam(group, key, label string, v *float64, step, lo, hi float64) tunable {
	return tunable{group: group, f: v, ctrl: core.ParameterControl{
		Key: key, Label: label, Type: core.ParamTypeFloat,
		Step: step, Min: lo, Max: hi, HasMin: true, HasMax: true,
	}}
}

func intParam(group, key, label string, v *int, lo, hi int) tunable {
	return tunable{group: group, i: v, ctrl: core.ParameterControl{
		Key: key, Label: label, Type: core.ParamTypeInt,
		Step: 1, Min: float64(lo), Max: float64(hi), HasMin: true, HasMax: true,
	}}
}

// tunables points into the live rule constants, so edits apply on the next
// step.
func tunables(m *sim.Materials) []tunable {
	return []tunable{
		floatParam("Water", "flow_speed", "Flow speed", &m.FlowSpeed, 0.05, 0.05, 1),
		intParam("Water", "settle_steps", "Settle steps", &m.SettleSteps, 1, 60),
		intParam("Sand", "sand_stale_after", "Stale after", &m.SandStaleAfter, 1, 30),
		floatParam("Particle", "gravity", "Gravity", &m.Gravity, 5, 0, 200),
		floatParam("Fire", "fire_spawn_chance", "Spawn chance", &m.FireSpawnChance, 0.01, 0, 1),
		floatParam("Fire", "fire_ignite_chance", "Ignite chance", &m.FireIgniteChance, 0.01, 0, 1),
		floatParam("Fire", "fire_buoyancy", "Buoyancy", &m.FireBuoyancy, 1, 0, 60),
		floatParam("Snow", "snow_fall_speed", "Fall speed", &m.SnowFallSpeed, 1, 1, 60),
		floatParam("Snow", "snow_jitter", "Jitter", &m.SnowJitter, 0.05, 0, 1),
	}
}

func (b *Base) find(key string) (tunable, bool) {
	for _, t := range tunables(b.world.Materials()) {
		if t.ctrl.Key == key {
			return t, true
		}
	}
	return tunable{}, false
}

// Parameters snapshots the tunable rule constants grouped by material.
func (b *Base) Parameters() core.ParameterSnapshot {
	var snap core.ParameterSnapshot
	for _, t := range tunables(b.world.Materials()) {
		n := len(snap.Groups)
		if n == 0 || snap.Groups[n-1].Name != t.group {
			snap.Groups = append(snap.Groups, core.ParameterGroup{Name: t.group})
			n++
		}
		p := core.Parameter{Key: t.ctrl.Key, Label: t.ctrl.Label, Type: t.ctrl.Type}
		if t.f != nil {
			p.Value = strconv.FormatFloat(*t.f, 'g', -1, 64)
		} else {
			p.Value = strconv.Itoa(*t.i)
		}
		snap.Groups[n-1].Params = append(snap.Groups[n-1].Params, p)
	}
	return snap
}

// ParameterControls lists the HUD controls.
func (b *Base) ParameterControls() []core.ParameterControl {
	ts := tunables(b.world.Materials())
	out := make([]core.ParameterControl, len(ts))
	for i, t := range ts {
		out[i] = t.ctrl
	}
	return out
}

func (b *Base) SetFloatParameter(key string, value float64) bool {
	t, ok := b.find(key)
	if !ok || t.f == nil || value < t.ctrl.Min || value > t.ctrl.Max {
		return false
	}
	*t.f = value
	return true
}

func (b *Base) SetIntParameter(key string, value int) bool {
	t, ok := b.find(key)
	if !ok || t.i == nil || float64(value) < t.ctrl.Min || float64(value) > t.ctrl.Max {
		return false
	}
	*t.i = value
	return true
}
