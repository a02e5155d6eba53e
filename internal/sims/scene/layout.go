package scene

import (
	"strconv"

	"pixsim/internal/sim"
)

// LayoutFromMap applies the shared world keys (chunk_w, chunk_h, chunks_x,
// chunks_y, tps, ppu) of a flag-style map to cfg. Invalid values are
// ignored.
func LayoutFromMap(cfg sim.Config, m map[string]string) sim.Config {
	ints := []struct {
		key string
		dst *int
	}{
		{"chunk_w", &cfg.ChunkW},
		{"chunk_h", &cfg.ChunkH},
		{"chunks_x", &cfg.ChunksX},
		{"chunks_y", &cfg.ChunksY},
		{"tps", &cfg.TPS},
	}
	for _, f := range ints {
		if v, ok := m[f.key]; ok {
			if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
				*f.dst = parsed
			}
		}
	}
	if v, ok := m["ppu"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			cfg.PixelsPerUnit = parsed
		}
	}
	return cfg
}

// SeedFromMap returns the "seed" key, or def.
func SeedFromMap(m map[string]string, def int64) int64 {
	if v, ok := m["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			return parsed
		}
	}
	return def
}

// FloatFromMap returns a non-negative float key, or def.
func FloatFromMap(m map[string]string, key string, def float64) float64 {
	if v, ok := m[key]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			return parsed
		}
	}
	return def
}

// BoolFromMap returns a boolean key, or def.
func BoolFromMap(m map[string]string, key string, def bool) bool {
	if v, ok := m[key]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}
