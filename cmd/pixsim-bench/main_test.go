package main

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestRunReturnsErrors(t *testing.T) {
	cases := []struct {
		name string
		o    options
		want string
	}{
		{"unknown scenario", options{sim: "no-such-sim", steps: 1, seeds: 1, workers: 1}, "unknown scenario"},
		{"missing telemetry", options{read: filepath.Join(t.TempDir(), "absent.csv")}, "reading telemetry"},
		{"missing config", options{sim: "cavern", configPath: filepath.Join(t.TempDir(), "absent.yaml")}, "loading config"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := run(tc.o)
			if err == nil {
				t.Fatal("run should fail")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q, want it to mention %q", err, tc.want)
			}
		})
	}
}
