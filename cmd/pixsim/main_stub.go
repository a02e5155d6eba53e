//go:build !ebiten

package main

import "log"

func main() {
	log.Fatal("the GUI build of pixsim requires the ebiten build tag; re-run with `go run -tags ebiten ./cmd/pixsim`, or use ./cmd/pixsim-term in a terminal")
}
