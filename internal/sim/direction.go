package sim

import "image"

// Direction is a relative step to one of the eight neighboring slots.
// Y grows upward, so North is +1 on the Y axis.
type Direction uint8

const (
	Stay Direction = iota
	North
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
)

var offsets = [...]image.Point{
	Stay:      {0, 0},
	North:     {0, 1},
	NorthEast: {1, 1},
	East:      {1, 0},
	SouthEast: {1, -1},
	South:     {0, -1},
	SouthWest: {-1, -1},
	West:      {-1, 0},
	NorthWest: {-1, 1},
}

var directionNames = [...]string{"stay", "n", "ne", "e", "se", "s", "sw", "w", "nw"}

// Directions lists the eight neighbor directions clockwise from North.
var Directions = [8]Direction{North, NorthEast, East, SouthEast, South, SouthWest, West, NorthWest}

// Cardinals lists the four axis-aligned directions.
var Cardinals = [4]Direction{North, East, South, West}

// Offset returns the grid delta of a single step in d.
func (d Direction) Offset() image.Point {
	if int(d) >= len(offsets) {
		return image.Point{}
	}
	return offsets[d]
}

// Opposite returns the direction pointing back.
func (d Direction) Opposite() Direction {
	if d == Stay || int(d) >= len(offsets) {
		return Stay
	}
	return Direction((int(d)-1+4)%8 + 1)
}

func (d Direction) String() string {
	if int(d) >= len(directionNames) {
		return "invalid"
	}
	return directionNames[d]
}

// DirectionOf maps the signs of dx and dy onto a direction.
func DirectionOf(dx, dy int) Direction {
	sx, sy := sign(dx), sign(dy)
	for i, o := range offsets {
		if o.X == sx && o.Y == sy {
			return Direction(i)
		}
	}
	return Stay
}

// DirSet is a small bit set of directions.
type DirSet uint16

// CardinalSet holds N, E, S and W.
const CardinalSet = DirSet(1<<North | 1<<East | 1<<South | 1<<West)

// With returns s plus d.
func (s DirSet) With(d Direction) DirSet { return s | 1<<d }

// Has reports whether d is in s.
func (s DirSet) Has(d Direction) bool { return s&(1<<d) != 0 }

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}

// floorDiv divides rounding toward negative infinity so that negative global
// coordinates land in the chunk to the left/below instead of chunk zero.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	m := a % b
	if m != 0 && ((m < 0) != (b < 0)) {
		m += b
	}
	return m
}
