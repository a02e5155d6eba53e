package sim

import "errors"

var (
	// ErrOutOfBounds reports a local or global position outside the grid.
	ErrOutOfBounds = errors.New("sim: position out of bounds")
	// ErrOccupied reports a placement onto a slot that already holds a cell.
	ErrOccupied = errors.New("sim: slot occupied")
	// ErrEmpty reports a removal from a slot that holds no cell.
	ErrEmpty = errors.New("sim: slot empty")
	// ErrPlaced reports an attempt to place a cell that already lives in a chunk.
	ErrPlaced = errors.New("sim: cell already placed")
	// ErrInvalidConfig reports layout values that cannot build a grid.
	ErrInvalidConfig = errors.New("sim: invalid config")
	// ErrUnknownKind reports a material name or kind with no constructor.
	ErrUnknownKind = errors.New("sim: unknown material")
)
