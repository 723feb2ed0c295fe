package engine

// Direction is one of the four cardinal facings.
// The declaration order is the clockwise cycle used for rotation.
type Direction uint8

const (
	North Direction = iota
	East
	South
	West
)

// NoDirection marks the absence of a direction (e.g. an unbroken brick).
const NoDirection Direction = 255

// String returns the single-letter name of the direction.
func (d Direction) String() string {
	switch d {
	case North:
		return "N"
	case East:
		return "E"
	case South:
		return "S"
	case West:
		return "W"
	case NoDirection:
		return "-"
	default:
		return "?"
	}
}

// Clockwise returns the next direction in [N, E, S, W].
func (d Direction) Clockwise() Direction {
	return (d + 1) % 4
}

// CounterClockwise returns the previous direction in [N, E, S, W].
func (d Direction) CounterClockwise() Direction {
	return (d + 3) % 4
}

// Opposite returns the direction rotated by 180 degrees.
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

// Offset returns the (row, column) offset of one step in this direction.
// North decreases the row, West decreases the column.
func (d Direction) Offset() (dx, dy int) {
	switch d {
	case North:
		return -1, 0
	case South:
		return 1, 0
	case West:
		return 0, -1
	case East:
		return 0, 1
	default:
		return 0, 0
	}
}

// MoveDelta returns the (dx, dy) pair that Entity.Move expects for a step in
// this direction. Move inverts the row axis, so North is (1, 0).
func (d Direction) MoveDelta() (dx, dy int) {
	switch d {
	case North:
		return 1, 0
	case South:
		return -1, 0
	case East:
		return 0, 1
	case West:
		return 0, -1
	default:
		return 0, 0
	}
}

// Rotation is a facing command: an absolute direction or a relative turn.
type Rotation uint8

const (
	FaceNorth Rotation = iota
	FaceEast
	FaceSouth
	FaceWest
	TurnClockwise
	TurnCounterClockwise
)

// Apply returns the facing that results from applying r to d.
func (r Rotation) Apply(d Direction) Direction {
	switch r {
	case FaceNorth, FaceEast, FaceSouth, FaceWest:
		return Direction(r)
	case TurnClockwise:
		return d.Clockwise()
	case TurnCounterClockwise:
		return d.CounterClockwise()
	default:
		return d
	}
}
