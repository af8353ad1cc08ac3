package game

// Color denotes the occupancy of an intersection, or the color of a player.
type Color int8

const (
	ColorNone Color = iota
	ColorBlack
	ColorWhite
)

// Other returns the opposing color. ColorNone has no opponent and is
// returned unchanged.
func (c Color) Other() Color {
	switch c {
	case ColorBlack:
		return ColorWhite
	case ColorWhite:
		return ColorBlack
	default:
		return ColorNone
	}
}

func (c Color) String() string {
	switch c {
	case ColorBlack:
		return "Black"
	case ColorWhite:
		return "White"
	default:
		return "None"
	}
}

// PositionHash identifies a whole-board stone configuration. Two positions
// with the same stones on the same intersections produce the same hash.
type PositionHash uint64

// StoneGroupState is the life-and-death verdict assigned to a stone group
// during scoring. It is set by an external dead-stone-marking step, never by
// the core itself.
type StoneGroupState int8

const (
	GroupUndefined StoneGroupState = iota
	GroupAlive
	GroupDead
	GroupSeki
)

func (s StoneGroupState) String() string {
	switch s {
	case GroupAlive:
		return "Alive"
	case GroupDead:
		return "Dead"
	case GroupSeki:
		return "Seki"
	default:
		return "Undefined"
	}
}
