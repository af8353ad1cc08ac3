package game

import "fmt"

// PointHandle is a stable index into a Board's point arena. Handles are
// assigned in scan order: row-major starting at A1, the lower-left corner.
type PointHandle int32

// NoPoint marks the absence of a point, e.g. the off-board neighbor of an
// edge point.
const NoPoint PointHandle = -1

// RegionID is a key into a Board's region table. IDs are never reused
// within the life of a board.
type RegionID int32

const noRegion RegionID = -1

type Direction int8

const (
	DirectionLeft Direction = iota
	DirectionRight
	DirectionUp
	DirectionDown
	// DirectionNext and DirectionPrevious iterate all points in scan order,
	// independent of the four spatial directions.
	DirectionNext
	DirectionPrevious
)

type Corner int8

const (
	CornerBottomLeft  Corner = iota // A1 on all board sizes
	CornerBottomRight               // T1 on a 19x19 board
	CornerTopLeft                   // A19 on a 19x19 board
	CornerTopRight                  // T19 on a 19x19 board
)

// Point is a single intersection. Its four neighbor links are fixed at
// board construction; only the stone state and region membership change.
type Point struct {
	Vertex Vertex
	Stone  Color
	Star   bool

	region RegionID
	left   PointHandle
	right  PointHandle
	above  PointHandle
	below  PointHandle
}

func (p *Point) HasStone() bool { return p.Stone != ColorNone }

// Region returns the ID of the region the point currently belongs to.
func (p *Point) Region() RegionID { return p.region }

// BoardSizes lists the supported board sizes.
var BoardSizes = [...]int{7, 9, 11, 13, 15, 17, 19}

type InvalidSizeError struct {
	Size int
}

func (e *InvalidSizeError) Error() string {
	return fmt.Sprintf("invalid board size %d", e.Size)
}

// IsValidBoardSize reports whether size is one of the supported sizes.
func IsValidBoardSize(size int) bool {
	for _, s := range BoardSizes {
		if s == size {
			return true
		}
	}
	return false
}

// Board owns the point arena and the live region partition for one board
// size. The size and the point topology are fixed at construction.
//
// A Board assumes single-writer access: one caller mutates it at a time.
type Board struct {
	size        int
	points      []Point
	regions     map[RegionID]*Region
	nextID      RegionID
	stars       []PointHandle
	hasher      *PositionHasher
	journal     *journal
	scoringMode bool
}

// NewBoard creates an empty board of the given size. The whole board starts
// out as a single empty region.
func NewBoard(size int) (*Board, error) {
	if !IsValidBoardSize(size) {
		return nil, &InvalidSizeError{Size: size}
	}
	b := &Board{
		size:    size,
		points:  make([]Point, size*size),
		regions: make(map[RegionID]*Region),
		hasher:  NewPositionHasher(size),
	}
	for row := 1; row <= size; row++ {
		for col := 1; col <= size; col++ {
			h := b.handleFor(col, row)
			p := &b.points[h]
			p.Vertex = Vertex{Col: col, Row: row}
			p.region = 0
			p.left, p.right, p.above, p.below = NoPoint, NoPoint, NoPoint, NoPoint
			if col > 1 {
				p.left = h - 1
			}
			if col < size {
				p.right = h + 1
			}
			if row < size {
				p.above = h + PointHandle(size)
			}
			if row > 1 {
				p.below = h - PointHandle(size)
			}
		}
	}
	for _, v := range starVertices(size) {
		h := b.PointAt(v)
		b.points[h].Star = true
		b.stars = append(b.stars, h)
	}
	all := &Region{id: 0, color: ColorNone, members: make([]PointHandle, len(b.points))}
	for i := range all.members {
		all.members[i] = PointHandle(i)
	}
	b.regions[0] = all
	b.nextID = 1
	return b, nil
}

func (b *Board) handleFor(col, row int) PointHandle {
	return PointHandle((row-1)*b.size + col - 1)
}

func (b *Board) Size() int { return b.size }

// NumPoints returns the number of intersections on the board.
func (b *Board) NumPoints() int { return len(b.points) }

// PointAt returns the handle for a vertex, or NoPoint if the vertex lies
// outside the board.
func (b *Board) PointAt(v Vertex) PointHandle {
	if v.Col < 1 || v.Col > b.size || v.Row < 1 || v.Row > b.size {
		return NoPoint
	}
	return b.handleFor(v.Col, v.Row)
}

// Point returns the point for a handle. The returned pointer stays valid
// for the life of the board.
func (b *Board) Point(h PointHandle) *Point {
	return &b.points[h]
}

// Neighbor returns the neighbor of h in the given direction, or NoPoint at
// the board edge (respectively at the end of the scan order for
// DirectionNext/DirectionPrevious).
func (b *Board) Neighbor(h PointHandle, d Direction) PointHandle {
	p := &b.points[h]
	switch d {
	case DirectionLeft:
		return p.left
	case DirectionRight:
		return p.right
	case DirectionUp:
		return p.above
	case DirectionDown:
		return p.below
	case DirectionNext:
		if int(h) == len(b.points)-1 {
			return NoPoint
		}
		return h + 1
	case DirectionPrevious:
		if h == 0 {
			return NoPoint
		}
		return h - 1
	}
	panic(fmt.Sprintf("invalid direction %d", d))
}

// Neighbors returns the on-board spatial neighbors of h (two to four
// points).
func (b *Board) Neighbors(h PointHandle) []PointHandle {
	out := make([]PointHandle, 0, 4)
	for _, n := range b.neighborList(h) {
		if n != NoPoint {
			out = append(out, n)
		}
	}
	return out
}

func (b *Board) neighborList(h PointHandle) [4]PointHandle {
	p := &b.points[h]
	return [4]PointHandle{p.left, p.right, p.above, p.below}
}

func (b *Board) CornerPoint(c Corner) PointHandle {
	switch c {
	case CornerBottomLeft:
		return b.handleFor(1, 1)
	case CornerBottomRight:
		return b.handleFor(b.size, 1)
	case CornerTopLeft:
		return b.handleFor(1, b.size)
	case CornerTopRight:
		return b.handleFor(b.size, b.size)
	}
	panic(fmt.Sprintf("invalid corner %d", c))
}

// StarPoints returns the handles of the star points for this board size, in
// no particular order.
func (b *Board) StarPoints() []PointHandle {
	out := make([]PointHandle, len(b.stars))
	copy(out, b.stars)
	return out
}

// Hash returns the Zobrist hash of the current stone configuration.
func (b *Board) Hash() PositionHash { return b.hasher.Current() }

// Hasher exposes the board's position hasher.
func (b *Board) Hasher() *PositionHasher { return b.hasher }

// RebuildHash recomputes the running hash from the full board. It is only
// needed after reconstructing a board from serialized state; during play the
// hash is maintained incrementally.
func (b *Board) RebuildHash() {
	b.hasher.reset()
	for i := range b.points {
		p := &b.points[i]
		if p.HasStone() {
			b.hasher.Toggle(PointHandle(i), p.Stone)
		}
	}
}

// PlaceStone puts a stone of color c on the empty point h, merging and
// splitting regions as needed. Misuse is an internal-invariant violation and
// panics; the move engine performs all legality checking.
func (b *Board) PlaceStone(h PointHandle, c Color) {
	if c == ColorNone {
		panic("PlaceStone with ColorNone")
	}
	if b.points[h].HasStone() {
		panic(fmt.Sprintf("PlaceStone on occupied point %s", b.points[h].Vertex))
	}
	b.setStoneState(h, c)
}

// RemoveStone clears the stone on point h, folding the point into the
// surrounding empty regions.
func (b *Board) RemoveStone(h PointHandle) {
	if !b.points[h].HasStone() {
		panic(fmt.Sprintf("RemoveStone on empty point %s", b.points[h].Vertex))
	}
	b.setStoneState(h, ColorNone)
}

// SetupStone places, or replaces, a stone outside of normal play, e.g. when
// editing a position. The same region merge/split machinery as for played
// stones applies; no legality rules do.
func (b *Board) SetupStone(h PointHandle, c Color) error {
	if c == ColorNone {
		return fmt.Errorf("setup stone needs a color, use RemoveSetupStone to clear")
	}
	b.setStoneState(h, c)
	return nil
}

// RemoveSetupStone erases a stone placed by SetupStone (or by play).
func (b *Board) RemoveSetupStone(h PointHandle) error {
	if !b.points[h].HasStone() {
		return fmt.Errorf("no stone at %s", b.points[h].Vertex)
	}
	b.setStoneState(h, ColorNone)
	return nil
}

// SetScoringMode switches the board's scoring mode. While enabled the board
// is assumed static and region adjacency is cached aggressively. Enabling
// resets territory markings; disabling additionally discards the
// life-and-death markings.
func (b *Board) SetScoringMode(enabled bool) {
	b.scoringMode = enabled
	for _, r := range b.regions {
		r.TerritoryColor = ColorNone
		r.TerritoryInconsistent = false
		r.invalidateAdjacency()
		if !enabled {
			r.GroupState = GroupUndefined
		}
	}
}

// starVertices returns the star points for a board size: 3-3 points on
// small boards, 4-4 from size 13 up, the center point on all sizes, and the
// four side points on sizes 15 and larger.
func starVertices(size int) []Vertex {
	d := 3
	if size >= 13 {
		d = 4
	}
	far := size + 1 - d
	mid := (size + 1) / 2
	vs := []Vertex{
		{Col: d, Row: d},
		{Col: far, Row: d},
		{Col: d, Row: far},
		{Col: far, Row: far},
		{Col: mid, Row: mid},
	}
	if size >= 15 {
		vs = append(vs,
			Vertex{Col: d, Row: mid},
			Vertex{Col: far, Row: mid},
			Vertex{Col: mid, Row: d},
			Vertex{Col: mid, Row: far},
		)
	}
	return vs
}

// MaxHandicap returns the maximum number of handicap stones for a board
// size.
func MaxHandicap(size int) int {
	if size == 7 {
		return 4
	}
	return 9
}

// HandicapVertices returns the vertices for the given number of handicap
// stones, laid out on the star points: corners first, then sides, with the
// center point added for odd handicaps of five and up.
func HandicapVertices(size, handicap int) ([]Vertex, error) {
	if !IsValidBoardSize(size) {
		return nil, &InvalidSizeError{Size: size}
	}
	if handicap == 0 {
		return nil, nil
	}
	if handicap < 2 || handicap > MaxHandicap(size) {
		return nil, fmt.Errorf("handicap %d out of range for board size %d", handicap, size)
	}
	d := 3
	if size >= 13 {
		d = 4
	}
	far := size + 1 - d
	mid := (size + 1) / 2
	corners := []Vertex{
		{Col: d, Row: far},
		{Col: far, Row: d},
		{Col: d, Row: d},
		{Col: far, Row: far},
	}
	sides := []Vertex{
		{Col: d, Row: mid},
		{Col: far, Row: mid},
		{Col: mid, Row: d},
		{Col: mid, Row: far},
	}
	n := handicap
	center := false
	if n >= 5 && n%2 == 1 {
		center = true
		n--
	}
	var vs []Vertex
	if n <= 4 {
		vs = append(vs, corners[:n]...)
	} else {
		vs = append(vs, corners...)
		vs = append(vs, sides[:n-4]...)
	}
	if center {
		vs = append(vs, Vertex{Col: mid, Row: mid})
	}
	return vs, nil
}

// CheckConsistency verifies the internal invariants: the regions partition
// the board, every region is connected and monochromatic, cached liberty
// counts are correct, and the running hash matches the stone configuration.
// It exists for tests and debugging; a failure means a bug in the engine.
func (b *Board) CheckConsistency() error {
	seen := make(map[PointHandle]RegionID, len(b.points))
	for id, r := range b.regions {
		if r.id != id {
			return fmt.Errorf("region %d stored under id %d", r.id, id)
		}
		if len(r.members) == 0 {
			return fmt.Errorf("region %d is empty", id)
		}
		for _, m := range r.members {
			if prev, ok := seen[m]; ok {
				return fmt.Errorf("point %s in regions %d and %d", b.points[m].Vertex, prev, id)
			}
			seen[m] = id
			if b.points[m].region != id {
				return fmt.Errorf("point %s back-references region %d, member of %d",
					b.points[m].Vertex, b.points[m].region, id)
			}
			if b.points[m].Stone != r.color {
				return fmt.Errorf("point %s has color %s in %s region %d",
					b.points[m].Vertex, b.points[m].Stone, r.color, id)
			}
		}
		if frags := b.connectedFragments(r); len(frags) != 1 {
			return fmt.Errorf("region %d splits into %d fragments", id, len(frags))
		}
		if r.IsStoneGroup() {
			want := b.countLiberties(r)
			if r.liberties != want {
				return fmt.Errorf("region %d caches %d liberties, has %d", id, r.liberties, want)
			}
		}
	}
	if len(seen) != len(b.points) {
		return fmt.Errorf("regions cover %d of %d points", len(seen), len(b.points))
	}
	var want PositionHash
	for i := range b.points {
		p := &b.points[i]
		if p.HasStone() {
			want ^= PositionHash(b.hasher.table.Key(PointHandle(i), p.Stone))
		}
	}
	if have := b.hasher.Current(); have != want {
		return fmt.Errorf("running hash %#x, recomputed %#x", have, want)
	}
	return nil
}
