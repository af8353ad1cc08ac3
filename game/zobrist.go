package game

import (
	"sync"

	"golang.org/x/exp/rand"
)

// zobristSeed is mixed with the board size so that every process generates
// the identical table for a given size. Hashes are therefore stable across
// restarts, which lets an external serializer persist them.
const zobristSeed = 0x9e3779b97f4a7c15

// ZobristTable holds one 64-bit random value per (point, color) pair for
// one board size. Tables are shared: all boards of the same size use the
// same table.
type ZobristTable struct {
	size int
	keys []uint64
}

type zobristStore struct {
	mu     sync.Mutex
	tables map[int]*ZobristTable
}

var zobristTables = zobristStore{tables: make(map[int]*ZobristTable)}

func zobristTableForSize(size int) *ZobristTable {
	zobristTables.mu.Lock()
	defer zobristTables.mu.Unlock()
	if t, ok := zobristTables.tables[size]; ok {
		return t
	}
	rng := rand.New(rand.NewSource(zobristSeed ^ uint64(size)))
	t := &ZobristTable{size: size, keys: make([]uint64, size*size*2)}
	for i := range t.keys {
		v := rng.Uint64()
		for v == 0 { // a zero key would make Toggle a no-op
			v = rng.Uint64()
		}
		t.keys[i] = v
	}
	zobristTables.tables[size] = t
	return t
}

// Key returns the hash contribution of color c occupying point h.
func (z *ZobristTable) Key(h PointHandle, c Color) uint64 {
	idx := int(h) * 2
	if c == ColorWhite {
		idx++
	}
	return z.keys[idx]
}

// PositionHasher maintains the running Zobrist hash of a board: the XOR of
// the contributions of all currently occupied points. It is updated
// incrementally on every stone placement and removal, never recomputed from
// scratch during play.
type PositionHasher struct {
	table   *ZobristTable
	current PositionHash
}

func NewPositionHasher(size int) *PositionHasher {
	return &PositionHasher{table: zobristTableForSize(size)}
}

// Toggle XORs the (point, color) contribution in or out of the running
// hash. Toggling ColorNone is a no-op: empty points do not contribute.
// Placement toggles the new color in; a capture toggles the old color out.
func (ph *PositionHasher) Toggle(h PointHandle, c Color) {
	if c == ColorNone {
		return
	}
	ph.current ^= PositionHash(ph.table.Key(h, c))
}

// Current returns the running hash.
func (ph *PositionHasher) Current() PositionHash { return ph.current }

func (ph *PositionHasher) reset() { ph.current = 0 }
