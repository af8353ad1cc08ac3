package game

import (
	"goban/utils"
)

// Region is a maximal 4-connected set of points that share the same
// occupancy: a stone group, or an empty area. Regions partition the board;
// every point belongs to exactly one region at all times.
//
// A region has no identity beyond the current board state. Merges and
// splits retire and create regions freely; only the ID of the largest
// fragment survives a split.
type Region struct {
	id        RegionID
	color     Color
	members   []PointHandle
	liberties int

	// Scoring state, set by external dead-stone marking and the scoring
	// pass. Ignored during play.
	GroupState            StoneGroupState
	TerritoryColor        Color
	TerritoryInconsistent bool

	adjCache      []RegionID
	adjCacheValid bool
}

func (r *Region) ID() RegionID { return r.id }

// Color returns ColorNone for an empty area, or the stone color of the
// group.
func (r *Region) Color() Color { return r.color }

func (r *Region) Size() int { return len(r.members) }

func (r *Region) IsStoneGroup() bool { return r.color != ColorNone }

// Points returns the member handles. The slice is owned by the region and
// must not be modified.
func (r *Region) Points() []PointHandle { return r.members }

// Liberties returns the cached liberty count of a stone group: the number
// of distinct empty points adjacent to any member. For an empty region the
// conventional value is the region's own size.
func (r *Region) Liberties() int {
	if !r.IsStoneGroup() {
		return len(r.members)
	}
	return r.liberties
}

func (r *Region) invalidateAdjacency() {
	r.adjCacheValid = false
	r.adjCache = nil
}

// RegionOf returns the region that point h belongs to.
func (b *Board) RegionOf(h PointHandle) *Region {
	r := b.regions[b.points[h].region]
	if r == nil {
		panic("point without region") // partition invariant violated
	}
	return r
}

// Region returns the region with the given ID, or nil if no such region
// exists on the current board.
func (b *Board) Region(id RegionID) *Region { return b.regions[id] }

// Regions returns all live regions, in no particular order.
func (b *Board) Regions() []*Region {
	out := make([]*Region, 0, len(b.regions))
	for _, r := range b.regions {
		out = append(out, r)
	}
	return out
}

// AdjacentRegions returns the regions bordering r, excluding r itself. The
// result is cached while the board is in scoring mode.
func (b *Board) AdjacentRegions(r *Region) []*Region {
	if b.scoringMode && r.adjCacheValid {
		out := make([]*Region, len(r.adjCache))
		for i, id := range r.adjCache {
			out[i] = b.regions[id]
		}
		return out
	}
	seen := make(map[RegionID]bool)
	ids := make([]RegionID, 0, 4)
	for _, m := range r.members {
		for _, n := range b.neighborList(m) {
			if n == NoPoint {
				continue
			}
			id := b.points[n].region
			if id == r.id || seen[id] {
				continue
			}
			seen[id] = true
			ids = append(ids, id)
		}
	}
	if b.scoringMode {
		r.adjCache = ids
		r.adjCacheValid = true
	}
	out := make([]*Region, len(ids))
	for i, id := range ids {
		out[i] = b.regions[id]
	}
	return out
}

// NeighborRegions returns the distinct regions of the given color adjacent
// to point h.
func (b *Board) NeighborRegions(h PointHandle, c Color) []*Region {
	var out []*Region
	for _, n := range b.neighborList(h) {
		if n == NoPoint || b.points[n].Stone != c {
			continue
		}
		r := b.RegionOf(n)
		found := false
		for _, have := range out {
			if have == r {
				found = true
				break
			}
		}
		if !found {
			out = append(out, r)
		}
	}
	return out
}

// Liberties returns the liberty count as seen from a single point: the
// group's liberties if the point carries a stone, the surrounding empty
// region's size otherwise. The two query paths always agree with
// Region.Liberties.
func (b *Board) Liberties(h PointHandle) int {
	return b.RegionOf(h).Liberties()
}

// setStoneState is the single mutation primitive: it changes the occupancy
// of one point and restores the partition around it. The point first leaves
// its region (splitting it if the remainder is disconnected), then starts a
// fresh single-point region that is joined with every like-colored neighbor
// region. Liberty caches of all regions touching h are refreshed.
func (b *Board) setStoneState(h PointHandle, c Color) {
	p := &b.points[h]
	if p.Stone == c {
		return
	}
	b.journalPoint(h)
	b.detachPoint(h)
	b.hasher.Toggle(h, p.Stone)
	p.Stone = c
	b.hasher.Toggle(h, c)
	b.attachPoint(h)
	b.refreshNeighborLiberties(h)
}

// detachPoint removes h from its region. An emptied region is retired; a
// region whose remaining members may have lost connectivity is split.
func (b *Board) detachPoint(h PointHandle) {
	p := &b.points[h]
	r := b.regions[p.region]
	if r == nil {
		panic("point without region")
	}
	b.journalRegion(r.id)
	i := utils.FindIndex(r.members, h)
	if i < 0 {
		panic("region does not contain its point")
	}
	r.members = utils.RemoveAt(r.members, i)
	p.region = noRegion
	r.invalidateAdjacency()
	if len(r.members) == 0 {
		delete(b.regions, r.id)
		return
	}
	b.splitAfterRemoval(r, h)
}

// splitAfterRemoval restores connectivity of r after h was removed. If the
// removed point bordered at most one remaining member, the region cannot
// have fragmented and only the caches are refreshed. Otherwise a flood fill
// over the members finds the fragments; the largest keeps r's identity, the
// rest become new regions.
func (b *Board) splitAfterRemoval(r *Region, removed PointHandle) {
	inRegion := 0
	for _, n := range b.neighborList(removed) {
		if n != NoPoint && b.points[n].region == r.id {
			inRegion++
		}
	}
	if inRegion <= 1 {
		b.recomputeLiberties(r)
		return
	}
	fragments := b.connectedFragments(r)
	if len(fragments) == 1 {
		b.recomputeLiberties(r)
		return
	}
	largest := 0
	for i, frag := range fragments {
		if len(frag) > len(fragments[largest]) {
			largest = i
		}
	}
	r.members = fragments[largest]
	b.recomputeLiberties(r)
	for i, frag := range fragments {
		if i == largest {
			continue
		}
		nr := b.newRegion(r.color)
		nr.GroupState = r.GroupState
		nr.members = frag
		for _, m := range frag {
			b.journalPoint(m)
			b.points[m].region = nr.id
		}
		b.recomputeLiberties(nr)
	}
}

// connectedFragments partitions r's members into 4-connected components.
func (b *Board) connectedFragments(r *Region) [][]PointHandle {
	member := make(map[PointHandle]bool, len(r.members))
	for _, m := range r.members {
		member[m] = true
	}
	visited := make(map[PointHandle]bool, len(r.members))
	var fragments [][]PointHandle
	for _, start := range r.members {
		if visited[start] {
			continue
		}
		var frag []PointHandle
		stack := []PointHandle{start}
		visited[start] = true
		for len(stack) > 0 {
			m := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			frag = append(frag, m)
			for _, n := range b.neighborList(m) {
				if n == NoPoint || !member[n] || visited[n] {
					continue
				}
				visited[n] = true
				stack = append(stack, n)
			}
		}
		fragments = append(fragments, frag)
	}
	return fragments
}

// attachPoint starts a fresh single-point region for h and joins it with
// every neighbor region of the same occupancy.
func (b *Board) attachPoint(h PointHandle) {
	p := &b.points[h]
	r := b.newRegion(p.Stone)
	r.members = append(r.members, h)
	p.region = r.id
	for _, n := range b.neighborList(h) {
		if n == NoPoint {
			continue
		}
		np := &b.points[n]
		if np.Stone != p.Stone || np.region == p.region {
			continue
		}
		b.joinRegions(b.regions[p.region], b.regions[np.region])
	}
	b.recomputeLiberties(b.RegionOf(h))
}

func (b *Board) newRegion(c Color) *Region {
	id := b.nextID
	b.nextID++
	r := &Region{id: id, color: c}
	b.regions[id] = r
	b.journalNewRegion(id)
	return r
}

// joinRegions merges two same-colored regions. The smaller one is absorbed
// into the larger to bound amortized cost; the absorbed region is retired.
func (b *Board) joinRegions(r1, r2 *Region) *Region {
	big, small := r1, r2
	if len(small.members) > len(big.members) {
		big, small = small, big
	}
	b.journalRegion(big.id)
	b.journalRegion(small.id)
	for _, m := range small.members {
		b.journalPoint(m)
		b.points[m].region = big.id
	}
	big.members = append(big.members, small.members...)
	big.invalidateAdjacency()
	delete(b.regions, small.id)
	return big
}

// recomputeLiberties rebuilds r's liberty cache by scanning its members.
// Only the region itself is touched; no global rescan happens.
func (b *Board) recomputeLiberties(r *Region) {
	b.journalRegion(r.id)
	r.invalidateAdjacency()
	if !r.IsStoneGroup() {
		r.liberties = 0
		return
	}
	r.liberties = b.countLiberties(r)
}

func (b *Board) countLiberties(r *Region) int {
	seen := make(map[PointHandle]bool)
	n := 0
	for _, m := range r.members {
		for _, nb := range b.neighborList(m) {
			if nb == NoPoint || b.points[nb].HasStone() || seen[nb] {
				continue
			}
			seen[nb] = true
			n++
		}
	}
	return n
}

// refreshNeighborLiberties refreshes the liberty caches of the regions
// bordering h. Their membership did not change, but h's occupancy did.
func (b *Board) refreshNeighborLiberties(h PointHandle) {
	own := b.points[h].region
	var done [4]RegionID
	cnt := 0
	for _, n := range b.neighborList(h) {
		if n == NoPoint {
			continue
		}
		id := b.points[n].region
		if id == own {
			continue
		}
		dup := false
		for i := 0; i < cnt; i++ {
			if done[i] == id {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		done[cnt] = id
		cnt++
		b.recomputeLiberties(b.regions[id])
	}
}
