package game

// The journal records a minimal change log while a provisional move is
// applied, so that a rejected move can be rolled back to the exact pre-move
// state: same region IDs, same cached values, same hash. Only the first
// touch of each point and region is recorded; a snapshot is a full
// pre-image, so restoration order does not matter.

type pointUndo struct {
	handle PointHandle
	stone  Color
	region RegionID
}

type regionSnapshot struct {
	color        Color
	members      []PointHandle
	liberties    int
	group        StoneGroupState
	territory    Color
	inconsistent bool
}

type journal struct {
	points  []pointUndo
	touched map[PointHandle]bool
	// regions maps a region ID to its pre-image, or to nil if the region
	// was created while the journal was open.
	regions map[RegionID]*regionSnapshot
	hash    PositionHash
	nextID  RegionID
}

// Begin starts recording changes. Journals do not nest.
func (b *Board) Begin() {
	if b.journal != nil {
		panic("journal already open")
	}
	b.journal = &journal{
		touched: make(map[PointHandle]bool),
		regions: make(map[RegionID]*regionSnapshot),
		hash:    b.hasher.Current(),
		nextID:  b.nextID,
	}
}

// Commit makes the recorded changes permanent.
func (b *Board) Commit() {
	if b.journal == nil {
		panic("no open journal")
	}
	b.journal = nil
}

// Rollback restores the board to the state at Begin.
func (b *Board) Rollback() {
	j := b.journal
	if j == nil {
		panic("no open journal")
	}
	b.journal = nil
	for i := len(j.points) - 1; i >= 0; i-- {
		pu := j.points[i]
		p := &b.points[pu.handle]
		if p.Stone != pu.stone {
			b.hasher.Toggle(pu.handle, p.Stone)
			b.hasher.Toggle(pu.handle, pu.stone)
		}
		p.Stone = pu.stone
		p.region = pu.region
	}
	for id, snap := range j.regions {
		if snap == nil {
			delete(b.regions, id)
			continue
		}
		r := b.regions[id]
		if r == nil {
			r = &Region{id: id}
			b.regions[id] = r
		}
		r.color = snap.color
		r.members = snap.members
		r.liberties = snap.liberties
		r.GroupState = snap.group
		r.TerritoryColor = snap.territory
		r.TerritoryInconsistent = snap.inconsistent
		r.invalidateAdjacency()
	}
	b.nextID = j.nextID
	if b.hasher.Current() != j.hash {
		panic("hash not restored by rollback") // would indicate a journal gap
	}
}

func (b *Board) journalPoint(h PointHandle) {
	j := b.journal
	if j == nil || j.touched[h] {
		return
	}
	j.touched[h] = true
	p := &b.points[h]
	j.points = append(j.points, pointUndo{handle: h, stone: p.Stone, region: p.region})
}

func (b *Board) journalRegion(id RegionID) {
	j := b.journal
	if j == nil {
		return
	}
	if _, ok := j.regions[id]; ok {
		return
	}
	r := b.regions[id]
	members := make([]PointHandle, len(r.members))
	copy(members, r.members)
	j.regions[id] = &regionSnapshot{
		color:        r.color,
		members:      members,
		liberties:    r.liberties,
		group:        r.GroupState,
		territory:    r.TerritoryColor,
		inconsistent: r.TerritoryInconsistent,
	}
}

func (b *Board) journalNewRegion(id RegionID) {
	j := b.journal
	if j == nil {
		return
	}
	if _, ok := j.regions[id]; ok {
		panic("new region id already journaled") // IDs are never reused
	}
	j.regions[id] = nil
}
