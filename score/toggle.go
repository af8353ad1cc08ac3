package score

import "goban/game"

// ToggleDead flips a stone group between dead and alive, and propagates the
// new state to same-colored groups that share a territory: two groups of
// one color bordering the same empty region must either both be dead or
// both be alive. Opposing groups are never touched; that used to cascade
// across the whole board.
func ToggleDead(board *game.Board, group *game.Region) {
	if !group.IsStoneGroup() {
		return
	}
	newState := game.GroupDead
	if group.GroupState == game.GroupDead {
		newState = game.GroupAlive
	}
	group.GroupState = newState

	visited := map[game.RegionID]bool{group.ID(): true}
	queue := []*game.Region{group}
	for len(queue) > 0 {
		r := queue[0]
		queue = queue[1:]
		for _, territory := range board.AdjacentRegions(r) {
			if territory.IsStoneGroup() {
				continue
			}
			for _, other := range board.AdjacentRegions(territory) {
				if !other.IsStoneGroup() || other.Color() != group.Color() || visited[other.ID()] {
					continue
				}
				visited[other.ID()] = true
				if other.GroupState != newState {
					other.GroupState = newState
					queue = append(queue, other)
				}
			}
		}
	}
}

// ToggleSeki flips a stone group between seki and alive. No marking
// assistance is applied.
func ToggleSeki(group *game.Region) {
	if !group.IsStoneGroup() {
		return
	}
	if group.GroupState == game.GroupSeki {
		group.GroupState = game.GroupAlive
	} else {
		group.GroupState = game.GroupSeki
	}
}
