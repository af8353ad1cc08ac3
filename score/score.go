// Package score computes territory and area scores from a finished board
// whose stone groups have been marked alive, dead or in seki by an external
// dead-stone-marking step. It reads game state, never mutates it.
package score

import (
	"fmt"

	"goban/engine"
	"goban/game"
)

type Result int8

const (
	ResultNone Result = iota
	ResultBlackWins
	ResultWhiteWins
	ResultTie
)

// Score holds the scoring result for one board position, plus move
// statistics for the whole game.
type Score struct {
	ScoringSystem game.ScoringSystem
	Komi          float64

	// Handicap compensation awards white one point per handicap stone
	// under area scoring.
	HandicapCompensationBlack float64
	HandicapCompensationWhite float64

	CapturedByBlack int
	CapturedByWhite int
	DeadBlack       int
	DeadWhite       int
	TerritoryBlack  int
	TerritoryWhite  int
	// Alive tallies include stones in seki.
	AliveBlack int
	AliveWhite int
	// InconsistentTerritory counts empty points the territory pass could
	// not attribute to either color; they score as neutral.
	InconsistentTerritory int

	TotalBlack float64
	TotalWhite float64
	Result     Result

	Moves               int
	StonesPlayedByBlack int
	StonesPlayedByWhite int
	PassesPlayedByBlack int
	PassesPlayedByWhite int
}

// ResultString renders the result the customary way, e.g. "B+2.5".
func (s *Score) ResultString() string {
	switch s.Result {
	case ResultBlackWins:
		return fmt.Sprintf("B+%.1f", s.TotalBlack-s.TotalWhite)
	case ResultWhiteWins:
		return fmt.Sprintf("W+%.1f", s.TotalWhite-s.TotalBlack)
	case ResultTie:
		return "Tie"
	}
	return ""
}

// Calculate scores the game's current board position. Stone groups still
// marked GroupUndefined are presumed alive, but an empty region bordered by
// both colors through unmarked groups is flagged as inconsistent territory
// instead of being silently assigned.
func Calculate(g *engine.Game) *Score {
	board := g.Board()
	updateTerritoryColor(board, g.Rules().Scoring)

	s := &Score{
		ScoringSystem:   g.Rules().Scoring,
		Komi:            g.Komi(),
		CapturedByBlack: g.CapturedBy(game.ColorBlack),
		CapturedByWhite: g.CapturedBy(game.ColorWhite),
	}
	if s.ScoringSystem == game.AreaScoring {
		s.HandicapCompensationWhite = float64(g.Handicap())
	}

	for _, r := range board.Regions() {
		if !r.IsStoneGroup() {
			if r.TerritoryInconsistent {
				s.InconsistentTerritory += r.Size()
				continue
			}
			switch r.TerritoryColor {
			case game.ColorBlack:
				s.TerritoryBlack += r.Size()
			case game.ColorWhite:
				s.TerritoryWhite += r.Size()
			}
			continue
		}
		switch r.GroupState {
		case game.GroupDead:
			if r.Color() == game.ColorBlack {
				s.DeadBlack += r.Size()
				s.TerritoryWhite += r.Size()
			} else {
				s.DeadWhite += r.Size()
				s.TerritoryBlack += r.Size()
			}
		default: // alive, seki, or unmarked
			if r.Color() == game.ColorBlack {
				s.AliveBlack += r.Size()
			} else {
				s.AliveWhite += r.Size()
			}
		}
	}

	for _, m := range g.Moves() {
		s.Moves++
		switch {
		case m.Type == engine.MovePass && m.Color == game.ColorBlack:
			s.PassesPlayedByBlack++
		case m.Type == engine.MovePass:
			s.PassesPlayedByWhite++
		case m.Color == game.ColorBlack:
			s.StonesPlayedByBlack++
		default:
			s.StonesPlayedByWhite++
		}
	}

	if s.ScoringSystem == game.AreaScoring {
		s.TotalBlack = float64(s.AliveBlack+s.TerritoryBlack) + s.HandicapCompensationBlack
		s.TotalWhite = s.Komi + float64(s.AliveWhite+s.TerritoryWhite) + s.HandicapCompensationWhite
	} else {
		s.TotalBlack = float64(s.CapturedByBlack+s.DeadWhite+s.TerritoryBlack) + s.HandicapCompensationBlack
		s.TotalWhite = s.Komi + float64(s.CapturedByWhite+s.DeadBlack+s.TerritoryWhite) + s.HandicapCompensationWhite
	}
	switch {
	case s.TotalBlack > s.TotalWhite:
		s.Result = ResultBlackWins
	case s.TotalWhite > s.TotalBlack:
		s.Result = ResultWhiteWins
	default:
		s.Result = ResultTie
	}

	logger := g.Logger()
	logger.Debug().
		Str("game", g.ID().String()).
		Float64("black", s.TotalBlack).
		Float64("white", s.TotalWhite).
		Str("result", s.ResultString()).
		Msg("score calculated")
	return s
}

// updateTerritoryColor assigns every region the color that owns it during
// scoring, writing Region.TerritoryColor and Region.TerritoryInconsistent.
func updateTerritoryColor(board *game.Board, scoring game.ScoringSystem) {
	for _, r := range board.Regions() {
		r.TerritoryInconsistent = false
		if r.IsStoneGroup() {
			switch r.GroupState {
			case game.GroupDead:
				r.TerritoryColor = r.Color().Other()
			case game.GroupSeki:
				if scoring == game.TerritoryScoring {
					r.TerritoryColor = game.ColorNone
				} else {
					r.TerritoryColor = r.Color()
				}
			default:
				r.TerritoryColor = r.Color()
			}
			continue
		}
		resolveEmptyRegion(board, r, scoring)
	}
}

// resolveEmptyRegion determines the territory color of an empty region from
// its adjacent stone groups:
//   - a neighboring dead group gives the region to the dead group's
//     opponent, unless groups of both colors are dead, a same-colored group
//     is alive, or a seki group borders the region; all of those are
//     inconsistencies;
//   - seki groups must border exclusively seki groups of one color, and the
//     resulting eye is neutral under territory scoring;
//   - groups of a single color surround territory for that color, but if
//     both colors border the region it is neutral dame only when all groups
//     are explicitly marked; with unmarked groups on both sides it is
//     flagged as inconsistent territory.
func resolveEmptyRegion(board *game.Board, r *game.Region, scoring game.ScoringSystem) {
	r.TerritoryColor = game.ColorNone
	adjacent := board.AdjacentRegions(r)
	if len(adjacent) == 0 {
		return // empty board
	}

	var deadColor, liveColor game.Color
	deadBoth := false
	liveBoth := false
	sekiCount := 0
	aliveOrDead := 0
	unmarked := false
	for _, adj := range adjacent {
		c := adj.Color()
		switch adj.GroupState {
		case game.GroupDead:
			aliveOrDead++
			if deadColor == game.ColorNone {
				deadColor = c
			} else if deadColor != c {
				deadBoth = true
			}
		case game.GroupSeki:
			sekiCount++
			if liveColor == game.ColorNone {
				liveColor = c
			} else if liveColor != c {
				liveBoth = true
			}
		default:
			aliveOrDead++
			if adj.GroupState == game.GroupUndefined {
				unmarked = true
			}
			if liveColor == game.ColorNone {
				liveColor = c
			} else if liveColor != c {
				liveBoth = true
			}
		}
	}

	if sekiCount > 0 && aliveOrDead > 0 {
		// Seki stones only share liberties with other seki stones.
		r.TerritoryInconsistent = true
		return
	}

	if deadColor != game.ColorNone {
		if deadBoth || (liveColor != game.ColorNone && liveColor == deadColor) {
			r.TerritoryInconsistent = true
			return
		}
		r.TerritoryColor = deadColor.Other()
		return
	}

	if sekiCount > 0 {
		if liveBoth {
			return // dame between sekis of both colors
		}
		if scoring == game.AreaScoring {
			r.TerritoryColor = liveColor
		}
		return // an eye in seki is neutral under territory scoring
	}

	if liveBoth {
		if unmarked {
			r.TerritoryInconsistent = true
		}
		return // dame
	}
	r.TerritoryColor = liveColor
}
