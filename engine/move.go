package engine

import (
	"fmt"

	"goban/game"
)

type MoveType int8

const (
	MovePlay MoveType = iota
	MovePass
)

// Move records one applied move. Captured lists the vertices of all stones
// the move took off the board; if several groups were captured the vertices
// do not form a single contiguous area.
type Move struct {
	Type     MoveType
	Color    game.Color
	Vertex   game.Vertex
	Captured []game.Vertex
	// Number is the move number, starting at 1.
	Number int
}

func (m Move) String() string {
	if m.Type == MovePass {
		return fmt.Sprintf("%d. %s pass", m.Number, m.Color)
	}
	return fmt.Sprintf("%d. %s %s", m.Number, m.Color, m.Vertex)
}

// IllegalMoveReason is a rejection reason, not an internal failure: the
// board is guaranteed unchanged when a move is rejected.
type IllegalMoveReason int8

const (
	ReasonIntersectionOccupied IllegalMoveReason = iota
	ReasonSuicide
	ReasonSimpleKo
	ReasonSuperko
	// ReasonTooManyMoves is a technical limit, not a game rule.
	ReasonTooManyMoves
)

func (r IllegalMoveReason) String() string {
	switch r {
	case ReasonIntersectionOccupied:
		return "intersection is occupied"
	case ReasonSuicide:
		return "suicide"
	case ReasonSimpleKo:
		return "ko"
	case ReasonSuperko:
		return "superko"
	case ReasonTooManyMoves:
		return "too many moves"
	}
	return "unknown"
}

type IllegalMoveError struct {
	Color  game.Color
	Vertex game.Vertex
	Reason IllegalMoveReason
}

func (e *IllegalMoveError) Error() string {
	if e.Reason == ReasonTooManyMoves {
		return fmt.Sprintf("illegal move: %s", e.Reason)
	}
	return fmt.Sprintf("illegal move %s at %s: %s", e.Color, e.Vertex, e.Reason)
}
