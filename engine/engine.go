// Package engine decides move legality and applies legal moves atomically:
// a move either fully commits, or the board is left bit-for-bit unchanged.
package engine

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"goban/game"
)

// positionRecord is one entry of the superko history: the board hash after
// a move, plus the color that moves next from that position. Situational
// superko keys on the pair, positional superko on the hash alone.
type positionRecord struct {
	hash game.PositionHash
	next game.Color
}

// Game is one game session: the board, the rule configuration, the move
// list and the position history the superko checks consult. All mutations
// run synchronously to completion; one caller at a time.
type Game struct {
	id       uuid.UUID
	board    *game.Board
	rules    game.Rules
	komi     float64
	handicap int
	next     game.Color
	moves    []Move
	history  []positionRecord
	captures [3]int // indexed by game.Color
	passes   int
	ended    bool
	logger   zerolog.Logger
}

type Option func(*Game)

// WithKomi overrides the default komi for the game's handicap and scoring
// system.
func WithKomi(komi float64) Option {
	return func(g *Game) {
		g.komi = komi
	}
}

// WithHandicap places the given number of handicap stones for black on the
// star points. White moves first in a handicap game.
func WithHandicap(stones int) Option {
	return func(g *Game) {
		g.handicap = stones
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(g *Game) {
		g.logger = logger
	}
}

// NewGame starts a game on an empty board of the given size.
func NewGame(size int, rules game.Rules, options ...Option) (*Game, error) {
	board, err := game.NewBoard(size)
	if err != nil {
		return nil, err
	}
	g := &Game{
		id:     uuid.New(),
		board:  board,
		rules:  rules,
		komi:   -1,
		next:   game.ColorBlack,
		logger: log.Logger,
	}
	for _, option := range options {
		option(g)
	}
	if g.handicap > 0 {
		vertices, err := game.HandicapVertices(size, g.handicap)
		if err != nil {
			return nil, err
		}
		for _, v := range vertices {
			if err := board.SetupStone(board.PointAt(v), game.ColorBlack); err != nil {
				return nil, err
			}
		}
		g.next = game.ColorWhite
	}
	if g.komi < 0 {
		g.komi = game.DefaultKomi(g.handicap, rules.Scoring)
	}
	// The pre-first-move position seeds the history so that no move may
	// recreate it under a superko rule.
	g.history = append(g.history, positionRecord{hash: board.Hash(), next: g.next})
	g.logger.Info().
		Str("game", g.id.String()).
		Int("size", size).
		Int("handicap", g.handicap).
		Float64("komi", g.komi).
		Str("ko", rules.Ko.String()).
		Str("scoring", rules.Scoring.String()).
		Msg("game started")
	return g, nil
}

func (g *Game) ID() uuid.UUID         { return g.id }
func (g *Game) Board() *game.Board    { return g.board }
func (g *Game) Rules() game.Rules     { return g.rules }
func (g *Game) Komi() float64         { return g.komi }
func (g *Game) Handicap() int         { return g.handicap }
func (g *Game) NextColor() game.Color { return g.next }
func (g *Game) MoveCount() int        { return len(g.moves) }

// Logger returns the game's logger, so downstream consumers such as the
// scoring pass log to the same sink.
func (g *Game) Logger() zerolog.Logger { return g.logger }

// Ended reports whether two consecutive passes have ended the game.
func (g *Game) Ended() bool { return g.ended }

// Moves returns the applied moves in order.
func (g *Game) Moves() []Move {
	out := make([]Move, len(g.moves))
	copy(out, g.moves)
	return out
}

// LastMove returns the most recent move, or nil before the first move.
func (g *Game) LastMove() *Move {
	if len(g.moves) == 0 {
		return nil
	}
	return &g.moves[len(g.moves)-1]
}

// CapturedBy returns the number of stones the given color has captured.
func (g *Game) CapturedBy(c game.Color) int { return g.captures[c] }

// Play applies a stone-playing move for the color to move.
func (g *Game) Play(v game.Vertex) (Move, error) {
	return g.ApplyMove(g.next, v)
}

// ApplyMove applies a stone-playing move for an explicit color, e.g. when
// replaying an externally stored move sequence. On rejection the board,
// the hash and all tallies are unchanged, no matter how often the same
// illegal move is retried.
func (g *Game) ApplyMove(c game.Color, v game.Vertex) (Move, error) {
	captured, err := g.tryMove(c, v)
	if err != nil {
		var illegal *IllegalMoveError
		if errors.As(err, &illegal) {
			g.logger.Debug().
				Str("game", g.id.String()).
				Str("color", c.String()).
				Str("vertex", v.String()).
				Str("reason", illegal.Reason.String()).
				Msg("move rejected")
		}
		return Move{}, err
	}
	g.board.Commit()
	move := Move{
		Type:     MovePlay,
		Color:    c,
		Vertex:   v,
		Captured: captured,
		Number:   len(g.moves) + 1,
	}
	g.moves = append(g.moves, move)
	g.captures[c] += len(captured)
	g.next = c.Other()
	g.passes = 0
	g.history = append(g.history, positionRecord{hash: g.board.Hash(), next: g.next})
	g.logger.Info().
		Str("game", g.id.String()).
		Str("color", c.String()).
		Str("vertex", v.String()).
		Int("captured", len(captured)).
		Int("move", move.Number).
		Msg("move played")
	return move, nil
}

// Pass applies a pass move for the color to move. Two consecutive passes
// end the game. Passing never changes the board, but it still counts
// against the move ceiling and extends the position history.
func (g *Game) Pass() (Move, error) {
	if g.rules.MaxMoves > 0 && len(g.moves) >= g.rules.MaxMoves {
		return Move{}, &IllegalMoveError{Color: g.next, Reason: ReasonTooManyMoves}
	}
	c := g.next
	move := Move{Type: MovePass, Color: c, Number: len(g.moves) + 1}
	g.moves = append(g.moves, move)
	g.next = c.Other()
	g.history = append(g.history, positionRecord{hash: g.board.Hash(), next: g.next})
	g.passes++
	if g.passes >= 2 {
		g.ended = true
	}
	g.logger.Info().
		Str("game", g.id.String()).
		Str("color", c.String()).
		Int("move", move.Number).
		Bool("ended", g.ended).
		Msg("pass")
	return move, nil
}

// CheckMove reports whether playing c at v would be legal, without changing
// the game. A nil result means legal; otherwise the *IllegalMoveError names
// the reason.
func (g *Game) CheckMove(c game.Color, v game.Vertex) error {
	if _, err := g.tryMove(c, v); err != nil {
		return err
	}
	g.board.Rollback()
	return nil
}

// IsLegalMove is the boolean form of CheckMove.
func (g *Game) IsLegalMove(c game.Color, v game.Vertex) bool {
	return g.CheckMove(c, v) == nil
}

// tryMove runs the legality state machine. On success the provisional move
// is left applied under an open journal; the caller commits or rolls back.
// On failure the journal has been rolled back and the board is unchanged.
func (g *Game) tryMove(c game.Color, v game.Vertex) ([]game.Vertex, error) {
	if c != game.ColorBlack && c != game.ColorWhite {
		return nil, fmt.Errorf("cannot play color %s", c)
	}
	if g.rules.MaxMoves > 0 && len(g.moves) >= g.rules.MaxMoves {
		return nil, &IllegalMoveError{Color: c, Vertex: v, Reason: ReasonTooManyMoves}
	}
	h := g.board.PointAt(v)
	if h == game.NoPoint {
		return nil, fmt.Errorf("vertex %s outside %dx%d board", v, g.board.Size(), g.board.Size())
	}
	if g.board.Point(h).HasStone() {
		return nil, &IllegalMoveError{Color: c, Vertex: v, Reason: ReasonIntersectionOccupied}
	}

	g.board.Begin()
	g.board.PlaceStone(h, c)

	// Capture every adjacent opposing group left without liberties.
	var captured []game.Vertex
	for _, r := range g.board.NeighborRegions(h, c.Other()) {
		if r.Liberties() > 0 {
			continue
		}
		members := make([]game.PointHandle, len(r.Points()))
		copy(members, r.Points())
		for _, m := range members {
			captured = append(captured, g.board.Point(m).Vertex)
			g.board.RemoveStone(m)
		}
	}

	if g.board.RegionOf(h).Liberties() == 0 {
		g.board.Rollback()
		return nil, &IllegalMoveError{Color: c, Vertex: v, Reason: ReasonSuicide}
	}

	if g.rules.Ko == game.KoRuleSimple && g.isSimpleKoRecapture(c, v, captured) {
		g.board.Rollback()
		return nil, &IllegalMoveError{Color: c, Vertex: v, Reason: ReasonSimpleKo}
	}

	if g.rules.Ko == game.KoRuleSuperkoPositional || g.rules.Ko == game.KoRuleSuperkoSituational {
		hash := g.board.Hash() // hash of the hypothetical resulting position
		for _, rec := range g.history {
			if rec.hash != hash {
				continue
			}
			if g.rules.Ko == game.KoRuleSuperkoSituational && rec.next != c.Other() {
				continue
			}
			g.board.Rollback()
			return nil, &IllegalMoveError{Color: c, Vertex: v, Reason: ReasonSuperko}
		}
	}

	return captured, nil
}

// isSimpleKoRecapture detects the pattern-based simple ko: the move
// captures exactly one stone, that stone is the one the opponent just
// played, and the opponent's move itself captured exactly one stone at the
// point now being played.
func (g *Game) isSimpleKoRecapture(c game.Color, v game.Vertex, captured []game.Vertex) bool {
	if len(captured) != 1 {
		return false
	}
	last := g.LastMove()
	if last == nil || last.Type != MovePlay || last.Color != c.Other() || len(last.Captured) != 1 {
		return false
	}
	return captured[0] == last.Vertex && last.Captured[0] == v
}
