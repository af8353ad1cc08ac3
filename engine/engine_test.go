package engine

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"goban/game"
)

func newTestGame(t *testing.T, size int, rules game.Rules, options ...Option) *Game {
	t.Helper()
	options = append(options, WithLogger(zerolog.Nop()))
	g, err := NewGame(size, rules, options...)
	require.NoError(t, err)
	return g
}

func vertex(t *testing.T, s string) game.Vertex {
	t.Helper()
	v, err := game.ParseVertex(s)
	require.NoError(t, err)
	return v
}

func mustPlay(t *testing.T, g *Game, vertices ...string) {
	t.Helper()
	for _, s := range vertices {
		_, err := g.Play(vertex(t, s))
		require.NoError(t, err, "move at %s", s)
	}
}

// stones flattens the board to one color per point, for diffing.
func stones(b *game.Board) []game.Color {
	out := make([]game.Color, b.NumPoints())
	for h := 0; h < b.NumPoints(); h++ {
		out[h] = b.Point(game.PointHandle(h)).Stone
	}
	return out
}

func requireIllegal(t *testing.T, err error, reason IllegalMoveReason) {
	t.Helper()
	require.Error(t, err)
	var illegal *IllegalMoveError
	require.True(t, errors.As(err, &illegal), "unexpected error: %v", err)
	require.Equal(t, reason, illegal.Reason)
}

func TestPlayAlternatesColors(t *testing.T) {
	g := newTestGame(t, 9, game.DefaultRules())
	require.Equal(t, game.ColorBlack, g.NextColor())

	move, err := g.Play(vertex(t, "C3"))
	require.NoError(t, err)
	require.Equal(t, game.ColorBlack, move.Color)
	require.Equal(t, 1, move.Number)
	require.Equal(t, game.ColorWhite, g.NextColor())

	mustPlay(t, g, "G7")
	require.Equal(t, 2, g.MoveCount())
	require.Equal(t, game.ColorWhite, g.LastMove().Color)
}

func TestOccupiedIntersectionIsRejected(t *testing.T) {
	g := newTestGame(t, 9, game.DefaultRules())
	mustPlay(t, g, "E5")

	_, err := g.Play(vertex(t, "E5"))
	requireIllegal(t, err, ReasonIntersectionOccupied)
	require.Equal(t, 1, g.MoveCount())
	require.Equal(t, game.ColorWhite, g.NextColor(), "rejected move does not pass the turn")
}

func TestOutsideBoardIsRejected(t *testing.T) {
	g := newTestGame(t, 9, game.DefaultRules())
	_, err := g.Play(game.Vertex{Col: 10, Row: 1})
	require.Error(t, err)
	var illegal *IllegalMoveError
	require.False(t, errors.As(err, &illegal), "off-board is a caller error, not a rules rejection")
}

func TestCornerCapture(t *testing.T) {
	g := newTestGame(t, 9, game.DefaultRules())
	mustPlay(t, g, "A2", "A1") // black A2, white A1

	move, err := g.Play(vertex(t, "B1"))
	require.NoError(t, err)
	require.Equal(t, []game.Vertex{vertex(t, "A1")}, move.Captured)
	require.Equal(t, 1, g.CapturedBy(game.ColorBlack))
	require.Equal(t, 0, g.CapturedBy(game.ColorWhite))

	b := g.Board()
	a1 := b.PointAt(vertex(t, "A1"))
	require.False(t, b.Point(a1).HasStone())
	require.Equal(t, 1, b.Liberties(a1), "the vacated point is an empty region again")
	require.NoError(t, b.CheckConsistency())
}

func TestMultiStoneCapture(t *testing.T) {
	g := newTestGame(t, 9, game.DefaultRules())
	// White builds a two-stone group on the edge; black surrounds it.
	mustPlay(t, g,
		"D2", "E1", // b, w
		"D1", "F1", // b, w
		"E2", "A9",
		"F2", "B9",
	)
	move, err := g.Play(vertex(t, "G1")) // black removes E1-F1
	require.NoError(t, err)
	require.ElementsMatch(t, []game.Vertex{vertex(t, "E1"), vertex(t, "F1")}, move.Captured)
	require.Equal(t, 2, g.CapturedBy(game.ColorBlack))
	require.NoError(t, g.Board().CheckConsistency())
}

func TestSuicideIsRejectedWithoutTrace(t *testing.T) {
	g := newTestGame(t, 9, game.DefaultRules())
	mustPlay(t, g,
		"D5", "A1",
		"F5", "A2",
		"E4", "A3",
		"E6",
	)
	before := stones(g.Board())
	hash := g.Board().Hash()

	// E5 is surrounded by black on all four sides.
	for i := 0; i < 3; i++ { // rejection is idempotent
		_, err := g.Play(vertex(t, "E5"))
		requireIllegal(t, err, ReasonSuicide)
	}

	require.Empty(t, cmp.Diff(before, stones(g.Board())))
	require.Equal(t, hash, g.Board().Hash())
	require.Equal(t, 7, g.MoveCount())
	require.NoError(t, g.Board().CheckConsistency())
}

// playKoShape plays out the standard ko shape around E5/D5:
//
//	black C5, D4, D6 against white E4, E6, F5, with a white stone on D5.
//
// Black to move; black E5 captures D5 and white recapturing at D5 is the ko.
func playKoShape(t *testing.T, g *Game) {
	t.Helper()
	mustPlay(t, g,
		"C5", "E4",
		"D4", "E6",
		"D6", "F5",
	)
	_, err := g.Pass()
	require.NoError(t, err)
	mustPlay(t, g, "D5") // white takes the ko point
}

func TestSimpleKo(t *testing.T) {
	g := newTestGame(t, 9, game.DefaultRules()) // simple ko
	playKoShape(t, g)

	move, err := g.Play(vertex(t, "E5")) // black captures D5
	require.NoError(t, err)
	require.Equal(t, []game.Vertex{vertex(t, "D5")}, move.Captured)

	// The immediate recapture is the forbidden ko.
	_, err = g.Play(vertex(t, "D5"))
	requireIllegal(t, err, ReasonSimpleKo)

	// After a ko threat exchange elsewhere the recapture is legal.
	mustPlay(t, g, "H8", "H7")
	move, err = g.Play(vertex(t, "D5"))
	require.NoError(t, err)
	require.Equal(t, []game.Vertex{vertex(t, "E5")}, move.Captured)
	require.NoError(t, g.Board().CheckConsistency())
}

func TestSimpleKoDoesNotSeeThroughPasses(t *testing.T) {
	g := newTestGame(t, 9, game.DefaultRules())
	playKoShape(t, g)
	mustPlay(t, g, "E5") // black captures D5

	// Simple ko is purely pattern based: once the previous move is a pass,
	// the recapture goes through even though it repeats the position.
	_, err := g.Pass() // white
	require.NoError(t, err)
	_, err = g.Pass() // black
	require.NoError(t, err)

	_, err = g.Play(vertex(t, "D5"))
	require.NoError(t, err)
}

func TestPositionalSuperko(t *testing.T) {
	g := newTestGame(t, 9, game.ChineseRules()) // positional superko
	playKoShape(t, g)
	mustPlay(t, g, "E5")

	// The immediate recapture recreates the position that existed right
	// after white took the ko point, no matter who is to move.
	_, err := g.Play(vertex(t, "D5"))
	requireIllegal(t, err, ReasonSuperko)

	// Passing does not help: the position would still repeat.
	_, err = g.Pass()
	require.NoError(t, err)
	_, err = g.Pass()
	require.NoError(t, err)
	_, err = g.Play(vertex(t, "D5"))
	requireIllegal(t, err, ReasonSuperko)
}

// buildKoShapeEndingWithBlack reaches the same ko shape as playKoShape, but
// orders the moves so that the position is first recorded with white to
// move. Replaying a position with the other player to move separates the
// situational rule from the positional one.
func buildKoShapeEndingWithBlack(t *testing.T, g *Game) {
	t.Helper()
	mustPlay(t, g, "C5", "D5", "D4", "E4")
	_, err := g.Pass()
	require.NoError(t, err)
	mustPlay(t, g, "E6")
	_, err = g.Pass()
	require.NoError(t, err)
	mustPlay(t, g, "F5", "D6") // white F5, then black D6 completes the shape
}

func TestSituationalSuperkoKeysOnPlayerToMove(t *testing.T) {
	capture := func(t *testing.T, g *Game) {
		t.Helper()
		// Black moves again out of turn, as when replaying a stored record.
		_, err := g.ApplyMove(game.ColorBlack, vertex(t, "E5"))
		require.NoError(t, err)
	}

	t.Run("situational allows repeat with other mover", func(t *testing.T) {
		g := newTestGame(t, 9, game.AGARules()) // situational superko
		buildKoShapeEndingWithBlack(t, g)
		capture(t, g)
		// White recaptures: the board repeats, but the recorded position had
		// white to move and now black would be, so the situation is new.
		_, err := g.Play(vertex(t, "D5"))
		require.NoError(t, err)
	})

	t.Run("positional rejects the same repeat", func(t *testing.T) {
		g := newTestGame(t, 9, game.ChineseRules())
		buildKoShapeEndingWithBlack(t, g)
		capture(t, g)
		_, err := g.Play(vertex(t, "D5"))
		requireIllegal(t, err, ReasonSuperko)
	})
}

func TestCheckMoveLeavesGameUntouched(t *testing.T) {
	g := newTestGame(t, 9, game.DefaultRules())
	mustPlay(t, g, "A2", "A1") // white A1 is capturable at B1

	before := stones(g.Board())
	hash := g.Board().Hash()

	require.NoError(t, g.CheckMove(game.ColorBlack, vertex(t, "B1")))
	require.True(t, g.IsLegalMove(game.ColorBlack, vertex(t, "B1")))
	requireIllegal(t, g.CheckMove(game.ColorBlack, vertex(t, "A1")), ReasonIntersectionOccupied)

	require.Empty(t, cmp.Diff(before, stones(g.Board())))
	require.Equal(t, hash, g.Board().Hash())
	require.Equal(t, 2, g.MoveCount())
	require.Equal(t, 0, g.CapturedBy(game.ColorBlack))
	require.NoError(t, g.Board().CheckConsistency())
}

func TestMoveCeiling(t *testing.T) {
	rules := game.DefaultRules()
	rules.MaxMoves = 2
	g := newTestGame(t, 9, rules)
	mustPlay(t, g, "C3", "G7")

	_, err := g.Play(vertex(t, "E5"))
	requireIllegal(t, err, ReasonTooManyMoves)
	_, err = g.Pass()
	requireIllegal(t, err, ReasonTooManyMoves)
	require.Equal(t, 2, g.MoveCount())
}

func TestTwoPassesEndTheGame(t *testing.T) {
	g := newTestGame(t, 9, game.DefaultRules())
	mustPlay(t, g, "C3")

	_, err := g.Pass()
	require.NoError(t, err)
	require.False(t, g.Ended())

	_, err = g.Pass()
	require.NoError(t, err)
	require.True(t, g.Ended())
	require.Equal(t, 3, g.MoveCount())

	// A move after the passes resets the pass streak for future endings.
	mustPlay(t, g, "G7")
	require.Equal(t, MovePass, g.Moves()[1].Type)
}

func TestHandicapGame(t *testing.T) {
	g := newTestGame(t, 19, game.JapaneseRules(), WithHandicap(4))
	require.Equal(t, 4, g.Handicap())
	require.Equal(t, game.ColorWhite, g.NextColor(), "white moves first in a handicap game")
	require.Equal(t, 0.5, g.Komi())

	b := g.Board()
	placed := 0
	for _, h := range b.StarPoints() {
		if b.Point(h).Stone == game.ColorBlack {
			placed++
		}
	}
	require.Equal(t, 4, placed)

	move, err := g.Play(vertex(t, "Q10"))
	require.NoError(t, err)
	require.Equal(t, game.ColorWhite, move.Color)
}

func TestDefaultKomiFollowsScoringSystem(t *testing.T) {
	require.Equal(t, 7.5, newTestGame(t, 9, game.ChineseRules()).Komi())
	require.Equal(t, 6.5, newTestGame(t, 9, game.JapaneseRules()).Komi())
	require.Equal(t, 5.5, newTestGame(t, 9, game.ChineseRules(), WithKomi(5.5)).Komi())
}

func TestHandicapValidation(t *testing.T) {
	_, err := NewGame(9, game.DefaultRules(), WithHandicap(1), WithLogger(zerolog.Nop()))
	require.Error(t, err)
	_, err = NewGame(7, game.DefaultRules(), WithHandicap(5), WithLogger(zerolog.Nop()))
	require.Error(t, err)
}

func TestMovesReturnsACopy(t *testing.T) {
	g := newTestGame(t, 9, game.DefaultRules())
	mustPlay(t, g, "C3", "G7")
	moves := g.Moves()
	moves[0].Vertex = vertex(t, "A1")
	require.Equal(t, vertex(t, "C3"), g.Moves()[0].Vertex)
}
