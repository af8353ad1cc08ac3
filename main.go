package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"goban/engine"
	"goban/game"
	"goban/score"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	runCaptureDemo()
}

// runCaptureDemo plays a short scripted 9x9 game in which black surrounds
// and captures a white stone, then scores the final position.
func runCaptureDemo() {
	g, err := engine.NewGame(9, game.ChineseRules())
	if err != nil {
		log.Fatal().Err(err).Msg("cannot start game")
	}

	moves := []string{
		"D5", // black
		"E5", // white
		"F5",
		"A9",
		"E4",
		"B9",
		"E6", // black captures E5
	}
	for _, s := range moves {
		v, err := game.ParseVertex(s)
		if err != nil {
			log.Fatal().Err(err).Msg("bad vertex in script")
		}
		if _, err := g.Play(v); err != nil {
			log.Fatal().Err(err).Str("vertex", s).Msg("scripted move rejected")
		}
	}

	fmt.Println(renderBoard(g.Board()))

	// The recapture at E5 would be legal here; show a rejection instead by
	// probing the occupied point D5.
	v, _ := game.ParseVertex("D5")
	if err := g.CheckMove(game.ColorWhite, v); err != nil {
		fmt.Printf("probe: %v\n", err)
	}

	if _, err := g.Pass(); err != nil {
		log.Fatal().Err(err).Msg("pass rejected")
	}
	if _, err := g.Pass(); err != nil {
		log.Fatal().Err(err).Msg("pass rejected")
	}

	// Mark the two lone white stones in the top-left as dead before
	// scoring.
	g.Board().SetScoringMode(true)
	for _, s := range []string{"A9", "B9"} {
		v, _ := game.ParseVertex(s)
		r := g.Board().RegionOf(g.Board().PointAt(v))
		if r.GroupState != game.GroupDead {
			score.ToggleDead(g.Board(), r)
		}
	}

	s := score.Calculate(g)
	fmt.Printf("black: %.1f (alive %d, territory %d)\n", s.TotalBlack, s.AliveBlack, s.TerritoryBlack)
	fmt.Printf("white: %.1f (alive %d, territory %d, komi %.1f)\n", s.TotalWhite, s.AliveWhite, s.TerritoryWhite, s.Komi)
	fmt.Printf("result: %s\n", s.ResultString())
}

func renderBoard(b *game.Board) string {
	var sb strings.Builder
	size := b.Size()
	for row := size; row >= 1; row-- {
		fmt.Fprintf(&sb, "%2d ", row)
		for col := 1; col <= size; col++ {
			h := b.PointAt(game.Vertex{Col: col, Row: row})
			p := b.Point(h)
			switch {
			case p.Stone == game.ColorBlack:
				sb.WriteString("X ")
			case p.Stone == game.ColorWhite:
				sb.WriteString("O ")
			case p.Star:
				sb.WriteString("+ ")
			default:
				sb.WriteString(". ")
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("   ")
	for col := 1; col <= size; col++ {
		sb.WriteString(game.Vertex{Col: col, Row: 1}.String()[:1] + " ")
	}
	return sb.String()
}
