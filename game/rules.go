package game

// KoRule selects how position repetition is restricted.
type KoRule int8

const (
	// KoRuleSimple forbids only the immediate single-stone recapture.
	KoRuleSimple KoRule = iota
	// KoRuleSuperkoPositional forbids recreating any previous whole-board
	// position, over the entire game.
	KoRuleSuperkoPositional
	// KoRuleSuperkoSituational forbids recreating any previous whole-board
	// position with the same color to move.
	KoRuleSuperkoSituational
)

func (k KoRule) String() string {
	switch k {
	case KoRuleSuperkoPositional:
		return "positional superko"
	case KoRuleSuperkoSituational:
		return "situational superko"
	default:
		return "simple ko"
	}
}

type ScoringSystem int8

const (
	// AreaScoring counts live stones plus surrounded territory.
	AreaScoring ScoringSystem = iota
	// TerritoryScoring counts surrounded territory plus captures and dead
	// stones, ignoring live stones on the board.
	TerritoryScoring
)

func (s ScoringSystem) String() string {
	if s == TerritoryScoring {
		return "territory scoring"
	}
	return "area scoring"
}

// DefaultMaxMoves is the default technical move-count ceiling. It is not a
// game rule; it bounds degenerate games.
const DefaultMaxMoves = 700

// Rules is the read-only rule configuration for one game. The core never
// mutates it.
type Rules struct {
	Ko       KoRule
	Scoring  ScoringSystem
	MaxMoves int
}

func DefaultRules() Rules {
	return Rules{Ko: KoRuleSimple, Scoring: AreaScoring, MaxMoves: DefaultMaxMoves}
}

// Ruleset presets for common rule traditions.

func AGARules() Rules {
	return Rules{Ko: KoRuleSuperkoSituational, Scoring: AreaScoring, MaxMoves: DefaultMaxMoves}
}

func ChineseRules() Rules {
	return Rules{Ko: KoRuleSuperkoPositional, Scoring: AreaScoring, MaxMoves: DefaultMaxMoves}
}

func JapaneseRules() Rules {
	return Rules{Ko: KoRuleSimple, Scoring: TerritoryScoring, MaxMoves: DefaultMaxMoves}
}

func IGSRules() Rules {
	return Rules{Ko: KoRuleSimple, Scoring: TerritoryScoring, MaxMoves: DefaultMaxMoves}
}

// DefaultKomi returns the customary komi for a game: 7.5 under area scoring
// and 6.5 under territory scoring for even games, 0.5 for handicap games.
func DefaultKomi(handicap int, s ScoringSystem) float64 {
	if handicap > 0 {
		return 0.5
	}
	if s == TerritoryScoring {
		return 6.5
	}
	return 7.5
}
