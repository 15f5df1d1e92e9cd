package battle

import "fmt"

type BattleOutcome int

const (
	OutcomeInconclusive BattleOutcome = iota
	OutcomeRedVictory
	OutcomeBlueVictory
	OutcomeDraw
)

func (o BattleOutcome) String() string {
	switch o {
	case OutcomeRedVictory:
		return "red_victory"
	case OutcomeBlueVictory:
		return "blue_victory"
	case OutcomeDraw:
		return "draw"
	case OutcomeInconclusive:
		return "inconclusive"
	default:
		return "unknown"
	}
}

// Outcome thresholds on casualty rate (dead / total).
const (
	outcomeCollapseRate = 0.80 // a side this depleted has lost
	outcomeMarginGap    = 0.30 // casualty-rate lead that decides a marginal win
	outcomeDrawGap      = 0.20
	outcomeEngagedRate  = 0.30 // below this on both sides nothing was decided
)

type BattleOutcomeReason struct {
	Outcome       BattleOutcome
	RedSurvivors  int
	RedTotal      int
	BlueSurvivors int
	BlueTotal     int
	Description   string
}

func (r BattleOutcomeReason) String() string {
	return fmt.Sprintf("%s (%s) blue %d/%d red %d/%d",
		r.Outcome, r.Description, r.BlueSurvivors, r.BlueTotal, r.RedSurvivors, r.RedTotal)
}

// DetermineBattleOutcome classifies the current state of w from survivor
// counts alone.
func DetermineBattleOutcome(w *World) BattleOutcomeReason {
	var total, alive [factionCount]int
	for _, u := range w.Units() {
		total[u.Faction]++
		if u.Active() {
			alive[u.Faction]++
		}
	}
	return classifyOutcome(alive, total)
}

func classifyOutcome(alive, total [factionCount]int) BattleOutcomeReason {
	r := BattleOutcomeReason{
		RedSurvivors:  alive[FactionRed],
		RedTotal:      total[FactionRed],
		BlueSurvivors: alive[FactionBlue],
		BlueTotal:     total[FactionBlue],
	}
	rate := func(f Faction) float64 {
		if total[f] == 0 {
			return 0
		}
		return float64(total[f]-alive[f]) / float64(total[f])
	}
	red, blue := rate(FactionRed), rate(FactionBlue)

	switch {
	case r.RedTotal == 0 || r.BlueTotal == 0:
		r.Outcome, r.Description = OutcomeInconclusive, "inconclusive_missing_side"
	case r.RedSurvivors == 0 && r.BlueSurvivors > 0:
		r.Outcome, r.Description = OutcomeBlueVictory, "decisive_blue_victory_red_eliminated"
	case r.BlueSurvivors == 0 && r.RedSurvivors > 0:
		r.Outcome, r.Description = OutcomeRedVictory, "decisive_red_victory_blue_eliminated"
	case r.RedSurvivors == 0 && r.BlueSurvivors == 0:
		r.Outcome, r.Description = OutcomeDraw, "mutual_annihilation"
	case red >= outcomeCollapseRate && blue >= outcomeCollapseRate:
		r.Outcome, r.Description = OutcomeDraw, "draw_mutual_collapse"
	case red >= outcomeCollapseRate:
		r.Outcome, r.Description = OutcomeBlueVictory, "blue_victory_red_collapsed"
	case blue >= outcomeCollapseRate:
		r.Outcome, r.Description = OutcomeRedVictory, "red_victory_blue_collapsed"
	case red-blue > outcomeMarginGap:
		r.Outcome, r.Description = OutcomeBlueVictory, "marginal_blue_victory_casualty_advantage"
	case blue-red > outcomeMarginGap:
		r.Outcome, r.Description = OutcomeRedVictory, "marginal_red_victory_casualty_advantage"
	case abs(red-blue) <= outcomeDrawGap && (red > outcomeEngagedRate || blue > outcomeEngagedRate):
		r.Outcome, r.Description = OutcomeDraw, "draw_similar_casualties"
	default:
		r.Outcome, r.Description = OutcomeInconclusive, "inconclusive_insufficient_resolution"
	}
	return r
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
