package engine

import "adforge/internal/core/domain"

// Tier is a performance verdict derived from CPA against the current
// thresholds.
type Tier string

const (
	TierNone   Tier = "none"
	TierGreen  Tier = "green"
	TierYellow Tier = "yellow"
	TierRed    Tier = "red"
)

// WinnerStreak is how many consecutive most-recent green days confirm a
// winner.
const WinnerStreak = 5

// Classify maps a CPA value to a tier. Boundary values belong to the lower
// tier (≤, not <). A CPA of zero or less means no data and classifies as
// none.
func Classify(cpa float64, th domain.Thresholds) Tier {
	switch {
	case cpa <= 0:
		return TierNone
	case cpa <= th.Green:
		return TierGreen
	case cpa <= th.Yellow:
		return TierYellow
	default:
		return TierRed
	}
}

// ClassifyCreative classifies a creative by its latest manual metric. Only
// Live creatives are classified; everything else is none regardless of
// history.
func ClassifyCreative(c *domain.Creative, th domain.Thresholds) Tier {
	if c.Stage != domain.StageLive {
		return TierNone
	}
	latest := c.LatestMetric()
	if latest == nil {
		return TierNone
	}
	return Classify(latest.CPA, th)
}

// GreenStreak counts, scanning backward from the most recent record, how
// many consecutive records sit at or under the green threshold. The count
// stops at the first record that does not qualify; a record without a CPA
// never qualifies.
func GreenStreak(c *domain.Creative, th domain.Thresholds) int {
	streak := 0
	for i := len(c.Metrics) - 1; i >= 0; i-- {
		cpa := c.Metrics[i].CPA
		if cpa <= 0 || cpa > th.Green {
			break
		}
		streak++
	}
	return streak
}

// IsWinner reports whether a creative is a confirmed winner: Live,
// currently green, and green for at least WinnerStreak consecutive
// most-recent days.
func IsWinner(c *domain.Creative, th domain.Thresholds) bool {
	return ClassifyCreative(c, th) == TierGreen && GreenStreak(c, th) >= WinnerStreak
}
