package engine

import (
	"fmt"
	"time"

	"adforge/internal/core/domain"
)

// Policy denial reasons, reported as values like gate reasons.
const (
	ReasonNotLive        = "only live creatives are eligible"
	ReasonNotRed         = "creative is not classified red"
	ReasonIterationLimit = "iteration limit reached — kill or keep running"
	ReasonUnderIterLimit = "iteration limit not reached yet"
	ReasonAlreadyDead    = "creative is already archived"
	ReasonParentNotLive  = "parent must be live to branch a variant"
	ReasonParentNotGreen = "parent must be classified green to branch a variant"
)

// CanIterate reports "" when a creative may be sent back for another
// iteration, or the reason it may not: it must be Live, classified red
// against current thresholds, and under its iteration cap.
func CanIterate(c *domain.Creative, th domain.Thresholds) string {
	if c.Stage == domain.StageArchived {
		return ReasonAlreadyDead
	}
	if c.Stage != domain.StageLive {
		return ReasonNotLive
	}
	if ClassifyCreative(c, th) != TierRed {
		return ReasonNotRed
	}
	if c.Iterations >= c.MaxIterations {
		return ReasonIterationLimit
	}
	return ""
}

// CanKill reports "" when a creative is kill-eligible: its iteration count
// has reached the cap and it is still classified red. Killing is never
// automatic; eligibility only unlocks the explicit action.
func CanKill(c *domain.Creative, th domain.Thresholds) string {
	if c.Stage == domain.StageArchived {
		return ReasonAlreadyDead
	}
	if c.Stage != domain.StageLive {
		return ReasonNotLive
	}
	if c.Iterations < c.MaxIterations {
		return ReasonUnderIterLimit
	}
	if ClassifyCreative(c, th) != TierRed {
		return ReasonNotRed
	}
	return ""
}

// IterateCreative applies an iteration in place: it bumps the counter,
// resets the stage to drafting, clears all three gate flags, logs the
// iteration and stamps the notes. It checks nothing; eligibility lives in
// the command layer.
func IterateCreative(c *domain.Creative, reason string, now time.Time) {
	c.Iterations++
	c.Stage = domain.StageDrafting
	c.BriefApproved = false
	c.DraftSubmitted = false
	c.FinalApproved = false
	c.IterationLog = append(c.IterationLog, domain.IterationEntry{
		Number: c.Iterations,
		Reason: reason,
		At:     now,
	})
	c.Notes = fmt.Sprintf("Iteration %d — %s", c.Iterations, reason)
}

// KillCreative archives a creative in place. Nothing else changes:
// collaboration history survives a kill. Like IterateCreative it is
// unconditional.
func KillCreative(c *domain.Creative) {
	c.Stage = domain.StageArchived
}
