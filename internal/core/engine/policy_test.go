package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"adforge/internal/core/domain"
)

func TestCanIterate(t *testing.T) {
	red := liveCreative(30)
	red.MaxIterations = 3

	require.Empty(t, CanIterate(red, testThresholds))

	archived := &domain.Creative{Stage: domain.StageArchived}
	require.Equal(t, ReasonAlreadyDead, CanIterate(archived, testThresholds))

	drafting := &domain.Creative{Stage: domain.StageDrafting, Metrics: metricSeq(30)}
	require.Equal(t, ReasonNotLive, CanIterate(drafting, testThresholds))

	green := liveCreative(10)
	green.MaxIterations = 3
	require.Equal(t, ReasonNotRed, CanIterate(green, testThresholds))

	capped := liveCreative(30)
	capped.MaxIterations = 3
	capped.Iterations = 3
	require.Equal(t, ReasonIterationLimit, CanIterate(capped, testThresholds))
}

func TestCanKill(t *testing.T) {
	eligible := liveCreative(30)
	eligible.MaxIterations = 3
	eligible.Iterations = 3
	require.Empty(t, CanKill(eligible, testThresholds))

	under := liveCreative(30)
	under.MaxIterations = 3
	under.Iterations = 2
	require.Equal(t, ReasonUnderIterLimit, CanKill(under, testThresholds))

	// A creative that recovered to yellow at the cap is not killable.
	recovered := liveCreative(20)
	recovered.MaxIterations = 3
	recovered.Iterations = 3
	require.Equal(t, ReasonNotRed, CanKill(recovered, testThresholds))

	archived := &domain.Creative{Stage: domain.StageArchived}
	require.Equal(t, ReasonAlreadyDead, CanKill(archived, testThresholds))
}

func TestIterateCreative(t *testing.T) {
	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	c := liveCreative(30)
	c.MaxIterations = 3
	c.BriefApproved = true
	c.DraftSubmitted = true
	c.FinalApproved = true
	c.Comments = []domain.Comment{{Text: "keep"}}

	IterateCreative(c, "Hook too slow", now)

	require.Equal(t, 1, c.Iterations)
	require.Equal(t, domain.StageDrafting, c.Stage)
	require.False(t, c.BriefApproved)
	require.False(t, c.DraftSubmitted)
	require.False(t, c.FinalApproved)
	require.Equal(t, "Iteration 1 — Hook too slow", c.Notes)
	require.Len(t, c.IterationLog, 1)
	require.Equal(t, domain.IterationEntry{Number: 1, Reason: "Hook too slow", At: now}, c.IterationLog[0])

	// History survives the reset.
	require.Len(t, c.Comments, 1)
	require.NotEmpty(t, c.Metrics)
}

func TestIterateCreativeIsUnconditional(t *testing.T) {
	// The primitive does not check eligibility; that belongs to the command
	// layer.
	c := &domain.Creative{Stage: domain.StageReview, Iterations: 7, MaxIterations: 3}
	IterateCreative(c, "forced", time.Now())
	require.Equal(t, 8, c.Iterations)
	require.Equal(t, domain.StageDrafting, c.Stage)
}

func TestKillCreative(t *testing.T) {
	c := liveCreative(30)
	c.Learnings = []domain.Learning{{Text: "pain-first opens win"}}
	KillCreative(c)
	require.Equal(t, domain.StageArchived, c.Stage)
	require.Len(t, c.Learnings, 1)
	require.NotEmpty(t, c.Metrics)
}
