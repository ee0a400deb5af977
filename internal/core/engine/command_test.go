package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"adforge/internal/core/domain"
)

var testNow = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func snapshotOf(creatives ...domain.Creative) Snapshot {
	return Snapshot{Creatives: creatives}
}

func TestApplyCreateCreative(t *testing.T) {
	next, out, err := Apply(Snapshot{}, CreateCreative{Name: "Hook Test", Type: "VSL", Editor: "Maya"}, testThresholds, testNow)
	require.NoError(t, err)
	require.NotNil(t, out.Created)
	require.Len(t, next.Creatives, 1)

	c := next.Creatives[0]
	require.Equal(t, domain.StageDrafting, c.Stage)
	require.Equal(t, DefaultMaxIterations, c.MaxIterations)
	require.False(t, c.BriefApproved)
	require.Equal(t, testNow, c.CreatedAt)
	require.Equal(t, []uuid.UUID{c.ID}, out.Touched)

	_, _, err = Apply(Snapshot{}, CreateCreative{}, testThresholds, testNow)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	c := *liveCreative(30)
	c.ID = uuid.New()
	c.MaxIterations = 3
	s := snapshotOf(c)

	next, out, err := Apply(s, Iterate{ID: c.ID}, testThresholds, testNow)
	require.NoError(t, err)
	require.Empty(t, out.Denied)

	require.Equal(t, domain.StageLive, s.Creatives[0].Stage)
	require.Equal(t, 0, s.Creatives[0].Iterations)
	require.Empty(t, s.Creatives[0].IterationLog)

	require.Equal(t, domain.StageDrafting, next.Creatives[0].Stage)
	require.Equal(t, 1, next.Creatives[0].Iterations)
}

func TestApplyUnknownID(t *testing.T) {
	_, _, err := Apply(Snapshot{}, Kill{ID: uuid.New()}, testThresholds, testNow)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestApplyMoveStageDenied(t *testing.T) {
	c := domain.Creative{ID: uuid.New(), Stage: domain.StageDrafting}
	next, out, err := Apply(snapshotOf(c), MoveStage{ID: c.ID, To: domain.StageInProgress}, testThresholds, testNow)
	require.NoError(t, err)
	require.Equal(t, ReasonBriefUnapproved, out.Denied)
	require.Equal(t, domain.StageDrafting, next.Creatives[0].Stage)

	_, _, err = Apply(snapshotOf(c), MoveStage{ID: c.ID, To: "limbo"}, testThresholds, testNow)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestApplyIterateDefaultReason(t *testing.T) {
	c := *liveCreative(30)
	c.ID = uuid.New()
	c.MaxIterations = 3
	next, out, err := Apply(snapshotOf(c), Iterate{ID: c.ID}, testThresholds, testNow)
	require.NoError(t, err)
	require.Empty(t, out.Denied)
	require.Equal(t, "Based on metrics", next.Creatives[0].IterationLog[0].Reason)
}

func TestApplyIterateDenied(t *testing.T) {
	c := *liveCreative(10)
	c.ID = uuid.New()
	c.MaxIterations = 3
	_, out, err := Apply(snapshotOf(c), Iterate{ID: c.ID}, testThresholds, testNow)
	require.NoError(t, err)
	require.Equal(t, ReasonNotRed, out.Denied)
}

func TestApplyKillDenied(t *testing.T) {
	c := *liveCreative(30)
	c.ID = uuid.New()
	c.MaxIterations = 3
	c.Iterations = 1
	_, out, err := Apply(snapshotOf(c), Kill{ID: c.ID}, testThresholds, testNow)
	require.NoError(t, err)
	require.Equal(t, ReasonUnderIterLimit, out.Denied)
}

func TestApplyCreateVariant(t *testing.T) {
	parent := *liveCreative(10, 9, 8, 7, 6)
	parent.ID = uuid.New()
	parent.Name = "Winner"
	parent.Type = "VSL"
	parent.MaxIterations = 3

	next, out, err := Apply(snapshotOf(parent), CreateVariant{ParentID: parent.ID, Name: "Winner v2"}, testThresholds, testNow)
	require.NoError(t, err)
	require.NotNil(t, out.Created)
	require.Len(t, next.Creatives, 2)

	v := next.Creatives[1]
	require.Equal(t, domain.StageDrafting, v.Stage)
	require.True(t, v.BriefApproved)
	require.Equal(t, "VSL", v.Type)
	require.Equal(t, parent.ID, *v.ParentID)
	require.Equal(t, "Variation of Winner", v.Notes)

	require.Equal(t, []uuid.UUID{v.ID}, next.Creatives[0].ChildIDs)
	require.Empty(t, parent.ChildIDs)
	require.ElementsMatch(t, []uuid.UUID{v.ID, parent.ID}, out.Touched)
}

func TestApplyCreateVariantPreconditions(t *testing.T) {
	parent := *liveCreative(30)
	parent.ID = uuid.New()
	_, out, err := Apply(snapshotOf(parent), CreateVariant{ParentID: parent.ID, Name: "v2"}, testThresholds, testNow)
	require.NoError(t, err)
	require.Equal(t, ReasonParentNotGreen, out.Denied)

	parent.Stage = domain.StageReview
	_, out, err = Apply(snapshotOf(parent), CreateVariant{ParentID: parent.ID, Name: "v2"}, testThresholds, testNow)
	require.NoError(t, err)
	require.Equal(t, ReasonParentNotLive, out.Denied)

	_, _, err = Apply(Snapshot{}, CreateVariant{ParentID: uuid.New(), Name: "v2"}, testThresholds, testNow)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestApplyAppendMetricValidation(t *testing.T) {
	c := domain.Creative{ID: uuid.New(), Stage: domain.StageLive}
	s := snapshotOf(c)

	for _, bad := range []domain.MetricRecord{
		{CPA: 10, Spend: 100},                             // no date
		{Date: "2026-01-01", Spend: 100},                  // no cpa
		{Date: "2026-01-01", CPA: 10},                     // no spend
		{Date: "2026-01-01", CPA: 10, Spend: 50, CTR: -1}, // negative rate
	} {
		_, _, err := Apply(s, AppendMetric{ID: c.ID, Record: bad}, testThresholds, testNow)
		require.ErrorIs(t, err, ErrInvalidInput)
	}

	next, out, err := Apply(s, AppendMetric{ID: c.ID, Record: domain.MetricRecord{Date: "2026-01-01", CPA: 10, Spend: 100}}, testThresholds, testNow)
	require.NoError(t, err)
	require.Empty(t, out.Denied)
	require.Len(t, next.Creatives[0].Metrics, 1)
	require.Equal(t, testNow, next.Creatives[0].UpdatedAt)
}

func TestApplySetChannelMetrics(t *testing.T) {
	c := domain.Creative{
		ID:            uuid.New(),
		Stage:         domain.StageLive,
		ChannelAdSets: map[domain.Channel]string{domain.ChannelMeta: "adset-1"},
	}
	records := []domain.MetricRecord{{Date: "2026-01-01", CPA: 10, Spend: 100}}

	next, _, err := Apply(snapshotOf(c), SetChannelMetrics{ID: c.ID, Channel: domain.ChannelMeta, Records: records}, testThresholds, testNow)
	require.NoError(t, err)
	require.Len(t, next.Creatives[0].ChannelMetrics[domain.ChannelMeta], 1)
	require.False(t, next.Creatives[0].ChannelLinkEmpty[domain.ChannelMeta])

	// An empty batch on a linked channel flips to "linked but no data" and
	// drops the stale sequence.
	next, _, err = Apply(next, SetChannelMetrics{ID: c.ID, Channel: domain.ChannelMeta}, testThresholds, testNow)
	require.NoError(t, err)
	require.Empty(t, next.Creatives[0].ChannelMetrics[domain.ChannelMeta])
	require.True(t, next.Creatives[0].ChannelLinkEmpty[domain.ChannelMeta])

	_, _, err = Apply(snapshotOf(c), SetChannelMetrics{ID: c.ID, Channel: "myspace"}, testThresholds, testNow)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestApplyRemoveIsIdempotent(t *testing.T) {
	c := domain.Creative{
		ID:       uuid.New(),
		Stage:    domain.StageLive,
		Comments: []domain.Comment{{ID: uuid.New(), Text: "nice"}},
	}
	next, out, err := Apply(snapshotOf(c), RemoveComment{ID: c.ID, CommentID: uuid.New()}, testThresholds, testNow)
	require.NoError(t, err)
	require.Empty(t, out.Denied)
	require.Len(t, next.Creatives[0].Comments, 1)

	next, _, err = Apply(next, RemoveComment{ID: c.ID, CommentID: c.Comments[0].ID}, testThresholds, testNow)
	require.NoError(t, err)
	require.Empty(t, next.Creatives[0].Comments)
}

func TestApplyDraftFlow(t *testing.T) {
	c := domain.Creative{ID: uuid.New(), Stage: domain.StageInProgress}

	next, _, err := Apply(snapshotOf(c), SubmitDraft{ID: c.ID, Name: "cut-v1.mp4"}, testThresholds, testNow)
	require.NoError(t, err)
	got := next.Creatives[0]
	require.True(t, got.DraftSubmitted)
	require.Len(t, got.Drafts, 1)
	require.Equal(t, 1, got.Drafts[0].Version)
	require.Equal(t, domain.DraftInReview, got.Drafts[0].Status)

	next, _, err = Apply(next, ApproveDraft{ID: c.ID, DraftID: got.Drafts[0].ID}, testThresholds, testNow)
	require.NoError(t, err)
	require.True(t, next.Creatives[0].FinalApproved)
	require.Equal(t, domain.DraftApproved, next.Creatives[0].Drafts[0].Status)

	_, _, err = Apply(next, ApproveDraft{ID: c.ID, DraftID: uuid.New()}, testThresholds, testNow)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestApplyRevisionFlow(t *testing.T) {
	c := domain.Creative{ID: uuid.New(), Stage: domain.StageReview, FinalApproved: true}

	next, _, err := Apply(snapshotOf(c), RequestRevision{ID: c.ID, From: "Alex", Text: "tighten the hook"}, testThresholds, testNow)
	require.NoError(t, err)
	req := next.Creatives[0].RevisionRequests[0]
	require.False(t, req.Resolved)

	// Open request blocks the move to live.
	_, out, err := Apply(next, MoveStage{ID: c.ID, To: domain.StageLive}, testThresholds, testNow)
	require.NoError(t, err)
	require.Equal(t, ReasonOpenRevisions, out.Denied)

	next, _, err = Apply(next, ResolveRevision{ID: c.ID, RevisionID: req.ID}, testThresholds, testNow)
	require.NoError(t, err)
	require.True(t, next.Creatives[0].RevisionRequests[0].Resolved)

	_, out, err = Apply(next, MoveStage{ID: c.ID, To: domain.StageLive}, testThresholds, testNow)
	require.NoError(t, err)
	require.Empty(t, out.Denied)
}

func TestApplyUnknownFlag(t *testing.T) {
	c := domain.Creative{ID: uuid.New(), Stage: domain.StageDrafting}
	_, _, err := Apply(snapshotOf(c), ToggleFlag{ID: c.ID, Flag: "approved-by-vibes"}, testThresholds, testNow)
	require.True(t, errors.Is(err, ErrInvalidInput))
}
