package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"adforge/internal/core/domain"
	"adforge/internal/core/engine"
)

func testPipeline(creatives ...domain.Creative) (*Pipeline, *memCreativeRepo) {
	repo := newMemCreativeRepo(creatives...)
	return NewPipeline(repo, &memThresholdRepo{th: domain.Thresholds{Green: 15, Yellow: 25}}, 0, 0), repo
}

func liveRed(name string) domain.Creative {
	return domain.Creative{
		ID:            uuid.New(),
		Name:          name,
		Stage:         domain.StageLive,
		MaxIterations: 3,
		Metrics: []domain.MetricRecord{
			{Date: "2026-01-01", CPA: 30, Spend: 150, Conversions: 5},
		},
	}
}

func TestPipelineExecutePersists(t *testing.T) {
	p, repo := testPipeline()

	res, err := p.Execute(context.Background(), engine.CreateCreative{Name: "Hook Test"})
	require.NoError(t, err)
	require.Empty(t, res.Denied)
	require.NotNil(t, res.Creative)
	require.Equal(t, domain.StageDrafting, res.Creative.Stage)

	n, _ := repo.Count(context.Background())
	require.EqualValues(t, 1, n)
}

func TestPipelineDenialDoesNotPersist(t *testing.T) {
	c := liveRed("Loser")
	c.Iterations = 3
	p, repo := testPipeline(c)

	res, err := p.Execute(context.Background(), engine.Iterate{ID: c.ID})
	require.NoError(t, err)
	require.Equal(t, engine.ReasonIterationLimit, res.Denied)
	require.Nil(t, res.Creative)
	require.Zero(t, repo.saves)

	stored, err := repo.Get(context.Background(), c.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StageLive, stored.Stage)
}

func TestPipelineIterateRoundTrip(t *testing.T) {
	c := liveRed("Loser")
	p, repo := testPipeline(c)

	res, err := p.Execute(context.Background(), engine.Iterate{ID: c.ID, Reason: "Weak hook"})
	require.NoError(t, err)
	require.Empty(t, res.Denied)
	require.Equal(t, domain.StageDrafting, res.Creative.Stage)
	require.Equal(t, 1, res.Creative.Iterations)

	stored, err := repo.Get(context.Background(), c.ID)
	require.NoError(t, err)
	require.Equal(t, 1, stored.Iterations)
	require.Equal(t, "Iteration 1 — Weak hook", stored.Notes)
}

func TestPipelineVariantPersistsBoth(t *testing.T) {
	parent := domain.Creative{
		ID:            uuid.New(),
		Name:          "Winner",
		Stage:         domain.StageLive,
		MaxIterations: 3,
		Metrics: []domain.MetricRecord{
			{Date: "2026-01-01", CPA: 10, Spend: 100, Conversions: 10},
		},
	}
	p, repo := testPipeline(parent)

	res, err := p.Execute(context.Background(), engine.CreateVariant{ParentID: parent.ID, Name: "Winner v2"})
	require.NoError(t, err)
	require.Empty(t, res.Denied)
	require.Equal(t, parent.ID, *res.Creative.ParentID)

	storedParent, err := repo.Get(context.Background(), parent.ID)
	require.NoError(t, err)
	require.Equal(t, []uuid.UUID{res.Creative.ID}, storedParent.ChildIDs)
}

func TestPipelineViewDecoration(t *testing.T) {
	c := domain.Creative{
		ID:            uuid.New(),
		Name:          "Winner",
		Stage:         domain.StageLive,
		MaxIterations: 3,
		Metrics: []domain.MetricRecord{
			{Date: "2026-01-01", CPA: 14, Spend: 140, Conversions: 10},
			{Date: "2026-01-02", CPA: 12, Spend: 120, Conversions: 10},
			{Date: "2026-01-03", CPA: 11, Spend: 110, Conversions: 10},
			{Date: "2026-01-04", CPA: 10, Spend: 100, Conversions: 10},
			{Date: "2026-01-05", CPA: 9, Spend: 90, Conversions: 10},
		},
		ChannelMetrics: map[domain.Channel][]domain.MetricRecord{
			domain.ChannelTikTok: {{Date: "2026-01-05", CPA: 8}},
		},
	}
	p, _ := testPipeline(c)

	view, err := p.Get(context.Background(), c.ID)
	require.NoError(t, err)
	require.Equal(t, engine.TierGreen, view.Tier)
	require.Equal(t, 5, view.GreenStreak)
	require.True(t, view.Winner)
	require.Equal(t, domain.ChannelTikTok, view.BestChannel)
	require.NotNil(t, view.Totals)
	require.Equal(t, 11.2, view.Totals.AvgCPA)
	require.Equal(t, engine.ReasonNotRed, view.IterateDenied)
	require.Equal(t, engine.ReasonUnderIterLimit, view.KillDenied)
}

func TestPipelineGetUnknown(t *testing.T) {
	p, _ := testPipeline()
	_, err := p.Get(context.Background(), uuid.New())
	require.Error(t, err)
}

func TestPipelineSetThresholdsValidation(t *testing.T) {
	p, _ := testPipeline()
	require.ErrorIs(t, p.SetThresholds(context.Background(), domain.Thresholds{Green: 0, Yellow: 25}), engine.ErrInvalidInput)
	require.NoError(t, p.SetThresholds(context.Background(), domain.Thresholds{Green: 12, Yellow: 20}))

	th, err := p.Thresholds(context.Background())
	require.NoError(t, err)
	require.Equal(t, 12.0, th.Green)
}
