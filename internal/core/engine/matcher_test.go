package engine

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"adforge/internal/core/domain"
)

func TestMatchRowsByID(t *testing.T) {
	c := domain.Creative{
		ID:    uuid.New(),
		Name:  "Hook Test",
		Stage: domain.StageLive,
		ChannelAdSets: map[domain.Channel]string{
			domain.ChannelMeta:   "adset-1",
			domain.ChannelTikTok: "adset-2",
		},
	}
	rows := []domain.ChannelRow{
		{Date: "2026-01-01", AdSetID: "adset-1", AdSetName: "Hook Test", Channel: "facebook-ads", Spend: 100, Purchases: 10},
		// Same id on the wrong channel must not match meta's configuration.
		{Date: "2026-01-01", AdSetID: "adset-1", AdSetName: "Hook Test", Channel: "tiktok-ads", Spend: 999, Purchases: 1},
	}

	matches := MatchRows(rows, []domain.Creative{c})
	require.Len(t, matches, 1)
	require.Equal(t, c.ID, matches[0].CreativeID)

	meta := matches[0].Channels[domain.ChannelMeta]
	require.Equal(t, MatchByID, meta.Type)
	require.Len(t, meta.Records, 1)
	require.Equal(t, 100.0, meta.Records[0].Spend)

	// tiktok is configured with adset-2, which had no rows.
	tiktok := matches[0].Channels[domain.ChannelTikTok]
	require.Equal(t, MatchIDNoData, tiktok.Type)
	require.Empty(t, tiktok.Records)
}

func TestMatchRowsNameFallbackOnlyWithoutIDs(t *testing.T) {
	linked := domain.Creative{
		ID:            uuid.New(),
		Name:          "Summer Sale",
		Stage:         domain.StageLive,
		ChannelAdSets: map[domain.Channel]string{domain.ChannelMeta: "adset-9"},
	}
	unlinked := domain.Creative{
		ID:    uuid.New(),
		Name:  "Summer Sale",
		Stage: domain.StageLive,
	}
	rows := []domain.ChannelRow{
		{Date: "2026-01-01", AdSetID: "other", AdSetName: "summer sale - broad", Channel: "tiktok-ads", Spend: 50, Purchases: 5},
	}

	matches := MatchRows(rows, []domain.Creative{linked, unlinked})
	require.Len(t, matches, 2)

	// The linked creative never falls back to names, even when its own id
	// found nothing.
	require.Equal(t, MatchIDNoData, matches[0].Channels[domain.ChannelMeta].Type)
	require.NotContains(t, matches[0].Channels, domain.ChannelTikTok)

	require.Equal(t, MatchByName, matches[1].Channels[domain.ChannelTikTok].Type)
}

func TestMatchRowsNameSubstringBothDirections(t *testing.T) {
	c := domain.Creative{ID: uuid.New(), Name: "UGC Testimonial - Sarah - v2", Stage: domain.StageLive}
	rows := []domain.ChannelRow{
		{Date: "2026-01-01", AdSetID: "a", AdSetName: "ugc testimonial - sarah", Channel: "facebook-ads", Spend: 10, Purchases: 1},
	}
	matches := MatchRows(rows, []domain.Creative{c})
	require.Len(t, matches, 1)
	require.Equal(t, MatchByName, matches[0].Channels[domain.ChannelMeta].Type)
}

func TestMatchRowsSkipsArchived(t *testing.T) {
	c := domain.Creative{
		ID:            uuid.New(),
		Name:          "Dead Ad",
		Stage:         domain.StageArchived,
		ChannelAdSets: map[domain.Channel]string{domain.ChannelMeta: "adset-1"},
	}
	rows := []domain.ChannelRow{
		{Date: "2026-01-01", AdSetID: "adset-1", Channel: "facebook-ads", Spend: 10, Purchases: 1},
	}
	require.Empty(t, MatchRows(rows, []domain.Creative{c}))
}

func TestBuildRecordsAggregatesPerDate(t *testing.T) {
	c := domain.Creative{
		ID:            uuid.New(),
		Name:          "Agg",
		Stage:         domain.StageLive,
		ChannelAdSets: map[domain.Channel]string{domain.ChannelMeta: "adset-1"},
	}
	rows := []domain.ChannelRow{
		{Date: "2026-01-02", AdSetID: "adset-1", Channel: "facebook-ads", Spend: 60, Purchases: 3, Revenue: 120, Clicks: 30, Impressions: 1000},
		{Date: "2026-01-01", AdSetID: "adset-1", Channel: "facebook-ads", Spend: 40, Purchases: 2, Revenue: 100, Clicks: 10, Impressions: 500},
		{Date: "2026-01-02", AdSetID: "adset-1", Channel: "facebook-ads", Spend: 40, Purchases: 2, Revenue: 80, Clicks: 10, Impressions: 1000},
	}

	matches := MatchRows(rows, []domain.Creative{c})
	records := matches[0].Channels[domain.ChannelMeta].Records
	require.Len(t, records, 2)

	// Ascending date order regardless of row order.
	require.Equal(t, "2026-01-01", records[0].Date)
	require.Equal(t, "2026-01-02", records[1].Date)

	day2 := records[1]
	require.Equal(t, 100.0, day2.Spend)
	require.Equal(t, 5, day2.Conversions)
	require.Equal(t, 200.0, day2.Revenue)
	// Rates recomputed from the sums: 100/5, 40/2000*100, 100/2000*1000.
	require.Equal(t, 20.0, day2.CPA)
	require.Equal(t, 2.0, day2.CTR)
	require.Equal(t, 50.0, day2.CPM)
	require.Equal(t, 2.0, day2.ROAS)
}

func TestBestChannel(t *testing.T) {
	c := &domain.Creative{
		ChannelMetrics: map[domain.Channel][]domain.MetricRecord{
			domain.ChannelMeta:   {{Date: "2026-01-01", CPA: 10}, {Date: "2026-01-02", CPA: 18}},
			domain.ChannelTikTok: {{Date: "2026-01-02", CPA: 12}},
		},
	}
	best, ok := BestChannel(c)
	require.True(t, ok)
	// Latest CPA decides: meta's 18 loses to tiktok's 12.
	require.Equal(t, domain.ChannelTikTok, best)
}

func TestBestChannelTieBreak(t *testing.T) {
	c := &domain.Creative{
		ChannelMetrics: map[domain.Channel][]domain.MetricRecord{
			domain.ChannelTikTok: {{Date: "2026-01-01", CPA: 12}},
			domain.ChannelMeta:   {{Date: "2026-01-01", CPA: 12}},
		},
	}
	best, ok := BestChannel(c)
	require.True(t, ok)
	require.Equal(t, domain.ChannelMeta, best)
}

func TestBestChannelNoData(t *testing.T) {
	_, ok := BestChannel(&domain.Creative{})
	require.False(t, ok)
}
