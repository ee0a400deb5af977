package engine

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"adforge/internal/core/domain"
)

// MatchType records how a channel's rows were matched to a creative.
type MatchType string

const (
	// MatchByID means rows matched the creative's configured ad-set id.
	MatchByID MatchType = "id"
	// MatchIDNoData means an ad-set id is configured but the batch held no
	// rows for it: linked but no data, distinct from never linked.
	MatchIDNoData MatchType = "id_no_data"
	// MatchByName means rows matched by fuzzy name, which only runs when the
	// creative has no ad-set id configured on any channel.
	MatchByName MatchType = "name"
)

// ChannelMatch is one channel's matched, per-date-aggregated metric
// sequence for a creative.
type ChannelMatch struct {
	Records []domain.MetricRecord
	Type    MatchType
}

// CreativeMatches holds all channel matches found for one creative.
type CreativeMatches struct {
	CreativeID uuid.UUID
	Channels   map[domain.Channel]ChannelMatch
}

// MatchRows reconciles a batch of provider rows against the creative set.
// Archived creatives are skipped. Per creative, explicit ad-set ids win:
// each configured channel is matched on exact id + channel. Name fallback
// (case-insensitive substring in either direction between creative name and
// row ad-set name) only runs when no channel has an id configured, never
// as a supplement.
func MatchRows(rows []domain.ChannelRow, creatives []domain.Creative) []CreativeMatches {
	var out []CreativeMatches
	for i := range creatives {
		c := &creatives[i]
		if c.Stage == domain.StageArchived {
			continue
		}
		channels := make(map[domain.Channel]ChannelMatch)

		for _, ch := range domain.Channels {
			adSetID := strings.TrimSpace(c.ChannelAdSets[ch])
			if adSetID == "" {
				continue
			}
			var matched []domain.ChannelRow
			for _, row := range rows {
				if row.AdSetID == adSetID && row.Channel == ch.ExternalName() {
					matched = append(matched, row)
				}
			}
			if len(matched) > 0 {
				channels[ch] = ChannelMatch{Records: buildRecords(matched), Type: MatchByID}
			} else {
				channels[ch] = ChannelMatch{Type: MatchIDNoData}
			}
		}

		if !c.HasAnyAdSet() {
			name := strings.ToLower(c.Name)
			byChannel := make(map[domain.Channel][]domain.ChannelRow)
			for _, row := range rows {
				rowName := strings.ToLower(row.AdSetName)
				if name == "" || rowName == "" {
					continue
				}
				if !strings.Contains(rowName, name) && !strings.Contains(name, rowName) {
					continue
				}
				ch, ok := domain.ChannelFromExternal(row.Channel)
				if !ok {
					continue
				}
				byChannel[ch] = append(byChannel[ch], row)
			}
			for ch, chRows := range byChannel {
				channels[ch] = ChannelMatch{Records: buildRecords(chRows), Type: MatchByName}
			}
		}

		if len(channels) > 0 {
			out = append(out, CreativeMatches{CreativeID: c.ID, Channels: channels})
		}
	}
	return out
}

// buildRecords aggregates raw rows per calendar date, recomputes the rate
// metrics from the sums, and orders the result ascending by date. Re-running
// it over the same rows yields the same sequence, which keeps sync
// idempotent.
func buildRecords(rows []domain.ChannelRow) []domain.MetricRecord {
	type bucket struct {
		spend, revenue      float64
		purchases           int
		clicks, impressions int64
	}
	byDate := make(map[string]*bucket)
	for _, row := range rows {
		b := byDate[row.Date]
		if b == nil {
			b = &bucket{}
			byDate[row.Date] = b
		}
		b.spend += row.Spend
		b.revenue += row.Revenue
		b.purchases += row.Purchases
		b.clicks += row.Clicks
		b.impressions += row.Impressions
	}

	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	records := make([]domain.MetricRecord, 0, len(dates))
	for _, d := range dates {
		b := byDate[d]
		r := domain.MetricRecord{
			Date:        d,
			Spend:       round2(b.spend),
			Conversions: b.purchases,
			Revenue:     round2(b.revenue),
		}
		if b.purchases > 0 {
			r.CPA = round2(b.spend / float64(b.purchases))
		}
		if b.impressions > 0 {
			r.CTR = round1(float64(b.clicks) / float64(b.impressions) * 100)
			r.CPM = round2(b.spend / float64(b.impressions) * 1000)
		}
		if b.spend > 0 {
			r.ROAS = round2(b.revenue / b.spend)
		}
		records = append(records, r)
	}
	return records
}

// BestChannel picks, across all channels with at least one attached record,
// the one whose latest record has the lowest CPA. Ties go to the earliest
// channel in the fixed channel list. The second return is false when no
// channel has data.
func BestChannel(c *domain.Creative) (domain.Channel, bool) {
	var (
		best    domain.Channel
		bestCPA float64
		found   bool
	)
	for _, ch := range domain.Channels {
		recs := c.ChannelMetrics[ch]
		if len(recs) == 0 {
			continue
		}
		cpa := recs[len(recs)-1].CPA
		if !found || cpa < bestCPA {
			best, bestCPA, found = ch, cpa, true
		}
	}
	return best, found
}
