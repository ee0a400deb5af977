package engine

import (
	"math"

	"adforge/internal/core/domain"
)

// AssumedOrderValue is the fixed per-conversion revenue used to derive ROAS
// for manually logged sequences, which carry no provider revenue.
const AssumedOrderValue = 45.0

// Summary rolls a metric sequence up into totals and averages.
type Summary struct {
	Spend       float64 `json:"spend"`
	Conversions int     `json:"conversions"`
	Revenue     float64 `json:"revenue,omitempty"`
	AvgCPA      float64 `json:"avgCpa"`
	LatestCPA   float64 `json:"latestCpa"`
	AvgCTR      float64 `json:"avgCtr"`
	AvgCPM      float64 `json:"avgCpm"`
	ROAS        float64 `json:"roas"`
}

// Summarize aggregates a metric sequence, or returns nil when it is empty.
//
// AvgCPA is the arithmetic mean of daily CPAs, not total spend over total
// conversions. LatestCPA is the last record in sequence order, not the
// date-max.
//
// ROAS has one source of truth per metrics origin: sequences carrying
// provider revenue (channel-sourced) use summed revenue over summed spend;
// sequences without revenue (manual) derive it as conversions ×
// AssumedOrderValue over spend. The two are never mixed or reconciled.
func Summarize(records []domain.MetricRecord, orderValue float64) *Summary {
	if len(records) == 0 {
		return nil
	}
	s := &Summary{}
	var cpaSum, ctrSum, cpmSum float64
	for _, r := range records {
		s.Spend += r.Spend
		s.Conversions += r.Conversions
		s.Revenue += r.Revenue
		cpaSum += r.CPA
		ctrSum += r.CTR
		cpmSum += r.CPM
	}
	n := float64(len(records))
	s.AvgCPA = round2(cpaSum / n)
	s.AvgCTR = round1(ctrSum / n)
	s.AvgCPM = round2(cpmSum / n)
	s.LatestCPA = records[len(records)-1].CPA
	s.Revenue = round2(s.Revenue)

	switch {
	case s.Revenue > 0 && s.Spend > 0:
		s.ROAS = round1(s.Revenue / s.Spend)
	case s.Spend > 0 && s.Conversions > 0:
		s.ROAS = round1(float64(s.Conversions) * orderValue / s.Spend)
	}
	return s
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
