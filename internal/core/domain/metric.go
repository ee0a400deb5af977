package domain

// MetricRecord is one day of performance for a creative. Records are
// immutable once logged and are kept in insertion order, which callers must
// keep chronological: the engine treats the last element as current.
//
// Dates are ISO calendar dates (YYYY-MM-DD), so insertion order and
// lexicographic order agree.
//
// A CPA of zero means "no classification possible", not a free acquisition.
type MetricRecord struct {
	Date        string  `json:"date"`
	CPA         float64 `json:"cpa"`
	Spend       float64 `json:"spend"`
	Conversions int     `json:"conversions"`
	CTR         float64 `json:"ctr"`
	CPM         float64 `json:"cpm"`

	// Revenue and ROAS are only set on channel-sourced records, where the
	// provider is the authority. Manually logged records leave them zero and
	// ROAS is derived from spend and conversions instead.
	Revenue float64 `json:"revenue,omitempty"`
	ROAS    float64 `json:"roas,omitempty"`
}

// ChannelRow is one externally sourced daily ad-set row as returned by the
// attribution provider, before matching and per-date aggregation.
type ChannelRow struct {
	Date        string  `json:"date"`
	AdSetID     string  `json:"adset_id"`
	AdSetName   string  `json:"adset_name"`
	Channel     string  `json:"channel"` // provider-side name, e.g. "facebook-ads"
	Spend       float64 `json:"spend"`
	Purchases   int     `json:"purchases"`
	Revenue     float64 `json:"revenue"`
	Clicks      int64   `json:"clicks"`
	Impressions int64   `json:"impressions"`
}
