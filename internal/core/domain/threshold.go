package domain

// Thresholds are the two process-wide CPA cutoffs that parameterise
// classification: green when CPA ≤ Green, yellow when CPA ≤ Yellow, red
// above. Yellow > Green by convention, not enforced. Classification is a
// pure function of current metrics and current thresholds, so a change here
// reclassifies every live creative instantly.
type Thresholds struct {
	Green  float64 `json:"green"`
	Yellow float64 `json:"yellow"`
}
