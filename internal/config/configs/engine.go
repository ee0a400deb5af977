package configs

// Engine holds the decision-engine parameters that are policy rather than
// code: default CPA thresholds (used until an operator saves their own),
// the iteration cap for new creatives, and the assumed per-conversion
// order value used to derive ROAS for manual metric sequences.
type Engine struct {
	DefaultGreen  float64 `env:"DEFAULT_GREEN" envDefault:"15"`
	DefaultYellow float64 `env:"DEFAULT_YELLOW" envDefault:"25"`
	MaxIterations int     `env:"MAX_ITERATIONS" envDefault:"3"`
	OrderValue    float64 `env:"ORDER_VALUE" envDefault:"45"`
}
