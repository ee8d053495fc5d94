package memplan

// Default planning parameters. The split threshold is a convergence guard,
// not an optimality bound: once a shrink step buys less than a 10% peak
// reduction, further shrinking is unlikely to ever reach the budget and the
// sub-graph is split instead.
const (
	DefaultShrinkFactor   = 0.5
	DefaultSplitThreshold = 0.9
)

// PlannerConfig groups memory planning parameters.
type PlannerConfig struct {
	ShrinkFactor   float64 // per-step multiplier applied to value sizes on ShrinkSize (0 < f < 1)
	SplitThreshold float64 // give up shrinking when peak/prevPeak exceeds this ratio
}

// NewPlannerConfig creates a PlannerConfig. Zero values select the defaults.
func NewPlannerConfig(shrinkFactor, splitThreshold float64) PlannerConfig {
	cfg := PlannerConfig{ShrinkFactor: shrinkFactor, SplitThreshold: splitThreshold}
	if cfg.ShrinkFactor <= 0 || cfg.ShrinkFactor >= 1 {
		cfg.ShrinkFactor = DefaultShrinkFactor
	}
	if cfg.SplitThreshold <= 0 || cfg.SplitThreshold >= 1 {
		cfg.SplitThreshold = DefaultSplitThreshold
	}
	return cfg
}

// DefaultPlannerConfig returns the default planning parameters.
func DefaultPlannerConfig() PlannerConfig {
	return NewPlannerConfig(DefaultShrinkFactor, DefaultSplitThreshold)
}
