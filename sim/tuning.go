package sim

// Defaults mirror the interactive build: unit time step, one pipeline
// iteration per tick, and a gravitational constant scaled for screen-sized
// worlds rather than SI units.
const (
	DefaultDt                = 1.0
	DefaultMainIterations    = 1
	DefaultPreviewIterations = 50
	DefaultG                 = 66.74
	DefaultTrailMaxLen       = 100

	// CreationVelocityScale converts a drag gesture (start minus end) into
	// the spawned body's initial velocity. Fixed at the value the original
	// interface used for both the commit and the preview paths.
	CreationVelocityScale = 0.025

	// Smallest values a spawned body may carry if the boundary hands the
	// engine a non-positive mass or radius.
	minMass   = 1e-6
	minRadius = 1e-6
)

// Tuning holds the per-tick engine parameters. The UI collaborator owns the
// values; the clock snapshots them at the start of each tick, so mid-tick
// edits land on the next tick.
type Tuning struct {
	Dt                float64
	MainIterations    int
	PreviewIterations int
	G                 float64
	TrailMaxLen       int
}

// DefaultTuning returns the interactive defaults.
func DefaultTuning() Tuning {
	return Tuning{
		Dt:                DefaultDt,
		MainIterations:    DefaultMainIterations,
		PreviewIterations: DefaultPreviewIterations,
		G:                 DefaultG,
		TrailMaxLen:       DefaultTrailMaxLen,
	}
}

// normalized clamps invalid values so imperfect boundary validation can
// never stall or corrupt the pipeline.
func (t Tuning) normalized() Tuning {
	if t.Dt <= 0 {
		t.Dt = DefaultDt
	}
	if t.MainIterations < 1 {
		t.MainIterations = 1
	}
	if t.PreviewIterations < 0 {
		t.PreviewIterations = 0
	}
	if t.G <= 0 {
		t.G = DefaultG
	}
	if t.TrailMaxLen < 0 {
		t.TrailMaxLen = 0
	}
	return t
}
