package engine

// Config controls how Run builds and searches a model graph.
type Config struct {
	// Optimize gates whether search.Run actually explores the frontier;
	// false returns the initial graph's own cost unchanged.
	Optimize bool
	// Budget bounds the number of expansions (search.WithBudget); the
	// search stops once the count exceeds it, so at most Budget+1 occur.
	Budget int
	// Beta is the slack factor on the best cost for expanding a popped
	// graph (search.WithBeta).
	Beta float64
	// ExportPath, when non-empty, receives the graphio.Export of the best
	// graph found.
	ExportPath string
	// ModelName selects a modelzoo.Builder from the registry passed to Run.
	ModelName string
}

// DefaultConfig returns sane defaults: Optimize=true, Budget=300,
// Beta=1.01, no export path, no model name (the caller must set
// ModelName).
func DefaultConfig() Config {
	return Config{
		Optimize: true,
		Budget:   300,
		Beta:     1.01,
	}
}
