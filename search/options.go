package search

// Option customizes a search run by mutating a Config before the main
// loop begins.
type Option func(*Config)

// Config holds the search driver's tunable state.
type Config struct {
	Optimize bool
	Budget   int
	Beta     float64
	Progress func(expanded int, bestCost float64)
}

// defaultConfig returns the documented defaults: optimize=true,
// budget=300, beta=1.01.
func defaultConfig() Config {
	return Config{
		Optimize: true,
		Budget:   300,
		Beta:     1.01,
	}
}

// WithOptimize toggles whether the search loop runs at all; when false,
// search is skipped and the input Graph is returned unchanged.
func WithOptimize(optimize bool) Option {
	return func(c *Config) {
		c.Optimize = optimize
	}
}

// WithBudget sets the expansion budget: Run stops once the expansion count
// exceeds budget, so at most budget+1 expansions occur. Panics on a non-positive
// budget, since a search that can never expand is a programmer error, not
// a legitimate configuration.
func WithBudget(budget int) Option {
	if budget <= 0 {
		panic("search: WithBudget(budget<=0)")
	}
	return func(c *Config) {
		c.Budget = budget
	}
}

// WithBeta sets the slack factor on bestCost: a popped graph whose cost
// exceeds beta*bestCost is discarded without being expanded. Panics if
// beta < 1.0.
func WithBeta(beta float64) Option {
	if beta < 1.0 {
		panic("search: WithBeta(beta<1.0)")
	}
	return func(c *Config) {
		c.Beta = beta
	}
}

// WithProgress installs a callback invoked after every expansion with the
// running expansion count and current best cost. Panics on nil, mirroring
// this module's convention that option constructors fail fast on
// meaningless input.
func WithProgress(fn func(expanded int, bestCost float64)) Option {
	if fn == nil {
		panic("search: WithProgress(nil)")
	}
	return func(c *Config) {
		c.Progress = fn
	}
}
