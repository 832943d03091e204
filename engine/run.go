package engine

import (
	"errors"
	"fmt"
	"os"

	"github.com/graphforge/xflow/catalog"
	"github.com/graphforge/xflow/cost"
	"github.com/graphforge/xflow/dag"
	"github.com/graphforge/xflow/graphio"
	"github.com/graphforge/xflow/modelzoo"
	"github.com/graphforge/xflow/search"
	"github.com/graphforge/xflow/xfer"
)

// ErrUnknownModel indicates cfg.ModelName is absent from the supplied
// builder registry.
var ErrUnknownModel = errors.New("engine: unknown model name")

// ErrInvalidConfig indicates an out-of-range Budget or Beta. Run checks
// these itself, ahead of search.WithBudget/WithBeta, so a misconfigured
// Config surfaces as a returned error rather than a panic — engine is a
// library facade and never panics on caller-supplied configuration.
var ErrInvalidConfig = errors.New("engine: invalid config")

// Run resolves cfg.ModelName against builders, constructs the initial
// Graph, runs search.Run over the supplied xfers with oracle (the search
// loop itself is skipped when cfg.Optimize is false), and writes a graphio
// export to cfg.ExportPath
// when set. It returns the best Graph found (or the unoptimized initial
// graph when cfg.Optimize is false).
func Run(cfg Config, builders map[string]modelzoo.Builder, oracle cost.Oracle, xfers []*xfer.Xfer) (*dag.Graph, error) {
	build, ok := builders[cfg.ModelName]
	if !ok {
		return nil, fmt.Errorf("engine: Run: %q: %w", cfg.ModelName, ErrUnknownModel)
	}
	if cfg.Budget <= 0 {
		return nil, fmt.Errorf("engine: Run: Budget=%d: %w", cfg.Budget, ErrInvalidConfig)
	}
	if cfg.Beta < 1.0 {
		return nil, fmt.Errorf("engine: Run: Beta=%g: %w", cfg.Beta, ErrInvalidConfig)
	}

	model := catalog.NewModel()
	g := dag.NewGraph(model)
	if _, err := build(g); err != nil {
		return nil, fmt.Errorf("engine: Run: building %q: %w", cfg.ModelName, err)
	}

	opts := []search.Option{
		search.WithOptimize(cfg.Optimize),
		search.WithBudget(cfg.Budget),
		search.WithBeta(cfg.Beta),
	}
	result, err := search.Run(g, xfers, oracle, opts...)
	if err != nil {
		return nil, fmt.Errorf("engine: Run: search: %w", err)
	}

	if cfg.ExportPath != "" {
		data, err := graphio.Export(result.Best)
		if err != nil {
			return nil, fmt.Errorf("engine: Run: export: %w", err)
		}
		if err := os.WriteFile(cfg.ExportPath, data, 0o644); err != nil {
			return nil, fmt.Errorf("engine: Run: writing %q: %w", cfg.ExportPath, err)
		}
	}

	return result.Best, nil
}
