package engine_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphforge/xflow/catalog"
	"github.com/graphforge/xflow/cost"
	"github.com/graphforge/xflow/engine"
	"github.com/graphforge/xflow/modelzoo"
	"github.com/graphforge/xflow/xferlib"
)

func unitOracle(t *testing.T) cost.Oracle {
	t.Helper()
	o, err := cost.NewTableOracle(func(kind catalog.Kind, attrs catalog.Attrs) float64 {
		if kind == catalog.KindConv2D {
			return 10
		}
		return 1
	})
	require.NoError(t, err)
	return o
}

func TestRun_UnknownModel(t *testing.T) {
	cfg := engine.DefaultConfig()
	cfg.ModelName = "does-not-exist"
	_, err := engine.Run(cfg, modelzoo.Registry(), unitOracle(t), xferlib.Default())
	require.Error(t, err)
	assert.ErrorIs(t, err, engine.ErrUnknownModel)
}

func TestRun_InvalidConfig(t *testing.T) {
	cfg := engine.DefaultConfig()
	cfg.ModelName = "resnet-toy"
	cfg.Budget = 0
	_, err := engine.Run(cfg, modelzoo.Registry(), unitOracle(t), xferlib.Default())
	require.Error(t, err)
	assert.ErrorIs(t, err, engine.ErrInvalidConfig)
}

func TestRun_ResNetToy_ExportsFile(t *testing.T) {
	cfg := engine.DefaultConfig()
	cfg.ModelName = "resnet-toy"
	cfg.Budget = 20
	cfg.ExportPath = filepath.Join(t.TempDir(), "out.yaml")

	best, err := engine.Run(cfg, modelzoo.Registry(), unitOracle(t), xferlib.Default())
	require.NoError(t, err)
	assert.Greater(t, best.NodeCount(), 0)

	data, err := os.ReadFile(cfg.ExportPath)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestRun_NotOptimized_ReturnsInputUnchanged(t *testing.T) {
	cfg := engine.DefaultConfig()
	cfg.ModelName = "resnet-toy"
	cfg.Optimize = false

	best, err := engine.Run(cfg, modelzoo.Registry(), unitOracle(t), xferlib.Default())
	require.NoError(t, err)
	assert.Greater(t, best.NodeCount(), 0)
}
