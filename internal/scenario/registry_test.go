package scenario

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yongdeokkim7/rodsim/internal/config"
	"github.com/yongdeokkim7/rodsim/internal/sim"
)

func TestListScenarios(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, []string{"cantilever", "rod_sphere", "two_rods"}, r.ListScenarios())
	assert.Equal(t, []string{"euler", "verlet"}, r.ListIntegrators())
}

func TestBuild_Cantilever(t *testing.T) {
	r := NewRegistry()

	drv, col, err := r.Build(config.DefaultConfig())
	require.NoError(t, err)
	require.NotNil(t, drv)
	assert.Equal(t, 1, col.Len())
}

func TestBuild_TwoRods(t *testing.T) {
	r := NewRegistry()
	cfg := config.DefaultConfig()
	cfg.Scenario = "two_rods"

	_, col, err := r.Build(cfg)
	require.NoError(t, err)
	assert.Equal(t, 2, col.Len())
}

func TestBuild_RodSphere(t *testing.T) {
	r := NewRegistry()
	cfg := config.DefaultConfig()
	cfg.Scenario = "rod_sphere"

	// The sphere is only admitted because the builder extends the
	// collection's allowed types before appending it.
	_, col, err := r.Build(cfg)
	require.NoError(t, err)
	assert.Equal(t, 2, col.Len())
}

func TestBuild_UnknownScenario(t *testing.T) {
	r := NewRegistry()
	cfg := config.DefaultConfig()
	cfg.Scenario = "pendulum"

	_, _, err := r.Build(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown scenario")
}

func TestBuild_UnknownIntegrator(t *testing.T) {
	r := NewRegistry()
	cfg := config.DefaultConfig()
	cfg.Integrator = "rk4"

	_, _, err := r.Build(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown integrator")
}

// A short end-to-end run of every registered scenario: the state must stay
// finite and the run must take the expected number of steps.
func TestBuild_ScenariosRun(t *testing.T) {
	r := NewRegistry()
	for _, name := range r.ListScenarios() {
		t.Run(name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			cfg.Scenario = name

			drv, _, err := r.Build(cfg)
			require.NoError(t, err)

			runCfg := sim.Config{Dt: 1e-4, Duration: 0.01, ValidateState: true}
			result, err := drv.Run(context.Background(), runCfg)
			require.NoError(t, err)
			assert.Empty(t, result.Errors)
			assert.Equal(t, 100, result.StepsTaken)
		})
	}
}
