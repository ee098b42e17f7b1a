package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yongdeokkim7/rodsim/internal/engine"
	"github.com/yongdeokkim7/rodsim/internal/sim"
)

func fakeResult() *sim.Result {
	return &sim.Result{
		Times: []float64{0, 0.25, 0.5},
		Probes: [][]engine.Vec3{
			{{0, 0, 0}, {1, 0, 0}},
			{{0, -0.1, 0}, {1, -0.2, 0}},
			{{0, -0.15, 0}, {1, -0.3, 0}},
		},
		Metrics:    map[string]float64{"energy": 0.42},
		StepsTaken: 2,
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	s := New(t.TempDir())
	require.NoError(t, s.Init())

	runID, err := s.Save("cantilever", "verlet", 0.25, 0.5, fakeResult())
	require.NoError(t, err)
	assert.Contains(t, runID, "cantilever_")

	meta, err := s.Load(runID)
	require.NoError(t, err)
	assert.Equal(t, runID, meta.ID)
	assert.Equal(t, "cantilever", meta.Scenario)
	assert.Equal(t, "verlet", meta.Integrator)
	assert.Equal(t, 2, meta.Systems)
	assert.Equal(t, 2, meta.Steps)
	assert.Equal(t, 0.42, meta.Metrics["energy"])
}

func TestLoadSeries(t *testing.T) {
	s := New(t.TempDir())
	require.NoError(t, s.Init())

	runID, err := s.Save("cantilever", "verlet", 0.25, 0.5, fakeResult())
	require.NoError(t, err)

	rows, times, err := s.LoadSeries(runID)
	require.NoError(t, err)

	require.Len(t, times, 3)
	assert.Equal(t, []float64{0, 0.25, 0.5}, times)

	require.Len(t, rows, 3)
	// Two systems, x/y/z each.
	require.Len(t, rows[1], 6)
	assert.Equal(t, -0.1, rows[1][1])
	assert.Equal(t, -0.3, rows[2][4])
}

func TestList(t *testing.T) {
	s := New(t.TempDir())
	require.NoError(t, s.Init())

	runs, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, runs)

	_, err = s.Save("cantilever", "verlet", 0.25, 0.5, fakeResult())
	require.NoError(t, err)

	runs, err = s.List()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "cantilever", runs[0].Scenario)
}

func TestList_MissingDir(t *testing.T) {
	s := New(t.TempDir() + "/nonexistent")

	runs, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestLoad_UnknownRun(t *testing.T) {
	s := New(t.TempDir())
	require.NoError(t, s.Init())

	_, err := s.Load("nope_123")
	assert.Error(t, err)
}
