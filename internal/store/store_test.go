package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ising-mc/internal/mc"
	"ising-mc/internal/sims/ising"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	clock := time.Unix(1700000000, 0)
	db.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return db
}

func TestSweepRoundTrip(t *testing.T) {
	db := openTestDB(t)
	cfg := mc.DefaultConfig("ising")
	cfg.Size = 4
	res := mc.NewSweepResult("ising", []mc.Observables{
		{Temperature: 1.5, Energy: -0.95, Magnetization: 0.98, SpecificHeat: 0.2, Susceptibility: 0.01, Acceptance: 0.03},
		{Temperature: 2.5, Energy: -0.4, Magnetization: 0.12, SpecificHeat: 0.7, Susceptibility: 1.4, Acceptance: 0.4},
	})

	id, err := db.SaveSweep(cfg, res)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	got, err := db.LoadSweep(id)
	require.NoError(t, err)
	assert.Equal(t, res, got)

	run, err := db.Run(id)
	require.NoError(t, err)
	assert.Equal(t, KindSweep, run.Kind)
	assert.Equal(t, "ising", run.Model)
	assert.Equal(t, 4, run.Size)
	assert.Equal(t, cfg.Seed, run.Seed)

	snap, err := run.Parameters()
	require.NoError(t, err)
	p, ok := snap.Lookup("n")
	require.True(t, ok)
	assert.Equal(t, "4", p.Value)
}

func TestTraceRoundTrip(t *testing.T) {
	db := openTestDB(t)
	cfg := mc.DefaultConfig("ising")
	c, err := mc.NewChain(ising.New(), 6, 2.0, mc.InitRandom, 9)
	require.NoError(t, err)
	tr, err := mc.RunTrace(context.Background(), c, 15, 0, nil)
	require.NoError(t, err)

	id, err := db.SaveTrace(cfg, tr)
	require.NoError(t, err)

	got, err := db.LoadTrace(id)
	require.NoError(t, err)
	assert.Equal(t, tr, got)

	_, err = db.LoadSweep(id)
	require.Error(t, err)
}

func TestRunsListing(t *testing.T) {
	db := openTestDB(t)
	cfg := mc.DefaultConfig("twostate")
	res := mc.NewSweepResult("twostate", []mc.Observables{{Temperature: 1}})
	tr := &mc.Trace{Model: "twostate", Size: 4, Temperature: 0.5, Points: []mc.TracePoint{{Step: 0}}}

	first, err := db.SaveSweep(cfg, res)
	require.NoError(t, err)
	second, err := db.SaveTrace(cfg, tr)
	require.NoError(t, err)
	third, err := db.SaveSweep(cfg, res)
	require.NoError(t, err)

	all, err := db.Runs("")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{first, second, third}, []string{all[0].ID, all[1].ID, all[2].ID})
	assert.True(t, all[0].CreatedAt().Before(all[2].CreatedAt()))

	sweeps, err := db.Runs(KindSweep)
	require.NoError(t, err)
	require.Len(t, sweeps, 2)
	assert.Equal(t, third, sweeps[1].ID)
}

func TestUnknownRun(t *testing.T) {
	db := openTestDB(t)
	_, err := db.Run("nope")
	require.ErrorIs(t, err, ErrRunNotFound)
	_, err = db.LoadTrace("nope")
	require.ErrorIs(t, err, ErrRunNotFound)
}

func TestReopenKeepsRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	db, err := Open(path)
	require.NoError(t, err)
	id, err := db.SaveSweep(mc.DefaultConfig("ising"), mc.NewSweepResult("ising", []mc.Observables{{Temperature: 2}}))
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = Open(path)
	require.NoError(t, err)
	defer db.Close()
	res, err := db.LoadSweep(id)
	require.NoError(t, err)
	assert.Equal(t, []float64{2}, res.Temperatures)
}
