package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuadsl3010/lrucache"
)

func testCLI() CLI {
	return CLI{
		Backends:        []string{"lrucache", "map"},
		MaxSize:         1 << 20,
		AverageItemSize: 1 << 10,
		Segments:        1,
		Accounting:      lrucache.AccountValue,
		Hash:            lrucache.HashMurmur2,
		Goroutines:      2,
		Keys:            20,
		Rounds:          10,
		Checks:          4,
		LogLevel:        "error",
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lrubench.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
backends: [lrucache, otter]
cache:
  max_size: 8MiB
  segments: 4
  hash: xxhash
run:
  goroutines: 8
  rounds: 50
`), 0o600))

	cli := testCLI()
	cli.Config = path
	cfg, err := cli.load()
	require.NoError(t, err)

	assert.Equal(t, []string{"lrucache", "otter"}, cfg.Backends)
	assert.Equal(t, lrucache.ByteSize(8<<20), cfg.Cache.MaxSize)
	assert.Equal(t, lrucache.ByteSize(1<<10), cfg.Cache.AverageItemSize) // from flags
	assert.Equal(t, 4, cfg.Cache.Segments)
	assert.Equal(t, lrucache.HashXXHash, cfg.Cache.Hash)
	assert.Equal(t, "lrubench", cfg.Cache.Name)
	assert.Equal(t, 8, cfg.Run.Goroutines)
	assert.Equal(t, 50, cfg.Run.Rounds)
	assert.Equal(t, 20, cfg.Run.Keys) // from flags

	cli.Config = filepath.Join(t.TempDir(), "missing.yaml")
	_, err = cli.load()
	require.Error(t, err)
}

func TestRun(t *testing.T) {
	cli := testCLI()
	cli.Metrics = true

	out := &bytes.Buffer{}
	require.NoError(t, cli.Run(out))

	s := out.String()
	assert.Contains(t, s, `lrucache_entries{cache="lrubench"} 10`)
	assert.Contains(t, s, `lrucache_writes_total{cache="lrubench"} 20`)
	assert.Contains(t, s, "BACKEND")
	assert.Contains(t, s, "map")
	assert.Contains(t, s, "10 ENTRIES")
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	cli := testCLI()
	cli.Segments = 0
	require.ErrorIs(t, cli.Run(&bytes.Buffer{}), lrucache.ErrInvalidConfig)

	cli = testCLI()
	cli.Backends = []string{"memcached"}
	require.ErrorContains(t, cli.Run(&bytes.Buffer{}), "unknown backend")
}
