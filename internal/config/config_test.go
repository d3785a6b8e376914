package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/statements2csv/internal/source"
	"github.com/cleared-dev/statements2csv/internal/statement"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Workers = 3
	cfg.Grep.Snapshot = "/data/all.csv"

	path := filepath.Join(t.TempDir(), FileName)
	err := Save(path, cfg)
	require.NoError(t, err)

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg, got)
}

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Zero(t, cfg.Workers)
	assert.Equal(t, []string{"stream"}, cfg.Flavors.Default)
	require.Len(t, cfg.Flavors.Issuers, 2)
	assert.Contains(t, cfg.Flavors.Issuers[0].Patterns, "wellsfargo")
	assert.Equal(t, []string{"stream", "network"}, cfg.Flavors.Issuers[0].Flavors)
	assert.Empty(t, cfg.Grep.Snapshot)
}

func TestDefaultPolicyMatchesStatementDefault(t *testing.T) {
	p, err := Default().Policy()
	require.NoError(t, err)
	assert.Equal(t, statement.DefaultPolicy(), p)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("log_level: debug\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, []string{"stream"}, cfg.Flavors.Default)
}

func TestPolicy_CustomIssuer(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	yml := `flavors:
  default: [network]
  issuers:
    - patterns: [amex]
      flavors: [stream]
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	p, err := cfg.Policy()
	require.NoError(t, err)

	assert.Equal(t, []source.Flavor{source.Network}, p.Candidates("/s/2021/chase/jan.pdf"))
	assert.Equal(t, []source.Flavor{source.Stream}, p.Candidates("/s/2021/amex/jan.pdf"))
}

func TestPolicy_UnknownFlavor(t *testing.T) {
	cfg := Default()
	cfg.Flavors.Issuers[1].Flavors = []string{"lattice"}

	_, err := cfg.Policy()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "flavors.issuers[1]")
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadOrDefault_Missing(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("workers: [\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestYAMLFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, Default()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "log_level: warn")
	assert.Contains(t, contents, "workers: 0")
	assert.Contains(t, contents, "snapshot: \"\"")
}
