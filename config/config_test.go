package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, yaml string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "sheets2da.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	return path
}

func TestLoad(t *testing.T) {
	path := write(t, `
output: /opt/nwn/override
state: /opt/nwn/sync_state.json
logfile: /opt/nwn/sync.log
timeout: 10
interval: 60
sources:
  - name: core_package
    url: https://docs.google.com/spreadsheets/d/abc/pub?gid=0&output=csv
  - name: enc_dynamic
    url: https://docs.google.com/spreadsheets/d/abc/pub?gid=1&output=csv
forced_widths:
  core_package:
    PACKAGE: 20
    SCRIPT: 20
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/opt/nwn/override", cfg.OutputDir)
	assert.Equal(t, "/opt/nwn/sync_state.json", cfg.StateFile)
	assert.Equal(t, "/opt/nwn/sync.log", cfg.LogFile)
	assert.Equal(t, 10*time.Second, cfg.FetchTimeout())
	assert.Equal(t, time.Minute, cfg.PollInterval())

	require.Len(t, cfg.Sources, 2)
	assert.Equal(t, "core_package", cfg.Sources[0].Name)
	assert.Equal(t, "enc_dynamic", cfg.Sources[1].Name)

	assert.Equal(t, 20, cfg.ForcedWidths["core_package"]["PACKAGE"])
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(write(t, "output: /opt/nwn/override\n"))
	require.NoError(t, err)

	assert.Equal(t, "sync_state.json", cfg.StateFile)
	assert.Equal(t, "sync.log", cfg.LogFile)
	assert.Equal(t, 30*time.Second, cfg.FetchTimeout())
	assert.Equal(t, 300*time.Second, cfg.PollInterval())
	assert.Empty(t, cfg.Sources)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	assert.Error(t, err)
}

func TestLoadMissingOutputDir(t *testing.T) {
	_, err := Load(write(t, "state: sync_state.json\n"))
	assert.Error(t, err)
}

func TestLoadDuplicateSourceName(t *testing.T) {
	_, err := Load(write(t, `
output: /opt/nwn/override
sources:
  - name: enc_dynamic
    url: u
  - name: enc_dynamic
    url: v
`))
	assert.ErrorContains(t, err, "duplicate source name")
}

func TestLoadUnnamedSource(t *testing.T) {
	_, err := Load(write(t, `
output: /opt/nwn/override
sources:
  - url: u
`))
	assert.Error(t, err)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("SHEETS2DA_OUTPUT_DIR", "/srv/nwn/override")
	t.Setenv("SHEETS2DA_STATE_FILE", "/srv/nwn/state.json")

	cfg, err := Load(write(t, "output: /opt/nwn/override\n"))
	require.NoError(t, err)

	assert.Equal(t, "/srv/nwn/override", cfg.OutputDir)
	assert.Equal(t, "/srv/nwn/state.json", cfg.StateFile)
}
