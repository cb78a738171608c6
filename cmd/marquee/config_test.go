package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validConfig = `
[tmdb]
api_key = "test-key"

[[mirrors]]
name = "Alpha"
movie = "https://alpha.example/movie/{id}"
series = "https://alpha.example/tv/{id}/{season}/{episode}"
`

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRunConfigTest_Valid(t *testing.T) {
	path := writeTempConfig(t, validConfig)

	var out bytes.Buffer
	require.NoError(t, runConfigTest(&out, path))

	assert.Contains(t, out.String(), "Configuration valid!")
	assert.Contains(t, out.String(), "Mirrors:    0=Alpha")
	assert.Contains(t, out.String(), "0.0.0.0:8585")
}

func TestRunConfigTest_MissingEnv(t *testing.T) {
	path := writeTempConfig(t, `
[tmdb]
api_key = "${MARQUEE_CLI_TEST_UNSET}"

[[mirrors]]
name = "Alpha"
movie = "https://alpha.example/movie/{id}"
`)

	var out bytes.Buffer
	err := runConfigTest(&out, path)
	require.Error(t, err)
	assert.Contains(t, out.String(), "Missing environment variables:")
	assert.Contains(t, out.String(), "MARQUEE_CLI_TEST_UNSET")
}

func TestRunConfigTest_Invalid(t *testing.T) {
	path := writeTempConfig(t, "[server]\nport = 70000\n")

	var out bytes.Buffer
	err := runConfigTest(&out, path)
	require.Error(t, err)
	assert.Contains(t, out.String(), "Validation errors:")
}

func TestRunConfigTest_FileMissing(t *testing.T) {
	var out bytes.Buffer
	err := runConfigTest(&out, filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestRunConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "marquee", "config.toml")

	var out bytes.Buffer
	require.NoError(t, runConfigInit(&out, path, false))
	assert.FileExists(t, path)
	assert.Contains(t, out.String(), "Wrote "+path)

	err := runConfigInit(&out, path, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	require.NoError(t, runConfigInit(&out, path, true))
}

func TestResolveConfigPath_Explicit(t *testing.T) {
	got, err := resolveConfigPath("/tmp/x.toml")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x.toml", got)
}

func TestNewLogger_Verbose(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, false).Info("quiet")
	assert.Empty(t, buf.String())

	newLogger(&buf, true).Debug("loud")
	assert.Contains(t, buf.String(), "loud")
}
