package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xinminlabs/parser-node-ext/internal/config"
)

func defaultTestConfig() *config.Config {
	return &config.Config{
		Output: config.OutputConfig{Format: config.DefaultOutputFormat},
		Parse:  config.ParseConfig{MaxFileSize: config.DefaultParseMaxSize},
		Log:    config.LogConfig{Level: "error"},
	}
}

func writeRubyFile(t *testing.T, source string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "input.rb")
	require.NoError(t, os.WriteFile(path, []byte(source), 0o600))

	return path
}

func TestRunParse_SexpOutput(t *testing.T) {
	t.Parallel()

	path := writeRubyFile(t, "foo.bar(1)")

	var buf bytes.Buffer

	err := runParse(defaultTestConfig(), []string{path}, "", formatSexp, false, &buf)
	require.NoError(t, err)

	assert.Equal(t, "s(:send, s(:lvar, :foo), :bar, s(:int, 1))\n", buf.String())
}

func TestRunParse_JSONOutputRoundTrips(t *testing.T) {
	t.Parallel()

	path := writeRubyFile(t, "def hello\n  'hi'\nend")

	var buf bytes.Buffer

	err := runParse(defaultTestConfig(), []string{path}, "", formatJSON, true, &buf)
	require.NoError(t, err)

	var out map[string]any

	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, "def", out["type"])
	assert.Contains(t, out, "pos")
}

func TestRunParse_JSONWithoutPositions(t *testing.T) {
	t.Parallel()

	path := writeRubyFile(t, "1 + 2")

	var buf bytes.Buffer

	err := runParse(defaultTestConfig(), []string{path}, "", formatCompact, false, &buf)
	require.NoError(t, err)

	assert.NotContains(t, buf.String(), "start_line")
}

func TestRunParse_YAMLOutput(t *testing.T) {
	t.Parallel()

	path := writeRubyFile(t, ":sym")

	var buf bytes.Buffer

	err := runParse(defaultTestConfig(), []string{path}, "", formatYAML, false, &buf)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "type: sym")
}

func TestRunParse_UnsupportedFormat(t *testing.T) {
	t.Parallel()

	path := writeRubyFile(t, "1")

	var buf bytes.Buffer

	err := runParse(defaultTestConfig(), []string{path}, "", "xml", false, &buf)
	require.ErrorIs(t, err, ErrUnsupportedParseFmt)
}

func TestRunParse_FileTooLarge(t *testing.T) {
	t.Parallel()

	path := writeRubyFile(t, strings.Repeat("a = 1\n", 100))

	cfg := defaultTestConfig()
	cfg.Parse.MaxFileSize = 10

	var buf bytes.Buffer

	err := runParse(cfg, []string{path}, "", formatSexp, false, &buf)
	require.ErrorIs(t, err, ErrFileTooLarge)
}

func TestRunParse_OutputFile(t *testing.T) {
	t.Parallel()

	path := writeRubyFile(t, "42")
	outPath := filepath.Join(t.TempDir(), "tree.sexp")

	var buf bytes.Buffer

	err := runParse(defaultTestConfig(), []string{path}, outPath, formatSexp, false, &buf)
	require.NoError(t, err)

	content, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, "s(:int, 42)\n", string(content))
	assert.Empty(t, buf.String())
}
