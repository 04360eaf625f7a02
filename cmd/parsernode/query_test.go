package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryFile_SchemaSlot(t *testing.T) {
	t.Parallel()

	path := writeRubyFile(t, "def hello\n  'hi'\nend")

	var buf bytes.Buffer

	err := queryFile(defaultTestConfig(), path, "name", formatSexp, &buf)
	require.NoError(t, err)

	assert.Equal(t, ":hello\n", buf.String())
}

func TestQueryFile_NestedPathWithIndex(t *testing.T) {
	t.Parallel()

	path := writeRubyFile(t, "def pair\n  a = 1\n  b = 2\nend")

	var buf bytes.Buffer

	err := queryFile(defaultTestConfig(), path, "body.1.variable", formatSexp, &buf)
	require.NoError(t, err)

	assert.Equal(t, ":b\n", buf.String())
}

func TestQueryFile_DynamicHashLookup(t *testing.T) {
	t.Parallel()

	path := writeRubyFile(t, "{ foo: 'bar' }")

	var buf bytes.Buffer

	err := queryFile(defaultTestConfig(), path, "foo_source", formatSexp, &buf)
	require.NoError(t, err)

	assert.Equal(t, "'bar'\n", buf.String())
}

func TestQueryFile_SourceFormat(t *testing.T) {
	t.Parallel()

	path := writeRubyFile(t, "foo.bar(1, 2)")

	var buf bytes.Buffer

	err := queryFile(defaultTestConfig(), path, "receiver", "source", &buf)
	require.NoError(t, err)

	assert.Equal(t, "foo\n", buf.String())
}

func TestQueryFile_SerializedTree(t *testing.T) {
	t.Parallel()

	source := writeRubyFile(t, "foo.bar")

	var parsed bytes.Buffer

	require.NoError(t, runParse(defaultTestConfig(), []string{source}, "", formatCompact, false, &parsed))

	treePath := filepath.Join(t.TempDir(), "tree.json")
	require.NoError(t, os.WriteFile(treePath, parsed.Bytes(), 0o600))

	var buf bytes.Buffer

	err := queryFile(defaultTestConfig(), treePath, "message", formatSexp, &buf)
	require.NoError(t, err)

	assert.Equal(t, ":bar\n", buf.String())
}

func TestQueryFile_UnknownAccessor(t *testing.T) {
	t.Parallel()

	path := writeRubyFile(t, "1")

	var buf bytes.Buffer

	err := queryFile(defaultTestConfig(), path, "arguments", formatSexp, &buf)
	require.Error(t, err)
}

func TestRunSchema_TagSlots(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	err := runSchema("send", false, &buf)
	require.NoError(t, err)

	assert.Equal(t, "receiver\nmessage\narguments\n", buf.String())
}

func TestRunSchema_UnknownTag(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	err := runSchema("bogus", false, &buf)
	require.Error(t, err)
}

func TestRunSchema_AccessorList(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	err := runSchema("", true, &buf)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "receiver")
	assert.Contains(t, buf.String(), "pairs")
}
