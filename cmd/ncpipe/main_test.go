package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	nerrs "github.com/arloliu/ncpipe/errs"
)

const schema = `
variables:
  - name: temperature
    type: float
    length: 64
    chunk: 16
    quantize: {mode: bitgroom, nsd: 3}
    filters:
      - name: shuffle
      - name: zstd
        params: [3]
  - name: counts
    type: uint
    length: 8
`

func writeSchema(t *testing.T, doc string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "schema.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	return path
}

func TestRun_CreateInspect(t *testing.T) {
	cfg := writeSchema(t, schema)
	out := filepath.Join(t.TempDir(), "out.ncp")

	var stdout, stderr bytes.Buffer
	require.NoError(t, run([]string{"create", "-config", cfg, "-out", out}, &stdout, &stderr))
	require.FileExists(t, out)

	require.Error(t, run([]string{"create", "-config", cfg, "-out", out, "-noclobber"}, &stdout, &stderr))

	stdout.Reset()
	require.NoError(t, run([]string{"inspect", out}, &stdout, &stderr))

	text := stdout.String()
	require.Contains(t, text, "name: temperature")
	require.Contains(t, text, "mode: bitgroom")
	require.Contains(t, text, "nsd: 3")
	require.Contains(t, text, "name: zstd")
	require.Contains(t, text, "name: counts")
	require.Contains(t, text, "format: enhanced")
}

func TestRun_CreateRejectsConfiguration(t *testing.T) {
	cfg := writeSchema(t, "variables:\n  - {name: a, type: double, length: 4, quantize: {mode: bitgroom, nsd: 16}}\n")
	out := filepath.Join(t.TempDir(), "bad.ncp")

	var stdout, stderr bytes.Buffer
	require.Error(t, run([]string{"create", "-config", cfg, "-out", out}, &stdout, &stderr))
	require.NoFileExists(t, out)
}

func TestRun_CreateKeepsExistingFileOnFailure(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "existing.ncp")

	var stdout, stderr bytes.Buffer
	require.NoError(t, run([]string{"create", "-config", writeSchema(t, schema), "-out", out}, &stdout, &stderr))
	before, err := os.ReadFile(out)
	require.NoError(t, err)

	bad := writeSchema(t, "variables:\n  - {name: a, type: double, length: 4, quantize: {mode: bitgroom, nsd: 16}}\n")
	require.Error(t, run([]string{"create", "-config", bad, "-out", out}, &stdout, &stderr))

	after, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Equal(t, before, after)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temporary files must be cleaned up")
}

func TestRun_Usage(t *testing.T) {
	var stdout, stderr bytes.Buffer

	require.Error(t, run(nil, &stdout, &stderr))
	require.Error(t, run([]string{"bogus"}, &stdout, &stderr))
	require.Error(t, run([]string{"create"}, &stdout, &stderr))
	require.Error(t, run([]string{"create", "-unknown"}, &stdout, &stderr))
	require.Error(t, run([]string{"inspect"}, &stdout, &stderr))
	require.Error(t, run([]string{"inspect", filepath.Join(t.TempDir(), "missing.ncp")}, &stdout, &stderr))

	stdout.Reset()
	require.NoError(t, run([]string{"help"}, &stdout, &stderr))
	require.Contains(t, stdout.String(), "Usage:")
}

func TestRun_Filters(t *testing.T) {
	var stdout, stderr bytes.Buffer
	require.NoError(t, run([]string{"filters"}, &stdout, &stderr))

	text := stdout.String()
	for _, name := range []string{"deflate", "shuffle", "fletcher32", "lz4", "zstd", "s2", "xxhash64"} {
		require.Contains(t, text, name)
	}
}

func TestCodeFor(t *testing.T) {
	require.Equal(t, ErrSchema, codeFor(fmt.Errorf("load: %w", nerrs.ErrInvalidSchema)))
	require.Equal(t, ErrCorrupt, codeFor(nerrs.ErrChecksumMismatch))
	require.Equal(t, ErrCorrupt, codeFor(nerrs.ErrInvalidHeader))
	require.Equal(t, ErrConfiguration, codeFor(nerrs.ErrTooLateToDefine))
	require.Equal(t, ErrConfiguration, codeFor(nerrs.ErrFilterUnavailable))
	require.Equal(t, ErrIO, codeFor(nerrs.ErrExists))
	require.Equal(t, ErrIO, codeFor(&os.PathError{Op: "open", Path: "x", Err: os.ErrNotExist}))
	require.Equal(t, ErrUnspecified, codeFor(fmt.Errorf("something else")))
}
