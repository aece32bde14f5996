package pipe

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// =============================================================================
// Test Helpers
// =============================================================================

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func newObserved() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}

// =============================================================================
// Method: Run()
// =============================================================================

func TestRun_Args(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"mixed", "10 foo 20 bar 30", "10\n20\n30\n"},
		{"multiline", "1\n2\n\n3\n", "1\n2\n3\n"},
		{"empty", "", ""},
		{"garbage_only", "a b c", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			in := writeFile(t, dir, "in.txt", tt.input)
			out := filepath.Join(dir, "out.txt")

			var stdout bytes.Buffer
			p := New(nil, strings.NewReader(""), &stdout)
			require.NoError(t, p.Run([]string{in, out}))

			assert.Equal(t, "queue is empty!\n", stdout.String())
			assert.Equal(t, tt.want, readFile(t, out))
		})
	}
}

func TestRun_ExtraArgsIgnored(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "in.txt", "4 5")
	out := filepath.Join(dir, "out.txt")

	p := New(nil, strings.NewReader(""), &bytes.Buffer{})
	require.NoError(t, p.Run([]string{in, out, "extra"}))
	assert.Equal(t, "4\n5\n", readFile(t, out))
}

func TestRun_Interactive(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "in.txt", "7 x 8")
	out := filepath.Join(dir, "out.txt")

	var stdout bytes.Buffer
	stdin := strings.NewReader(in + "\n  " + out + "  \n")
	p := New(nil, stdin, &stdout)
	require.NoError(t, p.Run(nil))

	assert.Equal(t, "queue is empty!\n", stdout.String())
	assert.Equal(t, "7\n8\n", readFile(t, out))
}

func TestRun_SingleArgReadsStdin(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "in.txt", "1")
	out := filepath.Join(dir, "out.txt")

	p := New(nil, strings.NewReader(in+"\n"+out+"\n"), &bytes.Buffer{})
	require.NoError(t, p.Run([]string{"ignored"}))
	assert.Equal(t, "1\n", readFile(t, out))
}

func TestRun_MissingInput(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.txt")
	log, logs := newObserved()

	p := New(log, strings.NewReader(""), &bytes.Buffer{})
	require.NoError(t, p.Run([]string{filepath.Join(dir, "nope.txt"), out}))

	assert.Equal(t, "", readFile(t, out))
	assert.Equal(t, 1, logs.FilterMessage("open input failed").Len())
}

func TestRun_UnwritableOutput(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "in.txt", "1 2")
	log, logs := newObserved()

	p := New(log, strings.NewReader(""), &bytes.Buffer{})
	require.NoError(t, p.Run([]string{in, filepath.Join(dir, "missing", "out.txt")}))

	assert.Equal(t, 1, logs.FilterMessage("create output failed").Len())
}

func TestRun_NoFilenames(t *testing.T) {
	var stdout bytes.Buffer
	log, logs := newObserved()

	p := New(log, strings.NewReader(""), &stdout)
	require.NoError(t, p.Run(nil))

	assert.Equal(t, "queue is empty!\n", stdout.String())
	assert.Equal(t, 1, logs.FilterMessage("open input failed").Len())
	assert.Equal(t, 1, logs.FilterMessage("create output failed").Len())
}

func TestRun_LongStdinLine(t *testing.T) {
	var stdout bytes.Buffer
	log, logs := newObserved()

	stdin := strings.NewReader(strings.Repeat("x", 100000) + "\n")
	p := New(log, stdin, &stdout)
	require.NoError(t, p.Run(nil))

	assert.Equal(t, "queue is empty!\n", stdout.String())
	assert.Equal(t, 1, logs.FilterMessage("open input failed").Len())
	assert.Equal(t, 1, logs.FilterMessage("create output failed").Len())
}

func TestRun_StdinWithoutTrailingNewline(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "in.txt", "3 4")
	out := filepath.Join(dir, "out.txt")

	p := New(nil, strings.NewReader(in+"\n"+out), &bytes.Buffer{})
	require.NoError(t, p.Run(nil))
	assert.Equal(t, "3\n4\n", readFile(t, out))
}

func TestRun_ReleasesAllNodes(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "in.txt", "1 2 3 4")
	out := filepath.Join(dir, "out.txt")
	log, logs := newObserved()

	p := New(log, strings.NewReader(""), &bytes.Buffer{})
	require.NoError(t, p.Run([]string{in, out}))

	released := logs.FilterMessage("queue released").All()
	require.Len(t, released, 1)
	fields := released[0].ContextMap()
	assert.EqualValues(t, 8, fields["allocated"])
	assert.EqualValues(t, 8, fields["released"])
	assert.EqualValues(t, 0, fields["live"])

	read := logs.FilterMessage("input read").All()
	require.Len(t, read, 1)
	assert.EqualValues(t, 4, read[0].ContextMap()["pushed"])
}
