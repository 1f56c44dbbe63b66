package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/symregex"
)

func runCommand(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cmd := New()
	var out, errOut bytes.Buffer
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const logText = "ok start\nERROR disk full\nok\nerror: retry error\n"

func TestSearchStdin(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"lines", []string{`error`}, "error: retry error\n"},
		{"ignore case", []string{"-i", `error`}, "ERROR disk full\nerror: retry error\n"},
		{"count", []string{"-c", "-i", `error`}, "2\n"},
		{"count lines", []string{"-c", `e\w+`}, "1\n"},
		{"count matches", []string{"-c", "-o", `e\w+`}, "3\n"},
		{"only matching", []string{"-o", `e\w+`}, "28:error\n36:etry\n41:error\n"},
		{"multiline", []string{"-m", `^ok$`}, "ok\n"},
		{"no prefilter", []string{"--no-prefilter", `disk \w+`}, "ERROR disk full\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := runCommand(t, logText, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestSearchFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.log", logText)
	b := writeFile(t, dir, "b.log", "nothing here\n")
	c := writeFile(t, dir, "c.log", "error once")

	out, _, err := runCommand(t, "", "-j", "2", "-c", `error`, a, b, c)
	require.NoError(t, err)
	assert.Equal(t, a+":1\n"+b+":0\n"+c+":1\n", out)

	out, _, err = runCommand(t, "", `error`, b, c)
	require.NoError(t, err)
	assert.Equal(t, c+":error once\n", out)
}

func TestLineReportedOnce(t *testing.T) {
	out, _, err := runCommand(t, "a1 a2\nb\na3\n", `a\d`)
	require.NoError(t, err)
	assert.Equal(t, "a1 a2\na3\n", out)

	out, _, err = runCommand(t, "x\nab\ncd\n", `(?s)b.c`)
	require.NoError(t, err)
	assert.Equal(t, "ab\ncd\n", out)
}

func TestExitStatus(t *testing.T) {
	_, _, err := runCommand(t, "abc", `z`)
	assert.ErrorIs(t, err, ErrNoMatch)

	_, _, err = runCommand(t, "abc", `a*`)
	assert.ErrorIs(t, err, symregex.ErrNullablePattern)

	_, _, err = runCommand(t, "abc", `(`)
	assert.ErrorIs(t, err, symregex.ErrInvalidPattern)

	_, _, err = runCommand(t, "", `a`, filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, _, err = runCommand(t, "abc", "-j", "0", `a`)
	assert.Error(t, err)
}

func TestEnvironment(t *testing.T) {
	t.Setenv("SYMGREP_COUNT", "true")
	t.Setenv("SYMGREP_IGNORE_CASE", "1")
	out, _, err := runCommand(t, logText, `error`)
	require.NoError(t, err)
	assert.Equal(t, "2\n", out)

	// Flags win over the environment.
	out, _, err = runCommand(t, logText, "--count=false", `disk`)
	require.NoError(t, err)
	assert.Equal(t, "ERROR disk full\n", out)
}

func TestStats(t *testing.T) {
	_, stderr, err := runCommand(t, logText, "--stats", `disk`)
	require.NoError(t, err)
	assert.Contains(t, stderr, "searches:          2\n")
	assert.Contains(t, stderr, "matches:           1\n")
	assert.Contains(t, stderr, "prefilter:         memmem")
}
