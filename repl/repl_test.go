package repl

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"calc/eval"
	"calc/parser"
)

func TestSessionEval(t *testing.T) {
	s := NewSession()

	got, err := s.Eval("x = 5")
	require.NoError(t, err)
	assert.Equal(t, 5.0, got)

	got, err = s.Eval("x + 1")
	require.NoError(t, err)
	assert.Equal(t, 6.0, got)
}

func TestSessionConstants(t *testing.T) {
	s := NewSession()

	got, err := s.Eval("sin(pi / 2)")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, got, 1e-9)

	got, err = s.Eval("ln(e)")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, got, 1e-9)

	got, err = s.Eval("tau")
	require.NoError(t, err)
	assert.Equal(t, 2*math.Pi, got)

	// Constants are ordinary bindings; rebinding overwrites.
	_, err = s.Eval("pi = 3")
	require.NoError(t, err)
	got, err = s.Eval("pi")
	require.NoError(t, err)
	assert.Equal(t, 3.0, got)
}

func TestSessionErrorsKeepBindings(t *testing.T) {
	s := NewSession()

	_, err := s.Eval("x = 5")
	require.NoError(t, err)

	// A failed parse leaves the environment untouched.
	_, err = s.Eval("x = (1 + 2")
	var serr *parser.SyntaxError
	require.ErrorAs(t, err, &serr)

	got, err := s.Eval("x")
	require.NoError(t, err)
	assert.Equal(t, 5.0, got)
}

func TestRun(t *testing.T) {
	s := NewSession()

	in := strings.NewReader("x = 2\nx ^ 10\n\n1 / 0\nx\nexit\n")
	var out bytes.Buffer
	err := s.Run(in, &out)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "2", lines[0])
	assert.Equal(t, "1024", lines[1])
	assert.Contains(t, lines[2], "division by zero")
	assert.Equal(t, "2", lines[3])
}

func TestRunCommands(t *testing.T) {
	s := NewSession()

	in := strings.NewReader("x = 1\nvars\nclear\nvars\nquit\n")
	var out bytes.Buffer
	err := s.Run(in, &out)
	require.NoError(t, err)

	// After clear, only the re-seeded constants remain.
	text := out.String()
	assert.Contains(t, text, "x = 1")
	assert.Equal(t, 2, strings.Count(text, "pi = "))
	assert.Equal(t, 1, strings.Count(text, "x = "))
}

func TestRunHelp(t *testing.T) {
	s := NewSession()

	in := strings.NewReader("help\n")
	var out bytes.Buffer
	require.NoError(t, s.Run(in, &out))
	assert.Contains(t, out.String(), "sin")
	assert.Contains(t, out.String(), "Commands:")
}

func TestRunScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.calc")
	script := `# compound interest
rate = 0.05
principal = 1000
principal * (1 + rate) ^ 3
`
	require.NoError(t, os.WriteFile(path, []byte(script), 0644))

	s := NewSession()
	var out bytes.Buffer
	require.NoError(t, s.RunScript(path, &out))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	got, err := strconv.ParseFloat(lines[2], 64)
	require.NoError(t, err)
	assert.InDelta(t, 1157.625, got, 1e-9)
}

func TestRunScriptStopsAtFirstError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.calc")
	script := "1 + 1\nundefined_var\n2 + 2\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0644))

	s := NewSession()
	var out bytes.Buffer
	err := s.RunScript(path, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.calc:2")

	var eerr *eval.EvalError
	require.ErrorAs(t, err, &eerr)
	assert.Equal(t, eval.UndefinedVariable, eerr.Kind)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 1)
	assert.Equal(t, "2", lines[0])
}

func TestRunScriptMissingFile(t *testing.T) {
	s := NewSession()
	var out bytes.Buffer
	err := s.RunScript(filepath.Join(t.TempDir(), "nope.calc"), &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope.calc")
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "2", Format(2))
	assert.Equal(t, "0.25", Format(0.25))
	assert.Equal(t, "1e-09", Format(1e-9))
}
