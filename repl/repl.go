package repl

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"golang.org/x/term"

	"calc/eval"
	"calc/lexer"
	"calc/parser"
)

const prompt = ">> "

// Constants seeded into every session. They are ordinary bindings;
// rebinding one overwrites it like any other variable.
var constants = map[string]float64{
	"pi":  math.Pi,
	"e":   math.E,
	"tau": 2 * math.Pi,
}

var (
	resultColor = color.New(color.Bold)
	errorColor  = color.New(color.FgRed)
)

// Session owns one Environment for its lifetime and runs each input
// line through lexer -> parser -> evaluator against it.
type Session struct {
	env *eval.Environment
	ev  *eval.Evaluator
}

func NewSession() *Session {
	env := eval.NewEnvironment()
	s := &Session{env, eval.NewEvaluator(env)}
	s.seedConstants()

	return s
}

func (s *Session) seedConstants() {
	for name, val := range constants {
		s.env.Bind(name, val)
	}
}

func (s *Session) Env() *eval.Environment {
	return s.env
}

// Eval runs one statement. A failed statement leaves the environment
// exactly as it was, except for assignments that already committed
// before the failure.
func (s *Session) Eval(line string) (float64, error) {
	toks, err := lexer.Lex(line)
	if err != nil {
		return 0, err
	}

	expr, err := parser.Parse(toks)
	if err != nil {
		return 0, err
	}

	return s.ev.Eval(expr)
}

// Format renders a result the way the REPL prints it.
func Format(val float64) string {
	return strconv.FormatFloat(val, 'g', -1, 64)
}

// Run reads statements from in until EOF or an exit command. Errors
// abort only the current line; the session and its bindings survive.
func (s *Session) Run(in io.Reader, out io.Writer) error {
	interactive := false
	if f, ok := in.(*os.File); ok {
		interactive = term.IsTerminal(int(f.Fd()))
	}

	scanner := bufio.NewScanner(in)
	for {
		if interactive {
			fmt.Fprint(out, prompt)
		}

		if !scanner.Scan() {
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		switch line {
		case "exit", "quit":
			return nil
		case "clear":
			s.env.Clear()
			s.seedConstants()
			continue
		case "vars":
			for _, name := range s.env.Names() {
				val, _ := s.env.Lookup(name)
				fmt.Fprintf(out, "%s = %s\n", name, Format(val))
			}
			continue
		case "help":
			printHelp(out)
			continue
		}

		val, err := s.Eval(line)
		if err != nil {
			if interactive {
				errorColor.Fprintln(out, err)
			} else {
				fmt.Fprintln(out, err)
			}
			continue
		}

		if interactive {
			resultColor.Fprintln(out, Format(val))
		} else {
			fmt.Fprintln(out, Format(val))
		}
	}
}

// RunScript evaluates a file one statement per line, stopping at the
// first error. Blank lines and '#' comments are skipped.
func (s *Session) RunScript(path string, out io.Writer) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		val, err := s.Eval(line)
		if err != nil {
			return errors.Wrapf(err, "%s:%d", path, lineNo)
		}

		fmt.Fprintln(out, Format(val))
	}

	return errors.Wrapf(scanner.Err(), "reading %s", path)
}

func printHelp(out io.Writer) {
	fmt.Fprintln(out, "Enter an expression, e.g. 2 + 3 * 4 or x = sin(pi / 2).")
	fmt.Fprintln(out, "Operators: + - * / ^ (right-assoc), grouping with () or [].")
	fmt.Fprintln(out, "Functions:", strings.Join(eval.BuiltinNames(), " "))
	fmt.Fprintln(out, "Commands: vars, clear, help, exit")
}
