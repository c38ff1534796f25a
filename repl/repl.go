package repl

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/luthersystems/tinylisp/lisp"
)

// DefaultPrompt is the prompt shown when no expression is pending.
const DefaultPrompt = "> "

// Config configures the terminal loop.
type Config struct {
	Prompt      string
	HistoryFile string
	PrintStack  bool
	Stdout      io.Writer
	Stderr      io.Writer
}

// RunRepl runs an interactive loop on the terminal until the user enters exit
// or quit, or closes the input stream.
func RunRepl(rt *lisp.Runtime, config Config) error {
	if rt.Reader == nil {
		return fmt.Errorf("runtime has no reader")
	}
	prompt := config.Prompt
	if prompt == "" {
		prompt = DefaultPrompt
	}
	rl, err := readline.NewEx(&readline.Config{
		Prompt:       prompt,
		HistoryFile:  config.HistoryFile,
		Stdout:       config.Stdout,
		Stderr:       config.Stderr,
		AutoComplete: &symbolCompleter{env: rt.Global},
	})
	if err != nil {
		return err
	}
	defer rl.Close()
	contPrompt := strings.Repeat(" ", len(prompt)) // prompt had better be ascii...

	// readline's writers redraw the prompt around output
	session := NewSession(rt, rl.Stdout(), rl.Stderr())
	session.PrintStack = config.PrintStack
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			session.Reset()
			rl.SetPrompt(prompt)
			continue
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(rl.Stderr(), "done")
			return nil
		}
		if err != nil {
			return err
		}
		switch session.Line(line) {
		case Exit:
			return nil
		case Continue:
			rl.SetPrompt(contPrompt)
		default:
			rl.SetPrompt(prompt)
		}
	}
}
