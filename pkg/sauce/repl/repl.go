package repl

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
	"github.com/sambeau/sauce/pkg/sauce/errors"
)

const LOGO = `
█▀ ▄▀█ █░█ █▀▀ █▀▀
▄█ █▀█ █▄█ █▄▄ ██▄ `

// Options configures the interactive shell.
type Options struct {
	Prompt      string // prompt prefix, the current path is appended
	HistoryFile string // empty disables history
	Version     string
}

// Start runs the interactive shell on the terminal with line editing,
// history and tab completion until exit or Ctrl+D.
func Start(out io.Writer, s *Session, opts Options) {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(s.Completions)

	if opts.HistoryFile != "" {
		if f, err := os.Open(opts.HistoryFile); err == nil {
			line.ReadHistory(f)
			f.Close()
		}
		defer func() {
			if f, err := os.Create(opts.HistoryFile); err == nil {
				line.WriteHistory(f)
				f.Close()
			}
		}()
	}

	prompt := opts.Prompt
	if prompt == "" {
		prompt = "sauce"
	}

	fmt.Fprintf(out, "%s", LOGO)
	if opts.Version != "" {
		fmt.Fprintln(out, "v", opts.Version)
	}
	fmt.Fprintln(out, "")
	fmt.Fprintln(out, "Type 'exit' or Ctrl+D to quit")
	fmt.Fprintln(out, "Type ':help' for commands, Tab for completion")
	fmt.Fprintln(out, "")

	for {
		input, err := line.Prompt(fmt.Sprintf("%s %s> ", prompt, s.Path()))
		if err != nil {
			if err == liner.ErrPromptAborted {
				fmt.Fprintln(out, "^C")
				continue
			}
			if err == io.EOF {
				fmt.Fprintln(out, "\nGoodbye!")
				return
			}
			fmt.Fprintf(out, "Error reading input: %v\n", err)
			continue
		}

		trimmed := strings.TrimSpace(input)
		if trimmed == "exit" || trimmed == "quit" {
			fmt.Fprintln(out, "Goodbye!")
			return
		}
		if trimmed == "" {
			continue
		}
		line.AppendHistory(trimmed)

		result, err := s.Exec(trimmed)
		if err != nil {
			PrintError(out, err)
			continue
		}
		if result != "" {
			fmt.Fprintln(out, result)
		}
	}
}

// PrintError writes err with its hints, if it has any.
func PrintError(out io.Writer, err error) {
	var se *errors.SauceError
	if stderrors.As(err, &se) {
		fmt.Fprintln(out, se.PrettyString())
		return
	}
	fmt.Fprintln(out, err.Error())
}
