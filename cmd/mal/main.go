// Command mal is the host collaborator: outside
// the core's scope: the interactive REPL line loop, command-line
// argument wiring, and file loading built on top of the repl package.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/aledsdavies/malcore/repl"
)

// Exit codes, using explicit constants
// (cmd/devcmd/main.go) over bare numeric os.Exit calls.
const (
	exitSuccess     = 0
	exitEvalError   = 1
	exitReadlineErr = 2
)

func main() {
	var evalExpr string
	var noReadline bool

	rootCmd := &cobra.Command{
		Use:           "mal [file...]",
		Short:         "A tree-walking interpreter for a small Lisp in the MAL tradition",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args, evalExpr, noReadline)
		},
	}
	rootCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate one expression and exit instead of starting a REPL")
	rootCmd.Flags().BoolVar(&noReadline, "no-readline", false, "read the interactive REPL from plain stdin instead of readline (useful when piping)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "mal:", err)
		os.Exit(exitEvalError)
	}
}

func run(files []string, evalExpr string, noReadline bool) error {
	r, err := repl.New(files)
	if err != nil {
		return err
	}

	if evalExpr != "" {
		out, err := r.Rep(evalExpr)
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	}

	if len(files) > 0 {
		for _, f := range files {
			if _, err := r.Rep(`(load-file "` + escapeForLoad(f) + `")`); err != nil {
				fmt.Fprintln(os.Stderr, "mal:", err)
				os.Exit(exitEvalError)
			}
		}
		return nil
	}

	if noReadline || !isTerminal() {
		return runPlainLoop(r, os.Stdin)
	}
	return runReadlineLoop(r)
}

// runPlainLoop drives the rep loop from any reader a line at a time;
// used when stdin is piped or --no-readline is set.
func runPlainLoop(r *repl.Repl, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		out, err := r.Rep(line)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			continue
		}
		fmt.Println(out)
	}
	return scanner.Err()
}

// runReadlineLoop drives an interactive session with line editing and
// history via chzyer/readline, the same library the manifests of
// several other Lisp-family repos in the retrieval pack depend on for
// their own interactive front ends (see SPEC_FULL.md's Domain Stack).
// A line that leaves an unbalanced '(' '[' or '{' open prompts for
// continuation instead of surfacing the reader's EOF parse error.
func runReadlineLoop(r *repl.Repl) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "user> ",
		HistoryFile:     historyFilePath(),
		InterruptPrompt: "^C",
		EOFPrompt:       "^D",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	var pending string
	for {
		prompt := "user> "
		if pending != "" {
			prompt = "      "
		}
		rl.SetPrompt(prompt)

		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			pending = ""
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		pending += line
		if !isBalanced(pending) {
			pending += "\n"
			continue
		}
		if pending == "" {
			continue
		}

		out, evalErr := r.Rep(pending)
		pending = ""
		if evalErr != nil {
			fmt.Fprintln(os.Stderr, "error:", evalErr)
			continue
		}
		fmt.Println(out)
	}
}

// isBalanced reports whether every '(' '[' '{' in s (outside strings)
// has a matching close, so the readline loop knows whether to prompt
// for another line rather than handing an incomplete form to the
// reader.
func isBalanced(s string) bool {
	depth := 0
	inString := false
	escaped := false
	for _, r := range s {
		if inString {
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == '"':
				inString = false
			}
			continue
		}
		switch r {
		case '"':
			inString = true
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		}
	}
	return depth <= 0 && !inString
}

func escapeForLoad(path string) string {
	out := make([]byte, 0, len(path))
	for i := 0; i < len(path); i++ {
		if path[i] == '"' || path[i] == '\\' {
			out = append(out, '\\')
		}
		out = append(out, path[i])
	}
	return string(out)
}

func isTerminal() bool {
	fi, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

func historyFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home + "/.mal_history"
}
