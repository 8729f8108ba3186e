package search

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Mode selects how interactive queries are matched.
type Mode int

const (
	// ModeExact matches the full domain against the set.
	ModeExact Mode = iota
	// ModePartial lists every domain containing the query as a substring.
	ModePartial
)

func (m Mode) String() string {
	if m == ModePartial {
		return "partial"
	}
	return "exact"
}

// REPL is a two-state read-eval loop over an Index: a query runs in the
// current mode, ":mode" toggles between exact and partial matching, and
// ":quit" (or ":q") ends the loop. The index itself is stateless and
// reusable outside the loop.
type REPL struct {
	index *Index
	mode  Mode
	out   io.Writer
}

// NewREPL builds a loop starting in exact mode.
func NewREPL(index *Index, out io.Writer) *REPL {
	return &REPL{index: index, out: out}
}

// Mode returns the current match mode.
func (r *REPL) Mode() Mode {
	return r.mode
}

// Step processes one line of input and reports whether the loop should end.
func (r *REPL) Step(input string) bool {
	input = strings.TrimSpace(input)
	switch input {
	case "":
		return false
	case ":q", ":quit":
		return true
	case ":mode":
		if r.mode == ModeExact {
			r.mode = ModePartial
		} else {
			r.mode = ModeExact
		}
		fmt.Fprintf(r.out, "mode: %s\n", r.mode)
		return false
	}
	r.query(input)
	return false
}

func (r *REPL) query(q string) {
	if r.mode == ModeExact {
		fmt.Fprintf(r.out, "%s: %s\n", q, verdict(r.index.Exact(q)))
		return
	}
	matches := r.index.Partial(q)
	if len(matches) == 0 {
		fmt.Fprintln(r.out, "no matches")
		return
	}
	for n, d := range matches {
		fmt.Fprintf(r.out, "%3d. %s\n", n+1, d)
	}
}

// Run drives the loop over in until quit or EOF, printing a mode prompt
// before each read.
func (r *REPL) Run(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprintf(r.out, "%s> ", r.mode)
		if !scanner.Scan() {
			fmt.Fprintln(r.out)
			break
		}
		if r.Step(scanner.Text()) {
			break
		}
	}
	return scanner.Err()
}
