package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// terminal prompts on a line-based console.
type terminal struct {
	in        *bufio.Reader
	out       io.Writer
	assumeYes bool
}

func newTerminal(in io.Reader, out io.Writer) *terminal {
	return &terminal{in: bufio.NewReader(in), out: out}
}

func (t *terminal) Alert(title, message string) {
	fmt.Fprintf(t.out, "%s: %s\n", title, message)
}

func (t *terminal) Confirm(title, message string) bool {
	if t.assumeYes {
		return true
	}
	fmt.Fprintf(t.out, "%s: %s [y/N] ", title, message)
	line, err := t.in.ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(t.out)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
