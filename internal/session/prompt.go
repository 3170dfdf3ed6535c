package session

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Prompter reads interactive answers line by line. It exists as its own
// type so the session loop can be driven by a plain reader in tests.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewPrompter creates a prompter reading from in and writing prompts to out
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:  bufio.NewScanner(in),
		out: out,
	}
}

// Ask prints a prompt and returns the trimmed answer. io.EOF is returned
// when the input is exhausted.
func (p *Prompter) Ask(label string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", label)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(p.in.Text()), nil
}

// AskDefault asks and falls back to def on an empty answer
func (p *Prompter) AskDefault(label, def string) (string, error) {
	answer, err := p.Ask(label)
	if err != nil {
		return "", err
	}
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

// Confirm asks a yes/no question. An empty answer means yes; only an
// explicit n/no declines.
func (p *Prompter) Confirm(label string) (bool, error) {
	answer, err := p.Ask(label + " (Y/n)")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "n", "no":
		return false, nil
	default:
		return true, nil
	}
}
