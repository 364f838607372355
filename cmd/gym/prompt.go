// ABOUTME: Line-oriented prompting over the command's input and output streams.
// ABOUTME: Shared by the interactive menu, the log command and install-skill.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// prompter writes a prompt and reads back one trimmed line.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewReader(in), out: out}
}

// ask returns io.EOF once input is exhausted. A final line without a
// trailing newline is still returned.
func (p *prompter) ask(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(p.out)
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}
