package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/term"
)

// isTerminal is a test seam for term.IsTerminal.
var isTerminal = term.IsTerminal

// multilineEnd ends multi-line input. Blank lines are part of the text.
const multilineEnd = "."

// GetSimpleText prints a prompt to w and reads a single line of input from reader.
// The line is trimmed. If EOF occurs after some input was read, the partial
// line is returned.
//
// Example prompt format:
//
//	Prompt text
//	> _
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetMultiline prints a prompt to w and reads lines until one consisting of a
// single "." (or EOF). Lines are joined with '\n' without further trimming,
// so paragraphs separated by blank lines survive.
func GetMultiline(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprintf(w, "%s\n(finish with a line containing only %q)\n", prompt, multilineEnd); err != nil {
		return "", err
	}

	var lines []string
	for {
		line, err := reader.ReadString('\n')
		trimmed := strings.TrimRight(line, "\r\n")
		if err != nil {
			if !errors.Is(err, io.EOF) {
				return "", err
			}
			if trimmed != "" && trimmed != multilineEnd {
				lines = append(lines, trimmed)
			}
			if len(lines) == 0 {
				return "", io.EOF
			}
			break
		}
		if trimmed == multilineEnd {
			break
		}
		lines = append(lines, trimmed)
	}

	return strings.Join(lines, "\n"), nil
}

// Confirm asks a yes/no question. Only "y" and "yes" (any case) confirm.
func Confirm(reader *bufio.Reader, prompt string, w io.Writer) (bool, error) {
	answer, err := GetSimpleText(reader, prompt+" [y/N]", w)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
