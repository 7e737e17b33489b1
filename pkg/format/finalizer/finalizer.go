/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package finalizer

import (
	"fmt"
	"strings"
)

// LineEnding selects the newline sequence written into generated artifacts.
type LineEnding string

const (
	LF   LineEnding = "lf"
	CRLF LineEnding = "crlf"
)

// ParseLineEnding accepts "lf" or "crlf" (case-insensitive). Empty means LF.
func ParseLineEnding(s string) (LineEnding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "lf", "\n":
		return LF, nil
	case "crlf", "\r\n":
		return CRLF, nil
	default:
		return "", fmt.Errorf("unsupported line ending %q (want lf or crlf)", s)
	}
}

// Sequence returns the literal newline bytes for the style.
func (le LineEnding) Sequence() string {
	if le == CRLF {
		return "\r\n"
	}
	return "\n"
}

// NormalizeLineEndings converts all line endings to the specified style
func NormalizeLineEndings(input []byte, target LineEnding) (out []byte, changed bool) {
	if len(input) == 0 {
		return input, false
	}

	content := string(input)
	original := content

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	if target == CRLF {
		content = strings.ReplaceAll(content, "\n", "\r\n")
	}

	return []byte(content), content != original
}

// TrimTrailingSpaces removes spaces and tabs at the end of every line.
func TrimTrailingSpaces(input []byte) (out []byte, changed bool) {
	lines := strings.Split(string(input), "\n")
	for i, line := range lines {
		cr := strings.HasSuffix(line, "\r")
		body := strings.TrimSuffix(line, "\r")
		trimmed := strings.TrimRight(body, " \t")
		if trimmed != body {
			changed = true
			if cr {
				trimmed += "\r"
			}
			lines[i] = trimmed
		}
	}
	return []byte(strings.Join(lines, "\n")), changed
}

// EnsureSingleTrailingNewline collapses trailing blank lines so content ends
// with exactly one newline in the given style. Empty input stays empty.
func EnsureSingleTrailingNewline(input []byte, le LineEnding) (out []byte, changed bool) {
	if len(input) == 0 {
		return input, false
	}
	content := strings.TrimRight(string(input), "\r\n") + le.Sequence()
	return []byte(content), content != string(input)
}

// Finalize applies the full normalization used for generated text: trailing
// whitespace trimmed, line endings unified, exactly one final newline.
func Finalize(input []byte, le LineEnding) []byte {
	out, _ := TrimTrailingSpaces(input)
	out, _ = NormalizeLineEndings(out, le)
	out, _ = EnsureSingleTrailingNewline(out, le)
	return out
}
