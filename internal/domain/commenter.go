package domain

import (
	"bytes"
	"strings"
)

// CommentBlock renders template text as a block of line comments. Every
// template line, blank ones included, is prefixed with token and stripped of
// trailing whitespace, so a blank line becomes the bare token. Line breaks at
// the end of the template are dropped; the block itself has no trailing
// newline.
func CommentBlock(text, token, newline string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimRight(text, "\n")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(token+line, " \t")
	}

	return strings.Join(lines, newline)
}

// Prepend returns block, one blank line and then content byte for byte.
func Prepend(content []byte, block string, newline string) []byte {
	out := make([]byte, 0, len(block)+2*len(newline)+len(content))
	out = append(out, block...)
	out = append(out, newline...)
	out = append(out, newline...)
	out = append(out, content...)

	return out
}

// DetectNewline returns "\r\n" when content's first line ends in CRLF and
// "\n" otherwise.
func DetectNewline(content []byte) string {
	idx := bytes.IndexByte(content, '\n')
	if idx > 0 && content[idx-1] == '\r' {
		return "\r\n"
	}

	return "\n"
}

// ContainsMarker reports whether content already carries any of markers.
func ContainsMarker(content []byte, markers []string) bool {
	for _, marker := range markers {
		if marker == "" {
			continue
		}

		if bytes.Contains(content, []byte(marker)) {
			return true
		}
	}

	return false
}

// templateMarker derives a marker from the first non-blank template line. It
// is checked alongside any configured markers.
func templateMarker(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}

	return ""
}
