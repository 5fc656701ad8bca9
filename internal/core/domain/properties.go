package domain

import "strings"

// EscapeEntry replaces each newline in a properties entry with a literal
// backslash-n so the entry occupies a single line.
func EscapeEntry(entry string) string {
	return strings.ReplaceAll(entry, "\n", `\n`)
}

// IsCommentOrBlank reports whether a properties line carries no content:
// it is empty, whitespace-only, or starts with '#' or '!'.
func IsCommentOrBlank(line string) bool {
	if line == "" || line[0] == '#' || line[0] == '!' {
		return true
	}
	return strings.TrimSpace(line) == ""
}

// FilterLines returns the lines that are not comments or blank, in order.
func FilterLines(lines []string) []string {
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if !IsCommentOrBlank(line) {
			kept = append(kept, line)
		}
	}
	return kept
}

// SplitLines splits content into lines. "\n", "\r\n" and a lone "\r" all
// end a line; terminators are not included.
func SplitLines(content string) []string {
	if content == "" {
		return nil
	}
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	return strings.Split(strings.TrimSuffix(content, "\n"), "\n")
}
