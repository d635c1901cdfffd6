package xmlcomment

import (
	"regexp"
	"strings"
)

// Normalize re-flows multi-line markup content against an indentation
// baseline so it renders the same regardless of how deeply the source
// declaration was nested.
//
// Lines that are empty or all-whitespace collapse to the empty string. A line
// whose first non-whitespace character opens an element resets the running
// baseline to that line's indent; every line is emitted with the lesser of
// the running baseline and its own indent stripped, so continuation text
// aligns to its owning element's column without ever losing characters the
// line does not have. Finally the newline directly inside each literal-code
// boundary is removed, keeping code samples' interior alignment intact.
func Normalize(content string, parentIndent int) string {
	if content == "" {
		return content
	}
	lines := splitLines(content)
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			lines[i] = ""
			continue
		}
		lead := leadingWhitespace(line)
		if line[lead] == '<' {
			parentIndent = lead
		}
		strip := parentIndent
		if lead < strip {
			strip = lead
		}
		lines[i] = line[strip:]
	}
	return trimCodeBoundaries(strings.Join(lines, "\n"))
}

var lineBreaks = strings.NewReplacer("\r\n", "\n", "\r", "\n")

func splitLines(content string) []string {
	return strings.Split(lineBreaks.Replace(content), "\n")
}

func leadingWhitespace(line string) int {
	count := 0
	for _, r := range line {
		if r == ' ' || r == '\t' {
			count++
			continue
		}
		break
	}
	return count
}

var (
	codeOpenNewline  = regexp.MustCompile("(<code[^>]*>)\n")
	codeCloseNewline = regexp.MustCompile("\n(</code>)")
)

// trimCodeBoundaries strips exactly one newline just inside the opening and
// closing edges of each literal-code region. Interior lines are untouched;
// nested markup inside a code region is plain text as far as this pass is
// concerned.
func trimCodeBoundaries(s string) string {
	s = codeOpenNewline.ReplaceAllString(s, "$1")
	return codeCloseNewline.ReplaceAllString(s, "$1")
}
