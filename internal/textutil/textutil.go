// Package textutil provides text layout helpers shared by the generators:
// greedy paragraph wrapping and aligned Markdown tables.
package textutil

import "strings"

// Wrap greedily wraps text at the given width. Words are never broken, and
// hyphenated words are kept intact; a single word longer than the width gets
// its own line. Whitespace runs collapse to single spaces.
func Wrap(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}

	var lines []string
	line := words[0]
	for _, word := range words[1:] {
		if len(line)+1+len(word) > width {
			lines = append(lines, line)
			line = word
			continue
		}
		line += " " + word
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n")
}

// Underline returns title followed by a line of the given rune matching the
// title's display length.
func Underline(title string, mark rune) string {
	return title + "\n" + strings.Repeat(string(mark), len([]rune(title)))
}

// MarkdownTable renders a pipe-delimited Markdown table with columns padded
// to the widest cell. Pipe characters inside cells are escaped as `\|`
// before widths are computed, so the output stays aligned. The result has
// no trailing newline.
func MarkdownTable(headers []string, rows [][]string) string {
	escape := func(s string) string {
		return strings.ReplaceAll(s, "|", `\|`)
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len([]rune(escape(h)))
	}
	escaped := make([][]string, len(rows))
	for r, row := range rows {
		cells := make([]string, len(headers))
		for i := range headers {
			if i < len(row) {
				cells[i] = escape(row[i])
			}
			if w := len([]rune(cells[i])); w > widths[i] {
				widths[i] = w
			}
		}
		escaped[r] = cells
	}

	pad := func(s string, w int) string {
		return s + strings.Repeat(" ", w-len([]rune(s)))
	}

	var b strings.Builder
	for i, h := range headers {
		b.WriteString("| ")
		b.WriteString(pad(escape(h), widths[i]))
		b.WriteString(" ")
	}
	b.WriteString("|\n")
	for _, w := range widths {
		b.WriteString("|")
		b.WriteString(strings.Repeat("-", w+2))
	}
	b.WriteString("|")
	for _, row := range escaped {
		b.WriteString("\n")
		for i, cell := range row {
			b.WriteString("| ")
			b.WriteString(pad(cell, widths[i]))
			b.WriteString(" ")
		}
		b.WriteString("|")
	}
	return b.String()
}
