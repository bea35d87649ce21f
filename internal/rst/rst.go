// Package rst strips reStructuredText markup from docstrings and field
// descriptions so generators emit plain readable text.
package rst

import (
	"regexp"
	"strings"

	"github.com/azmeuk/settings-export/internal/textutil"
)

var (
	// :py:class:`~foo.bar.Baz` -> Baz
	tildeRoleRe = regexp.MustCompile(":[\\w:-]+:`~[\\w.]+\\.(\\w+)`")
	// :ref:`label` and :ref:`label <target>` -> label
	roleRe = regexp.MustCompile(":[\\w:-]+:`([^`<]+?)(?: <[^`>]+>)?`")
	// `label <URL>`_ -> label (URL)
	linkRe = regexp.MustCompile("`([^`<]+) <([^`>]+)>`_")
	// ``code`` -> code
	literalRe = regexp.MustCompile("``([^`]+)``")
	// Directive blocks with their indented option lines.
	directiveRe = regexp.MustCompile(`\.\. [\w-]+::( \w+)?(\n   :[^\n]+)*\n\n`)

	paragraphRe = regexp.MustCompile(`\n\n+`)
)

// Sanitize removes inline RST syntax without touching layout.
func Sanitize(text string) string {
	text = tildeRoleRe.ReplaceAllString(text, "$1")
	text = roleRe.ReplaceAllString(text, "$1")
	text = linkRe.ReplaceAllString(text, "$1 ($2)")
	text = literalRe.ReplaceAllString(text, "$1")
	text = directiveRe.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, `\`, "")
	return text
}

// ToText removes RST syntax and rewraps prose paragraphs at the given width.
// Code blocks (fully indented paragraphs) and list paragraphs keep their
// original layout.
func ToText(text string, width int) string {
	text = Sanitize(text)

	paragraphs := paragraphRe.Split(text, -1)
	for i, p := range paragraphs {
		if isCodeBlock(p) || isList(p) {
			continue
		}
		paragraphs[i] = textutil.Wrap(p, width)
	}
	return strings.Join(paragraphs, "\n\n")
}

func isCodeBlock(p string) bool {
	for _, line := range strings.Split(p, "\n") {
		if line != "" && !strings.HasPrefix(line, "    ") {
			return false
		}
	}
	return true
}

func isList(p string) bool {
	for _, line := range strings.Split(p, "\n") {
		if !strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "  ") {
			return false
		}
	}
	return true
}
