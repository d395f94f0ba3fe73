package tui

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// wrapText breaks text into lines of at most width cells, preferring spaces
// and splitting words longer than a line.
func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}
	var out strings.Builder
	lineWidth := 0
	for i, word := range strings.Fields(text) {
		ww := runewidth.StringWidth(word)
		if i > 0 {
			if lineWidth+1+ww <= width {
				out.WriteByte(' ')
				lineWidth++
			} else {
				out.WriteByte('\n')
				lineWidth = 0
			}
		}
		for ww > width-lineWidth {
			head := runewidth.Truncate(word, width-lineWidth, "")
			if head == "" {
				_, size := utf8.DecodeRuneInString(word)
				head = word[:size]
			}
			out.WriteString(head)
			out.WriteByte('\n')
			word = word[len(head):]
			ww = runewidth.StringWidth(word)
			lineWidth = 0
		}
		out.WriteString(word)
		lineWidth += ww
	}
	return out.String()
}

// groupLetters splits letters into space-separated blocks of size n.
func groupLetters(text string, n int) string {
	if n <= 0 || len(text) <= n {
		return text
	}
	var b strings.Builder
	for i := 0; i < len(text); i += n {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(text[i:min(i+n, len(text))])
	}
	return b.String()
}
