package stats

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/verte-zerg/vigenplay/internal/alphabet"
)

const (
	reportHistogramRows = 10
	reportRepeatRows    = 10
)

// RenderAnalysis prints the analysis as a plain-text report.
func RenderAnalysis(w io.Writer, a Analysis) error {
	if a.Letters == 0 {
		_, err := fmt.Fprintln(w, "No letters found.")
		return err
	}
	lines := []string{
		"Summary",
		fmt.Sprintf("Letters: %d", a.Letters),
		fmt.Sprintf("Index of coincidence: %.4f (English %.4f, random %.4f)", a.IC, alphabet.EnglishIC, alphabet.RandomIC),
		fmt.Sprintf("Friedman estimate: %d", a.Friedman),
		"",
	}
	if err := writeLines(w, lines); err != nil {
		return err
	}
	if err := renderKeyLengths(w, a); err != nil {
		return err
	}
	if err := renderHistogram(w, a); err != nil {
		return err
	}
	return renderRepeats(w, a)
}

func renderKeyLengths(w io.Writer, a Analysis) error {
	headers := []string{"Rank", "Length", "Weight", "Column IC"}
	rows := make([][]string, 0, len(a.KeyLengths))
	for i, c := range a.KeyLengths {
		colIC := "-"
		if ic, ok := a.ColumnICFor(c.Length); ok {
			colIC = fmt.Sprintf("%.4f", ic)
		}
		rows = append(rows, []string{strconv.Itoa(i + 1), strconv.Itoa(c.Length), strconv.Itoa(c.Weight), colIC})
	}
	return renderSection(w, "Candidate Key Lengths", headers, rows, map[int]bool{0: true, 1: true, 2: true, 3: true})
}

func renderHistogram(w io.Writer, a Analysis) error {
	if len(a.Histogram) == 0 {
		return writeLines(w, []string{"Divisor Histogram", "No repeated substrings found.", ""})
	}
	headers := []string{"Factor", "Distances"}
	rows := make([][]string, 0, reportHistogramRows)
	for i, fc := range a.Histogram {
		if i >= reportHistogramRows {
			break
		}
		rows = append(rows, []string{strconv.Itoa(fc.Factor), strconv.Itoa(fc.Count)})
	}
	return renderSection(w, "Divisor Histogram", headers, rows, map[int]bool{0: true, 1: true})
}

func renderRepeats(w io.Writer, a Analysis) error {
	if len(a.Distances) == 0 {
		return nil
	}
	subs := make([]string, 0, len(a.Distances))
	for sub := range a.Distances {
		subs = append(subs, sub)
	}
	// Longest and most repeated first.
	sort.Slice(subs, func(i, j int) bool {
		li, lj := len(a.Distances[subs[i]]), len(a.Distances[subs[j]])
		if li != lj {
			return li > lj
		}
		if len(subs[i]) != len(subs[j]) {
			return len(subs[i]) > len(subs[j])
		}
		return subs[i] < subs[j]
	})
	if len(subs) > reportRepeatRows {
		subs = subs[:reportRepeatRows]
	}
	headers := []string{"Substring", "Distances"}
	rows := make([][]string, 0, len(subs))
	for _, sub := range subs {
		parts := make([]string, 0, len(a.Distances[sub]))
		for _, d := range a.Distances[sub] {
			parts = append(parts, strconv.Itoa(d))
		}
		rows = append(rows, []string{sub, strings.Join(parts, " ")})
	}
	return renderSection(w, "Repeated Substrings", headers, rows, nil)
}

// RenderTable prints a titled, aligned table followed by a blank line.
func RenderTable(w io.Writer, title string, headers []string, rows [][]string, rightAlign map[int]bool) error {
	return renderSection(w, title, headers, rows, rightAlign)
}

func renderSection(w io.Writer, title string, headers []string, rows [][]string, rightAlign map[int]bool) error {
	lines := append([]string{title}, formatTable(headers, rows, rightAlign)...)
	lines = append(lines, "")
	return writeLines(w, lines)
}

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
