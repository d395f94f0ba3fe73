package stats

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"golang.org/x/term"

	"github.com/verte-zerg/vigenplay/internal/alphabet"
	"github.com/verte-zerg/vigenplay/internal/model"
)

// Bar is one labelled value of a bar chart. A positive Ref draws a marker at
// the reference value on the same scale.
type Bar struct {
	Label string
	Value float64
	Ref   float64
}

const (
	barRune             = '█'
	refRune             = '│'
	minBarWidth         = 10
	terminalWidthBackup = 80
	barColor            = "\x1b[36m"
	refColor            = "\x1b[33m"
	colorReset          = "\x1b[0m"
)

// RenderBars draws a horizontal bar chart sized to totalWidth columns, or to
// the terminal when totalWidth is not positive.
func RenderBars(w io.Writer, title string, bars []Bar, totalWidth int, forceColor bool) error {
	if len(bars) == 0 {
		return nil
	}
	if totalWidth <= 0 {
		totalWidth = terminalWidth()
	}
	labelWidth := 0
	maxVal := 0.0
	for _, b := range bars {
		if lw := displayWidth(b.Label); lw > labelWidth {
			labelWidth = lw
		}
		if b.Value > maxVal {
			maxVal = b.Value
		}
		if b.Ref > maxVal {
			maxVal = b.Ref
		}
	}
	const valueWidth = 9
	width := totalWidth - labelWidth - valueWidth - 2
	if width < minBarWidth {
		width = minBarWidth
	}
	useColor := shouldUseColor(w, forceColor)

	if title != "" {
		if _, err := fmt.Fprintln(w, title); err != nil {
			return err
		}
	}
	for _, b := range bars {
		line := padCell(b.Label, labelWidth, false) + " " + renderBar(b, maxVal, width, useColor) + fmt.Sprintf(" %8.4f", b.Value)
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

func renderBar(b Bar, maxVal float64, width int, useColor bool) string {
	filled := scaleTo(b.Value, maxVal, width)
	ref := -1
	if b.Ref > 0 {
		ref = scaleTo(b.Ref, maxVal, width)
		if ref >= width {
			ref = width - 1
		}
	}
	var sb strings.Builder
	for i := 0; i < width; i++ {
		switch {
		case i == ref:
			sb.WriteString(colorize(string(refRune), refColor, useColor))
		case i < filled:
			sb.WriteString(colorize(string(barRune), barColor, useColor))
		default:
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}

func scaleTo(v, maxVal float64, width int) int {
	if maxVal <= 0 || v <= 0 {
		return 0
	}
	n := int(v / maxVal * float64(width))
	if n > width {
		n = width
	}
	return n
}

func colorize(s, color string, useColor bool) string {
	if !useColor {
		return s
	}
	return color + s + colorReset
}

// LetterBars compares observed letter frequencies with English.
func LetterBars(freqs [alphabet.Size]float64) []Bar {
	bars := make([]Bar, alphabet.Size)
	for i, f := range freqs {
		bars[i] = Bar{Label: string(alphabet.Letter(i)), Value: f, Ref: alphabet.EnglishFrequencies[i]}
	}
	return bars
}

// FactorBars charts a divisor histogram in ascending factor order.
func FactorBars(hist []model.FactorCount) []Bar {
	sorted := append([]model.FactorCount(nil), hist...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Factor < sorted[j].Factor })
	bars := make([]Bar, len(sorted))
	for i, fc := range sorted {
		bars[i] = Bar{Label: fmt.Sprintf("%d", fc.Factor), Value: float64(fc.Count)}
	}
	return bars
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

func shouldUseColor(w io.Writer, force bool) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if force {
		return true
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
