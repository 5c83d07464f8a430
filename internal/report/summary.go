// Package report renders console summaries for the triptools commands.
package report

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Summary is an ordered label/value table printed at the end of a run.
type Summary struct {
	rows [][2]string
}

// Add appends one labeled value.
func (s *Summary) Add(label, value string) {
	s.rows = append(s.rows, [2]string{label, value})
}

// AddCount appends one labeled integer value.
func (s *Summary) AddCount(label string, n int) {
	s.Add(label, fmt.Sprintf("%d", n))
}

// String renders the table with labels padded to a common display
// width. Place names can be wide CJK text, so padding uses display
// width, not byte or rune counts.
func (s *Summary) String() string {
	width := 0

	for _, row := range s.rows {
		if w := runewidth.StringWidth(row[0]); w > width {
			width = w
		}
	}

	var sb strings.Builder

	for _, row := range s.rows {
		sb.WriteString("  ")
		sb.WriteString(row[0])
		sb.WriteString(strings.Repeat(" ", width-runewidth.StringWidth(row[0])))
		sb.WriteString("  ")
		sb.WriteString(row[1])
		sb.WriteString("\n")
	}

	return sb.String()
}

// Print writes the table to stdout between rule lines.
func (s *Summary) Print(title string) {
	fmt.Println("\n------------------------------------------------")
	fmt.Printf("%s\n", title)
	fmt.Println("------------------------------------------------")
	fmt.Print(s.String())
	fmt.Println("------------------------------------------------")
}
