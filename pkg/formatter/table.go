package formatter

import (
	"strings"
)

type Table struct {
	Headers []string
	Rows    [][]string
}

// Creates a new table with the given headers
func NewTable(headers []string) *Table {
	return &Table{
		Headers: headers,
		Rows:    [][]string{},
	}
}

func (t *Table) AddRow(row []string) {
	t.Rows = append(t.Rows, row)
}

// columnWidths returns the widest cell per column, headers included
func (t *Table) columnWidths() []int {
	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = len(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}
	return widths
}

// Returns the string representation of the table
func (t *Table) String() string {
	if len(t.Headers) == 0 {
		return ""
	}

	widths := t.columnWidths()

	var sb strings.Builder

	writeBorder(&sb, widths)
	sb.WriteString("\n")

	writeCells(&sb, t.Headers, widths)
	sb.WriteString("\n")

	writeBorder(&sb, widths)
	sb.WriteString("\n")

	for _, row := range t.Rows {
		writeCells(&sb, row, widths)
		sb.WriteString("\n")
	}

	writeBorder(&sb, widths)

	return sb.String()
}

func writeCells(sb *strings.Builder, cells []string, widths []int) {
	sb.WriteString("| ")
	for i, cell := range cells {
		if i >= len(widths) {
			break
		}
		sb.WriteString(cell)
		sb.WriteString(strings.Repeat(" ", widths[i]-len(cell)))
		sb.WriteString(" | ")
	}
}

// writeBorder writes a horizontal border to the string builder
func writeBorder(sb *strings.Builder, widths []int) {
	sb.WriteString("+")
	for _, width := range widths {
		sb.WriteString(strings.Repeat("-", width+2))
		sb.WriteString("+")
	}
}

// Formats a section header with a title
func FormatHeaderSection(title string) string {
	var sb strings.Builder

	borderLine := strings.Repeat("=", len(title)+30) // Add extra padding for aesthetics

	sb.WriteString(borderLine)
	sb.WriteString("\n")
	sb.WriteString("  " + title + "  ")
	sb.WriteString("\n")
	sb.WriteString(borderLine)

	return sb.String()
}

// Formats a simple section title
func FormatSectionTitle(title string) string {
	return "-- " + title + " --"
}
