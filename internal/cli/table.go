package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	ruleStyle   = lipgloss.NewStyle().Faint(true)
)

// textTable renders rows of cells as aligned columns.
type textTable struct {
	headers []string
	rows    [][]string
}

func newTextTable(headers ...string) *textTable {
	return &textTable{headers: headers}
}

func (t *textTable) addRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

func (t *textTable) render() string {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}

	var sb strings.Builder
	t.writeRow(&sb, headerStyle, t.headers, widths)
	rule := make([]string, len(widths))
	for i, w := range widths {
		rule[i] = strings.Repeat("-", w+2)
	}
	sb.WriteString(ruleStyle.Render(strings.Join(rule, "+")))
	sb.WriteString("\n")
	for _, row := range t.rows {
		t.writeRow(&sb, cellStyle, row, widths)
	}
	return sb.String()
}

func (t *textTable) writeRow(sb *strings.Builder, style lipgloss.Style, cells []string, widths []int) {
	for i, w := range widths {
		var cell string
		if i < len(cells) {
			cell = cells[i]
		}
		if i > 0 {
			sb.WriteString(ruleStyle.Render("|"))
		}
		sb.WriteString(style.Width(w + 2).Render(cell))
	}
	sb.WriteString("\n")
}
