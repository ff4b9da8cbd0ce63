package export

import (
	"realitycheck/internal/model"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	colorPrimary = lipgloss.Color("#2980b9")
	colorMuted   = lipgloss.Color("#95a5a6")

	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	ideaStyle    = lipgloss.NewStyle().Bold(true)
	bulletStyle  = lipgloss.NewStyle().Foreground(colorMuted)
)

// Table renders the result for a terminal
func Table(result *model.AnalysisResult) string {
	result = normalize(result)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorMuted)).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers("Tool Name", "Pros", "Cons", "Gaps")

	for _, r := range result.Rows {
		t.Row(r.Name, r.Pros, r.Cons, r.Gaps)
	}

	var b strings.Builder
	b.WriteString(t.String())
	b.WriteString("\n\n")
	b.WriteString(headingStyle.Render("Summary"))
	b.WriteString("\n")
	b.WriteString(result.Summary)
	b.WriteString("\n")

	if len(result.Ideas) > 0 {
		b.WriteString("\n")
		b.WriteString(headingStyle.Render("Product Ideas"))
		b.WriteString("\n")
		for _, idea := range result.Ideas {
			b.WriteString("\n" + ideaStyle.Render(idea.Title) + "\n")
			for _, f := range idea.Features {
				b.WriteString(bulletStyle.Render("  • ") + f + "\n")
			}
		}
	}
	return b.String()
}
