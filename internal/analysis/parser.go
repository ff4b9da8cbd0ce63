package analysis

import (
	"realitycheck/internal/model"
	"regexp"
	"strings"
)

const (
	tableHeaderPrefix = "| Tool Name"

	renderedHeader    = "| Tool Name | Pros | Cons | Gaps |\n"
	renderedSeparator = "|-----------|------|------|------|\n"
)

var (
	separatorRe   = regexp.MustCompile(`^\|\s*-+`)
	summaryRe     = regexp.MustCompile(`(?i)## Summary\s*([\s\S]*?)(?:\n---|\n##|$)`)
	ideasMarkerRe = regexp.MustCompile(`(?i)## Product Ideas`)
	ideaRe        = regexp.MustCompile(`\*\*(.+?)\*\*\s*\n((?:-\s.*\n?){2,})`)
	bulletRe      = regexp.MustCompile(`^-\s*`)
)

// Parse turns a raw model response into structured records. It never fails:
// text that does not follow the requested layout yields fewer (or zero) rows
// and ideas and an empty summary.
func Parse(raw string) *model.AnalysisResult {
	text := strings.ReplaceAll(raw, "\r\n", "\n")

	rows := parseTable(text)
	summary := parseSummary(text)
	ideas := parseIdeas(text)

	return &model.AnalysisResult{
		Rows:             rows,
		Summary:          summary,
		Ideas:            ideas,
		RenderedMarkdown: RenderMarkdown(rows, summary),
	}
}

// parseTable walks lines with a two-state machine. Entering the table never
// emits a row; the first non-empty line without a leading pipe ends it.
func parseTable(text string) []model.ComparisonRow {
	rows := []model.ComparisonRow{}
	inTable := false

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, tableHeaderPrefix) || separatorRe.MatchString(trimmed) {
			inTable = true
			continue
		}
		if !inTable {
			continue
		}

		if strings.HasPrefix(trimmed, "|") {
			cells := splitCells(trimmed)
			if len(cells) >= 4 && !strings.Contains(cells[0], "---") {
				rows = append(rows, model.ComparisonRow{
					Name: cells[0],
					Pros: cells[1],
					Cons: cells[2],
					Gaps: cells[3],
				})
			}
			continue
		}

		if trimmed != "" {
			inTable = false
		}
	}

	return rows
}

// splitCells drops the fragments outside the leading and trailing pipes
func splitCells(line string) []string {
	parts := strings.Split(line, "|")
	if len(parts) < 2 {
		return nil
	}
	parts = parts[1 : len(parts)-1]
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func parseSummary(text string) string {
	m := summaryRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// parseIdeas only looks between the first Product Ideas marker and the next one
func parseIdeas(text string) []model.ProductIdea {
	ideas := []model.ProductIdea{}

	sections := ideasMarkerRe.Split(text, 3)
	if len(sections) < 2 {
		return ideas
	}

	for _, m := range ideaRe.FindAllStringSubmatch(sections[1], -1) {
		title := strings.TrimSpace(m[1])

		features := []string{}
		for _, line := range strings.Split(m[2], "\n") {
			feature := strings.TrimSpace(bulletRe.ReplaceAllString(line, ""))
			if feature != "" {
				features = append(features, feature)
			}
		}

		if title != "" && len(features) > 0 {
			ideas = append(ideas, model.ProductIdea{Title: title, Features: features})
		}
	}

	return ideas
}

// RenderMarkdown rebuilds the table and summary from parsed fields
func RenderMarkdown(rows []model.ComparisonRow, summary string) string {
	var b strings.Builder
	b.WriteString(renderedHeader)
	b.WriteString(renderedSeparator)
	for _, r := range rows {
		b.WriteString("| " + r.Name + " | " + r.Pros + " | " + r.Cons + " | " + r.Gaps + " |\n")
	}
	b.WriteString("\n## Summary\n\n")
	b.WriteString(summary)
	return b.String()
}
