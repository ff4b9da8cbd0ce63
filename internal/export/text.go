package export

import (
	"encoding/json"
	"realitycheck/internal/model"
	"strings"
)

// Markdown is the rendered table and summary followed by the ideas
func Markdown(result *model.AnalysisResult) string {
	result = normalize(result)

	var b strings.Builder
	b.WriteString(result.RenderedMarkdown)
	if len(result.Ideas) == 0 {
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString("\n\n## Product Ideas\n")
	for _, idea := range result.Ideas {
		b.WriteString("\n**" + idea.Title + "**\n")
		for _, f := range idea.Features {
			b.WriteString("- " + f + "\n")
		}
	}
	return b.String()
}

// CSV quotes every cell, doubling embedded quotes
func CSV(result *model.AnalysisResult) string {
	var b strings.Builder
	b.WriteString("Tool Name,Pros,Cons,Gaps\n")
	for _, r := range normalize(result).Rows {
		cells := []string{r.Name, r.Pros, r.Cons, r.Gaps}
		for i, c := range cells {
			cells[i] = `"` + strings.ReplaceAll(c, `"`, `""`) + `"`
		}
		b.WriteString(strings.Join(cells, ",") + "\n")
	}
	return b.String()
}

// JSON is the two-space indented wire shape
func JSON(result *model.AnalysisResult) ([]byte, error) {
	return json.MarshalIndent(normalize(result), "", "  ")
}
