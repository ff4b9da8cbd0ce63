package export

import (
	"errors"
	"fmt"
	"io"
	"realitycheck/internal/analysis"
	"realitycheck/internal/model"
	"strings"
)

// Format is an export target
type Format string

const (
	FormatMarkdown Format = "md"
	FormatCSV      Format = "csv"
	FormatJSON     Format = "json"
	FormatPDF      Format = "pdf"
	FormatTable    Format = "table"
)

var ErrUnknownFormat = errors.New("unknown export format")

const baseFileName = "competitive-analysis"

// ParseFormat accepts the format names used by the API and the CLI
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "md", "markdown":
		return FormatMarkdown, nil
	case "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	case "pdf":
		return FormatPDF, nil
	case "table":
		return FormatTable, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// FileName is the download name for a format
func FileName(f Format) string {
	if f == FormatTable {
		return baseFileName + ".txt"
	}
	return baseFileName + "." + string(f)
}

func ContentType(f Format) string {
	switch f {
	case FormatMarkdown:
		return "text/markdown; charset=utf-8"
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatJSON:
		return "application/json"
	case FormatPDF:
		return "application/pdf"
	}
	return "text/plain; charset=utf-8"
}

// Write renders result in the given format to w
func Write(f Format, result *model.AnalysisResult, w io.Writer) error {
	result = normalize(result)

	switch f {
	case FormatMarkdown:
		_, err := io.WriteString(w, Markdown(result))
		return err
	case FormatCSV:
		_, err := io.WriteString(w, CSV(result))
		return err
	case FormatJSON:
		data, err := JSON(result)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	case FormatPDF:
		return PDF(result, w)
	case FormatTable:
		_, err := io.WriteString(w, Table(result))
		return err
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

// normalize fills what a client may have left out when posting a result back
func normalize(result *model.AnalysisResult) *model.AnalysisResult {
	if result == nil {
		result = &model.AnalysisResult{}
	}
	out := *result
	if out.Rows == nil {
		out.Rows = []model.ComparisonRow{}
	}
	if out.Ideas == nil {
		out.Ideas = []model.ProductIdea{}
	}
	if out.RenderedMarkdown == "" {
		out.RenderedMarkdown = analysis.RenderMarkdown(out.Rows, out.Summary)
	}
	return &out
}
