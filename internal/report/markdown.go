package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"github.com/wetshaving/sotdarc/internal/model"
)

// MarkdownWriter outputs validation results in Markdown format.
// This format is designed for posting alongside the monthly reports
// themselves, for example as a review comment.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the validation result in Markdown format.
func (w *MarkdownWriter) Write(result *model.ValidationReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, result)
	w.writeSummary(md, result)
	w.writeFindings(md, result)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the result header with document information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, result *model.ValidationReport) {
	md.H1("SOTD Report Validation")
	md.PlainText("")

	period := "-"
	if !result.Month.IsZero() {
		period = result.Month.Label()
	}
	category := "-"
	if result.Category != "" {
		category = result.Category.String()
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Document", "`" + result.SourcePath + "`"},
			{"Period", period},
			{"Category", category},
			{"Validated", result.ValidatedAt.Format("2006-01-02 15:04:05 MST")},
			{"Coverage", strconv.Itoa(result.TablesChecked) + " tables, " + strconv.Itoa(result.RowsChecked) + " rows"},
			{"Status", w.getStatusText(result)},
		},
	})
	md.PlainText("")
}

// getStatusText returns the status text based on result state.
func (w *MarkdownWriter) getStatusText(result *model.ValidationReport) string {
	if result.Error != "" {
		return "❌ Failed - " + result.Error
	}
	if result.HasErrors() {
		return "🔴 Errors found"
	}
	if result.HasFindings() {
		return "🟡 Findings (non-fatal)"
	}
	return "✅ Clean"
}

// writeSummary writes the severity summary section.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, result *model.ValidationReport) {
	md.H2("Severity Summary")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Severity", "Count"},
		Rows: [][]string{
			{"🔴 Error", strconv.Itoa(result.ErrorCount)},
			{"🟡 Warning", strconv.Itoa(result.WarningCount)},
			{"⚪ Info", strconv.Itoa(result.InfoCount)},
			{"**Total**", "**" + strconv.Itoa(result.TotalFindings()) + "**"},
		},
	})
	md.PlainText("")

	if result.HasFindings() {
		w.writePieChart(md, result)
	}

	w.writeAlert(md, result)
}

// writePieChart writes a mermaid pie chart for severity distribution.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, result *model.ValidationReport) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Finding Severity Distribution"),
		piechart.WithShowData(true),
	)

	if result.ErrorCount > 0 {
		chart.LabelAndIntValue("Error", uint64(result.ErrorCount))
	}
	if result.WarningCount > 0 {
		chart.LabelAndIntValue("Warning", uint64(result.WarningCount))
	}
	if result.InfoCount > 0 {
		chart.LabelAndIntValue("Info", uint64(result.InfoCount))
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeAlert writes an appropriate alert based on severity counts.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, result *model.ValidationReport) {
	switch {
	case result.Error != "":
		md.Cautionf("Validation could not complete: %s", result.Error)
	case result.ErrorCount > 0:
		md.Cautionf(
			"Structural errors detected. %d error finding(s) should be fixed before publishing.",
			result.ErrorCount,
		)
	case result.WarningCount > 0:
		md.Warningf(
			"Suspicious patterns detected. %d warning finding(s) deserve a look.",
			result.WarningCount,
		)
	case result.TotalFindings() > 0:
		md.Note("Only informational findings detected.")
	default:
		md.Tip("No structural issues detected.")
	}
	md.PlainText("")
}

// writeFindings writes all findings grouped by severity.
func (w *MarkdownWriter) writeFindings(md *markdown.Markdown, result *model.ValidationReport) {
	md.H2("Findings")
	md.PlainText("")

	if !result.HasFindings() {
		md.PlainText("No findings.")
		md.PlainText("")
		return
	}

	severities := []struct {
		level  model.Severity
		header string
	}{
		{model.SeverityError, "### 🔴 Error"},
		{model.SeverityWarning, "### 🟡 Warning"},
		{model.SeverityInfo, "### ⚪ Info"},
	}

	for _, sev := range severities {
		findings := result.GetFindingsBySeverity(sev.level)
		if len(findings) == 0 {
			continue
		}

		md.PlainText(sev.header)
		md.PlainText("")
		w.writeFindingsTable(md, findings)
	}
}

// writeFindingsTable writes a table of findings with details.
func (w *MarkdownWriter) writeFindingsTable(md *markdown.Markdown, findings []model.Finding) {
	headers := []string{"Title", "Table", "Entity", "Value", "Line"}

	rows := make([][]string, len(findings))
	for i, f := range findings {
		table := f.Table
		if table == "" {
			table = "-"
		}
		entity := f.Entity
		if entity == "" {
			entity = "-"
		}
		value := f.Value
		if value == "" {
			value = "-"
		}
		line := "-"
		if f.Line > 0 {
			line = strconv.Itoa(f.Line)
		}

		rows[i] = []string{
			truncateString(f.Title, 70),
			truncateString(table, 30),
			truncateString(entity, 40),
			truncateString(value, 30),
			line,
		}
	}

	md.Table(markdown.TableSet{
		Header: headers,
		Rows:   rows,
	})
	md.PlainText("")

	// Impact and recommendation collapse into details blocks to keep
	// the table scannable.
	for _, f := range findings {
		if f.Impact != "" {
			md.Details(f.Title, f.Impact+" "+f.Recommendation)
		}
	}
	md.PlainText("")
}

// writeFooter writes the result footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Validated by [sotdarc](https://github.com/wetshaving/sotdarc)*")
}

// truncateString truncates a string to maxLen characters with ellipsis.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
