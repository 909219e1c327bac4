package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/wetshaving/sotdarc/internal/model"
)

// SimpleWriter outputs human-readable text results.
// This format is designed for terminal display with clear section
// formatting.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type SimpleWriter struct {
	baseWriter

	// showEmpty controls whether severity sections with no findings are
	// shown.
	showEmpty bool

	// verbose enables impact and recommendation detail per finding.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowEmpty configures the writer to show empty sections.
func WithShowEmpty(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showEmpty = show
	}
}

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		showEmpty:  false,
		verbose:    false,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the validation result in human-readable format.
func (w *SimpleWriter) Write(result *model.ValidationReport) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, result)
	w.writeSummary(&sb, result)
	w.writeFindings(&sb, result)
	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the result header with document information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, result *model.ValidationReport) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                      SOTD REPORT VALIDATION\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Document:       %s\n", result.SourcePath))
	if !result.Month.IsZero() {
		sb.WriteString(fmt.Sprintf("Period:         %s\n", result.Month.Label()))
	}
	if result.Category != "" {
		sb.WriteString(fmt.Sprintf("Category:       %s\n", result.Category))
	}
	sb.WriteString(fmt.Sprintf("Validated:      %s\n", result.ValidatedAt.Format("2006-01-02 15:04:05 MST")))
	sb.WriteString(fmt.Sprintf("Coverage:       %d tables, %d rows\n", result.TablesChecked, result.RowsChecked))

	if result.Error != "" {
		sb.WriteString(fmt.Sprintf("Status:         FAILED - %s\n", result.Error))
	} else if result.HasErrors() {
		sb.WriteString("Status:         Errors found\n")
	} else if result.HasFindings() {
		sb.WriteString("Status:         Findings (non-fatal)\n")
	} else {
		sb.WriteString("Status:         Clean\n")
	}

	sb.WriteString("\n")
}

// writeSummary writes the severity summary section.
func (w *SimpleWriter) writeSummary(sb *strings.Builder, result *model.ValidationReport) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("SEVERITY SUMMARY\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("  ERROR:   %d\n", result.ErrorCount))
	sb.WriteString(fmt.Sprintf("  WARNING: %d\n", result.WarningCount))
	sb.WriteString(fmt.Sprintf("  INFO:    %d\n", result.InfoCount))
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("  TOTAL:   %d findings\n", result.TotalFindings()))
	sb.WriteString("\n")
}

// writeFindings writes all findings grouped by severity.
func (w *SimpleWriter) writeFindings(sb *strings.Builder, result *model.ValidationReport) {
	if !result.HasFindings() && !w.showEmpty {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("FINDINGS\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	severities := []model.Severity{
		model.SeverityError,
		model.SeverityWarning,
		model.SeverityInfo,
	}

	for _, severity := range severities {
		findings := result.GetFindingsBySeverity(severity)
		if len(findings) == 0 && !w.showEmpty {
			continue
		}

		w.writeFindingsForSeverity(sb, severity, findings)
	}
}

// writeFindingsForSeverity writes findings of a specific severity level.
func (w *SimpleWriter) writeFindingsForSeverity(sb *strings.Builder, severity model.Severity, findings []model.Finding) {
	indicator := w.getSeverityIndicator(severity)
	sb.WriteString(fmt.Sprintf("[%s] %s\n", indicator, severity.String()))

	if len(findings) == 0 {
		sb.WriteString("  No findings\n\n")
		return
	}

	for _, finding := range findings {
		sb.WriteString(fmt.Sprintf("  * %s\n", finding.Title))
		if finding.Table != "" {
			sb.WriteString(fmt.Sprintf("    Table: %s\n", finding.Table))
		}
		if finding.Entity != "" {
			sb.WriteString(fmt.Sprintf("    Entity: %s\n", finding.Entity))
		}
		if finding.Value != "" {
			sb.WriteString(fmt.Sprintf("    Value: %s\n", finding.Value))
		}
		if finding.Line > 0 {
			sb.WriteString(fmt.Sprintf("    Line: %d\n", finding.Line))
		}
		if w.verbose && finding.Impact != "" {
			sb.WriteString(fmt.Sprintf("    Impact: %s\n", finding.Impact))
		}
		if w.verbose && finding.Recommendation != "" {
			sb.WriteString(fmt.Sprintf("    Recommendation: %s\n", finding.Recommendation))
		}
	}
	sb.WriteString("\n")
}

// getSeverityIndicator returns a visual indicator for the severity level.
func (w *SimpleWriter) getSeverityIndicator(severity model.Severity) string {
	switch severity {
	case model.SeverityError:
		return "!!"
	case model.SeverityWarning:
		return "!"
	case model.SeverityInfo:
		return "i"
	default:
		return "?"
	}
}

// writeFooter writes the result footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("Report validated by sotdarc\n")
	sb.WriteString("https://github.com/wetshaving/sotdarc\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}
