package model

import "time"

// ValidationReport is the outcome of running structural checks against one
// parsed document.
//
// Design decision: This is a separate type from Report rather than fields on
// it because a Report is an immutable snapshot of a published document,
// while validation results vary with the check configuration in force.
type ValidationReport struct {
	// SourcePath is the validated file.
	SourcePath string `json:"source_path"`

	// Month and Category identify the validated snapshot.
	Month    Month    `json:"month"`
	Category Category `json:"category"`

	// ValidatedAt is when validation ran.
	ValidatedAt time.Time `json:"validated_at"`

	// === Severity Summary ===

	// ErrorCount is the number of error findings.
	ErrorCount int `json:"error_count"`

	// WarningCount is the number of warning findings.
	WarningCount int `json:"warning_count"`

	// InfoCount is the number of informational findings.
	InfoCount int `json:"info_count"`

	// === Coverage ===

	// TablesChecked is the number of ranking tables examined.
	TablesChecked int `json:"tables_checked"`

	// RowsChecked is the total number of rows examined.
	RowsChecked int `json:"rows_checked"`

	// === Findings ===

	// Findings contains all findings in the order they were raised.
	Findings []Finding `json:"findings,omitempty"`

	// Error contains a parse or I/O error message if validation could not
	// run at all.
	Error string `json:"error,omitempty"`
}

// Finding is a single validation result.
type Finding struct {
	// Type is the finding type identifier. It maps into the finding
	// catalog in severity.go.
	Type string `json:"type"`

	// Severity is the assessed level.
	Severity Severity `json:"severity"`

	// SeverityText is the human-readable severity.
	SeverityText string `json:"severity_text"`

	// Title is a short description of the finding.
	Title string `json:"title"`

	// Impact explains why this finding matters.
	Impact string `json:"impact,omitempty"`

	// Recommendation provides guidance on how to address this finding.
	Recommendation string `json:"recommendation,omitempty"`

	// Table is the ranking table the finding concerns, when applicable.
	Table string `json:"table,omitempty"`

	// Entity is the row's entity name, when the finding concerns one row.
	Entity string `json:"entity,omitempty"`

	// Value is the offending value, rendered as text.
	Value string `json:"value,omitempty"`

	// Line is the source line number, when known.
	Line int `json:"line,omitempty"`
}

// NewFinding builds a Finding of the given type, filling severity, impact
// and recommendation from the finding catalog.
func NewFinding(findingType, title string) Finding {
	info := GetFindingInfo(findingType)
	return Finding{
		Type:           findingType,
		Severity:       info.Severity,
		SeverityText:   info.Severity.String(),
		Title:          title,
		Impact:         info.Impact,
		Recommendation: info.Recommendation,
	}
}

// NewValidationReport creates an empty validation report for a parsed
// document.
func NewValidationReport(r *Report) *ValidationReport {
	return &ValidationReport{
		SourcePath:    r.SourcePath,
		Month:         r.Month,
		Category:      r.Category,
		ValidatedAt:   time.Now(),
		TablesChecked: len(r.Tables),
		RowsChecked:   r.RowCount(),
	}
}

// Add appends a finding and updates the severity counters.
func (v *ValidationReport) Add(f Finding) {
	v.Findings = append(v.Findings, f)
	switch f.Severity {
	case SeverityError:
		v.ErrorCount++
	case SeverityWarning:
		v.WarningCount++
	default:
		v.InfoCount++
	}
}

// TotalFindings returns the total number of findings.
func (v *ValidationReport) TotalFindings() int {
	return len(v.Findings)
}

// HasFindings reports whether any findings were raised.
func (v *ValidationReport) HasFindings() bool {
	return len(v.Findings) > 0
}

// HasErrors reports whether any Error-severity findings were raised, or
// whether validation itself failed.
func (v *ValidationReport) HasErrors() bool {
	return v.ErrorCount > 0 || v.Error != ""
}

// GetFindingsBySeverity returns the findings at the given severity, in the
// order they were raised.
func (v *ValidationReport) GetFindingsBySeverity(s Severity) []Finding {
	var out []Finding
	for _, f := range v.Findings {
		if f.Severity == s {
			out = append(out, f)
		}
	}
	return out
}
