package model

// Severity represents how serious a validation finding is.
//
// Design decision: We use iota-based constants rather than string constants
// for efficiency in comparisons and sorting. The String() method provides
// human-readable output when needed.
type Severity int

const (
	// SeverityInfo indicates observations with no integrity impact.
	// Example: the Observations section is still the unfilled placeholder.
	SeverityInfo Severity = iota

	// SeverityWarning indicates a deviation from conventions the corpus has
	// always followed but never promised. Examples: a gap in competition
	// ranking, a table row with more shaves than the report's stated total.
	SeverityWarning

	// SeverityError indicates a violation of an invariant the format
	// guarantees. Examples: shave counts increasing down a table, a row
	// with more unique users than shaves, tied ranks with differing counts.
	SeverityError
)

// String returns a human-readable representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "INFO"
	case SeverityWarning:
		return "WARNING"
	case SeverityError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// FindingInfo contains metadata about a finding type: its severity, what it
// means for the document, and what to do about it.
type FindingInfo struct {
	Severity       Severity
	Impact         string
	Recommendation string
}

// findingInfoMapping maps finding types to their metadata.
// This centralized mapping ensures consistent assessment across checks.
//
// Design decision: We use a map rather than embedding severity in each check
// because:
// 1. It keeps the risk assessment in one reviewable place
// 2. It lets output writers look up metadata without running checks
// 3. It makes it easy to generate finding documentation
var findingInfoMapping = map[string]FindingInfo{
	// ERROR - format invariant violations
	"shaves_not_descending": {
		Severity:       SeverityError,
		Impact:         "Rows are not ordered by descending shave count, so the rank column no longer reflects the ranking rule.",
		Recommendation: "Re-sort the table by shave count before publishing, or correct the miscounted row.",
	},
	"unique_exceeds_shaves": {
		Severity:       SeverityError,
		Impact:         "A row claims more unique users than shaves; every shave is logged by exactly one user, so this count is impossible.",
		Recommendation: "Recompute the row's unique-user count from the underlying shave logs.",
	},
	"tie_shave_mismatch": {
		Severity:       SeverityError,
		Impact:         "Rows sharing a tied rank have different shave counts; ties are defined by identical counts.",
		Recommendation: "Split the tie into distinct ranks or correct the shave counts.",
	},
	"tie_marker_missing": {
		Severity:       SeverityError,
		Impact:         "Rows share a rank number but lack the \"=\" tie marker, breaking the tie notation contract.",
		Recommendation: "Add the trailing \"=\" to every row in the tie group.",
	},
	"tie_marker_spurious": {
		Severity:       SeverityError,
		Impact:         "A row carries the \"=\" tie marker but shares its rank with no other row.",
		Recommendation: "Drop the tie marker from the lone row.",
	},
	"delta_mismatch": {
		Severity:       SeverityError,
		Impact:         "A recorded \"Δ vs\" cell disagrees with the rank movement computed from the archived prior-period snapshot.",
		Recommendation: "Recompute the delta column against the archived snapshot for the comparison period.",
	},

	// WARNING - corpus conventions
	"rank_not_contiguous": {
		Severity:       SeverityWarning,
		Impact:         "Rank numbers skip positions in a way competition ranking does not produce; a row may have been dropped after ranking.",
		Recommendation: "Verify no rows were removed after ranks were assigned.",
	},
	"row_exceeds_total_shaves": {
		Severity:       SeverityWarning,
		Impact:         "A single row records more shaves than the report's stated total, so the summary and the table disagree.",
		Recommendation: "Recompute the summary statistics from the tables.",
	},
	"row_exceeds_unique_shavers": {
		Severity:       SeverityWarning,
		Impact:         "A row records more unique users than the report's stated unique-shaver total.",
		Recommendation: "Recompute the summary statistics from the tables.",
	},

	// INFO - observations
	"observations_placeholder": {
		Severity:       SeverityInfo,
		Impact:         "The Observations section is still the unfilled placeholder; the editorial pass has not run yet.",
		Recommendation: "Fill in the Observations section before announcing the report.",
	},
	"empty_table": {
		Severity:       SeverityInfo,
		Impact:         "A ranking table has a heading but no rows.",
		Recommendation: "Remove the empty table or confirm the period genuinely had no data for it.",
	},
}

// GetSeverity returns the severity for a finding type.
// Unknown types default to SeverityInfo.
func GetSeverity(findingType string) Severity {
	if info, ok := findingInfoMapping[findingType]; ok {
		return info.Severity
	}
	return SeverityInfo
}

// GetFindingInfo returns the full metadata for a finding type.
// Unknown types get a zero-impact Info entry.
func GetFindingInfo(findingType string) FindingInfo {
	if info, ok := findingInfoMapping[findingType]; ok {
		return info
	}
	return FindingInfo{Severity: SeverityInfo}
}
