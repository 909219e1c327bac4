package parser

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"

	"github.com/wetshaving/sotdarc/internal/model"
)

// Section headings with fixed meaning. Any other "##" heading introduces a
// ranking table.
const (
	sectionObservations = "Observations"
	sectionNotes        = "Notes & Caveats"
)

// titlePattern matches the report title line, capturing the subject and the
// period label, e.g. "# Hardware Report - August 2025".
var titlePattern = regexp.MustCompile(`^#\s+(.+?)\s+Report\s*[-–—:]\s+(.+?)\s*$`)

// summaryPattern matches a headline statistic line after markdown
// decoration has been stripped, e.g. "Total Shaves: 1,234".
var summaryPattern = regexp.MustCompile(`(?i)^(total shaves|unique shavers|average shaves per user|median shaves per user)\s*:\s*([0-9][0-9.,]*)\s*$`)

// placeholderPattern matches an editorial placeholder line, e.g.
// "[Observations will be filled in before announcement]".
var placeholderPattern = regexp.MustCompile(`^[*_]*\[.*\][*_]*$`)

// Parser reads report documents into model.Report values.
//
// A Parser is safe for concurrent use: all state is set at construction.
type Parser struct {
	// aliases maps table name to a case-folded alias index. Entity names
	// matching an alias are rewritten to the canonical name during parsing,
	// before validation or archiving sees them.
	aliases map[string]map[string]string

	// logger receives debug output for skipped and rewritten content.
	logger *slog.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithAliases installs entity aliases, keyed by table name then by the
// recorded (alias) name. The canonical example from the published corpus:
// blades recorded as just "GEM" mean "Personna GEM PTFE". Alias lookup is
// case-insensitive.
func WithAliases(aliases map[string]map[string]string) Option {
	return func(p *Parser) {
		for table, m := range aliases {
			folded := make(map[string]string, len(m))
			for alias, canonical := range m {
				folded[foldName(alias)] = canonical
			}
			p.aliases[table] = folded
		}
	}
}

// WithLogger sets a custom logger. If not set, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) {
		p.logger = logger
	}
}

// New creates a Parser with the given options.
func New(opts ...Option) *Parser {
	p := &Parser{
		aliases: make(map[string]map[string]string),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p
}

// ParseFile parses the report document at path.
func (p *Parser) ParseFile(path string) (*model.Report, error) {
	f, err := os.Open(path) //nolint:gosec // user-provided report path is the point
	if err != nil {
		return nil, fmt.Errorf("failed to open report: %w", err)
	}
	defer f.Close()

	return p.Parse(f, path)
}

// Parse parses a report document from r. path is used in diagnostics only
// and may be empty.
func (p *Parser) Parse(r io.Reader, path string) (*model.Report, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}

	report := &model.Report{
		SourcePath: path,
		ParsedAt:   time.Now(),
	}

	// Title line. Everything before it is ignored; everything after the
	// first "##" heading belongs to a section.
	titleIdx := -1
	for i, line := range lines {
		if strings.HasPrefix(line, "##") {
			break
		}
		if m := titlePattern.FindStringSubmatch(line); m != nil {
			category, err := model.ParseCategory(m[1])
			if err != nil {
				return nil, &ParseError{Path: path, Line: i + 1, Msg: "bad report title", Err: err}
			}
			month, err := model.ParseMonthName(m[2])
			if err != nil {
				return nil, &ParseError{Path: path, Line: i + 1, Msg: "bad report period", Err: err}
			}
			report.Title = strings.TrimSpace(strings.TrimPrefix(line, "#"))
			report.Category = category
			report.Month = month
			titleIdx = i
			break
		}
	}
	if titleIdx < 0 {
		return nil, fmt.Errorf("%s: %w", pathOrStdin(path), ErrMissingTitle)
	}

	// Headline statistics live between the title and the first section.
	var haveTotal, haveUnique bool
	body := titleIdx + 1
	for ; body < len(lines) && !strings.HasPrefix(lines[body], "## "); body++ {
		if t, u, err := p.parseSummaryLine(lines[body], report); err != nil {
			return nil, &ParseError{Path: path, Line: body + 1, Msg: "bad summary line", Err: err}
		} else {
			haveTotal = haveTotal || t
			haveUnique = haveUnique || u
		}
	}
	if !haveTotal || !haveUnique {
		return nil, fmt.Errorf("%s: %w", pathOrStdin(path), ErrMissingSummary)
	}

	// Sections.
	for i := body; i < len(lines); {
		if !strings.HasPrefix(lines[i], "## ") {
			i++
			continue
		}
		heading := strings.TrimSpace(strings.TrimPrefix(lines[i], "## "))
		end := i + 1
		for end < len(lines) && !strings.HasPrefix(lines[end], "## ") {
			end++
		}
		section := lines[i+1 : end]

		switch heading {
		case sectionObservations:
			report.ObservationsFilled = observationsFilled(section)
		case sectionNotes:
			report.Notes = collectNotes(section)
		default:
			table, err := p.parseTable(heading, section, path, i+1)
			if err != nil {
				return nil, err
			}
			report.Tables = append(report.Tables, table)
		}
		i = end
	}

	if len(report.Tables) == 0 {
		return nil, fmt.Errorf("%s: %w", pathOrStdin(path), ErrNoTables)
	}

	p.logger.Debug("parsed report",
		"path", path,
		"month", report.Month.String(),
		"category", report.Category,
		"tables", len(report.Tables),
		"rows", report.RowCount(),
	)
	return report, nil
}

// parseSummaryLine matches one preamble line against the headline
// statistics and records any match on the report. It returns which of the
// two required statistics the line provided.
func (p *Parser) parseSummaryLine(line string, report *model.Report) (total, unique bool, err error) {
	m := summaryPattern.FindStringSubmatch(stripDecoration(line))
	if m == nil {
		return false, false, nil
	}

	value := strings.ReplaceAll(m[2], ",", "")
	switch strings.ToLower(m[1]) {
	case "total shaves":
		report.Summary.TotalShaves, err = strconv.Atoi(value)
		return err == nil, false, err
	case "unique shavers":
		report.Summary.UniqueShavers, err = strconv.Atoi(value)
		return false, err == nil, err
	case "average shaves per user":
		report.Summary.AvgShavesPerUser, err = strconv.ParseFloat(value, 64)
		return false, false, err
	case "median shaves per user":
		report.Summary.MedianShavesPerUser, err = strconv.ParseFloat(value, 64)
		return false, false, err
	}
	return false, false, nil
}

// canonicalName applies the alias table for the given ranking table.
func (p *Parser) canonicalName(table, name string) string {
	m, ok := p.aliases[table]
	if !ok {
		return name
	}
	canonical, ok := m[foldName(name)]
	if !ok {
		return name
	}
	p.logger.Debug("alias applied", "table", table, "recorded", name, "canonical", canonical)
	return canonical
}

// foldName case-folds a name for alias lookup. A cases.Caser is stateful,
// so a fresh one is built per call rather than shared across goroutines.
func foldName(s string) string {
	return cases.Fold().String(s)
}

// stripDecoration removes list markers and bold/italic markers so summary
// lines written as "* **Total Shaves:** 1,234" match the statistic grammar.
func stripDecoration(line string) string {
	s := strings.TrimSpace(line)
	s = strings.TrimLeft(s, "*->+ \t")
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "__", "")
	return strings.TrimSpace(s)
}

// observationsFilled reports whether the Observations section carries real
// content rather than the editorial placeholder.
func observationsFilled(section []string) bool {
	for _, line := range section {
		s := strings.TrimSpace(line)
		s = strings.TrimLeft(s, "*- \t")
		if s == "" {
			continue
		}
		if placeholderPattern.MatchString(s) {
			continue
		}
		return true
	}
	return false
}

// collectNotes gathers the non-empty lines of the Notes & Caveats section,
// with list markers stripped.
func collectNotes(section []string) []string {
	var notes []string
	for _, line := range section {
		s := strings.TrimSpace(line)
		s = strings.TrimPrefix(s, "* ")
		s = strings.TrimPrefix(s, "- ")
		if s = strings.TrimSpace(s); s != "" {
			notes = append(notes, s)
		}
	}
	return notes
}

// pathOrStdin names the input in top-level errors.
func pathOrStdin(path string) string {
	if path == "" {
		return "(stdin)"
	}
	return path
}
