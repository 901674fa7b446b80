// Package report renders a findings report as Markdown: a run summary, the
// findings grouped by severity, and a Query Pack of data-manager questions
// ready to paste into an email or ticket.
package report

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"ddlint/internal/finding"
	"ddlint/internal/format"
)

// Render produces the full Markdown document for a report.
func Render(r *finding.Report) string {
	var b strings.Builder
	b.WriteString("# Dictionary Validation Report\n\n")
	writeSummary(&b, r)

	errors, warns, infos := split(r.Findings)
	writeSeverity(&b, "Errors", errors)
	writeSeverity(&b, "Warnings", warns)
	writeSeverity(&b, "Info", infos)
	writeQueryPack(&b, errors, warns)
	return b.String()
}

// WriteFile renders the report to a Markdown file.
func WriteFile(path string, r *finding.Report) error {
	if err := os.WriteFile(path, []byte(Render(r)), 0o644); err != nil {
		return fmt.Errorf("report: write %q: %w", path, err)
	}
	return nil
}

func writeSummary(b *strings.Builder, r *finding.Report) {
	s := r.Summary
	if s.GeneratedAt != "" {
		fmt.Fprintf(b, "Generated %s", s.GeneratedAt)
		if s.RunID != "" {
			fmt.Fprintf(b, " (run %s)", s.RunID)
		}
		b.WriteString("\n\n")
	}

	errors, warns, infos := counts(r.Findings)
	tb := format.NewTable(format.Markdown)
	tb.Header("Rows", "Columns", "Dictionary Fields", "Metadata Completeness", "Errors", "Warnings", "Info")
	tb.Row(
		format.FmtCount(s.Rows),
		format.FmtCount(s.Cols),
		format.FmtCount(s.DictFields),
		format.FmtPercent(s.Completeness),
		errors, warns, infos,
	)
	b.WriteString(tb.String())
	b.WriteString("\n\n")
}

func writeSeverity(b *strings.Builder, title string, findings []finding.Finding) {
	fmt.Fprintf(b, "## %s\n\n", title)
	if len(findings) == 0 {
		b.WriteString("None.\n\n")
		return
	}
	tb := format.NewTable(format.Markdown)
	tb.Header("Variable", "Type", "Location", "Rows Affected", "Evidence")
	for _, f := range findings {
		tb.Row(f.Variable, string(f.Type), location(f), rowsAffected(f), evidence(f))
	}
	b.WriteString(tb.String())
	b.WriteString("\n\n")
}

// writeQueryPack emits one actionable question per error or warning,
// grouped by variable so a data manager can work through a field at a
// time.
func writeQueryPack(b *strings.Builder, errors, warns []finding.Finding) {
	b.WriteString("## Query Pack\n\n")
	pack := make([]finding.Finding, 0, len(errors)+len(warns))
	pack = append(pack, errors...)
	pack = append(pack, warns...)
	if len(pack) == 0 {
		b.WriteString("Nothing to query: no errors or warnings.\n")
		return
	}
	sort.SliceStable(pack, func(i, j int) bool {
		if pack[i].Variable != pack[j].Variable {
			return pack[i].Variable < pack[j].Variable
		}
		return pack[i].Type < pack[j].Type
	})
	for _, f := range pack {
		fmt.Fprintf(b, "- **%s**: %s", f.Variable, f.Suggestion)
		if len(f.Examples) > 0 {
			fmt.Fprintf(b, " (e.g. %s)", strings.Join(f.Examples, ", "))
		}
		b.WriteString("\n")
	}
}

func location(f finding.Finding) string {
	if col, ok := f.Where["dataset_column"]; ok {
		return col
	}
	if g, ok := f.Where["matrix_group"]; ok {
		return "matrix " + g
	}
	if v, ok := f.Where["variable"]; ok && v != f.Variable {
		return v
	}
	return ""
}

func rowsAffected(f finding.Finding) string {
	if f.RowsAffected == 0 {
		return ""
	}
	return format.FmtCount(f.RowsAffected)
}

func evidence(f finding.Finding) string {
	if len(f.Examples) > 0 {
		return format.Truncate(strings.Join(f.Examples, ", "), 60)
	}
	if f.Observed != nil {
		return format.Truncate(fmt.Sprintf("%v", f.Observed), 60)
	}
	return ""
}

func split(findings []finding.Finding) (errors, warns, infos []finding.Finding) {
	for _, f := range findings {
		switch f.Severity {
		case finding.SeverityError:
			errors = append(errors, f)
		case finding.SeverityWarn:
			warns = append(warns, f)
		default:
			infos = append(infos, f)
		}
	}
	return
}

func counts(findings []finding.Finding) (errors, warns, infos int) {
	e, w, i := split(findings)
	return len(e), len(w), len(i)
}
