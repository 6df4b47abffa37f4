package rules

import (
	"fmt"
	"strings"
)

// docRow is one line of the rules summary table.
type docRow struct {
	id, name, check string
	active          bool
}

// Documentation renders a Markdown summary of the rule set with one section per rule
// kind that has rules. It needs no translator.
func (s *RuleSet) Documentation() string {
	var sections []string
	if len(s.Reconciliation) > 0 {
		rows := make([]docRow, 0, len(s.Reconciliation))
		for _, r := range s.Reconciliation {
			rows = append(rows, docRow{r.ID, r.Name, string(r.CheckType), r.IsActive()})
		}
		sections = append(sections, document(KindReconciliation, rows))
	}
	if len(s.Validation) > 0 {
		rows := make([]docRow, 0, len(s.Validation))
		for _, r := range s.Validation {
			rows = append(rows, docRow{r.ID, r.Name, string(r.CheckType), r.IsActive()})
		}
		sections = append(sections, document(KindValidation, rows))
	}
	return strings.Join(sections, "\n")
}

func document(kind RuleKind, rows []docRow) string {
	var b strings.Builder
	title := string(kind)
	if title != "" {
		title = strings.ToUpper(title[:1]) + title[1:]
	}
	fmt.Fprintf(&b, "# %s Rules Documentation\n\n", title)
	fmt.Fprintf(&b, "Total Rules: %d\n\n", len(rows))
	b.WriteString("## Rules Summary\n\n")
	b.WriteString("| Rule ID | Rule Name | Check Type | Status |\n")
	b.WriteString("|---------|-----------|------------|--------|\n")
	for _, r := range rows {
		status := "TRUE"
		if !r.active {
			status = "FALSE"
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", orNA(r.id), orNA(r.name), orNA(r.check), status)
	}
	return b.String()
}

func orNA(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return "N/A"
	}
	return strings.ReplaceAll(s, "|", `\|`)
}
