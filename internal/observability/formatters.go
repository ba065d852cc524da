// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jonathan/job-autofill/internal/analyze"
	"github.com/jonathan/job-autofill/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintFormAnalysis outputs a human-readable summary of one analyzed form.
func (p *Printer) PrintFormAnalysis(a *analyze.FormAnalysis) {
	if a == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Type:        %s\n", a.FormType))
	sb.WriteString(fmt.Sprintf("Fields:      %d (%d classified)\n", a.Stats.Total, a.Stats.Classified))
	sb.WriteString(fmt.Sprintf("Confidence:  %d high / %d medium / %d low\n",
		a.Stats.HighConfidence, a.Stats.MediumConfidence, a.Stats.LowConfidence))

	categories := make([]string, 0, len(a.Grouped))
	for category, fields := range a.Grouped {
		if len(fields) > 0 && category != types.CategoryUnknown {
			categories = append(categories, category)
		}
	}
	sort.Strings(categories)
	if len(categories) > 0 {
		sb.WriteString("\nBy category:\n")
		for _, category := range categories {
			sb.WriteString(fmt.Sprintf("  • %-16s %d\n", category, len(a.Grouped[category])))
		}
	}

	p.printBox(fmt.Sprintf("Form %d", a.Index), strings.TrimRight(sb.String(), "\n"))
}

// PrintFillResult outputs a human-readable summary of a fill session.
func (p *Printer) PrintFillResult(result types.FillResult) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Filled:   %d of %d\n", result.Filled, result.Total))
	sb.WriteString(fmt.Sprintf("Skipped:  %d\n", result.Skipped))
	sb.WriteString(fmt.Sprintf("Failed:   %d\n", result.Failed))
	if result.EntriesCreated > 0 {
		sb.WriteString(fmt.Sprintf("Entries:  %d work experience\n", result.EntriesCreated))
	}

	if len(result.Errors) > 0 {
		sb.WriteString("\nErrors:\n")
		count := min(len(result.Errors), maxItemsToShow)
		for i := 0; i < count; i++ {
			e := result.Errors[i]
			label := e.FieldType
			if label == "" && e.Entry > 0 {
				label = fmt.Sprintf("entry %d", e.Entry)
			}
			sb.WriteString(fmt.Sprintf("  • %s: %s\n", label, e.Message))
		}
		if len(result.Errors) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(result.Errors)-maxItemsToShow))
		}
	}

	title := "Fill Complete"
	if !result.Success {
		title = "Fill Incomplete"
	}
	p.printBox(title, strings.TrimRight(sb.String(), "\n"))
}

// PrintProfile outputs a human-readable profile summary.
func (p *Printer) PrintProfile(profile *types.Profile) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	name := strings.TrimSpace(profile.PersonalInfo["firstName"] + " " + profile.PersonalInfo["lastName"])
	if name != "" {
		sb.WriteString(fmt.Sprintf("Name:    %s\n", name))
	}
	if email := profile.PersonalInfo["email"]; email != "" {
		sb.WriteString(fmt.Sprintf("Email:   %s\n", email))
	}
	sb.WriteString(fmt.Sprintf("Work:    %d entries\n", len(profile.WorkExperience)))
	sb.WriteString(fmt.Sprintf("School:  %d entries\n", len(profile.Education)))
	sb.WriteString(fmt.Sprintf("Skills:  %d listed\n", len(profile.Skills.Technical)))
	if profile.UpdatedAt != "" {
		sb.WriteString(fmt.Sprintf("Updated: %s\n", profile.UpdatedAt))
	}

	p.printBox("Profile", strings.TrimRight(sb.String(), "\n"))
}

// FillSummary renders the one-line fill summary used in responses.
func FillSummary(result types.FillResult) string {
	summary := fmt.Sprintf("Filled %d of %d fields (%d skipped, %d failed)",
		result.Filled, result.Total, result.Skipped, result.Failed)
	if result.EntriesCreated > 0 {
		summary += fmt.Sprintf(", %d work entries", result.EntriesCreated)
	}
	return summary
}
