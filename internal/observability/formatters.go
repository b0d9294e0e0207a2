// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/profile-card/internal/cardfields"
	"github.com/jonathan/profile-card/internal/dates"
	"github.com/jonathan/profile-card/internal/logging"
	"github.com/jonathan/profile-card/internal/types"
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

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, clip(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// clip shortens s to at most n runes, marking the cut with "...".
func clip(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return logging.Truncate(s, n-3) + "..."
}

// PrintProfile outputs a human-readable summary of an extracted profile.
func (p *Printer) PrintProfile(profile *types.Profile) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	tier := cardfields.RatingTier(profile.OverallRating)

	sb.WriteString(fmt.Sprintf("Name:     %s\n", profile.Name))
	sb.WriteString(fmt.Sprintf("Role:     %s (%s)\n", profile.CurrentRole, cardfields.RoleAbbrev(profile.CurrentRole)))
	sb.WriteString(fmt.Sprintf("Company:  %s\n", profile.CurrentCompany))
	sb.WriteString(fmt.Sprintf("Location: %s\n", profile.Location))
	sb.WriteString(fmt.Sprintf("Rating:   %d %s (%s)\n", profile.OverallRating, cardfields.Position(profile.CurrentRole), tier.Label))
	sb.WriteString(fmt.Sprintf("LinkedIn: %.0f%% confidence\n", profile.LinkedinConfidence*100))
	sb.WriteString("\n")

	if len(profile.CareerHistory) > 0 {
		sb.WriteString("Career:\n")
		count := min(len(profile.CareerHistory), maxItemsToShow)
		for i := 0; i < count; i++ {
			entry := profile.CareerHistory[i]
			sb.WriteString(fmt.Sprintf("  • %s, %s\n", entry.Title, entry.Company))
			sb.WriteString(fmt.Sprintf("    %s – %s (%s)\n", entry.StartDate, entry.EndDate, dates.Duration(entry.StartDate, entry.EndDate)))
		}
		if len(profile.CareerHistory) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(profile.CareerHistory)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	if len(profile.Education) > 0 {
		sb.WriteString("Education:\n")
		count := min(len(profile.Education), 3)
		for i := 0; i < count; i++ {
			entry := profile.Education[i]
			sb.WriteString(fmt.Sprintf("  • %s\n", entry.Institution))
			line := "    " + entry.Degree
			if years := dates.YearRange(entry.StartYear, entry.EndYear); years != "" {
				line += " (" + years + ")"
			}
			sb.WriteString(line + "\n")
		}
		if len(profile.Education) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(profile.Education)-3))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Skills:\n")
	for _, s := range profile.Skills {
		marker := ""
		if s.IsSentinel() {
			marker = " (placeholder)"
		}
		sb.WriteString(fmt.Sprintf("  %2d  %s%s\n", s.Score, s.Label, marker))
	}

	p.printBox("EXTRACTED PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintWarnings outputs the quality warnings attached to an extraction.
func (p *Printer) PrintWarnings(warnings []types.Warning) {
	if len(warnings) == 0 {
		return
	}

	var sb strings.Builder
	for i, w := range warnings {
		sb.WriteString(fmt.Sprintf("⚠ %s\n", w.Code))
		for _, line := range wrap(w.Message, boxWidth-6) {
			sb.WriteString("  " + line + "\n")
		}
		if i < len(warnings)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("QUALITY WARNINGS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCard outputs the clamped card values that were rendered.
func (p *Printer) PrintCard(card types.CardData, filename string, size int) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s  %.0f %s\n", strings.ToUpper(card.Name), card.OverallRating, cardfields.Position(card.CurrentRole)))
	sb.WriteString(fmt.Sprintf("%s · %s\n\n", card.CurrentRole, card.CurrentCompany))
	for _, s := range card.Skills {
		sb.WriteString(fmt.Sprintf("  %2.0f  %s\n", s.Score, strings.ToUpper(s.Label)))
	}
	sb.WriteString(fmt.Sprintf("\n%s (%d bytes)", filename, size))

	p.printBox("RENDERED CARD", sb.String())
}

// wrap breaks text into lines of at most width runes on word boundaries.
func wrap(text string, width int) []string {
	var lines []string
	var line string
	for _, word := range strings.Fields(text) {
		switch {
		case line == "":
			line = word
		case utf8.RuneCountInString(line)+1+utf8.RuneCountInString(word) > width:
			lines = append(lines, line)
			line = word
		default:
			line += " " + word
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}
