package notam

import (
	"fmt"
	"sort"
	"strings"
)

const summaryDisclaimer = "Remember to inform user: The following summary is for informational purposes only. " +
	"Always refer to official sources for the most accurate and up-to-date information."

// FormatSummary renders the report as fixed-structure operational text. The
// output is deterministic: the same report always renders to identical bytes.
// Airports appear in first-seen order; the global category section and the
// per-airport category lists are alphabetical; each airport's elements are
// grouped by type in canonical order, with any type outside the canonical
// list appended in first-encountered order.
//
// A report with no NOTAMs renders as a single sentence naming the requested
// locations and the time period.
func FormatSummary(report *Report, locations []string) string {
	if report.TotalNotams == 0 {
		return fmt.Sprintf("No active NOTAMs found for %s in the time period %s.",
			strings.Join(locations, ", "), report.TimePeriod)
	}

	var lines []string
	lines = append(lines, "NOTAM AFFECTED ELEMENTS SUMMARY")
	lines = append(lines, summaryDisclaimer)
	lines = append(lines, strings.Repeat("=", 50))
	lines = append(lines, fmt.Sprintf("Time Period: %s", report.TimePeriod))
	lines = append(lines, fmt.Sprintf("Total NOTAMs: %d", report.TotalNotams))

	airportCodes := make([]string, 0, len(report.Airports))
	for _, airport := range report.Airports {
		airportCodes = append(airportCodes, airport.ICAOCode)
	}
	lines = append(lines, fmt.Sprintf("Airports: %s", strings.Join(airportCodes, ", ")))
	lines = append(lines, "")

	if len(report.CategoryCounts) > 0 {
		lines = append(lines, "NOTAM Categories:")
		categories := make([]string, 0, len(report.CategoryCounts))
		for category := range report.CategoryCounts {
			categories = append(categories, category)
		}
		sort.Strings(categories)
		for _, category := range categories {
			lines = append(lines, fmt.Sprintf("  • %s: %d NOTAMs", category, report.CategoryCounts[category]))
		}
		lines = append(lines, "")
	}

	for _, airport := range report.Airports {
		lines = append(lines, fmt.Sprintf("   AIRPORT: %s", airport.ICAOCode))
		lines = append(lines, fmt.Sprintf("   NOTAMs: %d", airport.NotamCount))

		categories := append([]string(nil), airport.Categories...)
		sort.Strings(categories)
		lines = append(lines, fmt.Sprintf("   Categories: %s", strings.Join(categories, ", ")))

		if len(airport.Elements) > 0 {
			lines = append(lines, "   Affected Elements (sorted by priority):")
			lines = append(lines, formatElementGroups(airport.Elements)...)
		}

		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}

// formatElementGroups groups already-sorted elements by type and emits the
// canonical types first, then any remaining types in first-encountered order.
func formatElementGroups(elements []AffectedElement) []string {
	grouped := make(map[string][]AffectedElement)
	var encounteredTypes []string
	for _, element := range elements {
		if _, seen := grouped[element.Type]; !seen {
			encounteredTypes = append(encounteredTypes, element.Type)
		}
		grouped[element.Type] = append(grouped[element.Type], element)
	}

	canonical := make(map[string]bool, len(displayTypeOrder))
	var lines []string
	for _, elementType := range displayTypeOrder {
		canonical[elementType] = true
		if group, ok := grouped[elementType]; ok {
			lines = append(lines, formatTypeGroup(elementType, group)...)
		}
	}
	for _, elementType := range encounteredTypes {
		if !canonical[elementType] {
			lines = append(lines, formatTypeGroup(elementType, grouped[elementType])...)
		}
	}
	return lines
}

func formatTypeGroup(elementType string, elements []AffectedElement) []string {
	lines := []string{fmt.Sprintf("     %s:", elementType)}
	for _, element := range elements {
		lines = append(lines, fmt.Sprintf("       • %s", element.Identifier))
		if element.Effect != DefaultElementEffect {
			lines = append(lines, fmt.Sprintf("         Effect: %s", element.Effect))
		}
		if element.Details != "" {
			lines = append(lines, fmt.Sprintf("         Details: %s", element.Details))
		}
	}
	return lines
}
