package notam

// AirportSummary accumulates everything extracted for one airport: the NOTAM
// count, the distinct interpretation categories in first-seen order, and the
// affected elements.
type AirportSummary struct {
	ICAOCode    string
	NotamCount  int
	Categories  []string
	Elements    []AffectedElement
	categorySet map[string]struct{}
}

func (a *AirportSummary) addCategory(category string) {
	if _, seen := a.categorySet[category]; seen {
		return
	}
	a.categorySet[category] = struct{}{}
	a.Categories = append(a.Categories, category)
}

// Report is the extracted, grouped view of an aggregate result, ready for
// sorting and rendering. Airports are retained in first-seen order.
type Report struct {
	TimePeriod     string
	TotalNotams    int
	Airports       []*AirportSummary
	CategoryCounts map[string]int

	airportIndex map[string]*AirportSummary
}

func (r *Report) airport(code string) *AirportSummary {
	if summary, ok := r.airportIndex[code]; ok {
		return summary
	}
	summary := &AirportSummary{
		ICAOCode:    code,
		categorySet: make(map[string]struct{}),
	}
	r.airportIndex[code] = summary
	r.Airports = append(r.Airports, summary)
	return summary
}

// BuildReport walks the aggregate's NOTAMs in fetch order and extracts their
// affected elements grouped per airport. Every NOTAM counts toward its
// airport's total whether or not it carries an interpretation; categories and
// elements are only recorded when an interpretation is present. Each
// airport's elements are left priority-sorted.
func BuildReport(result *AggregateResult, timePeriod string) *Report {
	report := &Report{
		TimePeriod:     timePeriod,
		TotalNotams:    len(result.Notams),
		CategoryCounts: make(map[string]int),
		airportIndex:   make(map[string]*AirportSummary),
	}

	for _, record := range result.Notams {
		code := record.ICAOCode
		if code == "" {
			code = DefaultAirportCode
		}
		summary := report.airport(code)
		summary.NotamCount++

		interpretation := record.Interpretation
		if interpretation == nil {
			continue
		}

		category := interpretation.Category
		if category == "" {
			category = DefaultCategory
		}
		summary.addCategory(category)
		report.CategoryCounts[category]++

		summary.Elements = append(summary.Elements, interpretation.AffectedElements...)
	}

	for _, summary := range report.Airports {
		SortElements(summary.Elements)
	}

	return report
}
