package notam

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeRecords(t *testing.T, raw string) []Record {
	t.Helper()
	var records []Record
	require.NoError(t, json.Unmarshal([]byte(raw), &records))
	return records
}

func TestBuildReport_GroupsByAirportInFirstSeenOrder(t *testing.T) {
	records := decodeRecords(t, `[
		{"id": "A1", "icao_code": "EGLL", "interpretation": {"category": "RUNWAY", "affected_elements": [{"type": "RUNWAY", "identifier": "27L", "effect": "CLOSED"}]}},
		{"id": "B1", "icao_code": "KJFK", "interpretation": {"category": "LIGHTING", "affected_elements": null}},
		{"id": "A2", "icao_code": "EGLL", "interpretation": {"category": "TAXIWAY", "affected_elements": [{"type": "TAXIWAY", "identifier": "B", "effect": "RESTRICTED"}]}}
	]`)

	report := BuildReport(&AggregateResult{Notams: records}, "p")

	require.Len(t, report.Airports, 2)
	assert.Equal(t, "EGLL", report.Airports[0].ICAOCode)
	assert.Equal(t, "KJFK", report.Airports[1].ICAOCode)
	assert.Equal(t, 2, report.Airports[0].NotamCount)
	assert.Equal(t, 1, report.Airports[1].NotamCount)
	assert.Equal(t, []string{"RUNWAY", "TAXIWAY"}, report.Airports[0].Categories)
	assert.Equal(t, 3, report.TotalNotams)
}

func TestBuildReport_CategoryTallyCountsNotams(t *testing.T) {
	records := decodeRecords(t, `[
		{"icao_code": "KJFK", "interpretation": {"category": "RUNWAY"}},
		{"icao_code": "EGLL", "interpretation": {"category": "RUNWAY"}},
		{"icao_code": "KJFK", "interpretation": {"category": "AIRSPACE"}},
		{"icao_code": "KJFK"}
	]`)

	report := BuildReport(&AggregateResult{Notams: records}, "p")

	assert.Equal(t, map[string]int{"RUNWAY": 2, "AIRSPACE": 1}, report.CategoryCounts)
}

func TestBuildReport_NotamWithoutInterpretationStillCounts(t *testing.T) {
	records := decodeRecords(t, `[{"id": "X", "icao_code": "CYYZ"}]`)

	report := BuildReport(&AggregateResult{Notams: records}, "p")

	require.Len(t, report.Airports, 1)
	assert.Equal(t, 1, report.Airports[0].NotamCount)
	assert.Empty(t, report.Airports[0].Categories)
	assert.Empty(t, report.Airports[0].Elements)
}

func TestBuildReport_MissingAirportCodeDefaultsToUnknown(t *testing.T) {
	records := decodeRecords(t, `[{"id": "X"}]`)

	report := BuildReport(&AggregateResult{Notams: records}, "p")

	require.Len(t, report.Airports, 1)
	assert.Equal(t, "UNKNOWN", report.Airports[0].ICAOCode)
}

func TestBuildReport_ElementDefaultsAppliedAtDecode(t *testing.T) {
	records := decodeRecords(t, `[
		{"icao_code": "KJFK", "interpretation": {"affected_elements": [{}, {"identifier": "09L", "details": "resurfacing"}]}}
	]`)

	report := BuildReport(&AggregateResult{Notams: records}, "p")

	require.Len(t, report.Airports[0].Elements, 2)
	// Elements are sorted; both share the UNKNOWN type so the identifier
	// decides.
	first, second := report.Airports[0].Elements[0], report.Airports[0].Elements[1]
	assert.Equal(t, AffectedElement{Type: "UNKNOWN", Identifier: "09L", Effect: "N/A", Details: "resurfacing"}, first)
	assert.Equal(t, AffectedElement{Type: "UNKNOWN", Identifier: "N/A", Effect: "N/A"}, second)
	// Missing category defaults
	assert.Equal(t, []string{"UNSPECIFIED"}, report.Airports[0].Categories)
}

func TestBuildReport_SortsElementsPerAirport(t *testing.T) {
	records := decodeRecords(t, `[
		{"icao_code": "KJFK", "interpretation": {"category": "MIXED", "affected_elements": [
			{"type": "TAXIWAY", "identifier": "B", "effect": "AFFECTED"},
			{"type": "RUNWAY", "identifier": "09R", "effect": "CAUTION"},
			{"type": "RUNWAY", "identifier": "09L", "effect": "CLOSED"}
		]}}
	]`)

	report := BuildReport(&AggregateResult{Notams: records}, "p")

	identifiers := []string{}
	for _, el := range report.Airports[0].Elements {
		identifiers = append(identifiers, el.Identifier)
	}
	assert.Equal(t, []string{"09L", "09R", "B"}, identifiers)
}
