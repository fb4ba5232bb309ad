// Package prompts holds the service's static informational text and the
// NOTAM-analysis prompt template. Rendering is pure string substitution;
// nothing here touches the network.
package prompts

import (
	"bytes"
	"fmt"
	"text/template"
)

const apiInfo = `Notamify API Configuration:
==========================

Base URL: https://api.notamify.com/api/v2
Authentication: Bearer token (set via NOTAMIFY_API_KEY environment variable)

Limitations:
- Maximum 5 ICAO codes per request
- Start date cannot be earlier than 1 day before current UTC time
- End date must be later than start date
- Page size limited to 1-30 items

Available endpoints:
- GET /notams - Retrieve NOTAMs with filtering options

Time format: ISO 8601 (YYYY-MM-DDTHH:MM:SSZ)
Example: 2024-01-01T00:00:00Z

Common ICAO codes:
- KJFK - John F. Kennedy International Airport (New York)
- EGLL - London Heathrow Airport
- EDDM - Munich Airport
- KLAX - Los Angeles International Airport
- KORD - Chicago O'Hare International Airport
- EDDF - Frankfurt Airport
`

const analyzeTemplateText = `Please analyze the current NOTAMs for the following airports: {{.AirportCodes}}

Use the NOTAM retrieval endpoint to get current NOTAM data and then provide:

1. Summary of active NOTAMs by category (navigation, runway, airspace, etc.)
2. Critical items that may affect flight operations
3. Temporary restrictions or warnings
4. Expected duration of significant NOTAMs
5. Recommendations for flight planning

Focus on operationally significant information that pilots and flight planners need to know.
`

var analyzeTemplate = template.Must(template.New("analyze-notams").Parse(analyzeTemplateText))

// APIInfo returns the fixed descriptive text about the Notamify API limits
// and common ICAO codes.
func APIInfo() string {
	return apiInfo
}

// AnalyzeNOTAMs renders the NOTAM analysis prompt for a comma-separated list
// of airport codes.
func AnalyzeNOTAMs(airportCodes string) (string, error) {
	var buf bytes.Buffer
	err := analyzeTemplate.Execute(&buf, struct{ AirportCodes string }{AirportCodes: airportCodes})
	if err != nil {
		return "", fmt.Errorf("failed to render analysis prompt: %w", err)
	}
	return buf.String(), nil
}
