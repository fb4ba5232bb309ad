package notam

import (
	"strings"
)

// Query limits imposed by the Notamify API
const (
	MaxLocations   = 5
	MinPerPage     = 1
	MaxPerPage     = 30
	DefaultPerPage = 30
)

// Query describes one NOTAM retrieval request. Construct it, call Validate,
// then hand it to the client; validation never touches the network.
type Query struct {
	Locations []string // ICAO airport codes, 1-5 entries
	StartsAt  string   // ISO-8601 start of the query window, optional
	EndsAt    string   // ISO-8601 end of the query window, optional
	NotamIDs  []string // specific NOTAM IDs, optional
	PerPage   int      // page size, 1-30
	Page      int      // starting page number, >= 1
}

// Validate checks the query against the provider's limits and normalizes
// location codes to upper case. It returns an InvalidQueryError describing
// the first violation found.
func (q *Query) Validate() error {
	if len(q.Locations) < 1 || len(q.Locations) > MaxLocations {
		return invalidQueryf("expected between 1 and %d ICAO codes, got %d", MaxLocations, len(q.Locations))
	}

	for i, location := range q.Locations {
		if !isICAOCode(location) {
			return invalidQueryf("invalid ICAO code: %q (must be 4 letters)", location)
		}
		q.Locations[i] = strings.ToUpper(location)
	}

	if q.PerPage < MinPerPage || q.PerPage > MaxPerPage {
		return invalidQueryf("per_page must be between %d and %d, got %d", MinPerPage, MaxPerPage, q.PerPage)
	}

	if q.Page < 1 {
		return invalidQueryf("page must be 1 or greater, got %d", q.Page)
	}

	return nil
}

// isICAOCode reports whether s is exactly 4 ASCII letters
func isICAOCode(s string) bool {
	if len(s) != 4 {
		return false
	}
	for _, c := range s {
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return false
		}
	}
	return true
}

// ParseLocations splits a comma-separated list of ICAO codes, trimming
// whitespace, dropping empty entries, and upper-casing each code.
func ParseLocations(locations string) []string {
	parts := strings.Split(locations, ",")
	parsed := make([]string, 0, len(parts))
	for _, part := range parts {
		code := strings.TrimSpace(part)
		if code == "" {
			continue
		}
		parsed = append(parsed, strings.ToUpper(code))
	}
	return parsed
}
