package notam

import (
	"encoding/json"
)

// Defaults applied while decoding provider records. Declared here so the
// whole default policy is auditable in one place.
const (
	DefaultElementType       = "UNKNOWN"
	DefaultElementIdentifier = "N/A"
	DefaultElementEffect     = "N/A"
	DefaultCategory          = "UNSPECIFIED"
	DefaultAirportCode       = "UNKNOWN"
)

// AffectedElement is a structured sub-entity (runway, taxiway, navaid, etc.)
// impacted by a NOTAM.
type AffectedElement struct {
	Type       string `json:"type"`
	Identifier string `json:"identifier"`
	Effect     string `json:"effect"`
	Details    string `json:"details,omitempty"`
}

// UnmarshalJSON decodes an element with field defaults: a missing type,
// identifier, or effect is filled in rather than left empty.
func (e *AffectedElement) UnmarshalJSON(data []byte) error {
	type alias AffectedElement
	a := alias{
		Type:       DefaultElementType,
		Identifier: DefaultElementIdentifier,
		Effect:     DefaultElementEffect,
	}
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*e = AffectedElement(a)
	return nil
}

// Interpretation is the provider's structured reading of a raw NOTAM
type Interpretation struct {
	Category         string            `json:"category"`
	AffectedElements []AffectedElement `json:"affected_elements"`
}

// UnmarshalJSON decodes an interpretation, defaulting a missing category.
// A null or absent affected_elements list decodes to nil and is treated as
// empty everywhere downstream.
func (i *Interpretation) UnmarshalJSON(data []byte) error {
	type alias Interpretation
	a := alias{Category: DefaultCategory}
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*i = Interpretation(a)
	return nil
}

// Record is a single NOTAM as returned by the provider. Only the fields the
// service inspects are decoded; the full provider payload is retained
// verbatim so the synthesized aggregate passes unrecognized fields through
// unchanged.
type Record struct {
	ID             string          `json:"id"`
	ICAOCode       string          `json:"icao_code"`
	Interpretation *Interpretation `json:"interpretation,omitempty"`

	raw json.RawMessage
}

// UnmarshalJSON decodes the inspected fields and keeps the original bytes
func (r *Record) UnmarshalJSON(data []byte) error {
	type alias Record
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*r = Record(a)
	r.raw = append(json.RawMessage(nil), data...)
	return nil
}

// MarshalJSON re-emits the provider payload verbatim when available
func (r Record) MarshalJSON() ([]byte, error) {
	if len(r.raw) > 0 {
		return r.raw, nil
	}
	type alias Record
	return json.Marshal(alias(r))
}

// pageResponse is one page of the provider's /notams response. Top-level
// fields other than total_count and notams are kept raw so the aggregate can
// carry them through.
type pageResponse struct {
	TotalCount int
	Notams     []Record
	Extra      map[string]json.RawMessage
}

func (p *pageResponse) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	p.Extra = make(map[string]json.RawMessage, len(fields))
	for key, value := range fields {
		switch key {
		case "total_count":
			if err := json.Unmarshal(value, &p.TotalCount); err != nil {
				return err
			}
		case "notams":
			// A null notams list is a page with zero items
			if string(value) != "null" {
				if err := json.Unmarshal(value, &p.Notams); err != nil {
					return err
				}
			}
		case "page", "per_page":
			// Request echo; the aggregate overwrites these
		default:
			p.Extra[key] = value
		}
	}
	return nil
}

// AggregateResult is the logical union of all paged responses for one query,
// presented as a single non-paged result: page is fixed to 1 and per_page is
// the collected count, signalling a combined view.
type AggregateResult struct {
	Notams     []Record
	TotalCount int
	Page       int
	PerPage    int

	// Extra holds unrecognized top-level fields from the last provider
	// response, passed through unchanged.
	Extra map[string]json.RawMessage
}

// MarshalJSON merges the known aggregate fields with the passed-through
// provider fields into one object.
func (a AggregateResult) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(a.Extra)+4)
	for key, value := range a.Extra {
		out[key] = value
	}

	notams := a.Notams
	if notams == nil {
		notams = []Record{}
	}

	known := map[string]interface{}{
		"notams":      notams,
		"total_count": a.TotalCount,
		"page":        a.Page,
		"per_page":    a.PerPage,
	}
	for key, value := range known {
		encoded, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		out[key] = encoded
	}

	return json.Marshal(out)
}
