package notam

import (
	"sort"
	"strings"
)

// unrankedPriority sorts any type or effect missing from the priority tables
// after every ranked value.
const unrankedPriority = 99

// typePriority ranks element types by operational significance; lower sorts
// first.
var typePriority = map[string]int{
	"RUNWAY":    1,
	"TAXIWAY":   2,
	"LIGHTING":  3,
	"SERVICE":   4,
	"PROCEDURE": 5,
	"APRON":     6,
	"APPROACH":  7,
	"NAVAID":    8,
	"AIRSPACE":  9,
	"OTHER":     10,
}

// effectPriority ranks effects by severity; lower sorts first.
var effectPriority = map[string]int{
	"CLOSED":           1,
	"RESTRICTED":       2,
	"HAZARD":           3,
	"UNSERVICEABLE":    4,
	"WORK_IN_PROGRESS": 5,
	"CAUTION":          6,
	"AFFECTED":         7,
}

// displayTypeOrder is the canonical ordering of element types used when
// grouping a summary's output sections.
var displayTypeOrder = []string{
	"RUNWAY", "TAXIWAY", "LIGHTING", "SERVICE", "PROCEDURE",
	"APRON", "APPROACH", "NAVAID", "AIRSPACE", "OTHER",
}

func rank(table map[string]int, value string) int {
	if priority, ok := table[value]; ok {
		return priority
	}
	return unrankedPriority
}

// SortElements orders elements by (type priority, effect priority,
// upper-cased identifier). The sort is stable, so exact duplicates keep
// their original relative order.
func SortElements(elements []AffectedElement) {
	sort.SliceStable(elements, func(i, j int) bool {
		a, b := elements[i], elements[j]

		if ta, tb := rank(typePriority, a.Type), rank(typePriority, b.Type); ta != tb {
			return ta < tb
		}
		if ea, eb := rank(effectPriority, a.Effect), rank(effectPriority, b.Effect); ea != eb {
			return ea < eb
		}
		return strings.ToUpper(a.Identifier) < strings.ToUpper(b.Identifier)
	})
}
