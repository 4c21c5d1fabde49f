// Package rank orders aggregated POC records by a user-selected key.
//
// Every key yields a total, deterministic order: ties on the primary key
// fall through to the case-insensitive display name, so output order never
// depends on input order.
package rank

import (
	"regexp"
	"sort"
	"strings"

	"github.com/opptrack/pocsift/internal/domain/model"
)

// Key selects the sort order of the output.
type Key string

// Supported sort keys.
const (
	ByName             Key = "name"              // alphabetical by display name
	ByLocation         Key = "location"          // state, then city
	ByDepartment       Key = "department"        // canonical joined department set
	ByOpportunityCount Key = "opportunity_count" // descending count
)

// departmentJoin is the canonical separator for the department set when it
// is flattened into a single comparable (and printable) string.
const departmentJoin = "; "

// honorificRe drops a leading parenthesized chunk and courtesy titles so
// "Dr. Jane Doe" files under D-o-e, not D-r.
var honorificRe = regexp.MustCompile(`^(\([^)]*\)\s*)?((Dr|Lt|Mr|Mrs|Ms)\.\s*)?`)

// Parse maps a configuration string to a Key. It accepts the canonical
// spellings plus the legacy aliases "city" and "opportunity".
func Parse(s string) (Key, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "name":
		return ByName, nil
	case "location", "city":
		return ByLocation, nil
	case "department":
		return ByDepartment, nil
	case "opportunity_count", "opportunity":
		return ByOpportunityCount, nil
	}
	return "", ErrInvalidSortKey
}

// Sort returns the records ordered by key. The input slice is not mutated.
func Sort(records []*model.POC, key Key) ([]*model.POC, error) {
	cmp, err := comparator(key)
	if err != nil {
		return nil, err
	}

	out := make([]*model.POC, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		if c := cmp(out[i], out[j]); c != 0 {
			return c < 0
		}
		return nameLess(out[i], out[j])
	})
	return out, nil
}

// comparator returns the primary ordering for key; 0 falls through to the
// shared name tie-break.
func comparator(key Key) (func(a, b *model.POC) int, error) {
	switch key {
	case ByName:
		return func(a, b *model.POC) int {
			return strings.Compare(sortName(a.Name), sortName(b.Name))
		}, nil
	case ByLocation:
		return func(a, b *model.POC) int {
			if c := strings.Compare(fold(a.State), fold(b.State)); c != 0 {
				return c
			}
			return strings.Compare(fold(a.City), fold(b.City))
		}, nil
	case ByDepartment:
		return func(a, b *model.POC) int {
			return strings.Compare(departmentKey(a), departmentKey(b))
		}, nil
	case ByOpportunityCount:
		return func(a, b *model.POC) int {
			// descending: more opportunities rank earlier
			return b.OpportunityCount - a.OpportunityCount
		}, nil
	}
	return nil, ErrInvalidSortKey
}

func nameLess(a, b *model.POC) bool {
	if c := strings.Compare(sortName(a.Name), sortName(b.Name)); c != 0 {
		return c < 0
	}
	return a.Name < b.Name
}

// sortName folds a display name into its collation form.
func sortName(name string) string {
	return fold(honorificRe.ReplaceAllString(name, ""))
}

// departmentKey flattens the department set into a deterministic string:
// members sorted case-insensitively, joined with "; ".
func departmentKey(p *model.POC) string {
	depts := make([]string, len(p.Departments))
	for i, d := range p.Departments {
		depts[i] = fold(d)
	}
	sort.Strings(depts)
	return strings.Join(depts, departmentJoin)
}

func fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
