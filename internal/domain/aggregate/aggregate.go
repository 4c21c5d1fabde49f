// Package aggregate groups contact rows into unique points of contact.
package aggregate

import (
	"github.com/opptrack/pocsift/internal/domain/model"
	"github.com/opptrack/pocsift/internal/domain/normalize"
)

// FieldPolicy selects which sighting's contact fields (email, phone, state,
// city, agency) a POC keeps when duplicate rows disagree.
type FieldPolicy string

const (
	// FirstWins keeps the first-seen value of each contact field. Later
	// sightings only fill fields that are still empty. This is the default:
	// output is reproducible regardless of how inconsistent duplicates are.
	FirstWins FieldPolicy = "first_wins"

	// LastWins replaces a contact field whenever a later sighting carries a
	// non-empty value for it.
	LastWins FieldPolicy = "last_wins"
)

// ParseFieldPolicy maps a configuration string to a FieldPolicy.
func ParseFieldPolicy(s string) (FieldPolicy, error) {
	switch FieldPolicy(s) {
	case FirstWins, LastWins:
		return FieldPolicy(s), nil
	case "":
		return FirstWins, nil
	}
	return "", ErrInvalidFieldPolicy
}

// entry pairs a POC with the membership sets backing its slices.
type entry struct {
	poc    *model.POC
	depts  map[string]struct{}
	titles map[string]struct{}
}

// Aggregator accumulates contact rows into one record per canonical name.
// It exclusively owns the canonical-name mapping for the duration of a run;
// it is not safe for concurrent use and does not need to be: the pipeline
// is a single-pass, single-goroutine loop.
type Aggregator struct {
	normalizer   *normalize.Normalizer
	policy       FieldPolicy
	dedupeTitles bool

	entries  map[string]*entry
	order    []string // canonical keys in first-seen order
	accepted int
	rejected int
}

// New creates an Aggregator with configuration options.
func New(opts ...Option) *Aggregator {
	a := &Aggregator{
		policy:       FirstWins,
		dedupeTitles: true,
		entries:      make(map[string]*entry),
	}

	for _, opt := range opts {
		opt(a)
	}

	if a.normalizer == nil {
		a.normalizer = normalize.New()
	}
	return a
}

// Add folds one row into the aggregation. It returns true when the row was
// accepted and false when its name failed normalization; rejected rows
// contribute to no record and are not errors.
func (a *Aggregator) Add(row model.Contact) bool {
	name, err := a.normalizer.Normalize(row.Name)
	if err != nil {
		a.rejected++
		return false
	}
	a.accepted++

	e, ok := a.entries[name.Key]
	if !ok {
		e = &entry{
			poc: &model.POC{
				Name:   name.Display,
				Email:  row.Email,
				Phone:  row.Phone,
				State:  row.State,
				City:   row.City,
				Agency: row.Agency,
			},
			depts:  make(map[string]struct{}),
			titles: make(map[string]struct{}),
		}
		a.entries[name.Key] = e
		a.order = append(a.order, name.Key)
	} else {
		a.mergeContactFields(e.poc, row)
	}

	e.poc.OpportunityCount++
	a.addDepartment(e, row)
	a.addTitle(e, row.Title)
	return true
}

// mergeContactFields applies the configured field policy to a repeat sighting.
func (a *Aggregator) mergeContactFields(p *model.POC, row model.Contact) {
	merge := func(dst *string, src string) {
		if src == "" {
			return
		}
		if a.policy == LastWins || *dst == "" {
			*dst = src
		}
	}
	merge(&p.Email, row.Email)
	merge(&p.Phone, row.Phone)
	merge(&p.State, row.State)
	merge(&p.City, row.City)
	merge(&p.Agency, row.Agency)
}

// addDepartment records the row's department with set semantics, falling
// back to the agency when the row has no sub-tier department.
func (a *Aggregator) addDepartment(e *entry, row model.Contact) {
	dept := row.Department
	if dept == "" {
		dept = row.Agency
	}
	if dept == "" {
		return
	}
	if _, seen := e.depts[dept]; seen {
		return
	}
	e.depts[dept] = struct{}{}
	e.poc.Departments = append(e.poc.Departments, dept)
}

func (a *Aggregator) addTitle(e *entry, title string) {
	if title == "" {
		return
	}
	if a.dedupeTitles {
		if _, seen := e.titles[title]; seen {
			return
		}
		e.titles[title] = struct{}{}
	}
	e.poc.Titles = append(e.poc.Titles, title)
}

// Records returns the aggregated POCs in first-seen order. The returned
// records are final once input is exhausted; callers must not mutate them.
func (a *Aggregator) Records() []*model.POC {
	out := make([]*model.POC, 0, len(a.order))
	for _, key := range a.order {
		out = append(out, a.entries[key].poc)
	}
	return out
}

// Size returns the number of unique points of contact seen so far.
func (a *Aggregator) Size() int { return len(a.order) }

// Accepted returns the number of rows folded into records. It equals the
// sum of OpportunityCount across all records.
func (a *Aggregator) Accepted() int { return a.accepted }

// Rejected returns the number of rows dropped by name normalization.
func (a *Aggregator) Rejected() int { return a.rejected }

// Aggregate groups rows into unique POCs in one call. It is a convenience
// wrapper over an Aggregator for callers that already hold all rows.
func Aggregate(rows []model.Contact, opts ...Option) []*model.POC {
	a := New(opts...)
	for _, row := range rows {
		a.Add(row)
	}
	return a.Records()
}
