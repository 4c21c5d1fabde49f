package aggregate_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	aggregate "github.com/opptrack/pocsift/internal/domain/aggregate"
	"github.com/opptrack/pocsift/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func row(name, dept, title string) model.Contact {
	return model.Contact{
		Name:       name,
		Email:      name + "@example.gov",
		Phone:      "555-0100",
		State:      "VA",
		City:       "Arlington",
		Agency:     "GSA",
		Department: dept,
		Title:      title,
	}
}

func TestAggregator(t *testing.T) {
	Convey("Given a default aggregator", t, func() {
		a := aggregate.New()

		Convey("When rows with equivalent names are added", func() {
			a.Add(row("Jane Doe", "PBS", "Roof repair"))
			a.Add(row("jane  doe", "FAS", "Fleet leasing"))

			Convey("Then they collapse into one POC with count 2", func() {
				recs := a.Records()
				So(recs, ShouldHaveLength, 1)
				So(recs[0].Name, ShouldEqual, "Jane Doe")
				So(recs[0].OpportunityCount, ShouldEqual, 2)
				So(recs[0].Departments, ShouldResemble, []string{"PBS", "FAS"})
				So(recs[0].Titles, ShouldResemble, []string{"Roof repair", "Fleet leasing"})
			})
		})

		Convey("When a row's name fails normalization", func() {
			ok1 := a.Add(row("N/A", "PBS", "Roof repair"))
			ok2 := a.Add(row("John Smith", "PBS", "Roof repair"))

			Convey("Then it is silently filtered, not aggregated", func() {
				So(ok1, ShouldBeFalse)
				So(ok2, ShouldBeTrue)
				So(a.Records(), ShouldHaveLength, 1)
				So(a.Rejected(), ShouldEqual, 1)
				So(a.Accepted(), ShouldEqual, 1)
			})
		})

		Convey("When duplicate departments and titles arrive", func() {
			a.Add(row("John Smith", "PBS", "Roof repair"))
			a.Add(row("John Smith", "PBS", "Roof repair"))
			a.Add(row("John Smith", "FAS", "Roof repair"))

			Convey("Then departments keep set semantics and titles dedupe by default", func() {
				recs := a.Records()
				So(recs[0].OpportunityCount, ShouldEqual, 3)
				So(recs[0].Departments, ShouldResemble, []string{"PBS", "FAS"})
				So(recs[0].Titles, ShouldResemble, []string{"Roof repair"})
			})
		})

		Convey("When many rows are added", func() {
			rows := []model.Contact{
				row("Jane Doe", "PBS", "Roof repair"),
				row("John Smith", "FAS", "Fleet leasing"),
				row("unknown", "FAS", "Fleet leasing"),
				row("JANE DOE", "PBS", "Paving"),
				row("", "PBS", "Paving"),
			}
			for _, r := range rows {
				a.Add(r)
			}

			Convey("Then total opportunity count equals accepted rows", func() {
				total := 0
				for _, rec := range a.Records() {
					total += rec.OpportunityCount
				}
				So(total, ShouldEqual, a.Accepted())
				So(a.Accepted(), ShouldEqual, 3)
				So(a.Rejected(), ShouldEqual, 2)
			})
		})
	})
}

func TestAggregatorFieldPolicies(t *testing.T) {
	first := model.Contact{Name: "Jane Doe", Email: "jane@pbs.gsa.gov", State: "VA", City: "Arlington", Agency: "GSA"}
	second := model.Contact{Name: "Jane Doe", Email: "jdoe@fas.gsa.gov", Phone: "555-0199", State: "DC", City: "Washington", Agency: "GSA"}

	Convey("Given duplicate rows with conflicting contact fields", t, func() {
		Convey("When the policy is first-wins (default)", func() {
			a := aggregate.New()
			a.Add(first)
			a.Add(second)
			rec := a.Records()[0]

			Convey("Then first-seen values are kept and empty fields are filled", func() {
				So(rec.Email, ShouldEqual, "jane@pbs.gsa.gov")
				So(rec.State, ShouldEqual, "VA")
				So(rec.City, ShouldEqual, "Arlington")
				So(rec.Phone, ShouldEqual, "555-0199") // was empty on first sighting
			})
		})

		Convey("When the policy is last-wins", func() {
			a := aggregate.New(aggregate.WithFieldPolicy(aggregate.LastWins))
			a.Add(first)
			a.Add(second)
			rec := a.Records()[0]

			Convey("Then later non-empty values replace earlier ones", func() {
				So(rec.Email, ShouldEqual, "jdoe@fas.gsa.gov")
				So(rec.State, ShouldEqual, "DC")
				So(rec.City, ShouldEqual, "Washington")
			})
		})
	})
}

func TestAggregatorTitleDedupe(t *testing.T) {
	Convey("Given title dedup disabled", t, func() {
		a := aggregate.New(aggregate.WithTitleDedupe(false))
		a.Add(row("John Smith", "PBS", "Roof repair"))
		a.Add(row("John Smith", "PBS", "Roof repair"))

		Convey("Then duplicate titles are retained to reflect multiplicity", func() {
			So(a.Records()[0].Titles, ShouldResemble, []string{"Roof repair", "Roof repair"})
		})
	})
}

func TestAggregateIdempotence(t *testing.T) {
	Convey("Given an input aggregated once and the same input concatenated twice", t, func() {
		rows := []model.Contact{
			row("Jane Doe", "PBS", "Roof repair"),
			row("John Smith", "FAS", "Fleet leasing"),
			row("jane doe", "FAS", "Paving"),
		}

		once := aggregate.Aggregate(rows)
		twice := aggregate.Aggregate(append(append([]model.Contact{}, rows...), rows...))

		Convey("Then the canonical name set is identical and counts double", func() {
			So(twice, ShouldHaveLength, len(once))
			for i := range once {
				So(twice[i].Name, ShouldEqual, once[i].Name)
				So(twice[i].OpportunityCount, ShouldEqual, 2*once[i].OpportunityCount)
			}
		})
	})
}

func TestParseFieldPolicy(t *testing.T) {
	Convey("Given field policy configuration strings", t, func() {
		Convey("Then known spellings parse and unknown ones fail", func() {
			p, err := aggregate.ParseFieldPolicy("last_wins")
			So(err, ShouldBeNil)
			So(p, ShouldEqual, aggregate.LastWins)

			p, err = aggregate.ParseFieldPolicy("")
			So(err, ShouldBeNil)
			So(p, ShouldEqual, aggregate.FirstWins)

			_, err = aggregate.ParseFieldPolicy("newest")
			So(err, ShouldEqual, aggregate.ErrInvalidFieldPolicy)
		})
	})
}

func TestAggregateDeterminism(t *testing.T) {
	Convey("Given the same rows aggregated twice", t, func() {
		rows := []model.Contact{
			row("Jane Doe", "PBS", "Roof repair"),
			row("John Smith", "FAS", "Fleet leasing"),
			row("JANE DOE", "FAS", "Paving"),
		}

		a := aggregate.Aggregate(rows)
		b := aggregate.Aggregate(rows)

		Convey("Then the results are structurally identical", func() {
			So(cmp.Diff(a, b), ShouldBeEmpty)
		})
	})
}
