package rank_test

import (
	"testing"

	"github.com/opptrack/pocsift/internal/domain/model"
	rank "github.com/opptrack/pocsift/internal/domain/rank"
	. "github.com/smartystreets/goconvey/convey"
)

func names(records []*model.POC) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Name
	}
	return out
}

func TestParse(t *testing.T) {
	Convey("Given sort key configuration strings", t, func() {
		Convey("Then canonical spellings parse", func() {
			for s, want := range map[string]rank.Key{
				"name":              rank.ByName,
				"location":          rank.ByLocation,
				"department":        rank.ByDepartment,
				"opportunity_count": rank.ByOpportunityCount,
			} {
				key, err := rank.Parse(s)
				So(err, ShouldBeNil)
				So(key, ShouldEqual, want)
			}
		})

		Convey("Then legacy aliases and odd casing parse", func() {
			key, err := rank.Parse("city")
			So(err, ShouldBeNil)
			So(key, ShouldEqual, rank.ByLocation)

			key, err = rank.Parse("  Opportunity ")
			So(err, ShouldBeNil)
			So(key, ShouldEqual, rank.ByOpportunityCount)
		})

		Convey("Then an unknown key fails with ErrInvalidSortKey", func() {
			_, err := rank.Parse("alphabetical")
			So(err, ShouldEqual, rank.ErrInvalidSortKey)
		})
	})
}

func TestSort(t *testing.T) {
	Convey("Given a set of aggregated POC records", t, func() {
		records := []*model.POC{
			{Name: "Bob Baker", State: "VA", City: "Richmond", Departments: []string{"PBS"}, OpportunityCount: 3},
			{Name: "Alice Adams", State: "va", City: "Arlington", Departments: []string{"FAS", "PBS"}, OpportunityCount: 1},
			{Name: "Carol Chen", State: "MD", City: "Bethesda", Departments: []string{"FAS"}, OpportunityCount: 2},
		}

		Convey("When sorting by name", func() {
			sorted, err := rank.Sort(records, rank.ByName)

			Convey("Then records order alphabetically, case-insensitive", func() {
				So(err, ShouldBeNil)
				So(names(sorted), ShouldResemble, []string{"Alice Adams", "Bob Baker", "Carol Chen"})
			})
		})

		Convey("When sorting by opportunity count", func() {
			sorted, err := rank.Sort(records, rank.ByOpportunityCount)

			Convey("Then counts descend", func() {
				So(err, ShouldBeNil)
				So(names(sorted), ShouldResemble, []string{"Bob Baker", "Carol Chen", "Alice Adams"})
			})
		})

		Convey("When sorting by location", func() {
			sorted, err := rank.Sort(records, rank.ByLocation)

			Convey("Then state orders first and city breaks ties regardless of case", func() {
				So(err, ShouldBeNil)
				So(names(sorted), ShouldResemble, []string{"Carol Chen", "Alice Adams", "Bob Baker"})
			})
		})

		Convey("When sorting by department", func() {
			sorted, err := rank.Sort(records, rank.ByDepartment)

			Convey("Then the joined sorted department set orders records", func() {
				So(err, ShouldBeNil)
				// "fas" < "fas; pbs" < "pbs"
				So(names(sorted), ShouldResemble, []string{"Carol Chen", "Alice Adams", "Bob Baker"})
			})
		})

		Convey("When the sort key is unknown", func() {
			_, err := rank.Sort(records, rank.Key("bogus"))

			Convey("Then it fails with ErrInvalidSortKey", func() {
				So(err, ShouldEqual, rank.ErrInvalidSortKey)
			})
		})

		Convey("When sorting, the input slice is left untouched", func() {
			_, err := rank.Sort(records, rank.ByName)

			So(err, ShouldBeNil)
			So(records[0].Name, ShouldEqual, "Bob Baker")
		})
	})
}

func TestSortDeterminism(t *testing.T) {
	Convey("Given records that tie on the primary key", t, func() {
		records := []*model.POC{
			{Name: "Carol Chen", State: "VA", City: "Arlington", OpportunityCount: 2},
			{Name: "Alice Adams", State: "VA", City: "Arlington", OpportunityCount: 2},
			{Name: "Bob Baker", State: "VA", City: "Arlington", OpportunityCount: 2},
		}

		Convey("When sorting by any key", func() {
			for _, key := range []rank.Key{rank.ByName, rank.ByLocation, rank.ByDepartment, rank.ByOpportunityCount} {
				sorted, err := rank.Sort(records, key)
				So(err, ShouldBeNil)

				Convey("Then name ascending breaks the tie for "+string(key), func() {
					So(names(sorted), ShouldResemble, []string{"Alice Adams", "Bob Baker", "Carol Chen"})
				})
			}
		})
	})
}

func TestSortNameHonorifics(t *testing.T) {
	Convey("Given names carrying honorifics and parenthesized prefixes", t, func() {
		records := []*model.POC{
			{Name: "Dr. Zoe Allen"},
			{Name: "(Acting) Ben Young"},
			{Name: "Lt. Ana Brown"},
		}

		Convey("When sorting by name", func() {
			sorted, err := rank.Sort(records, rank.ByName)

			Convey("Then the prefixes are ignored for collation", func() {
				So(err, ShouldBeNil)
				So(names(sorted), ShouldResemble, []string{"Lt. Ana Brown", "(Acting) Ben Young", "Dr. Zoe Allen"})
			})
		})
	})
}
