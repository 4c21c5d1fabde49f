// Package model contains domain models passed between pipeline stages.
package model

// Contact represents one raw point-of-contact row extracted from the
// input CSV. A single input record can yield up to two Contacts (primary
// and secondary contact share the row's location and opportunity fields).
type Contact struct {
	Name       string // raw, uncleaned contact name
	Email      string
	Phone      string
	State      string
	City       string
	Agency     string // awarding agency
	Department string // sub-tier / department owning the opportunity
	Title      string // opportunity title
}

// POC is the aggregated record for one unique point of contact.
// Contact fields hold the values chosen by the aggregator's field policy;
// Departments has set semantics and Titles reflects the configured
// duplicate handling. Both preserve first-insertion order.
type POC struct {
	Name             string // display-cased name
	Email            string
	Phone            string
	State            string
	City             string
	Agency           string
	OpportunityCount int
	Departments      []string
	Titles           []string
}
