// Package csvio adapts opportunity-contract CSV files to domain rows.
package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/opptrack/pocsift/internal/domain/model"
	"github.com/opptrack/pocsift/internal/domain/normalize"
)

// Columns names the input headers the reader extracts. Matching is
// case-insensitive. The defaults mirror the opportunity-contract export
// this tool was built for.
type Columns struct {
	PrimaryName    string
	PrimaryEmail   string
	PrimaryPhone   string
	SecondaryName  string
	SecondaryEmail string
	SecondaryPhone string
	State          string
	City           string
	Agency         string
	Department     string
	Title          string
}

// DefaultColumns returns the standard opportunity-contract export headers.
func DefaultColumns() Columns {
	return Columns{
		PrimaryName:    "primary_contact_full_name",
		PrimaryEmail:   "primary_contact_email",
		PrimaryPhone:   "primary_contact_phone",
		SecondaryName:  "secondary_contact_full_name",
		SecondaryEmail: "secondary_contact_email",
		SecondaryPhone: "secondary_contact_phone",
		State:          "State",
		City:           "City",
		Agency:         "agency",
		Department:     "sub_tier",
		Title:          "title",
	}
}

// Reader extracts Contact rows from an opportunity-contract CSV. One input
// record yields up to two Contacts: the primary contact and, when present,
// the secondary contact sharing the record's location and opportunity
// fields. Records without a usable name column are skipped silently.
type Reader struct {
	columns Columns
}

// NewReader creates a Reader with configuration options.
func NewReader(opts ...ReaderOption) *Reader {
	r := &Reader{
		columns: DefaultColumns(),
	}

	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ReadAll parses the whole input. Malformed CSV or a header missing the
// primary name column aborts the read; per-row field gaps do not.
func (r *Reader) ReadAll(src io.Reader) ([]model.Contact, error) {
	cr := csv.NewReader(src)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty input", ErrMissingHeader)
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx := headerIndex(header)
	if _, ok := col(idx, r.columns.PrimaryName); !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingHeader, r.columns.PrimaryName)
	}

	var rows []model.Contact
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}
		rows = append(rows, r.contacts(idx, record)...)
	}
	return rows, nil
}

// contacts extracts the primary and optional secondary contact of a record.
func (r *Reader) contacts(idx map[string]int, record []string) []model.Contact {
	field := func(name string) string {
		i, ok := col(idx, name)
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	shared := model.Contact{
		State:      field(r.columns.State),
		City:       field(r.columns.City),
		Agency:     field(r.columns.Agency),
		Department: field(r.columns.Department),
		Title:      field(r.columns.Title),
	}

	var out []model.Contact
	if c, ok := contact(shared, field(r.columns.PrimaryName), field(r.columns.PrimaryEmail), field(r.columns.PrimaryPhone)); ok {
		out = append(out, c)
	}
	if c, ok := contact(shared, field(r.columns.SecondaryName), field(r.columns.SecondaryEmail), field(r.columns.SecondaryPhone)); ok {
		out = append(out, c)
	}
	return out
}

// contact builds one Contact from name/email/phone plus the shared row
// fields. A telephone entry mis-filed in the name column backfills an empty
// phone field; the name itself is left for the normalizer to reject.
func contact(shared model.Contact, name, email, phone string) (model.Contact, bool) {
	if name == "" {
		return model.Contact{}, false
	}
	if digits, ok := normalize.TelephoneDigits(name); ok && phone == "" {
		phone = digits
	}

	c := shared
	c.Name = name
	c.Email = email
	c.Phone = phone
	return c, true
}

func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return idx
}

func col(idx map[string]int, name string) (int, bool) {
	i, ok := idx[strings.ToLower(name)]
	return i, ok
}
