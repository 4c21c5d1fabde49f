package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/opptrack/pocsift/internal/domain/model"
)

// ListDelimiter joins multi-valued output fields (departments, titles).
const ListDelimiter = "; "

// outputHeader is the stable column order of the summary CSV.
var outputHeader = []string{
	"name",
	"email",
	"phone",
	"state",
	"city",
	"agency",
	"opportunity_count",
	"departments",
	"opportunity_titles",
}

// Writer serializes sorted POC records to CSV.
type Writer struct {
	listDelim string
}

// NewWriter creates a Writer with configuration options.
func NewWriter(opts ...WriterOption) *Writer {
	w := &Writer{
		listDelim: ListDelimiter,
	}

	for _, opt := range opts {
		opt(w)
	}
	return w
}

// WriteAll writes the header and one row per record, in the order given.
func (w *Writer) WriteAll(dst io.Writer, records []*model.POC) error {
	cw := csv.NewWriter(dst)

	if err := cw.Write(outputHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, p := range records {
		row := []string{
			p.Name,
			p.Email,
			p.Phone,
			p.State,
			p.City,
			p.Agency,
			strconv.Itoa(p.OpportunityCount),
			strings.Join(p.Departments, w.listDelim),
			strings.Join(p.Titles, w.listDelim),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write record %q: %w", p.Name, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}
	return nil
}
