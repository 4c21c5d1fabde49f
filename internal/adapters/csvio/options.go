package csvio

// ReaderOption applies a configuration option to the Reader.
type ReaderOption func(*Reader)

// WithColumns overrides the input header names.
func WithColumns(c Columns) ReaderOption {
	return func(r *Reader) {
		r.columns = c
	}
}

// WriterOption applies a configuration option to the Writer.
type WriterOption func(*Writer)

// WithListDelimiter overrides the separator for multi-valued output fields.
func WithListDelimiter(delim string) WriterOption {
	return func(w *Writer) {
		if delim != "" {
			w.listDelim = delim
		}
	}
}
