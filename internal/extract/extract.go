package extract

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

var (
	// ErrNotCSV is returned for paths that do not point at a .csv file.
	ErrNotCSV = errors.New("only CSV files are supported for extraction")
	// ErrEmpty is returned when a file parses but contains no usable rows.
	ErrEmpty = errors.New("file has no data")
	// ErrEncoding is returned when every candidate encoding fails.
	ErrEncoding = errors.New("could not decode file with any supported encoding")
)

// Table is a parsed tabular file: a header row plus data rows.
// Rows may be ragged; Field pads missing trailing cells with "".
type Table struct {
	Columns []string
	Rows    [][]string

	index map[string]int
}

// Col returns the index of the named column, or -1.
func (t *Table) Col(name string) int {
	if t.index == nil {
		t.index = make(map[string]int, len(t.Columns))
		for i, c := range t.Columns {
			t.index[c] = i
		}
	}
	if i, ok := t.index[name]; ok {
		return i
	}
	return -1
}

// Field returns the value of the named column in the given row,
// or "" when the column is unknown or the row is short.
func (t *Table) Field(row []string, name string) string {
	i := t.Col(name)
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

// Source reads one historical table. Implementations report missing or
// undecodable files as errors; callers decide whether that is fatal.
type Source interface {
	Read(path string) (*Table, error)
}

// CSVSource reads CSV files from disk, falling back through a chain of
// legacy encodings when the bytes are not valid UTF-8.
type CSVSource struct{}

// Encodings tried after UTF-8, in order.
var fallbackEncodings = []encoding.Encoding{
	charmap.ISO8859_1,
	charmap.Windows1252,
}

func (CSVSource) Read(path string) (*Table, error) {
	if !strings.HasSuffix(path, ".csv") {
		return nil, fmt.Errorf("%w: %s", ErrNotCSV, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmpty, path)
	}

	if !utf8.Valid(data) {
		decoded := false
		for _, enc := range fallbackEncodings {
			out, decErr := enc.NewDecoder().Bytes(data)
			if decErr == nil && utf8.Valid(out) {
				data = out
				decoded = true
				break
			}
		}
		if !decoded {
			return nil, fmt.Errorf("%w: %s", ErrEncoding, path)
		}
	}

	return parse(bytes.NewReader(data), path)
}

func parse(r io.Reader, path string) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: %s", ErrEmpty, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header of %s: %w", path, err)
	}
	if len(header) == 0 {
		return nil, fmt.Errorf("%w: %s has no columns", ErrEmpty, path)
	}

	table := &Table{Columns: header}
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}
