package sheet

import (
	"strings"
)

// NotFound marks a logical field with no resolvable column.
const NotFound = -1

// Field describes how one logical field is located in the feed. Aliases are
// tried in order against the header row; FixedIndex (when >= 0) is the
// fallback for layouts with no usable header. Letter switches the field to
// direct spreadsheet-letter addressing and bypasses fuzzy matching entirely.
type Field struct {
	Name       string
	Aliases    []string
	FixedIndex int
	Letter     string
}

// ColumnIndex converts a spreadsheet column letter to a zero-based index:
// A->0, Z->25, AA->26, AZ->51. Base-26 with 1-indexed letters.
func ColumnIndex(letter string) int {
	letter = strings.ToUpper(strings.TrimSpace(letter))
	if letter == "" {
		return NotFound
	}
	idx := 0
	for i := 0; i < len(letter); i++ {
		c := letter[i]
		if c < 'A' || c > 'Z' {
			return NotFound
		}
		idx = idx*26 + int(c-'A') + 1
	}
	return idx - 1
}

// Columns maps logical field names to column indexes for one header layout.
// It is built once per refresh and reused for every data row.
type Columns map[string]int

func (c Columns) Get(name string) (int, bool) {
	idx, ok := c[name]
	if !ok || idx == NotFound {
		return NotFound, false
	}
	return idx, true
}

// Cell returns the trimmed cell for a logical field, or "" when the field is
// unresolved or the row is too short.
func (c Columns) Cell(row []string, name string) string {
	idx, ok := c.Get(name)
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// Resolve maps every field to a column index against the given header row.
// Fields that cannot be located resolve to NotFound and stay globally absent
// for the whole refresh; that is not an error.
func Resolve(header []string, fields []Field) Columns {
	cols := make(Columns, len(fields))
	for _, f := range fields {
		cols[f.Name] = resolveField(header, f)
	}
	return cols
}

func resolveField(header []string, f Field) int {
	if f.Letter != "" {
		return ColumnIndex(f.Letter)
	}
	for _, alias := range f.Aliases {
		if idx := matchHeader(header, alias); idx != NotFound {
			return idx
		}
	}
	if f.FixedIndex >= 0 {
		return f.FixedIndex
	}
	return NotFound
}

// matchHeader applies the prioritized matching strategy for a single alias:
// exact case-insensitive match first, then bidirectional substring match.
// The first matching header cell wins, so duplicated headers resolve to the
// leftmost occurrence.
func matchHeader(header []string, alias string) int {
	want := strings.ToLower(strings.TrimSpace(alias))
	if want == "" {
		return NotFound
	}
	for i, cell := range header {
		if strings.ToLower(strings.TrimSpace(cell)) == want {
			return i
		}
	}
	for i, cell := range header {
		got := strings.ToLower(strings.TrimSpace(cell))
		if got == "" {
			continue
		}
		if strings.Contains(got, want) || strings.Contains(want, got) {
			return i
		}
	}
	return NotFound
}
