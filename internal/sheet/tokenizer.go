package sheet

import "strings"

// Tokenize splits raw delimited text into rows of string fields.
//
// The feed is a spreadsheet CSV export, so the usual quoting rules apply: a
// field may be wrapped in double quotes, inside which commas and line breaks
// are literal and a doubled quote stands for one literal quote. Unlike
// encoding/csv this never fails: an unterminated quote swallows the rest of
// the input into the open field, which matches how the sheet export degrades.
func Tokenize(text string) [][]string {
	var (
		rows   [][]string
		row    []string
		field  strings.Builder
		quoted bool // current row saw at least one quoted field
	)

	flushField := func() {
		row = append(row, field.String())
		field.Reset()
	}
	flushRow := func() {
		flushField()
		rows = append(rows, row)
		row = nil
		quoted = false
	}

	inQuotes := false
	i := 0
	for i < len(text) {
		c := text[i]
		if inQuotes {
			if c == '"' {
				if i+1 < len(text) && text[i+1] == '"' {
					field.WriteByte('"')
					i += 2
					continue
				}
				inQuotes = false
				i++
				continue
			}
			field.WriteByte(c)
			i++
			continue
		}

		switch c {
		case '"':
			inQuotes = true
			quoted = true
			i++
		case ',':
			flushField()
			i++
		case '\r':
			// only meaningful before \n; otherwise literal
			if i+1 < len(text) && text[i+1] == '\n' {
				flushRow()
				i += 2
			} else {
				field.WriteByte(c)
				i++
			}
		case '\n':
			flushRow()
			i++
		default:
			field.WriteByte(c)
			i++
		}
	}

	// trailing row without a terminator
	if field.Len() > 0 || len(row) > 0 || quoted {
		flushRow()
	}

	return rows
}
