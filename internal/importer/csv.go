package importer

import "strings"

// splitLine splits one CSV line into fields with a single left-to-right scan.
// Fields may be wrapped in double quotes; a doubled quote inside a quoted
// field is a literal quote; commas inside quotes are data. Scraper exports
// routinely quote comma-bearing description fields, so a naive split on
// commas is not an option. Stray quotes never fail the line — the scanner is
// deliberately forgiving where encoding/csv would reject the row.
func splitLine(line string) []string {
	var fields []string
	var cur strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"' && !inQuotes:
			inQuotes = true
		case c == '"' && inQuotes:
			if i+1 < len(line) && line[i+1] == '"' {
				cur.WriteByte('"')
				i++
			} else {
				inQuotes = false
			}
		case c == ',' && !inQuotes:
			fields = append(fields, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	fields = append(fields, cur.String())

	return fields
}

var quoteStripper = strings.NewReplacer(`"`, "", `'`, "")

// normalizeHeader lowercases a header cell, removes quote characters, and
// trims whitespace so column matching is independent of export quoting style.
func normalizeHeader(h string) string {
	return strings.TrimSpace(strings.ToLower(quoteStripper.Replace(h)))
}

// cleanValue trims whitespace and any wrapping quote characters left on a
// field value.
func cleanValue(v string) string {
	v = strings.TrimSpace(v)
	for len(v) > 0 && (v[0] == '"' || v[0] == '\'') {
		v = v[1:]
	}
	for len(v) > 0 && (v[len(v)-1] == '"' || v[len(v)-1] == '\'') {
		v = v[:len(v)-1]
	}
	return strings.TrimSpace(v)
}
