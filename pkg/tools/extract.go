package tools

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// NotAvailable stands in for any absent or null field.
const NotAvailable = "N/A"

// Shape describes how a tool renders result entries.
type Shape struct {
	// Limit is how many leading entries are rendered; zero renders all.
	Limit int

	// Format is a fmt template with one %s verb per path in Fields.
	Format string

	// Fields are gjson paths relative to one entry, e.g. "road_address.address_name".
	Fields []string

	// Empty is returned when there are no entries.
	Empty string
}

// Extract renders the leading entries of doc, one line per entry.
func Extract(doc Document, shape Shape) string {
	entries := doc.Entries()
	if len(entries) == 0 {
		return shape.Empty
	}

	n := len(entries)
	if shape.Limit > 0 && shape.Limit < n {
		n = shape.Limit
	}

	lines := make([]string, 0, n)
	for _, entry := range entries[:n] {
		lines = append(lines, shape.render(entry))
	}
	return strings.Join(lines, "\n")
}

func (s Shape) render(entry gjson.Result) string {
	args := make([]any, len(s.Fields))
	for i, path := range s.Fields {
		args[i] = leaf(entry, path)
	}
	return fmt.Sprintf(s.Format, args...)
}

// leaf looks path up in entry. A missing value anywhere along the path,
// including a null parent object, yields NotAvailable.
func leaf(entry gjson.Result, path string) string {
	v := entry.Get(path)
	if !v.Exists() || v.Type == gjson.Null {
		return NotAvailable
	}
	return v.String()
}
