package importer

import (
	"strings"

	"gobill/billing"
	"gobill/output"
)

// EntryMapper turns one source record into a billing entry. Values are kept
// as raw text; numeric coercion happens at export time.
type EntryMapper struct{}

func (m *EntryMapper) Map(record Record) (billing.Entry, bool) {
	entry := billing.Entry{
		Title:    record.Get("title", "description", "task", "item"),
		Duration: record.Get("duration", "minutes", "durationminutes", "dauer"),
		Price:    record.Get("price", "rate", "unitprice", "preis"),
	}
	if entry == (billing.Entry{}) || isTotalRow(entry) {
		return billing.Entry{}, false
	}
	return entry, true
}

// isTotalRow matches the closing row of a billing export.
func isTotalRow(entry billing.Entry) bool {
	return entry.Title == "" && entry.Duration == "" && strings.EqualFold(entry.Price, output.TotalLabel)
}
