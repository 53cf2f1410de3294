package web

import (
	"gobill/billing"
)

// EntryRow is one editable entry as shown on the page. LineTotal is a
// preview of the exported total-cost cell.
type EntryRow struct {
	Index     int    `json:"index"`
	Title     string `json:"title"`
	Duration  string `json:"duration"`
	Price     string `json:"price"`
	LineTotal string `json:"lineTotal"`
}

// SheetView is the page state returned by every API call.
type SheetView struct {
	SessionID    string     `json:"sessionId"`
	ProjectTitle string     `json:"projectTitle"`
	Entries      []EntryRow `json:"entries"`
	GrandTotal   string     `json:"grandTotal"`
}

func BuildSheetView(sessionID string, sheet billing.Sheet) SheetView {
	entries := sheet.Entries()
	rows := make([]EntryRow, 0, len(entries))
	for i, entry := range entries {
		rows = append(rows, EntryRow{
			Index:     i,
			Title:     entry.Title,
			Duration:  entry.Duration,
			Price:     entry.Price,
			LineTotal: billing.LineTotal(entry).StringFixed(2),
		})
	}

	return SheetView{
		SessionID:    sessionID,
		ProjectTitle: sheet.ProjectTitle(),
		Entries:      rows,
		GrandTotal:   billing.GrandTotal(entries).StringFixed(2),
	}
}
