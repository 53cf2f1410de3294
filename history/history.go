// Package history describes the audit records kept for produced exports.
// Records never hold entry-list state; they only summarize an artifact.
package history

import (
	"fmt"
	"io"
	"time"

	"gobill/billing"

	"github.com/shopspring/decimal"
)

const (
	SurfaceWeb = "web"
	SurfaceTUI = "tui"
	SurfaceCLI = "cli"
)

type Record struct {
	ID           int64
	ExportedAt   time.Time
	ProjectTitle string
	EntryCount   int
	GrandTotal   decimal.Decimal
	Format       string
	Surface      string
}

// Recorder persists export records. Implementations must be safe for
// concurrent use.
type Recorder interface {
	RecordExport(record Record) (int64, error)
}

// NewRecord summarizes a sheet snapshot that was just exported.
func NewRecord(sheet billing.Sheet, format, surface string, at time.Time) Record {
	return Record{
		ExportedAt:   at,
		ProjectTitle: sheet.ProjectTitle(),
		EntryCount:   sheet.Len(),
		GrandTotal:   billing.GrandTotal(sheet.Entries()),
		Format:       format,
		Surface:      surface,
	}
}

// Save records one export. A failure is written as a warning to warn when
// warn is not nil and returned; the exported artifact stays valid either way.
func Save(recorder Recorder, record Record, warn io.Writer) error {
	if _, err := recorder.RecordExport(record); err != nil {
		if warn != nil {
			fmt.Fprintf(warn, "Warning: failed to record export history: %v\n", err)
		}
		return err
	}
	return nil
}

// Discard is a Recorder that keeps nothing.
type Discard struct{}

func (Discard) RecordExport(Record) (int64, error) {
	return 0, nil
}
