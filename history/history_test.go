package history

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"gobill/billing"

	"github.com/shopspring/decimal"
)

func TestNewRecord_SummarizesSheet(t *testing.T) {
	t.Parallel()

	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	sheet := billing.FromEntries("Acme", []billing.Entry{
		{Title: "A", Duration: "10", Price: "3"},
		{Title: "B", Duration: "5", Price: "4"},
	})

	record := NewRecord(sheet, "excel", SurfaceWeb, at)
	if record.ProjectTitle != "Acme" || record.EntryCount != 2 || record.Format != "excel" || record.Surface != SurfaceWeb {
		t.Fatalf("unexpected record: %+v", record)
	}
	if !record.GrandTotal.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("expected grand total 50, got %s", record.GrandTotal)
	}
	if !record.ExportedAt.Equal(at) {
		t.Fatalf("unexpected timestamp %s", record.ExportedAt)
	}
}

func TestDiscard_RecordsNothing(t *testing.T) {
	t.Parallel()

	id, err := Discard{}.RecordExport(Record{})
	if err != nil || id != 0 {
		t.Fatalf("expected zero id and nil error, got %d, %v", id, err)
	}
}

type failingRecorder struct{}

func (failingRecorder) RecordExport(Record) (int64, error) {
	return 0, errors.New("database is locked")
}

func TestSave(t *testing.T) {
	t.Parallel()

	var warn bytes.Buffer
	if err := Save(Discard{}, Record{}, &warn); err != nil || warn.Len() != 0 {
		t.Fatalf("expected silent success, got err=%v warn=%q", err, warn.String())
	}

	err := Save(failingRecorder{}, Record{}, &warn)
	if err == nil {
		t.Fatalf("expected recorder error to be returned")
	}
	if warn.String() != "Warning: failed to record export history: database is locked\n" {
		t.Fatalf("unexpected warning %q", warn.String())
	}

	if err := Save(failingRecorder{}, Record{}, nil); err == nil {
		t.Fatalf("expected error without warn writer")
	}
}
