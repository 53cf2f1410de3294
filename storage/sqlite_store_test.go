package storage

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"gobill/billing"
	"gobill/history"

	"github.com/shopspring/decimal"
)

func TestSQLiteStore_RecordAndListExports(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	first := history.NewRecord(
		billing.FromEntries("Acme", []billing.Entry{{Title: "Design", Duration: "120", Price: "2"}}),
		"excel",
		history.SurfaceWeb,
		base,
	)
	second := history.NewRecord(billing.NewSheet().RemoveEntry(0), "csv", history.SurfaceCLI, base.Add(time.Hour))

	firstID, err := store.RecordExport(first)
	if err != nil {
		t.Fatalf("record first export: %v", err)
	}
	secondID, err := store.RecordExport(second)
	if err != nil {
		t.Fatalf("record second export: %v", err)
	}
	if firstID <= 0 || secondID <= firstID {
		t.Fatalf("unexpected ids: %d, %d", firstID, secondID)
	}

	records, err := store.ListExports(0)
	if err != nil {
		t.Fatalf("list exports: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	newest := records[0]
	if newest.ID != secondID || newest.Surface != history.SurfaceCLI || newest.Format != "csv" || newest.EntryCount != 0 {
		t.Fatalf("unexpected newest record: %+v", newest)
	}
	oldest := records[1]
	if oldest.ProjectTitle != "Acme" || oldest.EntryCount != 1 {
		t.Fatalf("unexpected oldest record: %+v", oldest)
	}
	if !oldest.GrandTotal.Equal(decimal.NewFromInt(240)) {
		t.Fatalf("expected grand total 240, got %s", oldest.GrandTotal)
	}
	if !oldest.ExportedAt.Equal(base) {
		t.Fatalf("expected exported_at %s, got %s", base, oldest.ExportedAt)
	}
}

func TestSQLiteStore_ListExportsHonorsLimit(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		record := history.NewRecord(billing.NewSheet(), "excel", history.SurfaceTUI, base.Add(time.Duration(i)*time.Minute))
		if _, err := store.RecordExport(record); err != nil {
			t.Fatalf("record export %d: %v", i, err)
		}
	}

	records, err := store.ListExports(2)
	if err != nil {
		t.Fatalf("list exports: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if !records[0].ExportedAt.Equal(base.Add(4 * time.Minute)) {
		t.Fatalf("expected newest record first, got %s", records[0].ExportedAt)
	}
}

func TestSQLiteStore_DeleteAllExports(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	for i := 0; i < 3; i++ {
		if _, err := store.RecordExport(history.NewRecord(billing.NewSheet(), "excel", history.SurfaceWeb, time.Now())); err != nil {
			t.Fatalf("record export: %v", err)
		}
	}

	deleted, err := store.DeleteAllExports()
	if err != nil {
		t.Fatalf("delete all exports: %v", err)
	}
	if deleted != 3 {
		t.Fatalf("expected 3 deleted rows, got %d", deleted)
	}

	records, err := store.ListExports(0)
	if err != nil {
		t.Fatalf("list exports: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected no records after delete, got %d", len(records))
	}
}

func TestSQLiteStore_ConcurrentRecordExport(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.RecordExport(history.NewRecord(billing.NewSheet(), "excel", history.SurfaceWeb, time.Now()))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatalf("concurrent record export: %v", err)
		}
	}

	records, err := store.ListExports(0)
	if err != nil {
		t.Fatalf("list exports: %v", err)
	}
	if len(records) != 10 {
		t.Fatalf("expected 10 records, got %d", len(records))
	}
}

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	store, err := OpenSQLite(filepath.Join(t.TempDir(), "gobill_test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}
