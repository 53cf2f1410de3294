package web

import (
	"errors"
	"testing"
	"time"

	"gobill/billing"
)

func TestSessionStore_EvictsIdleSessions(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	store := newSessionStore(time.Hour, func() time.Time { return now })

	stale, _ := store.create()
	now = now.Add(30 * time.Minute)
	active, _ := store.create()

	now = now.Add(45 * time.Minute)
	if _, err := store.snapshot(active); err != nil {
		t.Fatalf("expected active session to survive: %v", err)
	}
	if _, err := store.snapshot(stale); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected stale session to expire, got %v", err)
	}

	now = now.Add(2 * time.Hour)
	store.create()
	if store.len() != 1 {
		t.Fatalf("expected idle sessions to be evicted on create, got %d", store.len())
	}
}

func TestSessionStore_UpdateReplacesSnapshot(t *testing.T) {
	t.Parallel()

	store := newSessionStore(0, nil)
	id, initial := store.create()

	updated, err := store.update(id, func(sheet billing.Sheet) billing.Sheet {
		return sheet.SetProjectTitle("Acme").AddEntry()
	})
	if err != nil {
		t.Fatalf("update session: %v", err)
	}
	if updated.ProjectTitle() != "Acme" || updated.Len() != 2 {
		t.Fatalf("unexpected updated sheet: title=%q len=%d", updated.ProjectTitle(), updated.Len())
	}
	if initial.ProjectTitle() != "" || initial.Len() != 1 {
		t.Fatalf("earlier snapshot changed: title=%q len=%d", initial.ProjectTitle(), initial.Len())
	}

	if _, err := store.update("missing", func(sheet billing.Sheet) billing.Sheet { return sheet }); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}
