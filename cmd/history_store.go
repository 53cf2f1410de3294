package cmd

import (
	"strings"

	"gobill/history"
	"gobill/storage"
)

// openHistory opens the export history at path. An empty path disables
// history and returns a recorder that keeps nothing.
func openHistory(path string) (history.Recorder, func(), error) {
	if strings.TrimSpace(path) == "" {
		return history.Discard{}, func() {}, nil
	}

	store, err := storage.OpenSQLite(path)
	if err != nil {
		return nil, nil, err
	}
	return store, func() { _ = store.Close() }, nil
}

// resolveHistoryDB prefers an explicitly set --db flag over history.db.
func resolveHistoryDB(flagValue string, flagChanged bool, configured string) string {
	if flagChanged {
		return flagValue
	}
	return configured
}
