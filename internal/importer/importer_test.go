package importer

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

// TestStateDBRoundTrip verifies that marking a file as imported makes the
// same (path, size, hash) triple report as done, while a changed size or
// hash reads as a fresh file.
func TestStateDBRoundTrip(t *testing.T) {
	state, err := OpenStateDB(t.TempDir())
	if err != nil {
		t.Fatalf("open state db: %v", err)
	}
	defer state.Close()

	done, err := state.IsImported("export/2025-06.json", 100, "abc")
	if err != nil {
		t.Fatalf("IsImported: %v", err)
	}
	if done {
		t.Error("fresh file reported as imported")
	}

	if err := state.MarkImported("export/2025-06.json", 100, "abc"); err != nil {
		t.Fatalf("MarkImported: %v", err)
	}

	done, err = state.IsImported("export/2025-06.json", 100, "abc")
	if err != nil {
		t.Fatalf("IsImported: %v", err)
	}
	if !done {
		t.Error("marked file not reported as imported")
	}

	done, err = state.IsImported("export/2025-06.json", 200, "abc")
	if err != nil {
		t.Fatalf("IsImported: %v", err)
	}
	if done {
		t.Error("re-exported file (new size) reported as imported")
	}
}

// TestHashFile verifies hashing is stable for identical content and differs
// for different content.
func TestHashFile(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.json")
	b := filepath.Join(dir, "b.json")
	if err := os.WriteFile(a, []byte(`[]`), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(b, []byte(`[{"id":1}]`), 0644); err != nil {
		t.Fatal(err)
	}

	ha1, err := HashFile(a)
	if err != nil {
		t.Fatalf("HashFile: %v", err)
	}
	ha2, err := HashFile(a)
	if err != nil {
		t.Fatalf("HashFile: %v", err)
	}
	hb, err := HashFile(b)
	if err != nil {
		t.Fatalf("HashFile: %v", err)
	}

	if ha1 != ha2 {
		t.Error("hash of identical content differs between calls")
	}
	if ha1 == hb {
		t.Error("hash of different content collides")
	}
}

// TestImportDryRun verifies that a dry run counts files without needing a
// database and without marking them in the state DB.
func TestImportDryRun(t *testing.T) {
	exportDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(exportDir, "june.json"), []byte(`[]`), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(exportDir, "notes.txt"), []byte(`ignored`), 0644); err != nil {
		t.Fatal(err)
	}

	state, err := OpenStateDB(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer state.Close()

	imp := New(nil, state, slog.New(slog.DiscardHandler), true)
	stats, err := imp.Import(context.Background(), exportDir, 1)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}

	if stats.FilesProcessed != 1 {
		t.Errorf("processed = %d, want 1 (only .json files)", stats.FilesProcessed)
	}
	if stats.FilesSkipped != 0 || stats.FilesErrored != 0 {
		t.Errorf("skipped/errored = %d/%d, want 0/0", stats.FilesSkipped, stats.FilesErrored)
	}

	// Dry run must not mark anything: a second pass still processes the file.
	imp2 := New(nil, state, slog.New(slog.DiscardHandler), true)
	stats, err = imp2.Import(context.Background(), exportDir, 1)
	if err != nil {
		t.Fatalf("second Import: %v", err)
	}
	if stats.FilesProcessed != 1 {
		t.Errorf("second pass processed = %d, want 1", stats.FilesProcessed)
	}
}

// TestImportSkipsKnownFiles verifies that files already in the state DB are
// skipped before any parsing happens.
func TestImportSkipsKnownFiles(t *testing.T) {
	exportDir := t.TempDir()
	path := filepath.Join(exportDir, "june.json")
	if err := os.WriteFile(path, []byte(`[]`), 0644); err != nil {
		t.Fatal(err)
	}

	state, err := OpenStateDB(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer state.Close()

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	hash, err := HashFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := state.MarkImported("june.json", info.Size(), hash); err != nil {
		t.Fatal(err)
	}

	imp := New(nil, state, slog.New(slog.DiscardHandler), true)
	stats, err := imp.Import(context.Background(), exportDir, 1)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if stats.FilesSkipped != 1 {
		t.Errorf("skipped = %d, want 1", stats.FilesSkipped)
	}
	if stats.FilesProcessed != 0 {
		t.Errorf("processed = %d, want 0", stats.FilesProcessed)
	}
}
