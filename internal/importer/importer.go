package importer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/shanebarringer/ultracoach-sub004/internal/ingest"
)

// Stats tracks import progress across an export directory.
type Stats struct {
	FilesProcessed int
	FilesSkipped   int
	FilesErrored   int

	ActivitiesReceived int
	ActivitiesInserted int64
	ActivitiesSkipped  int64
	ActivitiesRejected int

	RejectedReasons []string
}

// Importer reads fitness-service export files (JSON arrays of activities)
// from a directory and inserts their contents through the ingest provider.
type Importer struct {
	provider *ingest.Provider
	state    *StateDB
	log      *slog.Logger
	dryRun   bool
	stats    Stats
}

// New creates a new Importer. A nil state database disables skip tracking.
func New(provider *ingest.Provider, state *StateDB, log *slog.Logger, dryRun bool) *Importer {
	return &Importer{provider: provider, state: state, log: log, dryRun: dryRun}
}

// Import processes all .json files under the given export directory, in
// path order, skipping files the state database already knows.
func (imp *Importer) Import(ctx context.Context, exportDir string, athleteID int64) (*Stats, error) {
	var files []string
	err := filepath.WalkDir(exportDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(strings.ToLower(d.Name()), ".json") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return &imp.stats, fmt.Errorf("walking export dir: %w", err)
	}
	sort.Strings(files)

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return &imp.stats, err
		}
		if err := imp.importFile(ctx, path, exportDir, athleteID); err != nil {
			imp.stats.FilesErrored++
			imp.log.Error("import file failed", "file", path, "error", err)
		}
	}

	return &imp.stats, nil
}

func (imp *Importer) importFile(ctx context.Context, path, exportDir string, athleteID int64) error {
	relPath, err := filepath.Rel(exportDir, path)
	if err != nil {
		relPath = path
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat: %w", err)
	}
	hash, err := HashFile(path)
	if err != nil {
		return fmt.Errorf("hashing: %w", err)
	}

	if imp.state != nil {
		done, err := imp.state.IsImported(relPath, info.Size(), hash)
		if err != nil {
			return fmt.Errorf("checking state: %w", err)
		}
		if done {
			imp.stats.FilesSkipped++
			return nil
		}
	}

	if imp.dryRun {
		imp.log.Info("dry run: would import", "file", relPath)
		imp.stats.FilesProcessed++
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening: %w", err)
	}
	defer f.Close()

	result, err := imp.provider.Ingest(ctx, f, athleteID)
	if err != nil {
		return fmt.Errorf("ingesting: %w", err)
	}

	imp.stats.FilesProcessed++
	imp.stats.ActivitiesReceived += result.ActivitiesReceived
	imp.stats.ActivitiesInserted += result.ActivitiesInserted
	imp.stats.ActivitiesSkipped += result.ActivitiesSkipped
	imp.stats.ActivitiesRejected += result.ActivitiesRejected
	imp.stats.RejectedReasons = append(imp.stats.RejectedReasons, result.RejectedReasons...)

	if imp.state != nil {
		if err := imp.state.MarkImported(relPath, info.Size(), hash); err != nil {
			return fmt.Errorf("recording state: %w", err)
		}
	}

	imp.log.Info("imported file",
		"file", relPath,
		"received", result.ActivitiesReceived,
		"inserted", result.ActivitiesInserted,
	)
	return nil
}
