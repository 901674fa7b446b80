package pipeline

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"ddlint/internal/config"
	"ddlint/internal/logging"
)

// Conventional file names inside a project folder.
const (
	DictFileName = "dictionary.csv"
	DataFileName = "dataset.csv"
	GoldFileName = "gold.json"
)

// BatchResult is the outcome of one project folder inside a batch.
type BatchResult struct {
	Dir    string
	Result *Result
	Err    error
	// HasGold marks folders carrying seeded ground truth; those are
	// expected to be dirty and are exempt from the clean gate.
	HasGold bool
}

// CleanViolation reports whether this folder trips the clean gate: error
// findings in a folder that carries no gold truth.
func (b BatchResult) CleanViolation() bool {
	return b.Err == nil && !b.HasGold && b.Result.Report.HasErrors()
}

// Batch discovers project folders under root (any folder holding both a
// dictionary.csv and a dataset.csv) and validates each. One failing
// project does not stop the rest.
func Batch(ctx context.Context, root string, cfg config.Config) ([]BatchResult, error) {
	dirs, err := discoverProjects(root)
	if err != nil {
		return nil, err
	}
	if len(dirs) == 0 {
		return nil, fmt.Errorf("pipeline: no project folders under %q", root)
	}
	logger := logging.New("batch")

	out := make([]BatchResult, 0, len(dirs))
	for _, dir := range dirs {
		br := BatchResult{Dir: dir, HasGold: fileExists(filepath.Join(dir, GoldFileName))}
		br.Result, br.Err = Run(ctx, Input{
			DictPath: filepath.Join(dir, DictFileName),
			DataPath: filepath.Join(dir, DataFileName),
		}, cfg)
		if br.Err != nil {
			logger.Error("project failed", "dir", dir, "error", br.Err)
		}
		out = append(out, br)
	}
	return out, nil
}

func discoverProjects(root string) ([]string, error) {
	var dirs []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if fileExists(filepath.Join(path, DictFileName)) && fileExists(filepath.Join(path, DataFileName)) {
			dirs = append(dirs, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("pipeline: walk %q: %w", root, err)
	}
	sort.Strings(dirs)
	return dirs, nil
}

func fileExists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}
