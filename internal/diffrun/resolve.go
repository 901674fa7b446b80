// Package diffrun compares a validation run against the previous one. It
// resolves where the previous findings file lives and emits info-severity
// findings describing what changed between the two runs; it never touches
// the rule engine's own findings.
package diffrun

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"ddlint/internal/config"
)

// FindingsFileName is the canonical report file name inside a run folder.
const FindingsFileName = "findings.json"

// PointerFileName is the marker file holding a relative path to the
// previous findings file or its containing folder.
const PointerFileName = ".prev"

// versionedDirRe matches run folder names carrying a version counter:
// v3, run12, wave2.
var versionedDirRe = regexp.MustCompile(`^(v|run|wave)(\d+)$`)

// Resolve locates the previous findings file for the run rooted at runDir.
// Precedence: explicit configured path, then the .prev pointer file inside
// the run folder, then the versioned folder-name convention. An empty
// result with a nil error means no previous run exists, which is not a
// failure.
func Resolve(runDir string, cfg config.Config) (string, error) {
	mode := cfg.PrevMode
	if mode == "" {
		mode = config.PrevAuto
	}
	if mode == config.PrevOff {
		return "", nil
	}

	if mode == config.PrevAuto || mode == config.PrevExplicit {
		if cfg.PrevPath != "" {
			// Explicit paths are tried as given (working-directory
			// relative) before falling back to the run folder.
			if p := descend(cfg.PrevPath); fileExists(p) {
				return p, nil
			}
			if p := normalize(runDir, cfg.PrevPath); fileExists(p) {
				return p, nil
			}
			return "", fmt.Errorf("diffrun: configured previous findings %q not found", cfg.PrevPath)
		}
		if mode == config.PrevExplicit {
			return "", nil
		}
	}

	if mode == config.PrevAuto || mode == config.PrevPointer {
		p, err := readPointer(runDir)
		if err != nil {
			return "", err
		}
		if p != "" {
			return p, nil
		}
		if mode == config.PrevPointer {
			return "", nil
		}
	}

	return resolveByFolderName(runDir), nil
}

// readPointer consults the .prev marker file. A missing marker is not an
// error; a marker pointing at nothing is.
func readPointer(runDir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(runDir, PointerFileName))
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("diffrun: read pointer: %w", err)
	}
	target := strings.TrimSpace(string(data))
	if target == "" {
		return "", nil
	}
	p := normalize(runDir, target)
	if !fileExists(p) {
		return "", fmt.Errorf("diffrun: pointer target %q not found", target)
	}
	return p, nil
}

// resolveByFolderName maps vN/runN/waveN to its N-1 sibling's findings
// file. Anything that does not pan out resolves to "no previous run".
func resolveByFolderName(runDir string) string {
	abs, err := filepath.Abs(runDir)
	if err != nil {
		return ""
	}
	base := filepath.Base(abs)
	m := versionedDirRe.FindStringSubmatch(base)
	if m == nil {
		return ""
	}
	n, err := strconv.Atoi(m[2])
	if err != nil || n <= 1 {
		return ""
	}
	prev := filepath.Join(filepath.Dir(abs), fmt.Sprintf("%s%d", m[1], n-1), FindingsFileName)
	if !fileExists(prev) {
		return ""
	}
	return prev
}

// normalize resolves a configured or pointer path relative to the run
// folder, and descends into folders to their findings file.
func normalize(runDir, p string) string {
	if !filepath.IsAbs(p) {
		p = filepath.Join(runDir, p)
	}
	return descend(p)
}

// descend maps a folder path to the findings file inside it.
func descend(p string) string {
	if info, err := os.Stat(p); err == nil && info.IsDir() {
		return filepath.Join(p, FindingsFileName)
	}
	return p
}

func fileExists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}
