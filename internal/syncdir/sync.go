/*
Package syncdir mirrors skill collections into an assistant config
directory.

The mirror is a plain copy with delete-on-missing semantics: after a run
the destination tree is an exact replica of the source, except for paths
matched by the configured ignore patterns, which are neither copied nor
deleted.
*/
package syncdir

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// Stats summarizes one mirror run.
type Stats struct {
	Copied  int
	Deleted int
	Ignored int
}

// Run mirrors src into dst. Files whose collection-relative path matches
// an ignore pattern are left untouched on both sides. A missing source
// tree simply empties the destination.
func Run(src, dst string, ignore []string) (*Stats, error) {
	stats := &Stats{}

	srcFiles, err := collectFiles(src, ignore, stats)
	if err != nil {
		return nil, err
	}

	// Copy phase: replicate every source file whose content differs.
	for _, rel := range sortedKeys(srcFiles) {
		target := filepath.Join(dst, rel)
		if same, err := sameContent(filepath.Join(src, rel), target); err != nil {
			return nil, err
		} else if same {
			continue
		}
		if err := copyFile(filepath.Join(src, rel), target); err != nil {
			return nil, err
		}
		stats.Copied++
	}

	// Delete phase: drop destination files the source no longer has.
	dstFiles, err := collectFiles(dst, ignore, &Stats{})
	if err != nil {
		return nil, err
	}
	for _, rel := range sortedKeys(dstFiles) {
		if _, ok := srcFiles[rel]; ok {
			continue
		}
		if err := os.Remove(filepath.Join(dst, rel)); err != nil {
			return nil, fmt.Errorf("failed to delete %s: %w", rel, err)
		}
		stats.Deleted++
	}
	removeEmptyDirs(dst)

	return stats, nil
}

// collectFiles walks a tree and returns the set of non-ignored regular
// files, keyed by slash-separated relative path.
func collectFiles(root string, ignore []string, stats *Stats) (map[string]struct{}, error) {
	files := map[string]struct{}{}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) && path == root {
				return filepath.SkipAll
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if ignored(rel, ignore) {
			stats.Ignored++
			return nil
		}
		files[rel] = struct{}{}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}
	return files, nil
}

func ignored(rel string, patterns []string) bool {
	for _, p := range patterns {
		if ok, err := doublestar.Match(p, rel); err == nil && ok {
			return true
		}
	}
	return false
}

func sameContent(a, b string) (bool, error) {
	da, err := os.ReadFile(a)
	if err != nil {
		return false, err
	}
	db, err := os.ReadFile(b)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return bytes.Equal(da, db), nil
}

func copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(dst), err)
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", src, err)
	}
	if err := os.WriteFile(dst, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", dst, err)
	}
	return nil
}

// removeEmptyDirs prunes directories the delete phase emptied. Best
// effort; a non-empty directory just stays.
func removeEmptyDirs(root string) {
	var dirs []string
	filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err == nil && d.IsDir() && path != root {
			dirs = append(dirs, path)
		}
		return nil
	})
	// Deepest first.
	sort.Slice(dirs, func(i, j int) bool { return len(dirs[i]) > len(dirs[j]) })
	for _, dir := range dirs {
		os.Remove(dir)
	}
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
