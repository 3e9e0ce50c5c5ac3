// Package files resolves include and exclude glob patterns to the list of
// source files a scan reads.
package files

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultExclude skips dependencies, build output and declaration files
var DefaultExclude = []string{
	"**/node_modules/**",
	"**/dist/**",
	"**/*.d.ts",
}

// skipDirs are never descended into
var skipDirs = []string{"node_modules", "bower_components"}

// shouldSkipDirectory reports hidden and dependency directories below the root.
func shouldSkipDirectory(d fs.DirEntry) bool {
	if !d.IsDir() {
		return false
	}
	if strings.HasPrefix(d.Name(), ".") {
		return true
	}
	return slices.Contains(skipDirs, d.Name())
}

// matchesAnyPattern checks if a slash-separated path matches any of the patterns.
func matchesAnyPattern(relPath string, patterns []string) bool {
	for _, pattern := range patterns {
		matched, err := doublestar.Match(pattern, relPath)
		if err == nil && matched {
			return true
		}
	}
	return false
}

// normalizePatterns makes patterns relative to root and slash separated.
// Absolute patterns outside root are reported as errors.
func normalizePatterns(root string, patterns []string) ([]string, error) {
	out := make([]string, 0, len(patterns))
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if filepath.IsAbs(p) {
			base, rest := doublestar.SplitPattern(filepath.ToSlash(p))
			rel, err := filepath.Rel(root, filepath.FromSlash(base))
			if err != nil || strings.HasPrefix(rel, "..") {
				return nil, fmt.Errorf("pattern %q is outside %s", p, root)
			}
			p = filepath.ToSlash(filepath.Join(rel, rest))
		}
		p = strings.TrimPrefix(filepath.ToSlash(p), "./")
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid pattern %q", p)
		}
		out = append(out, p)
	}
	return out, nil
}

// Resolve walks root and returns the absolute paths of files that match an
// include pattern and no exclude pattern, sorted and without duplicates.
// A nil exclude means DefaultExclude.
func Resolve(root string, include, exclude []string) ([]string, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", root, err)
	}
	if exclude == nil {
		exclude = DefaultExclude
	}
	include, err = normalizePatterns(root, include)
	if err != nil {
		return nil, err
	}
	exclude, err = normalizePatterns(root, exclude)
	if err != nil {
		return nil, err
	}

	var found []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil // Skip unreadable entries, continue walking
		}
		if path != root && shouldSkipDirectory(d) {
			return filepath.SkipDir
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if matchesAnyPattern(rel, include) && !matchesAnyPattern(rel, exclude) {
			found = append(found, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	slices.Sort(found)
	return slices.Compact(found), nil
}
