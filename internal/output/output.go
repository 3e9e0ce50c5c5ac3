// Package output writes extraction results: the JSON manifest, per-locale
// skeleton files and a human readable report.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"bennypowers.dev/i18n-extract/internal/pipeline"
)

// EncodeManifest writes result as indented JSON
func EncodeManifest(w io.Writer, result *pipeline.Result) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// WriteManifest writes result to path, creating parent directories
func WriteManifest(result *pipeline.Result, path string) error {
	var buf bytes.Buffer
	if err := EncodeManifest(&buf, result); err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	return writeFile(path, buf.Bytes())
}

// Locale builds the key to text map for one locale. The source locale is
// prefilled with the extracted text, every other locale is left empty.
func Locale(result *pipeline.Result, locale, source string) map[string]string {
	entries := make(map[string]string, len(result.Texts))
	for _, u := range result.Texts {
		if locale == source {
			entries[u.Key] = u.Text
		} else {
			entries[u.Key] = ""
		}
	}
	return entries
}

// WriteLocales writes <dir>/<locale>.json for each locale and returns the
// paths written. encoding/json sorts map keys, so files are stable.
func WriteLocales(result *pipeline.Result, dir string, locales []string, source string) ([]string, error) {
	paths := make([]string, 0, len(locales))
	for _, locale := range locales {
		data, err := json.MarshalIndent(Locale(result, locale, source), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s: %w", locale, err)
		}
		path := filepath.Join(dir, locale+".json")
		if err := writeFile(path, append(data, '\n')); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // G306: output is meant to be shared
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
