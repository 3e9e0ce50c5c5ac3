// Package pipeline runs a whole extraction: it resolves files, extracts
// each one on a bounded pool of workers and deduplicates the result.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"bennypowers.dev/i18n-extract/internal/classify"
	"bennypowers.dev/i18n-extract/internal/config"
	"bennypowers.dev/i18n-extract/internal/dedup"
	"bennypowers.dev/i18n-extract/internal/extract"
	"bennypowers.dev/i18n-extract/internal/files"
	"bennypowers.dev/i18n-extract/internal/keygen"
	"bennypowers.dev/i18n-extract/internal/log"
	"bennypowers.dev/i18n-extract/internal/parser"
	"bennypowers.dev/i18n-extract/internal/parser/css"
	"bennypowers.dev/i18n-extract/internal/parser/html"
	"bennypowers.dev/i18n-extract/internal/parser/js"
	"bennypowers.dev/i18n-extract/internal/sfc"
	"bennypowers.dev/i18n-extract/internal/units"
	"golang.org/x/sync/errgroup"
)

// Stats summarizes a run
type Stats struct {
	// Total is the number of texts after deduplication
	Total int `json:"total"`
	// Files is the number of files resolved
	Files int `json:"files"`
	// Failed counts files that were unreadable or had a segment skipped
	Failed int `json:"failed"`
	// Raw is the number of texts before deduplication
	Raw int `json:"raw"`
}

// Result is the extraction manifest
type Result struct {
	Namespace  string            `json:"namespace"`
	Texts      []units.Unit      `json:"texts"`
	Duplicates []dedup.Duplicate `json:"duplicates,omitempty"`
	Conflicts  []dedup.Conflict  `json:"conflicts,omitempty"`
	Stats      Stats             `json:"stats"`
	Warnings   []log.Event       `json:"warnings,omitempty"`
}

// Extract scans the files opts selects. Files that fail to read or parse
// are reported as warnings and skipped; only invalid options, an
// unresolvable file list or cancellation fail the run.
func Extract(ctx context.Context, opts config.Options, reporter log.Reporter) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	classifier, err := classify.New(opts.Scripts, opts.ExcludedAttributes)
	if err != nil {
		return nil, err
	}
	hasher, err := keygen.NewHasher(keygen.Algorithm(opts.HashAlgorithm))
	if err != nil {
		return nil, err
	}

	root, err := filepath.Abs(opts.Cwd)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", opts.Cwd, err)
	}
	paths, err := files.Resolve(root, opts.Include, opts.Exclude)
	if err != nil {
		return nil, err
	}

	if reporter == nil {
		reporter = log.Discard
	}
	r := &run{
		root:     root,
		reporter: reporter,
		gen: keygen.Generator{
			Namespace:  opts.Namespace,
			HashLength: opts.HashLength,
			Hasher:     hasher,
		},
	}
	r.extractor = &extract.Extractor{
		Classifier:             classifier,
		Reporter:               r.reporter,
		TranslateFunction:      opts.TranslateFunction,
		SetupTranslateFunction: opts.SetupTranslateFunction,
		Lenient:                opts.Lenient,
	}
	r.reporter.Report(log.Event{Level: log.LevelInfo, Message: fmt.Sprintf("found %d files in %s", len(paths), root)})

	workers := opts.Concurrency
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	results := make([]fileResult, len(paths))
	g := new(errgroup.Group)
	g.SetLimit(workers)
	for i, path := range paths {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			results[i] = r.file(path)
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var all []units.Unit
	var warnings []log.Event
	failed := 0
	for _, fr := range results {
		all = append(all, fr.units...)
		warnings = append(warnings, fr.warnings...)
		if fr.failed {
			failed++
		}
	}
	deduped := dedup.Deduplicate(all)

	texts := deduped.Texts
	if texts == nil {
		texts = []units.Unit{}
	}
	return &Result{
		Namespace:  opts.Namespace,
		Texts:      texts,
		Duplicates: deduped.Duplicates,
		Conflicts:  deduped.Conflicts,
		Stats: Stats{
			Total:  len(texts),
			Files:  len(paths),
			Failed: failed,
			Raw:    deduped.Raw(),
		},
		Warnings: warnings,
	}, nil
}

// run holds what every worker shares. All of it is read-only or safe for
// concurrent use; each file gets its own copy of the extractor.
type run struct {
	root      string
	reporter  log.Reporter
	gen       keygen.Generator
	extractor *extract.Extractor
}

type fileResult struct {
	units    []units.Unit
	failed   bool
	warnings []log.Event
}

// displayPath is path relative to the root when it lies inside it
func (r *run) displayPath(path string) string {
	rel, err := filepath.Rel(r.root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// file extracts one file with its own key registry. Each segment that
// fails contributes no units without affecting the others.
func (r *run) file(path string) fileResult {
	display := r.displayPath(path)
	events := &log.Collector{}
	reporter := log.Tee{events, r.reporter}
	warn := func(err error) {
		reporter.Report(log.Event{Level: log.LevelWarn, File: display, Message: err.Error()})
	}
	res := r.extract(path, display, reporter, warn)
	res.warnings = events.AtLeast(log.LevelWarn)
	return res
}

func (r *run) extract(path, display string, reporter log.Reporter, warn func(error)) fileResult {
	content, err := os.ReadFile(path) //nolint:gosec // G304: path was resolved from the include patterns
	if err != nil {
		warn(fmt.Errorf("failed to read file: %w", err))
		return fileResult{failed: true}
	}
	d, err := sfc.Split(display, content)
	if err != nil {
		warn(err)
		return fileResult{failed: true}
	}
	for _, note := range d.Notes {
		reporter.Report(log.Event{Level: log.LevelWarn, File: display, Message: note})
	}

	f := extract.File{
		Path:          display,
		ComponentName: d.ComponentName,
		Component:     d.Language == parser.Vue,
	}
	x := *r.extractor
	x.Reporter = reporter
	reg := keygen.NewRegistry(r.gen)

	var res fileResult
	if d.Markup != nil {
		us, err := x.Markup(d.Markup, f, reg)
		if err != nil {
			warn(err)
			res.failed = true
		}
		res.units = append(res.units, us...)
	}
	if d.Logic != nil {
		us, err := x.Logic(d.Logic, f, reg)
		if err != nil {
			warn(err)
			res.failed = true
		}
		res.units = append(res.units, us...)
	}
	for i := range d.Styles {
		if _, err := x.Styles(&d.Styles[i], f); err != nil {
			warn(err)
		}
	}
	reporter.Report(log.Event{Level: log.LevelDebug, File: display, Message: fmt.Sprintf("extracted %d texts", len(res.units))})
	return res
}

// Close releases the pooled parsers. Call it once no extraction is running.
func Close() {
	html.ClosePool()
	js.ClosePool()
	css.ClosePool()
}
