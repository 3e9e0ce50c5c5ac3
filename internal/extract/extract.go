// Package extract finds translatable text in markup, logic and style
// segments and turns each occurrence into a parameterized text unit.
package extract

import (
	"cmp"
	"fmt"
	"slices"

	"bennypowers.dev/i18n-extract/internal/classify"
	"bennypowers.dev/i18n-extract/internal/keygen"
	"bennypowers.dev/i18n-extract/internal/log"
	"bennypowers.dev/i18n-extract/internal/position"
	"bennypowers.dev/i18n-extract/internal/sfc"
	"bennypowers.dev/i18n-extract/internal/units"
)

const (
	// DefaultTranslateFunction is called in markup and Options-API scripts
	DefaultTranslateFunction = "$t"
	// DefaultSetupTranslateFunction is called in setup scripts and plain modules
	DefaultSetupTranslateFunction = "t"
)

// Extractor turns segments into text units
type Extractor struct {
	Classifier             *classify.Classifier
	Reporter               log.Reporter
	TranslateFunction      string
	SetupTranslateFunction string
	// Lenient extracts the valid parts of segments with syntax errors
	// instead of skipping them.
	Lenient bool
}

// New returns an extractor with the default classifier and translate functions
func New() *Extractor {
	return &Extractor{
		Classifier:             classify.Default(),
		Reporter:               log.Discard,
		TranslateFunction:      DefaultTranslateFunction,
		SetupTranslateFunction: DefaultSetupTranslateFunction,
	}
}

// File identifies the file a segment came from
type File struct {
	// Path is reported in unit locations and contexts
	Path          string
	ComponentName string
	// Component marks a single-file component, whose classic scripts
	// reach the translate function through this
	Component bool
}

func (x *Extractor) report(level log.Level, file, format string, args ...any) {
	if x.Reporter == nil {
		return
	}
	x.Reporter.Report(log.Event{Level: level, File: file, Message: fmt.Sprintf(format, args...)})
}

func (x *Extractor) translateFunction() string {
	return cmp.Or(x.TranslateFunction, DefaultTranslateFunction)
}

func (x *Extractor) setupTranslateFunction() string {
	return cmp.Or(x.SetupTranslateFunction, DefaultSetupTranslateFunction)
}

// candidate is a unit waiting for its key. Keys are assigned in source
// order once a segment has been walked completely.
type candidate struct {
	offset  int
	unit    units.Unit
	replace func(key string) units.Replacement
}

// finalize orders candidates by source offset and assigns their keys
func finalize(cands []candidate, reg *keygen.Registry) []units.Unit {
	slices.SortStableFunc(cands, func(a, b candidate) int {
		return cmp.Compare(a.offset, b.offset)
	})
	out := make([]units.Unit, 0, len(cands))
	for _, c := range cands {
		u := c.unit
		u.Key = reg.Assign(u.Text)
		if c.replace != nil {
			u.Replacement = c.replace(u.Key)
		}
		if u.Params == nil {
			u.Params = []units.Param{}
		}
		out = append(out, u)
	}
	return out
}

// locator maps byte offsets of a segment to locations in the original file
type locator struct {
	file  string
	seg   *sfc.Segment
	index *position.Index
}

func newLocator(file string, seg *sfc.Segment, src []byte) locator {
	return locator{file: file, seg: seg, index: position.NewIndex(src)}
}

func (l locator) at(offset int) units.Location {
	row, col := l.index.Point(offset)
	if row == 0 {
		col += l.seg.StartCol
	}
	return units.Location{
		File:   l.file,
		Line:   l.seg.StartLine + row,
		Column: col + 1,
	}
}
