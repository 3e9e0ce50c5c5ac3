// Package classify decides whether a piece of source text is human-readable
// text that should be translated.
package classify

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"bennypowers.dev/i18n-extract/internal/collections"
	"bennypowers.dev/i18n-extract/internal/units"
)

// Han covers the CJK Unified Ideographs block U+4E00-U+9FA5.
var Han = &unicode.RangeTable{
	R16: []unicode.Range16{{Lo: 0x4e00, Hi: 0x9fa5, Stride: 1}},
}

var scripts = map[string][]*unicode.RangeTable{
	"han":      {Han},
	"hiragana": {unicode.Hiragana},
	"katakana": {unicode.Katakana},
	"hangul":   {unicode.Hangul},
	"cjk":      {unicode.Han, unicode.Hiragana, unicode.Katakana, unicode.Hangul},
}

// DefaultExcludedAttributes are attribute names whose values are never translated
var DefaultExcludedAttributes = []string{"class", "is"}

var (
	identifierRe     = regexp.MustCompile(`^[a-z][a-zA-Z]*$`)
	urlRe            = regexp.MustCompile(`^https?://`)
	excludedPrefixes = []string{"./", "../", "/", "@", ":", "v-"}
)

// Classifier tests text against target scripts and exclusion rules
type Classifier struct {
	ranges             []*unicode.RangeTable
	excludedAttributes collections.Set[string]
}

// Default returns the classifier for Chinese text with the default excluded attributes
func Default() *Classifier {
	return &Classifier{
		ranges:             []*unicode.RangeTable{Han},
		excludedAttributes: collections.NewSet(DefaultExcludedAttributes...),
	}
}

// New builds a classifier for the named scripts. No scripts means "han".
// A nil attribute list means DefaultExcludedAttributes.
func New(scriptNames []string, excludedAttributes []string) (*Classifier, error) {
	c := Default()
	if excludedAttributes != nil {
		c.excludedAttributes = collections.NewSet(excludedAttributes...)
	}
	if len(scriptNames) == 0 {
		return c, nil
	}
	c.ranges = nil
	for _, name := range scriptNames {
		tables, ok := scripts[strings.ToLower(name)]
		if !ok {
			return nil, fmt.Errorf("unknown script %q", name)
		}
		c.ranges = append(c.ranges, tables...)
	}
	return c, nil
}

// IsTranslatable reports whether text contains at least one rune of a target script
func (c *Classifier) IsTranslatable(text string) bool {
	for _, r := range text {
		if unicode.IsOneOf(c.ranges, r) {
			return true
		}
	}
	return false
}

// ShouldExclude reports whether text looks like code rather than prose,
// or sits in an attribute that is never translated.
func (c *Classifier) ShouldExclude(text string, ctx *units.Context) bool {
	if ctx != nil && ctx.AttributeName != "" && c.ExcludesAttribute(ctx.AttributeName) {
		return true
	}
	for _, p := range excludedPrefixes {
		if strings.HasPrefix(text, p) {
			return true
		}
	}
	if identifierRe.MatchString(text) || urlRe.MatchString(text) {
		return true
	}
	return onlyDigitsAndPunctuation(text)
}

// ExcludesAttribute reports whether values of the named attribute are never translated
func (c *Classifier) ExcludesAttribute(name string) bool {
	return c.excludedAttributes.Has(name)
}

// Accept combines IsTranslatable and ShouldExclude
func (c *Classifier) Accept(text string, ctx *units.Context) bool {
	return c.IsTranslatable(text) && !c.ShouldExclude(text, ctx)
}

func onlyDigitsAndPunctuation(text string) bool {
	if text == "" {
		return false
	}
	for _, r := range text {
		if !unicode.IsSpace(r) && !unicode.IsDigit(r) && !unicode.IsPunct(r) {
			return false
		}
	}
	return true
}
