// Package sfc splits component files into markup, logic and style segments.
package sfc

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"bennypowers.dev/i18n-extract/internal/parser"
	"bennypowers.dev/i18n-extract/internal/parser/html"
	"bennypowers.dev/i18n-extract/internal/position"
)

// Segment is a contiguous region of a file handed to one extractor
type Segment struct {
	Content string
	// StartLine is the 1-indexed line of the first content byte
	StartLine int
	// StartCol is the 0-indexed UTF-16 column of the first content byte
	StartCol int
	// Lang is the language the content is read as
	Lang parser.Language
	// Setup marks a <script setup> block
	Setup bool
}

// Descriptor is the result of splitting one file
type Descriptor struct {
	Path          string
	Language      parser.Language
	ComponentName string
	Markup        *Segment
	Logic         *Segment
	Styles        []Segment
	// Notes describe blocks that were present but skipped
	Notes []string
}

// Split divides a file into segments according to its extension
func Split(path string, content []byte) (*Descriptor, error) {
	lang, ok := parser.LanguageForPath(path)
	if !ok {
		return nil, &UnsupportedFileError{File: path}
	}
	d := &Descriptor{
		Path:          path,
		Language:      lang,
		ComponentName: ComponentName(path),
	}
	whole := &Segment{Content: string(content), StartLine: 1, Lang: lang}

	switch {
	case lang == parser.HTML:
		d.Markup = whole
	case lang.IsScript():
		d.Logic = whole
	default:
		if err := d.splitComponent(content); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func (d *Descriptor) splitComponent(content []byte) error {
	p := html.AcquireParser()
	defer html.ReleaseParser(p)

	blocks, err := p.Blocks(content)
	if err != nil {
		return NewSegmentError(d.Path, "component", err.Error())
	}

	index := position.NewIndex(content)
	segment := func(b html.Block, lang parser.Language) *Segment {
		row, col := index.Point(b.Start)
		return &Segment{
			Content:   string(content[b.Start:b.End]),
			StartLine: row + 1,
			StartCol:  col,
			Lang:      lang,
		}
	}

	var classic, setup *Segment
	for _, b := range blocks {
		switch {
		case b.Tag == "template" && b.Kind == html.ElementBlock:
			if d.Markup != nil {
				continue
			}
			if lang, _ := b.Attr("lang"); lang != "" && !strings.EqualFold(lang, "html") {
				d.Notes = append(d.Notes, fmt.Sprintf("template lang %q is not supported", lang))
				continue
			}
			d.Markup = segment(b, parser.HTML)

		case b.Kind == html.ScriptBlock:
			if src, ok := b.Attr("src"); ok {
				d.Notes = append(d.Notes, fmt.Sprintf("external script %q is not scanned", src))
				continue
			}
			lang, _ := b.Attr("lang")
			seg := segment(b, parser.ScriptLanguage(lang))
			if _, ok := b.Attr("setup"); ok {
				seg.Setup = true
				if setup == nil {
					setup = seg
				}
			} else if classic == nil {
				classic = seg
			}

		case b.Kind == html.StyleBlock:
			d.Styles = append(d.Styles, *segment(b, ""))
		}
	}

	switch {
	case classic != nil:
		d.Logic = classic
		if setup != nil {
			d.Notes = append(d.Notes, "<script setup> is ignored because <script> is present")
		}
	case setup != nil:
		d.Logic = setup
	}
	return nil
}

// ComponentName derives a PascalCase component name from a file name,
// e.g. product-list.vue becomes ProductList.
func ComponentName(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	parts := strings.FieldsFunc(base, func(r rune) bool { return r == '-' || r == '_' })
	var b strings.Builder
	for _, part := range parts {
		r, size := utf8.DecodeRuneInString(part)
		b.WriteRune(unicode.ToUpper(r))
		b.WriteString(part[size:])
	}
	return b.String()
}
