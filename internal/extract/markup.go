package extract

import (
	stdhtml "html"
	"strings"
	"unicode"

	"bennypowers.dev/i18n-extract/internal/keygen"
	"bennypowers.dev/i18n-extract/internal/log"
	"bennypowers.dev/i18n-extract/internal/parser"
	"bennypowers.dev/i18n-extract/internal/parser/html"
	"bennypowers.dev/i18n-extract/internal/sfc"
	"bennypowers.dev/i18n-extract/internal/units"
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// Markup extracts text units from a markup segment: static text between
// tags, static attribute values, and text inside bound expressions.
func (x *Extractor) Markup(seg *sfc.Segment, f File, reg *keygen.Registry) ([]units.Unit, error) {
	src := []byte(seg.Content)
	masked, spans := html.Mask(src)

	p := html.AcquireParser()
	defer html.ReleaseParser(p)

	tree, err := p.Parse(masked)
	if err != nil {
		return nil, sfc.NewSegmentError(f.Path, "markup", err.Error())
	}
	defer tree.Close()

	root := tree.RootNode()
	if err := parser.CheckTree(root, masked); err != nil {
		if !x.Lenient {
			return nil, sfc.NewSegmentError(f.Path, "markup", err.Error())
		}
		x.report(log.LevelWarn, f.Path, "markup segment has syntax errors, extracting valid parts: %v", err)
	}

	m := &markupWalker{
		x:     x,
		file:  f,
		seg:   seg,
		src:   src,
		loc:   newLocator(f.Path, seg, src),
		spans: spans,
	}
	m.walk(root, "")
	for _, span := range spans {
		m.interpolation(root, span)
	}
	return finalize(m.cands, reg), nil
}

type markupWalker struct {
	x     *Extractor
	file  File
	seg   *sfc.Segment
	src   []byte
	loc   locator
	spans []html.Interpolation
	cands []candidate
}

func (m *markupWalker) context(parentTag, attribute string) units.Context {
	return units.Context{
		ComponentName: m.file.ComponentName,
		ComponentPath: m.file.Path,
		ParentTag:     parentTag,
		AttributeName: attribute,
	}
}

// walk visits the children of n. Adjacent text and entity nodes form one
// run of text.
func (m *markupWalker) walk(n *sitter.Node, parentTag string) {
	var run []*sitter.Node
	for i := uint(0); i < n.ChildCount(); i++ {
		c := n.Child(i)
		switch c.Kind() {
		case "text", "entity":
			run = append(run, c)
			continue
		}
		m.text(run, parentTag)
		run = nil

		switch c.Kind() {
		case "element":
			tag := html.TagName(c, m.src)
			if start := html.StartTag(c); start != nil {
				m.attributes(start, tag)
			}
			m.walk(c, tag)
		case "ERROR":
			m.walk(c, parentTag)
		}
	}
	m.text(run, parentTag)
}

// text splits a run at interpolations and emits each static piece
func (m *markupWalker) text(run []*sitter.Node, parentTag string) {
	if len(run) == 0 {
		return
	}
	start, end := int(run[0].StartByte()), int(run[len(run)-1].EndByte())
	cursor := start
	for _, s := range m.spans {
		if s.End <= cursor || s.Start >= end {
			continue
		}
		m.piece(cursor, s.Start, parentTag)
		cursor = s.End
	}
	m.piece(cursor, end, parentTag)
}

func (m *markupWalker) piece(from, to int, parentTag string) {
	if to <= from {
		return
	}
	raw := string(m.src[from:to])
	text := normalizeText(raw)
	if text == "" {
		return
	}
	ctx := m.context(parentTag, "")
	if !m.x.Classifier.Accept(text, &ctx) {
		return
	}
	offset := from + leadingSpace(raw)
	fn := m.x.translateFunction()
	m.cands = append(m.cands, candidate{
		offset: offset,
		unit: units.Unit{
			Text:     text,
			Type:     units.TextNode,
			Location: m.loc.at(offset),
			Context:  ctx,
		},
		replace: func(key string) units.Replacement {
			return units.Replacement{Markup: "{{ " + call(fn, key, nil) + " }}"}
		},
	})
}

func (m *markupWalker) attributes(start *sitter.Node, tag string) {
	for i := uint(0); i < start.ChildCount(); i++ {
		c := start.Child(i)
		if c.Kind() != "attribute" {
			continue
		}
		attr := html.ReadAttribute(c, m.src)
		if name, ok := boundName(attr.Name); ok {
			m.binding(attr, name, tag)
			continue
		}
		if isDirective(attr.Name) || !attr.HasValue {
			continue
		}
		text := strings.TrimSpace(stdhtml.UnescapeString(attr.Value))
		ctx := m.context(tag, attr.Name)
		if !m.x.Classifier.Accept(text, &ctx) {
			continue
		}
		name := attr.Name
		fn := m.x.translateFunction()
		offset := int(c.StartByte())
		m.cands = append(m.cands, candidate{
			offset: offset,
			unit: units.Unit{
				Text:     text,
				Type:     units.Attribute,
				Location: m.loc.at(offset),
				Context:  ctx,
			},
			replace: func(key string) units.Replacement {
				return units.Replacement{Markup: ":" + name + `="` + call(fn, key, nil) + `"`}
			},
		})
	}
}

// boundName returns the attribute a v-bind directive binds, without modifiers
func boundName(attr string) (string, bool) {
	var name string
	switch {
	case strings.HasPrefix(attr, "v-bind:"):
		name = attr[len("v-bind:"):]
	case strings.HasPrefix(attr, ":"):
		name = attr[1:]
	default:
		return "", false
	}
	name, _, _ = strings.Cut(name, ".")
	if name == "" || strings.HasPrefix(name, "[") {
		return "", false
	}
	return name, true
}

func isDirective(attr string) bool {
	return strings.HasPrefix(attr, "v-") || strings.HasPrefix(attr, "@") || strings.HasPrefix(attr, "#")
}

func (m *markupWalker) binding(attr html.Attribute, name, tag string) {
	if !attr.HasValue || m.x.Classifier.ExcludesAttribute(name) {
		return
	}
	m.expression(attr.ValueStart, attr.ValueEnd, &binding{ParentTag: tag, AttributeName: name})
}

func (m *markupWalker) interpolation(root *sitter.Node, span html.Interpolation) {
	var tag string
	for n := root.DescendantForByteRange(uint(span.Start), uint(span.End)); n != nil; n = n.Parent() {
		if n.Kind() == "element" {
			tag = html.TagName(n, m.src)
			break
		}
	}
	m.expression(span.ExprStart, span.ExprEnd, &binding{ParentTag: tag})
}

// expression runs the logic walker over a markup expression. The expression
// is parenthesized so object literals read as expressions; the wrapping
// segment starts one column early to keep locations exact.
func (m *markupWalker) expression(from, to int, b *binding) {
	expr := string(m.src[from:to])
	if strings.TrimSpace(expr) == "" {
		return
	}
	loc := m.loc.at(from)
	wrapped := &sfc.Segment{
		Content:   "(" + expr + ")",
		StartLine: loc.Line,
		StartCol:  loc.Column - 2,
		Lang:      parser.JavaScript,
	}
	cands, err := m.x.logic(wrapped, m.file, b)
	if err != nil {
		m.x.report(log.LevelDebug, m.file.Path, "skipping expression at %d:%d: %v", loc.Line, loc.Column, err)
		return
	}
	for _, c := range cands {
		c.offset += from - 1
		m.cands = append(m.cands, c)
	}
}

// normalizeText decodes character references, trims, and condenses runs of
// markup whitespace into one space
func normalizeText(raw string) string {
	text := strings.TrimSpace(stdhtml.UnescapeString(raw))
	var b strings.Builder
	space := false
	for _, r := range text {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\f' {
			space = true
			continue
		}
		if space {
			b.WriteByte(' ')
			space = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

func leadingSpace(raw string) int {
	return len(raw) - len(strings.TrimLeftFunc(raw, unicode.IsSpace))
}
