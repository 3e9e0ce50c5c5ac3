package html

import (
	"fmt"
	"strings"
	"sync"

	"bennypowers.dev/i18n-extract/internal/parser"
	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_html "github.com/tree-sitter/tree-sitter-html/bindings/go"
)

// Parser reads markup with tree-sitter-html
type Parser struct {
	parser *sitter.Parser
}

var htmlLang = sitter.NewLanguage(tree_sitter_html.Language())

// parserPool is a pool of reusable HTML parsers
var parserPool = sync.Pool{
	New: func() any {
		parser := sitter.NewParser()
		if err := parser.SetLanguage(htmlLang); err != nil {
			panic(fmt.Sprintf("failed to set HTML language: %v", err))
		}
		return &Parser{parser: parser}
	},
}

// AcquireParser gets a parser from the pool
func AcquireParser() *Parser {
	p := parserPool.Get().(*Parser)
	p.parser.Reset()
	return p
}

// ReleaseParser returns a parser to the pool
func ReleaseParser(p *Parser) {
	if p != nil {
		parserPool.Put(p)
	}
}

// Close closes the parser and releases its resources
func (p *Parser) Close() {
	if p.parser != nil {
		p.parser.Close()
	}
}

// ClosePool closes all parsers in the pool
func ClosePool() {
	for range 100 {
		if p, ok := parserPool.Get().(*Parser); ok && p != nil {
			p.Close()
		}
	}
}

// Parse parses source. The caller closes the returned tree.
func (p *Parser) Parse(source []byte) (*sitter.Tree, error) {
	tree := p.parser.Parse(source, nil)
	if tree == nil {
		return nil, parser.ErrNoTree
	}
	return tree, nil
}

// Blocks returns the top-level elements of a component file in source order.
// Interpolations are masked before parsing so template expressions cannot
// derail the document structure; offsets refer to source.
func (p *Parser) Blocks(source []byte) ([]Block, error) {
	masked, _ := Mask(source)
	tree, err := p.Parse(masked)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	root := tree.RootNode()
	var blocks []Block
	for i := uint(0); i < root.ChildCount(); i++ {
		child := root.Child(i)
		if child.IsError() || child.IsMissing() {
			return nil, parser.CheckTree(child, masked)
		}
		var kind BlockKind
		switch child.Kind() {
		case "element":
			kind = ElementBlock
		case "script_element":
			kind = ScriptBlock
		case "style_element":
			kind = StyleBlock
		default:
			continue
		}
		start := StartTag(child)
		if start == nil {
			continue
		}
		block := Block{
			Tag:   strings.ToLower(TagName(child, masked)),
			Kind:  kind,
			Attrs: map[string]string{},
		}
		for j := uint(0); j < start.ChildCount(); j++ {
			if c := start.Child(j); c.Kind() == "attribute" {
				attr := ReadAttribute(c, source)
				block.Attrs[attr.Name] = attr.Value
			}
		}
		block.Start, block.End = contentRange(child, start)
		blocks = append(blocks, block)
	}
	return blocks, nil
}

// contentRange returns the byte range between the start tag and the end tag
func contentRange(element, start *sitter.Node) (int, int) {
	if start.Kind() == "self_closing_tag" {
		return int(start.EndByte()), int(start.EndByte())
	}
	begin := int(start.EndByte())
	end := int(element.EndByte())
	for i := element.ChildCount(); i > 0; i-- {
		if c := element.Child(i - 1); c.Kind() == "end_tag" {
			end = int(c.StartByte())
			break
		}
	}
	if end < begin {
		end = begin
	}
	return begin, end
}

// StartTag returns the start_tag or self_closing_tag child of an element
func StartTag(element *sitter.Node) *sitter.Node {
	for i := uint(0); i < element.ChildCount(); i++ {
		c := element.Child(i)
		if k := c.Kind(); k == "start_tag" || k == "self_closing_tag" {
			return c
		}
	}
	return nil
}

// TagName returns the tag name of an element, as written
func TagName(element *sitter.Node, source []byte) string {
	start := StartTag(element)
	if start == nil {
		return ""
	}
	for i := uint(0); i < start.ChildCount(); i++ {
		if c := start.Child(i); c.Kind() == "tag_name" {
			return c.Utf8Text(source)
		}
	}
	return ""
}

// Attribute is one attribute of a start tag
type Attribute struct {
	Name     string
	Value    string
	HasValue bool
	// ValueStart and ValueEnd delimit the unquoted value in bytes
	ValueStart int
	ValueEnd   int
}

// ReadAttribute reads an attribute node
func ReadAttribute(n *sitter.Node, source []byte) Attribute {
	var attr Attribute
	for i := uint(0); i < n.ChildCount(); i++ {
		c := n.Child(i)
		switch c.Kind() {
		case "attribute_name":
			attr.Name = c.Utf8Text(source)
		case "attribute_value":
			attr.HasValue = true
			attr.ValueStart, attr.ValueEnd = int(c.StartByte()), int(c.EndByte())
		case "quoted_attribute_value":
			attr.HasValue = true
			attr.ValueStart, attr.ValueEnd = int(c.StartByte())+1, int(c.EndByte())-1
			if attr.ValueEnd < attr.ValueStart {
				attr.ValueEnd = attr.ValueStart
			}
		}
	}
	if attr.HasValue {
		attr.Value = string(source[attr.ValueStart:attr.ValueEnd])
	}
	return attr
}
