package css

import (
	"fmt"
	"strings"
	"sync"

	"bennypowers.dev/i18n-extract/internal/parser"
	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_css "github.com/tree-sitter/tree-sitter-css/bindings/go"
)

// Parser handles parsing CSS with tree-sitter
type Parser struct {
	parser *sitter.Parser
}

var cssLang = sitter.NewLanguage(tree_sitter_css.Language())

// parserPool is a pool of reusable CSS parsers
var parserPool = sync.Pool{
	New: func() any {
		p := sitter.NewParser()
		if err := p.SetLanguage(cssLang); err != nil {
			panic(fmt.Sprintf("failed to set CSS language: %v", err))
		}
		return &Parser{parser: p}
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

// StringValues returns every string-valued declaration in source, in order
func (p *Parser) StringValues(source []byte) ([]StringValue, error) {
	tree := p.parser.Parse(source, nil)
	if tree == nil {
		return nil, parser.ErrNoTree
	}
	defer tree.Close()

	var values []StringValue
	walkTree(tree.RootNode(), source, &values)
	return values, nil
}

// walkTree recursively walks the tree to find declarations
func walkTree(node *sitter.Node, source []byte, values *[]StringValue) {
	if node == nil {
		return
	}
	if node.Kind() == "declaration" {
		handleDeclaration(node, source, values)
		return
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		walkTree(node.Child(i), source, values)
	}
}

// handleDeclaration records the string values of a declaration
func handleDeclaration(node *sitter.Node, source []byte, values *[]StringValue) {
	var property string
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		switch child.Kind() {
		case "property_name":
			property = strings.ToLower(child.Utf8Text(source))
		case "string_value":
			*values = append(*values, StringValue{
				Property: property,
				Value:    unquote(child.Utf8Text(source)),
				Offset:   int(child.StartByte()),
			})
		}
	}
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}
