package js

import (
	"fmt"
	"sync"

	"bennypowers.dev/i18n-extract/internal/parser"
	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// Parser reads JavaScript, TypeScript and their JSX variants
type Parser struct {
	parser *sitter.Parser
	lang   parser.Language
}

var (
	jsLang  = sitter.NewLanguage(tree_sitter_javascript.Language())
	tsLang  = sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript())
	tsxLang = sitter.NewLanguage(tree_sitter_typescript.LanguageTSX())
)

// grammar returns the tree-sitter language for a script language.
// The JavaScript grammar reads JSX natively.
func grammar(lang parser.Language) *sitter.Language {
	switch lang {
	case parser.TypeScript:
		return tsLang
	case parser.TSX:
		return tsxLang
	default:
		return jsLang
	}
}

func newPool(lang parser.Language) *sync.Pool {
	return &sync.Pool{
		New: func() any {
			p := sitter.NewParser()
			if err := p.SetLanguage(grammar(lang)); err != nil {
				panic(fmt.Sprintf("failed to set %s language: %v", lang, err))
			}
			return &Parser{parser: p, lang: lang}
		},
	}
}

// parserPools holds one pool of reusable parsers per grammar
var parserPools = map[parser.Language]*sync.Pool{
	parser.JavaScript: newPool(parser.JavaScript),
	parser.TypeScript: newPool(parser.TypeScript),
	parser.TSX:        newPool(parser.TSX),
}

func poolFor(lang parser.Language) *sync.Pool {
	switch lang {
	case parser.TypeScript, parser.TSX:
		return parserPools[lang]
	default:
		return parserPools[parser.JavaScript]
	}
}

// AcquireParser gets a parser for lang from the pool
func AcquireParser(lang parser.Language) *Parser {
	p := poolFor(lang).Get().(*Parser)
	p.parser.Reset()
	return p
}

// ReleaseParser returns a parser to its pool
func ReleaseParser(p *Parser) {
	if p != nil {
		poolFor(p.lang).Put(p)
	}
}

// Close closes the parser and releases its resources
func (p *Parser) Close() {
	if p.parser != nil {
		p.parser.Close()
	}
}

// ClosePool closes all parsers in the pools
func ClosePool() {
	for _, pool := range parserPools {
		for range 100 {
			if p, ok := pool.Get().(*Parser); ok && p != nil {
				p.Close()
			}
		}
	}
}

// Language returns the script language the parser reads
func (p *Parser) Language() parser.Language {
	return p.lang
}

// Parse parses source. The caller closes the returned tree.
func (p *Parser) Parse(source []byte) (*sitter.Tree, error) {
	tree := p.parser.Parse(source, nil)
	if tree == nil {
		return nil, parser.ErrNoTree
	}
	return tree, nil
}
