package extract

import (
	"fmt"
	"strconv"
	"strings"

	"bennypowers.dev/i18n-extract/internal/collections"
	"bennypowers.dev/i18n-extract/internal/units"
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// paramNamer assigns placeholder names within one parameterized text.
// A name that would be bound to two different expressions gets a _<n> suffix.
type paramNamer struct {
	src    []byte
	bound  map[string]string
	params []units.Param
}

func newParamNamer(src []byte) *paramNamer {
	return &paramNamer{src: src, bound: map[string]string{}}
}

// add records expr as the next placeholder and returns its name.
// index is the positional fallback used when no name can be derived.
func (p *paramNamer) add(expr *sitter.Node, index int) string {
	name := placeholderName(expr, p.src, index)
	text := expressionText(expr, p.src)
	if prev, ok := p.bound[name]; ok && prev != text {
		base := name
		for n := 1; ; n++ {
			name = base + "_" + strconv.Itoa(n)
			if prev, ok := p.bound[name]; !ok || prev == text {
				break
			}
		}
	}
	p.bound[name] = text
	p.params = append(p.params, units.Param{Name: name, Expression: text})
	return name
}

// placeholderName prefers the trailing property of a member access, then a
// bare identifier, then param<index>.
func placeholderName(expr *sitter.Node, src []byte, index int) string {
	expr = unwrapParens(expr)
	switch expr.Kind() {
	case "member_expression":
		if prop := expr.ChildByFieldName("property"); prop != nil && prop.Kind() == "property_identifier" {
			return prop.Utf8Text(src)
		}
	case "identifier":
		return expr.Utf8Text(src)
	}
	return "param" + strconv.Itoa(index)
}

func expressionText(expr *sitter.Node, src []byte) string {
	return strings.TrimSpace(unwrapParens(expr).Utf8Text(src))
}

func unwrapParens(n *sitter.Node) *sitter.Node {
	for n.Kind() == "parenthesized_expression" {
		inner := n.NamedChild(0)
		if inner == nil {
			break
		}
		n = inner
	}
	return n
}

// templateOriginal renders a template literal with its substitutions elided
func templateOriginal(statics []string) string {
	return "`" + strings.Join(statics, "${...}") + "`"
}

// concatOriginal renders a concatenation with its expressions elided
func concatOriginal(parts []concatPart) string {
	rendered := make([]string, len(parts))
	for i, part := range parts {
		if part.literal {
			rendered[i] = "'" + part.value + "'"
		} else {
			rendered[i] = "..."
		}
	}
	return strings.Join(rendered, " + ")
}

// call renders a translate call, listing each distinct param once
func call(fn, key string, params []units.Param) string {
	if len(params) == 0 {
		return fmt.Sprintf("%s('%s')", fn, key)
	}
	seen := collections.NewSet[string]()
	entries := make([]string, 0, len(params))
	for _, p := range params {
		if seen.Has(p.Name) {
			continue
		}
		seen.Add(p.Name)
		entries = append(entries, p.Name+": "+p.Expression)
	}
	return fmt.Sprintf("%s('%s', { %s })", fn, key, strings.Join(entries, ", "))
}
