package js

import sitter "github.com/tree-sitter/go-tree-sitter"

// TemplatePart is one piece of a template literal: either raw static text
// or a ${...} substitution
type TemplatePart struct {
	// Static is the raw text between substitutions; empty for substitutions
	Static string
	// Expr is the substituted expression, nil for static parts
	Expr *sitter.Node
}

// IsStatic reports whether the part is literal text
func (p TemplatePart) IsStatic() bool {
	return p.Expr == nil
}
