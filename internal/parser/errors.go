package parser

import (
	"errors"
	"fmt"
	"unicode/utf8"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// Sentinel errors for error type checking
var (
	// ErrNoTree indicates the parser returned no tree at all
	ErrNoTree = errors.New("parser produced no tree")

	// ErrSyntax indicates the tree contains error or missing nodes
	ErrSyntax = errors.New("syntax error")
)

// SyntaxError locates the first error node of a tree. Row and Column are 0-based.
type SyntaxError struct {
	Row    uint
	Column uint
	Near   string
}

func (e *SyntaxError) Error() string {
	if e.Near == "" {
		return fmt.Sprintf("syntax error at %d:%d", e.Row+1, e.Column+1)
	}
	return fmt.Sprintf("syntax error at %d:%d near %q", e.Row+1, e.Column+1, e.Near)
}

func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}

// CheckTree returns a *SyntaxError for the first error or missing node under root
func CheckTree(root *sitter.Node, source []byte) error {
	if root == nil {
		return ErrNoTree
	}
	if !root.HasError() {
		return nil
	}
	bad := firstError(root)
	if bad == nil {
		bad = root
	}
	pos := bad.StartPosition()
	return &SyntaxError{Row: pos.Row, Column: pos.Column, Near: clip(bad.Utf8Text(source), nearLimit)}
}

// nearLimit bounds the source excerpt carried by a SyntaxError, in bytes
const nearLimit = 20

// clip cuts s to at most limit bytes without splitting a rune
func clip(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}

func firstError(n *sitter.Node) *sitter.Node {
	if n.IsError() || n.IsMissing() {
		return n
	}
	if !n.HasError() {
		return nil
	}
	for i := uint(0); i < n.ChildCount(); i++ {
		if bad := firstError(n.Child(i)); bad != nil {
			return bad
		}
	}
	return nil
}
