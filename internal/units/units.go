// Package units defines the extracted text unit shared by every stage of the
// extraction pipeline.
package units

import "fmt"

// Type identifies the syntactic form a text unit was extracted from.
type Type string

const (
	// TextNode is static text between markup tags.
	TextNode Type = "text-node"
	// Attribute is a static markup attribute value.
	Attribute Type = "attribute"
	// LiteralString is a quoted string literal in logic code.
	LiteralString Type = "literal-string"
	// InterpolatedTemplate is an untagged template literal, with or without substitutions.
	InterpolatedTemplate Type = "interpolated-template"
	// Concatenation is a chain of + joining string literals and expressions.
	Concatenation Type = "concatenation"
)

// Types lists every unit type in report order.
var Types = []Type{TextNode, Attribute, LiteralString, InterpolatedTemplate, Concatenation}

// Valid reports whether t is one of the known unit types.
func (t Type) Valid() bool {
	switch t {
	case TextNode, Attribute, LiteralString, InterpolatedTemplate, Concatenation:
		return true
	}
	return false
}

// Param is a named placeholder bound to the source text of an expression.
type Param struct {
	Name       string `json:"name"`
	Expression string `json:"expression"`
}

// Location points at the first character of an occurrence.
// Line and Column are 1-indexed; Column counts UTF-16 code units.
type Location struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

func (l Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// Context describes where in the component an occurrence was found.
type Context struct {
	ComponentName string `json:"componentName,omitempty"`
	ComponentPath string `json:"componentPath,omitempty"`
	ParentTag     string `json:"parentTag,omitempty"`
	AttributeName string `json:"attributeName,omitempty"`
	VariableName  string `json:"variableName,omitempty"`
	PropertyName  string `json:"propertyName,omitempty"`
	MethodName    string `json:"methodName,omitempty"`
	FunctionName  string `json:"functionName,omitempty"`
	Scope         string `json:"scope,omitempty"`
}

// Replacement holds suggested replacement snippets. Nothing is rewritten.
type Replacement struct {
	Markup string `json:"template,omitempty"`
	Logic  string `json:"script,omitempty"`
}

// Unit is one extracted occurrence of translatable text.
type Unit struct {
	Key          string      `json:"key"`
	Text         string      `json:"text"`
	OriginalText string      `json:"originalText,omitempty"`
	Type         Type        `json:"type"`
	Params       []Param     `json:"params"`
	Location     Location    `json:"location"`
	Context      Context     `json:"context"`
	Replacement  Replacement `json:"replacement"`
}

// Parameterized reports whether the unit carries at least one placeholder.
func (u Unit) Parameterized() bool {
	return len(u.Params) > 0
}
