package extract

import (
	"slices"

	"bennypowers.dev/i18n-extract/internal/units"
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// ancestors is the chain from the root down to the parent of the node
// being visited
type ancestors []*sitter.Node

// parent returns the innermost ancestor
func (a ancestors) parent() *sitter.Node {
	return a.at(0)
}

// at returns the ancestor i levels above the parent
func (a ancestors) at(i int) *sitter.Node {
	if i < 0 || i >= len(a) {
		return nil
	}
	return a[len(a)-1-i]
}

// nearest returns the innermost ancestor of one of the given kinds
func (a ancestors) nearest(kinds ...string) *sitter.Node {
	if i := a.nearestIndex(len(a)-1, kinds...); i >= 0 {
		return a[i]
	}
	return nil
}

// nearestIndex searches from index from towards the root
func (a ancestors) nearestIndex(from int, kinds ...string) int {
	for i := from; i >= 0; i-- {
		if slices.Contains(kinds, a[i].Kind()) {
			return i
		}
	}
	return -1
}

var functionKinds = []string{
	"function_expression",
	"function",
	"arrow_function",
	"generator_function",
	"function_declaration",
	"generator_function_declaration",
	"method_definition",
}

func same(a, b *sitter.Node) bool {
	return a != nil && b != nil && a.Equals(*b)
}

// identifierName returns the text of n when it is a plain name
func (w *logicWalker) identifierName(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	switch n.Kind() {
	case "identifier", "property_identifier", "shorthand_property_identifier":
		return n.Utf8Text(w.src)
	}
	return ""
}

// context describes the syntax enclosing the node being visited
func (w *logicWalker) context() units.Context {
	ctx := units.Context{
		ComponentName: w.file.ComponentName,
		ComponentPath: w.file.Path,
	}
	if w.binding != nil {
		ctx.ParentTag = w.binding.ParentTag
		ctx.AttributeName = w.binding.AttributeName
	}
	if d := w.stack.nearest("variable_declarator"); d != nil {
		if name := d.ChildByFieldName("name"); name != nil && name.Kind() == "identifier" {
			ctx.VariableName = name.Utf8Text(w.src)
		}
	}
	if p := w.stack.nearest("pair"); p != nil {
		ctx.PropertyName = w.identifierName(p.ChildByFieldName("key"))
	}
	if m := w.stack.nearest("method_definition"); m != nil {
		ctx.MethodName = w.identifierName(m.ChildByFieldName("name"))
	}
	if c := w.stack.nearest("call_expression"); c != nil {
		ctx.FunctionName = w.calleeName(c.ChildByFieldName("function"))
	}
	ctx.Scope = w.scope()
	return ctx
}

func (w *logicWalker) calleeName(fn *sitter.Node) string {
	if fn == nil {
		return ""
	}
	if fn.Kind() == "member_expression" {
		return w.identifierName(fn.ChildByFieldName("property"))
	}
	return w.identifierName(fn)
}

// scope labels the component member the node belongs to. Functions are
// searched outwards until one is the value of an object member; if that
// member sits in an object that is itself a member value, as in
// methods: { submit() {} }, the outer key names the scope, otherwise the
// member's own key does. Top-level setup code is scoped "setup".
func (w *logicWalker) scope() string {
	for i := w.stack.nearestIndex(len(w.stack)-1, functionKinds...); i >= 0; i = w.stack.nearestIndex(i-1, functionKinds...) {
		member, mi := w.memberOf(i)
		if member == nil {
			continue
		}
		if mi >= 2 && w.stack[mi-1].Kind() == "object" && w.stack[mi-2].Kind() == "pair" {
			if key := w.identifierName(w.stack[mi-2].ChildByFieldName("key")); key != "" {
				return key
			}
		}
		if key := w.memberKey(member); key != "" {
			return key
		}
	}
	if w.seg.Setup && w.binding == nil {
		return "setup"
	}
	return ""
}

// memberOf returns the object member whose value is the function at stack index i
func (w *logicWalker) memberOf(i int) (*sitter.Node, int) {
	fn := w.stack[i]
	if fn.Kind() == "method_definition" {
		return fn, i
	}
	if i >= 1 && w.stack[i-1].Kind() == "pair" && same(w.stack[i-1].ChildByFieldName("value"), fn) {
		return w.stack[i-1], i - 1
	}
	return nil, -1
}

func (w *logicWalker) memberKey(member *sitter.Node) string {
	if member.Kind() == "method_definition" {
		return w.identifierName(member.ChildByFieldName("name"))
	}
	return w.identifierName(member.ChildByFieldName("key"))
}

// jsxTag returns the name of the innermost enclosing JSX element
func (w *logicWalker) jsxTag() string {
	n := w.stack.nearest("jsx_element", "jsx_self_closing_element", "jsx_opening_element")
	if n == nil {
		return ""
	}
	if n.Kind() == "jsx_element" {
		if open := n.ChildByFieldName("open_tag"); open != nil {
			n = open
		} else if first := n.NamedChild(0); first != nil {
			n = first
		}
	}
	if name := n.ChildByFieldName("name"); name != nil {
		return name.Utf8Text(w.src)
	}
	return ""
}
