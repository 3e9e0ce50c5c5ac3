package extract

import (
	"strings"

	"bennypowers.dev/i18n-extract/internal/keygen"
	"bennypowers.dev/i18n-extract/internal/log"
	"bennypowers.dev/i18n-extract/internal/parser"
	"bennypowers.dev/i18n-extract/internal/parser/js"
	"bennypowers.dev/i18n-extract/internal/sfc"
	"bennypowers.dev/i18n-extract/internal/units"
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// kind is the closed set of syntax the logic walker reacts to
type kind int

const (
	kindOther kind = iota
	kindString
	kindTemplate
	kindBinary
	kindJSXText
	kindJSXAttribute
)

var kinds = map[string]kind{
	"string":            kindString,
	"template_string":   kindTemplate,
	"binary_expression": kindBinary,
	"jsx_text":          kindJSXText,
	"jsx_attribute":     kindJSXAttribute,
}

// visitor has one method per kind. Each returns whether the walk should
// descend into the node's children.
type visitor interface {
	visitString(n *sitter.Node) bool
	visitTemplate(n *sitter.Node) bool
	visitBinary(n *sitter.Node) bool
	visitJSXText(n *sitter.Node) bool
	visitJSXAttribute(n *sitter.Node) bool
}

func dispatch(v visitor, n *sitter.Node) bool {
	switch kinds[n.Kind()] {
	case kindString:
		return v.visitString(n)
	case kindTemplate:
		return v.visitTemplate(n)
	case kindBinary:
		return v.visitBinary(n)
	case kindJSXText:
		return v.visitJSXText(n)
	case kindJSXAttribute:
		return v.visitJSXAttribute(n)
	case kindOther:
	}
	return true
}

// binding describes a markup expression handed to the logic walker
type binding struct {
	ParentTag     string
	AttributeName string
}

// Logic extracts text units from a script segment
func (x *Extractor) Logic(seg *sfc.Segment, f File, reg *keygen.Registry) ([]units.Unit, error) {
	cands, err := x.logic(seg, f, nil)
	if err != nil {
		return nil, err
	}
	return finalize(cands, reg), nil
}

func (x *Extractor) logic(seg *sfc.Segment, f File, b *binding) ([]candidate, error) {
	src := []byte(seg.Content)

	p := js.AcquireParser(seg.Lang)
	defer js.ReleaseParser(p)

	tree, err := p.Parse(src)
	if err != nil {
		return nil, sfc.NewSegmentError(f.Path, "logic", err.Error())
	}
	defer tree.Close()

	root := tree.RootNode()
	if err := parser.CheckTree(root, src); err != nil {
		if !x.Lenient || b != nil {
			return nil, sfc.NewSegmentError(f.Path, "logic", err.Error())
		}
		x.report(log.LevelWarn, f.Path, "logic segment has syntax errors, extracting valid parts: %v", err)
	}

	w := &logicWalker{
		x:       x,
		file:    f,
		seg:     seg,
		src:     src,
		loc:     newLocator(f.Path, seg, src),
		binding: b,
	}
	w.walk(root)
	return w.cands, nil
}

// logicWalker walks one script tree keeping the chain of ancestors of the
// node being visited
type logicWalker struct {
	x       *Extractor
	file    File
	seg     *sfc.Segment
	src     []byte
	loc     locator
	binding *binding
	stack   ancestors
	cands   []candidate
}

func (w *logicWalker) walk(n *sitter.Node) {
	if !dispatch(w, n) {
		return
	}
	w.stack = append(w.stack, n)
	for i := uint(0); i < n.ChildCount(); i++ {
		w.walk(n.Child(i))
	}
	w.stack = w.stack[:len(w.stack)-1]
}

func (w *logicWalker) emit(n *sitter.Node, u units.Unit, replace func(string) units.Replacement) {
	u.Location = w.loc.at(int(n.StartByte()))
	w.cands = append(w.cands, candidate{offset: int(n.StartByte()), unit: u, replace: replace})
}

func (w *logicWalker) accept(text string, ctx *units.Context) bool {
	return w.x.Classifier.Accept(text, ctx)
}

// replacement suggests a translate call in the syntax the unit came from
func (w *logicWalker) replacement(params []units.Param) func(string) units.Replacement {
	if w.binding != nil {
		fn := w.x.translateFunction()
		return func(key string) units.Replacement {
			return units.Replacement{Markup: call(fn, key, params)}
		}
	}
	fn := w.x.setupTranslateFunction()
	if w.file.Component && !w.seg.Setup {
		fn = "this." + w.x.translateFunction()
	}
	return func(key string) units.Replacement {
		return units.Replacement{Logic: call(fn, key, params)}
	}
}

func (w *logicWalker) visitString(n *sitter.Node) bool {
	if w.stringExcluded(n) {
		return false
	}
	text := js.StringValue(n, w.src)
	ctx := w.context()
	if !w.accept(text, &ctx) {
		return false
	}
	w.emit(n, units.Unit{
		Text:    text,
		Type:    units.LiteralString,
		Context: ctx,
	}, w.replacement(nil))
	return false
}

// stringExcluded reports strings that name modules or keys rather than
// carrying text
func (w *logicWalker) stringExcluded(n *sitter.Node) bool {
	parent := w.stack.parent()
	if parent != nil {
		switch parent.Kind() {
		case "pair":
			if same(parent.ChildByFieldName("key"), n) {
				return true
			}
		case "computed_property_name":
			if w.isComputedKey(parent) {
				return true
			}
		case "method_definition", "method_signature", "abstract_method_signature":
			if same(parent.ChildByFieldName("name"), n) {
				return true
			}
		case "field_definition", "public_field_definition":
			if same(parent.ChildByFieldName("property"), n) || same(parent.ChildByFieldName("name"), n) {
				return true
			}
		case "property_signature":
			return true
		case "export_statement":
			if same(parent.ChildByFieldName("source"), n) {
				return true
			}
		case "arguments":
			if w.isModuleCall(w.stack.at(1)) {
				return true
			}
		}
	}
	return w.stack.nearest("import_statement", "literal_type") != nil
}

// isComputedKey matches the ['key'] of an object entry, method or field
func (w *logicWalker) isComputedKey(name *sitter.Node) bool {
	owner := w.stack.at(1)
	if owner == nil {
		return false
	}
	switch owner.Kind() {
	case "pair":
		return same(owner.ChildByFieldName("key"), name)
	case "method_definition", "method_signature", "abstract_method_signature":
		return same(owner.ChildByFieldName("name"), name)
	case "field_definition", "public_field_definition":
		return same(owner.ChildByFieldName("property"), name) || same(owner.ChildByFieldName("name"), name)
	}
	return false
}

// isModuleCall matches require(...) and import(...)
func (w *logicWalker) isModuleCall(n *sitter.Node) bool {
	if n == nil || n.Kind() != "call_expression" {
		return false
	}
	fn := n.ChildByFieldName("function")
	if fn == nil {
		return false
	}
	return fn.Kind() == "import" || (fn.Kind() == "identifier" && fn.Utf8Text(w.src) == "require")
}

func (w *logicWalker) visitTemplate(n *sitter.Node) bool {
	if js.IsTagged(n) {
		return false
	}
	parts := js.TemplateParts(n, w.src)

	var statics []string
	var current strings.Builder
	var static strings.Builder
	for _, part := range parts {
		if part.IsStatic() {
			current.WriteString(part.Static)
			static.WriteString(part.Static)
			continue
		}
		statics = append(statics, current.String())
		current.Reset()
	}
	statics = append(statics, current.String())

	ctx := w.context()
	if !w.accept(static.String(), &ctx) {
		return true
	}

	namer := newParamNamer(w.src)
	var text strings.Builder
	index := 0
	for _, part := range parts {
		if part.IsStatic() {
			text.WriteString(part.Static)
			continue
		}
		text.WriteString("{" + namer.add(part.Expr, index) + "}")
		index++
	}

	w.emit(n, units.Unit{
		Text:         text.String(),
		OriginalText: templateOriginal(statics),
		Type:         units.InterpolatedTemplate,
		Params:       namer.params,
		Context:      ctx,
	}, w.replacement(namer.params))
	// substitutions may hold text of their own
	return true
}

// concatPart is one operand of a flattened + chain
type concatPart struct {
	literal bool
	value   string
	node    *sitter.Node
}

func (w *logicWalker) flatten(n *sitter.Node, parts []concatPart) []concatPart {
	n = unwrapParens(n)
	switch n.Kind() {
	case "binary_expression":
		if isPlus(n) {
			parts = w.flatten(n.ChildByFieldName("left"), parts)
			return w.flatten(n.ChildByFieldName("right"), parts)
		}
	case "string":
		return append(parts, concatPart{literal: true, value: js.StringValue(n, w.src), node: n})
	}
	return append(parts, concatPart{node: n})
}

func isPlus(n *sitter.Node) bool {
	op := n.ChildByFieldName("operator")
	return op != nil && op.Kind() == "+" && n.ChildByFieldName("left") != nil && n.ChildByFieldName("right") != nil
}

func (w *logicWalker) visitBinary(n *sitter.Node) bool {
	if !isPlus(n) {
		return true
	}
	parts := w.flatten(n, nil)

	var static strings.Builder
	literals := 0
	for _, part := range parts {
		if part.literal {
			static.WriteString(part.value)
			literals++
		}
	}
	if literals == 0 {
		return true
	}
	ctx := w.context()
	if !w.accept(static.String(), &ctx) {
		return true
	}

	namer := newParamNamer(w.src)
	var text strings.Builder
	index := 0
	for _, part := range parts {
		if part.literal {
			text.WriteString(part.value)
			continue
		}
		text.WriteString("{" + namer.add(part.node, index) + "}")
		index++
	}

	w.emit(n, units.Unit{
		Text:         text.String(),
		OriginalText: concatOriginal(parts),
		Type:         units.Concatenation,
		Params:       namer.params,
		Context:      ctx,
	}, w.replacement(namer.params))
	return false
}

func (w *logicWalker) visitJSXText(n *sitter.Node) bool {
	raw := n.Utf8Text(w.src)
	text := normalizeText(raw)
	if text == "" {
		return false
	}
	ctx := w.context()
	ctx.ParentTag = w.jsxTag()
	if !w.accept(text, &ctx) {
		return false
	}
	fn := w.x.setupTranslateFunction()
	u := units.Unit{Text: text, Type: units.TextNode, Context: ctx}
	offset := int(n.StartByte()) + leadingSpace(raw)
	u.Location = w.loc.at(offset)
	w.cands = append(w.cands, candidate{offset: offset, unit: u, replace: func(key string) units.Replacement {
		return units.Replacement{Logic: "{" + call(fn, key, nil) + "}"}
	}})
	return false
}

func (w *logicWalker) visitJSXAttribute(n *sitter.Node) bool {
	var name string
	var value *sitter.Node
	for i := uint(0); i < n.NamedChildCount(); i++ {
		c := n.NamedChild(i)
		switch c.Kind() {
		case "property_identifier", "jsx_namespace_name", "identifier":
			if name == "" {
				name = c.Utf8Text(w.src)
			}
		case "string":
			value = c
		}
	}
	if value == nil {
		return true
	}
	text := strings.TrimSpace(js.StringValue(value, w.src))
	ctx := w.context()
	ctx.ParentTag = w.jsxTag()
	ctx.AttributeName = name
	if !w.accept(text, &ctx) {
		return false
	}
	fn := w.x.setupTranslateFunction()
	w.emit(n, units.Unit{Text: text, Type: units.Attribute, Context: ctx}, func(key string) units.Replacement {
		return units.Replacement{Logic: name + "={" + call(fn, key, nil) + "}"}
	})
	return false
}
