package js

import (
	"html"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// StringValue returns the value of a string literal node with escape
// sequences and, in JSX attribute strings, character references decoded.
func StringValue(n *sitter.Node, source []byte) string {
	var b strings.Builder
	var pending []uint16
	flush := func() {
		if len(pending) > 0 {
			b.WriteString(string(utf16.Decode(pending)))
			pending = pending[:0]
		}
	}
	for i := uint(0); i < n.ChildCount(); i++ {
		c := n.Child(i)
		text := c.Utf8Text(source)
		switch c.Kind() {
		case "escape_sequence":
			if units, ok := codeUnits(text); ok {
				pending = append(pending, units...)
				continue
			}
			flush()
			b.WriteString(unescape(text))
		case "html_character_reference":
			flush()
			b.WriteString(html.UnescapeString(text))
		case "string_fragment", "unescaped_double_string_fragment", "unescaped_single_string_fragment":
			flush()
			b.WriteString(text)
		}
	}
	flush()
	return b.String()
}

// codeUnits decodes \uXXXX escapes as raw UTF-16 code units so surrogate
// pairs written as two escapes combine into one rune
func codeUnits(esc string) ([]uint16, bool) {
	if len(esc) != 6 || !strings.HasPrefix(esc, `\u`) {
		return nil, false
	}
	v, err := strconv.ParseUint(esc[2:], 16, 16)
	if err != nil {
		return nil, false
	}
	return []uint16{uint16(v)}, true
}

func unescape(esc string) string {
	if len(esc) < 2 || esc[0] != '\\' {
		return esc
	}
	body := esc[1:]
	if body == "\u2028" || body == "\u2029" {
		return ""
	}
	switch body[0] {
	case 'n':
		return "\n"
	case 't':
		return "\t"
	case 'r':
		return "\r"
	case 'b':
		return "\b"
	case 'f':
		return "\f"
	case 'v':
		return "\v"
	case '0':
		if len(body) == 1 {
			return "\x00"
		}
	case '\n', '\r':
		// line continuation
		return ""
	case 'x':
		if v, err := strconv.ParseUint(body[1:], 16, 8); err == nil {
			return string(rune(v))
		}
	case 'u':
		hex := strings.TrimSuffix(strings.TrimPrefix(body[1:], "{"), "}")
		if v, err := strconv.ParseUint(hex, 16, 32); err == nil && utf8.ValidRune(rune(v)) {
			return string(rune(v))
		}
	}
	return body
}

// TemplateParts splits a template_string node into static text and
// substitutions, left to right. Static text is raw source text.
func TemplateParts(n *sitter.Node, source []byte) []TemplatePart {
	var parts []TemplatePart
	cursor := int(n.StartByte()) + 1
	end := int(n.EndByte()) - 1
	for i := uint(0); i < n.ChildCount(); i++ {
		c := n.Child(i)
		if c.Kind() != "template_substitution" {
			continue
		}
		if start := int(c.StartByte()); start > cursor {
			parts = append(parts, TemplatePart{Static: string(source[cursor:start])})
		}
		if expr := c.NamedChild(0); expr != nil {
			parts = append(parts, TemplatePart{Expr: expr})
		}
		cursor = int(c.EndByte())
	}
	if end > cursor {
		parts = append(parts, TemplatePart{Static: string(source[cursor:end])})
	}
	return parts
}

// IsTagged reports whether a template_string is the argument of a tagged template
func IsTagged(n *sitter.Node) bool {
	parent := n.Parent()
	if parent == nil || parent.Kind() != "call_expression" {
		return false
	}
	args := parent.ChildByFieldName("arguments")
	return args != nil && args.Id() == n.Id()
}
