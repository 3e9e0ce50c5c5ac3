package html

import (
	"bytes"
	"regexp"
)

var entityRe = regexp.MustCompile(`^&(?:[a-zA-Z][a-zA-Z0-9]*|#[0-9]+|#[xX][0-9a-fA-F]+);`)

// Mask returns a copy of src in which every {{ }} interpolation outside of
// tags, and every stray '<', '>' or '&' in text, is blanked with spaces.
// Line breaks and byte offsets are preserved, so positions in the masked
// copy are positions in src.
func Mask(src []byte) ([]byte, []Interpolation) {
	out := bytes.Clone(src)
	var spans []Interpolation

	i := 0
	for i < len(src) {
		switch {
		case bytes.HasPrefix(src[i:], []byte("<!--")):
			end := bytes.Index(src[i+4:], []byte("-->"))
			if end < 0 {
				return out, spans
			}
			i += 4 + end + 3

		case src[i] == '<' && i+1 < len(src) && isTagStart(src[i+1]):
			end := tagEnd(src, i)
			name := tagName(src[i+1 : end])
			i = end
			if name == "script" || name == "style" {
				i = rawTextEnd(src, i, name)
			}

		case src[i] == '<' || src[i] == '>':
			out[i] = ' '
			i++

		case src[i] == '&':
			if !entityRe.Match(src[i:]) {
				out[i] = ' '
			}
			i++

		case bytes.HasPrefix(src[i:], []byte("{{")):
			end := bytes.Index(src[i+2:], []byte("}}"))
			if end < 0 {
				i += 2
				continue
			}
			span := Interpolation{
				Start:     i,
				End:       i + 2 + end + 2,
				ExprStart: i + 2,
				ExprEnd:   i + 2 + end,
			}
			blank(out[span.Start:span.End])
			spans = append(spans, span)
			i = span.End

		default:
			i++
		}
	}
	return out, spans
}

func isTagStart(b byte) bool {
	return b == '/' || b == '!' || (b|0x20 >= 'a' && b|0x20 <= 'z')
}

// tagEnd returns the offset just past the '>' closing the tag at start,
// skipping quoted attribute values.
func tagEnd(src []byte, start int) int {
	var quote byte
	for i := start + 1; i < len(src); i++ {
		c := src[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '>':
			return i + 1
		}
	}
	return len(src)
}

func tagName(tag []byte) string {
	if len(tag) > 0 && tag[0] == '/' {
		return ""
	}
	n := 0
	for n < len(tag) && tag[n] != ' ' && tag[n] != '\t' && tag[n] != '\n' && tag[n] != '\r' && tag[n] != '>' && tag[n] != '/' {
		n++
	}
	return string(bytes.ToLower(tag[:n]))
}

// rawTextEnd returns the offset of the closing tag of a raw text element
func rawTextEnd(src []byte, from int, name string) int {
	closing := []byte("</" + name)
	for i := from; i+len(closing) <= len(src); i++ {
		if src[i] == '<' && bytes.EqualFold(src[i:i+len(closing)], closing) {
			return i
		}
	}
	return len(src)
}

func blank(b []byte) {
	for i, c := range b {
		if c != '\n' && c != '\r' {
			b[i] = ' '
		}
	}
}
