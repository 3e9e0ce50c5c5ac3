// Package position converts byte offsets into the line and UTF-16 column
// coordinates that editors display.
package position

import (
	"unicode/utf16"
	"unicode/utf8"
)

// ByteOffsetToUTF16 converts a byte offset to a UTF-16 code unit offset in a string.
// Offsets inside a multi-byte rune clamp to the start of that rune.
func ByteOffsetToUTF16(s string, byteOffset int) int {
	if byteOffset <= 0 {
		return 0
	}
	if byteOffset > len(s) {
		byteOffset = len(s)
	}

	utf16Count := 0
	currentOffset := 0

	for currentOffset < byteOffset {
		r, size := utf8.DecodeRuneInString(s[currentOffset:])
		if r == utf8.RuneError && size == 0 {
			break
		}
		if currentOffset+size > byteOffset {
			break
		}
		if r == utf8.RuneError && size == 1 {
			utf16Count++
		} else {
			utf16Count += utf16.RuneLen(r)
		}
		currentOffset += size
	}
	return utf16Count
}

// Index maps byte offsets of a source text to 0-based rows and UTF-16 columns.
type Index struct {
	src   string
	lines []int
}

// NewIndex records the line starts of src
func NewIndex(src []byte) *Index {
	lines := []int{0}
	for i, b := range src {
		if b == '\n' {
			lines = append(lines, i+1)
		}
	}
	return &Index{src: string(src), lines: lines}
}

// Point returns the 0-based row and UTF-16 column of a byte offset
func (x *Index) Point(offset int) (row, col int) {
	if offset < 0 {
		offset = 0
	}
	if offset > len(x.src) {
		offset = len(x.src)
	}
	lo, hi := 0, len(x.lines)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if x.lines[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	start := x.lines[lo]
	return lo, ByteOffsetToUTF16(x.src[start:], offset-start)
}
