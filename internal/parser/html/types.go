package html

// BlockKind identifies the element form of a top-level block
type BlockKind int

const (
	// UnknownBlock is the zero value, indicating an uninitialized block
	UnknownBlock BlockKind = iota
	// ElementBlock is an ordinary element such as <template>
	ElementBlock
	// ScriptBlock is a <script> element with raw text content
	ScriptBlock
	// StyleBlock is a <style> element with raw text content
	StyleBlock
)

// Block is a top-level element of a component file
type Block struct {
	Tag   string
	Kind  BlockKind
	Attrs map[string]string
	// Start and End delimit the element content in bytes
	Start int
	End   int
}

// Attr returns the value of a block attribute and whether it was present
func (b Block) Attr(name string) (string, bool) {
	v, ok := b.Attrs[name]
	return v, ok
}

// Interpolation is a {{ expression }} span in markup source
type Interpolation struct {
	// Start and End delimit the whole span, braces included
	Start int
	End   int
	// ExprStart and ExprEnd delimit the expression between the braces
	ExprStart int
	ExprEnd   int
}
