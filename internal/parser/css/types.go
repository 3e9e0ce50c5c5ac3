package css

// StringValue is a quoted string used as a declaration value
type StringValue struct {
	// Property is the declared property, e.g. "content"
	Property string
	// Value is the string contents without quotes
	Value string
	// Offset is the byte offset of the opening quote in the parsed source
	Offset int
}
