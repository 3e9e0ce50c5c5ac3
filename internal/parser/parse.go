// Package parser maps source files onto the tree-sitter grammars that read
// them and reports syntax errors found in parsed trees.
package parser

import (
	"path/filepath"
	"strings"
)

// Language identifies how a source is read
type Language string

const (
	Vue        Language = "vue"
	HTML       Language = "html"
	JavaScript Language = "javascript"
	JSX        Language = "javascriptreact"
	TypeScript Language = "typescript"
	TSX        Language = "typescriptreact"
)

// extensions maps file extensions to the language used to read them.
var extensions = map[string]Language{
	".vue":  Vue,
	".html": HTML,
	".htm":  HTML,
	".js":   JavaScript,
	".mjs":  JavaScript,
	".cjs":  JavaScript,
	".jsx":  JSX,
	".ts":   TypeScript,
	".mts":  TypeScript,
	".cts":  TypeScript,
	".tsx":  TSX,
}

// LanguageForPath returns the language of a file from its extension
func LanguageForPath(path string) (Language, bool) {
	lang, ok := extensions[strings.ToLower(filepath.Ext(path))]
	return lang, ok
}

// ScriptLanguage maps a <script lang="..."> value to a script language.
// Unknown and empty values read as JavaScript.
func ScriptLanguage(lang string) Language {
	switch strings.ToLower(strings.TrimSpace(lang)) {
	case "ts", "typescript", "mts", "cts":
		return TypeScript
	case "tsx":
		return TSX
	case "jsx":
		return JSX
	}
	return JavaScript
}

// IsScript reports whether the language is read by a script grammar
func (l Language) IsScript() bool {
	switch l {
	case JavaScript, JSX, TypeScript, TSX:
		return true
	}
	return false
}
