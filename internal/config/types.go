package config

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// StringList is a list of strings that may be written as a single string
type StringList []string

// UnmarshalJSON accepts "a" as well as ["a", "b"]
func (l *StringList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*l = StringList{single}
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("expected a string or a list of strings: %w", err)
	}
	*l = list
	return nil
}

// UnmarshalYAML accepts a scalar as well as a sequence
func (l *StringList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var single string
		if err := node.Decode(&single); err != nil {
			return err
		}
		*l = StringList{single}
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		*l = list
		return nil
	}
	return fmt.Errorf("line %d: expected a string or a list of strings", node.Line)
}

// Options configures one extraction run
type Options struct {
	// Include are glob patterns of files to scan, relative to Cwd
	Include StringList `json:"include,omitempty" yaml:"include,omitempty"`

	// Exclude are glob patterns of files to skip. Nil means the defaults.
	Exclude StringList `json:"exclude,omitempty" yaml:"exclude,omitempty"`

	// Namespace prefixes every generated key
	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty"`

	// Cwd is the directory patterns resolve against
	Cwd string `json:"cwd,omitempty" yaml:"cwd,omitempty"`

	HashLength    int    `json:"hashLength,omitempty" yaml:"hashLength,omitempty"`
	HashAlgorithm string `json:"hashAlgorithm,omitempty" yaml:"hashAlgorithm,omitempty"`

	// Concurrency bounds the number of files processed at once
	Concurrency int `json:"concurrency,omitempty" yaml:"concurrency,omitempty"`

	// Lenient extracts the valid parts of files with syntax errors
	Lenient bool `json:"lenient,omitempty" yaml:"lenient,omitempty"`

	TranslateFunction      string `json:"translateFunction,omitempty" yaml:"translateFunction,omitempty"`
	SetupTranslateFunction string `json:"setupTranslateFunction,omitempty" yaml:"setupTranslateFunction,omitempty"`

	// Locales get one skeleton file each; SourceLocale is prefilled
	Locales      StringList `json:"locales,omitempty" yaml:"locales,omitempty"`
	SourceLocale string     `json:"sourceLocale,omitempty" yaml:"sourceLocale,omitempty"`

	// Scripts name the character ranges that make text translatable
	Scripts StringList `json:"scripts,omitempty" yaml:"scripts,omitempty"`

	// ExcludedAttributes are attributes whose values are never translated.
	// Nil means the defaults.
	ExcludedAttributes StringList `json:"excludedAttributes,omitempty" yaml:"excludedAttributes,omitempty"`
}
