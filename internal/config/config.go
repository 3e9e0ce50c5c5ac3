// Package config loads and validates extraction options from config files,
// package.json and command line flags.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"bennypowers.dev/i18n-extract/internal/keygen"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Sentinel errors for error type checking
var (
	// ErrNoNamespace indicates the key namespace is missing
	ErrNoNamespace = errors.New("namespace is required")

	// ErrNoInclude indicates no include pattern was given
	ErrNoInclude = errors.New("at least one include pattern is required")
)

// PackageJSONField is the package.json field holding options
const PackageJSONField = "i18nExtract"

// Candidates are the config file names searched for, in order
var Candidates = []string{
	"i18n-extract.config.json",
	"i18n-extract.config.jsonc",
	"i18n-extract.config.yaml",
	"i18n-extract.config.yml",
	".config/i18n-extract.json",
	".config/i18n-extract.yaml",
}

// Default returns the options every run starts from
func Default() Options {
	return Options{
		Cwd:                    ".",
		HashLength:             keygen.DefaultHashLength,
		HashAlgorithm:          string(keygen.MD5),
		Concurrency:            runtime.NumCPU(),
		TranslateFunction:      "$t",
		SetupTranslateFunction: "t",
		Locales:                StringList{"zh-CN", "en-US"},
		SourceLocale:           "zh-CN",
	}
}

// Load reads options from the first config file found in root, falling
// back to the i18nExtract field of package.json. It returns nil options
// and an empty path when there is no configuration.
func Load(root string) (*Options, string, error) {
	for _, name := range Candidates {
		path := filepath.Join(root, filepath.FromSlash(name))
		if _, err := os.Stat(path); err != nil {
			continue
		}
		opts, err := LoadFile(path)
		return opts, path, err
	}
	opts, err := readPackageJSON(root)
	if opts == nil || err != nil {
		return nil, "", err
	}
	return opts, filepath.Join(root, "package.json"), nil
}

// LoadFile reads options from a JSON, JSONC or YAML file, chosen by extension
func LoadFile(path string) (*Options, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: config path comes from the operator
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var opts Options
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &opts); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case ".json", ".jsonc":
		if err := json.Unmarshal(jsonc.ToJSON(data), &opts); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format: %s", path)
	}
	return &opts, nil
}

// readPackageJSON reads the i18nExtract field of package.json in root.
// Returns nil if the file or the field doesn't exist (not an error).
func readPackageJSON(root string) (*Options, error) {
	path := filepath.Join(root, "package.json")
	data, err := os.ReadFile(path) //nolint:gosec // G304: workspace package.json
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read package.json: %w", err)
	}

	// Parse as JSONC (allows comments)
	var pkg map[string]json.RawMessage
	if err := json.Unmarshal(jsonc.ToJSON(data), &pkg); err != nil {
		return nil, fmt.Errorf("failed to parse package.json: %w", err)
	}
	raw, ok := pkg[PackageJSONField]
	if !ok {
		return nil, nil
	}

	var opts Options
	if err := json.Unmarshal(raw, &opts); err != nil {
		return nil, fmt.Errorf("%s must be an object: %w", PackageJSONField, err)
	}
	return &opts, nil
}

// Merge returns base with every set field of overlay applied on top
func Merge(base Options, overlay Options) Options {
	if overlay.Include != nil {
		base.Include = overlay.Include
	}
	if overlay.Exclude != nil {
		base.Exclude = overlay.Exclude
	}
	if overlay.Namespace != "" {
		base.Namespace = overlay.Namespace
	}
	if overlay.Cwd != "" {
		base.Cwd = overlay.Cwd
	}
	if overlay.HashLength != 0 {
		base.HashLength = overlay.HashLength
	}
	if overlay.HashAlgorithm != "" {
		base.HashAlgorithm = overlay.HashAlgorithm
	}
	if overlay.Concurrency != 0 {
		base.Concurrency = overlay.Concurrency
	}
	if overlay.Lenient {
		base.Lenient = true
	}
	if overlay.TranslateFunction != "" {
		base.TranslateFunction = overlay.TranslateFunction
	}
	if overlay.SetupTranslateFunction != "" {
		base.SetupTranslateFunction = overlay.SetupTranslateFunction
	}
	if overlay.Locales != nil {
		base.Locales = overlay.Locales
	}
	if overlay.SourceLocale != "" {
		base.SourceLocale = overlay.SourceLocale
	}
	if overlay.Scripts != nil {
		base.Scripts = overlay.Scripts
	}
	if overlay.ExcludedAttributes != nil {
		base.ExcludedAttributes = overlay.ExcludedAttributes
	}
	return base
}

// Validate reports every problem with the options at once
func (o Options) Validate() error {
	var errs []error
	if strings.TrimSpace(o.Namespace) == "" {
		errs = append(errs, ErrNoNamespace)
	}
	if len(o.Include) == 0 {
		errs = append(errs, ErrNoInclude)
	}
	if o.HashLength < 0 {
		errs = append(errs, fmt.Errorf("hashLength must not be negative, got %d", o.HashLength))
	}
	if o.Concurrency < 0 {
		errs = append(errs, fmt.Errorf("concurrency must not be negative, got %d", o.Concurrency))
	}
	if _, err := keygen.NewHasher(keygen.Algorithm(o.HashAlgorithm)); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
