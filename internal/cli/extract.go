package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"bennypowers.dev/i18n-extract/internal/config"
	"bennypowers.dev/i18n-extract/internal/log"
	"bennypowers.dev/i18n-extract/internal/output"
	"bennypowers.dev/i18n-extract/internal/pipeline"
	"github.com/spf13/cobra"
)

// DefaultManifest is where the manifest goes unless --out says otherwise
const DefaultManifest = "i18n-extract.json"

type extractFlags struct {
	include      []string
	exclude      []string
	namespace    string
	cwd          string
	configPath   string
	out          string
	localesDir   string
	locales      []string
	sourceLocale string
	report       bool
	concurrency  int
	hashLength   int
	hash         string
	lenient      bool
	logLevel     string
	logFormat    string
}

func extractCmd() *cobra.Command {
	var f extractFlags
	cmd := &cobra.Command{
		Use:   "extract [include...]",
		Short: "Scan sources and write the extraction manifest",
		Example: `  i18n-extract extract -n product 'src/**/*.vue'
  i18n-extract extract --config i18n-extract.config.yaml --locales-dir src/locales --report`,
		RunE: func(cmd *cobra.Command, args []string) error {
			f.include = append(f.include, args...)
			return runExtract(cmd, f)
		},
	}

	flags := cmd.Flags()
	flags.StringArrayVarP(&f.include, "include", "i", nil, "Glob of files to scan (repeatable)")
	flags.StringArrayVar(&f.exclude, "exclude", nil, "Glob of files to skip (repeatable, replaces the defaults)")
	flags.StringVarP(&f.namespace, "namespace", "n", "", "Key namespace")
	flags.StringVar(&f.cwd, "cwd", "", "Directory patterns resolve against (default: config directory or .)")
	flags.StringVar(&f.configPath, "config", "", "Config file (default: discovered in --cwd)")
	flags.StringVarP(&f.out, "out", "o", DefaultManifest, "Manifest path, - for stdout")
	flags.StringVar(&f.localesDir, "locales-dir", "", "Write one skeleton file per locale into this directory")
	flags.StringSliceVar(&f.locales, "locales", nil, "Locales to write (default zh-CN,en-US)")
	flags.StringVar(&f.sourceLocale, "source-locale", "", "Locale prefilled with the extracted text (default zh-CN)")
	flags.BoolVar(&f.report, "report", false, "Print a statistics report")
	flags.IntVar(&f.concurrency, "concurrency", 0, "Files processed at once (default: number of CPUs)")
	flags.IntVar(&f.hashLength, "hash-length", 0, "Hex digits of the hash in each key (default 8)")
	flags.StringVar(&f.hash, "hash", "", "Key hash: md5 or xxh3 (default md5)")
	flags.BoolVar(&f.lenient, "lenient", false, "Extract the valid parts of files with syntax errors")
	flags.StringVar(&f.logLevel, "log-level", "info", "Minimum level of diagnostics: debug, info, warn, error")
	flags.StringVar(&f.logFormat, "log-format", "text", "Diagnostics format: text or json")
	return cmd
}

// reporter routes diagnostics to stderr in the requested format
func reporter(w io.Writer, level, format string) (log.Reporter, error) {
	threshold, err := log.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(format) {
	case "text", "":
		log.SetOutput(w)
		log.SetLevel(threshold)
		return log.Forward(), nil
	case "json":
		return log.NewJSONReporter(w, threshold), nil
	}
	return nil, fmt.Errorf("unknown log format %q", format)
}

// options layers defaults, the config file and flags, in that order
func options(f extractFlags) (config.Options, error) {
	opts := config.Default()

	root := f.cwd
	if root == "" {
		root = "."
	}
	// a relative cwd in a config file is relative to the project root
	var file *config.Options
	var err error
	base := root
	if f.configPath != "" {
		base = filepath.Dir(f.configPath)
		file, err = config.LoadFile(f.configPath)
	} else {
		file, _, err = config.Load(root)
	}
	if err != nil {
		return opts, err
	}
	if file != nil {
		if !filepath.IsAbs(file.Cwd) {
			file.Cwd = filepath.Join(base, file.Cwd)
		}
		opts = config.Merge(opts, *file)
	}

	overlay := config.Options{
		Namespace:     f.namespace,
		Cwd:           f.cwd,
		HashLength:    f.hashLength,
		HashAlgorithm: f.hash,
		Concurrency:   f.concurrency,
		Lenient:       f.lenient,
		SourceLocale:  f.sourceLocale,
	}
	if len(f.include) > 0 {
		overlay.Include = f.include
	}
	if len(f.exclude) > 0 {
		overlay.Exclude = f.exclude
	}
	if len(f.locales) > 0 {
		overlay.Locales = f.locales
	}
	return config.Merge(opts, overlay), nil
}

func runExtract(cmd *cobra.Command, f extractFlags) error {
	rep, err := reporter(cmd.ErrOrStderr(), f.logLevel, f.logFormat)
	if err != nil {
		return err
	}
	opts, err := options(f)
	if err != nil {
		return err
	}
	if err := opts.Validate(); err != nil {
		return err
	}

	result, err := pipeline.Extract(cmd.Context(), opts, rep)
	if err != nil {
		return err
	}

	if f.out == "-" {
		if err := output.EncodeManifest(cmd.OutOrStdout(), result); err != nil {
			return err
		}
	} else {
		if err := output.WriteManifest(result, f.out); err != nil {
			return err
		}
		rep.Report(log.Event{Level: log.LevelInfo, Message: fmt.Sprintf("wrote %d texts to %s", result.Stats.Total, f.out)})
	}

	if f.localesDir != "" {
		paths, err := output.WriteLocales(result, f.localesDir, opts.Locales, opts.SourceLocale)
		if err != nil {
			return err
		}
		rep.Report(log.Event{Level: log.LevelInfo, Message: fmt.Sprintf("wrote %s", strings.Join(paths, ", "))})
	}

	if len(result.Conflicts) > 0 {
		rep.Report(log.Event{Level: log.LevelWarn, Message: fmt.Sprintf("%d keys map to more than one text, see conflicts in the manifest", len(result.Conflicts))})
	}
	if f.report {
		w := cmd.OutOrStdout()
		if f.out == "-" {
			w = cmd.ErrOrStderr()
		}
		if _, err := io.WriteString(w, output.Report(result)); err != nil {
			return err
		}
	}
	return nil
}
