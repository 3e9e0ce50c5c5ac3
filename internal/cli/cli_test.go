package cli_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bennypowers.dev/i18n-extract/internal/cli"
	"bennypowers.dev/i18n-extract/internal/config"
	"bennypowers.dev/i18n-extract/internal/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := cli.NewRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func readManifest(t *testing.T, data []byte) pipeline.Result {
	t.Helper()
	var result pipeline.Result
	require.NoError(t, json.Unmarshal(data, &result))
	return result
}

func TestExtractCommandFlags(t *testing.T) {
	cmd, _, err := cli.NewRootCmd().Find([]string{"extract"})
	require.NoError(t, err)
	flags := cmd.Flags()

	tests := []struct {
		name      string
		shorthand string
		def       string
	}{
		{"include", "i", "[]"},
		{"namespace", "n", ""},
		{"out", "o", cli.DefaultManifest},
		{"log-level", "", "info"},
		{"log-format", "", "text"},
		{"lenient", "", "false"},
		{"concurrency", "", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := flags.Lookup(tt.name)
			require.NotNil(t, f)
			assert.Equal(t, tt.shorthand, f.Shorthand)
			assert.Equal(t, tt.def, f.DefValue)
		})
	}
	for _, name := range []string{"exclude", "cwd", "config", "locales-dir", "locales", "report", "hash-length", "hash"} {
		assert.NotNil(t, flags.Lookup(name), name)
	}
}

func TestExtractWithConfigFile(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "manifest.json")
	locales := filepath.Join(dir, "locales")

	stdout, _, err := run(t, "extract", "--cwd", "testdata/app", "--out", out, "--locales-dir", locales, "--report")
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	result := readManifest(t, data)
	assert.Equal(t, "home", result.Namespace)
	require.Len(t, result.Texts, 3)
	assert.Equal(t, "src/home.vue", result.Texts[0].Location.File)

	for _, locale := range []string{"zh-CN", "en-US"} {
		assert.FileExists(t, filepath.Join(locales, locale+".json"))
	}
	assert.Contains(t, stdout, "Namespace: home")
}

func TestExtractFlagsOverrideConfig(t *testing.T) {
	stdout, _, err := run(t, "extract", "--cwd", "testdata/app", "-n", "landing", "--hash", "xxh3", "--hash-length", "6", "--out", "-")
	require.NoError(t, err)

	result := readManifest(t, []byte(stdout))
	assert.Equal(t, "landing", result.Namespace)
	for _, u := range result.Texts {
		assert.Regexp(t, `^landing_[0-9a-f]{6}$`, u.Key)
	}
}

func TestExtractArgsAreIncludes(t *testing.T) {
	stdout, _, err := run(t, "extract", "--cwd", "testdata/app", "--out", "-", "src/none/*.vue")
	require.NoError(t, err)
	result := readManifest(t, []byte(stdout))
	assert.Empty(t, result.Texts)
}

func TestExtractJSONDiagnostics(t *testing.T) {
	stdout, stderr, err := run(t, "extract", "--cwd", "testdata/app", "--out", "-", "--log-level", "debug", "--log-format", "json")
	require.NoError(t, err)
	readManifest(t, []byte(stdout))

	lines := strings.Split(strings.TrimSpace(stderr), "\n")
	require.NotEmpty(t, lines)
	var first map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Contains(t, first, "level")
	assert.Contains(t, first, "message")
	assert.Contains(t, stderr, `"file":"src/home.vue"`)
}

func TestExtractInvalid(t *testing.T) {
	t.Run("no namespace", func(t *testing.T) {
		_, _, err := run(t, "extract", "--cwd", t.TempDir(), "-i", "**/*.vue", "--out", "-")
		require.Error(t, err)
		assert.True(t, errors.Is(err, config.ErrNoNamespace))
	})

	t.Run("log format", func(t *testing.T) {
		_, _, err := run(t, "extract", "--cwd", "testdata/app", "--log-format", "xml")
		assert.Error(t, err)
	})

	t.Run("missing config", func(t *testing.T) {
		_, _, err := run(t, "extract", "--config", filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := run(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "i18n-extract "))

	stdout, _, err = run(t, "version", "--json")
	require.NoError(t, err)
	var info map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &info))
	assert.Contains(t, info, "version")
}
