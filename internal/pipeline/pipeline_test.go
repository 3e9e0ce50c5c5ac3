package pipeline_test

import (
	"context"
	"errors"
	"testing"

	"bennypowers.dev/i18n-extract/internal/config"
	"bennypowers.dev/i18n-extract/internal/log"
	"bennypowers.dev/i18n-extract/internal/pipeline"
	"bennypowers.dev/i18n-extract/internal/units"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func options() config.Options {
	opts := config.Default()
	opts.Cwd = "testdata/project"
	opts.Namespace = "demo"
	opts.Include = config.StringList{"src/**/*.{vue,js,html}"}
	return opts
}

func TestExtract(t *testing.T) {
	events := &log.Collector{}
	result, err := pipeline.Extract(context.Background(), options(), events)
	require.NoError(t, err)

	assert.Equal(t, "demo", result.Namespace)
	assert.Equal(t, pipeline.Stats{Total: 3, Files: 4, Failed: 1, Raw: 4}, result.Stats)

	var texts []string
	for _, u := range result.Texts {
		texts = append(texts, u.Text)
	}
	// broken.js is skipped, the pug template is noted and skipped
	assert.Equal(t, []string{"你好", "标题", "脚本"}, texts)

	require.Len(t, result.Duplicates, 1)
	assert.Equal(t, "你好", result.Duplicates[0].Text)
	assert.Equal(t, []units.Location{
		{File: "src/ok.vue", Line: 1, Column: 14},
		{File: "src/page.html", Line: 1, Column: 5},
	}, result.Duplicates[0].Locations)

	files := map[string]bool{}
	for _, w := range result.Warnings {
		assert.True(t, w.Level >= log.LevelWarn, w.Message)
		files[w.File] = true
	}
	assert.Equal(t, map[string]bool{"src/broken.js": true, "src/pug.vue": true}, files)
	assert.NotEmpty(t, events.AtLeast(log.LevelWarn))
}

func TestExtractLenient(t *testing.T) {
	opts := options()
	opts.Lenient = true
	result, err := pipeline.Extract(context.Background(), opts, nil)
	require.NoError(t, err)

	assert.Equal(t, 0, result.Stats.Failed)
	assert.Equal(t, "坏的", result.Texts[0].Text)
	assert.Equal(t, "src/broken.js", result.Texts[0].Location.File)
}

func TestExtractDeterministic(t *testing.T) {
	serial := options()
	serial.Concurrency = 1
	parallel := options()
	parallel.Concurrency = 8

	a, err := pipeline.Extract(context.Background(), serial, nil)
	require.NoError(t, err)
	b, err := pipeline.Extract(context.Background(), parallel, nil)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestExtractInvalidOptions(t *testing.T) {
	opts := options()
	opts.Namespace = ""
	_, err := pipeline.Extract(context.Background(), opts, nil)
	assert.True(t, errors.Is(err, config.ErrNoNamespace))

	opts = options()
	opts.Scripts = config.StringList{"klingon"}
	_, err = pipeline.Extract(context.Background(), opts, nil)
	assert.Error(t, err)
}

func TestExtractCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := pipeline.Extract(ctx, options(), nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExtractNoFiles(t *testing.T) {
	opts := options()
	opts.Include = config.StringList{"**/*.tsx"}
	result, err := pipeline.Extract(context.Background(), opts, nil)
	require.NoError(t, err)
	assert.NotNil(t, result.Texts)
	assert.Empty(t, result.Texts)
	assert.Equal(t, 0, result.Stats.Files)
}
