package extract_test

import (
	"testing"

	"bennypowers.dev/i18n-extract/internal/extract"
	"bennypowers.dev/i18n-extract/internal/keygen"
	"bennypowers.dev/i18n-extract/internal/log"
	"bennypowers.dev/i18n-extract/internal/parser"
	"bennypowers.dev/i18n-extract/internal/sfc"
	"bennypowers.dev/i18n-extract/internal/units"
	"github.com/stretchr/testify/require"
)

const namespace = "app"

func newRegistry() *keygen.Registry {
	return keygen.NewRegistry(keygen.Generator{Namespace: namespace})
}

func key(text string) string {
	return keygen.GenerateKey(text, namespace, keygen.DefaultHashLength)
}

type fixture struct {
	x      *extract.Extractor
	events *log.Collector
	file   extract.File
}

func newFixture(path string) *fixture {
	events := &log.Collector{}
	x := extract.New()
	x.Reporter = events
	return &fixture{
		x:      x,
		events: events,
		file:   extract.File{Path: path, ComponentName: sfc.ComponentName(path)},
	}
}

func (f *fixture) logic(t *testing.T, lang parser.Language, src string) []units.Unit {
	t.Helper()
	seg := &sfc.Segment{Content: src, StartLine: 1, Lang: lang}
	got, err := f.x.Logic(seg, f.file, newRegistry())
	require.NoError(t, err)
	return got
}

func (f *fixture) markup(t *testing.T, src string) []units.Unit {
	t.Helper()
	seg := &sfc.Segment{Content: src, StartLine: 1, Lang: parser.HTML}
	got, err := f.x.Markup(seg, f.file, newRegistry())
	require.NoError(t, err)
	return got
}

func texts(us []units.Unit) []string {
	out := make([]string, len(us))
	for i, u := range us {
		out[i] = u.Text
	}
	return out
}

func segment(content string, line, col int) *sfc.Segment {
	return &sfc.Segment{Content: content, StartLine: line, StartCol: col, Lang: parser.HTML}
}
