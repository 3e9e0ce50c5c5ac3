package dedup_test

import (
	"testing"

	"bennypowers.dev/i18n-extract/internal/dedup"
	"bennypowers.dev/i18n-extract/internal/units"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unit(key, text, file string, line int) units.Unit {
	return units.Unit{
		Key:      key,
		Text:     text,
		Type:     units.LiteralString,
		Params:   []units.Param{},
		Location: units.Location{File: file, Line: line, Column: 1},
	}
}

func TestDeduplicateMerge(t *testing.T) {
	in := []units.Unit{
		unit("app_1", "确定", "a.vue", 3),
		unit("app_2", "取消", "a.vue", 4),
		unit("app_1", "确定", "b.vue", 7),
		unit("app_1", "确定", "c.vue", 9),
	}
	res := dedup.Deduplicate(in)

	require.Len(t, res.Texts, 2)
	assert.Equal(t, in[0], res.Texts[0])
	assert.Equal(t, in[1], res.Texts[1])

	require.Len(t, res.Duplicates, 1)
	d := res.Duplicates[0]
	assert.Equal(t, "app_1", d.Key)
	assert.Equal(t, "确定", d.Text)
	assert.Equal(t, 3, d.Count)
	assert.Equal(t, []units.Location{in[0].Location, in[2].Location, in[3].Location}, d.Locations)

	assert.Empty(t, res.Conflicts)
	assert.Equal(t, 4, res.Raw())
	assert.Equal(t, 2, res.Reused())
}

func TestDeduplicateConflict(t *testing.T) {
	in := []units.Unit{
		unit("app_1", "保存", "a.vue", 1),
		unit("app_1", "删除", "b.vue", 2),
		unit("app_1", "保存", "c.vue", 3),
	}
	res := dedup.Deduplicate(in)

	require.Len(t, res.Texts, 1)
	assert.Equal(t, "保存", res.Texts[0].Text)

	require.Len(t, res.Conflicts, 1)
	c := res.Conflicts[0]
	assert.Equal(t, "app_1", c.Key)
	assert.Equal(t, []dedup.Occurrence{
		{Text: "保存", Location: in[0].Location},
		{Text: "删除", Location: in[1].Location},
	}, c.Texts)

	require.Len(t, res.Duplicates, 1)
	assert.Equal(t, 3, res.Duplicates[0].Count)
}

func TestDeduplicateDoesNotMutate(t *testing.T) {
	in := []units.Unit{unit("k", "一", "a", 1), unit("k", "一", "b", 2)}
	before := append([]units.Unit(nil), in...)
	dedup.Deduplicate(in)
	assert.Equal(t, before, in)
}

func TestDeduplicateEmpty(t *testing.T) {
	res := dedup.Deduplicate(nil)
	assert.Empty(t, res.Texts)
	assert.Empty(t, res.Duplicates)
	assert.Empty(t, res.Conflicts)
	assert.Zero(t, res.Raw())
}
