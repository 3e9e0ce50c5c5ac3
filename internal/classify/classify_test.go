package classify_test

import (
	"testing"

	"bennypowers.dev/i18n-extract/internal/classify"
	"bennypowers.dev/i18n-extract/internal/units"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsTranslatable(t *testing.T) {
	c := classify.Default()
	tests := []struct {
		text string
		want bool
	}{
		{"你好", true},
		{"Hello 世界", true},
		{"hello", false},
		{"", false},
		{"こんにちは", false},
		{"안녕하세요", false},
		{"123", false},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, c.IsTranslatable(tt.text))
		})
	}
}

func TestShouldExclude(t *testing.T) {
	c := classify.Default()
	tests := []struct {
		name string
		text string
		ctx  *units.Context
		want bool
	}{
		{name: "plain chinese", text: "提交成功", want: false},
		{name: "relative path", text: "./图片/头像.png", want: true},
		{name: "parent path", text: "../图片.png", want: true},
		{name: "absolute path", text: "/static/图片.png", want: true},
		{name: "scoped module", text: "@/组件", want: true},
		{name: "binding prefix", text: ":标题", want: true},
		{name: "directive prefix", text: "v-标题", want: true},
		{name: "bare identifier", text: "primaryButton", want: true},
		{name: "url", text: "https://例子.com", want: true},
		{name: "digits and punctuation", text: "12,345.00 !", want: true},
		{name: "chinese punctuation only", text: "。，！", want: true},
		{name: "class attribute", text: "红色", ctx: &units.Context{AttributeName: "class"}, want: true},
		{name: "is attribute", text: "组件", ctx: &units.Context{AttributeName: "is"}, want: true},
		{name: "title attribute", text: "标题", ctx: &units.Context{AttributeName: "title"}, want: false},
		{name: "ellipsis prefix is prose", text: "...加载中", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.ShouldExclude(tt.text, tt.ctx))
		})
	}
}

func TestAccept(t *testing.T) {
	c := classify.Default()
	assert.True(t, c.Accept("你好", nil))
	assert.False(t, c.Accept("hello", nil))
	assert.False(t, c.Accept("红色", &units.Context{AttributeName: "class"}))
}

func TestNew(t *testing.T) {
	t.Run("scripts widen the target ranges", func(t *testing.T) {
		c, err := classify.New([]string{"han", "Hiragana"}, nil)
		require.NoError(t, err)
		assert.True(t, c.IsTranslatable("こんにちは"))
		assert.False(t, c.IsTranslatable("안녕"))
		assert.True(t, c.ShouldExclude("红", &units.Context{AttributeName: "class"}))
	})

	t.Run("cjk covers every script", func(t *testing.T) {
		c, err := classify.New([]string{"cjk"}, nil)
		require.NoError(t, err)
		assert.True(t, c.IsTranslatable("안녕"))
		assert.True(t, c.IsTranslatable("カタカナ"))
	})

	t.Run("custom excluded attributes replace the default", func(t *testing.T) {
		c, err := classify.New(nil, []string{"data-track"})
		require.NoError(t, err)
		assert.False(t, c.ShouldExclude("红色", &units.Context{AttributeName: "class"}))
		assert.True(t, c.ShouldExclude("埋点", &units.Context{AttributeName: "data-track"}))
	})

	t.Run("unknown script", func(t *testing.T) {
		_, err := classify.New([]string{"klingon"}, nil)
		assert.Error(t, err)
	})
}

func TestExcludesAttribute(t *testing.T) {
	c := classify.Default()
	assert.True(t, c.ExcludesAttribute("class"))
	assert.True(t, c.ExcludesAttribute("is"))
	assert.False(t, c.ExcludesAttribute("placeholder"))
}
