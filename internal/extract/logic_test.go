package extract_test

import (
	"errors"
	"testing"

	"bennypowers.dev/i18n-extract/internal/log"
	"bennypowers.dev/i18n-extract/internal/parser"
	"bennypowers.dev/i18n-extract/internal/sfc"
	"bennypowers.dev/i18n-extract/internal/units"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogicLiteralString(t *testing.T) {
	f := newFixture("src/api.js")
	got := f.logic(t, parser.JavaScript, "const msg = '你好'\n")
	require.Len(t, got, 1)

	u := got[0]
	assert.Equal(t, key("你好"), u.Key)
	assert.Equal(t, units.LiteralString, u.Type)
	assert.Equal(t, "你好", u.Text)
	assert.Empty(t, u.OriginalText)
	assert.NotNil(t, u.Params)
	assert.Equal(t, "msg", u.Context.VariableName)
	assert.Equal(t, units.Location{File: "src/api.js", Line: 1, Column: 13}, u.Location)
	assert.Equal(t, "t('"+u.Key+"')", u.Replacement.Logic)
}

func TestLogicInterpolatedTemplate(t *testing.T) {
	f := newFixture("a.js")
	got := f.logic(t, parser.JavaScript, "const s = `欢迎${name}使用`")
	require.Len(t, got, 1)

	u := got[0]
	assert.Equal(t, units.InterpolatedTemplate, u.Type)
	assert.Equal(t, "欢迎{name}使用", u.Text)
	assert.Equal(t, "`欢迎${...}使用`", u.OriginalText)
	assert.Equal(t, []units.Param{{Name: "name", Expression: "name"}}, u.Params)
	assert.Equal(t, "t('"+u.Key+"', { name: name })", u.Replacement.Logic)
}

func TestLogicConcatenation(t *testing.T) {
	f := newFixture("a.js")
	got := f.logic(t, parser.JavaScript, "const s = '你好，' + name + '!'")
	require.Len(t, got, 1)

	u := got[0]
	assert.Equal(t, units.Concatenation, u.Type)
	assert.Equal(t, "你好，{name}!", u.Text)
	assert.Equal(t, "'你好，' + ... + '!'", u.OriginalText)
	assert.Equal(t, []units.Param{{Name: "name", Expression: "name"}}, u.Params)
	assert.Equal(t, 11, u.Location.Column)
}

func TestLogicPlaceholderNames(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		text   string
		params []units.Param
	}{
		{
			name:   "member access",
			src:    "x = `用户${user.profile.userName}登录`",
			text:   "用户{userName}登录",
			params: []units.Param{{Name: "userName", Expression: "user.profile.userName"}},
		},
		{
			name:   "positional fallback",
			src:    "x = `共${items.length + 1}项，${format(date)}`",
			text:   "共{param0}项，{param1}",
			params: []units.Param{{Name: "param0", Expression: "items.length + 1"}, {Name: "param1", Expression: "format(date)"}},
		},
		{
			name:   "parenthesized",
			src:    "x = '剩余' + (count) + '个'",
			text:   "剩余{count}个",
			params: []units.Param{{Name: "count", Expression: "count"}},
		},
		{
			name:   "same name different expressions",
			src:    "x = `${a.name}和${b.name}`",
			text:   "{name}和{name_1}",
			params: []units.Param{{Name: "name", Expression: "a.name"}, {Name: "name_1", Expression: "b.name"}},
		},
		{
			name:   "repeated expression",
			src:    "x = n + '对' + n",
			text:   "{n}对{n}",
			params: []units.Param{{Name: "n", Expression: "n"}, {Name: "n", Expression: "n"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture("a.js")
			got := f.logic(t, parser.JavaScript, tt.src)
			require.Len(t, got, 1)
			assert.Equal(t, tt.text, got[0].Text)
			assert.Equal(t, tt.params, got[0].Params)
		})
	}
}

func TestLogicRepeatedParamRenderedOnce(t *testing.T) {
	f := newFixture("a.js")
	got := f.logic(t, parser.JavaScript, "x = n + '对' + n")
	require.Len(t, got, 1)
	assert.Equal(t, "t('"+got[0].Key+"', { n: n })", got[0].Replacement.Logic)
}

func TestLogicExclusions(t *testing.T) {
	tests := map[string]string{
		"import source":      "import zh from '中文包'",
		"side-effect import": "import '中文包'",
		"export source":      "export * from '中文包'",
		"require":            "const m = require('中文模块')",
		"dynamic import":     "const m = import('中文模块')",
		"object key":         "const m = { '中文键': 1 }",
		"computed key":       "const m = { ['计算']: 1 }",
		"computed method":    "class A { ['计算方法']() {} }",
		"computed field":     "class A { ['计算字段'] = 1 }",
		"method name":        "class A { '中文方法'() {} }",
		"tagged template":    "const c = css`内容`",
		"excluded prefix":    "const p = './图片.png'",
		"no target script":   "const s = 'hello world'",
		"punctuation only":   "const s = '！？'",
		"literal type":       "let s: '中文' = x",
		"property signature": "interface A { '中文': string }",
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			f := newFixture("a.ts")
			assert.Empty(t, f.logic(t, parser.TypeScript, src))
		})
	}
}

func TestLogicConcatenationConsumed(t *testing.T) {
	f := newFixture("a.js")
	got := f.logic(t, parser.JavaScript, "alert('保存' + name + '成功')")
	require.Len(t, got, 1)
	assert.Equal(t, units.Concatenation, got[0].Type)
	assert.Equal(t, "alert", got[0].Context.FunctionName)
}

func TestLogicTemplateSubstitutions(t *testing.T) {
	f := newFixture("a.js")
	got := f.logic(t, parser.JavaScript, "x = `${ok ? '成功' : '失败'}`")
	assert.Equal(t, []string{"成功", "失败"}, texts(got))
	for _, u := range got {
		assert.Equal(t, units.LiteralString, u.Type)
	}
}

func TestLogicTemplateWithoutSubstitutions(t *testing.T) {
	f := newFixture("a.js")
	got := f.logic(t, parser.JavaScript, "x = `纯文本`")
	require.Len(t, got, 1)
	assert.Equal(t, units.InterpolatedTemplate, got[0].Type)
	assert.Equal(t, "纯文本", got[0].Text)
	assert.Equal(t, "`纯文本`", got[0].OriginalText)
	assert.Empty(t, got[0].Params)
	assert.Equal(t, "t('"+got[0].Key+"')", got[0].Replacement.Logic)
	assert.Equal(t, 1, got[0].Location.Line)
	assert.Equal(t, 5, got[0].Location.Column)
}

func TestLogicIdenticalTextsShareKey(t *testing.T) {
	f := newFixture("a.js")
	got := f.logic(t, parser.JavaScript, "a = '确定'\nb = '确定'\n")
	require.Len(t, got, 2)
	assert.Equal(t, got[0].Key, got[1].Key)
	assert.Equal(t, 1, got[0].Location.Line)
	assert.Equal(t, 2, got[1].Location.Line)
}

const optionsComponent = `export default {
  data() {
    return { title: '个人中心' }
  },
  computed: {
    label() { return '标签' }
  },
  methods: {
    submit() {
      this.$message.success('提交成功')
    },
    reset: function () {
      confirm('确认重置')
    }
  }
}
`

func TestLogicContextOptionsAPI(t *testing.T) {
	f := newFixture("src/user-profile.vue")
	f.file.Component = true
	got := f.logic(t, parser.JavaScript, optionsComponent)
	require.Len(t, got, 4)

	data := got[0]
	assert.Equal(t, "个人中心", data.Text)
	assert.Equal(t, "title", data.Context.PropertyName)
	assert.Equal(t, "data", data.Context.MethodName)
	assert.Equal(t, "data", data.Context.Scope)
	assert.Equal(t, "UserProfile", data.Context.ComponentName)
	assert.Equal(t, "this.$t('"+data.Key+"')", data.Replacement.Logic)

	assert.Equal(t, "computed", got[1].Context.Scope)
	assert.Equal(t, "label", got[1].Context.MethodName)

	submit := got[2]
	assert.Equal(t, "提交成功", submit.Text)
	assert.Equal(t, "methods", submit.Context.Scope)
	assert.Equal(t, "submit", submit.Context.MethodName)
	assert.Equal(t, "success", submit.Context.FunctionName)
	assert.Equal(t, units.Location{File: "src/user-profile.vue", Line: 10, Column: 29}, submit.Location)

	reset := got[3]
	assert.Equal(t, "methods", reset.Context.Scope)
	assert.Equal(t, "reset", reset.Context.PropertyName)
	assert.Equal(t, "confirm", reset.Context.FunctionName)
}

func TestLogicContextSetup(t *testing.T) {
	f := newFixture("src/a.vue")
	f.file.Component = true
	seg := &sfc.Segment{
		Content:   "\nconst msg = ref('你好')\nfunction save() { notify('已保存') }\n",
		StartLine: 5,
		Lang:      parser.TypeScript,
		Setup:     true,
	}
	got, err := f.x.Logic(seg, f.file, newRegistry())
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "setup", got[0].Context.Scope)
	assert.Equal(t, "msg", got[0].Context.VariableName)
	assert.Equal(t, "ref", got[0].Context.FunctionName)
	assert.Equal(t, 6, got[0].Location.Line)
	assert.Equal(t, "t('"+got[0].Key+"')", got[0].Replacement.Logic)

	assert.Equal(t, "setup", got[1].Context.Scope)
	assert.Equal(t, 7, got[1].Location.Line)
}

func TestLogicJSX(t *testing.T) {
	f := newFixture("src/Card.jsx")
	got := f.logic(t, parser.JSX, "export const Card = () => (\n  <section title=\"卡片\">\n    欢迎   回来\n  </section>\n)\n")
	require.Len(t, got, 2)

	attr := got[0]
	assert.Equal(t, units.Attribute, attr.Type)
	assert.Equal(t, "卡片", attr.Text)
	assert.Equal(t, "title", attr.Context.AttributeName)
	assert.Equal(t, "section", attr.Context.ParentTag)
	assert.Equal(t, "title={t('"+attr.Key+"')}", attr.Replacement.Logic)

	text := got[1]
	assert.Equal(t, units.TextNode, text.Type)
	assert.Equal(t, "欢迎 回来", text.Text)
	assert.Equal(t, "section", text.Context.ParentTag)
	assert.Equal(t, units.Location{File: "src/Card.jsx", Line: 3, Column: 5}, text.Location)
	assert.Equal(t, "{t('"+text.Key+"')}", text.Replacement.Logic)
}

func TestLogicTSX(t *testing.T) {
	f := newFixture("a.tsx")
	got := f.logic(t, parser.TSX, "const A = (p: Props): JSX.Element => <B label=\"标签\">{`共${p.n}个`}</B>")
	require.Len(t, got, 2)
	assert.Equal(t, "标签", got[0].Text)
	assert.Equal(t, "共{n}个", got[1].Text)
}

func TestLogicSyntaxErrors(t *testing.T) {
	src := "const a = '你好';\nif (\n"

	t.Run("strict", func(t *testing.T) {
		f := newFixture("a.js")
		seg := &sfc.Segment{Content: src, StartLine: 1, Lang: parser.JavaScript}
		got, err := f.x.Logic(seg, f.file, newRegistry())
		require.Error(t, err)
		assert.True(t, errors.Is(err, sfc.ErrSegmentParse))
		assert.Empty(t, got)
	})

	t.Run("lenient", func(t *testing.T) {
		f := newFixture("a.js")
		f.x.Lenient = true
		got := f.logic(t, parser.JavaScript, src)
		assert.Equal(t, []string{"你好"}, texts(got))
		warnings := f.events.AtLeast(log.LevelWarn)
		require.Len(t, warnings, 1)
		assert.Equal(t, "a.js", warnings[0].File)
	})
}
