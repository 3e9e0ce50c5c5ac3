package extract

import (
	"strings"

	"bennypowers.dev/i18n-extract/internal/log"
	"bennypowers.dev/i18n-extract/internal/parser/css"
	"bennypowers.dev/i18n-extract/internal/sfc"
	"bennypowers.dev/i18n-extract/internal/units"
)

// Styles reports translatable strings in generated content. A stylesheet
// cannot call the translate function, so these never become units; each
// one is reported as a warning at its location and counted.
func (x *Extractor) Styles(seg *sfc.Segment, f File) (int, error) {
	src := []byte(seg.Content)

	p := css.AcquireParser()
	defer css.ReleaseParser(p)

	values, err := p.StringValues(src)
	if err != nil {
		return 0, sfc.NewSegmentError(f.Path, "style", err.Error())
	}

	loc := newLocator(f.Path, seg, src)
	found := 0
	for _, v := range values {
		if v.Property != "content" {
			continue
		}
		text := strings.TrimSpace(v.Value)
		ctx := units.Context{ComponentName: f.ComponentName, ComponentPath: f.Path}
		if !x.Classifier.Accept(text, &ctx) {
			continue
		}
		found++
		x.report(log.LevelWarn, f.Path, "%s: style content %q cannot be translated, move it into markup", loc.at(v.Offset), text)
	}
	return found, nil
}
