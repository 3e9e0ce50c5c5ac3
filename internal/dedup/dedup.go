// Package dedup merges text units that share a key across a scan and
// reports keys that were reused or assigned to different texts.
package dedup

import (
	"bennypowers.dev/i18n-extract/internal/collections"
	"bennypowers.dev/i18n-extract/internal/units"
)

// Duplicate is a key seen at two or more locations
type Duplicate struct {
	Key       string           `json:"key"`
	Text      string           `json:"text"`
	Count     int              `json:"count"`
	Locations []units.Location `json:"locations"`
}

// Occurrence is one distinct text of a conflicting key, with the location
// it was first seen at
type Occurrence struct {
	Text     string         `json:"text"`
	Location units.Location `json:"location"`
}

// Conflict is a key carrying more than one distinct text
type Conflict struct {
	Key   string       `json:"key"`
	Texts []Occurrence `json:"texts"`
}

// Result holds the first unit of each key plus the reuse and conflict reports
type Result struct {
	Texts      []units.Unit
	Duplicates []Duplicate
	Conflicts  []Conflict
	raw        int
}

// Raw returns the number of units before merging
func (r Result) Raw() int {
	return r.raw
}

// Reused returns how many units were merged into an earlier one
func (r Result) Reused() int {
	return r.raw - len(r.Texts)
}

type group struct {
	first     int
	locations []units.Location
	texts     *collections.OrderedSet[string]
	seen      map[string]units.Location
}

// Deduplicate groups units by key in first-seen order. The input is not modified.
func Deduplicate(us []units.Unit) Result {
	keys := collections.NewOrderedSet[string]()
	groups := map[string]*group{}
	res := Result{raw: len(us)}

	for _, u := range us {
		g, ok := groups[u.Key]
		if !ok {
			g = &group{
				first: len(res.Texts),
				texts: collections.NewOrderedSet[string](),
				seen:  map[string]units.Location{},
			}
			groups[u.Key] = g
			keys.Add(u.Key)
			res.Texts = append(res.Texts, u)
		}
		g.locations = append(g.locations, u.Location)
		if g.texts.Add(u.Text) {
			g.seen[u.Text] = u.Location
		}
	}

	for _, key := range keys.Members() {
		g := groups[key]
		if len(g.locations) >= 2 {
			res.Duplicates = append(res.Duplicates, Duplicate{
				Key:       key,
				Text:      res.Texts[g.first].Text,
				Count:     len(g.locations),
				Locations: g.locations,
			})
		}
		if g.texts.Len() >= 2 {
			c := Conflict{Key: key}
			for _, text := range g.texts.Members() {
				c.Texts = append(c.Texts, Occurrence{Text: text, Location: g.seen[text]})
			}
			res.Conflicts = append(res.Conflicts, c)
		}
	}
	return res
}
