// Package tags merges the tags MPD indexes with the raw comments read from
// the file itself.
package tags

import (
	"slices"
	"strings"

	"github.com/llehouerou/tides/internal/mpd"
)

// Tags holds the two tag sources of a song.
type Tags struct {
	native   []mpd.Tag
	comments []mpd.Tag
}

// New returns Tags over native (indexed) tags and raw comments.
func New(native, comments []mpd.Tag) Tags {
	return Tags{native: native, comments: comments}
}

// Get returns every value of tag, native values first. Matching ignores
// case, and adjacent duplicates are dropped.
func (t Tags) Get(tag string) []string {
	var vals []string
	for _, src := range [][]mpd.Tag{t.native, t.comments} {
		for _, kv := range src {
			if strings.EqualFold(kv.Key, tag) {
				vals = append(vals, kv.Value)
			}
		}
	}
	return slices.Compact(vals)
}

// Lookup is Get with a presence flag.
func (t Tags) Lookup(tag string) ([]string, bool) {
	vals := t.Get(tag)
	return vals, len(vals) > 0
}

// Joined returns the values of tag joined with ", ", or "" when absent.
func (t Tags) Joined(tag string) string {
	return strings.Join(t.Get(tag), ", ")
}
