package catalog

import "github.com/vmunix/marquee/internal/tmdb"

// Displayable returns the items that have a poster or a backdrop, in order.
// The input is not modified.
func Displayable(items []tmdb.Item) []tmdb.Item {
	out := make([]tmdb.Item, 0, len(items))
	for _, it := range items {
		if it.HasArtwork() {
			out = append(out, it)
		}
	}
	return out
}
