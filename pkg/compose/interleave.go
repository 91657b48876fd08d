package compose

import "github.com/umputun/pryzm/pkg/domain"

// maxStreak is how many consecutive items one source may supply while others still have items
const maxStreak = 2

// Interleave spreads sources across the list. Items are grouped by source keeping their order,
// then the next item is taken from a random source with items left. A source that supplied the
// last maxStreak items is skipped while any other source has items. The result is random per call.
func Interleave(items []domain.FeedItem, intn func(n int) int) []domain.FeedItem {
	var order []domain.Source
	groups := map[domain.Source][]domain.FeedItem{}
	for _, item := range items {
		if _, ok := groups[item.Source]; !ok {
			order = append(order, item.Source)
		}
		groups[item.Source] = append(groups[item.Source], item)
	}

	res := make([]domain.FeedItem, 0, len(items))
	var last domain.Source
	streak := 0
	available := make([]domain.Source, 0, len(order))
	for len(res) < len(items) {
		available = available[:0]
		for _, src := range order {
			if len(groups[src]) == 0 {
				continue
			}
			if streak >= maxStreak && src == last {
				continue
			}
			available = append(available, src)
		}
		if len(available) == 0 { // only the streaking source is left
			available = append(available, last)
		}

		src := available[intn(len(available))]
		res = append(res, groups[src][0])
		groups[src] = groups[src][1:]
		if src == last {
			streak++
			continue
		}
		last, streak = src, 1
	}
	return res
}
