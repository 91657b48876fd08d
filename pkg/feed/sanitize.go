package feed

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/umputun/pryzm/pkg/domain"
)

// SummaryMaxLen caps summary length in runes
const SummaryMaxLen = 500

var stripPolicy = bluemonday.StrictPolicy()

// cleanText strips markup, unescapes entities and collapses whitespace
func cleanText(s string) string {
	if s == "" {
		return ""
	}
	s = html.UnescapeString(stripPolicy.Sanitize(s))
	return strings.Join(strings.Fields(s), " ")
}

// truncate cuts s to at most n runes
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return strings.TrimSpace(string(r[:n]))
}

// summaryOf returns cleaned and capped summary, nil if nothing left
func summaryOf(s string) *string {
	return domain.StrPtr(truncate(cleanText(s), SummaryMaxLen))
}

// normalizeTags lowercases, trims and dedups tags keeping first-seen order
func normalizeTags(groups ...[]string) []string {
	seen := map[string]bool{}
	res := []string{}
	for _, g := range groups {
		for _, t := range g {
			t = strings.ToLower(strings.TrimSpace(t))
			if t == "" || seen[t] {
				continue
			}
			seen[t] = true
			res = append(res, t)
		}
	}
	return res
}

// titleOrDefault returns cleaned title or the untitled placeholder
func titleOrDefault(s string) string {
	if t := cleanText(s); t != "" {
		return t
	}
	return domain.UntitledItem
}
