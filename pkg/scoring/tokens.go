package scoring

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// tokenize lowercases s, splits on anything but letters and digits and drops one-rune tokens
func tokenize(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	res := fields[:0]
	for _, f := range fields {
		if utf8.RuneCountInString(f) >= 2 {
			res = append(res, f)
		}
	}
	return res
}

// slugify lowercases s and replaces runs of non-alphanumerics with a dash
func slugify(s string) string {
	return strings.Join(strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}), "-")
}

func uniq(tokens []string) []string {
	seen := make(map[string]bool, len(tokens))
	res := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if !seen[t] {
			seen[t] = true
			res = append(res, t)
		}
	}
	return res
}

func toSet(tokens []string) map[string]bool {
	res := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		res[t] = true
	}
	return res
}

func countIn(terms []string, set map[string]bool) int {
	n := 0
	for _, t := range terms {
		if set[t] {
			n++
		}
	}
	return n
}
