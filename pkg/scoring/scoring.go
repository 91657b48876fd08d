// Package scoring ranks feed items against a query and a user scoring context.
//
// Every item gets a composite of text relevance, personalization boosts and recency,
// blended by the user's relevance dial. Items mentioning a muted term are dropped.
package scoring

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/umputun/pryzm/pkg/domain"
)

// DefaultTopN is the default size of the ranked window
const DefaultTopN = 50

const (
	mutedScore    = -1000.0 // sentinel for items with a muted term
	mutedCutoff   = -10.0   // items scored at or below are dropped
	maxRecent     = 3       // recent searches considered
	prefTitleStep = 15.0
	prefTitleCap  = 40.0
	prefTextStep  = 3.0
	prefTextCap   = 20.0
	tagStep       = 4.0
	tagCap        = 20.0
	sourceCap     = 15.0
)

var recentCeilings = [maxRecent]float64{15, 12, 9}

// Scorer ranks items, safe for concurrent use
type Scorer struct {
	topN int
	now  func() time.Time
}

// Option configures Scorer
type Option func(s *Scorer)

// WithNow sets the reference clock used for recency
func WithNow(now func() time.Time) Option {
	return func(s *Scorer) { s.now = now }
}

// WithTopN sets the size of the ranked window
func WithTopN(n int) Option {
	return func(s *Scorer) {
		if n > 0 {
			s.topN = n
		}
	}
}

// New makes a scorer with default top N and wall clock
func New(opts ...Option) *Scorer {
	s := &Scorer{topN: DefaultTopN, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Breakdown has per-component values of one item score
type Breakdown struct {
	Muted          bool
	TextRelevance  float64
	Preference     float64
	RecentSearch   float64
	TagAffinity    float64
	SourceAffinity float64
	Recency        float64
	Final          float64
}

// RelevanceSum is the sum of all relevance components
func (b Breakdown) RelevanceSum() float64 {
	return b.TextRelevance + b.Preference + b.RecentSearch + b.TagAffinity + b.SourceAffinity
}

// Score returns copies of the items with scores set, muted items removed, sorted by score
// then by publish date (undated last) and truncated to top N. A nil context means no personalization.
func (s *Scorer) Score(items []domain.FeedItem, query string, uc *domain.UserScoringContext) []domain.FeedItem {
	q := newQueryContext(query, uc, s.now())
	res := make([]domain.FeedItem, 0, len(items))
	for _, item := range items {
		b := q.breakdown(item)
		if b.Final <= mutedCutoff {
			continue
		}
		item.Score = b.Final
		item.Tags = append([]string(nil), item.Tags...)
		res = append(res, item)
	}

	sort.SliceStable(res, func(i, j int) bool { return ranksBefore(res[i], res[j]) })
	if len(res) > s.topN {
		res = res[:s.topN]
	}
	return res
}

// Breakdown returns score components of a single item
func (s *Scorer) Breakdown(item domain.FeedItem, query string, uc *domain.UserScoringContext) Breakdown {
	return newQueryContext(query, uc, s.now()).breakdown(item)
}

// ranksBefore orders by score desc, then publish date desc with undated items last
func ranksBefore(a, b domain.FeedItem) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	switch {
	case a.PublishedAt == nil:
		return false
	case b.PublishedAt == nil:
		return true
	}
	return a.PublishedAt.After(*b.PublishedAt)
}

// queryContext holds everything derived once per scoring pass
type queryContext struct {
	now        time.Time
	phrase     string
	queryTerms []string
	prefTerms  []string
	prefText   string
	prefSlug   string
	recent     [][]string
	muted      []string
	weights    map[domain.Source]float64
	dial       float64
}

func newQueryContext(query string, uc *domain.UserScoringContext, now time.Time) *queryContext {
	if uc == nil {
		def := domain.DefaultScoringContext()
		uc = &def
	}
	q := &queryContext{
		now:        now,
		phrase:     strings.ToLower(strings.TrimSpace(query)),
		queryTerms: uniq(tokenize(query)),
		prefTerms:  uniq(tokenize(strings.Join(uc.Preferences, " "))),
		prefText:   strings.ToLower(strings.Join(uc.Preferences, " ")),
		weights:    uc.SourceWeights,
		dial:       uc.NormalizedWeight(),
	}

	for _, m := range uc.MutedTerms {
		if m = strings.ToLower(strings.TrimSpace(m)); m != "" {
			q.muted = append(q.muted, m)
		}
	}

	slugs := make([]string, 0, len(uc.Preferences))
	for _, p := range uc.Preferences {
		slugs = append(slugs, slugify(p))
	}
	q.prefSlug = strings.Join(slugs, " ")

	for i, s := range uc.RecentSearches {
		if i >= maxRecent {
			break
		}
		q.recent = append(q.recent, uniq(tokenize(s)))
	}
	return q
}

func (q *queryContext) breakdown(item domain.FeedItem) Breakdown {
	title := strings.ToLower(item.Title)
	combined := strings.ToLower(strings.Join([]string{item.Title, item.SummaryText(), strings.Join(item.Tags, " ")}, " "))

	for _, m := range q.muted {
		if strings.Contains(combined, m) {
			return Breakdown{Muted: true, Final: mutedScore}
		}
	}

	titleSet := toSet(tokenize(title))
	combinedSet := toSet(tokenize(combined))

	b := Breakdown{
		TextRelevance:  q.textRelevance(title, titleSet, combinedSet),
		Preference:     q.preferenceBoost(titleSet, combinedSet),
		RecentSearch:   q.recentBoost(combinedSet),
		TagAffinity:    q.tagAffinity(item.Tags),
		SourceAffinity: q.sourceAffinity(item.Source),
		Recency:        q.recency(item.PublishedAt),
	}
	final := q.dial*(b.RelevanceSum()/2) + (1-q.dial)*(b.Recency*5)
	b.Final = math.Round(final*10) / 10
	return b
}

func (q *queryContext) textRelevance(title string, titleSet, combinedSet map[string]bool) float64 {
	if q.phrase != "" && strings.Contains(title, q.phrase) {
		return 100
	}
	if len(q.queryTerms) == 0 {
		return 0
	}
	for _, t := range q.queryTerms {
		if titleSet[t] {
			return 80
		}
	}
	found := countIn(q.queryTerms, combinedSet)
	if found == len(q.queryTerms) {
		return 70
	}
	return 50 * float64(found) / float64(len(q.queryTerms))
}

func (q *queryContext) preferenceBoost(titleSet, combinedSet map[string]bool) float64 {
	if n := countIn(q.prefTerms, titleSet); n > 0 {
		return math.Min(float64(n)*prefTitleStep, prefTitleCap)
	}
	return math.Min(float64(countIn(q.prefTerms, combinedSet))*prefTextStep, prefTextCap)
}

func (q *queryContext) recentBoost(combinedSet map[string]bool) float64 {
	best := 0.0
	for i, terms := range q.recent {
		if countIn(terms, combinedSet) > 0 {
			best = math.Max(best, recentCeilings[i])
		}
	}
	return best
}

func (q *queryContext) tagAffinity(tags []string) float64 {
	if q.prefText == "" {
		return 0
	}
	n := 0
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		if strings.Contains(q.prefText, tag) || strings.Contains(q.prefSlug, tag) {
			n++
		}
	}
	return math.Min(float64(n)*tagStep, tagCap)
}

func (q *queryContext) sourceAffinity(src domain.Source) float64 {
	w, ok := q.weights[src]
	if !ok || w <= 1 {
		return 0
	}
	return math.Min((w-1)*sourceCap, sourceCap)
}

// recency is tiered by age, future dates count as fresh
func (q *queryContext) recency(published *time.Time) float64 {
	if published == nil {
		return 0
	}
	age := q.now.Sub(*published)
	switch {
	case age <= 24*time.Hour:
		return 20
	case age <= 72*time.Hour:
		return 12
	case age <= 168*time.Hour:
		return 5
	}
	return 0
}
