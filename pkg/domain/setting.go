package domain

import "strings"

// DefaultRelevanceWeight is used when a user never set the relevance/recency dial
const DefaultRelevanceWeight = 60

// UserSettings holds persisted per-user ranking settings
type UserSettings struct {
	RelevanceWeight *int               `json:"relevance_weight,omitempty"`
	MutedTerms      []string           `json:"muted_terms,omitempty"`
	SourceWeights   map[Source]float64 `json:"source_weights,omitempty"`
}

// UserScoringContext is the per-request personalization input of the scorer
type UserScoringContext struct {
	Preferences     []string           // saved topics, oldest first
	RecentSearches  []string           // most recent first
	MutedTerms      []string           // lowercased
	SourceWeights   map[Source]float64 // baseline 1.0
	RelevanceWeight int                // 0..100
}

// DefaultScoringContext returns a context with every default resolved
func DefaultScoringContext() UserScoringContext {
	return UserScoringContext{
		Preferences:     []string{},
		RecentSearches:  []string{},
		MutedTerms:      []string{},
		SourceWeights:   map[Source]float64{},
		RelevanceWeight: DefaultRelevanceWeight,
	}
}

// Apply resolves settings into the context, missing fields keep defaults
func (c *UserScoringContext) Apply(s UserSettings) {
	if s.RelevanceWeight != nil {
		c.RelevanceWeight = clampWeight(*s.RelevanceWeight)
	}
	c.MutedTerms = c.MutedTerms[:0]
	for _, t := range s.MutedTerms {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			c.MutedTerms = append(c.MutedTerms, t)
		}
	}
	c.SourceWeights = make(map[Source]float64, len(s.SourceWeights))
	for k, v := range s.SourceWeights {
		c.SourceWeights[k] = v
	}
}

// NormalizedWeight returns the relevance dial in 0..1
func (c *UserScoringContext) NormalizedWeight() float64 {
	return float64(clampWeight(c.RelevanceWeight)) / 100
}

func clampWeight(w int) int {
	switch {
	case w < 0:
		return 0
	case w > 100:
		return 100
	}
	return w
}
