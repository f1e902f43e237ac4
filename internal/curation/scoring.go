package curation

import (
	"math"
	"net/url"
	"strings"
	"time"
)

// Component names used in the score breakdown.
const (
	ComponentPopularity  = "popularity"
	ComponentRecency     = "recency"
	ComponentRelevance   = "relevance"
	ComponentSuitability = "suitability"
	ComponentAuthority   = "authority"
)

// VideoWeights blends the video score components.
type VideoWeights struct {
	Popularity  float64
	Recency     float64
	Relevance   float64
	Suitability float64
}

// DocWeights blends the document score components.
type DocWeights struct {
	Authority float64
	Relevance float64
	Recency   float64
}

// Weights configures the blending weights per source family.
type Weights struct {
	Video VideoWeights
	Doc   DocWeights
}

// DefaultWeights returns the default blending weights. Each component
// is normalized into [0,1], so weights summing to 1 keep the blend in
// [0,1] before the floor is applied.
func DefaultWeights() Weights {
	return Weights{
		Video: VideoWeights{Popularity: 0.30, Recency: 0.20, Relevance: 0.30, Suitability: 0.20},
		Doc:   DocWeights{Authority: 0.40, Relevance: 0.40, Recency: 0.20},
	}
}

const (
	// Duration sweet spot for learning videos, in minutes. Suitability
	// peaks at 1.0 inside the band and falls off strictly outside it.
	sweetSpotMinMinutes = 5.0
	sweetSpotMaxMinutes = 30.0

	// neutralSuitability is used when duration is unknown.
	neutralSuitability = 0.5

	// minBlendedScore keeps the blended value inside (0, 1].
	minBlendedScore = 0.01

	// popularityHalfScale controls where popularity reaches 0.5:
	// log10(views) == popularityHalfScale, i.e. ~1000 views.
	popularityHalfScale = 3.0
)

// authorityHosts are recognized official/canonical documentation
// domains. Matching is by exact host after stripping "www.".
var authorityHosts = map[string]struct{}{
	"developer.mozilla.org":  {},
	"docs.python.org":        {},
	"go.dev":                 {},
	"pkg.go.dev":             {},
	"kubernetes.io":          {},
	"docs.docker.com":        {},
	"react.dev":              {},
	"developer.android.com":  {},
	"learn.microsoft.com":    {},
	"docs.oracle.com":        {},
	"docs.aws.amazon.com":    {},
	"cloud.google.com":       {},
	"doc.rust-lang.org":      {},
	"docs.ruby-lang.org":     {},
	"www.postgresql.org":     {},
	"dev.mysql.com":          {},
	"docs.github.com":        {},
	"git-scm.com":            {},
	"developer.apple.com":    {},
	"www.typescriptlang.org": {},
}

// communityHostSuffixes mark community documentation hosting that ranks
// between official docs and unrecognized domains.
var communityHostSuffixes = []string{
	".readthedocs.io",
	".github.io",
	".gitbook.io",
}

const (
	authorityOfficial     = 1.0
	authorityCommunity    = 0.7
	authorityUnrecognized = 0.3
)

// Scorer converts raw candidates into Scored values. Scoring is a pure
// function of the candidate, the query, and the supplied "now": no I/O,
// no shared state.
type Scorer struct {
	weights Weights
}

// NewScorer creates a scorer. Zero-valued weight groups fall back to
// the defaults.
func NewScorer(w Weights) *Scorer {
	def := DefaultWeights()
	if w.Video == (VideoWeights{}) {
		w.Video = def.Video
	}
	if w.Doc == (DocWeights{}) {
		w.Doc = def.Doc
	}
	return &Scorer{weights: w}
}

// Score dispatches on the candidate's source. Video candidates use the
// video components; everything else scores as a document.
func (s *Scorer) Score(c Candidate, query string, now time.Time) Scored {
	if c.Source == SourceVideo {
		return s.ScoreVideo(c, query, now)
	}
	return s.ScoreDoc(c, query, now)
}

// ScoreVideo scores a video candidate from popularity, recency,
// relevance, and duration suitability.
func (s *Scorer) ScoreVideo(c Candidate, query string, now time.Time) Scored {
	components := map[string]float64{
		ComponentPopularity:  popularityScore(c.Metadata.ViewCount),
		ComponentRecency:     recencyScore(c.Metadata.PublishedAt, now),
		ComponentRelevance:   relevanceScore(c.Title, matchQuery(c, query)),
		ComponentSuitability: suitabilityScore(c.Metadata.DurationMinutes),
	}

	w := s.weights.Video
	value := w.Popularity*components[ComponentPopularity] +
		w.Recency*components[ComponentRecency] +
		w.Relevance*components[ComponentRelevance] +
		w.Suitability*components[ComponentSuitability]

	return newScored(c, clampScore(value), components, now)
}

// ScoreDoc scores an article/doc candidate from domain authority,
// relevance, and recency. A missing publish date degrades recency to
// zero; it never errors.
func (s *Scorer) ScoreDoc(c Candidate, query string, now time.Time) Scored {
	components := map[string]float64{
		ComponentAuthority: authorityScore(c.URL),
		ComponentRelevance: relevanceScore(c.Title, matchQuery(c, query)),
		ComponentRecency:   recencyScore(c.Metadata.PublishedAt, now),
	}

	w := s.weights.Doc
	value := w.Authority*components[ComponentAuthority] +
		w.Relevance*components[ComponentRelevance] +
		w.Recency*components[ComponentRecency]

	return newScored(c, clampScore(value), components, now)
}

func newScored(c Candidate, value float64, components map[string]float64, now time.Time) Scored {
	return Scored{
		Candidate: c,
		Score: Score{
			Value:      value,
			Components: components,
			ScoredAt:   now,
		},
	}
}

// matchQuery prefers the query the discovery adapter actually matched
// the candidate against, falling back to the caller's query.
func matchQuery(c Candidate, query string) string {
	if c.Metadata.MatchedQuery != "" {
		return c.Metadata.MatchedQuery
	}
	return query
}

// popularityScore is strictly increasing in view count, normalized into
// [0, 1): lv/(lv+k) over the log10 of the view count, so an
// order-of-magnitude more views always scores higher.
func popularityScore(views int64) float64 {
	if views <= 0 {
		return 0
	}
	lv := math.Log10(float64(views) + 1)
	return lv / (lv + popularityHalfScale)
}

// recencyScore is strictly decreasing in content age:
// 1 / (1 + log(days_old + 1)). A zero publish date yields 0.
func recencyScore(publishedAt time.Time, now time.Time) float64 {
	if publishedAt.IsZero() {
		return 0
	}
	days := now.Sub(publishedAt).Hours() / 24
	if days < 0 {
		days = 0
	}
	return 1.0 / (1.0 + math.Log(days+1))
}

// relevanceScore is the fraction of query terms present in the title,
// after the same normalization the cache key uses.
func relevanceScore(title, query string) float64 {
	queryTokens := strings.Fields(NormalizeQuery(query))
	if len(queryTokens) == 0 {
		return 0
	}

	titleTokens := make(map[string]struct{})
	for _, tok := range strings.Fields(NormalizeQuery(title)) {
		titleTokens[tok] = struct{}{}
	}

	matched := 0
	for _, tok := range queryTokens {
		if _, ok := titleTokens[tok]; ok {
			matched++
		}
	}
	return float64(matched) / float64(len(queryTokens))
}

// suitabilityScore is unimodal in duration: 1.0 inside the sweet spot,
// strictly lower outside it, neutral when duration is unknown.
func suitabilityScore(minutes float64) float64 {
	switch {
	case minutes <= 0:
		return neutralSuitability
	case minutes < sweetSpotMinMinutes:
		return minutes / sweetSpotMinMinutes
	case minutes <= sweetSpotMaxMinutes:
		return 1.0
	default:
		return sweetSpotMaxMinutes / minutes
	}
}

// authorityScore ranks recognized official documentation domains above
// community hosting, and community hosting above unrecognized domains.
func authorityScore(rawURL string) float64 {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return authorityUnrecognized
	}
	host := strings.ToLower(u.Host)

	if _, ok := authorityHosts[host]; ok {
		return authorityOfficial
	}
	if trimmed := strings.TrimPrefix(host, "www."); trimmed != host {
		if _, ok := authorityHosts[trimmed]; ok {
			return authorityOfficial
		}
	}
	for _, suffix := range communityHostSuffixes {
		if strings.HasSuffix(host, suffix) {
			return authorityCommunity
		}
	}
	return authorityUnrecognized
}

// clampScore keeps the blended value inside (0, 1].
func clampScore(v float64) float64 {
	if v < minBlendedScore {
		return minBlendedScore
	}
	if v > 1 {
		return 1
	}
	return v
}
