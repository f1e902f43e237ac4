package curation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var scoringNow = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

func videoCandidate(views int64, publishedAt time.Time, minutes float64, title string) Candidate {
	return Candidate{
		URL:    "https://videos.example.com/x",
		Title:  title,
		Source: SourceVideo,
		Metadata: Metadata{
			ViewCount:       views,
			PublishedAt:     publishedAt,
			DurationMinutes: minutes,
		},
	}
}

func TestScoreVideo_PopularityMonotonic(t *testing.T) {
	s := NewScorer(Weights{})
	published := scoringNow.AddDate(0, -1, 0)

	few := s.ScoreVideo(videoCandidate(1_000, published, 15, "go basics"), "go basics", scoringNow)
	many := s.ScoreVideo(videoCandidate(1_000_000, published, 15, "go basics"), "go basics", scoringNow)

	assert.Greater(t,
		many.Score.Components[ComponentPopularity],
		few.Score.Components[ComponentPopularity],
		"order-of-magnitude more views must score strictly higher")
}

func TestScoreVideo_RecencyMonotonic(t *testing.T) {
	s := NewScorer(Weights{})

	old := s.ScoreVideo(videoCandidate(1000, scoringNow.AddDate(-3, 0, 0), 15, "go basics"), "go basics", scoringNow)
	fresh := s.ScoreVideo(videoCandidate(1000, scoringNow.AddDate(0, 0, -3), 15, "go basics"), "go basics", scoringNow)

	assert.Greater(t,
		fresh.Score.Components[ComponentRecency],
		old.Score.Components[ComponentRecency])
}

func TestScoreVideo_SuitabilitySweetSpot(t *testing.T) {
	s := NewScorer(Weights{})
	published := scoringNow.AddDate(0, -1, 0)

	short := s.ScoreVideo(videoCandidate(1000, published, 1, "go basics"), "go basics", scoringNow)
	sweet := s.ScoreVideo(videoCandidate(1000, published, 15, "go basics"), "go basics", scoringNow)
	long := s.ScoreVideo(videoCandidate(1000, published, 120, "go basics"), "go basics", scoringNow)

	assert.Equal(t, 1.0, sweet.Score.Components[ComponentSuitability])
	assert.Less(t, short.Score.Components[ComponentSuitability], 1.0)
	assert.Less(t, long.Score.Components[ComponentSuitability], 1.0)
	assert.Greater(t,
		sweet.Score.Components[ComponentSuitability],
		short.Score.Components[ComponentSuitability])
}

func TestScoreVideo_RelevanceTracksQueryOverlap(t *testing.T) {
	s := NewScorer(Weights{})
	published := scoringNow.AddDate(0, -1, 0)

	matching := s.ScoreVideo(
		videoCandidate(1000, published, 15, "Go Concurrency Patterns Explained"),
		"go concurrency patterns", scoringNow)
	unrelated := s.ScoreVideo(
		videoCandidate(1000, published, 15, "Cooking Pasta at Home"),
		"go concurrency patterns", scoringNow)

	assert.Greater(t,
		matching.Score.Components[ComponentRelevance],
		unrelated.Score.Components[ComponentRelevance])
	assert.Equal(t, 1.0, matching.Score.Components[ComponentRelevance])
	assert.Equal(t, 0.0, unrelated.Score.Components[ComponentRelevance])
}

func TestScoreVideo_MatchedQueryPreferred(t *testing.T) {
	s := NewScorer(Weights{})
	c := videoCandidate(1000, scoringNow.AddDate(0, -1, 0), 15, "goroutines deep dive")
	c.Metadata.MatchedQuery = "goroutines deep dive"

	scored := s.ScoreVideo(c, "something else entirely", scoringNow)
	assert.Equal(t, 1.0, scored.Score.Components[ComponentRelevance])
}

func TestScoreVideo_BlendedRange(t *testing.T) {
	s := NewScorer(Weights{})

	// Worst case: no views, no date, unrelated title, bad duration.
	worst := s.ScoreVideo(videoCandidate(0, time.Time{}, 0.1, "zzz"), "go basics", scoringNow)
	best := s.ScoreVideo(videoCandidate(50_000_000, scoringNow.AddDate(0, 0, -1), 15, "go basics"), "go basics", scoringNow)

	assert.Greater(t, worst.Score.Value, 0.0)
	assert.LessOrEqual(t, worst.Score.Value, 1.0)
	assert.Greater(t, best.Score.Value, worst.Score.Value)
	assert.LessOrEqual(t, best.Score.Value, 1.0)
}

func TestScoreDoc_AuthorityTiers(t *testing.T) {
	s := NewScorer(Weights{})
	doc := func(url string) Candidate {
		return Candidate{URL: url, Title: "go concurrency", Source: SourceArticle}
	}

	official := s.ScoreDoc(doc("https://go.dev/doc/effective_go"), "go concurrency", scoringNow)
	community := s.ScoreDoc(doc("https://somelib.readthedocs.io/en/latest/"), "go concurrency", scoringNow)
	unknown := s.ScoreDoc(doc("https://randomblog.example.com/post"), "go concurrency", scoringNow)

	assert.Greater(t,
		official.Score.Components[ComponentAuthority],
		community.Score.Components[ComponentAuthority])
	assert.Greater(t,
		community.Score.Components[ComponentAuthority],
		unknown.Score.Components[ComponentAuthority])
}

func TestScoreDoc_WWWPrefixStripped(t *testing.T) {
	s := NewScorer(Weights{})
	c := Candidate{URL: "https://www.go.dev/tour", Title: "tour", Source: SourceArticle}

	scored := s.ScoreDoc(c, "go tour", scoringNow)
	assert.Equal(t, authorityOfficial, scored.Score.Components[ComponentAuthority])
}

func TestScoreDoc_MissingDateDegradesRecencyToZero(t *testing.T) {
	s := NewScorer(Weights{})
	c := Candidate{URL: "https://go.dev/blog/context", Title: "go context", Source: SourceArticle}

	require.NotPanics(t, func() {
		scored := s.ScoreDoc(c, "go context", scoringNow)
		assert.Equal(t, 0.0, scored.Score.Components[ComponentRecency])
		assert.Greater(t, scored.Score.Value, 0.0)
	})
}

func TestScoreDoc_UnparsableURLDoesNotFail(t *testing.T) {
	s := NewScorer(Weights{})
	c := Candidate{URL: "::not a url::", Title: "go basics", Source: SourceArticle}

	scored := s.ScoreDoc(c, "go basics", scoringNow)
	assert.Equal(t, authorityUnrecognized, scored.Score.Components[ComponentAuthority])
}

func TestScore_DispatchesBySource(t *testing.T) {
	s := NewScorer(Weights{})

	video := s.Score(videoCandidate(1000, scoringNow.AddDate(0, -1, 0), 15, "go basics"), "go basics", scoringNow)
	assert.Contains(t, video.Score.Components, ComponentSuitability)
	assert.NotContains(t, video.Score.Components, ComponentAuthority)

	article := s.Score(Candidate{URL: "https://go.dev/doc", Title: "go docs", Source: SourceArticle}, "go docs", scoringNow)
	assert.Contains(t, article.Score.Components, ComponentAuthority)
	assert.NotContains(t, article.Score.Components, ComponentSuitability)

	course := s.Score(Candidate{URL: "https://courses.example.com/go", Title: "go course", Source: SourceCourse}, "go course", scoringNow)
	assert.Contains(t, course.Score.Components, ComponentAuthority)
}

func TestScorer_Deterministic(t *testing.T) {
	s := NewScorer(Weights{})
	c := videoCandidate(12345, scoringNow.AddDate(0, -2, 0), 12, "go generics tutorial")

	a := s.Score(c, "go generics", scoringNow)
	b := s.Score(c, "go generics", scoringNow)
	assert.Equal(t, a, b)
}

func TestNewScorer_ZeroWeightsFallBackToDefaults(t *testing.T) {
	s := NewScorer(Weights{})
	def := DefaultWeights()
	assert.Equal(t, def, s.weights)

	custom := Weights{
		Video: VideoWeights{Popularity: 0.5, Recency: 0.2, Relevance: 0.2, Suitability: 0.1},
	}
	s = NewScorer(custom)
	assert.Equal(t, custom.Video, s.weights.Video)
	assert.Equal(t, def.Doc, s.weights.Doc)
}
