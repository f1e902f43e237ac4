package curation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTTLTable_Defaults(t *testing.T) {
	ttls := DefaultTTLs()

	assert.Equal(t, 7*24*time.Hour, ttls.For(StageSearch))
	assert.Equal(t, 2*24*time.Hour, ttls.For(StageStats))
	assert.Equal(t, 5*24*time.Hour, ttls.For(StageHead))
	assert.Equal(t, 4*time.Hour, ttls.For(StageNegative))
}

func TestTTLTable_SourcePrefixedStages(t *testing.T) {
	ttls := DefaultTTLs()

	assert.Equal(t, Stage("video-stats"), StatsStage(SourceVideo))
	assert.Equal(t, Stage("article-head"), HeadStage(SourceArticle))

	// Source-prefixed stages resolve through their base stage.
	assert.Equal(t, ttls.For(StageStats), ttls.For(StatsStage(SourceVideo)))
	assert.Equal(t, ttls.For(StageHead), ttls.For(HeadStage(SourceArticle)))
}

func TestTTLTable_UnknownStageFallsBack(t *testing.T) {
	ttls := DefaultTTLs()
	assert.Equal(t, ttls.For(StageSearch), ttls.For(Stage("mystery")))
}

func TestTTLTable_OverridesAreData(t *testing.T) {
	ttls := TTLTable{
		StageSearch:   time.Minute,
		StageNegative: time.Second,
	}

	assert.Equal(t, time.Minute, ttls.For(StageSearch))
	assert.Equal(t, time.Second, ttls.For(StageNegative))
	// Missing stats entry falls back to search.
	assert.Equal(t, time.Minute, ttls.For(StageStats))
}
