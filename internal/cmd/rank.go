package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/studyloop/curator/internal/config"
	"github.com/studyloop/curator/internal/curation"
)

var rankFlags struct {
	query     string
	source    string
	minScore  float64
	maxItems  int
	diversity bool
	earlyStop bool
}

var rankCmd = &cobra.Command{
	Use:   "rank <candidates-file>",
	Short: "Score and select candidates from a file",
	Long: `Score candidates from a YAML or JSON file and print the selected
shortlist as JSON. No fetching or caching is involved; this is the
offline path for tuning weights and thresholds.

Examples:
  curator rank candidates.yaml --query "go concurrency" --source video
  curator rank results.json --query "rust ownership" --source article --min-score 0.4`,
	Args: cobra.ExactArgs(1),
	RunE: runRank,
}

func init() {
	rankCmd.Flags().StringVarP(&rankFlags.query, "query", "q", "", "study query the candidates were found for (required)")
	rankCmd.Flags().StringVarP(&rankFlags.source, "source", "s", string(curation.SourceVideo), "candidate source: video, article or course")
	rankCmd.Flags().Float64Var(&rankFlags.minScore, "min-score", -1, "minimum blended score (default from config)")
	rankCmd.Flags().IntVar(&rankFlags.maxItems, "max-items", 0, "shortlist size (default from config)")
	rankCmd.Flags().BoolVar(&rankFlags.diversity, "diversity", true, "prefer source diversity in the shortlist")
	rankCmd.Flags().BoolVar(&rankFlags.earlyStop, "early-stop", false, "stop at the first source that fills the quota")
	_ = rankCmd.MarkFlagRequired("query")
	rootCmd.AddCommand(rankCmd)
}

// fileCandidate mirrors curation.Candidate with YAML tags so candidate
// files can be written by hand.
type fileCandidate struct {
	URL      string  `yaml:"url" json:"url"`
	Title    string  `yaml:"title" json:"title"`
	Source   string  `yaml:"source" json:"source"`
	Views    int64   `yaml:"view_count" json:"view_count"`
	Date     string  `yaml:"published_at" json:"published_at"`
	Duration float64 `yaml:"duration_minutes" json:"duration_minutes"`
	Matched  string  `yaml:"matched_query" json:"matched_query"`
}

func (f fileCandidate) toCandidate(fallback curation.Source) (curation.Candidate, error) {
	source := fallback
	if f.Source != "" {
		source = curation.Source(f.Source)
	}

	var published time.Time
	if f.Date != "" {
		t, err := time.Parse(time.RFC3339, f.Date)
		if err != nil {
			return curation.Candidate{}, fmt.Errorf("invalid published_at %q: %w", f.Date, err)
		}
		published = t
	}

	return curation.Candidate{
		URL:    f.URL,
		Title:  f.Title,
		Source: source,
		Metadata: curation.Metadata{
			ViewCount:       f.Views,
			PublishedAt:     published,
			DurationMinutes: f.Duration,
			MatchedQuery:    f.Matched,
		},
	}, nil
}

// loadCandidates reads a candidate list from a YAML or JSON file,
// chosen by extension.
func loadCandidates(path string, fallback curation.Source) ([]curation.Candidate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read candidates: %w", err)
	}

	var raw []fileCandidate
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, &raw)
	} else {
		err = yaml.Unmarshal(data, &raw)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse candidates: %w", err)
	}

	candidates := make([]curation.Candidate, 0, len(raw))
	for _, f := range raw {
		c, err := f.toCandidate(fallback)
		if err != nil {
			return nil, err
		}
		if c.URL == "" {
			return nil, fmt.Errorf("candidate %q has no url", c.Title)
		}
		candidates = append(candidates, c)
	}
	return candidates, nil
}

func runRank(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	source := curation.Source(rankFlags.source)
	candidates, err := loadCandidates(args[0], source)
	if err != nil {
		return err
	}

	opts := cfg.SelectOptions()
	if rankFlags.minScore >= 0 {
		opts.MinScore = rankFlags.minScore
	}
	if rankFlags.maxItems > 0 {
		opts.MaxItems = rankFlags.maxItems
	}
	opts.PreferDiversity = rankFlags.diversity
	opts.EarlyStopEnabled = rankFlags.earlyStop

	scorer := curation.NewScorer(cfg.Weights())
	now := time.Now()
	scored := make([]curation.Scored, 0, len(candidates))
	for _, c := range candidates {
		scored = append(scored, scorer.Score(c, rankFlags.query, now))
	}

	selected := curation.SelectTop(scored, opts)

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(selected)
}
