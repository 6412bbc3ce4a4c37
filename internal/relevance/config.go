package relevance

import "fmt"

// Config holds the tunable constants of the engine. The defaults were tuned
// empirically against live market titles.
type Config struct {
	// Threshold is exclusive: a candidate must score strictly above it.
	Threshold float64 `yaml:"threshold"`

	EntityBonus    float64 `yaml:"entity_bonus"`
	PhraseBonus    float64 `yaml:"phrase_bonus"`
	TopicBonus     float64 `yaml:"topic_bonus"`
	NewsTitleBonus float64 `yaml:"news_title_bonus"`

	// Keywords longer than these lengths qualify for the entity and
	// phrase bonuses.
	EntityMinLen int `yaml:"entity_min_len"`
	PhraseMinLen int `yaml:"phrase_min_len"`

	CandidateKeywordLimit int `yaml:"candidate_keyword_limit"`

	// MarketsLimit caps matches for one article, NewsLimit caps matches
	// for one market.
	MarketsLimit int `yaml:"markets_limit"`
	NewsLimit    int `yaml:"news_limit"`
}

func DefaultConfig() Config {
	return Config{
		Threshold:             0.2,
		EntityBonus:           0.25,
		PhraseBonus:           0.15,
		TopicBonus:            0.1,
		NewsTitleBonus:        0.2,
		EntityMinLen:          4,
		PhraseMinLen:          5,
		CandidateKeywordLimit: 20,
		MarketsLimit:          6,
		NewsLimit:             10,
	}
}

// Validate reports the first setting that would make ranking meaningless.
func (c Config) Validate() error {
	switch {
	case c.Threshold < 0:
		return fmt.Errorf("matching threshold cannot be negative")
	case c.EntityBonus < 0 || c.PhraseBonus < 0 || c.TopicBonus < 0 || c.NewsTitleBonus < 0:
		return fmt.Errorf("matching bonuses cannot be negative")
	case c.CandidateKeywordLimit <= 0:
		return fmt.Errorf("candidate_keyword_limit must be positive")
	case c.MarketsLimit <= 0 || c.NewsLimit <= 0:
		return fmt.Errorf("markets_limit and news_limit must be positive")
	}
	return nil
}
