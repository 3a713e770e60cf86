package schemes

import (
	"context"
	"errors"
	"fmt"

	"github.com/kisansaathi/kisansaathi-backend/internal/domain"
	"github.com/kisansaathi/kisansaathi-backend/internal/platform/gemini"
)

// Ranker asks the language model to pick and explain the most relevant
// candidates. It performs exactly one provider call and never retries.
type Ranker struct {
	llm gemini.Client
}

func NewRanker(llm gemini.Client) (*Ranker, error) {
	if llm == nil {
		return nil, errors.New("ranker requires a text generation client")
	}
	return &Ranker{llm: llm}, nil
}

func (r *Ranker) Model() string { return r.llm.Model() }

// Ranking is a successful ranker reply.
type Ranking struct {
	Entries []RankedEntry
	Raw     string
}

// Rank returns the parsed ranking. Provider failures and unusable replies
// are both returned as errors; a *ParseError marks the latter.
func (r *Ranker) Rank(ctx context.Context, query string, candidates []domain.SchemeRecord, profile *domain.UserProfileContext) (*Ranking, error) {
	if len(candidates) == 0 {
		return nil, errors.New("rank: no candidates")
	}
	prompt, err := BuildRankingPrompt(query, candidates, profile)
	if err != nil {
		return nil, err
	}
	raw, err := r.llm.GenerateText(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("rank: %w", err)
	}
	entries, err := ParseRanking(raw)
	if err != nil {
		return nil, err
	}
	return &Ranking{Entries: entries, Raw: raw}, nil
}
