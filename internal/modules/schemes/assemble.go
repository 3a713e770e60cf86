package schemes

import (
	"sort"

	"github.com/kisansaathi/kisansaathi-backend/internal/domain"
)

// Lookup resolves a scheme id to its catalog record.
type Lookup func(id int) (domain.SchemeRecord, bool)

// Assemble joins ranker picks to catalog records, dropping picks whose id is
// not in the catalog, and stable-sorts by descending score so equal scores
// keep the ranker's order. The dropped ids are returned for reporting.
func Assemble(entries []RankedEntry, lookup Lookup) (results []domain.RankedResult, dropped []int) {
	results = make([]domain.RankedResult, 0, len(entries))
	for _, e := range entries {
		rec, ok := lookup(e.ID)
		if !ok {
			dropped = append(dropped, e.ID)
			continue
		}
		results = append(results, domain.RankedResult{
			SchemeRecord:   rec,
			Explanation:    e.Explanation,
			RelevanceScore: e.RelevanceScore,
		})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score() > results[j].Score()
	})
	return results, dropped
}

const (
	// FallbackLimit is how many unranked candidates the degraded path returns.
	FallbackLimit   = 5
	FallbackWarning = "AI ranking is temporarily unavailable; showing keyword matches instead."
)

// Fallback returns the first FallbackLimit candidates without scores or
// explanations.
func Fallback(candidates []domain.SchemeRecord) []domain.RankedResult {
	n := len(candidates)
	if n > FallbackLimit {
		n = FallbackLimit
	}
	out := make([]domain.RankedResult, 0, n)
	for _, r := range candidates[:n] {
		out = append(out, domain.RankedResult{SchemeRecord: r})
	}
	return out
}
