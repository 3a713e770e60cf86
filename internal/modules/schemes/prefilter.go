package schemes

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/kisansaathi/kisansaathi-backend/internal/domain"
)

const (
	// MinTokenRunes is the length a query token must exceed to be matched.
	MinTokenRunes = 2
	// DefaultCandidates is how many catalog records stand in when nothing matches.
	DefaultCandidates = 10
	// MaxCandidates caps what is sent to the ranker.
	MaxCandidates = 10
)

// Tokenize lower-cases the query, splits it on whitespace and keeps tokens
// longer than MinTokenRunes characters.
func Tokenize(query string) []string {
	fields := strings.Fields(strings.ToLower(norm.NFC.String(query)))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if utf8.RuneCountInString(f) > MinTokenRunes {
			out = append(out, f)
		}
	}
	return out
}

// SearchText is the lower-cased haystack a record is matched against.
func SearchText(r domain.SchemeRecord) string {
	parts := make([]string, 0, 3+len(r.Keywords)+len(r.Benefits))
	parts = append(parts, r.Title, r.Objective, r.Description)
	parts = append(parts, r.Keywords...)
	parts = append(parts, r.Benefits...)
	return strings.ToLower(strings.Join(parts, " "))
}

// Prefilter returns, in input order, the records whose search text contains
// at least one query token. A query with no usable tokens matches nothing.
func Prefilter(query string, records []domain.SchemeRecord) []domain.SchemeRecord {
	tokens := Tokenize(query)
	out := make([]domain.SchemeRecord, 0, len(records))
	if len(tokens) == 0 {
		return out
	}
	for _, r := range records {
		hay := SearchText(r)
		for _, tok := range tokens {
			if strings.Contains(hay, tok) {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

// Candidates is the outcome of narrowing the catalog for one query.
type Candidates struct {
	Records []domain.SchemeRecord
	// Matched is how many records the pre-filter kept before the cap.
	Matched int
	// Defaulted is set when nothing matched and the catalog head was used.
	Defaulted bool
}

// SelectCandidates runs the pre-filter over all records and applies the
// empty-result default and the ranker cap. The result is never empty unless
// the catalog itself is.
func SelectCandidates(query string, all []domain.SchemeRecord) Candidates {
	matched := Prefilter(query, all)
	c := Candidates{Records: matched, Matched: len(matched)}
	if len(matched) == 0 {
		c.Defaulted = true
		c.Records = head(all, DefaultCandidates)
	}
	c.Records = head(c.Records, MaxCandidates)
	return c
}

func head(in []domain.SchemeRecord, n int) []domain.SchemeRecord {
	if len(in) <= n {
		return in
	}
	return in[:n]
}

// IDs lists record identifiers in order.
func IDs(records []domain.SchemeRecord) []int {
	out := make([]int, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}
