package schemes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseErrorKind classifies why a ranker reply could not be used.
type ParseErrorKind string

const (
	ParseNoJSON        ParseErrorKind = "no_json_object"
	ParseInvalidJSON   ParseErrorKind = "invalid_json"
	ParseMissingResult ParseErrorKind = "missing_schemes"
)

// ParseError is returned when a model reply holds no usable ranking.
type ParseError struct {
	Kind ParseErrorKind
	// Snippet is the start of the offending text, for logs.
	Snippet string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse ranking (%s): %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("parse ranking (%s)", e.Kind)
}

func (e *ParseError) Unwrap() error { return e.Err }

// RankedEntry is one pick returned by the ranker.
type RankedEntry struct {
	ID             int      `json:"id"`
	RelevanceScore *float64 `json:"relevanceScore,omitempty"`
	Explanation    *string  `json:"explanation,omitempty"`
}

// ExtractJSONObject returns the span from the first '{' to the last '}' of
// raw model output, which tolerates prose and code fences around the object.
func ExtractJSONObject(raw string) (string, error) {
	start := strings.IndexByte(raw, '{')
	end := strings.LastIndexByte(raw, '}')
	if start < 0 || end < start {
		return "", &ParseError{Kind: ParseNoJSON, Snippet: snippet(raw)}
	}
	return raw[start : end+1], nil
}

type rankingDoc struct {
	Schemes *[]json.RawMessage `json:"schemes"`
}

type rankingItem struct {
	ID             flexNumber `json:"id"`
	RelevanceScore flexNumber `json:"relevanceScore"`
	Explanation    flexText   `json:"explanation"`
}

// ParseRanking extracts and decodes the ranker's JSON reply.
func ParseRanking(raw string) ([]RankedEntry, error) {
	obj, err := ExtractJSONObject(raw)
	if err != nil {
		return nil, err
	}
	var doc rankingDoc
	dec := json.NewDecoder(bytes.NewReader([]byte(obj)))
	if err := dec.Decode(&doc); err != nil {
		return nil, &ParseError{Kind: ParseInvalidJSON, Snippet: snippet(obj), Err: err}
	}
	if doc.Schemes == nil {
		return nil, &ParseError{Kind: ParseMissingResult, Snippet: snippet(obj)}
	}
	// Entries that are not objects are skipped so one bad pick does not
	// discard the rest of the ranking.
	out := make([]RankedEntry, 0, len(*doc.Schemes))
	for _, raw := range *doc.Schemes {
		if !bytes.HasPrefix(bytes.TrimSpace(raw), []byte("{")) {
			continue
		}
		var it rankingItem
		if err := json.Unmarshal(raw, &it); err != nil {
			continue
		}
		e := RankedEntry{ID: it.ID.intValue(), Explanation: it.Explanation.ptr()}
		if v, ok := it.RelevanceScore.value(); ok {
			e.RelevanceScore = &v
		}
		out = append(out, e)
	}
	return out, nil
}

// flexNumber accepts a JSON number or a numeric string; anything else is
// treated as absent.
type flexNumber struct {
	v  float64
	ok bool
}

func (n *flexNumber) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "" || s == "null" {
		*n = flexNumber{}
		return nil
	}
	if s[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		s = strings.TrimSpace(str)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		*n = flexNumber{}
		return nil
	}
	*n = flexNumber{v: f, ok: true}
	return nil
}

func (n flexNumber) value() (float64, bool) { return n.v, n.ok }

// intValue returns the integral value, or 0 (never a catalog id) otherwise.
func (n flexNumber) intValue() int {
	if !n.ok || n.v != math.Trunc(n.v) || n.v > math.MaxInt32 || n.v < math.MinInt32 {
		return 0
	}
	return int(n.v)
}

// flexText accepts a JSON string, or a number or boolean rendered as text.
// Null, arrays and objects are treated as absent.
type flexText struct {
	s  string
	ok bool
}

func (t *flexText) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	*t = flexText{}
	switch {
	case raw == "" || raw == "null":
	case raw[0] == '"':
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*t = flexText{s: str, ok: true}
	case raw[0] == '{' || raw[0] == '[':
	default:
		*t = flexText{s: raw, ok: true}
	}
	return nil
}

func (t flexText) ptr() *string {
	if !t.ok {
		return nil
	}
	s := t.s
	return &s
}

func snippet(s string) string {
	s = strings.TrimSpace(s)
	const limit = 200
	if len(s) > limit {
		return s[:limit] + "..."
	}
	return s
}
