package schemes

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONObject(t *testing.T) {
	raw := "Here you go:\n```json\n{\"schemes\":[{\"id\":1}]}\n```\nHope this helps!"
	got, err := ExtractJSONObject(raw)
	require.NoError(t, err)
	assert.Equal(t, `{"schemes":[{"id":1}]}`, got)
}

func TestExtractJSONObjectNoBraces(t *testing.T) {
	_, err := ExtractJSONObject("I could not find any schemes.")
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, ParseNoJSON, pe.Kind)

	_, err = ExtractJSONObject("} backwards {")
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, ParseNoJSON, pe.Kind)
}

func TestParseRanking(t *testing.T) {
	raw := `{"schemes":[
		{"id":3,"relevanceScore":92,"explanation":"Drip subsidy"},
		{"id":"8","relevanceScore":"75.5","explanation":"Solar pumps"},
		{"id":1,"explanation":"Income support"}
	]}`
	got, err := ParseRanking(raw)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, 3, got[0].ID)
	require.NotNil(t, got[0].RelevanceScore)
	assert.Equal(t, 92.0, *got[0].RelevanceScore)
	assert.Equal(t, "Drip subsidy", *got[0].Explanation)

	assert.Equal(t, 8, got[1].ID)
	assert.Equal(t, 75.5, *got[1].RelevanceScore)

	assert.Equal(t, 1, got[2].ID)
	assert.Nil(t, got[2].RelevanceScore)
}

func TestParseRankingInvalidIDsBecomeZero(t *testing.T) {
	got, err := ParseRanking(`{"schemes":[{"id":2.5},{"id":"abc"},{"id":null},{"id":{"x":1}}]}`)
	require.NoError(t, err)
	for _, e := range got {
		assert.Equal(t, 0, e.ID)
	}
}

func TestParseRankingToleratesMistypedEntries(t *testing.T) {
	got, err := ParseRanking(`{"schemes":[
		1,
		"two",
		{"id":4,"relevanceScore":80,"explanation":42},
		null,
		{"id":5,"explanation":["a","b"]},
		{"id":6,"explanation":true}
	]}`)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, 4, got[0].ID)
	require.NotNil(t, got[0].Explanation)
	assert.Equal(t, "42", *got[0].Explanation)
	assert.Equal(t, 80.0, *got[0].RelevanceScore)

	assert.Equal(t, 5, got[1].ID)
	assert.Nil(t, got[1].Explanation)

	require.NotNil(t, got[2].Explanation)
	assert.Equal(t, "true", *got[2].Explanation)
}

func TestParseRankingOnlyNonObjectEntries(t *testing.T) {
	got, err := ParseRanking(`{"schemes":[1,2]}`)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestParseRankingErrors(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		kind ParseErrorKind
	}{
		{"prose", "Sorry, I cannot help with that.", ParseNoJSON},
		{"truncated", `{"schemes":[{"id":1,"relevanceScore":9`, ParseNoJSON},
		{"malformed", `{"schemes":[{"id":1,}]}`, ParseInvalidJSON},
		{"wrong shape", `{"schemes":"none"}`, ParseInvalidJSON},
		{"missing key", `{"results":[]}`, ParseMissingResult},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseRanking(tc.raw)
			var pe *ParseError
			require.True(t, errors.As(err, &pe), "expected ParseError, got %v", err)
			assert.Equal(t, tc.kind, pe.Kind)
			assert.NotEmpty(t, pe.Error())
		})
	}
}

func TestParseRankingEmptyList(t *testing.T) {
	got, err := ParseRanking(`{"schemes":[]}`)
	require.NoError(t, err)
	assert.Empty(t, got)
}
