package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kisansaathi/kisansaathi-backend/internal/domain"
)

func TestLoadEmbeddedCatalog(t *testing.T) {
	c, err := Load(nil, "")
	require.NoError(t, err)
	require.GreaterOrEqual(t, c.Len(), 10, "default candidate set needs at least 10 records")

	all := c.All()
	for i, r := range all {
		got, ok := c.ByID(r.ID)
		require.True(t, ok, "record %d not indexed", r.ID)
		assert.Equal(t, r.Title, got.Title)
		assert.NotEmpty(t, r.Keywords, "record #%d has no keywords", i)
		assert.NotEmpty(t, r.Website, "record %d has no website", r.ID)
	}
}

func TestNewRejectsInvalidRecords(t *testing.T) {
	_, err := New([]domain.SchemeRecord{{ID: 1, Title: "A"}, {ID: 1, Title: "B"}})
	assert.ErrorContains(t, err, "duplicate id")

	_, err = New([]domain.SchemeRecord{{ID: 0, Title: "A"}})
	assert.ErrorContains(t, err, "id must be positive")

	_, err = New([]domain.SchemeRecord{{ID: 3, Title: "  "}})
	assert.ErrorContains(t, err, "title is required")
}

func TestHeadKeepsCatalogOrder(t *testing.T) {
	c, err := New([]domain.SchemeRecord{
		{ID: 30, Title: "Thirty"},
		{ID: 10, Title: "Ten"},
		{ID: 20, Title: "Twenty"},
	})
	require.NoError(t, err)

	head := c.Head(2)
	require.Len(t, head, 2)
	assert.Equal(t, 30, head[0].ID)
	assert.Equal(t, 10, head[1].ID)

	assert.Len(t, c.Head(50), 3)
	assert.Empty(t, c.Head(0))
	assert.NotNil(t, c.Head(-1))
}

func TestHeadReturnsCopy(t *testing.T) {
	c, err := New([]domain.SchemeRecord{{ID: 1, Title: "One"}})
	require.NoError(t, err)

	head := c.Head(1)
	head[0].Title = "mutated"

	got, _ := c.ByID(1)
	assert.Equal(t, "One", got.Title)
}

func TestReturnedRecordsDoNotShareLists(t *testing.T) {
	c, err := New([]domain.SchemeRecord{{
		ID:                1,
		Title:             "One",
		Benefits:          []string{"subsidy"},
		Eligibility:       []string{"small farmers"},
		Keywords:          []string{"irrigation"},
		DocumentsRequired: []string{"land record"},
	}})
	require.NoError(t, err)

	rec, ok := c.ByID(1)
	require.True(t, ok)
	rec.Benefits[0] = "mutated"
	rec.Eligibility[0] = "mutated"
	rec.Keywords[0] = "mutated"
	rec.DocumentsRequired[0] = "mutated"

	head := c.Head(1)
	head[0].Benefits[0] = "via head"
	all := c.All()
	all[0].Keywords[0] = "via all"

	again, _ := c.ByID(1)
	assert.Equal(t, []string{"subsidy"}, again.Benefits)
	assert.Equal(t, []string{"small farmers"}, again.Eligibility)
	assert.Equal(t, []string{"irrigation"}, again.Keywords)
	assert.Equal(t, []string{"land record"}, again.DocumentsRequired)
}

func TestNewNormalizesText(t *testing.T) {
	// "e" followed by a combining acute accent composes to a single rune under NFC.
	c, err := New([]domain.SchemeRecord{{
		ID:       1,
		Title:    "  Cafe\u0301 Scheme ",
		Keywords: []string{" drip ", "", "sprinkler"},
	}})
	require.NoError(t, err)

	got, _ := c.ByID(1)
	assert.Equal(t, "Caf\u00e9 Scheme", got.Title)
	assert.Equal(t, []string{"drip", "sprinkler"}, got.Keywords)
}

func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := Parse([]byte("schemes:\n  - id: 1\n    title: A\n    subsidy_rate: 50\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("schemes: []\n"))
	assert.ErrorContains(t, err, "empty")
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schemes.yaml")
	doc := "schemes:\n  - id: 7\n    title: Drip Support\n    keywords: [drip, irrigation]\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	c, err := Load(nil, path)
	require.NoError(t, err)
	require.Equal(t, 1, c.Len())

	r, ok := c.ByID(7)
	require.True(t, ok)
	assert.Equal(t, []string{"drip", "irrigation"}, r.Keywords)

	_, err = Load(nil, filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
