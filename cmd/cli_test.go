package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"

	types "github.com/kisansaathi/kisansaathi-backend/internal/domain"
)

func TestPrintSearchResponse(t *testing.T) {
	color.NoColor = true
	score := 87.0
	why := "Covers drip irrigation."
	resp := &types.SearchResponse{
		Query:      "drip irrigation",
		TotalFound: 1,
		Schemes: []types.RankedResult{{
			SchemeRecord:   types.SchemeRecord{ID: 3, Title: "PMKSY", Website: "https://pmksy.gov.in"},
			RelevanceScore: &score,
			Explanation:    &why,
		}},
	}
	var buf bytes.Buffer
	printSearchResponse(&buf, resp)
	out := buf.String()
	for _, want := range []string{`"drip irrigation": 1 scheme(s)`, "1. PMKSY [#3]", "relevance: 87/100", why, "https://pmksy.gov.in"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestCatalogListCommand(t *testing.T) {
	color.NoColor = true
	t.Setenv("SCHEME_CATALOG_PATH", "")
	var buf bytes.Buffer
	catalogListCmd.SetOut(&buf)
	if err := catalogListCmd.RunE(catalogListCmd, nil); err != nil {
		t.Fatalf("catalog list: %v", err)
	}
	if !strings.Contains(buf.String(), "scheme(s)") {
		t.Fatalf("unexpected output:\n%s", buf.String())
	}
}
