package schemes

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/kisansaathi/kisansaathi-backend/internal/domain"
)

const (
	MinPicks = 3
	MaxPicks = 5
)

const rankingPromptText = `You are an expert on Indian government schemes for farmers. A farmer asked:
"{{ .Query }}"
{{ if .Profile }}
Farmer profile:
{{ .Profile }}
{{ end }}
Candidate schemes:
{{ range .Schemes }}
ID: {{ .ID }}
Title: {{ .Title }}
Objective: {{ .Objective }}
Description: {{ .Description }}
Benefits: {{ join .Benefits }}
Eligibility: {{ join .Eligibility }}
Keywords: {{ join .Keywords }}
{{ end }}
Select the {{ .MinPicks }} to {{ .MaxPicks }} schemes most relevant to the farmer's question{{ if .Profile }} and profile{{ end }}.
For each, give a relevanceScore from 0 to 100 and a short explanation in simple language of why it fits.
Use only IDs from the candidate list.

Respond with a single JSON object and nothing else, in this format:
{"schemes":[{"id":1,"relevanceScore":90,"explanation":"..."}]}
`

var rankingTmpl = template.Must(template.New("ranking").
	Funcs(template.FuncMap{"join": func(items []string) string { return strings.Join(items, "; ") }}).
	Option("missingkey=zero").
	Parse(rankingPromptText))

type promptInput struct {
	Query    string
	Profile  string
	Schemes  []domain.SchemeRecord
	MinPicks int
	MaxPicks int
}

// BuildRankingPrompt renders the instruction sent to the ranker.
func BuildRankingPrompt(query string, candidates []domain.SchemeRecord, profile *domain.UserProfileContext) (string, error) {
	var b strings.Builder
	err := rankingTmpl.Execute(&b, promptInput{
		Query:    strings.TrimSpace(query),
		Profile:  describeProfile(profile),
		Schemes:  candidates,
		MinPicks: MinPicks,
		MaxPicks: MaxPicks,
	})
	if err != nil {
		return "", fmt.Errorf("render ranking prompt: %w", err)
	}
	return b.String(), nil
}

func describeProfile(p *domain.UserProfileContext) string {
	if p.IsEmpty() {
		return ""
	}
	var lines []string
	add := func(label, v string) {
		if v = strings.TrimSpace(v); v != "" {
			lines = append(lines, fmt.Sprintf("- %s: %s", label, v))
		}
	}
	add("State", p.State)
	add("Soil type", p.SoilType)
	add("Role", p.Role)
	add("Address", p.Address)
	return strings.Join(lines, "\n")
}
