package schemes

// SchemeRecord is one government scheme in the catalog. Records are built
// when the catalog loads and never change afterwards.
type SchemeRecord struct {
	ID                 int      `json:"id" yaml:"id"`
	Title              string   `json:"title" yaml:"title"`
	Objective          string   `json:"objective" yaml:"objective"`
	Description        string   `json:"description" yaml:"description"`
	Benefits           []string `json:"benefits" yaml:"benefits"`
	Eligibility        []string `json:"eligibility" yaml:"eligibility"`
	Keywords           []string `json:"keywords" yaml:"keywords"`
	ApplicationProcess string   `json:"applicationProcess" yaml:"application_process"`
	DocumentsRequired  []string `json:"documentsRequired" yaml:"documents_required"`
	Website            string   `json:"website" yaml:"website"`
}

// RankedResult is a catalog record plus the ranker's judgement. Both derived
// fields are nil on the fallback path so they are absent from the JSON.
type RankedResult struct {
	SchemeRecord
	Explanation    *string  `json:"explanation,omitempty"`
	RelevanceScore *float64 `json:"relevanceScore,omitempty"`
}

// Score returns the relevance score, treating a missing score as 0.
func (r RankedResult) Score() float64 {
	if r.RelevanceScore == nil {
		return 0
	}
	return *r.RelevanceScore
}

// UserProfileContext is optional farmer context used only to enrich the
// ranking prompt.
type UserProfileContext struct {
	State    string `json:"state,omitempty"`
	SoilType string `json:"soilType,omitempty"`
	Role     string `json:"role,omitempty"`
	Address  string `json:"address,omitempty"`
}

func (p *UserProfileContext) IsEmpty() bool {
	return p == nil || (p.State == "" && p.SoilType == "" && p.Role == "" && p.Address == "")
}

type SearchRequest struct {
	Query       string              `json:"query"`
	UserProfile *UserProfileContext `json:"userProfile,omitempty"`
}

type SearchResponse struct {
	Schemes    []RankedResult `json:"schemes"`
	Query      string         `json:"query"`
	TotalFound int            `json:"totalFound"`
	Warning    string         `json:"warning,omitempty"`
}

// Search outcomes recorded in logs, metrics and the audit table.
const (
	OutcomeRanked       = "ranked"
	OutcomeRankedCached = "ranked_cached"
	OutcomeFallback     = "fallback"
)
