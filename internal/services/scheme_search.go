package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/datatypes"

	"github.com/kisansaathi/kisansaathi-backend/internal/clients/redis"
	"github.com/kisansaathi/kisansaathi-backend/internal/data/catalog"
	"github.com/kisansaathi/kisansaathi-backend/internal/data/repos"
	types "github.com/kisansaathi/kisansaathi-backend/internal/domain"
	"github.com/kisansaathi/kisansaathi-backend/internal/modules/schemes"
	"github.com/kisansaathi/kisansaathi-backend/internal/observability"
	"github.com/kisansaathi/kisansaathi-backend/internal/platform/ctxutil"
	"github.com/kisansaathi/kisansaathi-backend/internal/platform/logger"
)

var (
	ErrQueryRequired       = errors.New("query is required")
	ErrRankerNotConfigured = errors.New("scheme ranking is not configured: missing GEMINI_API_KEY")
	ErrSchemeNotFound      = errors.New("scheme not found")
)

// SchemeRanker is satisfied by *schemes.Ranker.
type SchemeRanker interface {
	Rank(ctx context.Context, query string, candidates []types.SchemeRecord, profile *types.UserProfileContext) (*schemes.Ranking, error)
	Model() string
}

type SchemeSearchService interface {
	Search(ctx context.Context, req types.SearchRequest) (*types.SearchResponse, error)
	ListSchemes(ctx context.Context) []types.SchemeRecord
	GetScheme(ctx context.Context, id int) (types.SchemeRecord, error)
}

// SchemeSearchDeps groups the collaborators of the search service. Only
// Catalog is required; a nil Ranker makes every search fail with
// ErrRankerNotConfigured.
type SchemeSearchDeps struct {
	Catalog   catalog.Catalog
	Ranker    SchemeRanker
	Cache     redis.RankingCache
	SearchLog repos.SearchLogRepo
	Metrics   *observability.Metrics
}

type schemeSearchService struct {
	log       *logger.Logger
	catalog   catalog.Catalog
	ranker    SchemeRanker
	cache     redis.RankingCache
	searchLog repos.SearchLogRepo
	metrics   *observability.Metrics
	tracer    trace.Tracer
	now       func() time.Time
}

func NewSchemeSearchService(log *logger.Logger, deps SchemeSearchDeps) (SchemeSearchService, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if deps.Catalog == nil {
		return nil, fmt.Errorf("scheme catalog required")
	}
	serviceLog := log.With("service", "SchemeSearchService")
	if deps.Ranker == nil {
		serviceLog.Warn("No ranker configured; scheme search requests will fail until GEMINI_API_KEY is set")
	}
	return &schemeSearchService{
		log:       serviceLog,
		catalog:   deps.Catalog,
		ranker:    deps.Ranker,
		cache:     deps.Cache,
		searchLog: deps.SearchLog,
		metrics:   deps.Metrics,
		tracer:    observability.Tracer("kisansaathi/services/scheme_search"),
		now:       time.Now,
	}, nil
}

// searchRun carries the bookkeeping of one search for logging and auditing.
type searchRun struct {
	query      string
	profile    *types.UserProfileContext
	candidates schemes.Candidates
	results    []types.RankedResult
	dropped    []int
	outcome    string
	rankErr    error
	started    time.Time
}

func (s *schemeSearchService) Search(ctx context.Context, req types.SearchRequest) (*types.SearchResponse, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, ErrQueryRequired
	}
	if s.ranker == nil {
		return nil, ErrRankerNotConfigured
	}

	ctx, span := s.tracer.Start(ctx, "SchemeSearch.Search")
	defer span.End()

	run := &searchRun{query: query, profile: req.UserProfile, started: s.now()}
	if run.profile != nil && run.profile.IsEmpty() {
		run.profile = nil
	}

	_, pfSpan := s.tracer.Start(ctx, "SchemeSearch.Prefilter")
	run.candidates = schemes.SelectCandidates(query, s.catalog.All())
	pfSpan.SetAttributes(
		attribute.Int("prefilter.matched", run.candidates.Matched),
		attribute.Bool("prefilter.defaulted", run.candidates.Defaulted),
		attribute.Int("prefilter.candidates", len(run.candidates.Records)),
	)
	pfSpan.End()
	s.metrics.ObservePrefilter(run.candidates.Matched, run.candidates.Defaulted)

	entries, cached, err := s.rank(ctx, run)
	if err != nil {
		run.rankErr = err
		run.outcome = types.OutcomeFallback
		run.results = schemes.Fallback(run.candidates.Records)
		s.metrics.IncRankerFailure(failureReason(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "ranker failed")
		s.log.Warn("Scheme ranking failed; returning keyword matches",
			append(ctxutil.LogFields(ctx),
				"error", err,
				"candidates", len(run.candidates.Records),
			)...,
		)
	} else {
		run.outcome = types.OutcomeRanked
		if cached {
			run.outcome = types.OutcomeRankedCached
		}
		run.results, run.dropped = schemes.Assemble(entries, s.catalog.ByID)
		if len(run.dropped) > 0 {
			observability.ReportDataQuality(ctx, s.log, s.metrics, "scheme_assemble", "unknown_scheme_id", len(run.dropped),
				map[string]any{"dropped_ids": run.dropped})
		}
	}

	s.metrics.IncSearch(run.outcome)
	span.SetAttributes(
		attribute.String("search.outcome", run.outcome),
		attribute.Int("search.results", len(run.results)),
	)
	s.audit(ctx, run)

	resp := &types.SearchResponse{
		Schemes:    run.results,
		Query:      query,
		TotalFound: len(run.results),
	}
	if run.outcome == types.OutcomeFallback {
		resp.Warning = schemes.FallbackWarning
	}
	return resp, nil
}

// rank serves the ranking from cache when possible and stores fresh ones.
func (s *schemeSearchService) rank(ctx context.Context, run *searchRun) ([]schemes.RankedEntry, bool, error) {
	key := ""
	if s.cache != nil {
		key = rankingCacheKey(s.ranker.Model(), run.query, run.profile, schemes.IDs(run.candidates.Records))
		if entries, ok := s.cacheGet(ctx, key); ok {
			return entries, true, nil
		}
	}

	ctx, span := s.tracer.Start(ctx, "SchemeSearch.Rank")
	defer span.End()
	span.SetAttributes(
		attribute.String("ranker.model", s.ranker.Model()),
		attribute.Int("ranker.candidates", len(run.candidates.Records)),
	)
	start := time.Now()
	ranking, err := s.ranker.Rank(ctx, run.query, run.candidates.Records, run.profile)
	s.metrics.ObserveRanker(time.Since(start), err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, false, err
	}
	span.SetAttributes(attribute.Int("ranker.entries", len(ranking.Entries)))
	if s.cache != nil {
		s.cacheSet(ctx, key, ranking.Entries)
	}
	return ranking.Entries, false, nil
}

func (s *schemeSearchService) cacheGet(ctx context.Context, key string) ([]schemes.RankedEntry, bool) {
	raw, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.metrics.IncCacheLookup("error")
		s.log.Warn("Ranking cache lookup failed", append(ctxutil.LogFields(ctx), "error", err)...)
		return nil, false
	}
	if !ok {
		s.metrics.IncCacheLookup("miss")
		return nil, false
	}
	var entries []schemes.RankedEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		s.metrics.IncCacheLookup("error")
		s.log.Warn("Ranking cache entry unreadable", append(ctxutil.LogFields(ctx), "error", err)...)
		return nil, false
	}
	s.metrics.IncCacheLookup("hit")
	return entries, true
}

func (s *schemeSearchService) cacheSet(ctx context.Context, key string, entries []schemes.RankedEntry) {
	raw, err := json.Marshal(entries)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, raw); err != nil {
		s.log.Warn("Ranking cache store failed", append(ctxutil.LogFields(ctx), "error", err)...)
	}
}

// audit writes the search log row. It outlives request cancellation and
// never fails the search.
func (s *schemeSearchService) audit(ctx context.Context, run *searchRun) {
	if s.searchLog == nil {
		return
	}
	row := &types.SearchLog{
		RequestID:    ctxutil.RequestID(ctx),
		Query:        run.query,
		CandidateIDs: jsonOf(schemes.IDs(run.candidates.Records)),
		ResultIDs:    jsonOf(resultIDs(run.results)),
		Outcome:      run.outcome,
		Model:        s.ranker.Model(),
		DurationMS:   s.now().Sub(run.started).Milliseconds(),
	}
	if run.profile != nil {
		row.Profile = jsonOf(run.profile)
	}
	if len(run.dropped) > 0 {
		row.DroppedIDs = jsonOf(run.dropped)
	}
	if run.rankErr != nil {
		row.Error = run.rankErr.Error()
	}
	if _, err := s.searchLog.Create(context.WithoutCancel(ctx), nil, []*types.SearchLog{row}); err != nil {
		s.log.Warn("Search audit write failed", append(ctxutil.LogFields(ctx), "error", err)...)
	}
}

func (s *schemeSearchService) ListSchemes(ctx context.Context) []types.SchemeRecord {
	return s.catalog.All()
}

func (s *schemeSearchService) GetScheme(ctx context.Context, id int) (types.SchemeRecord, error) {
	rec, ok := s.catalog.ByID(id)
	if !ok {
		return types.SchemeRecord{}, ErrSchemeNotFound
	}
	return rec, nil
}

// rankingCacheKey fingerprints everything the ranker reply depends on.
func rankingCacheKey(model, query string, profile *types.UserProfileContext, candidateIDs []int) string {
	payload, _ := json.Marshal(struct {
		Model      string                    `json:"m"`
		Query      string                    `json:"q"`
		Profile    *types.UserProfileContext `json:"p,omitempty"`
		Candidates []int                     `json:"c"`
	}{model, strings.ToLower(query), profile, candidateIDs})
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

func failureReason(err error) string {
	var pe *schemes.ParseError
	switch {
	case errors.As(err, &pe):
		return "parse_" + string(pe.Kind)
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "provider"
	}
}

func resultIDs(results []types.RankedResult) []int {
	out := make([]int, 0, len(results))
	for _, r := range results {
		out = append(out, r.ID)
	}
	return out
}

func jsonOf(v any) datatypes.JSON {
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return datatypes.JSON(b)
}
