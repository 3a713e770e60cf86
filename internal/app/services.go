package app

import (
	"fmt"

	"github.com/kisansaathi/kisansaathi-backend/internal/data/catalog"
	"github.com/kisansaathi/kisansaathi-backend/internal/modules/schemes"
	"github.com/kisansaathi/kisansaathi-backend/internal/observability"
	"github.com/kisansaathi/kisansaathi-backend/internal/platform/logger"
	"github.com/kisansaathi/kisansaathi-backend/internal/services"
)

type Services struct {
	SchemeSearch services.SchemeSearchService
}

func wireServices(log *logger.Logger, cat catalog.Catalog, clients Clients, reposet Repos, metrics *observability.Metrics) (Services, error) {
	log.Info("Wiring services...")
	deps := services.SchemeSearchDeps{
		Catalog: cat,
		Metrics: metrics,
	}
	if clients.Gemini != nil {
		ranker, err := schemes.NewRanker(clients.Gemini)
		if err != nil {
			return Services{}, fmt.Errorf("init ranker: %w", err)
		}
		deps.Ranker = ranker
	}
	if clients.Cache != nil {
		deps.Cache = clients.Cache
	}
	if reposet.SearchLog != nil {
		deps.SearchLog = reposet.SearchLog
	}
	search, err := services.NewSchemeSearchService(log, deps)
	if err != nil {
		return Services{}, err
	}
	return Services{SchemeSearch: search}, nil
}
