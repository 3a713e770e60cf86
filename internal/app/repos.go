package app

import (
	"github.com/kisansaathi/kisansaathi-backend/internal/data/repos"
	"github.com/kisansaathi/kisansaathi-backend/internal/platform/logger"
)

type Repos struct {
	SearchLog repos.SearchLogRepo // nil without a database
}

func wireRepos(log *logger.Logger, clients Clients) Repos {
	if clients.DB == nil {
		log.Info("No DATABASE_DSN; search audit log disabled")
		return Repos{}
	}
	log.Info("Wiring repos...")
	return Repos{SearchLog: repos.NewSearchLogRepo(clients.DB.DB(), log)}
}
