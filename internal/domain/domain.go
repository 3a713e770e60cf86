package domain

import "github.com/kisansaathi/kisansaathi-backend/internal/domain/schemes"

type (
	SchemeRecord       = schemes.SchemeRecord
	RankedResult       = schemes.RankedResult
	UserProfileContext = schemes.UserProfileContext
	SearchRequest      = schemes.SearchRequest
	SearchResponse     = schemes.SearchResponse
	SearchLog          = schemes.SearchLog
)

const (
	OutcomeRanked       = schemes.OutcomeRanked
	OutcomeRankedCached = schemes.OutcomeRankedCached
	OutcomeFallback     = schemes.OutcomeFallback
)
