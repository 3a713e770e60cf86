package schemes

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SearchLog is the audit row written for every completed scheme search.
// DroppedIDs holds ranker identifiers that had no catalog match.
type SearchLog struct {
	ID           string         `gorm:"primaryKey;size:36" json:"id"`
	RequestID    string         `gorm:"column:request_id;size:64;index" json:"request_id,omitempty"`
	Query        string         `gorm:"column:query;not null" json:"query"`
	Profile      datatypes.JSON `gorm:"column:profile" json:"profile,omitempty"`
	CandidateIDs datatypes.JSON `gorm:"column:candidate_ids" json:"candidate_ids"`
	ResultIDs    datatypes.JSON `gorm:"column:result_ids" json:"result_ids"`
	DroppedIDs   datatypes.JSON `gorm:"column:dropped_ids" json:"dropped_ids,omitempty"`
	Outcome      string         `gorm:"column:outcome;size:32;not null;index" json:"outcome"`
	Model        string         `gorm:"column:model;size:128" json:"model"`
	Error        string         `gorm:"column:error" json:"error,omitempty"`
	DurationMS   int64          `gorm:"column:duration_ms" json:"duration_ms"`
	CreatedAt    time.Time      `gorm:"not null;index" json:"created_at"`
}

func (SearchLog) TableName() string { return "scheme_search_log" }

func (l *SearchLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now().UTC()
	}
	return nil
}
