package models

import (
	"encoding/json"
	"time"
)

// AuditLog is one append-only history entry. Rows are never mutated or
// deleted; they survive the hard delete of the asset they describe.
type AuditLog struct {
	ID           int                    `json:"id" db:"id"`
	ResourceID   int                    `json:"resource_id" db:"resource_id"`
	ResourceType string                 `json:"resource_type" db:"resource_type"`
	Action       string                 `json:"action" db:"action"`
	DataRaw      []byte                 `json:"-" db:"data"`
	Data         map[string]interface{} `json:"data" db:"-"`
	UserID       *int                   `json:"user_id,omitempty" db:"user_id"`
	CreatedAt    time.Time              `json:"created_at" db:"created_at"`
}

func (a *AuditLog) LoadFromDB() {
	if len(a.DataRaw) > 0 {
		_ = json.Unmarshal(a.DataRaw, &a.Data)
	}
}
