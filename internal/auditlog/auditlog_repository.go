package auditlog

import (
	"encoding/json"
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"github.com/voycel/Asset-Tracker-sub000/internal/repository"
	"github.com/voycel/Asset-Tracker-sub000/pkg/models"
)

type AuditLogRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *AuditLogRepository {
	return &AuditLogRepository{repository: r}
}

// PersistLog inserts one entry. When tx is non-nil the insert joins the
// caller's transaction so the entry commits with the state change it records.
func (r *AuditLogRepository) PersistLog(tx *goqu.TxDatabase, entry models.AuditLog, data interface{}) error {
	dataJSON, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal audit log data: %w", err)
	}

	record := goqu.Record{
		"resource_id":   entry.ResourceID,
		"resource_type": entry.ResourceType,
		"action":        entry.Action,
		"data":          dataJSON,
		"user_id":       entry.UserID,
	}

	var result error
	if tx != nil {
		_, result = tx.Insert("audit_logs").Rows(record).Executor().Exec()
	} else {
		_, result = r.repository.GoquDBWrapper.Insert("audit_logs").Rows(record).Executor().Exec()
	}
	if result != nil {
		return fmt.Errorf("failed to insert audit log: %w", result)
	}

	return nil
}

// GetResourceLog returns the history of one resource in creation order.
// Entries persist after the resource itself is hard-deleted.
func (r *AuditLogRepository) GetResourceLog(id int, resourceType string) ([]models.AuditLog, error) {
	query := r.repository.GoquDBWrapper.
		From(goqu.T("audit_logs").As("a")).
		Select(
			goqu.I("a.id").As("id"),
			goqu.I("a.resource_id").As("resource_id"),
			goqu.I("a.resource_type").As("resource_type"),
			goqu.I("a.action").As("action"),
			goqu.I("a.data").As("data"),
			goqu.I("a.user_id").As("user_id"),
			goqu.I("a.created_at").As("created_at"),
		).
		Where(goqu.Ex{
			"a.resource_id":   id,
			"a.resource_type": resourceType,
		}).
		Order(goqu.I("a.id").Asc())

	var entries []models.AuditLog
	if err := query.Executor().ScanStructs(&entries); err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}

	for i := range entries {
		entries[i].LoadFromDB()
	}

	return entries, nil
}
