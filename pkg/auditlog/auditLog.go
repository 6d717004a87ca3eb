package auditlog

import (
	"github.com/doug-martin/goqu/v9"
	"go.uber.org/zap"

	auditrepo "github.com/voycel/Asset-Tracker-sub000/internal/auditlog"
	"github.com/voycel/Asset-Tracker-sub000/pkg/metadata"
	"github.com/voycel/Asset-Tracker-sub000/pkg/models"
)

type Auditlog struct {
	r      *auditrepo.AuditLogRepository
	logger *zap.Logger
}

// Auditable is anything that can describe itself as an audit-log target.
type Auditable interface {
	CreateLogView() models.AuditLog
}

func NewAuditLog(repository *auditrepo.AuditLogRepository, logger *zap.Logger) *Auditlog {
	return &Auditlog{r: repository, logger: logger}
}

// LogTx records an entry inside the caller's transaction. Mutating services
// use this so the entry commits or rolls back with the state change.
func (a *Auditlog) LogTx(tx *goqu.TxDatabase, action metadata.Action, userID *int, data map[string]interface{}, item Auditable) error {
	entry := item.CreateLogView()
	entry.Action = action.Normalize().String()
	entry.UserID = userID

	return a.r.PersistLog(tx, entry, data)
}

// Log records an entry outside any transaction. A failure is logged and
// swallowed; it is only used on paths where the state change has already
// committed independently.
func (a *Auditlog) Log(action metadata.Action, userID *int, data map[string]interface{}, item Auditable) {
	if err := a.LogTx(nil, action, userID, data, item); err != nil {
		a.logger.Warn("unable to create audit log entry",
			zap.String("action", action.String()),
			zap.Error(err),
		)
		return
	}
}
