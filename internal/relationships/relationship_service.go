package relationships

import (
	"github.com/doug-martin/goqu/v9"

	"github.com/voycel/Asset-Tracker-sub000/internal/repository"
	custom_error "github.com/voycel/Asset-Tracker-sub000/pkg/errors"
	"github.com/voycel/Asset-Tracker-sub000/pkg/auditlog"
	"github.com/voycel/Asset-Tracker-sub000/pkg/metadata"
	"github.com/voycel/Asset-Tracker-sub000/pkg/models"
)

type RelationshipStore interface {
	GetRelationship(id int) (*models.Relationship, error)
	PersistRelationship(tx *goqu.TxDatabase, request models.RelationshipRequest) (int, error)
	DeleteRelationship(tx *goqu.TxDatabase, id int) error
	GetRelationshipsFor(assetID int) ([]models.FlatRelationshipRecord, error)
}

type AssetLookup interface {
	GetAsset(id int) (*models.Asset, error)
}

type AuditRecorder interface {
	LogTx(tx *goqu.TxDatabase, action metadata.Action, userID *int, data map[string]interface{}, item auditlog.Auditable) error
}

type TxRunner func(fn func(tx *goqu.TxDatabase) error) error

type RelationshipService struct {
	relationships RelationshipStore
	assets        AssetLookup
	auditLog      AuditRecorder
	runInTx       TxRunner
}

func NewRelationshipService(
	relationships RelationshipStore,
	assets AssetLookup,
	auditLog AuditRecorder,
	repo *repository.Repository,
) *RelationshipService {
	return &RelationshipService{
		relationships: relationships,
		assets:        assets,
		auditLog:      auditLog,
		runInTx: func(fn func(tx *goqu.TxDatabase) error) error {
			return repository.WithTransaction(repo.GoquDBWrapper, fn)
		},
	}
}

// Connect creates the edge and writes one audit entry per endpoint, so both
// assets' histories show the event from their own perspective.
func (s *RelationshipService) Connect(request models.RelationshipRequest, userID *int) (*models.Relationship, error) {
	if request.SourceAssetID == request.TargetAssetID {
		return nil, custom_error.NewValidationError("target_asset_id", "an asset cannot be related to itself", request.TargetAssetID)
	}

	relType, err := metadata.NewRelationshipType(request.Type)
	if err != nil {
		return nil, custom_error.NewValidationError("type", err.Error(), request.Type)
	}
	request.Type = relType.String()

	source, err := s.assets.GetAsset(request.SourceAssetID)
	if err != nil {
		return nil, err
	}
	target, err := s.assets.GetAsset(request.TargetAssetID)
	if err != nil {
		return nil, err
	}

	var relationshipID int
	err = s.runInTx(func(tx *goqu.TxDatabase) error {
		relationshipID, err = s.relationships.PersistRelationship(tx, request)
		if err != nil {
			return err
		}
		return s.logBothEnds(tx, metadata.ActionRelationshipCreated, userID, relationshipID, relType, source, target)
	})
	if err != nil {
		return nil, err
	}

	return s.relationships.GetRelationship(relationshipID)
}

// Disconnect removes the edge. Both endpoints get a deletion entry; the
// edge itself leaves no other trace.
func (s *RelationshipService) Disconnect(relationshipID int, userID *int) error {
	relationship, err := s.relationships.GetRelationship(relationshipID)
	if err != nil {
		return err
	}

	relType, err := metadata.NewRelationshipType(relationship.Type)
	if err != nil {
		relType = metadata.RelRelatedTo
	}

	source, err := s.assets.GetAsset(relationship.SourceAssetID)
	if err != nil {
		return err
	}
	target, err := s.assets.GetAsset(relationship.TargetAssetID)
	if err != nil {
		return err
	}

	return s.runInTx(func(tx *goqu.TxDatabase) error {
		if err := s.relationships.DeleteRelationship(tx, relationshipID); err != nil {
			return err
		}
		return s.logBothEnds(tx, metadata.ActionRelationshipDeleted, userID, relationshipID, relType, source, target)
	})
}

// ListFor returns the asset's edges from its own perspective: forward edges
// keep the type's label, reverse edges get the inverse label. Reverse edges
// are skipped when includeReverse is false.
func (s *RelationshipService) ListFor(assetID int, includeReverse bool) ([]models.RelationshipView, error) {
	if _, err := s.assets.GetAsset(assetID); err != nil {
		return nil, err
	}

	records, err := s.relationships.GetRelationshipsFor(assetID)
	if err != nil {
		return nil, err
	}

	views := []models.RelationshipView{}
	for _, record := range records {
		relType, err := metadata.NewRelationshipType(record.Type)
		if err != nil {
			relType = metadata.RelRelatedTo
		}

		view := models.RelationshipView{
			ID:   record.ID,
			Type: record.Type,
			Note: record.Note,
		}
		if record.SourceAssetID == assetID {
			view.OtherAssetID = record.TargetAssetID
			view.Label = relType.Label()
		} else {
			if !includeReverse {
				continue
			}
			view.OtherAssetID = record.SourceAssetID
			view.Label = relType.InverseLabel()
			view.Reverse = true
		}
		view.OtherName = record.OtherName
		views = append(views, view)
	}

	return views, nil
}

func (s *RelationshipService) logBothEnds(
	tx *goqu.TxDatabase,
	action metadata.Action,
	userID *int,
	relationshipID int,
	relType metadata.RelationshipType,
	source, target *models.Asset,
) error {
	err := s.auditLog.LogTx(tx, action, userID, map[string]interface{}{
		"relationship_id": relationshipID,
		"type":            relType.String(),
		"label":           relType.Label(),
		"other_asset_id":  target.ID,
		"other_name":      target.Name,
	}, source)
	if err != nil {
		return err
	}

	return s.auditLog.LogTx(tx, action, userID, map[string]interface{}{
		"relationship_id": relationshipID,
		"type":            relType.String(),
		"label":           relType.InverseLabel(),
		"other_asset_id":  source.ID,
		"other_name":      source.Name,
	}, target)
}
