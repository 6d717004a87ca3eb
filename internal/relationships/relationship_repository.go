package relationships

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"

	"github.com/voycel/Asset-Tracker-sub000/internal/repository"
	custom_error "github.com/voycel/Asset-Tracker-sub000/pkg/errors"
	"github.com/voycel/Asset-Tracker-sub000/pkg/models"
)

type RelationshipRepository struct {
	*repository.Repository
}

func NewRelationshipRepository(repo *repository.Repository) *RelationshipRepository {
	return &RelationshipRepository{Repository: repo}
}

func (r *RelationshipRepository) GetRelationship(id int) (*models.Relationship, error) {
	var relationship models.Relationship
	found, err := r.GoquDBWrapper.From("asset_relationships").
		Select("id", "source_asset_id", "target_asset_id", "relationship_type", "note", "created_at").
		Where(goqu.Ex{"id": id}).
		ScanStruct(&relationship)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch relationship: %w", err)
	}
	if !found {
		return nil, custom_error.NewNotFoundError("relationship", id)
	}

	return &relationship, nil
}

func (r *RelationshipRepository) PersistRelationship(tx *goqu.TxDatabase, request models.RelationshipRequest) (int, error) {
	var relationshipID int
	_, err := tx.Insert("asset_relationships").
		Rows(goqu.Record{
			"source_asset_id":   request.SourceAssetID,
			"target_asset_id":   request.TargetAssetID,
			"relationship_type": request.Type,
			"note":              request.Note,
		}).
		Returning("id").
		Executor().
		ScanVal(&relationshipID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			return 0, custom_error.WrapDBError("these assets are already connected with this relationship type", string(pqErr.Code))
		}
		return 0, fmt.Errorf("unable to persist relationship: %w", err)
	}

	return relationshipID, nil
}

func (r *RelationshipRepository) DeleteRelationship(tx *goqu.TxDatabase, id int) error {
	result, err := tx.Delete("asset_relationships").
		Where(goqu.Ex{"id": id}).
		Executor().
		Exec()
	if err != nil {
		return fmt.Errorf("unable to delete relationship: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return custom_error.NewNotFoundError("relationship", id)
	}

	return nil
}

// GetRelationshipsFor lists edges touching the asset from either end. The
// counterpart name comes along so callers render the edge without a second
// lookup.
func (r *RelationshipRepository) GetRelationshipsFor(assetID int) ([]models.FlatRelationshipRecord, error) {
	var records []models.FlatRelationshipRecord
	err := r.GoquDBWrapper.From(goqu.T("asset_relationships").As("ar")).
		LeftJoin(
			goqu.T("assets").As("src"),
			goqu.On(goqu.Ex{"ar.source_asset_id": goqu.I("src.id")}),
		).
		LeftJoin(
			goqu.T("assets").As("tgt"),
			goqu.On(goqu.Ex{"ar.target_asset_id": goqu.I("tgt.id")}),
		).
		Select(
			goqu.I("ar.id").As("id"),
			goqu.I("ar.source_asset_id").As("source_asset_id"),
			goqu.I("ar.target_asset_id").As("target_asset_id"),
			goqu.I("ar.relationship_type").As("relationship_type"),
			goqu.I("ar.note").As("note"),
			goqu.L("CASE WHEN ar.source_asset_id = ? THEN tgt.name ELSE src.name END", assetID).As("other_name"),
		).
		Where(goqu.Or(
			goqu.Ex{"ar.source_asset_id": assetID},
			goqu.Ex{"ar.target_asset_id": assetID},
		)).
		Order(goqu.I("ar.id").Asc()).
		ScanStructs(&records)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("unable to fetch relationships: %w", err)
	}

	return records, nil
}
