package schema

import (
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"

	"github.com/voycel/Asset-Tracker-sub000/internal/repository"
	custom_error "github.com/voycel/Asset-Tracker-sub000/pkg/errors"
	"github.com/voycel/Asset-Tracker-sub000/pkg/models"
)

type AssetTypeRepository struct {
	repository *repository.Repository
}

func NewAssetTypeRepository(r *repository.Repository) *AssetTypeRepository {
	return &AssetTypeRepository{repository: r}
}

func (r *AssetTypeRepository) GetAssetType(id int) (*models.AssetType, error) {
	var assetType models.AssetType
	query := r.repository.GoquDBWrapper.
		Select("id", "tenant_id", "name", "description", "icon", "created_at").
		From("asset_types").
		Where(goqu.Ex{"id": id})

	found, err := query.Executor().ScanStruct(&assetType)
	if err != nil {
		return nil, fmt.Errorf("unable to select asset type from database: %w", err)
	}
	if !found {
		return nil, custom_error.NewNotFoundError("asset type", id)
	}

	return &assetType, nil
}

// GetAssetTypes returns the tenant's types plus the global ones
// (tenant_id IS NULL). A nil tenantID returns everything.
func (r *AssetTypeRepository) GetAssetTypes(tenantID *int) ([]models.AssetType, error) {
	query := r.repository.GoquDBWrapper.
		Select("id", "tenant_id", "name", "description", "icon", "created_at").
		From("asset_types").
		Order(goqu.I("name").Asc())

	if tenantID != nil {
		query = query.Where(goqu.Or(
			goqu.Ex{"tenant_id": nil},
			goqu.Ex{"tenant_id": *tenantID},
		))
	}

	assetTypes := []models.AssetType{}
	if err := query.Executor().ScanStructs(&assetTypes); err != nil {
		return nil, fmt.Errorf("unable to select asset types from database: %w", err)
	}

	return assetTypes, nil
}

func (r *AssetTypeRepository) PersistAssetType(req models.AssetTypeRequest) (*models.AssetType, error) {
	var id int
	query := r.repository.GoquDBWrapper.Insert("asset_types").
		Rows(goqu.Record{
			"tenant_id":   req.TenantID,
			"name":        req.Name,
			"description": req.Description,
			"icon":        req.Icon,
		}).
		Returning("id")

	if _, err := query.Executor().ScanVal(&id); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return nil, custom_error.WrapDBError("asset type "+req.Name, string(pqErr.Code))
		}
		return nil, fmt.Errorf("failed to insert asset type: %w", err)
	}

	return r.GetAssetType(id)
}

func (r *AssetTypeRepository) UpdateAssetType(id int, record goqu.Record) (*models.AssetType, error) {
	result, err := r.repository.GoquDBWrapper.
		Update("asset_types").
		Set(record).
		Where(goqu.Ex{"id": id}).
		Executor().
		Exec()
	if err != nil {
		return nil, fmt.Errorf("failed to update asset type: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, custom_error.NewNotFoundError("asset type", id)
	}

	return r.GetAssetType(id)
}

func (r *AssetTypeRepository) DeleteAssetType(id int) error {
	result, err := r.repository.GoquDBWrapper.
		Delete("asset_types").
		Where(goqu.Ex{"id": id}).
		Executor().
		Exec()
	if err != nil {
		return fmt.Errorf("failed to delete asset type: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return custom_error.NewNotFoundError("asset type", id)
	}

	return nil
}

func (r *AssetTypeRepository) CountAssetsOfType(assetTypeID int) (int, error) {
	var count int
	query := r.repository.GoquDBWrapper.
		Select(goqu.COUNT("*")).
		From("assets").
		Where(goqu.Ex{"asset_type_id": assetTypeID})

	if _, err := query.Executor().ScanVal(&count); err != nil {
		return 0, fmt.Errorf("failed to count assets of type: %w", err)
	}

	return count, nil
}
