package taxonomy

import (
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"

	"github.com/voycel/Asset-Tracker-sub000/internal/repository"
	custom_error "github.com/voycel/Asset-Tracker-sub000/pkg/errors"
	"github.com/voycel/Asset-Tracker-sub000/pkg/models"
)

// TaxonomyRepository serves all five reference lists through one set of
// queries; the kind picks the table.
type TaxonomyRepository struct {
	repository *repository.Repository
}

func NewTaxonomyRepository(r *repository.Repository) *TaxonomyRepository {
	return &TaxonomyRepository{repository: r}
}

func (r *TaxonomyRepository) GetEntry(kind Kind, id int) (*models.TaxonomyEntry, error) {
	var entry models.TaxonomyEntry
	query := r.repository.GoquDBWrapper.
		Select("id", "tenant_id", "name", "sort_order").
		From(kind.Table()).
		Where(goqu.Ex{"id": id})

	found, err := query.Executor().ScanStruct(&entry)
	if err != nil {
		return nil, fmt.Errorf("unable to select %s from database: %w", kind.Singular(), err)
	}
	if !found {
		return nil, custom_error.NewNotFoundError(kind.Singular(), id)
	}

	return &entry, nil
}

func (r *TaxonomyRepository) GetEntries(kind Kind, tenantID *int) ([]models.TaxonomyEntry, error) {
	query := r.repository.GoquDBWrapper.
		Select("id", "tenant_id", "name", "sort_order").
		From(kind.Table()).
		Order(goqu.I("sort_order").Asc(), goqu.I("id").Asc())

	if tenantID != nil {
		query = query.Where(goqu.Or(
			goqu.Ex{"tenant_id": nil},
			goqu.Ex{"tenant_id": *tenantID},
		))
	}

	entries := []models.TaxonomyEntry{}
	if err := query.Executor().ScanStructs(&entries); err != nil {
		return nil, fmt.Errorf("unable to select %s from database: %w", kind.Table(), err)
	}

	return entries, nil
}

// PersistEntry appends the new row at the end of the display order.
func (r *TaxonomyRepository) PersistEntry(kind Kind, req models.TaxonomyRequest) (*models.TaxonomyEntry, error) {
	var nextOrder int
	orderQuery := r.repository.GoquDBWrapper.
		Select(goqu.L("COALESCE(MAX(sort_order), 0) + 1")).
		From(kind.Table())
	if _, err := orderQuery.Executor().ScanVal(&nextOrder); err != nil {
		return nil, fmt.Errorf("failed to compute next sort order: %w", err)
	}

	var id int
	query := r.repository.GoquDBWrapper.Insert(kind.Table()).
		Rows(goqu.Record{
			"tenant_id":  req.TenantID,
			"name":       req.Name,
			"sort_order": nextOrder,
		}).
		Returning("id")

	if _, err := query.Executor().ScanVal(&id); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return nil, custom_error.WrapDBError(kind.Singular()+" "+req.Name, string(pqErr.Code))
		}
		return nil, fmt.Errorf("failed to insert %s: %w", kind.Singular(), err)
	}

	return r.GetEntry(kind, id)
}

func (r *TaxonomyRepository) UpdateEntry(kind Kind, id int, name string) (*models.TaxonomyEntry, error) {
	result, err := r.repository.GoquDBWrapper.
		Update(kind.Table()).
		Set(goqu.Record{"name": name}).
		Where(goqu.Ex{"id": id}).
		Executor().
		Exec()
	if err != nil {
		return nil, fmt.Errorf("failed to update %s: %w", kind.Singular(), err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, custom_error.NewNotFoundError(kind.Singular(), id)
	}

	return r.GetEntry(kind, id)
}

func (r *TaxonomyRepository) DeleteEntry(kind Kind, id int) error {
	result, err := r.repository.GoquDBWrapper.
		Delete(kind.Table()).
		Where(goqu.Ex{"id": id}).
		Executor().
		Exec()
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", kind.Singular(), err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return custom_error.NewNotFoundError(kind.Singular(), id)
	}

	return nil
}

// CountAssetsReferencing reports how many assets currently point at the
// entry through the kind's asset column.
func (r *TaxonomyRepository) CountAssetsReferencing(kind Kind, id int) (int, error) {
	var count int
	query := r.repository.GoquDBWrapper.
		Select(goqu.COUNT("*")).
		From("assets").
		Where(goqu.Ex{kind.AssetColumn(): id})

	if _, err := query.Executor().ScanVal(&count); err != nil {
		return 0, fmt.Errorf("failed to count referencing assets: %w", err)
	}

	return count, nil
}

// Reorder rewrites sort_order for the whole list in one transaction. The
// explicit column replaces any data-mutation side channel for ordering.
func (r *TaxonomyRepository) Reorder(kind Kind, orderedIDs []int) error {
	return repository.WithTransaction(r.repository.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		for position, id := range orderedIDs {
			result, err := tx.Update(kind.Table()).
				Set(goqu.Record{"sort_order": position + 1}).
				Where(goqu.Ex{"id": id}).
				Executor().
				Exec()
			if err != nil {
				return fmt.Errorf("failed to reorder %s: %w", kind.Table(), err)
			}

			rowsAffected, err := result.RowsAffected()
			if err != nil {
				return fmt.Errorf("failed to get rows affected: %w", err)
			}
			if rowsAffected == 0 {
				return custom_error.NewNotFoundError(kind.Singular(), id)
			}
		}
		return nil
	})
}
