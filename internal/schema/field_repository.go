package schema

import (
	"encoding/json"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"

	"github.com/voycel/Asset-Tracker-sub000/internal/repository"
	custom_error "github.com/voycel/Asset-Tracker-sub000/pkg/errors"
	"github.com/voycel/Asset-Tracker-sub000/pkg/models"
)

type FieldRepository struct {
	repository *repository.Repository
}

func NewFieldRepository(r *repository.Repository) *FieldRepository {
	return &FieldRepository{repository: r}
}

func (r *FieldRepository) GetField(id int) (*models.FieldDefinition, error) {
	var flat models.FlatFieldRecord
	query := r.getFieldQuery().Where(goqu.Ex{"id": id})

	found, err := query.Executor().ScanStruct(&flat)
	if err != nil {
		return nil, fmt.Errorf("unable to select field from database: %w", err)
	}
	if !found {
		return nil, custom_error.NewNotFoundError("field definition", id)
	}

	field, err := flat.TransformToFieldDefinition()
	if err != nil {
		return nil, err
	}
	return &field, nil
}

// GetFieldsForType returns a type's definitions in creation order.
func (r *FieldRepository) GetFieldsForType(assetTypeID int) ([]models.FieldDefinition, error) {
	query := r.getFieldQuery().
		Where(goqu.Ex{"asset_type_id": assetTypeID}).
		Order(goqu.I("id").Asc())

	var flatFields []models.FlatFieldRecord
	if err := query.Executor().ScanStructs(&flatFields); err != nil {
		return nil, fmt.Errorf("unable to select fields from database: %w", err)
	}

	fields := []models.FieldDefinition{}
	for _, flat := range flatFields {
		field, err := flat.TransformToFieldDefinition()
		if err != nil {
			return nil, err
		}
		fields = append(fields, field)
	}

	return fields, nil
}

func (r *FieldRepository) PersistField(assetTypeID int, req models.FieldRequest) (*models.FieldDefinition, error) {
	optionsJSON, err := json.Marshal(normalizeOptions(req.Options))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal field options: %w", err)
	}

	var id int
	query := r.repository.GoquDBWrapper.Insert("custom_fields").
		Rows(goqu.Record{
			"asset_type_id": assetTypeID,
			"name":          req.Name,
			"kind":          req.Kind,
			"required":      req.Required,
			"filterable":    req.Filterable,
			"show_on_card":  req.ShowOnCard,
			"options":       optionsJSON,
		}).
		Returning("id")

	if _, err := query.Executor().ScanVal(&id); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return nil, custom_error.WrapDBError("field name already defined for this type", string(pqErr.Code))
		}
		return nil, fmt.Errorf("failed to insert field definition: %w", err)
	}

	return r.GetField(id)
}

func (r *FieldRepository) UpdateField(id int, record goqu.Record) (*models.FieldDefinition, error) {
	result, err := r.repository.GoquDBWrapper.
		Update("custom_fields").
		Set(record).
		Where(goqu.Ex{"id": id}).
		Executor().
		Exec()
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return nil, custom_error.WrapDBError("field name already defined for this type", string(pqErr.Code))
		}
		return nil, fmt.Errorf("failed to update field definition: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, custom_error.NewNotFoundError("field definition", id)
	}

	return r.GetField(id)
}

// DeleteField removes the definition; stored values cascade at the database
// level.
func (r *FieldRepository) DeleteField(id int) error {
	result, err := r.repository.GoquDBWrapper.
		Delete("custom_fields").
		Where(goqu.Ex{"id": id}).
		Executor().
		Exec()
	if err != nil {
		return fmt.Errorf("failed to delete field definition: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return custom_error.NewNotFoundError("field definition", id)
	}

	return nil
}

// CountValuesForField reports how many stored values reference the field.
// Non-zero locks the field's kind.
func (r *FieldRepository) CountValuesForField(fieldID int) (int, error) {
	var count int
	query := r.repository.GoquDBWrapper.
		Select(goqu.COUNT("*")).
		From("asset_field_values").
		Where(goqu.Ex{"field_id": fieldID})

	if _, err := query.Executor().ScanVal(&count); err != nil {
		return 0, fmt.Errorf("failed to count field values: %w", err)
	}

	return count, nil
}

func (r *FieldRepository) getFieldQuery() *goqu.SelectDataset {
	return r.repository.GoquDBWrapper.
		Select("id", "asset_type_id", "name", "kind", "required", "filterable", "show_on_card", "options", "created_at").
		From("custom_fields")
}

func normalizeOptions(options []string) []string {
	if options == nil {
		return []string{}
	}
	return options
}
