package schema

import (
	"encoding/json"
	"fmt"

	"github.com/doug-martin/goqu/v9"

	custom_error "github.com/voycel/Asset-Tracker-sub000/pkg/errors"
	"github.com/voycel/Asset-Tracker-sub000/pkg/metadata"
	"github.com/voycel/Asset-Tracker-sub000/pkg/models"
)

type AssetTypeStore interface {
	GetAssetType(id int) (*models.AssetType, error)
	GetAssetTypes(tenantID *int) ([]models.AssetType, error)
	PersistAssetType(req models.AssetTypeRequest) (*models.AssetType, error)
	UpdateAssetType(id int, record goqu.Record) (*models.AssetType, error)
	DeleteAssetType(id int) error
	CountAssetsOfType(assetTypeID int) (int, error)
}

type FieldStore interface {
	GetField(id int) (*models.FieldDefinition, error)
	GetFieldsForType(assetTypeID int) ([]models.FieldDefinition, error)
	PersistField(assetTypeID int, req models.FieldRequest) (*models.FieldDefinition, error)
	UpdateField(id int, record goqu.Record) (*models.FieldDefinition, error)
	DeleteField(id int) error
	CountValuesForField(fieldID int) (int, error)
}

// SchemaService owns the administrator-defined data model: asset types and
// the custom fields attached to them.
type SchemaService struct {
	assetTypes AssetTypeStore
	fields     FieldStore
}

func NewSchemaService(assetTypes AssetTypeStore, fields FieldStore) *SchemaService {
	return &SchemaService{assetTypes: assetTypes, fields: fields}
}

func (s *SchemaService) CreateAssetType(req models.AssetTypeRequest) (*models.AssetType, error) {
	if req.Name == "" {
		return nil, custom_error.NewValidationError("name", "asset type name is required", nil)
	}
	return s.assetTypes.PersistAssetType(req)
}

func (s *SchemaService) GetAssetType(id int) (*models.AssetType, error) {
	return s.assetTypes.GetAssetType(id)
}

func (s *SchemaService) ListAssetTypes(tenantID *int) ([]models.AssetType, error) {
	return s.assetTypes.GetAssetTypes(tenantID)
}

func (s *SchemaService) UpdateAssetType(id int, req models.AssetTypeRequest) (*models.AssetType, error) {
	if req.Name == "" {
		return nil, custom_error.NewValidationError("name", "asset type name is required", nil)
	}
	record := goqu.Record{
		"name":        req.Name,
		"description": req.Description,
		"icon":        req.Icon,
	}
	return s.assetTypes.UpdateAssetType(id, record)
}

// DeleteAssetType refuses while instances of the type exist; deletion never
// silently orphans assets.
func (s *SchemaService) DeleteAssetType(id int) error {
	count, err := s.assetTypes.CountAssetsOfType(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return custom_error.NewConflictError(
			fmt.Sprintf("asset type has %d assets and cannot be deleted", count),
		)
	}
	return s.assetTypes.DeleteAssetType(id)
}

// DefineField attaches a new custom field to an asset type. Choice fields
// must carry at least one option; names collide case-sensitively.
func (s *SchemaService) DefineField(assetTypeID int, req models.FieldRequest) (*models.FieldDefinition, error) {
	kind, err := metadata.NewFieldKind(req.Kind)
	if err != nil {
		return nil, custom_error.NewValidationError("kind", err.Error(), req.Kind)
	}
	req.Kind = kind.String()

	if kind == metadata.KindChoice && len(req.Options) == 0 {
		return nil, custom_error.NewValidationError("options", "choice fields require at least one option", nil)
	}
	if kind != metadata.KindChoice {
		req.Options = nil
	}

	if _, err := s.assetTypes.GetAssetType(assetTypeID); err != nil {
		return nil, err
	}

	existing, err := s.fields.GetFieldsForType(assetTypeID)
	if err != nil {
		return nil, err
	}
	for _, field := range existing {
		if field.Name == req.Name {
			return nil, custom_error.NewValidationError("name", "field name already defined for this type", req.Name)
		}
	}

	return s.fields.PersistField(assetTypeID, req)
}

func (s *SchemaService) GetField(id int) (*models.FieldDefinition, error) {
	return s.fields.GetField(id)
}

func (s *SchemaService) ListFields(assetTypeID int) ([]models.FieldDefinition, error) {
	if _, err := s.assetTypes.GetAssetType(assetTypeID); err != nil {
		return nil, err
	}
	return s.fields.GetFieldsForType(assetTypeID)
}

// UpdateField edits a definition's metadata. The kind is immutable once any
// value row references the field; a change attempt is rejected outright
// rather than orphaning stored values.
func (s *SchemaService) UpdateField(id int, req models.FieldUpdateRequest) (*models.FieldDefinition, error) {
	field, err := s.fields.GetField(id)
	if err != nil {
		return nil, err
	}

	record := goqu.Record{}

	if req.Kind != nil && *req.Kind != field.Kind {
		kind, err := metadata.NewFieldKind(*req.Kind)
		if err != nil {
			return nil, custom_error.NewValidationError("kind", err.Error(), *req.Kind)
		}
		count, err := s.fields.CountValuesForField(id)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, custom_error.NewValidationError(
				"kind",
				fmt.Sprintf("kind cannot change while %d stored values reference this field", count),
				*req.Kind,
			)
		}
		record["kind"] = kind.String()
		field.Kind = kind.String()
	}

	if req.Name != nil && *req.Name != field.Name {
		siblings, err := s.fields.GetFieldsForType(field.AssetTypeID)
		if err != nil {
			return nil, err
		}
		for _, sibling := range siblings {
			if sibling.ID != id && sibling.Name == *req.Name {
				return nil, custom_error.NewValidationError("name", "field name already defined for this type", *req.Name)
			}
		}
		record["name"] = *req.Name
	}

	if req.Required != nil {
		record["required"] = *req.Required
	}
	if req.Filterable != nil {
		record["filterable"] = *req.Filterable
	}
	if req.ShowOnCard != nil {
		record["show_on_card"] = *req.ShowOnCard
	}

	if req.Options != nil {
		if field.Kind != metadata.KindChoice.String() {
			return nil, custom_error.NewValidationError("options", "options apply only to choice fields", nil)
		}
		if len(req.Options) == 0 {
			return nil, custom_error.NewValidationError("options", "choice fields require at least one option", nil)
		}
		record["options"] = mustMarshalOptions(req.Options)
	}

	if len(record) == 0 {
		return field, nil
	}

	return s.fields.UpdateField(id, record)
}

// DeleteField drops the definition and, by cascade, every stored value for
// it. The confirmation belongs to the caller, not the registry.
func (s *SchemaService) DeleteField(id int) error {
	return s.fields.DeleteField(id)
}

func mustMarshalOptions(options []string) []byte {
	data, err := json.Marshal(options)
	if err != nil {
		panic(err)
	}
	return data
}
