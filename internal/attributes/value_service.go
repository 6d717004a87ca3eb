package attributes

import (
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"github.com/voycel/Asset-Tracker-sub000/internal/repository"
	"github.com/voycel/Asset-Tracker-sub000/pkg/auditlog"
	custom_error "github.com/voycel/Asset-Tracker-sub000/pkg/errors"
	"github.com/voycel/Asset-Tracker-sub000/pkg/metadata"
	"github.com/voycel/Asset-Tracker-sub000/pkg/models"
)

type FieldLookup interface {
	GetField(id int) (*models.FieldDefinition, error)
}

type AssetLookup interface {
	GetAssetTypeID(assetID int) (int, error)
}

type ValueStore interface {
	UpsertValue(tx *goqu.TxDatabase, assetID, fieldID int, value TypedValue) error
	GetValuesForAsset(assetID int) ([]models.FlatValueRecord, error)
}

type AuditRecorder interface {
	LogTx(tx *goqu.TxDatabase, action metadata.Action, userID *int, data map[string]interface{}, item auditlog.Auditable) error
}

type TxRunner func(fn func(tx *goqu.TxDatabase) error) error

type ValueService struct {
	values   ValueStore
	fields   FieldLookup
	assets   AssetLookup
	auditLog AuditRecorder
	runInTx  TxRunner
}

func NewValueService(values ValueStore, fields FieldLookup, assets AssetLookup, repo *repository.Repository, auditLog AuditRecorder) *ValueService {
	return &ValueService{
		values:   values,
		fields:   fields,
		assets:   assets,
		auditLog: auditLog,
		runInTx: func(fn func(tx *goqu.TxDatabase) error) error {
			return repository.WithTransaction(repo.GoquDBWrapper, fn)
		},
	}
}

// UpsertValue coerces raw against the field's declared kind, stores the
// typed value and records the change, all in one transaction.
func (s *ValueService) UpsertValue(assetID, fieldID int, raw interface{}, userID *int) (*models.FieldValueView, error) {
	field, err := s.fields.GetField(fieldID)
	if err != nil {
		return nil, err
	}

	assetTypeID, err := s.assets.GetAssetTypeID(assetID)
	if err != nil {
		return nil, err
	}

	// A field from another asset type reaching this point is a schema-engine
	// bug, not user error.
	if field.AssetTypeID != assetTypeID {
		return nil, custom_error.NewIntegrityError(fmt.Sprintf(
			"field %q belongs to asset type %d, asset %d has type %d",
			field.Name, field.AssetTypeID, assetID, assetTypeID,
		))
	}

	value, err := Coerce(field, raw)
	if err != nil {
		return nil, err
	}

	oldValue, err := s.currentValue(assetID, fieldID)
	if err != nil {
		return nil, err
	}

	logView := &models.Asset{ID: assetID}
	err = s.runInTx(func(tx *goqu.TxDatabase) error {
		if err := s.values.UpsertValue(tx, assetID, fieldID, value); err != nil {
			return err
		}
		return s.auditLog.LogTx(tx, metadata.ActionUpdate, userID, map[string]interface{}{
			"field":     field.Name,
			"old_value": oldValue,
			"new_value": value.Interface(),
			"msg":       fmt.Sprintf("Custom field %q updated", field.Name),
		}, logView)
	})
	if err != nil {
		return nil, err
	}

	return &models.FieldValueView{
		FieldID:    field.ID,
		FieldName:  field.Name,
		Kind:       field.Kind,
		ShowOnCard: field.ShowOnCard,
		Value:      value.Interface(),
	}, nil
}

// ValuesFor returns the asset's stored values keyed by field name.
func (s *ValueService) ValuesFor(assetID int) ([]models.FieldValueView, error) {
	if _, err := s.assets.GetAssetTypeID(assetID); err != nil {
		return nil, err
	}

	records, err := s.values.GetValuesForAsset(assetID)
	if err != nil {
		return nil, err
	}

	views := []models.FieldValueView{}
	for _, record := range records {
		views = append(views, ViewFromRecord(record))
	}

	return views, nil
}

func (s *ValueService) currentValue(assetID, fieldID int) (interface{}, error) {
	records, err := s.values.GetValuesForAsset(assetID)
	if err != nil {
		return nil, err
	}
	for _, record := range records {
		if record.FieldID == fieldID {
			return ViewFromRecord(record).Value, nil
		}
	}
	return nil, nil
}

// ViewFromRecord rebuilds the variant from a joined row and renders it under
// the field's name.
func ViewFromRecord(record models.FlatValueRecord) models.FieldValueView {
	value := TypedValue{
		Kind:    metadata.FieldKind(record.Kind),
		Text:    record.TextValue,
		Number:  record.NumberValue,
		Date:    record.DateValue,
		Boolean: record.BooleanValue,
	}

	return models.FieldValueView{
		FieldID:    record.FieldID,
		FieldName:  record.FieldName,
		Kind:       record.Kind,
		ShowOnCard: record.ShowOnCard,
		Value:      value.Interface(),
	}
}
