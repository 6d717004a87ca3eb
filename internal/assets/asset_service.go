package assets

import (
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/voycel/Asset-Tracker-sub000/internal/attributes"
	"github.com/voycel/Asset-Tracker-sub000/internal/repository"
	"github.com/voycel/Asset-Tracker-sub000/internal/taxonomy"
	custom_error "github.com/voycel/Asset-Tracker-sub000/pkg/errors"
	"github.com/voycel/Asset-Tracker-sub000/pkg/auditlog"
	"github.com/voycel/Asset-Tracker-sub000/pkg/metadata"
	"github.com/voycel/Asset-Tracker-sub000/pkg/models"
)

const dateLayout = "2006-01-02"

type AssetStore interface {
	GetAsset(id int) (*models.Asset, error)
	GetAssetTypeID(assetID int) (int, error)
	GetAssetsBy(filter AssetFilter) ([]models.Asset, error)
	PersistAsset(tx *goqu.TxDatabase, record goqu.Record) (int, error)
	UpdateAsset(tx *goqu.TxDatabase, assetID int, record goqu.Record) error
	UpdatePointer(tx *goqu.TxDatabase, assetID int, column string, value *int) error
	SetArchived(tx *goqu.TxDatabase, assetID int, archived bool) error
	DeleteAsset(tx *goqu.TxDatabase, assetID int) error
}

type AssetTypeLookup interface {
	GetAssetType(id int) (*models.AssetType, error)
}

type FieldsLookup interface {
	GetField(id int) (*models.FieldDefinition, error)
	GetFieldsForType(assetTypeID int) ([]models.FieldDefinition, error)
}

type TaxonomyLookup interface {
	GetEntry(kind taxonomy.Kind, id int) (*models.TaxonomyEntry, error)
}

type ValueStore interface {
	UpsertValue(tx *goqu.TxDatabase, assetID, fieldID int, value attributes.TypedValue) error
	GetValuesForAsset(assetID int) ([]models.FlatValueRecord, error)
}

type LogReader interface {
	GetResourceLog(id int, resourceType string) ([]models.AuditLog, error)
}

type AuditRecorder interface {
	LogTx(tx *goqu.TxDatabase, action metadata.Action, userID *int, data map[string]interface{}, item auditlog.Auditable) error
}

// TxRunner runs fn transactionally; tests substitute a pass-through.
type TxRunner func(fn func(tx *goqu.TxDatabase) error) error

type AssetService struct {
	assets     AssetStore
	assetTypes AssetTypeLookup
	fields     FieldsLookup
	taxonomies TaxonomyLookup
	values     ValueStore
	logs       LogReader
	auditLog   AuditRecorder
	runInTx    TxRunner
}

func NewAssetService(
	assets AssetStore,
	assetTypes AssetTypeLookup,
	fields FieldsLookup,
	taxonomies TaxonomyLookup,
	values ValueStore,
	logs LogReader,
	auditLog AuditRecorder,
	repo *repository.Repository,
) *AssetService {
	return &AssetService{
		assets:     assets,
		assetTypes: assetTypes,
		fields:     fields,
		taxonomies: taxonomies,
		values:     values,
		logs:       logs,
		auditLog:   auditLog,
		runInTx: func(fn func(tx *goqu.TxDatabase) error) error {
			return repository.WithTransaction(repo.GoquDBWrapper, fn)
		},
	}
}

// Create persists the instance row, every supplied custom field value and
// the CREATE audit entry atomically: a bad value rolls the whole asset back.
func (s *AssetService) Create(req models.AssetRequest, userID *int) (*models.Asset, error) {
	if _, err := s.assetTypes.GetAssetType(req.AssetTypeID); err != nil {
		return nil, err
	}

	if err := s.validatePointers(req); err != nil {
		return nil, err
	}

	dateAcquired, err := parseDate(req.DateAcquired)
	if err != nil {
		return nil, custom_error.NewValidationError("date_acquired", "expected a date in YYYY-MM-DD format", req.DateAcquired)
	}

	coerced, err := s.coerceCustomValues(req.AssetTypeID, req.CustomFieldValues)
	if err != nil {
		return nil, err
	}

	record := goqu.Record{
		"tenant_id":       req.TenantID,
		"asset_type_id":   req.AssetTypeID,
		"asset_tag":       req.AssetTag,
		"name":            req.Name,
		"manufacturer_id": req.ManufacturerID,
		"date_acquired":   dateAcquired,
		"cost":            req.Cost,
		"notes":           req.Notes,
		"status_id":       req.StatusID,
		"location_id":     req.LocationID,
		"assignment_id":   req.AssignmentID,
		"customer_id":     req.CustomerID,
	}

	var assetID int
	err = s.runInTx(func(tx *goqu.TxDatabase) error {
		assetID, err = s.assets.PersistAsset(tx, record)
		if err != nil {
			return err
		}

		for _, value := range coerced {
			if err := s.values.UpsertValue(tx, assetID, value.fieldID, value.value); err != nil {
				return err
			}
		}

		logView := &models.Asset{ID: assetID}
		return s.auditLog.LogTx(tx, metadata.ActionCreate, userID, map[string]interface{}{
			"name":          req.Name,
			"asset_type_id": req.AssetTypeID,
			"asset_tag":     req.AssetTag,
			"msg":           "Asset created",
		}, logView)
	})
	if err != nil {
		return nil, err
	}

	return s.assets.GetAsset(assetID)
}

// Update edits the fixed fields. Pointer transitions go through SetPointer.
func (s *AssetService) Update(assetID int, req models.AssetUpdateRequest, userID *int) (*models.Asset, error) {
	asset, err := s.assets.GetAsset(assetID)
	if err != nil {
		return nil, err
	}

	record := goqu.Record{}
	changes := map[string]interface{}{}

	if req.AssetTag != nil {
		record["asset_tag"] = req.AssetTag
		changes["asset_tag"] = *req.AssetTag
	}
	if req.Name != nil {
		record["name"] = *req.Name
		changes["name"] = *req.Name
	}
	if req.ManufacturerID != nil {
		if _, err := s.taxonomies.GetEntry(taxonomy.KindManufacturer, *req.ManufacturerID); err != nil {
			return nil, err
		}
		record["manufacturer_id"] = *req.ManufacturerID
		changes["manufacturer_id"] = *req.ManufacturerID
	}
	if req.DateAcquired != nil {
		dateAcquired, err := parseDate(req.DateAcquired)
		if err != nil {
			return nil, custom_error.NewValidationError("date_acquired", "expected a date in YYYY-MM-DD format", *req.DateAcquired)
		}
		record["date_acquired"] = dateAcquired
		changes["date_acquired"] = *req.DateAcquired
	}
	if req.Cost != nil {
		record["cost"] = *req.Cost
		changes["cost"] = *req.Cost
	}
	if req.Notes != nil {
		record["notes"] = *req.Notes
		changes["notes"] = *req.Notes
	}

	if len(record) == 0 {
		return asset, nil
	}

	err = s.runInTx(func(tx *goqu.TxDatabase) error {
		if err := s.assets.UpdateAsset(tx, assetID, record); err != nil {
			return err
		}
		return s.auditLog.LogTx(tx, metadata.ActionUpdate, userID, map[string]interface{}{
			"changes": changes,
			"msg":     "Asset updated",
		}, asset)
	})
	if err != nil {
		return nil, err
	}

	return s.assets.GetAsset(assetID)
}

// SetPointer transitions one dimension to a new taxonomy row, or to nil for
// unassigned. Setting the current value again is a no-op: no row update and
// no audit entry.
func (s *AssetService) SetPointer(assetID int, dimension Dimension, newID *int, userID *int) (*models.Asset, error) {
	asset, err := s.assets.GetAsset(assetID)
	if err != nil {
		return nil, err
	}

	var newName *string
	if newID != nil {
		entry, err := s.taxonomies.GetEntry(dimension.TaxonomyKind(), *newID)
		if err != nil {
			return nil, err
		}
		newName = &entry.Name
	}

	current := dimension.Current(asset)
	if pointerEqual(current, newID) {
		return asset, nil
	}

	detail := map[string]interface{}{
		"msg": fmt.Sprintf("Asset %s changed", dimension),
	}
	if current != nil {
		detail["old_id"] = current.ID
		detail["old_name"] = current.Name
	} else {
		detail["old_id"] = nil
	}
	if newID != nil {
		detail["new_id"] = *newID
		detail["new_name"] = *newName
	} else {
		detail["new_id"] = nil
	}

	err = s.runInTx(func(tx *goqu.TxDatabase) error {
		if err := s.assets.UpdatePointer(tx, assetID, dimension.Column(), newID); err != nil {
			return err
		}
		return s.auditLog.LogTx(tx, dimension.Action(), userID, detail, asset)
	})
	if err != nil {
		return nil, err
	}

	return s.assets.GetAsset(assetID)
}

// Archive soft-deletes: the asset drops out of default listings but keeps
// its values and relationships. Archiving an archived asset is a no-op.
func (s *AssetService) Archive(assetID int, userID *int) error {
	asset, err := s.assets.GetAsset(assetID)
	if err != nil {
		return err
	}
	if asset.Archived {
		return nil
	}

	return s.runInTx(func(tx *goqu.TxDatabase) error {
		if err := s.assets.SetArchived(tx, assetID, true); err != nil {
			return err
		}
		return s.auditLog.LogTx(tx, metadata.ActionArchive, userID, map[string]interface{}{
			"msg": "Asset archived",
		}, asset)
	})
}

// Delete is the irreversible hard delete. The audit trail survives as the
// permanent record of the no-longer-existing asset.
func (s *AssetService) Delete(assetID int, userID *int) error {
	asset, err := s.assets.GetAsset(assetID)
	if err != nil {
		return err
	}

	return s.runInTx(func(tx *goqu.TxDatabase) error {
		if err := s.assets.DeleteAsset(tx, assetID); err != nil {
			return err
		}
		return s.auditLog.LogTx(tx, metadata.ActionDelete, userID, map[string]interface{}{
			"name":      asset.Name,
			"asset_tag": asset.AssetTag,
			"msg":       "Asset permanently deleted",
		}, asset)
	})
}

func (s *AssetService) List(filter AssetFilter) ([]models.Asset, error) {
	return s.assets.GetAssetsBy(filter)
}

// ResolveFieldFilter coerces a raw filter value against the field's kind so
// the query engine compares typed slots, not strings.
func (s *AssetService) ResolveFieldFilter(fieldID int, raw string) (FieldFilter, error) {
	field, err := s.fields.GetField(fieldID)
	if err != nil {
		return FieldFilter{}, err
	}

	value, err := attributes.Coerce(field, raw)
	if err != nil {
		return FieldFilter{}, err
	}

	return FieldFilter{FieldID: fieldID, Value: value}, nil
}

// Detail returns the asset with its field-name-keyed values and its full
// history.
func (s *AssetService) Detail(assetID int) (*models.AssetDetail, error) {
	asset, err := s.assets.GetAsset(assetID)
	if err != nil {
		return nil, err
	}

	records, err := s.values.GetValuesForAsset(assetID)
	if err != nil {
		return nil, err
	}
	views := []models.FieldValueView{}
	for _, record := range records {
		views = append(views, attributes.ViewFromRecord(record))
	}

	logs, err := s.logs.GetResourceLog(assetID, "asset")
	if err != nil {
		return nil, err
	}

	return &models.AssetDetail{
		Asset:           *asset,
		AttributeValues: views,
		Logs:            logs,
	}, nil
}

type coercedValue struct {
	fieldID int
	value   attributes.TypedValue
}

// coerceCustomValues resolves the name-keyed request values against the
// type's field definitions and enforces required fields.
func (s *AssetService) coerceCustomValues(assetTypeID int, rawValues map[string]interface{}) ([]coercedValue, error) {
	fields, err := s.fields.GetFieldsForType(assetTypeID)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]models.FieldDefinition, len(fields))
	for _, field := range fields {
		byName[field.Name] = field
	}

	for name := range rawValues {
		if _, ok := byName[name]; !ok {
			return nil, custom_error.NewValidationError(name, "no such field for this asset type", nil)
		}
	}

	var coerced []coercedValue
	for _, field := range fields {
		raw, supplied := rawValues[field.Name]
		if !supplied || raw == nil {
			if field.Required {
				return nil, custom_error.NewValidationError(field.Name, "required field is missing", nil)
			}
			continue
		}

		value, err := attributes.Coerce(&field, raw)
		if err != nil {
			return nil, err
		}
		coerced = append(coerced, coercedValue{fieldID: field.ID, value: value})
	}

	return coerced, nil
}

func (s *AssetService) validatePointers(req models.AssetRequest) error {
	pointers := []struct {
		kind taxonomy.Kind
		id   *int
	}{
		{taxonomy.KindStatus, req.StatusID},
		{taxonomy.KindLocation, req.LocationID},
		{taxonomy.KindAssignment, req.AssignmentID},
		{taxonomy.KindCustomer, req.CustomerID},
		{taxonomy.KindManufacturer, req.ManufacturerID},
	}
	for _, pointer := range pointers {
		if pointer.id == nil {
			continue
		}
		if _, err := s.taxonomies.GetEntry(pointer.kind, *pointer.id); err != nil {
			return err
		}
	}
	return nil
}

func pointerEqual(current *models.TaxonomyRef, newID *int) bool {
	if current == nil && newID == nil {
		return true
	}
	if current == nil || newID == nil {
		return false
	}
	return current.ID == *newID
}

func parseDate(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	date, err := time.Parse(dateLayout, *raw)
	if err != nil {
		return nil, err
	}
	return &date, nil
}
