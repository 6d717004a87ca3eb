package assets

import (
	"testing"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/voycel/Asset-Tracker-sub000/internal/attributes"
	"github.com/voycel/Asset-Tracker-sub000/internal/taxonomy"
	custom_error "github.com/voycel/Asset-Tracker-sub000/pkg/errors"
	"github.com/voycel/Asset-Tracker-sub000/pkg/auditlog"
	"github.com/voycel/Asset-Tracker-sub000/pkg/metadata"
	"github.com/voycel/Asset-Tracker-sub000/pkg/models"
)

type MockAssetStore struct {
	mock.Mock
}

func (m *MockAssetStore) GetAsset(id int) (*models.Asset, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Asset), args.Error(1)
}

func (m *MockAssetStore) GetAssetTypeID(assetID int) (int, error) {
	args := m.Called(assetID)
	return args.Int(0), args.Error(1)
}

func (m *MockAssetStore) GetAssetsBy(filter AssetFilter) ([]models.Asset, error) {
	args := m.Called(filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Asset), args.Error(1)
}

func (m *MockAssetStore) PersistAsset(tx *goqu.TxDatabase, record goqu.Record) (int, error) {
	args := m.Called(tx, record)
	return args.Int(0), args.Error(1)
}

func (m *MockAssetStore) UpdateAsset(tx *goqu.TxDatabase, assetID int, record goqu.Record) error {
	args := m.Called(tx, assetID, record)
	return args.Error(0)
}

func (m *MockAssetStore) UpdatePointer(tx *goqu.TxDatabase, assetID int, column string, value *int) error {
	args := m.Called(tx, assetID, column, value)
	return args.Error(0)
}

func (m *MockAssetStore) SetArchived(tx *goqu.TxDatabase, assetID int, archived bool) error {
	args := m.Called(tx, assetID, archived)
	return args.Error(0)
}

func (m *MockAssetStore) DeleteAsset(tx *goqu.TxDatabase, assetID int) error {
	args := m.Called(tx, assetID)
	return args.Error(0)
}

type MockAssetTypeLookup struct {
	mock.Mock
}

func (m *MockAssetTypeLookup) GetAssetType(id int) (*models.AssetType, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AssetType), args.Error(1)
}

type MockFieldsLookup struct {
	mock.Mock
}

func (m *MockFieldsLookup) GetField(id int) (*models.FieldDefinition, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FieldDefinition), args.Error(1)
}

func (m *MockFieldsLookup) GetFieldsForType(assetTypeID int) ([]models.FieldDefinition, error) {
	args := m.Called(assetTypeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FieldDefinition), args.Error(1)
}

type MockTaxonomyLookup struct {
	mock.Mock
}

func (m *MockTaxonomyLookup) GetEntry(kind taxonomy.Kind, id int) (*models.TaxonomyEntry, error) {
	args := m.Called(kind, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TaxonomyEntry), args.Error(1)
}

type MockValueStore struct {
	mock.Mock
}

func (m *MockValueStore) UpsertValue(tx *goqu.TxDatabase, assetID, fieldID int, value attributes.TypedValue) error {
	args := m.Called(tx, assetID, fieldID, value)
	return args.Error(0)
}

func (m *MockValueStore) GetValuesForAsset(assetID int) ([]models.FlatValueRecord, error) {
	args := m.Called(assetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FlatValueRecord), args.Error(1)
}

type MockLogReader struct {
	mock.Mock
}

func (m *MockLogReader) GetResourceLog(id int, resourceType string) ([]models.AuditLog, error) {
	args := m.Called(id, resourceType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AuditLog), args.Error(1)
}

type MockAuditRecorder struct {
	mock.Mock
}

func (m *MockAuditRecorder) LogTx(tx *goqu.TxDatabase, action metadata.Action, userID *int, data map[string]interface{}, item auditlog.Auditable) error {
	args := m.Called(tx, action, userID, data, item)
	return args.Error(0)
}

type serviceMocks struct {
	assets     *MockAssetStore
	assetTypes *MockAssetTypeLookup
	fields     *MockFieldsLookup
	taxonomies *MockTaxonomyLookup
	values     *MockValueStore
	logs       *MockLogReader
	auditLog   *MockAuditRecorder
}

func newTestService() (*AssetService, *serviceMocks) {
	mocks := &serviceMocks{
		assets:     new(MockAssetStore),
		assetTypes: new(MockAssetTypeLookup),
		fields:     new(MockFieldsLookup),
		taxonomies: new(MockTaxonomyLookup),
		values:     new(MockValueStore),
		logs:       new(MockLogReader),
		auditLog:   new(MockAuditRecorder),
	}

	service := &AssetService{
		assets:     mocks.assets,
		assetTypes: mocks.assetTypes,
		fields:     mocks.fields,
		taxonomies: mocks.taxonomies,
		values:     mocks.values,
		logs:       mocks.logs,
		auditLog:   mocks.auditLog,
		runInTx: func(fn func(tx *goqu.TxDatabase) error) error {
			return fn(nil)
		},
	}

	return service, mocks
}

func laptopType() *models.AssetType {
	return &models.AssetType{ID: 1, Name: "Laptop"}
}

func laptopFields() []models.FieldDefinition {
	return []models.FieldDefinition{
		{ID: 10, AssetTypeID: 1, Name: "serial_number", Kind: "text", Required: true},
		{ID: 11, AssetTypeID: 1, Name: "ram_gb", Kind: "number"},
	}
}

func TestCreateRejectsMissingRequiredField(t *testing.T) {
	service, mocks := newTestService()

	mocks.assetTypes.On("GetAssetType", 1).Return(laptopType(), nil)
	mocks.fields.On("GetFieldsForType", 1).Return(laptopFields(), nil)

	_, err := service.Create(models.AssetRequest{
		AssetTypeID:       1,
		Name:              "MacBook",
		CustomFieldValues: map[string]interface{}{"ram_gb": 16},
	}, nil)

	var validationErr *custom_error.ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "serial_number", validationErr.Field)
	mocks.assets.AssertNotCalled(t, "PersistAsset", mock.Anything, mock.Anything)
}

func TestCreateRejectsUnknownFieldName(t *testing.T) {
	service, mocks := newTestService()

	mocks.assetTypes.On("GetAssetType", 1).Return(laptopType(), nil)
	mocks.fields.On("GetFieldsForType", 1).Return(laptopFields(), nil)

	_, err := service.Create(models.AssetRequest{
		AssetTypeID: 1,
		Name:        "MacBook",
		CustomFieldValues: map[string]interface{}{
			"serial_number": "SN-1",
			"color":         "silver",
		},
	}, nil)

	var validationErr *custom_error.ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "color", validationErr.Field)
}

func TestCreatePersistsValuesAndAudit(t *testing.T) {
	service, mocks := newTestService()
	userID := 7

	mocks.assetTypes.On("GetAssetType", 1).Return(laptopType(), nil)
	mocks.fields.On("GetFieldsForType", 1).Return(laptopFields(), nil)
	mocks.assets.On("PersistAsset", mock.Anything, mock.Anything).Return(42, nil)
	mocks.values.On("UpsertValue", mock.Anything, 42, 10, mock.MatchedBy(func(v attributes.TypedValue) bool {
		return v.Text != nil && *v.Text == "SN-1"
	})).Return(nil)
	mocks.values.On("UpsertValue", mock.Anything, 42, 11, mock.MatchedBy(func(v attributes.TypedValue) bool {
		return v.Number != nil && *v.Number == 16
	})).Return(nil)
	mocks.auditLog.On("LogTx", mock.Anything, metadata.ActionCreate, &userID, mock.Anything, mock.Anything).Return(nil)
	mocks.assets.On("GetAsset", 42).Return(&models.Asset{ID: 42, Name: "MacBook"}, nil)

	asset, err := service.Create(models.AssetRequest{
		AssetTypeID: 1,
		Name:        "MacBook",
		CustomFieldValues: map[string]interface{}{
			"serial_number": "SN-1",
			"ram_gb":        16,
		},
	}, &userID)

	assert.NoError(t, err)
	assert.Equal(t, 42, asset.ID)
	mocks.values.AssertExpectations(t)
	mocks.auditLog.AssertExpectations(t)
}

func TestCreateValidatesPointers(t *testing.T) {
	service, mocks := newTestService()
	statusID := 99

	mocks.assetTypes.On("GetAssetType", 1).Return(laptopType(), nil)
	mocks.taxonomies.On("GetEntry", taxonomy.KindStatus, 99).
		Return(nil, custom_error.NewNotFoundError("status", 99))

	_, err := service.Create(models.AssetRequest{
		AssetTypeID: 1,
		Name:        "MacBook",
		StatusID:    &statusID,
	}, nil)

	var notFound *custom_error.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestSetPointerTransitionsAndAudits(t *testing.T) {
	service, mocks := newTestService()
	newStatus := 5

	current := &models.Asset{
		ID:     42,
		Name:   "MacBook",
		Status: &models.TaxonomyRef{ID: 3, Name: "In Storage"},
	}
	updated := &models.Asset{
		ID:     42,
		Name:   "MacBook",
		Status: &models.TaxonomyRef{ID: 5, Name: "Deployed"},
	}

	mocks.assets.On("GetAsset", 42).Return(current, nil).Once()
	mocks.taxonomies.On("GetEntry", taxonomy.KindStatus, 5).
		Return(&models.TaxonomyEntry{ID: 5, Name: "Deployed"}, nil)
	mocks.assets.On("UpdatePointer", mock.Anything, 42, "status_id", &newStatus).Return(nil)
	mocks.auditLog.On("LogTx", mock.Anything, metadata.ActionUpdateStatus, (*int)(nil),
		mock.MatchedBy(func(data map[string]interface{}) bool {
			return data["old_id"] == 3 && data["new_id"] == 5 && data["new_name"] == "Deployed"
		}), mock.Anything).Return(nil)
	mocks.assets.On("GetAsset", 42).Return(updated, nil).Once()

	result, err := service.SetPointer(42, DimensionStatus, &newStatus, nil)

	assert.NoError(t, err)
	assert.Equal(t, 5, result.Status.ID)
	mocks.auditLog.AssertExpectations(t)
}

func TestSetPointerSameValueIsNoOp(t *testing.T) {
	service, mocks := newTestService()
	sameStatus := 3

	current := &models.Asset{
		ID:     42,
		Status: &models.TaxonomyRef{ID: 3, Name: "In Storage"},
	}

	mocks.assets.On("GetAsset", 42).Return(current, nil)
	mocks.taxonomies.On("GetEntry", taxonomy.KindStatus, 3).
		Return(&models.TaxonomyEntry{ID: 3, Name: "In Storage"}, nil)

	result, err := service.SetPointer(42, DimensionStatus, &sameStatus, nil)

	assert.NoError(t, err)
	assert.Equal(t, current, result)
	mocks.assets.AssertNotCalled(t, "UpdatePointer", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	mocks.auditLog.AssertNotCalled(t, "LogTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSetPointerClearsToNil(t *testing.T) {
	service, mocks := newTestService()

	current := &models.Asset{
		ID:         42,
		Assignment: &models.TaxonomyRef{ID: 9, Name: "Alex"},
	}

	mocks.assets.On("GetAsset", 42).Return(current, nil).Once()
	mocks.assets.On("UpdatePointer", mock.Anything, 42, "assignment_id", (*int)(nil)).Return(nil)
	mocks.auditLog.On("LogTx", mock.Anything, metadata.ActionAssigned, (*int)(nil),
		mock.MatchedBy(func(data map[string]interface{}) bool {
			return data["old_id"] == 9 && data["new_id"] == nil
		}), mock.Anything).Return(nil)
	mocks.assets.On("GetAsset", 42).Return(&models.Asset{ID: 42}, nil).Once()

	result, err := service.SetPointer(42, DimensionAssignment, nil, nil)

	assert.NoError(t, err)
	assert.Nil(t, result.Assignment)
	mocks.auditLog.AssertExpectations(t)
}

func TestArchiveIsIdempotent(t *testing.T) {
	service, mocks := newTestService()

	mocks.assets.On("GetAsset", 42).Return(&models.Asset{ID: 42, Archived: true}, nil)

	assert.NoError(t, service.Archive(42, nil))
	mocks.assets.AssertNotCalled(t, "SetArchived", mock.Anything, mock.Anything, mock.Anything)
	mocks.auditLog.AssertNotCalled(t, "LogTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestArchiveWritesAudit(t *testing.T) {
	service, mocks := newTestService()

	mocks.assets.On("GetAsset", 42).Return(&models.Asset{ID: 42}, nil)
	mocks.assets.On("SetArchived", mock.Anything, 42, true).Return(nil)
	mocks.auditLog.On("LogTx", mock.Anything, metadata.ActionArchive, (*int)(nil), mock.Anything, mock.Anything).Return(nil)

	assert.NoError(t, service.Archive(42, nil))
	mocks.auditLog.AssertExpectations(t)
}

func TestDeleteWritesAudit(t *testing.T) {
	service, mocks := newTestService()
	tag := "AT-0042"

	mocks.assets.On("GetAsset", 42).Return(&models.Asset{ID: 42, Name: "MacBook", AssetTag: &tag}, nil)
	mocks.assets.On("DeleteAsset", mock.Anything, 42).Return(nil)
	mocks.auditLog.On("LogTx", mock.Anything, metadata.ActionDelete, (*int)(nil),
		mock.MatchedBy(func(data map[string]interface{}) bool {
			return data["name"] == "MacBook"
		}), mock.Anything).Return(nil)

	assert.NoError(t, service.Delete(42, nil))
	mocks.auditLog.AssertExpectations(t)
}

func TestUpdateNoChangesSkipsWrite(t *testing.T) {
	service, mocks := newTestService()

	current := &models.Asset{ID: 42, Name: "MacBook"}
	mocks.assets.On("GetAsset", 42).Return(current, nil)

	result, err := service.Update(42, models.AssetUpdateRequest{}, nil)

	assert.NoError(t, err)
	assert.Equal(t, current, result)
	mocks.assets.AssertNotCalled(t, "UpdateAsset", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateRejectsBadDate(t *testing.T) {
	service, mocks := newTestService()
	badDate := "15.03.2026"

	mocks.assets.On("GetAsset", 42).Return(&models.Asset{ID: 42}, nil)

	_, err := service.Update(42, models.AssetUpdateRequest{DateAcquired: &badDate}, nil)

	var validationErr *custom_error.ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "date_acquired", validationErr.Field)
}

func TestResolveFieldFilterCoercesValue(t *testing.T) {
	service, mocks := newTestService()

	mocks.fields.On("GetField", 11).Return(&models.FieldDefinition{
		ID: 11, AssetTypeID: 1, Name: "ram_gb", Kind: "number",
	}, nil)

	filter, err := service.ResolveFieldFilter(11, "16")

	assert.NoError(t, err)
	assert.Equal(t, 11, filter.FieldID)
	assert.NotNil(t, filter.Value.Number)
	assert.Equal(t, float64(16), *filter.Value.Number)
}

func TestDetailCombinesValuesAndLogs(t *testing.T) {
	service, mocks := newTestService()

	mocks.assets.On("GetAsset", 42).Return(&models.Asset{ID: 42, Name: "MacBook"}, nil)
	serial := "SN-1"
	mocks.values.On("GetValuesForAsset", 42).Return([]models.FlatValueRecord{
		{AssetID: 42, FieldID: 10, FieldName: "serial_number", Kind: "text", TextValue: &serial},
	}, nil)
	mocks.logs.On("GetResourceLog", 42, "asset").Return([]models.AuditLog{
		{ResourceID: 42, ResourceType: "asset", Action: "CREATE", CreatedAt: time.Now()},
	}, nil)

	detail, err := service.Detail(42)

	assert.NoError(t, err)
	assert.Len(t, detail.AttributeValues, 1)
	assert.Equal(t, "serial_number", detail.AttributeValues[0].FieldName)
	assert.Equal(t, "SN-1", detail.AttributeValues[0].Value)
	assert.Len(t, detail.Logs, 1)
}
