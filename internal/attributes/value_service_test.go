package attributes

import (
	"testing"

	"github.com/doug-martin/goqu/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/voycel/Asset-Tracker-sub000/pkg/auditlog"
	custom_error "github.com/voycel/Asset-Tracker-sub000/pkg/errors"
	"github.com/voycel/Asset-Tracker-sub000/pkg/metadata"
	"github.com/voycel/Asset-Tracker-sub000/pkg/models"
)

type MockValueStore struct {
	mock.Mock
}

func (m *MockValueStore) UpsertValue(tx *goqu.TxDatabase, assetID, fieldID int, value TypedValue) error {
	args := m.Called(tx, assetID, fieldID, value)
	return args.Error(0)
}

func (m *MockValueStore) GetValuesForAsset(assetID int) ([]models.FlatValueRecord, error) {
	args := m.Called(assetID)
	return args.Get(0).([]models.FlatValueRecord), args.Error(1)
}

type MockFieldLookup struct {
	mock.Mock
}

func (m *MockFieldLookup) GetField(id int) (*models.FieldDefinition, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FieldDefinition), args.Error(1)
}

type MockAssetLookup struct {
	mock.Mock
}

func (m *MockAssetLookup) GetAssetTypeID(assetID int) (int, error) {
	args := m.Called(assetID)
	return args.Int(0), args.Error(1)
}

type MockAuditRecorder struct {
	mock.Mock
}

func (m *MockAuditRecorder) LogTx(tx *goqu.TxDatabase, action metadata.Action, userID *int, data map[string]interface{}, item auditlog.Auditable) error {
	args := m.Called(tx, action, userID, data, item)
	return args.Error(0)
}

func newTestValueService() (*ValueService, *MockValueStore, *MockFieldLookup, *MockAssetLookup, *MockAuditRecorder) {
	values := new(MockValueStore)
	fields := new(MockFieldLookup)
	assets := new(MockAssetLookup)
	audit := new(MockAuditRecorder)

	service := &ValueService{
		values:   values,
		fields:   fields,
		assets:   assets,
		auditLog: audit,
		runInTx: func(fn func(tx *goqu.TxDatabase) error) error {
			return fn(nil)
		},
	}

	return service, values, fields, assets, audit
}

func TestUpsertValueRejectsFieldFromAnotherAssetType(t *testing.T) {
	service, values, fields, assets, _ := newTestValueService()

	fields.On("GetField", 10).Return(&models.FieldDefinition{
		ID: 10, AssetTypeID: 2, Name: "serial_number", Kind: "text",
	}, nil)
	assets.On("GetAssetTypeID", 5).Return(1, nil)

	_, err := service.UpsertValue(5, 10, "SN-1", nil)

	var integrityErr *custom_error.IntegrityError
	assert.ErrorAs(t, err, &integrityErr)
	values.AssertNotCalled(t, "UpsertValue", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpsertChoiceValueRoundTrips(t *testing.T) {
	service, values, fields, assets, audit := newTestValueService()

	fields.On("GetField", 12).Return(&models.FieldDefinition{
		ID: 12, AssetTypeID: 1, Name: "condition", Kind: "choice",
		Options: []string{"New", "Used", "Broken"},
	}, nil)
	assets.On("GetAssetTypeID", 5).Return(1, nil)
	values.On("GetValuesForAsset", 5).Return([]models.FlatValueRecord{}, nil)
	values.On("UpsertValue", mock.Anything, 5, 12, mock.MatchedBy(func(value TypedValue) bool {
		return value.Text != nil && *value.Text == "Used"
	})).Return(nil)
	audit.On("LogTx", mock.Anything, metadata.ActionUpdate, (*int)(nil), mock.Anything, mock.Anything).Return(nil)

	view, err := service.UpsertValue(5, 12, "Used", nil)

	assert.NoError(t, err)
	assert.Equal(t, "condition", view.FieldName)
	assert.Equal(t, "Used", view.Value)
	values.AssertExpectations(t)
}

func TestUpsertValueRejectsChoiceOutsideOptions(t *testing.T) {
	service, values, fields, assets, _ := newTestValueService()

	fields.On("GetField", 12).Return(&models.FieldDefinition{
		ID: 12, AssetTypeID: 1, Name: "condition", Kind: "choice",
		Options: []string{"New", "Used"},
	}, nil)
	assets.On("GetAssetTypeID", 5).Return(1, nil)

	_, err := service.UpsertValue(5, 12, "Mint", nil)

	var validationErr *custom_error.ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "condition", validationErr.Field)
	values.AssertNotCalled(t, "UpsertValue", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpsertValueAuditsOldAndNewValue(t *testing.T) {
	service, values, fields, assets, audit := newTestValueService()

	old := "SN-OLD"
	fields.On("GetField", 10).Return(&models.FieldDefinition{
		ID: 10, AssetTypeID: 1, Name: "serial_number", Kind: "text",
	}, nil)
	assets.On("GetAssetTypeID", 5).Return(1, nil)
	values.On("GetValuesForAsset", 5).Return([]models.FlatValueRecord{
		{AssetID: 5, FieldID: 10, FieldName: "serial_number", Kind: "text", TextValue: &old},
	}, nil)
	values.On("UpsertValue", mock.Anything, 5, 10, mock.Anything).Return(nil)

	userID := 7
	audit.On("LogTx", mock.Anything, metadata.ActionUpdate, &userID, mock.MatchedBy(func(data map[string]interface{}) bool {
		return data["field"] == "serial_number" &&
			data["old_value"] == "SN-OLD" &&
			data["new_value"] == "SN-NEW"
	}), mock.Anything).Return(nil)

	_, err := service.UpsertValue(5, 10, "SN-NEW", &userID)

	assert.NoError(t, err)
	audit.AssertExpectations(t)
}

func TestValuesForReturnsFieldNameKeyedViews(t *testing.T) {
	service, values, _, assets, _ := newTestValueService()

	serial := "SN-1"
	ram := 16.0
	assets.On("GetAssetTypeID", 5).Return(1, nil)
	values.On("GetValuesForAsset", 5).Return([]models.FlatValueRecord{
		{AssetID: 5, FieldID: 10, FieldName: "serial_number", Kind: "text", TextValue: &serial},
		{AssetID: 5, FieldID: 11, FieldName: "ram_gb", Kind: "number", NumberValue: &ram},
	}, nil)

	views, err := service.ValuesFor(5)

	assert.NoError(t, err)
	assert.Len(t, views, 2)
	assert.Equal(t, "serial_number", views[0].FieldName)
	assert.Equal(t, "SN-1", views[0].Value)
	assert.Equal(t, "ram_gb", views[1].FieldName)
	assert.Equal(t, 16.0, views[1].Value)
}

func TestValuesForUnknownAsset(t *testing.T) {
	service, _, _, assets, _ := newTestValueService()

	assets.On("GetAssetTypeID", 99).Return(0, custom_error.NewNotFoundError("asset", 99))

	_, err := service.ValuesFor(99)

	var notFoundErr *custom_error.NotFoundError
	assert.ErrorAs(t, err, &notFoundErr)
}
