package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/voycel/Asset-Tracker-sub000/internal/taxonomy"
	custom_error "github.com/voycel/Asset-Tracker-sub000/pkg/errors"
	"github.com/voycel/Asset-Tracker-sub000/pkg/auditlog"
	"github.com/voycel/Asset-Tracker-sub000/pkg/metadata"
	"github.com/voycel/Asset-Tracker-sub000/pkg/models"
)

type MockAssetCreator struct {
	mock.Mock
}

func (m *MockAssetCreator) Create(req models.AssetRequest, userID *int) (*models.Asset, error) {
	args := m.Called(req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Asset), args.Error(1)
}

type MockAssetTypeLister struct {
	mock.Mock
}

func (m *MockAssetTypeLister) GetAssetTypes(tenantID *int) ([]models.AssetType, error) {
	args := m.Called(tenantID)
	return args.Get(0).([]models.AssetType), args.Error(1)
}

type MockTaxonomyLister struct {
	mock.Mock
}

func (m *MockTaxonomyLister) GetEntries(kind taxonomy.Kind, tenantID *int) ([]models.TaxonomyEntry, error) {
	args := m.Called(kind, tenantID)
	return args.Get(0).([]models.TaxonomyEntry), args.Error(1)
}

type noopAudit struct{}

func (noopAudit) Log(action metadata.Action, userID *int, data map[string]interface{}, item auditlog.Auditable) {
}

func newTestImporter() (*ImportService, *MockAssetCreator) {
	creator := new(MockAssetCreator)
	types := new(MockAssetTypeLister)
	taxonomies := new(MockTaxonomyLister)

	types.On("GetAssetTypes", mock.Anything).Return([]models.AssetType{
		{ID: 1, Name: "Laptop"},
	}, nil)

	for _, kind := range taxonomy.Kinds() {
		entries := []models.TaxonomyEntry{}
		if kind == taxonomy.KindStatus {
			entries = []models.TaxonomyEntry{{ID: 3, Name: "In Storage"}}
		}
		taxonomies.On("GetEntries", kind, mock.Anything).Return(entries, nil)
	}

	return NewImportService(creator, types, taxonomies, noopAudit{}), creator
}

func TestImportCSVCreatesAssets(t *testing.T) {
	importer, creator := newTestImporter()

	csv := strings.Join([]string{
		"asset_type,name,asset_tag,status,serial_number",
		"Laptop,MacBook,AT-1,In Storage,SN-1",
		"laptop,ThinkPad,AT-2,,SN-2",
	}, "\n")

	creator.On("Create", mock.MatchedBy(func(req models.AssetRequest) bool {
		return req.AssetTypeID == 1 && req.Name == "MacBook" &&
			req.StatusID != nil && *req.StatusID == 3 &&
			req.CustomFieldValues["serial_number"] == "SN-1"
	}), mock.Anything).Return(&models.Asset{ID: 1, Name: "MacBook"}, nil)
	creator.On("Create", mock.MatchedBy(func(req models.AssetRequest) bool {
		return req.Name == "ThinkPad" && req.StatusID == nil
	}), mock.Anything).Return(&models.Asset{ID: 2, Name: "ThinkPad"}, nil)

	result, err := importer.ImportCSV(strings.NewReader(csv), nil, nil)

	assert.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 0, result.Failed)
	assert.Empty(t, result.Errors)
	creator.AssertExpectations(t)
}

func TestImportCSVIsBestEffort(t *testing.T) {
	importer, creator := newTestImporter()

	csv := strings.Join([]string{
		"asset_type,name",
		"Laptop,MacBook",
		"Typewriter,Olivetti",
		"Laptop,",
		"Laptop,ThinkPad",
	}, "\n")

	creator.On("Create", mock.MatchedBy(func(req models.AssetRequest) bool {
		return req.Name == "MacBook"
	}), mock.Anything).Return(&models.Asset{ID: 1, Name: "MacBook"}, nil)
	creator.On("Create", mock.MatchedBy(func(req models.AssetRequest) bool {
		return req.Name == "ThinkPad"
	}), mock.Anything).Return(&models.Asset{ID: 2, Name: "ThinkPad"}, nil)

	result, err := importer.ImportCSV(strings.NewReader(csv), nil, nil)

	assert.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 2, result.Failed)
	assert.Len(t, result.Errors, 2)
	assert.Equal(t, 3, result.Errors[0].Line)
	assert.Contains(t, result.Errors[0].Message, "unknown asset type")
	assert.Equal(t, 4, result.Errors[1].Line)
}

func TestImportCSVRecordsServiceErrors(t *testing.T) {
	importer, creator := newTestImporter()

	csv := strings.Join([]string{
		"asset_type,name",
		"Laptop,MacBook",
	}, "\n")

	creator.On("Create", mock.Anything, mock.Anything).
		Return(nil, custom_error.NewConflictError("asset tag already registered for this tenant"))

	result, err := importer.ImportCSV(strings.NewReader(csv), nil, nil)

	assert.NoError(t, err)
	assert.Equal(t, 0, result.Imported)
	assert.Equal(t, 1, result.Failed)
	assert.Contains(t, result.Errors[0].Message, "already registered")
}

func TestImportCSVRejectsUnreadableHeader(t *testing.T) {
	importer, _ := newTestImporter()

	_, err := importer.ImportCSV(strings.NewReader(""), nil, nil)

	var validationErr *custom_error.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}
