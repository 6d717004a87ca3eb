package export

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/voycel/Asset-Tracker-sub000/internal/assets"
	"github.com/voycel/Asset-Tracker-sub000/internal/attributes"
	"github.com/voycel/Asset-Tracker-sub000/pkg/models"
)

const dateLayout = "2006-01-02"

type AssetLister interface {
	GetAssetsBy(filter assets.AssetFilter) ([]models.Asset, error)
}

type ValueReader interface {
	GetValuesForAssets(assetIDs []int) (map[int][]models.FlatValueRecord, error)
}

type ExportService struct {
	assets AssetLister
	values ValueReader
}

func NewExportService(assets AssetLister, values ValueReader) *ExportService {
	return &ExportService{assets: assets, values: values}
}

var fixedColumns = []string{
	"id", "asset_tag", "name", "asset_type",
	"status", "location", "assignment", "manufacturer", "customer",
	"date_acquired", "cost", "notes", "archived",
	"created_at", "updated_at",
}

// Table is the flattened export: one header row, then one row per asset.
// Custom-field columns follow the fixed columns, ordered by field name so
// output stays stable across runs.
type Table struct {
	Header []string
	Rows   [][]string
}

// BuildTable renders the filtered asset set with each asset's custom values
// spread into per-field columns. Assets missing a field leave the cell empty.
func (s *ExportService) BuildTable(filter assets.AssetFilter) (*Table, error) {
	assetList, err := s.assets.GetAssetsBy(filter)
	if err != nil {
		return nil, err
	}

	assetIDs := make([]int, 0, len(assetList))
	for _, asset := range assetList {
		assetIDs = append(assetIDs, asset.ID)
	}

	valuesByAsset, err := s.values.GetValuesForAssets(assetIDs)
	if err != nil {
		return nil, err
	}

	fieldColumns := collectFieldColumns(valuesByAsset)

	header := append(append([]string{}, fixedColumns...), fieldColumns...)
	rows := make([][]string, 0, len(assetList))
	for _, asset := range assetList {
		rows = append(rows, buildRow(asset, valuesByAsset[asset.ID], fieldColumns))
	}

	return &Table{Header: header, Rows: rows}, nil
}

// JSONDocuments renders the same set as JSON-friendly maps, custom values
// keyed by field name under "custom_field_values".
func (s *ExportService) JSONDocuments(filter assets.AssetFilter) ([]map[string]interface{}, error) {
	assetList, err := s.assets.GetAssetsBy(filter)
	if err != nil {
		return nil, err
	}

	assetIDs := make([]int, 0, len(assetList))
	for _, asset := range assetList {
		assetIDs = append(assetIDs, asset.ID)
	}

	valuesByAsset, err := s.values.GetValuesForAssets(assetIDs)
	if err != nil {
		return nil, err
	}

	documents := make([]map[string]interface{}, 0, len(assetList))
	for _, asset := range assetList {
		customValues := map[string]interface{}{}
		for _, record := range valuesByAsset[asset.ID] {
			view := attributes.ViewFromRecord(record)
			customValues[view.FieldName] = view.Value
		}

		documents = append(documents, map[string]interface{}{
			"id":                  asset.ID,
			"asset_tag":           asset.AssetTag,
			"name":                asset.Name,
			"asset_type":          asset.AssetType,
			"manufacturer":        asset.Manufacturer,
			"status":              asset.Status,
			"location":            asset.Location,
			"assignment":          asset.Assignment,
			"customer":            asset.Customer,
			"date_acquired":       asset.DateAcquired,
			"cost":                asset.Cost,
			"notes":               asset.Notes,
			"archived":            asset.Archived,
			"created_at":          asset.CreatedAt,
			"updated_at":          asset.UpdatedAt,
			"custom_field_values": customValues,
		})
	}

	return documents, nil
}

func collectFieldColumns(valuesByAsset map[int][]models.FlatValueRecord) []string {
	seen := map[string]bool{}
	for _, records := range valuesByAsset {
		for _, record := range records {
			seen[record.FieldName] = true
		}
	}

	columns := make([]string, 0, len(seen))
	for name := range seen {
		columns = append(columns, name)
	}
	sort.Strings(columns)
	return columns
}

func buildRow(asset models.Asset, records []models.FlatValueRecord, fieldColumns []string) []string {
	row := []string{
		strconv.Itoa(asset.ID),
		stringOrEmpty(asset.AssetTag),
		asset.Name,
		asset.AssetType.Name,
		refName(asset.Status),
		refName(asset.Location),
		refName(asset.Assignment),
		refName(asset.Manufacturer),
		refName(asset.Customer),
		dateOrEmpty(asset.DateAcquired),
		floatOrEmpty(asset.Cost),
		stringOrEmpty(asset.Notes),
		strconv.FormatBool(asset.Archived),
		asset.CreatedAt.Format(time.RFC3339),
		asset.UpdatedAt.Format(time.RFC3339),
	}

	cellByField := map[string]string{}
	for _, record := range records {
		cellByField[record.FieldName] = renderCell(record)
	}
	for _, column := range fieldColumns {
		row = append(row, cellByField[column])
	}

	return row
}

func renderCell(record models.FlatValueRecord) string {
	view := attributes.ViewFromRecord(record)
	if view.Value == nil {
		return ""
	}
	switch v := view.Value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func refName(ref *models.TaxonomyRef) string {
	if ref == nil {
		return ""
	}
	return ref.Name
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func floatOrEmpty(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

func dateOrEmpty(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}
