package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/voycel/Asset-Tracker-sub000/internal/taxonomy"
	custom_error "github.com/voycel/Asset-Tracker-sub000/pkg/errors"
	"github.com/voycel/Asset-Tracker-sub000/pkg/auditlog"
	"github.com/voycel/Asset-Tracker-sub000/pkg/metadata"
	"github.com/voycel/Asset-Tracker-sub000/pkg/models"
)

type AssetCreator interface {
	Create(req models.AssetRequest, userID *int) (*models.Asset, error)
}

type AssetTypeLister interface {
	GetAssetTypes(tenantID *int) ([]models.AssetType, error)
}

type TaxonomyLister interface {
	GetEntries(kind taxonomy.Kind, tenantID *int) ([]models.TaxonomyEntry, error)
}

type AuditRecorder interface {
	Log(action metadata.Action, userID *int, data map[string]interface{}, item auditlog.Auditable)
}

type ImportService struct {
	creator    AssetCreator
	assetTypes AssetTypeLister
	taxonomies TaxonomyLister
	auditLog   AuditRecorder
}

func NewImportService(creator AssetCreator, assetTypes AssetTypeLister, taxonomies TaxonomyLister, auditLog AuditRecorder) *ImportService {
	return &ImportService{creator: creator, assetTypes: assetTypes, taxonomies: taxonomies, auditLog: auditLog}
}

// RowError records why one CSV line was rejected. Line numbers count from 1
// including the header, matching what a user sees in a spreadsheet.
type RowError struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

type ImportResult struct {
	Imported int        `json:"imported"`
	Failed   int        `json:"failed"`
	Errors   []RowError `json:"errors"`
}

// ImportCSV creates one asset per data row. Import is best-effort: a bad row
// is recorded and skipped, the rest still land. Lookup columns (asset_type
// and the taxonomy pointers) match by name, case-insensitively; any column
// outside the fixed set is treated as a custom field value.
func (s *ImportService) ImportCSV(reader io.Reader, tenantID *int, userID *int) (*ImportResult, error) {
	csvReader := csv.NewReader(reader)
	csvReader.TrimLeadingSpace = true

	header, err := csvReader.Read()
	if err != nil {
		return nil, custom_error.NewValidationError("file", "unable to read CSV header", err.Error())
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	lookups, err := s.buildLookups(tenantID)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{Errors: []RowError{}}
	line := 1
	for {
		line++
		record, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, RowError{Line: line, Message: err.Error()})
			continue
		}

		req, err := s.rowToRequest(header, record, tenantID, lookups)
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, RowError{Line: line, Message: err.Error()})
			continue
		}

		asset, err := s.creator.Create(*req, userID)
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, RowError{Line: line, Message: err.Error()})
			continue
		}
		s.auditLog.Log(metadata.ActionImport, userID, map[string]interface{}{
			"line": line,
			"name": asset.Name,
			"msg":  "Asset imported from CSV",
		}, asset)
		result.Imported++
	}

	return result, nil
}

type importLookups struct {
	assetTypes map[string]int
	taxonomies map[taxonomy.Kind]map[string]int
}

func (s *ImportService) buildLookups(tenantID *int) (*importLookups, error) {
	lookups := &importLookups{
		assetTypes: map[string]int{},
		taxonomies: map[taxonomy.Kind]map[string]int{},
	}

	types, err := s.assetTypes.GetAssetTypes(tenantID)
	if err != nil {
		return nil, err
	}
	for _, assetType := range types {
		lookups.assetTypes[strings.ToLower(assetType.Name)] = assetType.ID
	}

	for _, kind := range taxonomy.Kinds() {
		entries, err := s.taxonomies.GetEntries(kind, tenantID)
		if err != nil {
			return nil, err
		}
		byName := map[string]int{}
		for _, entry := range entries {
			byName[strings.ToLower(entry.Name)] = entry.ID
		}
		lookups.taxonomies[kind] = byName
	}

	return lookups, nil
}

var pointerColumns = map[string]taxonomy.Kind{
	"manufacturer": taxonomy.KindManufacturer,
	"status":       taxonomy.KindStatus,
	"location":     taxonomy.KindLocation,
	"assignment":   taxonomy.KindAssignment,
	"customer":     taxonomy.KindCustomer,
}

func (s *ImportService) rowToRequest(header, record []string, tenantID *int, lookups *importLookups) (*models.AssetRequest, error) {
	if len(record) != len(header) {
		return nil, fmt.Errorf("expected %d columns, got %d", len(header), len(record))
	}

	req := &models.AssetRequest{
		TenantID:          tenantID,
		CustomFieldValues: map[string]interface{}{},
	}

	for i, column := range header {
		cell := strings.TrimSpace(record[i])

		if kind, isPointer := pointerColumns[column]; isPointer {
			if cell == "" {
				continue
			}
			id, ok := lookups.taxonomies[kind][strings.ToLower(cell)]
			if !ok {
				return nil, fmt.Errorf("unknown %s: %q", kind.Singular(), cell)
			}
			*pointerTarget(req, kind) = &id
			continue
		}

		switch column {
		case "asset_type":
			id, ok := lookups.assetTypes[strings.ToLower(cell)]
			if !ok {
				return nil, fmt.Errorf("unknown asset type: %q", cell)
			}
			req.AssetTypeID = id
		case "name":
			req.Name = cell
		case "asset_tag":
			if cell != "" {
				tag := cell
				req.AssetTag = &tag
			}
		case "date_acquired":
			if cell != "" {
				date := cell
				req.DateAcquired = &date
			}
		case "cost":
			if cell != "" {
				cost, err := strconv.ParseFloat(cell, 64)
				if err != nil {
					return nil, fmt.Errorf("invalid cost: %q", cell)
				}
				req.Cost = &cost
			}
		case "notes":
			if cell != "" {
				notes := cell
				req.Notes = &notes
			}
		case "id", "archived", "created_at", "updated_at":
			// Export round-trips carry these; imports ignore them.
		default:
			if cell != "" {
				req.CustomFieldValues[column] = cell
			}
		}
	}

	if req.AssetTypeID == 0 {
		return nil, fmt.Errorf("asset_type column is required")
	}
	if req.Name == "" {
		return nil, fmt.Errorf("name column is required")
	}

	return req, nil
}

func pointerTarget(req *models.AssetRequest, kind taxonomy.Kind) **int {
	switch kind {
	case taxonomy.KindManufacturer:
		return &req.ManufacturerID
	case taxonomy.KindStatus:
		return &req.StatusID
	case taxonomy.KindLocation:
		return &req.LocationID
	case taxonomy.KindAssignment:
		return &req.AssignmentID
	default:
		return &req.CustomerID
	}
}
