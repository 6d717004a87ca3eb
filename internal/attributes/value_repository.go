package attributes

import (
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"github.com/voycel/Asset-Tracker-sub000/internal/repository"
	"github.com/voycel/Asset-Tracker-sub000/pkg/models"
)

type ValueRepository struct {
	repository *repository.Repository
}

func NewValueRepository(r *repository.Repository) *ValueRepository {
	return &ValueRepository{repository: r}
}

// UpsertValue writes the one typed slot matching the value's kind and clears
// the rest, creating the (asset, field) row on first write. A non-nil tx
// joins the caller's transaction.
func (r *ValueRepository) UpsertValue(tx *goqu.TxDatabase, assetID, fieldID int, value TypedValue) error {
	record := goqu.Record{
		"asset_id":      assetID,
		"field_id":      fieldID,
		"text_value":    value.Text,
		"number_value":  value.Number,
		"date_value":    value.Date,
		"boolean_value": value.Boolean,
		"updated_at":    goqu.L("now()"),
	}

	query := r.dataset(tx).Insert("asset_field_values").
		Rows(record).
		OnConflict(goqu.DoUpdate("asset_id, field_id", goqu.Record{
			"text_value":    value.Text,
			"number_value":  value.Number,
			"date_value":    value.Date,
			"boolean_value": value.Boolean,
			"updated_at":    goqu.L("now()"),
		}))

	if _, err := query.Executor().Exec(); err != nil {
		return fmt.Errorf("failed to upsert field value: %w", err)
	}

	return nil
}

// GetValuesForAsset returns every stored value joined with its definition,
// in field creation order.
func (r *ValueRepository) GetValuesForAsset(assetID int) ([]models.FlatValueRecord, error) {
	query := r.repository.GoquDBWrapper.
		Select(
			goqu.I("v.id").As("id"),
			goqu.I("v.asset_id").As("asset_id"),
			goqu.I("v.field_id").As("field_id"),
			goqu.I("f.name").As("field_name"),
			goqu.I("f.kind").As("kind"),
			goqu.I("f.show_on_card").As("show_on_card"),
			goqu.I("v.text_value").As("text_value"),
			goqu.I("v.number_value").As("number_value"),
			goqu.I("v.date_value").As("date_value"),
			goqu.I("v.boolean_value").As("boolean_value"),
		).
		From(goqu.T("asset_field_values").As("v")).
		Join(
			goqu.T("custom_fields").As("f"),
			goqu.On(goqu.Ex{"v.field_id": goqu.I("f.id")}),
		).
		Where(goqu.Ex{"v.asset_id": assetID}).
		Order(goqu.I("f.id").Asc())

	var records []models.FlatValueRecord
	if err := query.Executor().ScanStructs(&records); err != nil {
		return nil, fmt.Errorf("unable to select field values from database: %w", err)
	}

	return records, nil
}

// GetValuesForAssets is the bulk form used by the exporter.
func (r *ValueRepository) GetValuesForAssets(assetIDs []int) (map[int][]models.FlatValueRecord, error) {
	grouped := make(map[int][]models.FlatValueRecord)
	if len(assetIDs) == 0 {
		return grouped, nil
	}

	query := r.repository.GoquDBWrapper.
		Select(
			goqu.I("v.id").As("id"),
			goqu.I("v.asset_id").As("asset_id"),
			goqu.I("v.field_id").As("field_id"),
			goqu.I("f.name").As("field_name"),
			goqu.I("f.kind").As("kind"),
			goqu.I("f.show_on_card").As("show_on_card"),
			goqu.I("v.text_value").As("text_value"),
			goqu.I("v.number_value").As("number_value"),
			goqu.I("v.date_value").As("date_value"),
			goqu.I("v.boolean_value").As("boolean_value"),
		).
		From(goqu.T("asset_field_values").As("v")).
		Join(
			goqu.T("custom_fields").As("f"),
			goqu.On(goqu.Ex{"v.field_id": goqu.I("f.id")}),
		).
		Where(goqu.Ex{"v.asset_id": assetIDs}).
		Order(goqu.I("v.asset_id").Asc(), goqu.I("f.id").Asc())

	var records []models.FlatValueRecord
	if err := query.Executor().ScanStructs(&records); err != nil {
		return nil, fmt.Errorf("unable to select field values from database: %w", err)
	}

	for _, record := range records {
		grouped[record.AssetID] = append(grouped[record.AssetID], record)
	}

	return grouped, nil
}

func (r *ValueRepository) dataset(tx *goqu.TxDatabase) database {
	if tx != nil {
		return tx
	}
	return r.repository.GoquDBWrapper
}

// database is the subset of goqu.Database and goqu.TxDatabase the repository
// needs, so writes can run inside or outside a transaction.
type database interface {
	Insert(table interface{}) *goqu.InsertDataset
}
