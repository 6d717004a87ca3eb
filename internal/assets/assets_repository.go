package assets

import (
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"

	"github.com/voycel/Asset-Tracker-sub000/internal/attributes"
	"github.com/voycel/Asset-Tracker-sub000/internal/repository"
	custom_error "github.com/voycel/Asset-Tracker-sub000/pkg/errors"
	"github.com/voycel/Asset-Tracker-sub000/pkg/models"
)

type AssetsRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *AssetsRepository {
	return &AssetsRepository{repository: r}
}

func (r *AssetsRepository) GetAsset(id int) (*models.Asset, error) {
	query := r.getAssetQuery().Where(goqu.Ex{"i.id": id})

	var flat models.FlatAssetRecord
	found, err := query.Executor().ScanStruct(&flat)
	if err != nil {
		return nil, fmt.Errorf("unable to select asset from database: %w", err)
	}
	if !found {
		return nil, custom_error.NewNotFoundError("asset", id)
	}

	asset := flat.TransformToAsset()
	return &asset, nil
}

// GetAssetTypeID is the cheap existence-plus-type lookup used by the value
// store before touching attribute rows.
func (r *AssetsRepository) GetAssetTypeID(assetID int) (int, error) {
	var assetTypeID int
	query := r.repository.GoquDBWrapper.
		Select("asset_type_id").
		From("assets").
		Where(goqu.Ex{"id": assetID})

	found, err := query.Executor().ScanVal(&assetTypeID)
	if err != nil {
		return 0, fmt.Errorf("unable to select asset from database: %w", err)
	}
	if !found {
		return 0, custom_error.NewNotFoundError("asset", assetID)
	}

	return assetTypeID, nil
}

// GetAssetsBy runs the filter engine: all criteria are conjunctive, results
// come back most-recently-updated first with a stable id tie-break.
func (r *AssetsRepository) GetAssetsBy(filter AssetFilter) ([]models.Asset, error) {
	query := r.getAssetQuery()

	for _, condition := range filter.conditions() {
		query = query.Where(condition)
	}

	query = query.Order(goqu.I("i.updated_at").Desc(), goqu.I("i.id").Asc())

	var flatAssets []models.FlatAssetRecord
	if err := query.Executor().ScanStructs(&flatAssets); err != nil {
		return nil, fmt.Errorf("unable to select assets from database: %w", err)
	}

	assets := []models.Asset{}
	for _, flat := range flatAssets {
		assets = append(assets, flat.TransformToAsset())
	}

	return assets, nil
}

func (r *AssetsRepository) PersistAsset(tx *goqu.TxDatabase, record goqu.Record) (int, error) {
	if tx == nil {
		return 0, fmt.Errorf("transaction is required for PersistAsset")
	}

	var assetID int
	query := tx.Insert("assets").Rows(record).Returning("id")

	if _, err := query.Executor().ScanVal(&assetID); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return 0, custom_error.WrapDBError("asset tag already registered for this tenant", string(pqErr.Code))
		}
		return 0, fmt.Errorf("failed to insert asset record: %w", err)
	}

	return assetID, nil
}

func (r *AssetsRepository) UpdateAsset(tx *goqu.TxDatabase, assetID int, record goqu.Record) error {
	if tx == nil {
		return fmt.Errorf("transaction is required for UpdateAsset")
	}

	record["updated_at"] = goqu.L("now()")

	result, err := tx.Update("assets").
		Set(record).
		Where(goqu.Ex{"id": assetID}).
		Executor().
		Exec()
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return custom_error.WrapDBError("asset tag already registered for this tenant", string(pqErr.Code))
		}
		return fmt.Errorf("failed to update asset: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return custom_error.NewNotFoundError("asset", assetID)
	}

	return nil
}

// UpdatePointer sets one current-state column. A nil value clears the
// pointer back to the unassigned state.
func (r *AssetsRepository) UpdatePointer(tx *goqu.TxDatabase, assetID int, column string, value *int) error {
	return r.UpdateAsset(tx, assetID, goqu.Record{column: value})
}

func (r *AssetsRepository) SetArchived(tx *goqu.TxDatabase, assetID int, archived bool) error {
	return r.UpdateAsset(tx, assetID, goqu.Record{"archived": archived})
}

// DeleteAsset hard-deletes the row; attribute values and relationships go
// with it by cascade, audit rows stay.
func (r *AssetsRepository) DeleteAsset(tx *goqu.TxDatabase, assetID int) error {
	if tx == nil {
		return fmt.Errorf("transaction is required for DeleteAsset")
	}

	result, err := tx.Delete("assets").
		Where(goqu.Ex{"id": assetID}).
		Executor().
		Exec()
	if err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return custom_error.NewNotFoundError("asset", assetID)
	}

	return nil
}

func (r *AssetsRepository) getAssetQuery() *goqu.SelectDataset {
	return r.repository.GoquDBWrapper.Select(
		goqu.I("i.id").As("asset_id"),
		goqu.I("i.tenant_id").As("tenant_id"),
		goqu.I("i.asset_tag").As("asset_tag"),
		goqu.I("i.name").As("name"),
		goqu.I("i.date_acquired").As("date_acquired"),
		goqu.I("i.cost").As("cost"),
		goqu.I("i.notes").As("notes"),
		goqu.I("i.archived").As("archived"),
		goqu.I("i.created_at").As("created_at"),
		goqu.I("i.updated_at").As("updated_at"),
		goqu.I("i.asset_type_id").As("asset_type_id"),
		goqu.I("t.name").As("asset_type_name"),
		goqu.I("i.manufacturer_id").As("manufacturer_id"),
		goqu.I("m.name").As("manufacturer_name"),
		goqu.I("i.status_id").As("status_id"),
		goqu.I("s.name").As("status_name"),
		goqu.I("i.location_id").As("location_id"),
		goqu.I("l.name").As("location_name"),
		goqu.I("i.assignment_id").As("assignment_id"),
		goqu.I("a.name").As("assignment_name"),
		goqu.I("i.customer_id").As("customer_id"),
		goqu.I("c.name").As("customer_name"),
	).
		From(goqu.T("assets").As("i")).
		LeftJoin(
			goqu.T("asset_types").As("t"),
			goqu.On(goqu.Ex{"i.asset_type_id": goqu.I("t.id")}),
		).
		LeftJoin(
			goqu.T("manufacturers").As("m"),
			goqu.On(goqu.Ex{"i.manufacturer_id": goqu.I("m.id")}),
		).
		LeftJoin(
			goqu.T("statuses").As("s"),
			goqu.On(goqu.Ex{"i.status_id": goqu.I("s.id")}),
		).
		LeftJoin(
			goqu.T("locations").As("l"),
			goqu.On(goqu.Ex{"i.location_id": goqu.I("l.id")}),
		).
		LeftJoin(
			goqu.T("assignments").As("a"),
			goqu.On(goqu.Ex{"i.assignment_id": goqu.I("a.id")}),
		).
		LeftJoin(
			goqu.T("customers").As("c"),
			goqu.On(goqu.Ex{"i.customer_id": goqu.I("c.id")}),
		)
}

// AssetFilter collects the conjunctive criteria of the list query.
type AssetFilter struct {
	TenantID        *int
	AssetTypeID     *int
	StatusID        *int
	LocationID      *int
	AssignmentID    *int
	CustomerID      *int
	ManufacturerID  *int
	Search          string
	IncludeArchived bool
	FieldFilters    []FieldFilter
}

// FieldFilter matches assets whose stored value for one custom field equals
// the coerced value.
type FieldFilter struct {
	FieldID int
	Value   attributes.TypedValue
}

func (f AssetFilter) conditions() []goqu.Expression {
	builder := repository.NewQueryBuilder()

	if f.TenantID != nil {
		builder.AddCondition("tenant_id", *f.TenantID)
	}
	if f.AssetTypeID != nil {
		builder.AddCondition("asset_type_id", *f.AssetTypeID)
	}
	if f.StatusID != nil {
		builder.AddCondition("status_id", *f.StatusID)
	}
	if f.LocationID != nil {
		builder.AddCondition("location_id", *f.LocationID)
	}
	if f.AssignmentID != nil {
		builder.AddCondition("assignment_id", *f.AssignmentID)
	}
	if f.CustomerID != nil {
		builder.AddCondition("customer_id", *f.CustomerID)
	}
	if f.ManufacturerID != nil {
		builder.AddCondition("manufacturer_id", *f.ManufacturerID)
	}
	if f.Search != "" {
		builder.AddSearch(f.Search, "name", "asset_tag", "notes")
	}

	aliases := map[string]string{
		"tenant_id":       "i.tenant_id",
		"asset_type_id":   "i.asset_type_id",
		"status_id":       "i.status_id",
		"location_id":     "i.location_id",
		"assignment_id":   "i.assignment_id",
		"customer_id":     "i.customer_id",
		"manufacturer_id": "i.manufacturer_id",
		"name":            "i.name",
		"asset_tag":       "i.asset_tag",
		"notes":           "i.notes",
	}

	expressions := builder.BuildConditions(aliases)

	if !f.IncludeArchived {
		expressions = append(expressions, goqu.Ex{"i.archived": false})
	}

	for _, fieldFilter := range f.FieldFilters {
		expressions = append(expressions, fieldFilter.condition())
	}

	return expressions
}

func (ff FieldFilter) condition() goqu.Expression {
	match := goqu.Ex{
		"v.asset_id": goqu.I("i.id"),
		"v.field_id": ff.FieldID,
	}
	switch {
	case ff.Value.Text != nil:
		match["v.text_value"] = *ff.Value.Text
	case ff.Value.Number != nil:
		match["v.number_value"] = *ff.Value.Number
	case ff.Value.Date != nil:
		match["v.date_value"] = *ff.Value.Date
	case ff.Value.Boolean != nil:
		match["v.boolean_value"] = *ff.Value.Boolean
	}

	subquery := goqu.From(goqu.T("asset_field_values").As("v")).
		Select(goqu.L("1")).
		Where(match)

	return goqu.L("EXISTS (?)", subquery)
}
