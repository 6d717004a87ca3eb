package models

import "time"

// Asset is one tracked physical item. The four current-state pointers
// (status/location/assignment/customer) are nullable: "unassigned" is the
// null state, never a sentinel row.
type Asset struct {
	ID           int          `json:"id"`
	TenantID     *int         `json:"tenant_id,omitempty"`
	AssetType    TaxonomyRef  `json:"asset_type"`
	AssetTag     *string      `json:"asset_tag"`
	Name         string       `json:"name"`
	Manufacturer *TaxonomyRef `json:"manufacturer"`
	DateAcquired *time.Time   `json:"date_acquired"`
	Cost         *float64     `json:"cost"`
	Notes        *string      `json:"notes"`
	Status       *TaxonomyRef `json:"status"`
	Location     *TaxonomyRef `json:"location"`
	Assignment   *TaxonomyRef `json:"assignment"`
	Customer     *TaxonomyRef `json:"customer"`
	Archived     bool         `json:"archived"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// FlatAssetRecord is the joined row shape produced by the asset select.
type FlatAssetRecord struct {
	ID               int        `db:"asset_id"`
	TenantID         *int       `db:"tenant_id"`
	AssetTag         *string    `db:"asset_tag"`
	Name             string     `db:"name"`
	DateAcquired     *time.Time `db:"date_acquired"`
	Cost             *float64   `db:"cost"`
	Notes            *string    `db:"notes"`
	Archived         bool       `db:"archived"`
	CreatedAt        time.Time  `db:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at"`
	AssetTypeID      int        `db:"asset_type_id"`
	AssetTypeName    *string    `db:"asset_type_name"`
	ManufacturerID   *int       `db:"manufacturer_id"`
	ManufacturerName *string    `db:"manufacturer_name"`
	StatusID         *int       `db:"status_id"`
	StatusName       *string    `db:"status_name"`
	LocationID       *int       `db:"location_id"`
	LocationName     *string    `db:"location_name"`
	AssignmentID     *int       `db:"assignment_id"`
	AssignmentName   *string    `db:"assignment_name"`
	CustomerID       *int       `db:"customer_id"`
	CustomerName     *string    `db:"customer_name"`
}

func (fa *FlatAssetRecord) TransformToAsset() Asset {
	asset := Asset{
		ID:           fa.ID,
		TenantID:     fa.TenantID,
		AssetTag:     fa.AssetTag,
		Name:         fa.Name,
		DateAcquired: fa.DateAcquired,
		Cost:         fa.Cost,
		Notes:        fa.Notes,
		Archived:     fa.Archived,
		CreatedAt:    fa.CreatedAt,
		UpdatedAt:    fa.UpdatedAt,
		AssetType:    TaxonomyRef{ID: fa.AssetTypeID},
	}

	if fa.AssetTypeName != nil {
		asset.AssetType.Name = *fa.AssetTypeName
	}
	asset.Manufacturer = makeRef(fa.ManufacturerID, fa.ManufacturerName)
	asset.Status = makeRef(fa.StatusID, fa.StatusName)
	asset.Location = makeRef(fa.LocationID, fa.LocationName)
	asset.Assignment = makeRef(fa.AssignmentID, fa.AssignmentName)
	asset.Customer = makeRef(fa.CustomerID, fa.CustomerName)

	return asset
}

func makeRef(id *int, name *string) *TaxonomyRef {
	if id == nil {
		return nil
	}
	ref := &TaxonomyRef{ID: *id}
	if name != nil {
		ref.Name = *name
	}
	return ref
}

func (a *Asset) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   a.ID,
		ResourceType: "asset",
	}
}

// AssetRequest is the create payload. CustomFieldValues are raw and get
// coerced against each field's declared kind before anything is persisted.
type AssetRequest struct {
	TenantID          *int                   `json:"tenant_id"`
	AssetTypeID       int                    `json:"asset_type_id" binding:"required"`
	AssetTag          *string                `json:"asset_tag"`
	Name              string                 `json:"name" binding:"required"`
	ManufacturerID    *int                   `json:"manufacturer_id"`
	DateAcquired      *string                `json:"date_acquired"`
	Cost              *float64               `json:"cost"`
	Notes             *string                `json:"notes"`
	StatusID          *int                   `json:"status_id"`
	LocationID        *int                   `json:"location_id"`
	AssignmentID      *int                   `json:"assignment_id"`
	CustomerID        *int                   `json:"customer_id"`
	CustomFieldValues map[string]interface{} `json:"custom_field_values"`
}

// AssetUpdateRequest covers the mutable fixed fields. Current-state pointers
// go through their dedicated transition endpoints instead.
type AssetUpdateRequest struct {
	AssetTag       *string  `json:"asset_tag"`
	Name           *string  `json:"name"`
	ManufacturerID *int     `json:"manufacturer_id"`
	DateAcquired   *string  `json:"date_acquired"`
	Cost           *float64 `json:"cost"`
	Notes          *string  `json:"notes"`
}

// AssetDetail is the full fetch shape: the asset, its custom field values
// keyed by field name, and its audit history.
type AssetDetail struct {
	Asset           Asset            `json:"asset"`
	AttributeValues []FieldValueView `json:"attribute_values"`
	Logs            []AuditLog       `json:"logs"`
}
