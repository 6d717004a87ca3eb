package models

// TaxonomyEntry is one row of a reference list (status, location, assignment,
// manufacturer, customer). Assets point at entries by id only; the entry is
// never embedded in the asset row.
type TaxonomyEntry struct {
	ID        int    `json:"id" db:"id"`
	TenantID  *int   `json:"tenant_id,omitempty" db:"tenant_id"`
	Name      string `json:"name" db:"name"`
	SortOrder int    `json:"sort_order" db:"sort_order"`
}

type TaxonomyRequest struct {
	TenantID *int   `json:"tenant_id"`
	Name     string `json:"name" binding:"required"`
}

// TaxonomyRef is the id/name pair used when rendering an asset's pointers.
type TaxonomyRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
