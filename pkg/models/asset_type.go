package models

import "time"

// AssetType is an administrator-defined category of trackable item.
// A nil TenantID marks a global type visible to every tenant.
type AssetType struct {
	ID          int       `json:"id" db:"id"`
	TenantID    *int      `json:"tenant_id,omitempty" db:"tenant_id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Icon        string    `json:"icon" db:"icon"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

type AssetTypeRequest struct {
	TenantID    *int   `json:"tenant_id"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}
