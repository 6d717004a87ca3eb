package models

import "time"

// Relationship is a directed typed edge between two assets. The
// (source, target, type) triple is unique; the opposite direction is a
// distinct edge.
type Relationship struct {
	ID            int       `json:"id" db:"id"`
	SourceAssetID int       `json:"source_asset_id" db:"source_asset_id"`
	TargetAssetID int       `json:"target_asset_id" db:"target_asset_id"`
	Type          string    `json:"type" db:"relationship_type"`
	Note          *string   `json:"note" db:"note"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

func (r *Relationship) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   r.SourceAssetID,
		ResourceType: "asset",
	}
}

// RelationshipView is an edge seen from one asset's perspective. Reverse
// edges carry the type's inverse display label.
type RelationshipView struct {
	ID           int     `json:"id"`
	OtherAssetID int     `json:"other_asset_id"`
	OtherName    string  `json:"other_asset_name"`
	Type         string  `json:"type"`
	Label        string  `json:"label"`
	Reverse      bool    `json:"reverse"`
	Note         *string `json:"note"`
}

// FlatRelationshipRecord joins an edge with the counterpart asset's name.
type FlatRelationshipRecord struct {
	ID            int     `db:"id"`
	SourceAssetID int     `db:"source_asset_id"`
	TargetAssetID int     `db:"target_asset_id"`
	Type          string  `db:"relationship_type"`
	Note          *string `db:"note"`
	OtherName     string  `db:"other_name"`
}

type RelationshipRequest struct {
	SourceAssetID int     `json:"source_asset_id" binding:"required"`
	TargetAssetID int     `json:"target_asset_id" binding:"required"`
	Type          string  `json:"type" binding:"required"`
	Note          *string `json:"note"`
}
