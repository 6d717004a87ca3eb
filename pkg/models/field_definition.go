package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// FieldDefinition is the schema of one custom field attached to an asset type.
// Kind never changes once any value row references the field.
type FieldDefinition struct {
	ID          int       `json:"id"`
	AssetTypeID int       `json:"asset_type_id"`
	Name        string    `json:"name"`
	Kind        string    `json:"kind"`
	Required    bool      `json:"required"`
	Filterable  bool      `json:"filterable"`
	ShowOnCard  bool      `json:"show_on_card"`
	Options     []string  `json:"options,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// FlatFieldRecord is the raw database row; Options arrive as JSONB bytes.
type FlatFieldRecord struct {
	ID          int       `db:"id"`
	AssetTypeID int       `db:"asset_type_id"`
	Name        string    `db:"name"`
	Kind        string    `db:"kind"`
	Required    bool      `db:"required"`
	Filterable  bool      `db:"filterable"`
	ShowOnCard  bool      `db:"show_on_card"`
	OptionsRaw  []byte    `db:"options"`
	CreatedAt   time.Time `db:"created_at"`
}

func (ff *FlatFieldRecord) TransformToFieldDefinition() (FieldDefinition, error) {
	var options []string
	if len(ff.OptionsRaw) > 0 {
		if err := json.Unmarshal(ff.OptionsRaw, &options); err != nil {
			return FieldDefinition{}, fmt.Errorf("failed to unmarshal field options: %w", err)
		}
	}

	return FieldDefinition{
		ID:          ff.ID,
		AssetTypeID: ff.AssetTypeID,
		Name:        ff.Name,
		Kind:        ff.Kind,
		Required:    ff.Required,
		Filterable:  ff.Filterable,
		ShowOnCard:  ff.ShowOnCard,
		Options:     options,
		CreatedAt:   ff.CreatedAt,
	}, nil
}

// HasOption reports whether value is one of the defined choice options.
// The comparison is exact; choice values round-trip unchanged.
func (f *FieldDefinition) HasOption(value string) bool {
	for _, opt := range f.Options {
		if opt == value {
			return true
		}
	}
	return false
}

type FieldRequest struct {
	Name       string   `json:"name" binding:"required"`
	Kind       string   `json:"kind" binding:"required"`
	Required   bool     `json:"required"`
	Filterable bool     `json:"filterable"`
	ShowOnCard bool     `json:"show_on_card"`
	Options    []string `json:"options"`
}

// FieldUpdateRequest carries only the mutable parts of a definition. Kind is
// present so the service can reject a change attempt explicitly instead of
// ignoring it.
type FieldUpdateRequest struct {
	Name       *string  `json:"name"`
	Kind       *string  `json:"kind"`
	Required   *bool    `json:"required"`
	Filterable *bool    `json:"filterable"`
	ShowOnCard *bool    `json:"show_on_card"`
	Options    []string `json:"options"`
}
