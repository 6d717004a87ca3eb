package models

import "time"

// AttributeValue is the stored value for one (asset, field) pair. Exactly one
// typed slot is populated, chosen by the field's kind at write time.
type AttributeValue struct {
	ID           int        `json:"id" db:"id"`
	AssetID      int        `json:"asset_id" db:"asset_id"`
	FieldID      int        `json:"field_id" db:"field_id"`
	TextValue    *string    `json:"text_value" db:"text_value"`
	NumberValue  *float64   `json:"number_value" db:"number_value"`
	DateValue    *time.Time `json:"date_value" db:"date_value"`
	BooleanValue *bool      `json:"boolean_value" db:"boolean_value"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}

// FieldValueView is the field-name-keyed rendering used by the detail view
// and the exporter.
type FieldValueView struct {
	FieldID    int         `json:"field_id"`
	FieldName  string      `json:"field_name"`
	Kind       string      `json:"kind"`
	ShowOnCard bool        `json:"show_on_card"`
	Value      interface{} `json:"value"`
}

// FlatValueRecord joins a value row with its definition.
type FlatValueRecord struct {
	ID           int        `db:"id"`
	AssetID      int        `db:"asset_id"`
	FieldID      int        `db:"field_id"`
	FieldName    string     `db:"field_name"`
	Kind         string     `db:"kind"`
	ShowOnCard   bool       `db:"show_on_card"`
	TextValue    *string    `db:"text_value"`
	NumberValue  *float64   `db:"number_value"`
	DateValue    *time.Time `db:"date_value"`
	BooleanValue *bool      `db:"boolean_value"`
}

type ValueRequest struct {
	Value interface{} `json:"value"`
}
