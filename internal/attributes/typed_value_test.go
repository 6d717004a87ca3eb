package attributes

import (
	"errors"
	"testing"

	custom_error "github.com/voycel/Asset-Tracker-sub000/pkg/errors"
	"github.com/voycel/Asset-Tracker-sub000/pkg/models"
)

func textField(name string) *models.FieldDefinition {
	return &models.FieldDefinition{ID: 1, Name: name, Kind: "text"}
}

func TestCoerceText(t *testing.T) {
	field := textField("serial_number")

	value, err := Coerce(field, "SN-001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if value.Text == nil || *value.Text != "SN-001" {
		t.Errorf("expected text slot SN-001, got %+v", value)
	}
	if value.Number != nil || value.Date != nil || value.Boolean != nil {
		t.Errorf("expected only the text slot populated, got %+v", value)
	}

	if _, err := Coerce(field, 42); err == nil {
		t.Error("expected error coercing number into text field")
	}
}

func TestCoerceNumber(t *testing.T) {
	field := &models.FieldDefinition{ID: 2, Name: "ram_gb", Kind: "number"}

	tests := []struct {
		name    string
		raw     interface{}
		want    float64
		wantErr bool
	}{
		{"float64", 16.0, 16, false},
		{"int", 32, 32, false},
		{"numeric string", "64", 64, false},
		{"numeric string with spaces", " 8.5 ", 8.5, false},
		{"non-numeric string", "plenty", 0, true},
		{"boolean", true, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, err := Coerce(field, tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Coerce(%v) expected error, got %+v", tt.raw, value)
				}
				return
			}
			if err != nil {
				t.Fatalf("Coerce(%v) unexpected error: %v", tt.raw, err)
			}
			if value.Number == nil || *value.Number != tt.want {
				t.Errorf("Coerce(%v) = %+v, want number %v", tt.raw, value, tt.want)
			}
		})
	}
}

func TestCoerceDate(t *testing.T) {
	field := &models.FieldDefinition{ID: 3, Name: "warranty_until", Kind: "date"}

	value, err := Coerce(field, "2026-03-15")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if value.Date == nil || value.Interface() != "2026-03-15" {
		t.Errorf("expected date 2026-03-15 to round-trip, got %v", value.Interface())
	}

	if _, err := Coerce(field, "2026-03-15T10:30:00Z"); err != nil {
		t.Errorf("RFC3339 timestamps should be accepted: %v", err)
	}

	if _, err := Coerce(field, "15.03.2026"); err == nil {
		t.Error("expected error for unsupported date format")
	}
}

func TestCoerceBoolean(t *testing.T) {
	field := &models.FieldDefinition{ID: 4, Name: "decommissioned", Kind: "boolean"}

	truthy := []interface{}{true, "yes", "1", "on", "TRUE", 1}
	for _, raw := range truthy {
		value, err := Coerce(field, raw)
		if err != nil {
			t.Fatalf("Coerce(%v) unexpected error: %v", raw, err)
		}
		if value.Boolean == nil || !*value.Boolean {
			t.Errorf("Coerce(%v) expected true", raw)
		}
	}

	falsy := []interface{}{false, "no", "0", "off", ""}
	for _, raw := range falsy {
		value, err := Coerce(field, raw)
		if err != nil {
			t.Fatalf("Coerce(%v) unexpected error: %v", raw, err)
		}
		if value.Boolean == nil || *value.Boolean {
			t.Errorf("Coerce(%v) expected false", raw)
		}
	}

	if _, err := Coerce(field, "maybe"); err == nil {
		t.Error("expected error for ambiguous boolean string")
	}
}

func TestCoerceChoice(t *testing.T) {
	field := &models.FieldDefinition{
		ID:      5,
		Name:    "condition",
		Kind:    "choice",
		Options: []string{"new", "used", "refurbished"},
	}

	value, err := Coerce(field, "used")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if value.Text == nil || *value.Text != "used" {
		t.Errorf("expected choice stored in text slot, got %+v", value)
	}

	_, err = Coerce(field, "broken")
	if err == nil {
		t.Fatal("expected error for value outside the options list")
	}
	var validationErr *custom_error.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if validationErr.Field != "condition" {
		t.Errorf("error should name the field, got %q", validationErr.Field)
	}
}

func TestCoerceUnknownKind(t *testing.T) {
	field := &models.FieldDefinition{ID: 6, Name: "broken", Kind: "geometry"}
	if _, err := Coerce(field, "anything"); err == nil {
		t.Error("expected error for unknown field kind")
	}
}
