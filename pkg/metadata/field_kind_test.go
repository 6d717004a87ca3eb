package metadata

import (
	"testing"
)

func TestNewFieldKind(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    FieldKind
		wantErr bool
	}{
		{"valid text", "text", KindText, false},
		{"valid number", "number", KindNumber, false},
		{"valid uppercase DATE", "DATE", KindDate, false},
		{"valid boolean with spaces", "  boolean ", KindBoolean, false},
		{"valid choice", "choice", KindChoice, false},
		{"invalid string kind", "string", "", true},
		{"invalid empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewFieldKind(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewFieldKind() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("NewFieldKind() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFieldKindIsValid(t *testing.T) {
	tests := []struct {
		name     string
		kind     FieldKind
		expected bool
	}{
		{"text kind", KindText, true},
		{"choice kind", KindChoice, true},
		{"unknown kind", FieldKind("json"), false},
		{"empty kind", FieldKind(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.kind.IsValid(); got != tt.expected {
				t.Errorf("IsValid() = %v, want %v", got, tt.expected)
			}
		})
	}
}
