package metadata

import (
	"testing"
)

func TestNewRelationshipType(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    RelationshipType
		wantErr bool
	}{
		{"valid part_of", "part_of", RelPartOf, false},
		{"valid uppercase CONTAINS", "CONTAINS", RelContains, false},
		{"valid paired_with with spaces", " paired_with ", RelPairedWith, false},
		{"invalid sibling_of", "sibling_of", "", true},
		{"invalid empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewRelationshipType(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewRelationshipType() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("NewRelationshipType() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInverseLabel(t *testing.T) {
	tests := []struct {
		name     string
		rel      RelationshipType
		expected string
	}{
		{"part_of inverts to has part", RelPartOf, "Has part"},
		{"parent_of inverts to child_of label", RelParentOf, "Child of"},
		{"paired_with is symmetric", RelPairedWith, "Paired with"},
		{"replacement_for inverts to replaced by", RelReplacementFor, "Replaced by"},
		{"unregistered type falls back", RelationshipType("mounted_on"), "mounted_on (inverse)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rel.InverseLabel(); got != tt.expected {
				t.Errorf("InverseLabel() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRelationshipTypesComplete(t *testing.T) {
	types := RelationshipTypes()
	if len(types) != 10 {
		t.Fatalf("expected 10 relationship types, got %d", len(types))
	}
	for _, rel := range types {
		if !rel.IsValid() {
			t.Errorf("type %s reported invalid", rel)
		}
	}
}
