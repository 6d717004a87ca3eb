package metadata

import (
	"fmt"
	"strings"
)

// RelationshipType tags a directed edge between two assets. Each type carries
// a display label and an inverse label for rendering the edge from the target
// asset's point of view.
type RelationshipType string

const (
	RelPartOf         RelationshipType = "part_of"
	RelContains       RelationshipType = "contains"
	RelAccessoryTo    RelationshipType = "accessory_to"
	RelHasAccessory   RelationshipType = "has_accessory"
	RelConnectedTo    RelationshipType = "connected_to"
	RelPairedWith     RelationshipType = "paired_with"
	RelParentOf       RelationshipType = "parent_of"
	RelChildOf        RelationshipType = "child_of"
	RelReplacementFor RelationshipType = "replacement_for"
	RelRelatedTo      RelationshipType = "related_to"
)

var relationshipLabels = map[RelationshipType]struct {
	label   string
	inverse string
}{
	RelPartOf:         {"Part of", "Has part"},
	RelContains:       {"Contains", "Contained in"},
	RelAccessoryTo:    {"Accessory to", "Has accessory"},
	RelHasAccessory:   {"Has accessory", "Accessory to"},
	RelConnectedTo:    {"Connected to", "Connected to"},
	RelPairedWith:     {"Paired with", "Paired with"},
	RelParentOf:       {"Parent of", "Child of"},
	RelChildOf:        {"Child of", "Parent of"},
	RelReplacementFor: {"Replacement for", "Replaced by"},
	RelRelatedTo:      {"Related to", "Related to"},
}

func NewRelationshipType(value string) (RelationshipType, error) {
	rel := RelationshipType(strings.ToLower(strings.TrimSpace(value)))
	if !rel.IsValid() {
		return "", fmt.Errorf("invalid relationship type: %s", value)
	}
	return rel, nil
}

func (r RelationshipType) IsValid() bool {
	_, ok := relationshipLabels[r]
	return ok
}

func (r RelationshipType) Label() string {
	if meta, ok := relationshipLabels[r]; ok {
		return meta.label
	}
	return string(r)
}

// InverseLabel is the display label seen from the target asset. Types without
// a registered inverse render as "<label> (inverse)".
func (r RelationshipType) InverseLabel() string {
	if meta, ok := relationshipLabels[r]; ok {
		return meta.inverse
	}
	return r.Label() + " (inverse)"
}

func (r RelationshipType) String() string {
	return string(r)
}

func RelationshipTypes() []RelationshipType {
	return []RelationshipType{
		RelPartOf, RelContains, RelAccessoryTo, RelHasAccessory, RelConnectedTo,
		RelPairedWith, RelParentOf, RelChildOf, RelReplacementFor, RelRelatedTo,
	}
}
