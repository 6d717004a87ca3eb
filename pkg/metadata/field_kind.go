package metadata

import (
	"fmt"
	"strings"
)

// FieldKind is the primitive type of a custom field. It is fixed at field
// creation; changing it would orphan previously stored typed values.
type FieldKind string

const (
	KindText    FieldKind = "text"
	KindNumber  FieldKind = "number"
	KindDate    FieldKind = "date"
	KindBoolean FieldKind = "boolean"
	KindChoice  FieldKind = "choice"
)

func NewFieldKind(value string) (FieldKind, error) {
	kind := FieldKind(strings.ToLower(strings.TrimSpace(value)))
	if !kind.IsValid() {
		return "", fmt.Errorf(
			"invalid field kind: %s, only valid values are: %s, %s, %s, %s, %s",
			value, KindText, KindNumber, KindDate, KindBoolean, KindChoice,
		)
	}
	return kind, nil
}

func (k FieldKind) IsValid() bool {
	switch k {
	case KindText, KindNumber, KindDate, KindBoolean, KindChoice:
		return true
	default:
		return false
	}
}

func (k FieldKind) String() string {
	return string(k)
}
