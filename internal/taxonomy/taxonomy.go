package taxonomy

import (
	"fmt"
	"strings"
)

// Kind identifies one reference list. Each kind lives in its own table and
// is pointed at by one asset column.
type Kind string

const (
	KindStatus       Kind = "statuses"
	KindLocation     Kind = "locations"
	KindAssignment   Kind = "assignments"
	KindManufacturer Kind = "manufacturers"
	KindCustomer     Kind = "customers"
)

var kindTables = map[Kind]struct {
	table       string
	assetColumn string
}{
	KindStatus:       {"statuses", "status_id"},
	KindLocation:     {"locations", "location_id"},
	KindAssignment:   {"assignments", "assignment_id"},
	KindManufacturer: {"manufacturers", "manufacturer_id"},
	KindCustomer:     {"customers", "customer_id"},
}

func NewKind(value string) (Kind, error) {
	kind := Kind(strings.ToLower(strings.TrimSpace(value)))
	if !kind.IsValid() {
		return "", fmt.Errorf(
			"invalid taxonomy kind: %s, only valid values are: %s, %s, %s, %s, %s",
			value, KindStatus, KindLocation, KindAssignment, KindManufacturer, KindCustomer,
		)
	}
	return kind, nil
}

func (k Kind) IsValid() bool {
	_, ok := kindTables[k]
	return ok
}

func (k Kind) Table() string {
	return kindTables[k].table
}

// AssetColumn is the assets-table column holding the current pointer into
// this list.
func (k Kind) AssetColumn() string {
	return kindTables[k].assetColumn
}

func (k Kind) String() string {
	return string(k)
}

// Singular is the kind's display noun, used in error and audit messages.
func (k Kind) Singular() string {
	switch k {
	case KindStatus:
		return "status"
	case KindLocation:
		return "location"
	case KindAssignment:
		return "assignment"
	case KindManufacturer:
		return "manufacturer"
	case KindCustomer:
		return "customer"
	default:
		return string(k)
	}
}

func Kinds() []Kind {
	return []Kind{KindStatus, KindLocation, KindAssignment, KindManufacturer, KindCustomer}
}
