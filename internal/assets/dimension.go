package assets

import (
	"fmt"
	"strings"

	"github.com/voycel/Asset-Tracker-sub000/internal/taxonomy"
	"github.com/voycel/Asset-Tracker-sub000/pkg/metadata"
	"github.com/voycel/Asset-Tracker-sub000/pkg/models"
)

// Dimension is one of the four independent current-state pointers. Each
// dimension transitions on its own: any state to any other in one call,
// including back to unassigned (nil).
type Dimension string

const (
	DimensionStatus     Dimension = "status"
	DimensionLocation   Dimension = "location"
	DimensionAssignment Dimension = "assignment"
	DimensionCustomer   Dimension = "customer"
)

func NewDimension(value string) (Dimension, error) {
	dimension := Dimension(strings.ToLower(strings.TrimSpace(value)))
	if !dimension.IsValid() {
		return "", fmt.Errorf(
			"invalid transition dimension: %s, only valid values are: %s, %s, %s, %s",
			value, DimensionStatus, DimensionLocation, DimensionAssignment, DimensionCustomer,
		)
	}
	return dimension, nil
}

func Dimensions() []Dimension {
	return []Dimension{DimensionStatus, DimensionLocation, DimensionAssignment, DimensionCustomer}
}

func (d Dimension) IsValid() bool {
	switch d {
	case DimensionStatus, DimensionLocation, DimensionAssignment, DimensionCustomer:
		return true
	default:
		return false
	}
}

func (d Dimension) TaxonomyKind() taxonomy.Kind {
	switch d {
	case DimensionStatus:
		return taxonomy.KindStatus
	case DimensionLocation:
		return taxonomy.KindLocation
	case DimensionAssignment:
		return taxonomy.KindAssignment
	default:
		return taxonomy.KindCustomer
	}
}

func (d Dimension) Column() string {
	return d.TaxonomyKind().AssetColumn()
}

func (d Dimension) Action() metadata.Action {
	switch d {
	case DimensionStatus:
		return metadata.ActionUpdateStatus
	case DimensionLocation:
		return metadata.ActionUpdateLocation
	case DimensionAssignment:
		return metadata.ActionAssigned
	default:
		return metadata.ActionCustomerAssigned
	}
}

// Current reads the asset's present pointer for this dimension.
func (d Dimension) Current(asset *models.Asset) *models.TaxonomyRef {
	switch d {
	case DimensionStatus:
		return asset.Status
	case DimensionLocation:
		return asset.Location
	case DimensionAssignment:
		return asset.Assignment
	default:
		return asset.Customer
	}
}
