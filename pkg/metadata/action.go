package metadata

// Action is the audit-log action kind. The set is open ended: unknown values
// fall into ActionOther rather than failing, so old logs stay readable after
// new actions are introduced.
type Action string

const (
	ActionCreate              Action = "CREATE"
	ActionUpdate              Action = "UPDATE"
	ActionUpdateStatus        Action = "UPDATE_STATUS"
	ActionUpdateLocation      Action = "UPDATE_LOCATION"
	ActionAssigned            Action = "ASSIGNED"
	ActionCustomerAssigned    Action = "CUSTOMER_ASSIGNED"
	ActionRelationshipCreated Action = "RELATIONSHIP_CREATED"
	ActionRelationshipUpdated Action = "RELATIONSHIP_UPDATED"
	ActionRelationshipDeleted Action = "RELATIONSHIP_DELETED"
	ActionArchive             Action = "ARCHIVE"
	ActionDelete              Action = "DELETE"
	ActionImport              Action = "IMPORT"
	ActionOther               Action = "OTHER"
)

func (a Action) IsKnown() bool {
	switch a {
	case ActionCreate, ActionUpdate, ActionUpdateStatus, ActionUpdateLocation,
		ActionAssigned, ActionCustomerAssigned, ActionRelationshipCreated,
		ActionRelationshipUpdated, ActionRelationshipDeleted, ActionArchive,
		ActionDelete, ActionImport:
		return true
	default:
		return false
	}
}

// Normalize folds unrecognized actions into the forward-compatibility bucket.
func (a Action) Normalize() Action {
	if a.IsKnown() {
		return a
	}
	return ActionOther
}

func (a Action) String() string {
	return string(a)
}
