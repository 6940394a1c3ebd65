package authsvc

import "nova_crm/internal/api/auth/models"

// Action names used by the access policy.
const (
	ActionCreate = "create"
	ActionRead   = "read"
	ActionUpdate = "update"
	ActionDelete = "delete"
	ActionList   = "list"
)

// Entity names used by the access policy and written into audit rows.
const (
	EntityCustomer     = "Customer"
	EntityLead         = "Lead"
	EntityActivity     = "Activity"
	EntityUser         = "User"
	EntityAuditLog     = "AuditLog"
	EntityNotification = "Notification"
)

// PolicyRule describes who may perform one action on one entity. An empty
// Roles list means any authenticated user. Owner additionally grants the
// creator of the record.
type PolicyRule struct {
	Roles []string
	Owner bool
}

// policyTable is the single source of truth for role checks. Entity/action
// pairs without an entry default to any authenticated user.
var policyTable = map[string]map[string]PolicyRule{
	EntityCustomer: {
		ActionDelete: {Roles: []string{models.RoleAdmin, models.RoleManager}},
	},
	EntityLead: {
		ActionDelete: {Roles: []string{models.RoleAdmin, models.RoleManager}},
	},
	EntityActivity: {
		ActionDelete: {Roles: []string{models.RoleAdmin}, Owner: true},
	},
	EntityUser: {
		ActionUpdate: {Roles: []string{models.RoleAdmin}},
	},
	EntityAuditLog: {
		ActionList: {Roles: []string{models.RoleAdmin}},
	},
}

// Allowed reports whether a user with the given role may perform action on
// entity. isOwner marks the user as creator of the concrete record.
func Allowed(entity, action, role string, isOwner bool) bool {
	actions, ok := policyTable[entity]
	if !ok {
		return true
	}
	rule, ok := actions[action]
	if !ok {
		return true
	}

	if rule.Owner && isOwner {
		return true
	}
	for _, r := range rule.Roles {
		if r == role {
			return true
		}
	}
	return false
}
