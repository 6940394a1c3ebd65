package authsvc

import (
	"testing"

	"nova_crm/internal/api/auth/models"
)

func TestPolicyMatrix(t *testing.T) {
	cases := []struct {
		name    string
		entity  string
		action  string
		role    string
		isOwner bool
		want    bool
	}{
		{"employee cannot delete customer", EntityCustomer, ActionDelete, models.RoleEmployee, false, false},
		{"manager deletes customer", EntityCustomer, ActionDelete, models.RoleManager, false, true},
		{"admin deletes customer", EntityCustomer, ActionDelete, models.RoleAdmin, false, true},
		{"employee lists customers", EntityCustomer, ActionList, models.RoleEmployee, false, true},
		{"employee cannot delete lead", EntityLead, ActionDelete, models.RoleEmployee, false, false},
		{"manager deletes lead", EntityLead, ActionDelete, models.RoleManager, false, true},
		{"owner deletes own activity", EntityActivity, ActionDelete, models.RoleEmployee, true, true},
		{"non-owner employee cannot delete activity", EntityActivity, ActionDelete, models.RoleEmployee, false, false},
		{"admin deletes any activity", EntityActivity, ActionDelete, models.RoleAdmin, false, true},
		{"manager cannot delete other users activity", EntityActivity, ActionDelete, models.RoleManager, false, false},
		{"only admin updates users", EntityUser, ActionUpdate, models.RoleManager, false, false},
		{"admin updates users", EntityUser, ActionUpdate, models.RoleAdmin, false, true},
		{"only admin lists audit logs", EntityAuditLog, ActionList, models.RoleEmployee, false, false},
		{"admin lists audit logs", EntityAuditLog, ActionList, models.RoleAdmin, false, true},
		{"unlisted entity defaults to allowed", EntityNotification, ActionRead, models.RoleEmployee, false, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Allowed(tc.entity, tc.action, tc.role, tc.isOwner); got != tc.want {
				t.Errorf("Allowed(%s, %s, %s, owner=%v) = %v, want %v",
					tc.entity, tc.action, tc.role, tc.isOwner, got, tc.want)
			}
		})
	}
}

// Entity names are written verbatim into audit rows, so their values are part
// of the wire contract.
func TestEntityWireValues(t *testing.T) {
	cases := []struct{ got, want string }{
		{EntityCustomer, "Customer"},
		{EntityLead, "Lead"},
		{EntityActivity, "Activity"},
		{EntityUser, "User"},
	}
	for _, tc := range cases {
		if tc.got != tc.want {
			t.Errorf("entity constant = %q, want %q", tc.got, tc.want)
		}
	}
}
