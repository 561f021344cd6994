package ability_test

import (
	"testing"

	"github.com/lendcore/veriflow/internal/ability"
	"github.com/lendcore/veriflow/internal/identity"
)

func caller(role identity.Role) *identity.Caller {
	return &identity.Caller{Subject: "test-user", Role: role}
}

func TestNilCallerFailsClosed(t *testing.T) {
	resolver := ability.NewResolver(ability.DefaultRules())

	if resolver.Can(nil, ability.ActionRead, ability.SubjectVerification) {
		t.Error("nil caller should never be granted")
	}
	if resolver.Can(&identity.Caller{}, ability.ActionRead, ability.SubjectVerification) {
		t.Error("caller without role should never be granted")
	}
}

func TestUnknownRoleFailsClosed(t *testing.T) {
	resolver := ability.NewResolver(ability.DefaultRules())

	if resolver.Can(caller("intruder"), ability.ActionRead, ability.SubjectVerification) {
		t.Error("unknown role should never be granted")
	}
}

func TestManageImpliesAllActions(t *testing.T) {
	resolver := ability.NewResolver(ability.DefaultRules())

	actions := []ability.Action{
		ability.ActionCreate,
		ability.ActionRead,
		ability.ActionUpdate,
		ability.ActionDelete,
	}

	for _, action := range actions {
		if !resolver.Can(caller(identity.RoleAdmin), action, ability.SubjectVerification) {
			t.Errorf("admin should be granted %s on verification", action)
		}
	}
}

func TestRoleGrants(t *testing.T) {
	resolver := ability.NewResolver(ability.DefaultRules())

	tests := []struct {
		name    string
		role    identity.Role
		action  ability.Action
		subject ability.Subject
		want    bool
	}{
		{"loan officer deletes verification", identity.RoleLoanOfficer, ability.ActionDelete, ability.SubjectVerification, true},
		{"loan officer creates loan", identity.RoleLoanOfficer, ability.ActionCreate, ability.SubjectLoanApplication, true},
		{"field agent creates verification", identity.RoleFieldAgent, ability.ActionCreate, ability.SubjectVerification, true},
		{"field agent cannot delete verification", identity.RoleFieldAgent, ability.ActionDelete, ability.SubjectVerification, false},
		{"field agent cannot start wizard", identity.RoleFieldAgent, ability.ActionCreate, ability.SubjectWizardSession, false},
		{"viewer reads verification", identity.RoleViewer, ability.ActionRead, ability.SubjectVerification, true},
		{"viewer cannot create verification", identity.RoleViewer, ability.ActionCreate, ability.SubjectVerification, false},
		{"viewer cannot update loan", identity.RoleViewer, ability.ActionUpdate, ability.SubjectLoanApplication, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolver.Can(caller(tt.role), tt.action, tt.subject)
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFieldLevelGrants(t *testing.T) {
	resolver := ability.NewResolver(ability.DefaultRules())

	tests := []struct {
		name   string
		role   identity.Role
		action ability.Action
		fields []string
		want   bool
	}{
		{"viewer reads status", identity.RoleViewer, ability.ActionRead, []string{ability.FieldStatus}, true},
		{"viewer cannot read remarks", identity.RoleViewer, ability.ActionRead, []string{ability.FieldRemarks}, false},
		{"viewer mixed fields rejected", identity.RoleViewer, ability.ActionRead, []string{ability.FieldStatus, ability.FieldRemarks}, false},
		{"admin reads remarks", identity.RoleAdmin, ability.ActionRead, []string{ability.FieldRemarks}, true},
		{"field agent updates result", identity.RoleFieldAgent, ability.ActionUpdate, []string{ability.FieldResult}, true},
		{"field agent cannot move verification", identity.RoleFieldAgent, ability.ActionUpdate, []string{"loan_application_id"}, false},
		{"loan officer unrestricted fields", identity.RoleLoanOfficer, ability.ActionUpdate, []string{"loan_application_id"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolver.Can(caller(tt.role), tt.action, ability.SubjectVerification, tt.fields...)
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
