package ability

import "github.com/lendcore/veriflow/internal/identity"

// Verification field names used by narrowed rules and handler visibility checks.
const (
	FieldStatus           = "status"
	FieldResult           = "result"
	FieldRemarks          = "remarks"
	FieldVerificationDate = "verification_date"
	FieldVerificationTime = "verification_time"
	FieldDetails          = "details"
)

// viewerReadFields is every verification field except remarks. Viewers see
// outcomes, not inspector commentary.
var viewerReadFields = []string{
	"id", "loan_application_id", "type",
	FieldStatus, FieldResult,
	FieldVerificationDate, FieldVerificationTime,
	"verified_by", FieldDetails,
	"created_at", "updated_at",
}

// fieldAgentUpdateFields are the envelope fields an agent records in the
// field. Agents cannot reassign a verification or move it between loans.
var fieldAgentUpdateFields = []string{
	FieldStatus, FieldResult, FieldRemarks,
	FieldVerificationDate, FieldVerificationTime,
	FieldDetails,
}

// DefaultRules is the production rule table.
func DefaultRules() map[identity.Role][]Rule {
	return map[identity.Role][]Rule{
		identity.RoleAdmin: {
			{Action: ActionManage, Subject: SubjectVerification},
			{Action: ActionManage, Subject: SubjectLoanApplication},
			{Action: ActionManage, Subject: SubjectTimeline},
			{Action: ActionManage, Subject: SubjectWizardSession},
		},
		identity.RoleLoanOfficer: {
			{Action: ActionManage, Subject: SubjectVerification},
			{Action: ActionCreate, Subject: SubjectLoanApplication},
			{Action: ActionRead, Subject: SubjectLoanApplication},
			{Action: ActionRead, Subject: SubjectTimeline},
			{Action: ActionCreate, Subject: SubjectWizardSession},
			{Action: ActionRead, Subject: SubjectWizardSession},
			{Action: ActionUpdate, Subject: SubjectWizardSession},
		},
		identity.RoleFieldAgent: {
			{Action: ActionCreate, Subject: SubjectVerification},
			{Action: ActionRead, Subject: SubjectVerification},
			{Action: ActionUpdate, Subject: SubjectVerification, Fields: fieldAgentUpdateFields},
			{Action: ActionRead, Subject: SubjectLoanApplication},
			{Action: ActionRead, Subject: SubjectTimeline},
		},
		identity.RoleViewer: {
			{Action: ActionRead, Subject: SubjectVerification, Fields: viewerReadFields},
			{Action: ActionRead, Subject: SubjectLoanApplication},
			{Action: ActionRead, Subject: SubjectTimeline},
		},
	}
}
