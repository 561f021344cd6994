package timeline

import (
	"github.com/lendcore/veriflow/pkg/query"
	"github.com/lendcore/veriflow/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "timeline_events", "te").
	Project("id", "ID").
	Project("loan_application_id", "LoanApplicationID").
	Project("verification_id", "VerificationID").
	Project("event_type", "EventType").
	Project("actor_id", "ActorID").
	Project("actor_role", "ActorRole").
	Project("remarks", "Remarks").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

func scanEvent(s repository.Scanner) (Event, error) {
	var e Event
	err := s.Scan(
		&e.ID,
		&e.LoanApplicationID,
		&e.VerificationID,
		&e.EventType,
		&e.ActorID,
		&e.ActorRole,
		&e.Remarks,
		&e.CreatedAt,
	)
	return e, err
}
