package wizard_test

import (
	"reflect"
	"testing"

	"github.com/lendcore/veriflow/internal/wizard"
)

func amount(v float64) *float64 { return &v }

func TestDraftMerge(t *testing.T) {
	draft := wizard.Draft{ApplicantFirstName: "Ada"}

	draft.Merge(wizard.Draft{
		ApplicantLastName: "Lovelace",
		Amount:            amount(15000),
	})

	if draft.ApplicantFirstName != "Ada" {
		t.Errorf("existing field should survive, got %q", draft.ApplicantFirstName)
	}
	if draft.ApplicantLastName != "Lovelace" {
		t.Errorf("got %q", draft.ApplicantLastName)
	}
	if draft.Amount == nil || *draft.Amount != 15000 {
		t.Errorf("got %v", draft.Amount)
	}
}

func TestDraftMergeEmptyTurnKeepsAnswers(t *testing.T) {
	draft := wizard.Draft{
		ApplicantFirstName: "Ada",
		ApplicantLastName:  "Lovelace",
		Amount:             amount(15000),
		Purpose:            "home renovation",
	}
	before := draft

	draft.Merge(wizard.Draft{})

	if !reflect.DeepEqual(draft, before) {
		t.Errorf("empty merge changed draft: %+v", draft)
	}
}

func TestDraftMergeIgnoresNonPositiveAmount(t *testing.T) {
	draft := wizard.Draft{Amount: amount(15000)}
	draft.Merge(wizard.Draft{Amount: amount(0)})

	if *draft.Amount != 15000 {
		t.Errorf("got %v, want 15000", *draft.Amount)
	}
}

func TestDraftMissing(t *testing.T) {
	tests := []struct {
		name  string
		draft wizard.Draft
		want  []string
	}{
		{
			"empty draft",
			wizard.Draft{},
			[]string{"applicant_first_name", "applicant_last_name", "amount", "purpose"},
		},
		{
			"partial draft",
			wizard.Draft{ApplicantFirstName: "Ada", Amount: amount(15000)},
			[]string{"applicant_last_name", "purpose"},
		},
		{
			"complete draft",
			wizard.Draft{
				ApplicantFirstName: "Ada",
				ApplicantLastName:  "Lovelace",
				Amount:             amount(15000),
				Purpose:            "home renovation",
			},
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.draft.Missing()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
			if tt.draft.Complete() != (len(tt.want) == 0) {
				t.Errorf("Complete() inconsistent with Missing()")
			}
		})
	}
}

func TestSessionAppendAndLastAssistantMessage(t *testing.T) {
	var session wizard.Session

	if got := session.LastAssistantMessage(); got != "" {
		t.Errorf("got %q, want empty", got)
	}

	session.Append(wizard.MessageRoleAssistant, "What is your name?")
	session.Append(wizard.MessageRoleUser, "Ada Lovelace")

	if got := session.LastAssistantMessage(); got != "What is your name?" {
		t.Errorf("got %q", got)
	}

	session.Append(wizard.MessageRoleAssistant, "How much would you like to borrow?")
	if got := session.LastAssistantMessage(); got != "How much would you like to borrow?" {
		t.Errorf("got %q", got)
	}
}
