package validation_test

import (
	"testing"

	"github.com/lendcore/veriflow/pkg/validation"
)

func TestAddFirstFailureWins(t *testing.T) {
	errs := validation.New()
	errs.Add("name", validation.KeyRequired)
	errs.Add("name", validation.KeyInvalid)

	if errs["name"] != validation.KeyRequired {
		t.Errorf("got %q, want %q", errs["name"], validation.KeyRequired)
	}
}

func TestMergeWithPrefix(t *testing.T) {
	detail := validation.New()
	detail.Add("owner_first_name", validation.KeyRequired)
	detail.Add("residence_type", validation.KeyInvalid)

	errs := validation.New()
	errs.Merge("details", detail)

	tests := []struct {
		path string
		key  string
	}{
		{"details.owner_first_name", validation.KeyRequired},
		{"details.residence_type", validation.KeyInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if errs[tt.path] != tt.key {
				t.Errorf("got %q, want %q", errs[tt.path], tt.key)
			}
		})
	}
}

func TestMergeWithoutPrefix(t *testing.T) {
	other := validation.New()
	other.Add("status", validation.KeyInvalid)

	errs := validation.New()
	errs.Merge("", other)

	if errs["status"] != validation.KeyInvalid {
		t.Errorf("got %q, want %q", errs["status"], validation.KeyInvalid)
	}
}


func TestErrorDeterministic(t *testing.T) {
	errs := validation.New()
	errs.Add("b", validation.KeyInvalid)
	errs.Add("a", validation.KeyRequired)

	want := "validation failed: a: required; b: invalid"
	for range 5 {
		if got := errs.Error(); got != want {
			t.Fatalf("got %q, want %q", got, want)
		}
	}
}

func TestEmpty(t *testing.T) {
	errs := validation.New()
	if !errs.Empty() {
		t.Error("new collection should be empty")
	}

	errs.Add("field", validation.KeyRequired)
	if errs.Empty() {
		t.Error("collection with entries should not be empty")
	}
}
