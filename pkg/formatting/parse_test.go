package formatting_test

import (
	"errors"
	"testing"

	"github.com/lendcore/veriflow/pkg/formatting"
)

type draft struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

func TestParseDirectJSON(t *testing.T) {
	got, err := formatting.Parse[draft](`{"name": "Ada", "amount": 1200.50}`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if got.Name != "Ada" || got.Amount != 1200.50 {
		t.Errorf("unexpected result: %+v", got)
	}
}

func TestParseMarkdownFence(t *testing.T) {
	content := "Here is the extraction:\n```json\n{\"name\": \"Ada\", \"amount\": 500}\n```\nDone."

	got, err := formatting.Parse[draft](content)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if got.Name != "Ada" || got.Amount != 500 {
		t.Errorf("unexpected result: %+v", got)
	}
}

func TestParseBareFence(t *testing.T) {
	content := "```\n{\"name\": \"Grace\"}\n```"

	got, err := formatting.Parse[draft](content)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if got.Name != "Grace" {
		t.Errorf("got %q, want Grace", got.Name)
	}
}

func TestParseFailure(t *testing.T) {
	_, err := formatting.Parse[draft]("I could not find any fields.")
	if !errors.Is(err, formatting.ErrParseFailed) {
		t.Errorf("got %v, want ErrParseFailed", err)
	}
}
