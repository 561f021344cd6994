package api

import (
	"github.com/lendcore/veriflow/internal/config"
	"github.com/lendcore/veriflow/internal/loans"
	"github.com/lendcore/veriflow/internal/timeline"
	"github.com/lendcore/veriflow/internal/verifications"
	"github.com/lendcore/veriflow/internal/wizard"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Loans         loans.System
	Verifications verifications.System
	Timeline      timeline.System
	Wizard        wizard.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(cfg *config.Config, runtime *Runtime) *Domain {
	timelineSystem := timeline.New(
		runtime.Database.Connection(),
		runtime.Ability,
		runtime.Logger,
		runtime.Pagination,
		cfg.Timeline,
	)

	loanSystem := loans.New(
		runtime.Database.Connection(),
		runtime.Ability,
		runtime.Logger,
		runtime.Pagination,
	)

	verificationSystem := verifications.New(
		runtime.Database.Connection(),
		runtime.Ability,
		timelineSystem,
		runtime.Logger,
		runtime.Pagination,
	)

	wizardSystem := wizard.New(
		runtime.Database.Connection(),
		runtime.Ability,
		runtime.Agent,
		loanSystem,
		timelineSystem,
		runtime.Logger,
	)

	return &Domain{
		Loans:         loanSystem,
		Verifications: verificationSystem,
		Timeline:      timelineSystem,
		Wizard:        wizardSystem,
	}
}
