package api

import (
	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/lendcore/veriflow/internal/ability"
	"github.com/lendcore/veriflow/internal/config"
	"github.com/lendcore/veriflow/internal/infrastructure"
	"github.com/lendcore/veriflow/pkg/pagination"
)

// Runtime extends Infrastructure with API-specific configuration and the
// capability resolver shared by every domain system.
type Runtime struct {
	*infrastructure.Infrastructure
	Agent      gaconfig.AgentConfig
	Pagination pagination.Config
	Ability    *ability.Resolver
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    infra.Logger.With("module", "api"),
			Database:  infra.Database,
		},
		Agent:      cfg.Agent,
		Pagination: cfg.API.Pagination,
		Ability:    ability.NewResolver(ability.DefaultRules()),
	}
}
