// Package api assembles the API module with all domain systems and route registration.
package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/lendcore/veriflow/internal/config"
	"github.com/lendcore/veriflow/internal/identity"
	"github.com/lendcore/veriflow/internal/infrastructure"
	"github.com/lendcore/veriflow/pkg/middleware"
	"github.com/lendcore/veriflow/pkg/module"
	"github.com/lendcore/veriflow/pkg/openapi"
)

// NewModule creates the API module with all domain handlers and middleware.
// The returned Domain exposes systems that need lifecycle registration.
func NewModule(
	ctx context.Context,
	cfg *config.Config,
	infra *infrastructure.Infrastructure,
) (*module.Module, *Domain, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(cfg, runtime)

	mux := http.NewServeMux()
	groups := routeGroups(domain)
	registerRoutes(mux, groups)

	specJSON, err := buildSpecJSON(cfg, groups)
	if err != nil {
		return nil, nil, fmt.Errorf("build openapi spec: %w", err)
	}
	mux.HandleFunc("GET /openapi.json", openapi.ServeSpec(specJSON))

	resolver, err := identity.NewResolver(ctx, &cfg.Auth)
	if err != nil {
		return nil, nil, fmt.Errorf("identity resolver init failed: %w", err)
	}

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Recover(runtime.Logger))
	m.Use(middleware.Logger(runtime.Logger))
	m.Use(identity.Middleware(resolver, runtime.Logger))

	return m, domain, nil
}
