package api

import (
	"net/http"

	"github.com/lendcore/veriflow/pkg/routes"
)

func routeGroups(domain *Domain) []routes.Group {
	return []routes.Group{
		domain.Loans.Handler().Routes(),
		domain.Verifications.Handler().Routes(),
		domain.Timeline.Handler().Routes(),
		domain.Wizard.Handler().Routes(),
	}
}

func registerRoutes(mux *http.ServeMux, groups []routes.Group) {
	routes.Register(mux, groups...)
}
