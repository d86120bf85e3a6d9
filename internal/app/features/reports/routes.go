// internal/app/features/reports/routes.go
package reports

import (
	"github.com/go-chi/chi/v5"
)

// Routes returns the router for the reporting endpoints.
// Access control and CORS are applied where the router is mounted.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	// Dashboard payload, always 200
	r.Get("/summary", h.ServeSummary)

	// Per-company CSV
	r.Get("/membership-export", h.ServeMembershipExport)

	// Paginated ticket listing
	r.Get("/tickets", h.ServeTickets)

	return r
}
