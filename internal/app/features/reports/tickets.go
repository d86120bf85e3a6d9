// internal/app/features/reports/tickets.go
package reports

import (
	"net/http"
	"strconv"

	ticketstore "github.com/dalemusser/stratamember/internal/app/store/tickets"
	"github.com/dalemusser/stratamember/internal/app/system/jsonutil"
	"github.com/dalemusser/stratamember/internal/app/system/normalize"
	"github.com/dalemusser/stratamember/internal/app/system/timeouts"
	"github.com/dalemusser/stratamember/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
)

// TicketPageMeta describes one page of the ticket listing.
type TicketPageMeta struct {
	Page     int64 `json:"page"`
	PageSize int64 `json:"pageSize"`
	Count    int   `json:"count"` // rows in this page
}

// TicketPage is the body of GET /reports/tickets.
type TicketPage struct {
	Meta    TicketPageMeta  `json:"meta"`
	Results []models.Ticket `json:"results"`
}

// ServeTickets handles GET /reports/tickets?page=&pageSize=.
func (h *Handler) ServeTickets(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Export(), h.Log, "ticket listing")
	defer cancel()

	page, pageSize := ticketstore.ClampPage(intParam(r, "page"), intParam(r, "pageSize"))

	tickets, err := h.Tickets.List(ctx, page, pageSize)
	if err != nil {
		h.ErrLog.Log(r, "ticket listing failed", err)
		jsonutil.Error(w, http.StatusInternalServerError, "Failed to load tickets", err.Error())
		return
	}
	if tickets == nil {
		tickets = []models.Ticket{}
	}

	jsonutil.OK(w, TicketPage{
		Meta:    TicketPageMeta{Page: page, PageSize: pageSize, Count: len(tickets)},
		Results: tickets,
	})
}

// intParam reads an integer query parameter; missing or malformed is 0.
func intParam(r *http.Request, key string) int64 {
	n, err := strconv.ParseInt(normalize.QueryParam(query.Get(r, key)), 10, 64)
	if err != nil {
		return 0
	}
	return n
}
