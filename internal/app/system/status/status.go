// Package status provides canonical status values used by the reporting queries.
//
// Member, registration, ticket and benefit documents store their status as
// plain lower-case strings. Using these constants instead of literals keeps
// the aggregation pipelines and the Go derivations agreeing on spelling.
package status

// Member and registration status values.
const (
	Approved = "approved"
	Pending  = "pending"
	Rejected = "rejected"
	Inactive = "inactive"
)

// Ticket status values.
const (
	TicketOpen       = "open"
	TicketInProgress = "in_progress"
	TicketResolved   = "resolved"
	TicketClosed     = "closed"
)

// Event status values.
const (
	EventCancelled = "cancelled"
)

// IsTicketDone reports whether a ticket status counts toward resolution.
func IsTicketDone(s string) bool {
	return s == TicketResolved || s == TicketClosed
}
