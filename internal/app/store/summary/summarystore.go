// internal/app/store/summary/summarystore.go
package summarystore

import (
	"time"

	"github.com/dalemusser/stratamember/internal/app/system/safequery"
	"github.com/dalemusser/stratamember/internal/app/system/status"
	"go.mongodb.org/mongo-driver/bson"
)

// Collections read by the summary engine.
const (
	CollMembers       = "members"
	CollEmployers     = "employers"
	CollTickets       = "tickets"
	CollEvents        = "events"
	CollBenefits      = "benefits"
	CollDuesLedger    = "dues_ledger"
	CollPayments      = "payments"
	CollRegistrations = "registrations"
	CollSettings      = "app_settings"
)

// TrackedCollections are the core collections whose population makes up
// the database health figure.
var TrackedCollections = []string{
	CollMembers,
	CollEmployers,
	CollTickets,
	CollEvents,
	CollBenefits,
	CollDuesLedger,
	CollPayments,
	CollRegistrations,
}

// Setting keys in app_settings.
const (
	SettingAIAssist      = "ai_assist"
	SettingReportBuilder = "report_builder"
)

// Window carries the instants the time-relative queries are anchored on.
// It is computed once per request.
type Window struct {
	Now        time.Time
	TrendStart time.Time // first instant of the oldest trend month
	MonthStart time.Time
	NextMonth  time.Time
	PrevMonth  time.Time
}

// NewWindow anchors a Window at now with the given trend start.
func NewWindow(now, trendStart time.Time) Window {
	now = now.UTC()
	month := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return Window{
		Now:        now,
		TrendStart: trendStart.UTC(),
		MonthStart: month,
		NextMonth:  month.AddDate(0, 1, 0),
		PrevMonth:  month.AddDate(0, -1, 0),
	}
}

// lowerStatus is the normalized status expression shared by the count stages.
var lowerStatus = bson.M{"$toLower": bson.M{"$trim": bson.M{"input": bson.M{"$ifNull": bson.A{"$status", ""}}}}}

func countIf(cond any) bson.M {
	return bson.M{"$sum": bson.M{"$cond": bson.A{cond, 1, 0}}}
}

func statusIs(s string) bson.M {
	return bson.M{"$eq": bson.A{lowerStatus, s}}
}

func statusIn(s ...string) bson.M {
	return bson.M{"$in": bson.A{lowerStatus, s}}
}

func between(field string, from, to time.Time) bson.M {
	return bson.M{"$and": bson.A{
		bson.M{"$gte": bson.A{"$" + field, from}},
		bson.M{"$lt": bson.A{"$" + field, to}},
	}}
}

func since(field string, from time.Time) bson.M {
	return bson.M{"$gte": bson.A{"$" + field, from}}
}

// companyKey trims the company name and maps a missing one to "".
var companyKey = bson.M{"$trim": bson.M{"input": bson.M{"$ifNull": bson.A{"$company", ""}}}}

// monthKey renders a date field as its YYYY-MM-01 month key.
func monthKey(field string) bson.M {
	return bson.M{"$dateToString": bson.M{"format": "%Y-%m-01", "date": "$" + field, "timezone": "UTC"}}
}

// MemberCounts counts member records by status.
func MemberCounts() safequery.Query {
	return safequery.Query{
		Name:       "member_counts",
		Collection: CollMembers,
		Pipeline: []bson.M{
			{"$group": bson.M{
				"_id":             nil,
				"totalMembers":    bson.M{"$sum": 1},
				"approvedMembers": countIf(statusIs(status.Approved)),
				"pendingMembers":  countIf(statusIs(status.Pending)),
				"rejectedMembers": countIf(statusIs(status.Rejected)),
			}},
		},
	}
}

// NewMembers counts members who joined this calendar month and last.
func NewMembers(w Window) safequery.Query {
	return safequery.Query{
		Name:       "new_members",
		Collection: CollMembers,
		Pipeline: []bson.M{
			{"$match": bson.M{"createdAt": bson.M{"$gte": w.PrevMonth, "$lt": w.NextMonth}}},
			{"$group": bson.M{
				"_id":       nil,
				"thisMonth": countIf(since("createdAt", w.MonthStart)),
				"lastMonth": countIf(between("createdAt", w.PrevMonth, w.MonthStart)),
			}},
		},
	}
}

// MembersByCompany totals members per company with approved joiners per
// lookback window.
func MembersByCompany(w Window) safequery.Query {
	approvedSince := func(from time.Time) bson.M {
		return countIf(bson.M{"$and": bson.A{statusIs(status.Approved), since("createdAt", from)}})
	}
	return safequery.Query{
		Name:       "members_by_company",
		Collection: CollMembers,
		Pipeline: []bson.M{
			{"$group": bson.M{
				"_id":      companyKey,
				"approved": countIf(statusIs(status.Approved)),
				"total":    bson.M{"$sum": 1},
				"new7d":    approvedSince(w.Now.AddDate(0, 0, -7)),
				"new30d":   approvedSince(w.Now.AddDate(0, 0, -30)),
				"new90d":   approvedSince(w.Now.AddDate(0, 0, -90)),
				"new12m":   approvedSince(w.Now.AddDate(-1, 0, 0)),
			}},
			{"$match": bson.M{"_id": bson.M{"$ne": ""}}},
			{"$sort": bson.M{"approved": -1}},
		},
	}
}

// MemberTenure lists employment start dates of approved members.
func MemberTenure() safequery.Query {
	return safequery.Query{
		Name:       "member_tenure",
		Collection: CollMembers,
		Pipeline: []bson.M{
			{"$match": bson.M{"$expr": statusIs(status.Approved), "employmentStartDate": bson.M{"$ne": nil}}},
			{"$project": bson.M{"_id": 0, "employmentStartDate": 1}},
		},
	}
}

// MemberIdentities lists the name and birth date of every active member.
func MemberIdentities() safequery.Query {
	return safequery.Query{
		Name:       "member_identities",
		Collection: CollMembers,
		Pipeline: []bson.M{
			{"$match": bson.M{"$expr": statusIs(status.Approved)}},
			{"$project": bson.M{"_id": 0, "fullName": 1, "firstName": 1, "lastName": 1, "dateOfBirth": 1}},
		},
	}
}

// EmployerCount counts employer records.
func EmployerCount() safequery.Query {
	return safequery.Query{
		Name:       "employer_count",
		Collection: CollEmployers,
		Pipeline:   []bson.M{{"$count": "employers"}},
	}
}

// TicketCounts counts tickets by status and averages resolution time.
func TicketCounts() safequery.Query {
	isDate := func(field string) bson.M {
		return bson.M{"$eq": bson.A{bson.M{"$type": "$" + field}, "date"}}
	}
	return safequery.Query{
		Name:       "ticket_counts",
		Collection: CollTickets,
		Pipeline: []bson.M{
			{"$group": bson.M{
				"_id":        nil,
				"total":      bson.M{"$sum": 1},
				"open":       countIf(statusIs(status.TicketOpen)),
				"inProgress": countIf(statusIn(status.TicketInProgress, "in progress", "in-progress")),
				"resolved":   countIf(statusIs(status.TicketResolved)),
				"closed":     countIf(statusIs(status.TicketClosed)),
				"avgResolutionHours": bson.M{"$avg": bson.M{"$cond": bson.A{
					bson.M{"$and": bson.A{isDate("resolvedAt"), isDate("createdAt")}},
					bson.M{"$divide": bson.A{bson.M{"$subtract": bson.A{"$resolvedAt", "$createdAt"}}, 3600000}},
					nil,
				}}},
			}},
		},
	}
}

// EventCounts counts non-cancelled events relative to now.
func EventCounts(w Window) safequery.Query {
	return safequery.Query{
		Name:       "event_counts",
		Collection: CollEvents,
		Pipeline: []bson.M{
			{"$match": bson.M{"$expr": bson.M{"$ne": bson.A{lowerStatus, status.EventCancelled}}}},
			{"$group": bson.M{
				"_id":       nil,
				"total":     bson.M{"$sum": 1},
				"upcoming":  countIf(since("startsAt", w.Now)),
				"thisMonth": countIf(between("startsAt", w.MonthStart, w.NextMonth)),
				"past":      countIf(bson.M{"$lt": bson.A{"$startsAt", w.Now}}),
				"attendees": bson.M{"$sum": bson.M{"$ifNull": bson.A{"$attendeeCount", 0}}},
			}},
		},
	}
}

// BenefitCounts counts benefit claims by status and sums approved payouts.
func BenefitCounts() safequery.Query {
	return safequery.Query{
		Name:       "benefit_counts",
		Collection: CollBenefits,
		Pipeline: []bson.M{
			{"$group": bson.M{
				"_id":      nil,
				"total":    bson.M{"$sum": 1},
				"approved": countIf(statusIs(status.Approved)),
				"pending":  countIf(statusIs(status.Pending)),
				"rejected": countIf(statusIs(status.Rejected)),
				"disbursed": bson.M{"$sum": bson.M{"$cond": bson.A{
					statusIs(status.Approved),
					bson.M{"$ifNull": bson.A{"$amount", 0}},
					0,
				}}},
			}},
		},
	}
}

// BenefitsByType counts benefit claims per type, largest first.
func BenefitsByType() safequery.Query {
	return safequery.Query{
		Name:       "benefits_by_type",
		Collection: CollBenefits,
		Pipeline: []bson.M{
			{"$group": bson.M{"_id": bson.M{"$ifNull": bson.A{"$type", "Other"}}, "count": bson.M{"$sum": 1}}},
			{"$sort": bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}},
		},
	}
}

// DuesCurrent sums the dues ledger for the current period. The ledger holds
// one entry per member per period.
func DuesCurrent(w Window) safequery.Query {
	paid := bson.M{"$ifNull": bson.A{"$amountPaid", 0}}
	return safequery.Query{
		Name:       "dues_current",
		Collection: CollDuesLedger,
		Pipeline: []bson.M{
			{"$match": bson.M{"period": bson.M{"$gte": w.MonthStart, "$lt": w.NextMonth}}},
			{"$group": bson.M{
				"_id":           nil,
				"billed":        bson.M{"$sum": bson.M{"$ifNull": bson.A{"$amount", 0}}},
				"collected":     bson.M{"$sum": paid},
				"membersBilled": bson.M{"$sum": 1},
				"membersPaid": countIf(bson.M{"$and": bson.A{
					bson.M{"$gt": bson.A{paid, 0}},
					bson.M{"$gte": bson.A{paid, bson.M{"$ifNull": bson.A{"$amount", 0}}}},
				}}),
			}},
		},
	}
}

// RegistrationCounts counts registrations by status and by month.
func RegistrationCounts(w Window) safequery.Query {
	return safequery.Query{
		Name:       "registration_counts",
		Collection: CollRegistrations,
		Pipeline: []bson.M{
			{"$group": bson.M{
				"_id":       nil,
				"total":     bson.M{"$sum": 1},
				"approved":  countIf(statusIs(status.Approved)),
				"pending":   countIf(statusIs(status.Pending)),
				"rejected":  countIf(statusIs(status.Rejected)),
				"thisMonth": countIf(since("createdAt", w.MonthStart)),
				"lastMonth": countIf(between("createdAt", w.PrevMonth, w.MonthStart)),
			}},
		},
	}
}

// PaymentsByMonth sums payments per month since the trend start.
func PaymentsByMonth(w Window) safequery.Query {
	return safequery.Query{
		Name:       "payments_by_month",
		Collection: CollPayments,
		Pipeline: []bson.M{
			{"$match": bson.M{"paidAt": bson.M{"$gte": w.TrendStart}}},
			{"$group": bson.M{"_id": monthKey("paidAt"), "amount": bson.M{"$sum": "$amount"}}},
			{"$sort": bson.M{"_id": 1}},
		},
	}
}

// BillingByMonth sums dues billed per period since the trend start.
func BillingByMonth(w Window) safequery.Query {
	return safequery.Query{
		Name:       "billing_by_month",
		Collection: CollDuesLedger,
		Pipeline: []bson.M{
			{"$match": bson.M{"period": bson.M{"$gte": w.TrendStart}}},
			{"$group": bson.M{"_id": monthKey("period"), "amount": bson.M{"$sum": "$amount"}}},
			{"$sort": bson.M{"_id": 1}},
		},
	}
}

// CollectionsByCompany sums payments and paying members per company since
// the trend start.
func CollectionsByCompany(w Window) safequery.Query {
	return safequery.Query{
		Name:       "collections_by_company",
		Collection: CollPayments,
		Pipeline: []bson.M{
			{"$match": bson.M{"paidAt": bson.M{"$gte": w.TrendStart}}},
			{"$group": bson.M{
				"_id":       companyKey,
				"collected": bson.M{"$sum": "$amount"},
				"payers":    bson.M{"$addToSet": "$memberId"},
			}},
			{"$project": bson.M{"collected": 1, "contributors": bson.M{"$size": "$payers"}}},
			{"$match": bson.M{"_id": bson.M{"$ne": ""}}},
		},
	}
}

// BillingByCompany sums dues billed per company since the trend start.
func BillingByCompany(w Window) safequery.Query {
	return safequery.Query{
		Name:       "billing_by_company",
		Collection: CollDuesLedger,
		Pipeline: []bson.M{
			{"$match": bson.M{"period": bson.M{"$gte": w.TrendStart}}},
			{"$group": bson.M{"_id": companyKey, "billed": bson.M{"$sum": "$amount"}}},
			{"$match": bson.M{"_id": bson.M{"$ne": ""}}},
		},
	}
}

// PopulatedCollections returns one row per tracked collection holding at
// least one document.
func PopulatedCollections() safequery.Query {
	probe := func(coll string) []bson.M {
		return []bson.M{
			{"$limit": 1},
			{"$project": bson.M{"_id": 0, "collection": bson.M{"$literal": coll}}},
		}
	}
	pipeline := probe(TrackedCollections[0])
	for _, coll := range TrackedCollections[1:] {
		pipeline = append(pipeline, bson.M{"$unionWith": bson.M{"coll": coll, "pipeline": probe(coll)}})
	}
	return safequery.Query{
		Name:       "populated_collections",
		Collection: TrackedCollections[0],
		Pipeline:   pipeline,
	}
}

// StorageStats reads dbStats.
func StorageStats() safequery.Query {
	return safequery.Query{
		Name:    "db_stats",
		Command: bson.D{{Key: "dbStats", Value: 1}},
	}
}

// ServerStatus reads the uptime and operation counters of serverStatus.
func ServerStatus() safequery.Query {
	return safequery.Query{
		Name: "server_status",
		Command: bson.D{
			{Key: "serverStatus", Value: 1},
			{Key: "repl", Value: 0},
			{Key: "metrics", Value: 0},
			{Key: "locks", Value: 0},
		},
	}
}

// Setting reads one app_settings document by key.
func Setting(key string) safequery.Query {
	return safequery.Query{
		Name:       "setting_" + key,
		Collection: CollSettings,
		Pipeline: []bson.M{
			{"$match": bson.M{"key": key}},
			{"$limit": 1},
			{"$project": bson.M{"_id": 0, "key": 1, "value": 1}},
		},
	}
}
