package derive

import "math"

const (
	minLatencyMs = 40
	maxLatencyMs = 800

	uptimeWindowSeconds = 30 * 24 * 3600
	maxUptimePercent    = 99.9
)

// DatabaseHealth is the share of tracked collections holding data. It is nil
// when nothing is tracked or the population query failed.
func DatabaseHealth(populated, tracked float64, queryFailed bool) *float64 {
	if queryFailed {
		return nil
	}
	return Percent(math.Min(populated, tracked), tracked)
}

// QueriesPerSecond averages the server's operation counters over its uptime.
func QueriesPerSecond(totalOps, uptimeSeconds float64) float64 {
	if uptimeSeconds <= 0 || totalOps <= 0 {
		return 0
	}
	return Round2(totalOps / uptimeSeconds)
}

// SimulatedLatencyMs turns a query rate into an illustrative response time,
// clamp(1000/qps, 40, 800). It is a heuristic proxy shown on the dashboard,
// not a measured latency.
func SimulatedLatencyMs(qps float64) float64 {
	if qps <= 0 {
		return maxLatencyMs
	}
	return Round2(math.Max(minLatencyMs, math.Min(maxLatencyMs, 1000/qps)))
}

// UptimePercent expresses uptime against a rolling 30-day window, capped at 99.9.
func UptimePercent(uptimeSeconds float64) float64 {
	if uptimeSeconds <= 0 {
		return 0
	}
	return Round2(math.Min(maxUptimePercent, uptimeSeconds/uptimeWindowSeconds*100))
}

// Health statuses for the systemHealth section.
const (
	HealthHealthy  = "healthy"
	HealthDegraded = "degraded"
	HealthUnknown  = "unknown"
)

// HealthStatus summarizes database health and uptime into one word.
func HealthStatus(dbHealth *float64, uptimeSeconds float64) string {
	switch {
	case dbHealth == nil && uptimeSeconds <= 0:
		return HealthUnknown
	case dbHealth != nil && *dbHealth >= 90 && uptimeSeconds > 0:
		return HealthHealthy
	default:
		return HealthDegraded
	}
}

// AIPercent reads an AI-assist metric as a percentage. Values with magnitude
// above 1 are already percentages; anything else, including exactly 1 and
// -1, is a fraction.
func AIPercent(v float64) float64 {
	if math.Abs(v) > 1 {
		return Round2(v)
	}
	return Round2(v * 100)
}
