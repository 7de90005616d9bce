// Package analytics assembles the dashboard summary from grouped aggregation
// rows. The SQL passes live with the HTTP handlers; everything here is pure so
// the aggregate semantics can be tested without a database.
package analytics

import (
	"fmt"
	"sort"

	"quickbill/pkg/invoicing"
)

// TopClientLimit caps the client ranking returned by the summary.
const TopClientLimit = 5

// StatusTotal is one row of a grouped sum of totalAmount by persisted status.
type StatusTotal struct {
	Status string
	Total  float64
}

// StatusCount is one row of a grouped invoice count by persisted status.
type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// MonthBucket is one row of a grouped sum of paid revenue by calendar month.
type MonthBucket struct {
	Year  int
	Month int
	Total float64
}

// MonthRevenue is a chart-ready point in the monthly revenue series.
type MonthRevenue struct {
	Name    string  `json:"name"`
	Revenue float64 `json:"revenue"`
}

// ClientRevenue is one entry of the top-client ranking.
type ClientRevenue struct {
	ClientName   string  `json:"clientName"`
	TotalRevenue float64 `json:"totalRevenue"`
}

// Summary is the full analytics payload for one owner.
type Summary struct {
	TotalRevenue       float64         `json:"totalRevenue"`
	OutstandingRevenue float64         `json:"outstandingRevenue"`
	StatusBreakdown    []StatusCount   `json:"statusBreakdown"`
	MonthlyRevenue     []MonthRevenue  `json:"monthlyRevenue"`
	TopClients         []ClientRevenue `json:"topClients"`
}

// RevenueSplit derives the paid and outstanding totals from a per-status sum.
// Draft invoices count as outstanding alongside pending and legacy overdue
// rows; that policy is inherited as-is.
func RevenueSplit(rows []StatusTotal) (totalRevenue, outstandingRevenue float64) {
	for _, row := range rows {
		switch row.Status {
		case invoicing.StatusPaid:
			totalRevenue += row.Total
		case invoicing.StatusPending, invoicing.StatusOverdue, invoicing.StatusDraft:
			outstandingRevenue += row.Total
		}
	}
	return totalRevenue, outstandingRevenue
}

// MonthLabel formats a month bucket the way the dashboard chart expects:
// unpadded month over full year, e.g. "3/2025".
func MonthLabel(year, month int) string {
	return fmt.Sprintf("%d/%d", month, year)
}

// MonthlySeries orders the buckets ascending by (year, month) and attaches
// chart labels.
func MonthlySeries(buckets []MonthBucket) []MonthRevenue {
	sorted := make([]MonthBucket, len(buckets))
	copy(sorted, buckets)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Year != sorted[j].Year {
			return sorted[i].Year < sorted[j].Year
		}
		return sorted[i].Month < sorted[j].Month
	})
	series := make([]MonthRevenue, 0, len(sorted))
	for _, b := range sorted {
		series = append(series, MonthRevenue{Name: MonthLabel(b.Year, b.Month), Revenue: b.Total})
	}
	return series
}

// TopClients orders the ranking by revenue descending and truncates it to
// TopClientLimit. Ties keep their incoming order; no tiebreak is documented.
func TopClients(rows []ClientRevenue) []ClientRevenue {
	ranked := make([]ClientRevenue, len(rows))
	copy(ranked, rows)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalRevenue > ranked[j].TotalRevenue
	})
	if len(ranked) > TopClientLimit {
		ranked = ranked[:TopClientLimit]
	}
	return ranked
}
