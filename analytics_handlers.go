package main

import (
	"net/http"
	"time"

	"quickbill/models"
	"quickbill/pkg/analytics"
	"quickbill/pkg/invoicing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// analyticsSummaryHandler aggregates the dashboard figures for the
// authenticated owner. All sums run in the database; the pure assembly
// (splits, labels, ordering, truncation) lives in pkg/analytics.
func analyticsSummaryHandler(c *gin.Context) {
	userID := currentUserID(c)
	ctx := c.Request.Context()

	var statusTotals []analytics.StatusTotal
	err := db.WithContext(ctx).Model(&models.Invoice{}).
		Select("status, COALESCE(SUM(total_amount), 0) AS total").
		Where("user_id = ?", userID).
		Group("status").
		Scan(&statusTotals).Error
	if err != nil {
		log.Error().Err(err).Uint("user_id", userID).Msg("analytics status totals failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "analytics query failed"})
		return
	}

	var statusCounts []analytics.StatusCount
	err = db.WithContext(ctx).Model(&models.Invoice{}).
		Select("status, COUNT(*) AS count").
		Where("user_id = ?", userID).
		Group("status").
		Scan(&statusCounts).Error
	if err != nil {
		log.Error().Err(err).Uint("user_id", userID).Msg("analytics status counts failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "analytics query failed"})
		return
	}

	since := time.Now().AddDate(0, -12, 0)
	var buckets []analytics.MonthBucket
	err = db.WithContext(ctx).Model(&models.Invoice{}).
		Select("EXTRACT(YEAR FROM created_at)::int AS year, EXTRACT(MONTH FROM created_at)::int AS month, COALESCE(SUM(total_amount), 0) AS total").
		Where("user_id = ? AND status = ? AND created_at >= ?", userID, invoicing.StatusPaid, since).
		Group("year, month").
		Scan(&buckets).Error
	if err != nil {
		log.Error().Err(err).Uint("user_id", userID).Msg("analytics monthly revenue failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "analytics query failed"})
		return
	}

	var topClients []analytics.ClientRevenue
	err = db.WithContext(ctx).Model(&models.Invoice{}).
		Select("clients.name AS client_name, COALESCE(SUM(invoices.total_amount), 0) AS total_revenue").
		Joins("JOIN clients ON clients.id = invoices.client_id").
		Where("invoices.user_id = ? AND invoices.status = ?", userID, invoicing.StatusPaid).
		Group("clients.id, clients.name").
		Order("total_revenue DESC").
		Limit(analytics.TopClientLimit).
		Scan(&topClients).Error
	if err != nil {
		log.Error().Err(err).Uint("user_id", userID).Msg("analytics top clients failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "analytics query failed"})
		return
	}

	if statusCounts == nil {
		statusCounts = make([]analytics.StatusCount, 0)
	}

	total, outstanding := analytics.RevenueSplit(statusTotals)
	summary := analytics.Summary{
		TotalRevenue:       total,
		OutstandingRevenue: outstanding,
		StatusBreakdown:    statusCounts,
		MonthlyRevenue:     analytics.MonthlySeries(buckets),
		TopClients:         analytics.TopClients(topClients),
	}
	c.JSON(http.StatusOK, summary)
}
