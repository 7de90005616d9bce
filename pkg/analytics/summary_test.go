package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRevenueSplit(t *testing.T) {
	rows := []StatusTotal{
		{Status: "paid", Total: 100},
		{Status: "pending", Total: 50},
		{Status: "draft", Total: 25},
	}
	total, outstanding := RevenueSplit(rows)
	assert.Equal(t, 100.0, total)
	assert.Equal(t, 75.0, outstanding)
}

func TestRevenueSplitCountsLegacyOverdueAsOutstanding(t *testing.T) {
	total, outstanding := RevenueSplit([]StatusTotal{
		{Status: "overdue", Total: 40},
		{Status: "paid", Total: 10},
	})
	assert.Equal(t, 10.0, total)
	assert.Equal(t, 40.0, outstanding)
}

func TestRevenueSplitEmpty(t *testing.T) {
	total, outstanding := RevenueSplit(nil)
	assert.Zero(t, total)
	assert.Zero(t, outstanding)
}

func TestMonthLabelIsUnpadded(t *testing.T) {
	assert.Equal(t, "3/2025", MonthLabel(2025, 3))
	assert.Equal(t, "12/2024", MonthLabel(2024, 12))
}

func TestMonthlySeriesSortsAcrossYearBoundary(t *testing.T) {
	series := MonthlySeries([]MonthBucket{
		{Year: 2025, Month: 2, Total: 300},
		{Year: 2024, Month: 11, Total: 100},
		{Year: 2025, Month: 1, Total: 200},
	})
	assert.Equal(t, []MonthRevenue{
		{Name: "11/2024", Revenue: 100},
		{Name: "1/2025", Revenue: 200},
		{Name: "2/2025", Revenue: 300},
	}, series)
}

func TestTopClientsTruncatesToFive(t *testing.T) {
	rows := []ClientRevenue{
		{ClientName: "f", TotalRevenue: 5},
		{ClientName: "a", TotalRevenue: 50},
		{ClientName: "c", TotalRevenue: 30},
		{ClientName: "e", TotalRevenue: 10},
		{ClientName: "b", TotalRevenue: 40},
		{ClientName: "d", TotalRevenue: 20},
	}
	ranked := TopClients(rows)
	assert.Len(t, ranked, 5)
	assert.Equal(t, "a", ranked[0].ClientName)
	assert.Equal(t, 50.0, ranked[0].TotalRevenue)
	assert.Equal(t, "e", ranked[4].ClientName)
	for _, r := range ranked {
		assert.NotEqual(t, "f", r.ClientName, "lowest-revenue client must be excluded")
	}
}

func TestTopClientsStableOnTies(t *testing.T) {
	ranked := TopClients([]ClientRevenue{
		{ClientName: "first", TotalRevenue: 10},
		{ClientName: "second", TotalRevenue: 10},
	})
	assert.Equal(t, "first", ranked[0].ClientName)
	assert.Equal(t, "second", ranked[1].ClientName)
}
