package reports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"floor-manager-backend/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func income(day time.Time, category string, amount float64) models.Transaction {
	return models.Transaction{Type: models.TransactionIncome, Category: category, Amount: amount, Date: day}
}

func expense(day time.Time, category string, amount float64) models.Transaction {
	return models.Transaction{Type: models.TransactionExpense, Category: category, Amount: amount, Date: day}
}

func TestResolveRange_Presets(t *testing.T) {
	now := time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		preset    string
		wantStart time.Time
		wantDays  int
	}{
		{"today", date(2026, 3, 15), 1},
		{"week", date(2026, 3, 9), 7},
		{"month", date(2026, 2, 16), 28},
		{"year", date(2025, 3, 16), 365},
	}

	for _, tt := range tests {
		t.Run(tt.preset, func(t *testing.T) {
			r, err := ResolveRange(tt.preset, now, time.Time{}, time.Time{})
			require.NoError(t, err)
			assert.Equal(t, tt.wantStart, r.Start)
			assert.Equal(t, tt.wantDays, r.Days())
		})
	}
}

func TestResolveRange_Custom(t *testing.T) {
	now := time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC)

	r, err := ResolveRange("custom", now, date(2026, 1, 10), date(2026, 1, 20))
	require.NoError(t, err)
	assert.Equal(t, date(2026, 1, 10), r.Start)
	// End bound covers the whole last day.
	assert.True(t, r.End.After(date(2026, 1, 20).Add(23*time.Hour)))
	assert.Equal(t, 11, r.Days())

	_, err = ResolveRange("custom", now, time.Time{}, date(2026, 1, 20))
	assert.Error(t, err)

	_, err = ResolveRange("custom", now, date(2026, 1, 20), date(2026, 1, 10))
	assert.Error(t, err)

	_, err = ResolveRange("quarter", now, time.Time{}, time.Time{})
	assert.Error(t, err)
}

func TestFilter_InclusiveBounds(t *testing.T) {
	r := Range{Start: date(2026, 3, 10), End: date(2026, 3, 12).Add(24*time.Hour - time.Nanosecond)}

	txs := []models.Transaction{
		income(date(2026, 3, 9), "food", 10),  // before
		income(date(2026, 3, 10), "food", 20), // first day, inclusive
		income(date(2026, 3, 12).Add(23*time.Hour), "food", 30), // last day, inclusive
		income(date(2026, 3, 13), "food", 40),                   // after
	}

	got := Filter(txs, r)
	require.Len(t, got, 2)
	assert.Equal(t, 20.0, got[0].Amount)
	assert.Equal(t, 30.0, got[1].Amount)
}

func TestSeries_FiveDayRangeHasFiveDailyPoints(t *testing.T) {
	r := Range{Start: date(2026, 3, 10), End: date(2026, 3, 14).Add(24*time.Hour - time.Nanosecond)}

	txs := []models.Transaction{
		income(date(2026, 3, 10).Add(9*time.Hour), "food", 100),
		income(date(2026, 3, 13), "drinks", 50),
		expense(date(2026, 3, 13), "supplies", 30),
	}

	series := Series(txs, r)
	require.Len(t, series, 5)

	// One point per calendar day, chronological, zero-filled.
	for i, b := range series {
		assert.Equal(t, date(2026, 3, 10+i), b.Start, "bucket %d", i)
	}
	assert.Equal(t, 100.0, series[0].Income)
	assert.Equal(t, 0.0, series[1].Income)
	assert.Equal(t, 0.0, series[2].Income)
	assert.Equal(t, 50.0, series[3].Income)
	assert.Equal(t, 30.0, series[3].Expense)
	assert.Equal(t, 0.0, series[4].Income)
}

func TestSeries_MidRangeUsesWeeklyBuckets(t *testing.T) {
	// 20 days -> 3 weekly buckets.
	r := Range{Start: date(2026, 3, 1), End: date(2026, 3, 20).Add(24*time.Hour - time.Nanosecond)}

	txs := []models.Transaction{
		income(date(2026, 3, 2), "food", 10),
		income(date(2026, 3, 9), "food", 20),
		income(date(2026, 3, 16), "food", 40),
	}

	series := Series(txs, r)
	require.Len(t, series, 3)
	assert.Equal(t, 10.0, series[0].Income)
	assert.Equal(t, 20.0, series[1].Income)
	assert.Equal(t, 40.0, series[2].Income)
	assert.Equal(t, date(2026, 3, 1), series[0].Start)
	assert.Equal(t, date(2026, 3, 8), series[1].Start)
	assert.Equal(t, date(2026, 3, 15), series[2].Start)
}

func TestSeries_LongRangeUsesMonthlyBuckets(t *testing.T) {
	r := Range{Start: date(2026, 1, 15), End: date(2026, 4, 10).Add(24*time.Hour - time.Nanosecond)}

	txs := []models.Transaction{
		income(date(2026, 1, 20), "food", 10),
		income(date(2026, 3, 5), "food", 30),
	}

	series := Series(txs, r)
	require.Len(t, series, 4) // Jan, Feb, Mar, Apr
	assert.Equal(t, "Jan 2026", series[0].Label)
	assert.Equal(t, 10.0, series[0].Income)
	assert.Equal(t, 0.0, series[1].Income)
	assert.Equal(t, 30.0, series[2].Income)
	assert.Equal(t, 0.0, series[3].Income)
}

func TestIncomeByCategory(t *testing.T) {
	txs := []models.Transaction{
		income(date(2026, 3, 1), "food", 300),
		income(date(2026, 3, 2), "drinks", 100),
		income(date(2026, 3, 3), "food", 100),
		expense(date(2026, 3, 3), "supplies", 500), // expenses don't count
	}

	shares := IncomeByCategory(txs)
	require.Len(t, shares, 2)

	assert.Equal(t, "food", shares[0].Category)
	assert.Equal(t, 400.0, shares[0].Amount)
	assert.InDelta(t, 80.0, shares[0].Percent, 0.001)

	assert.Equal(t, "drinks", shares[1].Category)
	assert.InDelta(t, 20.0, shares[1].Percent, 0.001)
}

func TestIncomeByCategory_NoIncome(t *testing.T) {
	txs := []models.Transaction{expense(date(2026, 3, 1), "supplies", 100)}
	assert.Nil(t, IncomeByCategory(txs))
}

func TestTotals(t *testing.T) {
	txs := []models.Transaction{
		income(date(2026, 3, 1), "food", 100),
		income(date(2026, 3, 2), "food", 50),
		expense(date(2026, 3, 2), "rent", 80),
	}
	in, out := Totals(txs)
	assert.Equal(t, 150.0, in)
	assert.Equal(t, 80.0, out)
}
