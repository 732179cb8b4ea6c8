package reports

import (
	"errors"
	"sort"
	"time"

	"floor-manager-backend/internal/models"
)

// Range is an inclusive [Start, End] date range.
type Range struct {
	Start time.Time
	End   time.Time
}

// Days returns the number of calendar days the range spans, inclusive.
func (r Range) Days() int {
	start := startOfDay(r.Start)
	end := startOfDay(r.End)
	return int(end.Sub(start).Hours()/24) + 1
}

// ResolveRange turns a preset (today, week, month, year, custom) into
// concrete inclusive bounds. The relative presets always end at the end
// of the current day. Custom requires both bounds; the end bound is
// stretched to the end of its day so a whole last day is included.
func ResolveRange(preset string, now time.Time, customStart, customEnd time.Time) (Range, error) {
	end := endOfDay(now)

	switch preset {
	case "today":
		return Range{Start: startOfDay(now), End: end}, nil
	case "week":
		return Range{Start: startOfDay(now.AddDate(0, 0, -6)), End: end}, nil
	case "month":
		return Range{Start: startOfDay(now.AddDate(0, -1, 1)), End: end}, nil
	case "year":
		return Range{Start: startOfDay(now.AddDate(-1, 0, 1)), End: end}, nil
	case "custom":
		if customStart.IsZero() || customEnd.IsZero() {
			return Range{}, errors.New("custom range requires both start and end dates")
		}
		if customEnd.Before(customStart) {
			return Range{}, errors.New("end date must not be before start date")
		}
		return Range{Start: startOfDay(customStart), End: endOfDay(customEnd)}, nil
	default:
		return Range{}, errors.New("unknown range preset")
	}
}

// Filter returns the transactions strictly within the inclusive bounds
// of r, preserving input order.
func Filter(txs []models.Transaction, r Range) []models.Transaction {
	var out []models.Transaction
	for _, tx := range txs {
		if tx.Date.Before(r.Start) || tx.Date.After(r.End) {
			continue
		}
		out = append(out, tx)
	}
	return out
}

// Bucket is one point of the revenue/expense time series.
type Bucket struct {
	Label   string    `json:"label"`
	Start   time.Time `json:"start"`
	Income  float64   `json:"income"`
	Expense float64   `json:"expense"`
}

// Series buckets transactions over r by day (range of at most 7 days),
// by week (at most 31 days) or by month otherwise. Every period in the
// range gets a point even when no transaction falls into it, so charts
// never have holes.
func Series(txs []models.Transaction, r Range) []Bucket {
	days := r.Days()
	switch {
	case days <= 7:
		return dailySeries(txs, r, days)
	case days <= 31:
		return weeklySeries(txs, r, days)
	default:
		return monthlySeries(txs, r)
	}
}

func dailySeries(txs []models.Transaction, r Range, days int) []Bucket {
	buckets := make([]Bucket, days)
	start := startOfDay(r.Start)
	for i := range buckets {
		day := start.AddDate(0, 0, i)
		buckets[i] = Bucket{Label: day.Format("2006-01-02"), Start: day}
	}

	for _, tx := range Filter(txs, r) {
		idx := int(startOfDay(tx.Date).Sub(start).Hours() / 24)
		if idx < 0 || idx >= len(buckets) {
			continue
		}
		add(&buckets[idx], tx)
	}
	return buckets
}

func weeklySeries(txs []models.Transaction, r Range, days int) []Bucket {
	weeks := (days + 6) / 7
	buckets := make([]Bucket, weeks)
	start := startOfDay(r.Start)
	for i := range buckets {
		week := start.AddDate(0, 0, i*7)
		buckets[i] = Bucket{Label: "Week of " + week.Format("Jan 2"), Start: week}
	}

	for _, tx := range Filter(txs, r) {
		idx := int(startOfDay(tx.Date).Sub(start).Hours()/24) / 7
		if idx < 0 || idx >= len(buckets) {
			continue
		}
		add(&buckets[idx], tx)
	}
	return buckets
}

func monthlySeries(txs []models.Transaction, r Range) []Bucket {
	start := time.Date(r.Start.Year(), r.Start.Month(), 1, 0, 0, 0, 0, r.Start.Location())
	end := time.Date(r.End.Year(), r.End.Month(), 1, 0, 0, 0, 0, r.End.Location())

	var buckets []Bucket
	index := make(map[string]int)
	for m := start; !m.After(end); m = m.AddDate(0, 1, 0) {
		index[m.Format("2006-01")] = len(buckets)
		buckets = append(buckets, Bucket{Label: m.Format("Jan 2006"), Start: m})
	}

	for _, tx := range Filter(txs, r) {
		idx, ok := index[tx.Date.Format("2006-01")]
		if !ok {
			continue
		}
		add(&buckets[idx], tx)
	}
	return buckets
}

func add(b *Bucket, tx models.Transaction) {
	switch tx.Type {
	case models.TransactionIncome:
		b.Income += tx.Amount
	case models.TransactionExpense:
		b.Expense += tx.Amount
	}
}

// CategoryShare is one slice of the income-by-category breakdown.
type CategoryShare struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Percent  float64 `json:"percent"`
}

// IncomeByCategory sums income transactions per category and expresses
// each as a percentage of total income, largest first.
func IncomeByCategory(txs []models.Transaction) []CategoryShare {
	sums := make(map[string]float64)
	var total float64
	for _, tx := range txs {
		if tx.Type != models.TransactionIncome {
			continue
		}
		sums[tx.Category] += tx.Amount
		total += tx.Amount
	}
	if total == 0 {
		return nil
	}

	shares := make([]CategoryShare, 0, len(sums))
	for cat, amount := range sums {
		shares = append(shares, CategoryShare{
			Category: cat,
			Amount:   amount,
			Percent:  amount / total * 100,
		})
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Amount != shares[j].Amount {
			return shares[i].Amount > shares[j].Amount
		}
		return shares[i].Category < shares[j].Category
	})
	return shares
}

// Totals sums income and expense over txs.
func Totals(txs []models.Transaction) (income, expense float64) {
	for _, tx := range txs {
		switch tx.Type {
		case models.TransactionIncome:
			income += tx.Amount
		case models.TransactionExpense:
			expense += tx.Amount
		}
	}
	return income, expense
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return startOfDay(t).Add(24*time.Hour - time.Nanosecond)
}
