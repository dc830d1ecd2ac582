package core

import "sort"

// DailyTotal is the sum of all expense amounts sharing one calendar date.
type DailyTotal struct {
	Date  Date
	Total Money
}

// CategorySummary aggregates one category over a set of expenses.
type CategorySummary struct {
	Category Category
	Total    Money
	Count    int
}

// DailyTotals groups expenses by date and sums amounts per group, sorted by
// ascending date. Dates with no expenses are absent; callers that need a
// dense series must fill gaps themselves (see FillWeek).
func DailyTotals(expenses []Expense) []DailyTotal {
	byDate := make(map[string]*DailyTotal)
	for _, e := range expenses {
		key := e.Date.ISO()
		dt, ok := byDate[key]
		if !ok {
			dt = &DailyTotal{Date: e.Date}
			byDate[key] = dt
		}
		dt.Total = dt.Total.Add(e.Amount)
	}
	totals := make([]DailyTotal, 0, len(byDate))
	for _, dt := range byDate {
		totals = append(totals, *dt)
	}
	sort.Slice(totals, func(i, j int) bool {
		return totals[i].Date.Before(totals[j].Date.Time)
	})
	return totals
}

// CategoryTotals groups expenses by category, computing per-category total
// and count, sorted by descending total. Ties keep first-seen order.
func CategoryTotals(expenses []Expense) []CategorySummary {
	index := make(map[Category]int)
	var sums []CategorySummary
	for _, e := range expenses {
		i, ok := index[e.Category]
		if !ok {
			i = len(sums)
			index[e.Category] = i
			sums = append(sums, CategorySummary{Category: e.Category})
		}
		sums[i].Total = sums[i].Total.Add(e.Amount)
		sums[i].Count++
	}
	sort.SliceStable(sums, func(i, j int) bool {
		return sums[i].Total.Cents > sums[j].Total.Cents
	})
	return sums
}

// FillWeek expands sparse daily totals into a dense series covering every
// calendar day in [start, end] inclusive, zero-filling missing days.
func FillWeek(totals []DailyTotal, start, end Date) []DailyTotal {
	byDate := make(map[string]Money, len(totals))
	for _, dt := range totals {
		byDate[dt.Date.ISO()] = dt.Total
	}
	var dense []DailyTotal
	for d := start; !d.After(end.Time); d = d.AddDays(1) {
		dense = append(dense, DailyTotal{Date: d, Total: byDate[d.ISO()]})
	}
	return dense
}

// FilterRange returns the expenses whose date falls inside r, keeping order.
func FilterRange(expenses []Expense, r DateRange) []Expense {
	if r.IsZero() {
		return expenses
	}
	var out []Expense
	for _, e := range expenses {
		if r.Contains(e.Date) {
			out = append(out, e)
		}
	}
	return out
}

// Total sums all expense amounts.
func Total(expenses []Expense) Money {
	var sum Money
	for _, e := range expenses {
		sum = sum.Add(e.Amount)
	}
	return sum
}

// WeekStart returns the Monday on or before d.
func WeekStart(d Date) Date {
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDays(-offset)
}
