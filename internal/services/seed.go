package services

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"

	"gastos/internal/amqp"
	"gastos/internal/core"
)

const seedDays = 30

var sampleDescriptions = map[core.Category][]string{
	core.CategoryFood:      {"Lunch at restaurant", "Grocery shopping", "Coffee and snacks", "Dinner delivery", "Breakfast"},
	core.CategoryTransport: {"Grab ride", "Gas/Fuel", "Parking fee", "Bus fare", "Jeepney fare"},
	core.CategoryBills:     {"Electric bill", "Water bill", "Internet bill", "Phone load", "Subscription"},
	core.CategoryOther:     {"Gift for friend", "School supplies", "Medicine", "Household items", "Entertainment"},
}

// Peso ranges per category, in whole pesos.
var sampleAmountRanges = map[core.Category][2]int64{
	core.CategoryFood:      {50, 500},
	core.CategoryTransport: {20, 300},
	core.CategoryBills:     {200, 2000},
	core.CategoryOther:     {100, 1000},
}

// SeedSampleData populates the store with randomized demo expenses covering
// the past 30 days, 1-4 per day. It refuses to touch a non-empty store and
// reports seeded=false in that case.
func (s *ExpenseService) SeedSampleData(ctx context.Context) (created int64, seeded bool, err error) {
	count, err := s.storage.CountExpenses(ctx)
	if err != nil {
		return 0, false, fmt.Errorf("count expenses: %w", err)
	}
	if count > 0 {
		slog.WarnContext(ctx, "Sample data requested on non-empty store", "existing", count)
		return 0, false, nil
	}

	categories := core.Categories()
	today := core.Today()
	for daysAgo := 0; daysAgo < seedDays; daysAgo++ {
		date := today.AddDays(-daysAgo)
		perDay := 1 + rand.Intn(4)
		for i := 0; i < perDay; i++ {
			cat := categories[rand.Intn(len(categories))]
			bounds := sampleAmountRanges[cat]
			descs := sampleDescriptions[cat]
			e := core.Expense{
				Amount:      core.Money{Cents: randomCents(bounds[0], bounds[1])},
				Category:    cat,
				Date:        date,
				Description: descs[rand.Intn(len(descs))],
			}
			if _, err := s.storage.CreateExpense(ctx, e); err != nil {
				return created, created > 0, fmt.Errorf("seed expense: %w", err)
			}
			created++
		}
	}

	s.publishEvent(ctx, amqp.EventSeeded, 0)
	slog.InfoContext(ctx, "Sample data seeded", "created", created, "days", seedDays)
	return created, true, nil
}

// randomCents picks a uniform amount between min and max pesos, with random
// centavos.
func randomCents(min, max int64) int64 {
	pesos := min + rand.Int63n(max-min+1)
	return pesos*100 + rand.Int63n(100)
}
