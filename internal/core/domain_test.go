package core

import (
	"errors"
	"testing"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		input   string
		want    Category
		wantErr bool
	}{
		{"food", CategoryFood, false},
		{"transport", CategoryTransport, false},
		{"bills", CategoryBills, false},
		{"other", CategoryOther, false},
		{"  FOOD  ", CategoryFood, false},
		{"", CategoryOther, false},
		{"   ", CategoryOther, false},
		{"groceries", CategoryOther, true},
	}

	for _, tt := range tests {
		got, err := ParseCategory(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseCategory(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseCategory(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestCategoriesOrder(t *testing.T) {
	want := []Category{CategoryFood, CategoryTransport, CategoryBills, CategoryOther}
	got := Categories()
	if len(got) != len(want) {
		t.Fatalf("Categories() returned %d categories, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Categories()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCategoryEmoji(t *testing.T) {
	tests := map[Category]string{
		CategoryFood:      "🍔",
		CategoryTransport: "🚗",
		CategoryBills:     "💡",
		CategoryOther:     "📦",
	}
	for c, want := range tests {
		if got := c.Emoji(); got != want {
			t.Errorf("%s.Emoji() = %q, want %q", c, got, want)
		}
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-03-15")
	if err != nil {
		t.Fatalf("ParseDate() error = %v", err)
	}
	if d.ISO() != "2025-03-15" {
		t.Errorf("ISO() = %q, want 2025-03-15", d.ISO())
	}

	if _, err := ParseDate("15/03/2025"); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("ParseDate with wrong format error = %v, want ErrInvalidDate", err)
	}
	if _, err := ParseDate(""); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("ParseDate with empty input error = %v, want ErrInvalidDate", err)
	}
}

func TestDateAddDays(t *testing.T) {
	d := NewDate(2025, 3, 31)
	if got := d.AddDays(1).ISO(); got != "2025-04-01" {
		t.Errorf("AddDays(1) = %q, want 2025-04-01", got)
	}
	if got := d.AddDays(-31).ISO(); got != "2025-02-28" {
		t.Errorf("AddDays(-31) = %q, want 2025-02-28", got)
	}
}

func TestDateRangeContains(t *testing.T) {
	r := DateRange{Start: NewDate(2025, 1, 10), End: NewDate(2025, 1, 20)}

	tests := []struct {
		date Date
		want bool
	}{
		{NewDate(2025, 1, 10), true},
		{NewDate(2025, 1, 15), true},
		{NewDate(2025, 1, 20), true},
		{NewDate(2025, 1, 9), false},
		{NewDate(2025, 1, 21), false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.date); got != tt.want {
			t.Errorf("Contains(%s) = %v, want %v", tt.date.ISO(), got, tt.want)
		}
	}

	open := DateRange{Start: NewDate(2025, 1, 10)}
	if !open.Contains(NewDate(2030, 12, 31)) {
		t.Error("open-ended range should contain any later date")
	}
	if (DateRange{}).IsZero() != true {
		t.Error("empty range should be zero")
	}
}

func TestExpenseValidate(t *testing.T) {
	valid := Expense{
		Amount:      Money{Cents: 1500},
		Category:    CategoryFood,
		Date:        NewDate(2025, 6, 1),
		Description: "Lunch",
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate() on valid expense = %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Expense)
		want   error
	}{
		{"zero amount", func(e *Expense) { e.Amount = Money{} }, ErrInvalidAmount},
		{"negative amount", func(e *Expense) { e.Amount = Money{Cents: -100} }, ErrInvalidAmount},
		{"unknown category", func(e *Expense) { e.Category = "misc" }, ErrInvalidCategory},
		{"zero date", func(e *Expense) { e.Date = Date{} }, ErrInvalidDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := valid
			tt.mutate(&e)
			if err := e.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}

	long := valid
	for len(long.Description) <= 500 {
		long.Description += "aaaaaaaaaa"
	}
	if err := long.Validate(); err == nil {
		t.Error("Validate() should reject descriptions over 500 characters")
	}
}
