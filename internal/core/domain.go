package core

import (
	"errors"
	"strings"
	"time"
)

const (
	CategoryFood      Category = "food"
	CategoryTransport Category = "transport"
	CategoryBills     Category = "bills"
	CategoryOther     Category = "other"
)

type (
	// Category is one of the fixed expense categories.
	Category string

	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	Expense struct {
		ID          int64
		Amount      Money
		Category    Category
		Date        Date
		Description string
		CreatedAt   time.Time
		UpdatedAt   time.Time
	}

	// DateRange is an inclusive [Start, End] date filter. A zero bound is
	// unbounded on that side.
	DateRange struct {
		Start Date
		End   Date
	}
)

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidCategory = errors.New("invalid category")
	ErrInvalidDate     = errors.New("invalid date")
)

// Categories returns all categories in display order.
func Categories() []Category {
	return []Category{CategoryFood, CategoryTransport, CategoryBills, CategoryOther}
}

// ParseCategory maps a form value to a Category. The empty string falls back
// to CategoryOther.
func ParseCategory(s string) (Category, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return CategoryOther, nil
	}
	c := Category(s)
	if !c.Valid() {
		return CategoryOther, ErrInvalidCategory
	}
	return c, nil
}

func (c Category) Valid() bool {
	switch c {
	case CategoryFood, CategoryTransport, CategoryBills, CategoryOther:
		return true
	}
	return false
}

// DisplayName returns the human-readable category name.
func (c Category) DisplayName() string {
	switch c {
	case CategoryFood:
		return "Food"
	case CategoryTransport:
		return "Transport"
	case CategoryBills:
		return "Bills"
	default:
		return "Other"
	}
}

// Emoji returns the glyph shown next to the category name.
func (c Category) Emoji() string {
	switch c {
	case CategoryFood:
		return "🍔"
	case CategoryTransport:
		return "🚗"
	case CategoryBills:
		return "💡"
	default:
		return "📦"
	}
}

// NewDate creates a Date from year, month, day at midnight UTC.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar date.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// Today returns the current calendar date.
func Today() Date {
	return DateOf(time.Now())
}

// ISO renders the date as YYYY-MM-DD, the storage and form wire format.
func (d Date) ISO() string {
	return d.Format("2006-01-02")
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

// AddDays returns the date shifted by n calendar days.
func (d Date) AddDays(n int) Date {
	return Date{Time: d.Time.AddDate(0, 0, n)}
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Contains reports whether d falls inside the range. Zero bounds match
// everything on their side.
func (r DateRange) Contains(d Date) bool {
	if !r.Start.IsZero() && d.Before(r.Start.Time) {
		return false
	}
	if !r.End.IsZero() && d.After(r.End.Time) {
		return false
	}
	return true
}

// IsZero reports whether the range is unbounded on both sides.
func (r DateRange) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (e Expense) Validate() error {
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if !e.Category.Valid() {
		return ErrInvalidCategory
	}
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if len(e.Description) > 500 {
		return errors.New("description too long (max 500 characters)")
	}
	return nil
}
