package core

import "testing"

func TestParseDecimalToCents(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{name: "whole number", input: "150", want: 15000},
		{name: "two decimals", input: "12.34", want: 1234},
		{name: "one decimal", input: "12.5", want: 1250},
		{name: "comma separator", input: "12,34", want: 1234},
		{name: "leading dot", input: ".50", want: 50},
		{name: "trailing dot", input: "12.", want: 1200},
		{name: "third decimal rounds up", input: "1.005", want: 101},
		{name: "third decimal rounds down", input: "1.004", want: 100},
		{name: "surrounding whitespace", input: "  42.00  ", want: 4200},
		{name: "max amount", input: "99999999.99", want: 9999999999},
		{name: "empty", input: "", wantErr: true},
		{name: "zero", input: "0", wantErr: true},
		{name: "zero with decimals", input: "0.00", wantErr: true},
		{name: "negative", input: "-5.00", wantErr: true},
		{name: "explicit plus sign", input: "+5.00", wantErr: true},
		{name: "not a number", input: "abc", wantErr: true},
		{name: "mixed digits and letters", input: "12a.50", wantErr: true},
		{name: "two separators", input: "1.2.3", wantErr: true},
		{name: "too large", input: "100000000", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDecimalToCents(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseDecimalToCents(%q) error = nil, want error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDecimalToCents(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseDecimalToCents(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseDecimalToCentsRoundTrip(t *testing.T) {
	// Centavo amounts must survive parse and format unchanged.
	inputs := map[string]string{
		"0.01":       "₱0.01",
		"19.99":      "₱19.99",
		"1234.56":    "₱1,234.56",
		"1000000":    "₱1,000,000.00",
		"9999999.09": "₱9,999,999.09",
	}
	for input, want := range inputs {
		cents, err := ParseDecimalToCents(input)
		if err != nil {
			t.Fatalf("ParseDecimalToCents(%q) error = %v", input, err)
		}
		if got := FormatPesos(cents); got != want {
			t.Errorf("FormatPesos(ParseDecimalToCents(%q)) = %q, want %q", input, got, want)
		}
	}
}

func TestFormatPesos(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{0, "₱0.00"},
		{5, "₱0.05"},
		{100, "₱1.00"},
		{123456, "₱1,234.56"},
		{100000000, "₱1,000,000.00"},
		{-2550, "-₱25.50"},
	}

	for _, tt := range tests {
		if got := FormatPesos(tt.cents); got != tt.want {
			t.Errorf("FormatPesos(%d) = %q, want %q", tt.cents, got, tt.want)
		}
	}
}

func TestMoneyAdd(t *testing.T) {
	sum := Money{Cents: 150}.Add(Money{Cents: 250})
	if sum.Cents != 400 {
		t.Errorf("Add() = %d, want 400", sum.Cents)
	}
}

func TestMoneyPesos(t *testing.T) {
	if got := (Money{Cents: 1250}).Pesos(); got != 12.5 {
		t.Errorf("Pesos() = %v, want 12.5", got)
	}
}
