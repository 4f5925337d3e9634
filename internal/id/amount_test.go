package id

import "testing"

func TestNormalizeAmountFromDecimal(t *testing.T) {
	base, decimal, err := NormalizeAmount("", "1.5", 18)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if base != "1500000000000000000" {
		t.Fatalf("unexpected base units: %s", base)
	}
	if decimal != "1.5" {
		t.Fatalf("unexpected decimal: %s", decimal)
	}
}

func TestNormalizeAmountFromBaseUnits(t *testing.T) {
	base, decimal, err := NormalizeAmount("1000000", "", 6)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if base != "1000000" || decimal != "1" {
		t.Fatalf("unexpected result: %s / %s", base, decimal)
	}
}

func TestNormalizeAmountRejectsBoth(t *testing.T) {
	if _, _, err := NormalizeAmount("1", "1", 18); err == nil {
		t.Fatal("expected error when both forms are given")
	}
}

func TestNormalizeAmountRejectsExcessPrecision(t *testing.T) {
	if _, _, err := NormalizeAmount("", "1.1234567", 6); err == nil {
		t.Fatal("expected precision error")
	}
}

func TestFormatDecimal(t *testing.T) {
	cases := []struct {
		base     string
		decimals int
		want     string
	}{
		{"1500000000000000000", 18, "1.5"},
		{"1000000", 6, "1"},
		{"1", 6, "0.000001"},
		{"0", 18, "0"},
		{"garbage", 18, "0"},
	}
	for _, tc := range cases {
		if got := FormatDecimal(tc.base, tc.decimals); got != tc.want {
			t.Fatalf("FormatDecimal(%s, %d) = %s, want %s", tc.base, tc.decimals, got, tc.want)
		}
	}
}
