package core

import "testing"

func TestFormatCurrency(t *testing.T) {
	cases := []struct {
		in  float64
		out string
	}{
		{16000, "$16,000"},
		{0, "$0"},
		{999.5, "$1,000"},
		{-2500, "-$2,500"},
		{1234567, "$1,234,567"},
		{500.4, "$500"},
	}
	for _, tc := range cases {
		if got := FormatCurrency(tc.in); got != tc.out {
			t.Errorf("FormatCurrency(%v) = %q, want %q", tc.in, got, tc.out)
		}
	}
}
