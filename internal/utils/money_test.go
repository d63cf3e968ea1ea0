package utils

import "testing"

func TestFormatGHS(t *testing.T) {
	cases := []struct {
		pesewas int64
		want    string
	}{
		{0, "GHS 0.00"},
		{5, "GHS 0.05"},
		{100, "GHS 1.00"},
		{52500, "GHS 525.00"},
		{123456, "GHS 1,234.56"},
		{100000000, "GHS 1,000,000.00"},
		{-2500, "-GHS 25.00"},
	}
	for _, tc := range cases {
		if got := FormatGHS(tc.pesewas); got != tc.want {
			t.Errorf("FormatGHS(%d) = %q, want %q", tc.pesewas, got, tc.want)
		}
	}
}

func TestCedisToPesewas(t *testing.T) {
	if got := CedisToPesewas(500); got != 50000 {
		t.Fatalf("CedisToPesewas(500) = %d", got)
	}
}
