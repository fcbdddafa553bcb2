package core

import (
	"math"
	"testing"
)

func TestItoa(t *testing.T) {
	cases := []struct {
		n        int
		expected string
	}{
		{0, "0"},
		{7, "7"},
		{-7, "-7"},
		{1000, "1000"},
		{-12345, "-12345"},
	}
	for _, tc := range cases {
		if got := Itoa(tc.n); got != tc.expected {
			t.Errorf("Itoa(%d) = %q, expected %q", tc.n, got, tc.expected)
		}
	}
}

func TestFtoa(t *testing.T) {
	cases := []struct {
		f        float32
		decimals int
		expected string
	}{
		{0, 2, "0.00"},
		{21.0, 2, "21.00"},
		{9.80665, 3, "9.807"},
		{-1.5, 1, "-1.5"},
		{0.05, 2, "0.05"},
		{3, 0, "3"},
	}
	for _, tc := range cases {
		if got := Ftoa(tc.f, tc.decimals); got != tc.expected {
			t.Errorf("Ftoa(%v, %d) = %q, expected %q", tc.f, tc.decimals, got, tc.expected)
		}
	}
}

func TestFtoaNonFinite(t *testing.T) {
	cases := []struct {
		f        float32
		decimals int
		expected string
	}{
		{float32(math.NaN()), 2, "NaN"},
		{float32(math.Inf(1)), 2, "Inf"},
		{float32(math.Inf(-1)), 2, "-Inf"},
		{1e19, 0, "Inf"},
		{3.0e38, 3, "Inf"},
	}
	for _, tc := range cases {
		if got := Ftoa(tc.f, tc.decimals); got != tc.expected {
			t.Errorf("Ftoa(%v, %d) = %q, expected %q", tc.f, tc.decimals, got, tc.expected)
		}
	}
}

func TestHtoa(t *testing.T) {
	if got := Htoa(0x0F); got != "0F" {
		t.Errorf("Htoa(0x0F) = %q", got)
	}
	if got := Htoa(0xA5); got != "A5" {
		t.Errorf("Htoa(0xA5) = %q", got)
	}
}

func TestSetDebugWriterNil(t *testing.T) {
	SetDebugWriter(nil)
	// Must not panic
	DebugPrintln("dropped")
}
