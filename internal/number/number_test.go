// Copyright (C) 2025 Joshua M. Kriegshauser. All Rights Reserved.

package number_test

import (
	"math"
	"testing"

	"go4.org/mem"

	"github.com/jkriegshauser/fastjson/internal/number"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"", 0},
		{"0", 0},
		{"1", 1},
		{"-1", -1},
		{"3.25", 3.25},
		{"-0.5", -0.5},
		{"1e3", 1000},
		{"1E3", 1000},
		{"2.5e-2", 0.025},
		{"1e+2", 100},
		{"true", 1},

		// Parsing stops at the first non-numeric character. Only a
		// leading minus is recognized as a sign.
		{"+5", 0},
		{"12abc", 12},
		{"3.5x", 3.5},
		{"1e2odd", 100},
		{"hello", 0},
		{"-", 0},
	}
	for _, tc := range tests {
		got := number.Parse(mem.S(tc.input))
		if math.Abs(got-tc.want) > 1e-12 {
			t.Errorf("Parse(%q): got %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestParseBool(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"true", true},
		{"false", false},
		{"1", true},
		{"0", false},
		{"", false},
		{"-2.5", true},
		{"null", false},
	}
	for _, tc := range tests {
		if got := number.ParseBool(mem.S(tc.input)); got != tc.want {
			t.Errorf("ParseBool(%q): got %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		input  float64
		want   string
		finite bool
	}{
		{0, "0", true},
		{1e-13, "0", true},
		{-1e-13, "0", true},
		{1, "1", true},
		{-1, "-1", true},
		{3.25, "3.25", true},
		{100, "100", true},
		{0.5, "0.5", true},
		{1e-10, "1e-10", true},
		{1e13, "1e+13", true},
		{123456789012, "123456789012", true},
		{math.NaN(), "NaN", false},
		{math.Inf(1), "Inf", false},
		{math.Inf(-1), "-Inf", false},
	}
	for _, tc := range tests {
		got, finite := number.Format(nil, tc.input)
		if string(got) != tc.want || finite != tc.finite {
			t.Errorf("Format(%v): got %q (finite=%v), want %q (finite=%v)",
				tc.input, got, finite, tc.want, tc.finite)
		}
	}
}

func TestFormatAppends(t *testing.T) {
	got, _ := number.Format([]byte("n="), 2.5)
	if string(got) != "n=2.5" {
		t.Errorf("Format append: got %q, want %q", got, "n=2.5")
	}
}

func TestFormatRoundTrip(t *testing.T) {
	values := []float64{0.1, 1.5, -42, 6.02e-10, 2.99792458e8, 12345.6789}
	for _, v := range values {
		text, finite := number.Format(nil, v)
		if !finite {
			t.Fatalf("Format(%v): unexpectedly non-finite", v)
		}
		back := number.Parse(mem.B(text))
		if math.Abs(back-v) > math.Abs(v)*1e-11 {
			t.Errorf("round trip %v: formatted %q, parsed back %v", v, text, back)
		}
	}
}
