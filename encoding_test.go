// Copyright (C) 2025 Joshua M. Kriegshauser. All Rights Reserved.

package fastjson_test

import (
	"errors"
	"testing"

	"github.com/jkriegshauser/fastjson"
)

func TestDetectEncoding(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want fastjson.Encoding
	}{
		{"utf8 odd length", []byte(`[1]`), fastjson.UTF8},
		{"utf8 even length", []byte(`{"a":1}`), fastjson.UTF8},
		{"utf8 two bytes", []byte(`{}`), fastjson.UTF8},
		{"utf16 native", transcode(`{"a":1}`, fastjson.UTF16), fastjson.UTF16},
		{"utf16 swapped", transcode(`{"a":1}`, fastjson.UTF16Swap), fastjson.UTF16Swap},
		{"utf16 two bytes", transcode(`[`, fastjson.UTF16), fastjson.UTF16},
		{"utf16 two bytes swapped", transcode(`[`, fastjson.UTF16Swap), fastjson.UTF16Swap},
		{"utf32 native", transcode(`{"a":1}`, fastjson.UTF32), fastjson.UTF32},
		{"utf32 swapped", transcode(`{"a":1}`, fastjson.UTF32Swap), fastjson.UTF32Swap},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := fastjson.DetectEncoding(tc.data)
			if err != nil {
				t.Fatalf("DetectEncoding: %v", err)
			}
			if got != tc.want {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestDetectEncodingUndecidable(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"two zero bytes", []byte{0, 0}},
		{"four zero bytes", []byte{0, 0, 0, 0}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := fastjson.DetectEncoding(tc.data)
			if err == nil {
				t.Fatal("DetectEncoding: no error for undecidable input")
			}
			var perr *fastjson.ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("DetectEncoding: error type %T", err)
			}
			if perr.Msg != "Unable to determine encoding" {
				t.Errorf("message: got %q", perr.Msg)
			}
		})
	}
}

func TestEncodingStringWidth(t *testing.T) {
	tests := []struct {
		enc   fastjson.Encoding
		str   string
		width int
	}{
		{fastjson.Auto, "auto", 0},
		{fastjson.UTF8, "UTF-8", 1},
		{fastjson.UTF16, "UTF-16", 2},
		{fastjson.UTF16Swap, "UTF-16 (swapped)", 2},
		{fastjson.UTF32, "UTF-32", 4},
		{fastjson.UTF32Swap, "UTF-32 (swapped)", 4},
	}
	for _, tc := range tests {
		if got := tc.enc.String(); got != tc.str {
			t.Errorf("%d String: got %q, want %q", tc.enc, got, tc.str)
		}
		if got := tc.enc.Width(); got != tc.width {
			t.Errorf("%v Width: got %d, want %d", tc.enc, got, tc.width)
		}
	}
}
