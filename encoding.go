// Copyright (C) 2025 Joshua M. Kriegshauser. All Rights Reserved.

package fastjson

import (
	"encoding/binary"

	"github.com/jkriegshauser/fastjson/internal/uniconv"
)

// An Encoding identifies the code-unit width and byte order of a text
// buffer. The "Swap" variants denote the byte order opposite the machine's.
type Encoding int

const (
	Auto Encoding = iota - 1 // detect the encoding from the buffer contents

	UTF8
	UTF16
	UTF16Swap
	UTF32
	UTF32Swap
)

var encodingNames = []string{"UTF-8", "UTF-16", "UTF-16 (swapped)", "UTF-32", "UTF-32 (swapped)"}

func (e Encoding) String() string {
	if e == Auto {
		return "auto"
	}
	if e < 0 || int(e) >= len(encodingNames) {
		return "unknown"
	}
	return encodingNames[e]
}

// Width reports the code-unit width of e in bytes, or 0 for Auto or an
// invalid value.
func (e Encoding) Width() int {
	switch e {
	case UTF8:
		return 1
	case UTF16, UTF16Swap:
		return 2
	case UTF32, UTF32Swap:
		return 4
	}
	return 0
}

func (e Encoding) codec() uniconv.Codec {
	switch e {
	case UTF8:
		return uniconv.UTF8
	case UTF16:
		return uniconv.UTF16
	case UTF16Swap:
		return uniconv.UTF16Swap
	case UTF32:
		return uniconv.UTF32
	case UTF32Swap:
		return uniconv.UTF32Swap
	}
	return nil
}

// swapped reports whether e denotes the byte order opposite the machine's.
func (e Encoding) swapped() bool { return e == UTF16Swap || e == UTF32Swap }

// DetectEncoding guesses the encoding of data by inspecting its length and
// leading code units. The heuristic assumes the document begins with '{',
// '[' or whitespace, whose code points all fit in the low byte; inputs that
// violate that assumption can be misidentified. An undecidable prefix
// reports a *ParseError.
func DetectEncoding(data []byte) (Encoding, error) {
	if m := len(data) % 4; m != 2 && m != 0 {
		// Odd number of bytes; must be UTF-8.
		return UTF8, nil
	}
	if len(data) >= 2 && data[0] != 0 && data[1] != 0 {
		return UTF8, nil
	}
	if len(data) < 4 {
		// Two bytes with an embedded zero: only UTF-16 fits.
		if len(data) == 2 {
			if u := binary.NativeEndian.Uint16(data); u != 0 {
				if u < 256 {
					return UTF16, nil
				}
				return UTF16Swap, nil
			}
		}
		return 0, &ParseError{Msg: "Unable to determine encoding"}
	}
	if u0, u1 := binary.NativeEndian.Uint16(data), binary.NativeEndian.Uint16(data[2:]); u0 != 0 && u1 != 0 {
		if u0 < 256 {
			return UTF16, nil
		}
		return UTF16Swap, nil
	}
	u := binary.NativeEndian.Uint32(data)
	if u == 0 {
		return 0, &ParseError{Msg: "Unable to determine encoding"}
	}
	if u < 256 {
		return UTF32, nil
	}
	return UTF32Swap, nil
}
