// Copyright (C) 2025 Joshua M. Kriegshauser. All Rights Reserved.

// Package uniconv converts text one code point at a time among the
// UTF-8, UTF-16 and UTF-32 representations, in native or swapped byte
// order. A Codec is selected once, before entering a conversion loop,
// so the hot path never re-tests widths or byte order.
package uniconv

import (
	"encoding/binary"
	"errors"
)

// Conversion errors. The messages are the exact strings surfaced to
// callers of the parser, so they are fixed.
var (
	ErrUTF8          = errors.New("Invalid UTF-8 sequence")
	ErrSurrogatePair = errors.New("Invalid UTF-16 surrogate pair")
	ErrUTF16Char     = errors.New("Invalid UTF-16 character")
)

// A Codec reads and writes the code units of one encoding. Positions
// and counts are in bytes, so the same cursor arithmetic works across
// unit widths.
type Codec interface {
	// Width returns the size of one code unit in bytes.
	Width() int

	// Unit reads the single code unit at pos, byte order applied.
	Unit(buf []byte, pos int) uint32

	// PutUnit writes the single code unit u at pos.
	PutUnit(buf []byte, pos int, u uint32)

	// Decode reads one code point starting at pos, not reading at or
	// beyond end, and returns it with the position of the next unit.
	Decode(buf []byte, pos, end int) (cp uint32, next int, err error)

	// Encode writes one code point at pos and returns the position
	// following the written unit(s). The destination must have room;
	// use EncodedLen to size it.
	Encode(buf []byte, pos int, cp uint32) int
}

// Codecs for each supported width and byte order. The Swap variants
// read and write the non-native order.
var (
	UTF8      Codec = utf8Codec{}
	UTF16     Codec = utf16Codec{binary.NativeEndian}
	UTF16Swap Codec = utf16Codec{swappedOrder}
	UTF32     Codec = utf32Codec{binary.NativeEndian}
	UTF32Swap Codec = utf32Codec{swappedOrder}
)

var swappedOrder binary.ByteOrder = func() binary.ByteOrder {
	if binary.NativeEndian.Uint16([]byte{1, 0}) == 1 {
		return binary.BigEndian
	}
	return binary.LittleEndian
}()

// EncodedLen measures the encoded size of cp in bytes by performing
// the conversion into a scratch buffer. Keeping measurement and
// conversion on the same code path means the two can never disagree.
func EncodedLen(c Codec, cp uint32) int {
	var scratch [8]byte
	return c.Encode(scratch[:], 0, cp)
}

// Convert transcodes one code point from src at pos into dst at dpos.
// It returns the advanced positions. A same-width, same-order pair
// degenerates to a verbatim copy but still validates the sequence.
func Convert(in Codec, src []byte, pos, end int, out Codec, dst []byte, dpos int) (next, dnext int, err error) {
	cp, next, err := in.Decode(src, pos, end)
	if err != nil {
		return pos, dpos, err
	}
	return next, out.Encode(dst, dpos, cp), nil
}

// utf8Lengths gives the byte length of a UTF-8 sequence keyed by the
// top six bits of its leading byte; zero marks an invalid lead.
var utf8Lengths = [64]byte{
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1,
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	2, 2, 2, 2, 2, 2, 2, 2, 3, 3, 3, 3, 4, 4, 0, 0,
}

type utf8Codec struct{}

func (utf8Codec) Width() int { return 1 }

func (utf8Codec) Unit(buf []byte, pos int) uint32 { return uint32(buf[pos]) }

func (utf8Codec) PutUnit(buf []byte, pos int, u uint32) { buf[pos] = byte(u) }

func (utf8Codec) Decode(buf []byte, pos, end int) (uint32, int, error) {
	b := buf[pos]
	n := int(utf8Lengths[b>>2])
	if n == 0 || pos+n > end {
		return 0, pos, ErrUTF8
	}
	switch n {
	case 1:
		return uint32(b), pos + 1, nil
	case 2:
		return uint32(b&0x1f)<<6 | uint32(buf[pos+1]&0x3f), pos + 2, nil
	case 3:
		return uint32(b&0x0f)<<12 | uint32(buf[pos+1]&0x3f)<<6 | uint32(buf[pos+2]&0x3f), pos + 3, nil
	default:
		return uint32(b&0x07)<<18 | uint32(buf[pos+1]&0x3f)<<12 |
			uint32(buf[pos+2]&0x3f)<<6 | uint32(buf[pos+3]&0x3f), pos + 4, nil
	}
}

func (utf8Codec) Encode(buf []byte, pos int, cp uint32) int {
	switch {
	case cp <= 0x7f:
		buf[pos] = byte(cp)
		return pos + 1
	case cp <= 0x7ff:
		buf[pos] = 0xc0 | byte(cp>>6)
		buf[pos+1] = 0x80 | byte(cp&0x3f)
		return pos + 2
	case cp < 0x10000:
		buf[pos] = 0xe0 | byte(cp>>12)
		buf[pos+1] = 0x80 | byte(cp>>6&0x3f)
		buf[pos+2] = 0x80 | byte(cp&0x3f)
		return pos + 3
	default:
		buf[pos] = 0xf0 | byte(cp>>18&0x07)
		buf[pos+1] = 0x80 | byte(cp>>12&0x3f)
		buf[pos+2] = 0x80 | byte(cp>>6&0x3f)
		buf[pos+3] = 0x80 | byte(cp&0x3f)
		return pos + 4
	}
}

type utf16Codec struct{ order binary.ByteOrder }

func (utf16Codec) Width() int { return 2 }

func (c utf16Codec) Unit(buf []byte, pos int) uint32 { return uint32(c.order.Uint16(buf[pos:])) }

func (c utf16Codec) PutUnit(buf []byte, pos int, u uint32) { c.order.PutUint16(buf[pos:], uint16(u)) }

func (c utf16Codec) Decode(buf []byte, pos, end int) (uint32, int, error) {
	u := uint32(c.order.Uint16(buf[pos:]))
	if u < 0xd800 || u > 0xdfff {
		return u, pos + 2, nil
	}
	if u >= 0xdc00 {
		// A low surrogate with no preceding high surrogate.
		return 0, pos, ErrUTF16Char
	}
	if end-pos < 4 {
		return 0, pos, ErrSurrogatePair
	}
	u2 := uint32(c.order.Uint16(buf[pos+2:]))
	if u2 < 0xdc00 || u2 > 0xdfff {
		return 0, pos, ErrSurrogatePair
	}
	return ((u&0x3ff)<<10 | u2&0x3ff) + 0x10000, pos + 4, nil
}

func (c utf16Codec) Encode(buf []byte, pos int, cp uint32) int {
	if cp < 0x10000 {
		c.order.PutUint16(buf[pos:], uint16(cp))
		return pos + 2
	}
	cp -= 0x10000
	c.order.PutUint16(buf[pos:], uint16(0xd800|cp>>10))
	c.order.PutUint16(buf[pos+2:], uint16(0xdc00|cp&0x3ff))
	return pos + 4
}

type utf32Codec struct{ order binary.ByteOrder }

func (utf32Codec) Width() int { return 4 }

func (c utf32Codec) Unit(buf []byte, pos int) uint32 { return c.order.Uint32(buf[pos:]) }

func (c utf32Codec) PutUnit(buf []byte, pos int, u uint32) { c.order.PutUint32(buf[pos:], u) }

func (c utf32Codec) Decode(buf []byte, pos, end int) (uint32, int, error) {
	return c.order.Uint32(buf[pos:]), pos + 4, nil
}

func (c utf32Codec) Encode(buf []byte, pos int, cp uint32) int {
	c.order.PutUint32(buf[pos:], cp)
	return pos + 4
}
