// Copyright (C) 2025 Joshua M. Kriegshauser. All Rights Reserved.

package fastjson

import (
	"github.com/jkriegshauser/fastjson/internal/arena"
	"github.com/jkriegshauser/fastjson/internal/number"
	"github.com/jkriegshauser/fastjson/internal/uniconv"
)

// Values are batch-allocated in chunks of this many nodes so a parse does
// not pay one heap allocation per value. Pointers into a chunk stay valid
// because a chunk is never grown past its capacity.
const valueChunkSize = 128

// A HeapFunc allocates backing blocks for a Document's arena. It returns a
// slice of at least the requested size, or nil to report failure.
type HeapFunc func(size int) []byte

// A Document owns the arena and every Value of one parsed or constructed
// tree. It is created with an empty Object root; Parse replaces the root.
// Destroying the Document (letting it be collected) invalidates every Value
// and text view it produced. A Document must not be copied, and is not safe
// for concurrent mutation.
type Document struct {
	arena   *arena.Arena
	root    *Value
	enc     Encoding
	out     uniconv.Codec
	width   int
	onError ErrorHandler
	vals    []Value

	litNull  []byte
	litTrue  []byte
	litFalse []byte
}

// New creates an empty UTF-8 document.
func New() *Document { return NewForEncoding(UTF8) }

// NewForEncoding creates an empty document whose tree stores text in the
// given encoding. Only native byte order encodings are valid targets;
// NewForEncoding panics for Auto or a swapped encoding.
func NewForEncoding(enc Encoding) *Document {
	if enc.codec() == nil || enc.swapped() {
		panic("fastjson: document encoding must be a native byte order encoding")
	}
	d := &Document{
		arena: arena.New(),
		enc:   enc,
		out:   enc.codec(),
		width: enc.Width(),
	}
	d.litNull = d.makeLiteral("null")
	d.litTrue = d.makeLiteral("true")
	d.litFalse = d.makeLiteral("false")
	d.root = d.newValue(Object)
	return d
}

// Root returns the root container of the document. For a newly constructed
// Document this is an empty Object.
func (d *Document) Root() *Value { return d.root }

// Encoding reports the encoding the document's tree stores text in.
func (d *Document) Encoding() Encoding { return d.enc }

// OnError installs a handler that observes parse errors before Parse
// returns them. A nil handler removes the hook.
func (d *Document) OnError(fn ErrorHandler) { d.onError = fn }

// SetHeap replaces the allocator used for the arena's backing blocks. A nil
// fn restores the default. Useful for capping or instrumenting memory use.
func (d *Document) SetHeap(fn HeapFunc) { d.arena.SetHeap(arena.HeapFunc(fn)) }

// Reset discards the parsed tree and every arena allocation, returning the
// document to an empty Object root. All previously returned Values and
// text views become invalid.
func (d *Document) Reset() {
	d.arena.Reset()
	d.vals = nil
	d.root = d.newValue(Object)
}

// NewNull allocates a detached null value.
func (d *Document) NewNull() *Value { return d.newValue(Null) }

// NewBool allocates a detached boolean value.
func (d *Document) NewBool(b bool) *Value {
	v := d.newValue(Bool)
	if b {
		v.text = d.litTrue
	} else {
		v.text = d.litFalse
	}
	return v
}

// NewString allocates a detached string value. The content is transcoded to
// the document's encoding and copied into the arena.
func (d *Document) NewString(s string) *Value {
	v := d.newValue(String)
	v.text = d.allocString(d.encodeString(s))
	return v
}

// NewNumber allocates a detached numeric value. The value is formatted to
// its canonical text immediately. NaN and infinite values have no JSON
// numeric form; they become String values holding "NaN", "Inf" or "-Inf".
func (d *Document) NewNumber(val float64) *Value {
	v := d.newValue(Number)
	text, finite := number.Format(nil, val)
	if !finite {
		v.kind = String
	}
	v.text = d.allocString(d.encodeString(string(text)))
	return v
}

// NewArray allocates a detached empty array.
func (d *Document) NewArray() *Value { return d.newValue(Array) }

// NewObject allocates a detached empty object.
func (d *Document) NewObject() *Value { return d.newValue(Object) }

func (d *Document) newValue(kind Kind) *Value {
	if len(d.vals) == cap(d.vals) {
		d.vals = make([]Value, 0, valueChunkSize)
	}
	d.vals = append(d.vals, Value{kind: kind, doc: d})
	v := &d.vals[len(d.vals)-1]
	if kind == Null {
		v.text = d.litNull
	}
	return v
}

// fail reports a parse error to the observer hook, then unwinds. Parse
// recovers the *ParseError at its boundary; outside a parse the panic
// reaches the caller.
func (d *Document) fail(msg string, offset int) {
	err := &ParseError{Msg: msg, Offset: offset}
	if d.onError != nil {
		d.onError(err)
	}
	panic(err)
}

func (d *Document) alloc(size int) []byte {
	b := d.arena.Alloc(size)
	if b == nil {
		d.fail("Memory allocation failed", 0)
	}
	return b
}

// allocString copies src, already in the document's encoding, into the
// arena with a trailing NUL unit. The returned view excludes the NUL but
// its capacity includes it.
func (d *Document) allocString(src []byte) []byte {
	buf := d.alloc(len(src) + d.width)
	copy(buf, src)
	d.out.PutUnit(buf, len(src), 0)
	return buf[: len(src) : len(src)+d.width]
}

// makeLiteral encodes an ASCII literal in the document width with a
// trailing NUL unit beyond the view, so the parser's close-off check reads
// zero and leaves literals alone.
func (d *Document) makeLiteral(s string) []byte {
	buf := make([]byte, (len(s)+1)*d.width)
	for i := 0; i < len(s); i++ {
		d.out.PutUnit(buf, i*d.width, uint32(s[i]))
	}
	return buf[: len(s)*d.width : (len(s)+1)*d.width]
}

// encodeString transcodes a UTF-8 string into the document's encoding.
// Invalid UTF-8 bytes are replaced with U+FFFD.
func (d *Document) encodeString(s string) []byte {
	if d.width == 1 {
		return []byte(s)
	}
	src := []byte(s)
	out := make([]byte, 0, len(s)*d.width)
	for pos := 0; pos < len(src); {
		cp, next, err := uniconv.UTF8.Decode(src, pos, len(src))
		if err != nil {
			cp, next = 0xfffd, pos+1
		}
		var unit [4]byte
		n := d.out.Encode(unit[:], 0, cp)
		out = append(out, unit[:n]...)
		pos = next
	}
	return out
}

// toUTF8 transcodes a view in the document's encoding to a UTF-8 string.
// Invalid sequences are replaced with U+FFFD.
func (d *Document) toUTF8(view []byte) string {
	if d.width == 1 {
		return string(view)
	}
	out := make([]byte, 0, len(view))
	for pos := 0; pos < len(view); {
		cp, next, err := d.out.Decode(view, pos, len(view))
		if err != nil {
			cp, next = 0xfffd, pos+d.width
		}
		var unit [4]byte
		n := uniconv.UTF8.Encode(unit[:], 0, cp)
		out = append(out, unit[:n]...)
		pos = next
	}
	return string(out)
}

// asciiBytes narrows a view to one byte per code unit for the numeric
// converter. Units outside ASCII map to 0xFF, which stops the tolerant
// number grammar.
func (d *Document) asciiBytes(view []byte) []byte {
	out := make([]byte, 0, len(view)/d.width)
	for pos := 0; pos < len(view); pos += d.width {
		u := d.out.Unit(view, pos)
		if u > 0x7f {
			u = 0xff
		}
		out = append(out, byte(u))
	}
	return out
}
