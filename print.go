// Copyright (C) 2025 Joshua M. Kriegshauser. All Rights Reserved.

package fastjson

import (
	"io"

	"github.com/jkriegshauser/fastjson/internal/uniconv"
)

// Print writes the document's tree as JSON text to w, encoded in the
// document's code units. With the zero flags the output is indented with
// tabs; see PrintFlags for the compact and space-indented layouts.
func Print(w io.Writer, d *Document, flags PrintFlags) error {
	pr := &printer{src: d.out, sw: d.width, out: d.out, ow: d.width}
	pr.printValue(d.root, flags, 0)
	_, err := w.Write(pr.buf)
	return err
}

// PrintValue writes the subtree rooted at v to w, encoded in the owning
// document's code units. The value's own member name is omitted, so a
// subtree prints as a standalone JSON document.
func PrintValue(w io.Writer, v *Value, flags PrintFlags) error {
	d := v.doc
	pr := &printer{src: d.out, sw: d.width, out: d.out, ow: d.width}
	pr.printValue(v, flags|skipName, 0)
	_, err := w.Write(pr.buf)
	return err
}

// PrintString renders the subtree rooted at v as a UTF-8 string regardless
// of the document's encoding. Printed JSON is escape-pure ASCII, so this is
// a width change only, never a content change.
func PrintString(v *Value, flags PrintFlags) string {
	pr := &printer{src: v.doc.out, sw: v.doc.width, out: uniconv.UTF8, ow: 1}
	pr.printValue(v, flags|skipName, 0)
	return string(pr.buf)
}

const hexDigits = "0123456789abcdef"

// printer walks a tree emitting code units into buf. src reads the tree's
// views; out writes the rendition, possibly in a different width.
type printer struct {
	buf []byte
	src uniconv.Codec
	sw  int
	out uniconv.Codec
	ow  int
}

func (pr *printer) emit(u uint32) {
	n := len(pr.buf)
	pr.buf = append(pr.buf, make([]byte, pr.ow)...)
	pr.out.PutUnit(pr.buf, n, u)
}

// emitVerbatim copies a scalar's canonical text, transcoding only the unit
// width. Null, Bool and Number text is always ASCII.
func (pr *printer) emitVerbatim(view []byte) {
	for pos := 0; pos < len(view); pos += pr.sw {
		pr.emit(pr.src.Unit(view, pos))
	}
}

func (pr *printer) emitIndent(flags PrintFlags, indent int) {
	if flags&NoWhitespace != 0 {
		return
	}
	c := uint32('\t')
	if flags&UseSpaces != 0 {
		spaces := int(flags & 0xf)
		if spaces == 0 {
			spaces = int(Indent4Spaces)
		}
		indent *= spaces
		c = ' '
	}
	for ; indent > 0; indent-- {
		pr.emit(c)
	}
}

func (pr *printer) emitU16(u uint32) {
	pr.emit('\\')
	pr.emit('u')
	pr.emit(uint32(hexDigits[(u>>12)&0xf]))
	pr.emit(uint32(hexDigits[(u>>8)&0xf]))
	pr.emit(uint32(hexDigits[(u>>4)&0xf]))
	pr.emit(uint32(hexDigits[u&0xf]))
}

// emitString re-escapes string content for output: the eight short escapes,
// \u00XX for the remaining control units, and UTF-16 escape sequences for
// everything above ASCII, so printed JSON is escape-pure ASCII regardless
// of the tree's width.
func (pr *printer) emitString(view []byte) {
	pr.emit('"')
	for pos := 0; pos < len(view); {
		u := pr.src.Unit(view, pos)
		switch {
		case u == '\\' || u == '"':
			pr.emit('\\')
			pr.emit(u)
			pos += pr.sw
		case u == 0x08:
			pr.emit('\\')
			pr.emit('b')
			pos += pr.sw
		case u == 0x0c:
			pr.emit('\\')
			pr.emit('f')
			pos += pr.sw
		case u == '\r':
			pr.emit('\\')
			pr.emit('r')
			pos += pr.sw
		case u == '\n':
			pr.emit('\\')
			pr.emit('n')
			pos += pr.sw
		case u == '\t':
			pr.emit('\\')
			pr.emit('t')
			pos += pr.sw
		case u < 0x20:
			pr.emitU16(u)
			pos += pr.sw
		case u > 0x7f:
			cp, next, err := pr.src.Decode(view, pos, len(view))
			if err != nil {
				cp, next = 0xfffd, pos+pr.sw
			}
			if cp >= 0x10000 {
				c := cp - 0x10000
				pr.emitU16(0xd800 | c>>10)
				pr.emitU16(0xdc00 | c&0x3ff)
			} else {
				pr.emitU16(cp)
			}
			pos = next
		default:
			pr.emit(u)
			pos += pr.sw
		}
	}
	pr.emit('"')
}

func (pr *printer) printValue(v *Value, flags PrintFlags, indent int) {
	pr.emitIndent(flags, indent)

	if len(v.name) > 0 && flags&skipName == 0 {
		pr.emitString(v.name)
		pr.emit(':')
		if flags&NoWhitespace == 0 {
			pr.emit(' ')
		}
	}

	// Nothing deeper should skip its name.
	flags &^= skipName

	switch v.kind {
	case Null, Bool, Number:
		pr.emitVerbatim(v.text)

	case String:
		pr.emitString(v.text)

	case Array, Object:
		start, end := uint32('['), uint32(']')
		array := true
		if v.kind == Object {
			start, end, array = '{', '}', false
		}
		pr.emit(start)
		first := true
		for c := v.firstChild; c != nil; c = c.next {
			if !first {
				pr.emit(',')
				if array && flags&NoWhitespace == 0 {
					pr.emit(' ')
				}
			}
			if !array && flags&NoWhitespace == 0 {
				pr.emit('\n')
			}
			childIndent := 0
			if !array {
				childIndent = indent + 1
			}
			pr.printValue(c, flags, childIndent)
			first = false
		}
		if !first && !array && flags&NoWhitespace == 0 {
			pr.emit('\n')
			pr.emitIndent(flags, indent)
		}
		pr.emit(end)
	}
}
