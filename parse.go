// Copyright (C) 2025 Joshua M. Kriegshauser. All Rights Reserved.

package fastjson

import (
	"github.com/jkriegshauser/fastjson/internal/uniconv"
)

// Parse parses a JSON document from data and replaces the document's root
// with the result. The previous root is discarded but arena memory is
// retained; call Reset first to release it.
//
// With enc == Auto the encoding is detected from the buffer contents. By
// default the parse is destructive: string and number captures are views
// into data with synthesized NUL terminators written in place. Pass
// NonDestructive or NonDestructiveNUL to leave data untouched.
//
// Grammar or encoding violations abort the parse and return a *ParseError.
// Parse panics if flags combines NoStringTerminators with
// ForceStringTerminators.
func (d *Document) Parse(data []byte, enc Encoding, flags Flags) (err error) {
	if flags&(NoStringTerminators|ForceStringTerminators) == NoStringTerminators|ForceStringTerminators {
		panic("fastjson: NoStringTerminators and ForceStringTerminators are mutually exclusive")
	}
	defer func() {
		if v := recover(); v != nil {
			pe, ok := v.(*ParseError)
			if !ok {
				panic(v)
			}
			err = pe
		}
	}()

	if len(data) == 0 {
		d.fail("Expected '{' or '['", 0)
	}
	if enc == Auto {
		e, derr := DetectEncoding(data)
		if derr != nil {
			d.fail(derr.(*ParseError).Msg, 0)
		}
		enc = e
	}
	in := enc.codec()
	if in == nil {
		d.fail("Unknown encoding type", 0)
	}
	if enc.swapped() {
		flags |= doSwap
	}
	iw := enc.Width()
	p := &parser{
		d:     d,
		data:  data,
		end:   len(data) - len(data)%iw,
		in:    in,
		out:   d.out,
		flags: flags,
		iw:    iw,
		ow:    d.width,
	}
	p.parseDocument()
	return nil
}

// parser holds the state of one Parse call. All positions are byte offsets
// into data; pos advances by whole input code units.
type parser struct {
	d     *Document
	data  []byte
	pos   int
	end   int // len(data) rounded down to a whole number of input units
	in    uniconv.Codec
	out   uniconv.Codec
	flags Flags
	iw    int // input unit width in bytes
	ow    int // document unit width in bytes
}

func (p *parser) fail(msg string, offset int) { p.d.fail(msg, offset) }
func (p *parser) alloc(size int) []byte       { return p.d.alloc(size) }

func (p *parser) unit(pos int) uint32 { return p.in.Unit(p.data, pos) }

func isSpace(u uint32) bool { return u == ' ' || u == '\t' || u == '\n' || u == '\r' }
func isDigit(u uint32) bool { return u >= '0' && u <= '9' }

func (p *parser) parseDocument() {
	p.skipSpaceAndComments()
	if p.pos >= p.end {
		p.fail("Expected '{' or '['", p.pos)
	}
	var root *Value
	switch p.unit(p.pos) {
	case '{':
		p.pos += p.iw
		root = p.d.newValue(Object)
		p.parseObject(root)
	case '[':
		p.pos += p.iw
		root = p.d.newValue(Array)
		p.parseArray(root)
	default:
		p.fail("Expected '{' or '['", p.pos)
	}
	p.d.root = root

	p.skipSpaceAndComments()
	if p.pos < p.end && p.unit(p.pos) != 0 {
		p.fail("Expected end of document", p.pos)
	}
}

func (p *parser) skipSpace() {
	for p.pos < p.end && isSpace(p.unit(p.pos)) {
		p.pos += p.iw
	}
}

func (p *parser) skipSpaceAndComments() {
	if p.flags&Comments == 0 {
		p.skipSpace()
		return
	}
	for {
		p.skipSpace()
		if p.pos >= p.end {
			return
		}
		switch p.unit(p.pos) {
		case '#':
			// Line comment. Read until newline.
			p.pos += p.iw
			for p.pos < p.end && p.unit(p.pos) != '\n' {
				p.pos += p.iw
			}
		case '/':
			if p.pos+p.iw >= p.end {
				return
			}
			switch p.unit(p.pos + p.iw) {
			case '/':
				p.pos += 2 * p.iw
				for p.pos < p.end && p.unit(p.pos) != '\n' {
					p.pos += p.iw
				}
			case '*':
				p.pos += 2 * p.iw
				for p.pos < p.end {
					if p.end-p.pos >= 2*p.iw && p.unit(p.pos) == '*' && p.unit(p.pos+p.iw) == '/' {
						p.pos += 2 * p.iw
						break
					}
					p.pos += p.iw
				}
			default:
				return
			}
		default:
			return
		}
	}
}

func (p *parser) parseObject(val *Value) {
	p.skipSpaceAndComments()

	if p.pos < p.end && p.unit(p.pos) == '}' {
		p.pos += p.iw
		return
	}
	// Not necessary, but a more precise parse error.
	if p.pos >= p.end || p.unit(p.pos) != '"' {
		p.fail("Expected end-of-object '}' or name (string)", p.pos)
	}

	for {
		if p.pos >= p.end || p.unit(p.pos) != '"' {
			p.fail("Expected name (string)", p.pos)
		}
		p.pos += p.iw
		name := p.parseString()

		p.skipSpaceAndComments()
		if p.pos >= p.end || p.unit(p.pos) != ':' {
			p.fail("Expected name separator (:)", p.pos)
		}
		p.pos += p.iw
		p.skipSpaceAndComments()

		child := p.parseValue()
		child.name = name
		val.addChild(child)

		p.skipSpaceAndComments()
		if p.pos < p.end && p.unit(p.pos) == ',' {
			p.pos += p.iw
			p.skipSpaceAndComments()
			p.closeOff(child)
			if p.flags&TrailingCommas != 0 && p.pos < p.end && p.unit(p.pos) == '}' {
				p.pos += p.iw
				return
			}
		} else if p.pos < p.end && p.unit(p.pos) == '}' {
			p.pos += p.iw
			p.closeOff(child)
			return
		} else {
			p.fail("Expected value-separator ',' or end-of-object '}'", p.pos)
		}
	}
}

func (p *parser) parseArray(val *Value) {
	p.skipSpaceAndComments()

	if p.pos < p.end && p.unit(p.pos) == ']' {
		p.pos += p.iw
		return
	}

	for {
		child := p.parseValue()
		val.addChild(child)

		p.skipSpaceAndComments()
		if p.pos < p.end && p.unit(p.pos) == ',' {
			p.pos += p.iw
			p.skipSpaceAndComments()
			p.closeOff(child)
			if p.flags&TrailingCommas != 0 && p.pos < p.end && p.unit(p.pos) == ']' {
				p.pos += p.iw
				return
			}
		} else if p.pos < p.end && p.unit(p.pos) == ']' {
			p.pos += p.iw
			p.closeOff(child)
			return
		} else {
			p.fail("Expected value-separator ',' or end-of-array ']'", p.pos)
		}
	}
}

// closeOff writes the deferred NUL terminator after a value once the
// separator following it has been consumed, so the write cannot clobber
// unparsed input. Arena copies and literals already carry a NUL in the unit
// beyond the view, which the check reads as zero.
func (p *parser) closeOff(last *Value) {
	if p.flags&(NoStringTerminators|ForceStringTerminators) != 0 {
		return
	}
	t := last.text
	if cap(t)-len(t) < p.ow {
		return
	}
	tail := t[len(t) : len(t)+p.ow]
	if p.out.Unit(tail, 0) != 0 {
		p.out.PutUnit(tail, 0, 0)
	}
}

func (p *parser) parseValue() *Value {
	if p.pos >= p.end {
		p.fail("Expected value", p.pos)
	}
	switch p.unit(p.pos) {
	// A leading '.' is not valid JSON, but accepting it here yields the
	// more precise "Expected digit" error.
	case '-', '.', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		val := p.d.newValue(Number)
		p.parseNumber(val)
		return val

	case 'f':
		if p.matchLiteral("false") {
			val := p.d.newValue(Bool)
			val.text = p.d.litFalse
			return val
		}

	case 't':
		if p.matchLiteral("true") {
			val := p.d.newValue(Bool)
			val.text = p.d.litTrue
			return val
		}

	case 'n':
		if p.matchLiteral("null") {
			return p.d.newValue(Null)
		}

	case '{':
		p.pos += p.iw
		val := p.d.newValue(Object)
		p.parseObject(val)
		return val

	case '[':
		p.pos += p.iw
		val := p.d.newValue(Array)
		p.parseArray(val)
		return val

	case '"':
		p.pos += p.iw
		val := p.d.newValue(String)
		val.text = p.parseString()
		return val
	}
	p.fail("Expected value", p.pos)
	return nil
}

// matchLiteral advances past lit if the input matches it exactly.
func (p *parser) matchLiteral(lit string) bool {
	if p.end-p.pos < len(lit)*p.iw {
		return false
	}
	for i := 0; i < len(lit); i++ {
		if p.unit(p.pos+i*p.iw) != uint32(lit[i]) {
			return false
		}
	}
	p.pos += len(lit) * p.iw
	return true
}

// convertOne decodes one code point at pos and encodes it at opos in out,
// returning the advanced cursors.
func (p *parser) convertOne(pos, end int, out []byte, opos int) (int, int) {
	cp, next, err := p.in.Decode(p.data, pos, end)
	if err != nil {
		p.fail(err.Error(), pos)
	}
	return next, p.out.Encode(out, opos, cp)
}

func (p *parser) parseNumber(val *Value) {
	// Fastest case: same unit width, native order, and no terminator
	// rewrite wanted: the number becomes a view into the input.
	if p.iw == p.ow && p.flags&(ForceStringTerminators|NoStringTerminators|doSwap) == NoStringTerminators {
		start := p.pos
		p.pos = p.measureNumber(start)
		val.text = p.data[start:p.pos:len(p.data)]
		return
	}

	requireAlloc := p.ow > p.iw || p.flags&ForceStringTerminators != 0

	numEnd := p.measureNumber(p.pos)
	chars := (numEnd - p.pos) / p.iw

	out := p.data
	opos := p.pos
	if requireAlloc {
		out = p.alloc((chars + 1) * p.ow)
		p.out.PutUnit(out, chars*p.ow, 0)
		opos = 0
		val.text = out[: chars*p.ow : (chars+1)*p.ow]
	} else {
		// In-place rewrite. The write cursor never passes the read cursor
		// because the output units are no wider than the input's.
		val.text = p.data[p.pos : p.pos+chars*p.ow : len(p.data)]
	}
	for p.pos < numEnd {
		p.pos, opos = p.convertOne(p.pos, numEnd, out, opos)
	}
}

// measureNumber validates the number grammar starting at pos and returns
// the offset one past its end.
func (p *parser) measureNumber(pos int) int {
	// A minus is allowed as the first character.
	if pos < p.end && p.unit(pos) == '-' {
		pos += p.iw
	}

	// A single zero or a series of digits.
	if pos < p.end && p.unit(pos) == '0' {
		pos += p.iw
	} else {
		start := pos
		for pos < p.end && isDigit(p.unit(pos)) {
			pos += p.iw
		}
		if pos == start {
			p.fail("Expected digit", pos)
		}
	}

	// Optional decimal point.
	if pos < p.end && p.unit(pos) == '.' {
		pos += p.iw
		start := pos
		for pos < p.end && isDigit(p.unit(pos)) {
			pos += p.iw
		}
		if pos == start {
			p.fail("Expected fractional digits", pos)
		}
	}

	// Optional exponent.
	if pos < p.end {
		if u := p.unit(pos); u == 'e' || u == 'E' {
			pos += p.iw
			if pos < p.end {
				if u := p.unit(pos); u == '+' || u == '-' {
					pos += p.iw
				}
			}
			start := pos
			for pos < p.end && isDigit(p.unit(pos)) {
				pos += p.iw
			}
			if pos == start {
				p.fail("Expected exponent digits", pos)
			}
		}
	}
	return pos
}

// parseString captures a string whose opening quote has been consumed and
// returns the content view in the document's encoding, advancing past the
// closing quote. How the content is captured depends on the flags:
//
//	wider document units     - always copied into the arena
//	ForceStringTerminators   - always copied into the arena
//	NoStringTerminators      - a plain view into the input when no
//	                           translation is needed, else translated in
//	                           place (or copied, with NoInlineTranslation)
//	NoInlineTranslation      - copied whenever translation is needed
//	default                  - translated in place, NUL over the quote
func (p *parser) parseString() []byte {
	requireAlloc := p.ow > p.iw || p.flags&ForceStringTerminators != 0
	translate := true
	outUnits := 0
	strEnd := p.pos
	if requireAlloc || p.flags&(ForceStringTerminators|NoStringTerminators|NoInlineTranslation|doSwap) != 0 {
		translate, outUnits, strEnd = p.measureString()
	}

	if p.flags&NoStringTerminators != 0 && !translate {
		// No translation and no terminator wanted. This is the fastest
		// case: point at the input and move on.
		view := p.data[p.pos:strEnd:len(p.data)]
		p.pos = strEnd + p.iw
		return view
	}

	if p.flags&NoInlineTranslation != 0 {
		requireAlloc = true
	}

	out := p.data
	opos := p.pos
	viewStart := p.pos
	viewCap := len(p.data)
	if requireAlloc {
		out = p.alloc((outUnits + 1) * p.ow)
		opos, viewStart = 0, 0
		viewCap = (outUnits + 1) * p.ow
	}

	for p.pos < p.end {
		switch p.unit(p.pos) {
		default:
			p.pos, opos = p.convertOne(p.pos, p.end, out, opos)

		case '"': // end of string
			p.out.PutUnit(out, opos, 0)
			p.pos += p.iw
			return out[viewStart:opos:viewCap]

		case '\\':
			opos = p.convertEscape(out, opos)

		case 0:
			p.fail("Expected end-of-string '\"'", p.pos)
		}
	}
	p.fail("Expected end-of-string '\"'", p.pos)
	return nil
}

// measureString scans the string starting at p.pos without moving the
// cursor, reporting whether translation is required, the translated length
// in document units, and the offset of the closing quote. It detects every
// escape and encoding error the convert pass would.
func (p *parser) measureString() (translate bool, outUnits, strEnd int) {
	translate = p.flags&doSwap != 0 || p.iw != p.ow
	pos := p.pos
	for pos < p.end {
		switch p.unit(pos) {
		default:
			cp, next, err := p.in.Decode(p.data, pos, p.end)
			if err != nil {
				p.fail(err.Error(), pos)
			}
			outUnits += uniconv.EncodedLen(p.out, cp) / p.ow
			pos = next

		case '"':
			return translate, outUnits, pos

		case '\\':
			translate = true
			if pos+p.iw >= p.end {
				p.fail("Invalid escaped character", pos+p.iw)
			}
			pos += p.iw
			switch p.unit(pos) {
			case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
				pos += p.iw
				outUnits++
			case 'u':
				pos -= p.iw // rewind to the backslash
				var cp uint32
				cp, pos = p.escapedCodePoint(pos, "Expected UTF-16 surrogate pair")
				outUnits += uniconv.EncodedLen(p.out, cp) / p.ow
			default:
				p.fail("Invalid escaped character", pos)
			}

		case 0:
			p.fail("Expected end-of-string '\"'", pos)
		}
	}
	p.fail("Expected end-of-string '\"'", pos)
	return
}

// convertEscape translates the escape sequence at p.pos, which is the
// backslash, writing its expansion at opos and returning the new output
// cursor.
func (p *parser) convertEscape(out []byte, opos int) int {
	esc := p.pos
	p.pos += p.iw
	if p.pos >= p.end {
		p.fail("Invalid escaped character", p.pos)
	}
	switch p.unit(p.pos) {
	case '"', '\\', '/':
		p.pos, opos = p.convertOne(p.pos, p.end, out, opos)
		return opos

	case 'b':
		p.out.PutUnit(out, opos, 0x08)
	case 'f':
		p.out.PutUnit(out, opos, 0x0c)
	case 'n':
		p.out.PutUnit(out, opos, 0x0a)
	case 'r':
		p.out.PutUnit(out, opos, 0x0d)
	case 't':
		p.out.PutUnit(out, opos, 0x09)

	case 'u':
		var cp uint32
		cp, p.pos = p.escapedCodePoint(esc, "Invalid UTF-16 surrogate pair")
		return p.out.Encode(out, opos, cp)

	default:
		p.fail("Invalid escaped character", p.pos)
	}
	p.pos += p.iw
	return opos + p.ow
}

// escapedCodePoint reads one \uXXXX escape at pos, or two when the first
// names a surrogate, and returns the code point and the advanced offset.
// badPairMsg is reported when the second escape is not a low surrogate.
func (p *parser) escapedCodePoint(pos int, badPairMsg string) (uint32, int) {
	start := pos
	if p.end-pos < 6*p.iw {
		p.fail("Invalid \\u escape sequence", pos)
	}
	u0, pos := p.readUTF16(pos)
	if u0 >= 0xd800 && u0 <= 0xdfff {
		if p.end-pos < 6*p.iw {
			p.fail("Expected UTF-16 surrogate pair", pos)
		}
		var u1 uint32
		u1, pos = p.readUTF16(pos)
		if u1 < 0xdc00 || u1 > 0xdfff {
			p.fail(badPairMsg, pos-6*p.iw)
		}
		var buf [4]byte
		uniconv.UTF16.PutUnit(buf[:], 0, u0)
		uniconv.UTF16.PutUnit(buf[:], 2, u1)
		cp, _, err := uniconv.UTF16.Decode(buf[:], 0, 4)
		if err != nil {
			p.fail(err.Error(), start)
		}
		return cp, pos
	}
	return u0, pos
}

// readUTF16 reads a \uXXXX escape at pos and returns the 16-bit value and
// the advanced offset. The caller has checked that six units are available.
func (p *parser) readUTF16(pos int) (uint32, int) {
	if p.unit(pos) != '\\' {
		p.fail("Expected \\uXXXX", pos)
	}
	pos += p.iw
	if p.unit(pos) != 'u' {
		p.fail("Expected \\uXXXX", pos-p.iw)
	}
	pos += p.iw
	var u uint32
	for i := 0; i < 4; i++ {
		u = u<<4 | p.hexValue(pos)
		pos += p.iw
	}
	return u, pos
}

func (p *parser) hexValue(pos int) uint32 {
	switch u := p.unit(pos); {
	case u >= '0' && u <= '9':
		return u - '0'
	case u >= 'a' && u <= 'f':
		return u - 'a' + 10
	case u >= 'A' && u <= 'F':
		return u - 'A' + 10
	}
	p.fail("Expected hex character (0-9, a-f, A-F)", pos)
	return 0
}
