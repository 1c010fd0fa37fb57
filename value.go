// Copyright (C) 2025 Joshua M. Kriegshauser. All Rights Reserved.

package fastjson

import (
	"bytes"

	"go4.org/mem"

	"github.com/jkriegshauser/fastjson/internal/number"
)

// A Kind describes the JSON type of a Value.
type Kind int

const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

var kindNames = []string{"null", "bool", "number", "string", "array", "object"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "invalid"
	}
	return kindNames[k]
}

// A Value is one node of a parsed document: a scalar, or an array or object
// holding a doubly linked list of children. Values are allocated by a
// Document and remain valid only as long as that Document; they must not be
// moved between documents.
type Value struct {
	kind Kind
	doc  *Document

	// name and text view code units in the document's encoding. For
	// Null/Bool/Number the text is always a fully formed literal; for
	// String it is the decoded content.
	name []byte
	text []byte

	owner      *Value
	prev, next *Value

	firstChild  *Value
	lastChild   *Value
	numChildren int
}

// Kind reports the JSON type of v.
func (v *Value) Kind() Kind { return v.kind }

// Name returns the member name of v as raw code units in the document's
// encoding, or an empty slice for array elements and the root.
func (v *Value) Name() []byte { return v.name }

// NameString returns the member name of v transcoded to a UTF-8 string.
func (v *Value) NameString() string { return v.doc.toUTF8(v.name) }

// Text returns the canonical string form of v as raw code units in the
// document's encoding. For arrays and objects it is empty; use Print.
func (v *Value) Text() []byte { return v.text }

// String returns the canonical string form of v transcoded to UTF-8.
// Null, Bool and Number values yield their literal text; arrays and
// objects yield an empty string.
func (v *Value) String() string { return v.doc.toUTF8(v.text) }

// Number converts v to a float64. Null and false yield 0, true yields 1,
// and strings convert as much leading numeric text as possible.
func (v *Value) Number() float64 {
	if v.doc.width == 1 {
		return number.Parse(mem.B(v.text))
	}
	return number.Parse(mem.B(v.doc.asciiBytes(v.text)))
}

// Bool converts v to a bool. The literals "true" and "false" convert
// directly; any other text is true if it converts to a nonzero number.
func (v *Value) Bool() bool {
	if v.doc.width == 1 {
		return number.ParseBool(mem.B(v.text))
	}
	return number.ParseBool(mem.B(v.doc.asciiBytes(v.text)))
}

// Parent returns the container holding v, or nil for the root and for
// detached values.
func (v *Value) Parent() *Value { return v.owner }

// NextSibling returns the value after v in its container, or nil.
func (v *Value) NextSibling() *Value { return v.next }

// PrevSibling returns the value before v in its container, or nil.
func (v *Value) PrevSibling() *Value { return v.prev }

// FirstChild returns the first child of an array or object, or nil.
func (v *Value) FirstChild() *Value { return v.firstChild }

// NumChildren reports the number of children of an array or object.
func (v *Value) NumChildren() int { return v.numChildren }

// IsEmpty reports whether an array or object has no children.
func (v *Value) IsEmpty() bool { return v.numChildren == 0 }

// At returns the child of an array or object at index. Negative indices
// count from the end, -1 being the last child. Out-of-range indices return
// nil. Time order O(n).
func (v *Value) At(index int) *Value {
	var p *Value
	if index < 0 {
		p = v.lastChild
		for index++; index < 0 && p != nil; index++ {
			p = p.prev
		}
	} else {
		p = v.firstChild
		for ; index > 0 && p != nil; index-- {
			p = p.next
		}
	}
	return p
}

// Field returns the member of an object with the given name, or nil if no
// such member exists. Names are case-sensitive. Time order O(n).
func (v *Value) Field(name string) *Value {
	if v.kind != Object {
		return nil
	}
	if v.doc.width == 1 {
		for p := v.firstChild; p != nil; p = p.next {
			if mem.B(p.name).Equal(mem.S(name)) {
				return p
			}
		}
		return nil
	}
	want := v.doc.encodeString(name)
	for p := v.firstChild; p != nil; p = p.next {
		if bytes.Equal(p.name, want) {
			return p
		}
	}
	return nil
}

// ArrayAdd appends val to the end of an array. It reports false if v is not
// an array, val is nil, or val is already attached to a container.
func (v *Value) ArrayAdd(val *Value) bool {
	if v.kind != Array || val == nil || val.owner != nil {
		return false
	}
	v.addChild(val)
	return true
}

// ArrayInsert inserts val at the given index of an array. Negative indices
// count from the end; indices are clamped, so any very negative index
// inserts first and any very large index inserts last. It reports false if
// v is not an array, val is nil, or val is already attached. Time order O(n).
func (v *Value) ArrayInsert(val *Value, index int) bool {
	if v.kind != Array || val == nil || val.owner != nil {
		return false
	}
	if index < 0 {
		after := v.lastChild
		for index++; index < 0 && after != nil; index++ {
			after = after.prev
		}
		val.prev = after
		if after != nil {
			val.next = after.next
		} else {
			val.next = v.firstChild
		}
	} else {
		before := v.firstChild
		for ; index > 0 && before != nil; index-- {
			before = before.next
		}
		val.next = before
		if before != nil {
			val.prev = before.prev
		} else {
			val.prev = v.lastChild
		}
	}
	if val.prev != nil {
		val.prev.next = val
	} else {
		v.firstChild = val
	}
	if val.next != nil {
		val.next.prev = val
	} else {
		v.lastChild = val
	}
	val.owner = v
	v.numChildren++
	return true
}

// ArrayRemove detaches and returns the child of an array at index. Negative
// indices count from the end; indices are clamped. It returns nil if v is
// not an array or the array is empty. The removed value may be reattached
// with ArrayAdd or ArrayInsert. Time order O(n).
func (v *Value) ArrayRemove(index int) *Value {
	if v.kind != Array {
		return nil
	}
	var p *Value
	if index < 0 {
		p = v.lastChild
		for index++; index < 0 && p != nil && p.prev != nil; index++ {
			p = p.prev
		}
	} else {
		p = v.firstChild
		for ; index > 0 && p != nil && p.next != nil; index-- {
			p = p.next
		}
	}
	if p == nil {
		return nil
	}
	v.unlink(p)
	return p
}

// ArraySet replaces the child of an array at index with val, or appends val
// when index is exactly one past the last child. The replaced child, if
// any, is detached and returned. It reports false for any other index, or
// if v is not an array, val is nil, or val is already attached.
func (v *Value) ArraySet(index int, val *Value) (old *Value, ok bool) {
	if v.kind != Array || val == nil || val.owner != nil {
		return nil, false
	}
	var p *Value
	if index < 0 {
		p = v.lastChild
		for index++; index < 0 && p != nil; index++ {
			p = p.prev
		}
	} else {
		p = v.firstChild
		for ; index > 0 && p != nil; index-- {
			p = p.next
		}
	}
	if index != 0 {
		return nil, false
	}
	if p == nil {
		v.addChild(val)
		return nil, true
	}
	val.prev, val.next = p.prev, p.next
	if val.prev != nil {
		val.prev.next = val
	} else {
		v.firstChild = val
	}
	if val.next != nil {
		val.next.prev = val
	} else {
		v.lastChild = val
	}
	val.owner = v
	p.owner, p.prev, p.next = nil, nil, nil
	return p, true
}

// ObjectSet sets the member of an object with the given name to val,
// replacing and returning any existing member of that name. The name is
// copied into the document's arena, so the caller's string need not outlive
// the tree. It reports false if v is not an object, the name is empty, val
// is nil, or val is already attached. Time order O(n).
func (v *Value) ObjectSet(name string, val *Value) (old *Value, ok bool) {
	if v.kind != Object || name == "" || val == nil || val.owner != nil {
		return nil, false
	}
	val.name = v.doc.allocString(v.doc.encodeString(name))
	if p := v.Field(name); p != nil {
		val.prev, val.next = p.prev, p.next
		if val.prev != nil {
			val.prev.next = val
		} else {
			v.firstChild = val
		}
		if val.next != nil {
			val.next.prev = val
		} else {
			v.lastChild = val
		}
		val.owner = v
		p.owner, p.prev, p.next = nil, nil, nil
		return p, true
	}
	v.addChild(val)
	return nil, true
}

// ObjectRemove detaches and returns the member of an object with the given
// name, or nil if no such member exists. Time order O(n).
func (v *Value) ObjectRemove(name string) *Value {
	if v.kind != Object {
		return nil
	}
	p := v.Field(name)
	if p == nil {
		return nil
	}
	v.unlink(p)
	return p
}

// RemoveAll detaches every child of an array or object.
func (v *Value) RemoveAll() {
	for p := v.firstChild; p != nil; {
		next := p.next
		p.owner, p.prev, p.next = nil, nil, nil
		p = next
	}
	v.firstChild, v.lastChild = nil, nil
	v.numChildren = 0
}

// addChild appends a detached child at the end of the child list.
func (v *Value) addChild(child *Value) {
	child.owner = v
	child.prev, child.next = nil, nil
	if v.firstChild == nil {
		v.firstChild, v.lastChild = child, child
	} else {
		child.prev = v.lastChild
		v.lastChild.next = child
		v.lastChild = child
	}
	v.numChildren++
}

func (v *Value) unlink(p *Value) {
	if p.prev != nil {
		p.prev.next = p.next
	} else {
		v.firstChild = p.next
	}
	if p.next != nil {
		p.next.prev = p.prev
	} else {
		v.lastChild = p.prev
	}
	p.owner, p.prev, p.next = nil, nil, nil
	v.numChildren--
}
