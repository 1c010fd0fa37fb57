// Copyright (C) 2025 Joshua M. Kriegshauser. All Rights Reserved.

package fastjson_test

import (
	"math"
	"testing"

	"github.com/creachadair/mds/mtest"

	"github.com/jkriegshauser/fastjson"
)

func TestBuildTree(t *testing.T) {
	d := fastjson.New()
	root := d.Root()

	arr := d.NewArray()
	if _, ok := root.ObjectSet("list", arr); !ok {
		t.Fatal("ObjectSet list failed")
	}
	for i := 1; i <= 3; i++ {
		if !arr.ArrayAdd(d.NewNumber(float64(i))) {
			t.Fatalf("ArrayAdd %d failed", i)
		}
	}
	root.ObjectSet("name", d.NewString("demo"))
	root.ObjectSet("on", d.NewBool(true))
	root.ObjectSet("none", d.NewNull())

	got := fastjson.PrintString(root, fastjson.NoWhitespace)
	want := `{"list":[1,2,3],"name":"demo","on":true,"none":null}`
	if got != want {
		t.Errorf("built tree: got %q, want %q", got, want)
	}
}

func TestAtIndexing(t *testing.T) {
	d := fastjson.New()
	mustParse(t, d, []byte(`[10, 20, 30]`), fastjson.Auto, 0)
	arr := d.Root()

	tests := []struct {
		index int
		want  float64
		ok    bool
	}{
		{0, 10, true}, {1, 20, true}, {2, 30, true},
		{-1, 30, true}, {-2, 20, true}, {-3, 10, true},
		{3, 0, false}, {-4, 0, false},
	}
	for _, tc := range tests {
		v := arr.At(tc.index)
		if (v != nil) != tc.ok {
			t.Errorf("At(%d): got %v, want present=%v", tc.index, v, tc.ok)
			continue
		}
		if v != nil && v.Number() != tc.want {
			t.Errorf("At(%d): got %v, want %v", tc.index, v.Number(), tc.want)
		}
	}
}

func TestArrayInsertRemove(t *testing.T) {
	d := fastjson.New()
	mustParse(t, d, []byte(`[1, 3]`), fastjson.Auto, 0)
	arr := d.Root()

	if !arr.ArrayInsert(d.NewNumber(2), 1) {
		t.Fatal("ArrayInsert failed")
	}
	// Clamped indices insert at the ends.
	arr.ArrayInsert(d.NewNumber(0), math.MinInt32)
	arr.ArrayInsert(d.NewNumber(4), math.MaxInt32)

	if got := fastjson.PrintString(arr, fastjson.NoWhitespace); got != `[0,1,2,3,4]` {
		t.Fatalf("after inserts: got %q", got)
	}

	removed := arr.ArrayRemove(2)
	if removed == nil || removed.Number() != 2 {
		t.Fatalf("ArrayRemove(2): got %v", removed)
	}
	if removed.Parent() != nil {
		t.Error("removed value still has an owner")
	}

	// A detached value can be reattached elsewhere.
	if !arr.ArrayAdd(removed) {
		t.Fatal("re-adding removed value failed")
	}
	if got := fastjson.PrintString(arr, fastjson.NoWhitespace); got != `[0,1,3,4,2]` {
		t.Errorf("after remove/re-add: got %q", got)
	}

	// Attached values cannot be added twice.
	if arr.ArrayAdd(removed) {
		t.Error("ArrayAdd accepted an attached value")
	}
}

func TestArraySet(t *testing.T) {
	d := fastjson.New()
	mustParse(t, d, []byte(`[1, 2, 3]`), fastjson.Auto, 0)
	arr := d.Root()

	old, ok := arr.ArraySet(1, d.NewString("two"))
	if !ok || old == nil || old.Number() != 2 {
		t.Fatalf("ArraySet(1): old=%v ok=%v", old, ok)
	}
	if old.Parent() != nil {
		t.Error("replaced value still has an owner")
	}

	// Index exactly past the end appends.
	if _, ok := arr.ArraySet(3, d.NewNumber(4)); !ok {
		t.Fatal("ArraySet(3) append failed")
	}
	// Indices beyond that are rejected.
	if _, ok := arr.ArraySet(10, d.NewNumber(99)); ok {
		t.Error("ArraySet(10) accepted an out-of-range index")
	}

	if got := fastjson.PrintString(arr, fastjson.NoWhitespace); got != `[1,"two",3,4]` {
		t.Errorf("after sets: got %q", got)
	}
}

func TestObjectSetReplace(t *testing.T) {
	d := fastjson.New()
	mustParse(t, d, []byte(`{"a": 1, "b": 2}`), fastjson.Auto, 0)
	obj := d.Root()

	old, ok := obj.ObjectSet("a", d.NewNumber(10))
	if !ok || old == nil || old.Number() != 1 {
		t.Fatalf("ObjectSet replace: old=%v ok=%v", old, ok)
	}
	if got := obj.Field("a").Number(); got != 10 {
		t.Errorf("a: got %v, want 10", got)
	}
	// Replacement preserves member order.
	if got := fastjson.PrintString(obj, fastjson.NoWhitespace); got != `{"a":10,"b":2}` {
		t.Errorf("after replace: got %q", got)
	}

	// An empty name is rejected.
	if _, ok := obj.ObjectSet("", d.NewNull()); ok {
		t.Error("ObjectSet accepted an empty name")
	}
}

func TestObjectRemove(t *testing.T) {
	d := fastjson.New()
	mustParse(t, d, []byte(`{"a": 1, "b": 2, "c": 3}`), fastjson.Auto, 0)
	obj := d.Root()

	v := obj.ObjectRemove("b")
	if v == nil || v.Number() != 2 {
		t.Fatalf("ObjectRemove(b): got %v", v)
	}
	if obj.Field("b") != nil {
		t.Error("b still present after remove")
	}
	if obj.ObjectRemove("nope") != nil {
		t.Error("ObjectRemove of a missing name returned a value")
	}
	if got := obj.NumChildren(); got != 2 {
		t.Errorf("NumChildren: got %d, want 2", got)
	}
}

func TestRemoveAll(t *testing.T) {
	d := fastjson.New()
	mustParse(t, d, []byte(`[1, 2, 3]`), fastjson.Auto, 0)
	arr := d.Root()
	first := arr.At(0)

	arr.RemoveAll()
	if !arr.IsEmpty() || arr.FirstChild() != nil {
		t.Error("array not empty after RemoveAll")
	}
	if first.Parent() != nil || first.NextSibling() != nil {
		t.Error("detached value keeps stale links")
	}
}

func TestNameCopied(t *testing.T) {
	d := fastjson.New()
	name := string([]byte{'k', 'e', 'y'})
	d.Root().ObjectSet(name, d.NewNumber(1))
	if got := d.Root().FirstChild().NameString(); got != "key" {
		t.Errorf("NameString: got %q, want %q", got, "key")
	}
}

func TestCoercions(t *testing.T) {
	d := fastjson.New()
	mustParse(t, d, []byte(`{"n": "2.5", "t": true, "f": false, "z": null, "s": "yes"}`), fastjson.Auto, 0)
	obj := d.Root()

	if got := obj.Field("n").Number(); got != 2.5 {
		t.Errorf("n as number: got %v", got)
	}
	if got := obj.Field("t").Number(); got != 1 {
		t.Errorf("true as number: got %v", got)
	}
	if got := obj.Field("z").Number(); got != 0 {
		t.Errorf("null as number: got %v", got)
	}
	if !obj.Field("t").Bool() || obj.Field("f").Bool() || obj.Field("z").Bool() {
		t.Error("boolean coercion mismatch")
	}
	if obj.Field("s").Bool() {
		t.Error(`"yes" coerced to true`)
	}
	if got := obj.Field("t").String(); got != "true" {
		t.Errorf("true as string: got %q", got)
	}
}

func TestNewNumberNonFinite(t *testing.T) {
	d := fastjson.New()
	tests := []struct {
		input float64
		kind  fastjson.Kind
		text  string
	}{
		{2.5, fastjson.Number, "2.5"},
		{math.NaN(), fastjson.String, "NaN"},
		{math.Inf(1), fastjson.String, "Inf"},
		{math.Inf(-1), fastjson.String, "-Inf"},
	}
	for _, tc := range tests {
		v := d.NewNumber(tc.input)
		if v.Kind() != tc.kind || v.String() != tc.text {
			t.Errorf("NewNumber(%v): got %v %q, want %v %q",
				tc.input, v.Kind(), v.String(), tc.kind, tc.text)
		}
	}
}

func TestWideDocumentTree(t *testing.T) {
	d := fastjson.NewForEncoding(fastjson.UTF32)
	root := d.Root()
	root.ObjectSet("greeting", d.NewString("héllo 𝄞"))
	v := root.Field("greeting")
	if v == nil {
		t.Fatal("Field(greeting): not found")
	}
	if got := v.String(); got != "héllo 𝄞" {
		t.Errorf("String: got %q", got)
	}
	if got := len(v.Text()); got != 7*4 {
		t.Errorf("Text length: got %d bytes, want %d", got, 7*4)
	}
}

func TestNewForEncodingPanics(t *testing.T) {
	mtest.MustPanic(t, func() { fastjson.NewForEncoding(fastjson.UTF16Swap) })
	mtest.MustPanic(t, func() { fastjson.NewForEncoding(fastjson.UTF32Swap) })
	mtest.MustPanic(t, func() { fastjson.NewForEncoding(fastjson.Auto) })
}
