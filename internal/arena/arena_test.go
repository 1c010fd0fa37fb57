// Copyright (C) 2025 Joshua M. Kriegshauser. All Rights Reserved.

package arena_test

import (
	"testing"

	"github.com/creachadair/mds/mtest"
	"github.com/jkriegshauser/fastjson/internal/arena"
)

func TestAlignment(t *testing.T) {
	a := arena.New()
	var prev []byte
	for _, size := range []int{1, 3, 7, 8, 9, 15, 64} {
		p := a.Alloc(size)
		if len(p) != size {
			t.Fatalf("Alloc(%d): got %d bytes, want %d", size, len(p), size)
		}
		if prev != nil {
			// Each range begins on a fresh alignment boundary, so writes to
			// the previous range must not clobber the new one.
			prev[len(prev)-1] = 0xff
			if p[0] == 0xff {
				t.Errorf("Alloc(%d) overlaps the previous range", size)
			}
		}
		prev = p
	}
}

func TestStaticFirst(t *testing.T) {
	a := arena.NewSize(1024, 256)
	for i := 0; i < 8; i++ {
		a.Alloc(100)
	}
	if n := a.HeapBlocks(); n != 0 {
		t.Errorf("HeapBlocks: got %d, want 0 while static block remains", n)
	}
	a.Alloc(1024)
	if n := a.HeapBlocks(); n != 1 {
		t.Errorf("HeapBlocks: got %d, want 1 after exhausting static block", n)
	}
}

func TestZeroStatic(t *testing.T) {
	a := arena.NewSize(0, 128)
	p := a.Alloc(10)
	if p == nil {
		t.Fatal("Alloc(10): got nil, want a range")
	}
	if n := a.HeapBlocks(); n != 1 {
		t.Errorf("HeapBlocks: got %d, want 1 (all allocations are heap-backed)", n)
	}
}

func TestOversizeRequest(t *testing.T) {
	a := arena.NewSize(64, 64)
	p := a.Alloc(10_000)
	if len(p) != 10_000 {
		t.Fatalf("Alloc(10000): got %d bytes, want 10000", len(p))
	}
}

func TestHeapFailure(t *testing.T) {
	a := arena.NewSize(16, 16)
	a.SetHeap(func(int) []byte { return nil })
	if p := a.Alloc(8); p == nil {
		t.Error("Alloc(8): got nil, want a range from the static block")
	}
	if p := a.Alloc(64); p != nil {
		t.Errorf("Alloc(64): got %d bytes, want nil after heap failure", len(p))
	}
}

func TestReset(t *testing.T) {
	a := arena.NewSize(32, 32)
	a.Alloc(1000)
	if n := a.HeapBlocks(); n == 0 {
		t.Fatal("HeapBlocks: got 0, want nonzero before Reset")
	}
	a.Reset()
	if n := a.HeapBlocks(); n != 0 {
		t.Errorf("HeapBlocks: got %d, want 0 after Reset", n)
	}
	if p := a.Alloc(8); p == nil {
		t.Error("Alloc(8): got nil, want a range after Reset")
	}
}

func TestBadAlign(t *testing.T) {
	a := arena.New()
	mtest.MustPanic(t, func() { a.SetAlign(3) })
	mtest.MustPanic(t, func() { a.SetAlign(0) })
}
