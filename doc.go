// Copyright (C) 2025 Joshua M. Kriegshauser. All Rights Reserved.

// Package fastjson implements a zero-copy JSON codec over raw byte buffers.
//
// # Parsing
//
// A Document owns the memory for one parsed tree. Construct one with New
// (UTF-8) or NewForEncoding, and call Parse with the raw input bytes. The
// input encoding is detected automatically, or may be stated explicitly:
//
//	d := fastjson.New()
//	if err := d.Parse(data, fastjson.Auto, 0); err != nil {
//	   log.Fatalf("Parse failed: %v", err)
//	}
//
// By default parsing is destructive: string and number values are captured
// as views directly into the input buffer, with escape sequences translated
// in place and NUL code units written over consumed delimiters. The input
// buffer must therefore outlive the Document and must not be reused. Pass
// NonDestructive or NonDestructiveNUL to keep the buffer pristine at the
// cost of copying into the Document's arena.
//
// Input may be UTF-8, UTF-16 or UTF-32 in either byte order; values are
// transcoded to the Document's encoding as they are captured. Errors are
// returned as *ParseError values carrying a short message and the byte
// offset of the fault.
//
// # The tree
//
// Parsed values form a doubly linked tree of Value nodes reached from
// (*Document).Root. Trees can also be built or edited programmatically:
// allocate detached nodes with the Document's New* methods and attach them
// with ArrayAdd, ArrayInsert, ObjectSet and friends. All node memory comes
// from the Document's arena and is released together when the Document is
// discarded or Reset.
//
// # Printing
//
// Print and PrintValue render a tree back to JSON text on an io.Writer,
// with tab, space or compact layouts selected by PrintFlags. All non-ASCII
// string content is re-escaped, so printed output is pure ASCII code units
// in the document's width.
package fastjson
