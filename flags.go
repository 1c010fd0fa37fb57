// Copyright (C) 2025 Joshua M. Kriegshauser. All Rights Reserved.

package fastjson

// Flags control how Parse captures strings and numbers and which grammar
// extensions are accepted. The zero value is the default: destructive
// zero-copy capture with NUL-terminated views and strict JSON grammar.
type Flags int

const (
	// NoStringTerminators leaves string and number captures without a
	// synthesized NUL code unit. Callers must rely on the view length.
	// Mutually exclusive with ForceStringTerminators.
	NoStringTerminators Flags = 1 << 0

	// NoInlineTranslation always copies strings that need translation
	// instead of rewriting the input buffer in place.
	NoInlineTranslation Flags = 1 << 1

	// ForceStringTerminators always copies strings into the arena so they
	// can be NUL-terminated without mutating the input buffer.
	ForceStringTerminators Flags = 1 << 2

	// TrailingCommas accepts a comma immediately before a closing ']' or '}'.
	TrailingCommas Flags = 1 << 3

	// Comments accepts //, /* */ and # comments wherever whitespace is valid.
	Comments Flags = 1 << 4

	// doSwap is set internally when the input byte order differs from the
	// machine byte order. Never set it directly.
	doSwap Flags = 1 << 30
)

const (
	// NonDestructive guarantees the input buffer is not modified. Captures
	// are not NUL-terminated.
	NonDestructive = NoStringTerminators | NoInlineTranslation

	// NonDestructiveNUL guarantees the input buffer is not modified while
	// still NUL-terminating every capture. Slightly less efficient than
	// NonDestructive because every string is copied.
	NonDestructiveNUL = ForceStringTerminators
)

// PrintFlags control the layout produced by the printer.
type PrintFlags int

const (
	Indent1Space  PrintFlags = 0x1 // one space per indent level, with UseSpaces
	Indent2Spaces PrintFlags = 0x2 // two spaces per indent level, with UseSpaces
	Indent4Spaces PrintFlags = 0x4 // four spaces per indent level, with UseSpaces; the default
	Indent8Spaces PrintFlags = 0x8 // eight spaces per indent level, with UseSpaces

	// NoWhitespace prints with as little whitespace as possible.
	NoWhitespace PrintFlags = 0x10

	// UseSpaces indents with spaces instead of tabs.
	UseSpaces PrintFlags = 0x20

	// skipName suppresses the name of the value being printed. Used when
	// printing a subtree whose root is an object member.
	skipName PrintFlags = 0x10000
)
