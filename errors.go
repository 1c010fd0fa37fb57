// Copyright (C) 2025 Joshua M. Kriegshauser. All Rights Reserved.

package fastjson

import "fmt"

// A ParseError reports that the input is malformed, and the byte offset in
// the input buffer where parsing failed.
type ParseError struct {
	Msg    string // a short description of the error
	Offset int    // the byte offset where the error occurred
}

func (p *ParseError) Error() string {
	return fmt.Sprintf("%s (offset %d)", p.Msg, p.Offset)
}

// An ErrorHandler observes parse errors before they are returned from Parse.
// The handler may record or panic; it cannot resume the parse, which is
// aborted regardless of what the handler does.
type ErrorHandler func(*ParseError)
