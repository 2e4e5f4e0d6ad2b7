// Package libc gives access to the C library's printf for comparing the
// output of gpoint with it. It is only available if cgo is enabled.
package libc

import "errors"

var ErrUnavailable = errors.New("the C library is not available, cgo is disabled")
var ErrOverflow = errors.New("formatted number doesn't fit into the buffer")

// bufferSize is large enough for any %g output with a precision of up to 100.
const bufferSize = 512
