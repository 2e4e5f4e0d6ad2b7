//go:build cgo

package libc

/*
#include <stdio.h>
#include <stdlib.h>

static int format_double(char *buf, size_t size, const char *directive, double v) {
	return snprintf(buf, size, directive, v);
}
*/
import "C"

import (
	"unsafe"
)

// Available is true if Sprintf calls into the C library.
const Available = true

// Sprintf formats v with the C library's snprintf. The directive must contain
// exactly one conversion for a double, e.g. "%+08.3g".
func Sprintf(directive string, v float64) (string, error) {
	cdirective := C.CString(directive)
	defer C.free(unsafe.Pointer(cdirective))

	var buf [bufferSize]C.char

	n := C.format_double(&buf[0], C.size_t(len(buf)), cdirective, C.double(v))
	if n < 0 || int(n) >= len(buf) {
		return "", ErrOverflow
	}

	return C.GoStringN(&buf[0], n), nil
}
