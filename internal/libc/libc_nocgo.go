//go:build !cgo

package libc

// Available is true if Sprintf calls into the C library.
const Available = false

// Sprintf always returns ErrUnavailable.
func Sprintf(directive string, v float64) (string, error) {
	return "", ErrUnavailable
}
