// Package gpoint formats floating point numbers exactly like the C library's
// printf("%g") does, for when the output has to match what a C program writes.
//
// The formatting is implemented in Go, no C library is involved:
//
//	fmt.Sprintf("%v", gpoint.New(42.0))        // "42"
//	fmt.Sprintf("%.3v", gpoint.New(1.2345))    // "1.23"
//	fmt.Sprintf("%4v", gpoint.New(42.0))       // "  42"
//	fmt.Sprintf("%-4v", gpoint.New(42.0))      // "42  "
//	fmt.Sprintf("%04v", gpoint.New(42.0))      // "0042"
//	fmt.Sprintf("%+v", gpoint.New(42.0))       // "+42"
//	fmt.Sprintf("%#v", gpoint.New(42.0))       // "42.0000"
//	fmt.Sprintf("%G", gpoint.New(123456789.0)) // "1.23457E+08"
package gpoint

import (
	"errors"
	"fmt"

	"github.com/datarhei/gpoint/mem"

	"golang.org/x/exp/constraints"
)

// Float is the set of types a GPoint can wrap. float32 values are formatted
// as their exact float64 value, like C promotes them in a printf call.
type Float interface {
	constraints.Float
}

// GPoint wraps a floating point number such that it is formatted like C's %g.
type GPoint[F Float] struct {
	v F
}

// New wraps v. The precision is chosen when the number is formatted.
func New[F Float](v F) GPoint[F] {
	return GPoint[F]{v: v}
}

// Value returns the wrapped number.
func (g GPoint[F]) Value() F {
	return g.v
}

// String returns the number formatted with the default precision.
func (g GPoint[F]) String() string {
	buf := mem.Get()
	defer mem.Put(buf)

	Spec{}.write(buf, float64(g.v))

	return buf.String()
}

// Render returns the number formatted with prec significant digits.
func (g GPoint[F]) Render(prec int) (string, error) {
	return Render(g.v, prec)
}

// Format implements fmt.Formatter. The verbs 'v', 'g' and 's' format like %g,
// 'G' like %G. Width, precision and the flags '-', '+', ' ', '0' and '#' have
// the same meaning as in C.
func (g GPoint[F]) Format(f fmt.State, verb rune) {
	s := Spec{}

	switch verb {
	case 'v', 'g', 's':
	case 'G':
		s.Upper = true
	default:
		fmt.Fprintf(f, "%%!%c(%T=%s)", verb, g, g.String())
		return
	}

	s.Minus = f.Flag('-')
	s.Plus = f.Flag('+')
	s.Space = f.Flag(' ')
	s.Zero = f.Flag('0')
	s.Sharp = f.Flag('#')

	if w, ok := f.Width(); ok {
		s.Width = w
	}

	if p, ok := f.Precision(); ok {
		s.Precision = p
		s.HasPrecision = true
	}

	switch err := s.Validate(); {
	case errors.Is(err, ErrWidthTooLarge), errors.Is(err, ErrNegativeWidth):
		fmt.Fprintf(f, "%%!%c(BADWIDTH)", verb)
		return
	case err != nil:
		fmt.Fprintf(f, "%%!%c(BADPREC)", verb)
		return
	}

	buf := mem.Get()
	defer mem.Put(buf)

	s.write(buf, float64(g.v))
	buf.WriteTo(f)
}

// Render returns v formatted with prec significant digits. A precision of 0
// counts as 1. A negative precision or one above MaxPrecision is an error.
func Render[F Float](v F, prec int) (string, error) {
	return Spec{Precision: prec, HasPrecision: true}.Format(float64(v))
}

// Append appends v formatted with prec significant digits to dst.
func Append[F Float](dst []byte, v F, prec int) ([]byte, error) {
	return Spec{Precision: prec, HasPrecision: true}.Append(dst, float64(v))
}
