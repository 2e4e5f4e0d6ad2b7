package gpoint

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/datarhei/gpoint/mem"
)

// DefaultPrecision is the number of significant digits used if no precision is given.
const DefaultPrecision = 6

// MaxPrecision and MaxWidth are the largest values accepted, the same limit
// fmt has for its own verbs.
const (
	MaxPrecision = 1_000_000
	MaxWidth     = 1_000_000
)

// ErrNegativePrecision is returned for a precision below 0.
var ErrNegativePrecision = errors.New("precision must not be negative")

// ErrNegativeWidth is returned for a width below 0.
var ErrNegativeWidth = errors.New("width must not be negative")

// ErrPrecisionTooLarge and ErrWidthTooLarge are returned above MaxPrecision and MaxWidth.
var ErrPrecisionTooLarge = fmt.Errorf("precision must not be larger than %d", MaxPrecision)
var ErrWidthTooLarge = fmt.Errorf("width must not be larger than %d", MaxWidth)

// ErrInvalidDirective wraps all errors of ParseSpec.
var ErrInvalidDirective = errors.New("invalid directive")

// Spec is a parsed %g conversion specification. The zero value is the plain "%g".
type Spec struct {
	Minus bool // left-justify within the field width
	Plus  bool // always write a sign
	Space bool // write a space in place of the plus sign
	Zero  bool // pad finite numbers with leading zeros
	Sharp bool // keep trailing zeros and the decimal point

	Width        int
	Precision    int
	HasPrecision bool

	// Upper selects %G, i.e. "E", "INF" and "NAN".
	Upper bool
}

// ParseSpec parses a C directive of the form %[flags][width][.precision][l|L](g|G).
func ParseSpec(directive string) (Spec, error) {
	s := Spec{}

	if len(directive) == 0 || directive[0] != '%' {
		return s, fmt.Errorf("%w: %q must start with '%%'", ErrInvalidDirective, directive)
	}

	i := 1

flags:
	for ; i < len(directive); i++ {
		switch directive[i] {
		case '-':
			s.Minus = true
		case '+':
			s.Plus = true
		case ' ':
			s.Space = true
		case '0':
			s.Zero = true
		case '#':
			s.Sharp = true
		default:
			break flags
		}
	}

	width, n, err := parseNumber(directive[i:])
	if err != nil {
		return s, fmt.Errorf("%w: %q width at position %d: %w", ErrInvalidDirective, directive, i, err)
	}
	s.Width = width
	i += n

	if i < len(directive) && directive[i] == '.' {
		i++

		prec, n, err := parseNumber(directive[i:])
		if err != nil {
			return s, fmt.Errorf("%w: %q precision at position %d: %w", ErrInvalidDirective, directive, i, err)
		}

		s.Precision = prec
		s.HasPrecision = true
		i += n
	}

	if i < len(directive) && (directive[i] == 'l' || directive[i] == 'L') {
		i++
	}

	if i >= len(directive) {
		return s, fmt.Errorf("%w: %q has no conversion", ErrInvalidDirective, directive)
	}

	switch directive[i] {
	case 'g':
	case 'G':
		s.Upper = true
	default:
		return s, fmt.Errorf("%w: %q has unsupported conversion '%c' at position %d", ErrInvalidDirective, directive, directive[i], i)
	}

	if i+1 != len(directive) {
		return s, fmt.Errorf("%w: %q has trailing characters at position %d", ErrInvalidDirective, directive, i+1)
	}

	if err := s.Validate(); err != nil {
		return s, fmt.Errorf("%w: %q: %w", ErrInvalidDirective, directive, err)
	}

	return s, nil
}

// parseNumber reads the leading decimal digits of s.
func parseNumber(s string) (int, int, error) {
	n := 0
	for n < len(s) && s[n] >= '0' && s[n] <= '9' {
		n++
	}

	if n == 0 {
		return 0, 0, nil
	}

	v, err := strconv.Atoi(s[:n])
	if err != nil {
		return 0, 0, err
	}

	return v, n, nil
}

// Directive returns the C directive that ParseSpec would turn into s.
func (s Spec) Directive() string {
	b := []byte{'%'}

	if s.Minus {
		b = append(b, '-')
	}
	if s.Plus {
		b = append(b, '+')
	}
	if s.Space {
		b = append(b, ' ')
	}
	if s.Zero {
		b = append(b, '0')
	}
	if s.Sharp {
		b = append(b, '#')
	}

	if s.Width > 0 {
		b = strconv.AppendInt(b, int64(s.Width), 10)
	}

	if s.HasPrecision {
		b = append(b, '.')
		b = strconv.AppendInt(b, int64(s.Precision), 10)
	}

	if s.Upper {
		b = append(b, 'G')
	} else {
		b = append(b, 'g')
	}

	return string(b)
}

// Validate checks the precision (if given) and the width are within
// [0, MaxPrecision] and [0, MaxWidth].
func (s Spec) Validate() error {
	if s.HasPrecision {
		if s.Precision < 0 {
			return ErrNegativePrecision
		}

		if s.Precision > MaxPrecision {
			return ErrPrecisionTooLarge
		}
	}

	if s.Width < 0 {
		return ErrNegativeWidth
	}

	if s.Width > MaxWidth {
		return ErrWidthTooLarge
	}

	return nil
}

// Append appends the formatted v to dst.
func (s Spec) Append(dst []byte, v float64) ([]byte, error) {
	if err := s.Validate(); err != nil {
		return dst, err
	}

	buf := mem.Get()
	defer mem.Put(buf)

	s.write(buf, v)

	return append(dst, buf.Bytes()...), nil
}

// Format returns v formatted according to s.
func (s Spec) Format(v float64) (string, error) {
	if err := s.Validate(); err != nil {
		return "", err
	}

	buf := mem.Get()
	defer mem.Put(buf)

	s.write(buf, v)

	return buf.String(), nil
}

// precision returns the number of significant digits. A precision of 0 counts as 1.
func (s Spec) precision() int {
	if !s.HasPrecision {
		return DefaultPrecision
	}

	if s.Precision == 0 {
		return 1
	}

	return s.Precision
}

// sign returns the byte to write in front of the number, or 0 for none.
// NaN is always treated as positive.
func (s Spec) sign(v float64) byte {
	if !math.IsNaN(v) && math.Signbit(v) {
		return '-'
	}

	if s.Plus {
		return '+'
	}

	if s.Space {
		return ' '
	}

	return 0
}

// write writes v including sign and padding to buf. s must be valid.
func (s Spec) write(buf *mem.Buffer, v float64) {
	num := mem.Get()
	defer mem.Put(num)

	num.Append(func(b []byte) []byte {
		return s.appendNumber(b, v)
	})

	sign := s.sign(v)

	size := num.Len()
	if sign != 0 {
		size++
	}

	padding := s.Width - size
	finite := !math.IsNaN(v) && !math.IsInf(v, 0)

	switch {
	case padding <= 0:
		padding = 0
		fallthrough
	case s.Minus:
		if sign != 0 {
			buf.WriteByte(sign)
		}
		num.WriteTo(buf)
		buf.WriteRepeat(' ', padding)
	case s.Zero && finite:
		if sign != 0 {
			buf.WriteByte(sign)
		}
		buf.WriteRepeat('0', padding)
		num.WriteTo(buf)
	default:
		buf.WriteRepeat(' ', padding)
		if sign != 0 {
			buf.WriteByte(sign)
		}
		num.WriteTo(buf)
	}
}

// appendNumber appends the unsigned %g representation of v to dst.
func (s Spec) appendNumber(dst []byte, v float64) []byte {
	switch {
	case math.IsNaN(v):
		return s.appendToken(dst, "nan")
	case math.IsInf(v, 0):
		return s.appendToken(dst, "inf")
	}

	v = math.Abs(v)
	p := s.precision()
	start := len(dst)

	// The exponent decides the notation, and it has to be the one after
	// rounding to p significant digits, e.g. 9.9999996 becomes 1.00000e+01.
	dst = strconv.AppendFloat(dst, v, 'e', p-1, 64)
	mark := start + bytes.LastIndexByte(dst[start:], 'e')
	x := exponent(dst[mark+1:])

	if x < -4 || x >= p {
		return s.appendExponential(dst, start, mark)
	}

	decimals := p - 1 - x

	dst = strconv.AppendFloat(dst[:start], v, 'f', decimals, 64)

	if s.Sharp {
		if decimals == 0 {
			dst = append(dst, '.')
		}

		return dst
	}

	return dst[:start+trimZeros(dst[start:])]
}

// appendExponential finishes the 'e' formatted number in dst[start:], where
// dst[mark] is the exponent marker.
func (s Spec) appendExponential(dst []byte, start, mark int) []byte {
	if s.Sharp {
		if bytes.IndexByte(dst[start:mark], '.') == -1 {
			dst = append(dst, 0)
			copy(dst[mark+1:], dst[mark:])
			dst[mark] = '.'
			mark++
		}
	} else {
		end := start + trimZeros(dst[start:mark])
		dst = append(dst[:end], dst[mark:]...)
		mark = end
	}

	if s.Upper {
		dst[mark] = 'E'
	}

	return dst
}

func (s Spec) appendToken(dst []byte, token string) []byte {
	if !s.Upper {
		return append(dst, token...)
	}

	for i := 0; i < len(token); i++ {
		dst = append(dst, token[i]-'a'+'A')
	}

	return dst
}

// exponent parses a signed exponent as written by strconv, e.g. "+05" or "-123".
func exponent(b []byte) int {
	x := 0
	for _, c := range b[1:] {
		x = x*10 + int(c-'0')
	}

	if b[0] == '-' {
		return -x
	}

	return x
}

// trimZeros returns the length of b without the trailing zeros of its fraction
// and without a then dangling decimal point.
func trimZeros(b []byte) int {
	if bytes.IndexByte(b, '.') == -1 {
		return len(b)
	}

	i := len(b)
	for b[i-1] == '0' {
		i--
	}

	if b[i-1] == '.' {
		i--
	}

	return i
}
