// Package json implements helpers around encoding/json that write numbers like C's %g.
package json

import (
	"encoding/json"
	"errors"
	"math"

	"github.com/datarhei/gpoint"
)

// ErrNotFinite is returned by ToNumber for NaN and the infinities.
var ErrNotFinite = errors.New("JSON has no representation for NaN or infinity")

// Marshal is a wrapper for json.Marshal
func Marshal(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

// ToNumber returns f with prec significant digits as %g would write it, e.g.
// 100000 becomes 100000 and 1000000 becomes 1e+06.
func ToNumber(f float64, prec int) (json.Number, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", ErrNotFinite
	}

	s, err := gpoint.Render(f, prec)
	if err != nil {
		return "", err
	}

	return json.Number(s), nil
}
