// Package rand provides random floating point numbers covering the whole
// range of representable values. It is safe for concurrent use.
package rand

import (
	"math"
	"math/rand"
	"sync"
	"time"
)

var seededRand *rand.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
var lock sync.Mutex

// Float64 returns a finite float64 from a uniformly random bit pattern. All
// exponents are equally likely, including subnormals and both zeros.
func Float64() float64 {
	lock.Lock()
	defer lock.Unlock()

	for {
		f := math.Float64frombits(seededRand.Uint64())
		if !math.IsNaN(f) && !math.IsInf(f, 0) {
			return f
		}
	}
}

// Float32 returns a finite float32 from a uniformly random bit pattern.
func Float32() float32 {
	lock.Lock()
	defer lock.Unlock()

	for {
		f := math.Float32frombits(seededRand.Uint32())
		if !math.IsNaN(float64(f)) && !math.IsInf(float64(f), 0) {
			return f
		}
	}
}

// Decimal returns a float64 with at most digits significant decimal digits
// and a decimal exponent in [-exp, exp]. These numbers hit rounding ties
// far more often than random bit patterns.
func Decimal(digits, exp int) float64 {
	lock.Lock()
	mantissa := seededRand.Int63n(int64(math.Pow10(digits)))
	e := seededRand.Intn(2*exp+1) - exp
	negative := seededRand.Intn(2) == 0
	lock.Unlock()

	f := float64(mantissa) * math.Pow10(e)
	if negative {
		f = -f
	}

	return f
}

// Intn returns a random int in [min, max].
func Intn(min, max int) int {
	lock.Lock()
	defer lock.Unlock()

	return min + seededRand.Intn(max-min+1)
}
