package game

import (
	"fmt"
	"math"

	"lukechampine.com/uint128"
)

// Possibility and deal counts legitimately exceed 64 bits, so all of the
// combinatorics below runs on uint128 values.

// The table is built by a variable initializer rather than init(), so it
// is ready before package-level values that depend on it (TotalDeals).
var binomial = buildBinomial()

func buildBinomial() (table [CardsPerDeck + 1][CardsPerDeck + 1]uint128.Uint128) {
	for n := 0; n <= CardsPerDeck; n++ {
		table[n][0] = uint128.From64(1)
		for k := 1; k <= n; k++ {
			table[n][k] = table[n-1][k-1].Add(table[n-1][k])
		}
	}
	return table
}

// Binomial returns C(n, k) for 0 <= n <= 52. k outside [0, n] yields zero.
func Binomial(n, k int) uint128.Uint128 {
	if n < 0 || n > CardsPerDeck {
		panic(fmt.Sprintf("binomial n out of range: %d", n))
	}
	if k < 0 || k > n {
		return uint128.Zero
	}
	return binomial[n][k]
}

// Float128 converts a uint128 to the nearest float64. Statistics and the
// expected-distribution computation tolerate the rounding.
func Float128(v uint128.Uint128) float64 {
	return math.Ldexp(float64(v.Hi), 64) + float64(v.Lo)
}

// HexString renders v as lowercase hex, zero filled to at least width digits.
func HexString(v uint128.Uint128, width int) string {
	s := fmt.Sprintf("%x", v.Big())
	for len(s) < width {
		s = "0" + s
	}
	return s
}

// ParseHex128 parses a hex string produced by HexString.
func ParseHex128(s string) (uint128.Uint128, error) {
	var v uint128.Uint128
	if s == "" {
		return v, fmt.Errorf("empty hex string")
	}
	for i := 0; i < len(s); i++ {
		var d uint64
		switch c := s[i]; {
		case c >= '0' && c <= '9':
			d = uint64(c - '0')
		case c >= 'a' && c <= 'f':
			d = uint64(c-'a') + 10
		case c >= 'A' && c <= 'F':
			d = uint64(c-'A') + 10
		default:
			return uint128.Zero, fmt.Errorf("not a hex digit: %c", c)
		}
		if v.Hi>>60 != 0 {
			return uint128.Zero, fmt.Errorf("hex string overflows 128 bits: %q", s)
		}
		v = v.Lsh(4).Or(uint128.From64(d))
	}
	return v, nil
}
