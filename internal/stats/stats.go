// Package stats derives stable pseudo-engagement numbers from content
// identifiers. There is no backing database: the contract is bit-exact
// reproducibility across processes and platforms, not measured telemetry.
package stats

import (
	"fmt"
	"unicode/utf16"
)

// Stats holds presentation-filler engagement numbers for one item.
type Stats struct {
	Views int
	Likes int
}

// Hash computes a 32-bit signed rolling hash over the seed's UTF-16 code
// units: h = h*31 + c with wrapping int32 arithmetic. Working on code units
// rather than runes keeps the output identical to the web client that
// originated these numbers.
func Hash(seed string) int32 {
	var h int32
	for _, c := range utf16.Encode([]rune(seed)) {
		h = h*31 + int32(c)
	}
	return h
}

// Compute returns the deterministic view and like counts for a seed.
// The empty seed yields {0, 0}.
func Compute(seed string) Stats {
	if seed == "" {
		return Stats{}
	}
	// Widen before abs so math.MinInt32 cannot overflow.
	h := int64(Hash(seed))
	base := abs(h%900000) + 500000
	views := base * (abs(h%5) + 2)
	likes := int64(float64(views) * (0.12 + float64(abs(h%15))/100))
	return Stats{Views: int(views), Likes: int(likes)}
}

// Accent maps a seed onto one of n stable accent buckets. n must be > 0;
// the empty seed always lands in bucket 0.
func Accent(seed string, n int) int {
	if seed == "" {
		return 0
	}
	return int(abs(int64(Hash(seed))) % int64(n))
}

// FormatCount renders a count the way the feed displays it: 1.2M, 3.4K,
// or plain digits below a thousand.
func FormatCount(n int) string {
	switch {
	case n >= 1000000:
		return fmt.Sprintf("%.1fM", float64(n)/1000000)
	case n >= 1000:
		return fmt.Sprintf("%.1fK", float64(n)/1000)
	default:
		return fmt.Sprintf("%d", n)
	}
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
