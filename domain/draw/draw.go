// Package draw holds the fundamental draw type shared by the analyzer,
// the generation strategy and the backtest engine.
package draw

import (
	"fmt"
	"sort"
	"time"

	"golotto/internal/errors"
)

// Draw is one historical (or upcoming) set of distinct lottery numbers,
// tagged with its position in the sequence and an optional date.
type Draw struct {
	Index   int       `json:"index"`
	Date    time.Time `json:"date,omitempty"`
	Numbers []int     `json:"numbers"`
}

// Validate enforces the draw invariant: exactly k distinct values, all in
// [1, pool]. Draws normally arrive pre-validated by the data handler, but
// the core rejects malformed ones defensively.
func (d Draw) Validate(pool, k int) error {
	if len(d.Numbers) != k {
		return errors.MalformedDraw(fmt.Sprintf(
			"draw %d has %d numbers, want %d", d.Index, len(d.Numbers), k))
	}
	seen := make(map[int]bool, k)
	for _, n := range d.Numbers {
		if n < 1 || n > pool {
			return errors.MalformedDraw(fmt.Sprintf(
				"draw %d contains %d outside [1,%d]", d.Index, n, pool))
		}
		if seen[n] {
			return errors.MalformedDraw(fmt.Sprintf(
				"draw %d contains duplicate number %d", d.Index, n))
		}
		seen[n] = true
	}
	return nil
}

// ValidateAll validates a slice of draws against the pool/selection config
func ValidateAll(draws []Draw, pool, k int) error {
	for _, d := range draws {
		if err := d.Validate(pool, k); err != nil {
			return err
		}
	}
	return nil
}

// Match returns how many of the given numbers also appear in the draw
func (d Draw) Match(numbers []int) int {
	in := make(map[int]bool, len(d.Numbers))
	for _, n := range d.Numbers {
		in[n] = true
	}
	matches := 0
	for _, n := range numbers {
		if in[n] {
			matches++
		}
	}
	return matches
}

// Contains reports whether the draw includes n
func (d Draw) Contains(n int) bool {
	for _, v := range d.Numbers {
		if v == n {
			return true
		}
	}
	return false
}

// Sorted returns the draw numbers in ascending order without mutating the draw
func (d Draw) Sorted() []int {
	out := make([]int, len(d.Numbers))
	copy(out, d.Numbers)
	sort.Ints(out)
	return out
}
