// Package analysis builds per-number statistics from historical draws. The
// Table is the input to the scoring strategy and is rebuilt fresh for every
// evaluation point, never mutated in place.
package analysis

import (
	"golotto/domain/draw"
	"golotto/internal/config"
	"golotto/internal/errors"
)

// MinHistory is the smallest number of prior draws that yields a meaningful
// table. Generation fails below it; the backtester skips such indices.
const MinHistory = 10

// NumberStats holds the statistical signals for one number in the pool
type NumberStats struct {
	Number         int  `json:"number"`
	TotalCount     int  `json:"total_count"`
	RecentCount    int  `json:"recent_count"`
	DrawsSinceSeen int  `json:"draws_since_seen"`
	Cold           bool `json:"cold"`
	Prime          bool `json:"prime"`
	Low            bool `json:"low"`
	HighPrime      bool `json:"high_prime"`
}

// Table maps every number in the pool to its statistics. Immutable once built.
type Table struct {
	Pool         int           `json:"pool"`
	DrawCount    int           `json:"draw_count"`
	RecentWindow int           `json:"recent_window"`
	Stats        []NumberStats `json:"stats"` // Stats[i] describes number i+1
}

// RecentWindow returns the size of the recent-count window for a history of
// n draws: the most recent 20%, with a floor of one draw.
func RecentWindow(n int) int {
	w := n / 5
	if w < 1 {
		w = 1
	}
	return w
}

// BuildTable computes a fresh Table from the given history. Draws are
// validated defensively; a malformed draw aborts the build.
func BuildTable(history []draw.Draw, strat config.StrategyConfig) (*Table, error) {
	if len(history) < MinHistory {
		return nil, errors.InsufficientHistory(len(history), MinHistory)
	}
	if err := draw.ValidateAll(history, strat.NumberPool, strat.NumbersToSelect); err != nil {
		return nil, err
	}

	n := len(history)
	window := RecentWindow(n)

	t := &Table{
		Pool:         strat.NumberPool,
		DrawCount:    n,
		RecentWindow: window,
		Stats:        make([]NumberStats, strat.NumberPool),
	}

	lastSeen := make([]int, strat.NumberPool+1) // draw index of last appearance, -1 if never
	for i := range lastSeen {
		lastSeen[i] = -1
	}

	for i, d := range history {
		recent := i >= n-window
		for _, num := range d.Numbers {
			s := &t.Stats[num-1]
			s.TotalCount++
			if recent {
				s.RecentCount++
			}
			lastSeen[num] = i
		}
	}

	for num := 1; num <= strat.NumberPool; num++ {
		s := &t.Stats[num-1]
		s.Number = num
		if lastSeen[num] < 0 {
			s.DrawsSinceSeen = n
		} else {
			s.DrawsSinceSeen = n - lastSeen[num] - 1
		}
		s.Cold = s.DrawsSinceSeen >= strat.ColdThreshold
		s.Prime = IsPrime(num)
		s.Low = num <= strat.LowNumberMax
		s.HighPrime = s.Prime && num > strat.HighPrimeMin
	}

	return t, nil
}

// Get returns the stats for a number; the zero value for numbers off-pool
func (t *Table) Get(number int) NumberStats {
	if number < 1 || number > t.Pool {
		return NumberStats{}
	}
	return t.Stats[number-1]
}

// ColdNumbers returns every number currently flagged cold, ascending
func (t *Table) ColdNumbers() []int {
	var out []int
	for _, s := range t.Stats {
		if s.Cold {
			out = append(out, s.Number)
		}
	}
	return out
}

// Primes returns every prime number in the pool, ascending
func (t *Table) Primes() []int {
	var out []int
	for _, s := range t.Stats {
		if s.Prime {
			out = append(out, s.Number)
		}
	}
	return out
}

// IsPrime reports primality by trial division; pools are tens of numbers so
// nothing heavier is warranted
func IsPrime(n int) bool {
	if n < 2 {
		return false
	}
	for d := 2; d*d <= n; d++ {
		if n%d == 0 {
			return false
		}
	}
	return true
}
