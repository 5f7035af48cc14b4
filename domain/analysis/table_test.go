package analysis

import (
	"testing"

	"golotto/domain/draw"
	"golotto/internal/config"
	"golotto/internal/errors"
)

// cyclicHistory builds n deterministic valid draws over a 55-number pool
func cyclicHistory(n int) []draw.Draw {
	draws := make([]draw.Draw, n)
	for i := 0; i < n; i++ {
		numbers := make([]int, 6)
		for j := 0; j < 6; j++ {
			numbers[j] = (i+7*j)%55 + 1
		}
		draws[i] = draw.Draw{Index: i, Numbers: numbers}
	}
	return draws
}

func TestBuildTable_Counts(t *testing.T) {
	strat := config.Default().Strategy
	history := cyclicHistory(50)

	table, err := BuildTable(history, strat)
	if err != nil {
		t.Fatalf("BuildTable: %v", err)
	}

	if table.DrawCount != 50 {
		t.Errorf("DrawCount = %d, want 50", table.DrawCount)
	}
	if table.RecentWindow != 10 {
		t.Errorf("RecentWindow = %d, want 10", table.RecentWindow)
	}

	total := 0
	recent := 0
	for _, s := range table.Stats {
		total += s.TotalCount
		recent += s.RecentCount
	}
	if total != 50*6 {
		t.Errorf("summed TotalCount = %d, want %d", total, 50*6)
	}
	if recent != 10*6 {
		t.Errorf("summed RecentCount = %d, want %d", recent, 10*6)
	}
}

func TestBuildTable_Recency(t *testing.T) {
	strat := config.Default().Strategy
	history := cyclicHistory(50)

	table, err := BuildTable(history, strat)
	if err != nil {
		t.Fatalf("BuildTable: %v", err)
	}

	// the final draw's numbers were just seen
	last := history[49]
	for _, n := range last.Numbers {
		if got := table.Get(n).DrawsSinceSeen; got != 0 {
			t.Errorf("number %d DrawsSinceSeen = %d, want 0", n, got)
		}
	}
}

func TestBuildTable_NeverSeenNumberIsCold(t *testing.T) {
	strat := config.Default().Strategy
	strat.ColdThreshold = 30

	// constant history: number 55 never appears
	history := make([]draw.Draw, 40)
	for i := range history {
		history[i] = draw.Draw{Index: i, Numbers: []int{1, 2, 3, 4, 5, 6}}
	}

	table, err := BuildTable(history, strat)
	if err != nil {
		t.Fatalf("BuildTable: %v", err)
	}

	s := table.Get(55)
	if s.DrawsSinceSeen != 40 {
		t.Errorf("DrawsSinceSeen = %d, want 40", s.DrawsSinceSeen)
	}
	if !s.Cold {
		t.Error("never-seen number past the threshold should be cold")
	}
	if table.Get(1).Cold {
		t.Error("number seen every draw must not be cold")
	}
}

func TestBuildTable_Flags(t *testing.T) {
	strat := config.Default().Strategy // low_number_max 10, high_prime_min 35
	table, err := BuildTable(cyclicHistory(50), strat)
	if err != nil {
		t.Fatalf("BuildTable: %v", err)
	}

	tests := []struct {
		number    int
		prime     bool
		low       bool
		highPrime bool
	}{
		{number: 2, prime: true, low: true, highPrime: false},
		{number: 10, prime: false, low: true, highPrime: false},
		{number: 11, prime: true, low: false, highPrime: false},
		{number: 37, prime: true, low: false, highPrime: true},
		{number: 53, prime: true, low: false, highPrime: true},
		{number: 55, prime: false, low: false, highPrime: false},
	}
	for _, tt := range tests {
		s := table.Get(tt.number)
		if s.Prime != tt.prime || s.Low != tt.low || s.HighPrime != tt.highPrime {
			t.Errorf("number %d flags = prime:%v low:%v highPrime:%v, want prime:%v low:%v highPrime:%v",
				tt.number, s.Prime, s.Low, s.HighPrime, tt.prime, tt.low, tt.highPrime)
		}
	}
}

func TestBuildTable_InsufficientHistory(t *testing.T) {
	strat := config.Default().Strategy
	_, err := BuildTable(cyclicHistory(MinHistory-1), strat)
	if err == nil {
		t.Fatal("expected error for short history")
	}
	if !errors.IsCode(err, errors.CodeInsufficientHistory) {
		t.Errorf("expected INSUFFICIENT_HISTORY, got %s", errors.GetCode(err))
	}
}

func TestBuildTable_RejectsMalformedDraw(t *testing.T) {
	strat := config.Default().Strategy
	history := cyclicHistory(20)
	history[5].Numbers = []int{1, 1, 2, 3, 4, 5}

	_, err := BuildTable(history, strat)
	if !errors.IsCode(err, errors.CodeMalformedDraw) {
		t.Errorf("expected MALFORMED_DRAW, got %v", err)
	}
}

func TestRecentWindow(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{n: 0, want: 1},
		{n: 4, want: 1},
		{n: 50, want: 10},
		{n: 300, want: 60},
	}
	for _, tt := range tests {
		if got := RecentWindow(tt.n); got != tt.want {
			t.Errorf("RecentWindow(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

func TestIsPrime(t *testing.T) {
	primes := map[int]bool{2: true, 3: true, 5: true, 7: true, 11: true, 37: true, 53: true}
	for n := -1; n <= 55; n++ {
		want := primes[n] || n == 13 || n == 17 || n == 19 || n == 23 || n == 29 ||
			n == 31 || n == 41 || n == 43 || n == 47
		if got := IsPrime(n); got != want {
			t.Errorf("IsPrime(%d) = %v, want %v", n, got, want)
		}
	}
}
