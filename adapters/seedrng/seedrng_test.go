package seedrng

import "testing"

func sequence(s *Source, name string, seed int64, n int) []float64 {
	rng := s.Stream(name, seed)
	out := make([]float64, n)
	for i := range out {
		out[i] = rng.Float64()
	}
	return out
}

func TestStream_SameTripleSameSequence(t *testing.T) {
	src := New(42)
	first := sequence(src, "score", 0, 10)
	second := sequence(src, "score", 0, 10)

	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("value %d differs for identical stream: %g vs %g", i, first[i], second[i])
		}
	}
}

func TestStream_DifferentNamesDiverge(t *testing.T) {
	src := New(42)
	a := sequence(src, "score", 0, 10)
	b := sequence(src, "generate", 0, 10)

	same := true
	for i := range a {
		if a[i] != b[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("differently named streams produced identical sequences")
	}
}

func TestStream_DifferentSeedsDiverge(t *testing.T) {
	src := New(42)
	a := sequence(src, "backtest/0", 0, 10)
	b := sequence(src, "backtest/1", 1, 10)

	same := true
	for i := range a {
		if a[i] != b[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("differently seeded streams produced identical sequences")
	}
}

func TestStream_BaseSeedChangesSequence(t *testing.T) {
	a := sequence(New(1), "score", 0, 10)
	b := sequence(New(2), "score", 0, 10)

	same := true
	for i := range a {
		if a[i] != b[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("different base seeds produced identical sequences")
	}
}
