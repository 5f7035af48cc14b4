package backtest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChanceBaseline_SumsToOne(t *testing.T) {
	probs := chanceBaseline(55, 6)
	require.Len(t, probs, 7)

	sum := 0.0
	for _, p := range probs {
		sum += p
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
	// matching nothing is by far the most likely outcome
	assert.Greater(t, probs[0], probs[6])
}

func TestChanceBaseline_DegenerateInputs(t *testing.T) {
	assert.Nil(t, chanceBaseline(0, 6))
	assert.Nil(t, chanceBaseline(55, 0))
	assert.Nil(t, chanceBaseline(5, 6))
}

func TestReportFold(t *testing.T) {
	rep := newReport("historical", 4, 3)
	for _, best := range []int{0, 1, 3, 3, 5} {
		rep.fold(best)
	}
	rep.finalize(55, 6)

	assert.Equal(t, 5, rep.Evaluated)
	assert.Equal(t, 5, rep.MaxMatches)
	assert.Equal(t, 3, rep.AlertCount)
	assert.Equal(t, 2, rep.Histogram[3])
	assert.InDelta(t, 0.6, rep.AlertRate, 1e-12)
	assert.InDelta(t, 2.4, rep.MeanBest, 1e-12)
	assert.InDelta(t, 3.0, rep.MedianBest, 1e-12)
}
