package bench

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCalcIntStats(t *testing.T) {
	s := CalcIntStats([]int{3, 1, 2}, true)
	require.Equal(t, 3, s.N)
	require.Equal(t, 3, s.Best)
	require.InDelta(t, 2.0, s.Mean, 1e-9)
	require.InDelta(t, 1.0, s.Std, 1e-9)

	// При минимизации лучшим считается минимум
	s = CalcIntStats([]int{3, 1, 2}, false)
	require.Equal(t, 1, s.Best)
}

func TestCalcIntStats_Empty(t *testing.T) {
	s := CalcIntStats(nil, true)
	require.Equal(t, 0, s.N)
	require.Equal(t, 0, s.Best)
}

func TestCalcIntStats_Single(t *testing.T) {
	s := CalcIntStats([]int{7}, true)
	require.Equal(t, 7, s.Best)
	require.InDelta(t, 7.0, s.Mean, 1e-9)
	require.InDelta(t, 0.0, s.Std, 1e-9)
}

func TestCalcFloatStats(t *testing.T) {
	s := CalcFloatStats([]float64{2.0, 4.0})
	require.Equal(t, 2, s.N)
	require.InDelta(t, 2.0, s.Best, 1e-9)
	require.InDelta(t, 3.0, s.Mean, 1e-9)
	require.InDelta(t, math.Sqrt2, s.Std, 1e-9)
}
