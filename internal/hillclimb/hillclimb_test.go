package hillclimb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"dckp/internal/dckp"
)

// 3 предмета, вместимость 10, конфликт между 0 и 1.
func scenarioInstance(t *testing.T) *dckp.Instance {
	t.Helper()
	inst, err := dckp.NewInstance(3, 10,
		[]int{10, 20, 15},
		[]int{5, 8, 6},
		[][2]int{{0, 1}},
	)
	require.NoError(t, err)
	return inst
}

func TestImprove_SwapEscapesGreedyLimit(t *testing.T) {
	inst := scenarioInstance(t)
	s, err := New(DefaultConfig())
	require.NoError(t, err)

	seed := dckp.NewSolutionFromItems(inst, []int{2}, "seed")
	res, err := s.Improve(context.Background(), inst, seed)
	require.NoError(t, err)

	// Обмен 2 -> 1 поднимает прибыль с 15 до 20
	require.Equal(t, 20, res.Profit)
	require.Equal(t, []int{1}, res.Items)
	require.True(t, res.Feasible)
	require.Equal(t, "HillClimbing", res.Method)
	require.Equal(t, 1, res.Meta["improvements"])

	// Стартовое решение не модифицировано
	require.Equal(t, []int{2}, seed.Items())
	require.Equal(t, 15, seed.TotalProfit)
}

func TestImprove_LocalOptimum(t *testing.T) {
	inst := scenarioInstance(t)
	s, err := New(DefaultConfig())
	require.NoError(t, err)

	seed := dckp.NewSolutionFromItems(inst, []int{1}, "seed")
	res, err := s.Improve(context.Background(), inst, seed)
	require.NoError(t, err)

	require.Equal(t, 20, res.Profit)
	require.Equal(t, []int{1}, res.Items)
	require.Equal(t, 0, res.Meta["improvements"])
	require.Equal(t, 0, res.Iterations)
}

func TestImprove_IterationCap(t *testing.T) {
	// Цепочка из двух улучшений: {0,1} -> {1,2} -> {2,3}
	inst, err := dckp.NewInstance(4, 4,
		[]int{1, 2, 10, 10},
		[]int{2, 2, 2, 2},
		nil,
	)
	require.NoError(t, err)

	seed := dckp.NewSolutionFromItems(inst, []int{0, 1}, "seed")

	full, err := New(DefaultConfig())
	require.NoError(t, err)
	res, err := full.Improve(context.Background(), inst, seed)
	require.NoError(t, err)
	require.Equal(t, 20, res.Profit)
	require.Equal(t, 2, res.Meta["improvements"])

	capped, err := New(Config{Iterations: 1})
	require.NoError(t, err)
	res, err = capped.Improve(context.Background(), inst, seed)
	require.NoError(t, err)
	require.Equal(t, 12, res.Profit)
	require.Equal(t, []int{1, 2}, res.Items)
	require.Equal(t, 1, res.Iterations)
}

func TestImprove_NilSeed(t *testing.T) {
	inst := scenarioInstance(t)
	s, err := New(DefaultConfig())
	require.NoError(t, err)

	_, err = s.Improve(context.Background(), inst, nil)
	require.Error(t, err)
}

func TestImprove_ContextCancelled(t *testing.T) {
	inst := scenarioInstance(t)
	s, err := New(DefaultConfig())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	seed := dckp.NewSolutionFromItems(inst, []int{2}, "seed")
	res, err := s.Improve(ctx, inst, seed)
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, "context", res.Meta["stopped"])
	// Возвращается стартовое решение без изменений
	require.Equal(t, 15, res.Profit)
}

func TestSwapNeighborhood(t *testing.T) {
	inst := scenarioInstance(t)
	sol := dckp.NewSolutionFromItems(inst, []int{2}, "seed")

	neighborhood := swapNeighborhood(inst, sol)
	require.Len(t, neighborhood, 2)

	profits := []int{neighborhood[0].TotalProfit, neighborhood[1].TotalProfit}
	require.ElementsMatch(t, []int{10, 20}, profits)
}

func TestConfig_Validate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
	require.NoError(t, Config{Iterations: 5}.Validate())
	require.Error(t, Config{}.Validate())
}
