package opt_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"dckp/internal/dckp"
	"dckp/internal/opt"
)

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

type fixedConstructor struct {
	res opt.Result
}

func (f fixedConstructor) Solve(_ context.Context, _ *dckp.Instance) (opt.Result, error) {
	return f.res, nil
}

// swapRefiner заменяет предмет 2 на предмет 1 и запоминает стартовые предметы.
type swapRefiner struct {
	seenSeed []int
}

func (r *swapRefiner) Improve(_ context.Context, inst *dckp.Instance, seed *dckp.Solution) (opt.Result, error) {
	r.seenSeed = seed.Items()
	sol := dckp.NewSolutionFromItems(inst, []int{1}, "refined")
	sol.Feasible = true
	return opt.FromSolution(sol, 2, 1, nil), nil
}

func TestFromSolution_CopiesItems(t *testing.T) {
	inst := scenarioInstance(t)
	sol := dckp.NewSolutionFromItems(inst, []int{2}, "test")
	sol.Feasible = true

	res := opt.FromSolution(sol, 3, 1, map[string]any{"k": "v"})
	require.Equal(t, []int{2}, res.Items)
	require.Equal(t, 15, res.Profit)
	require.Equal(t, 6, res.Weight)
	require.Equal(t, "test", res.Method)
	require.Equal(t, 3, res.Evaluations)

	// Дальнейшие изменения решения результат не затрагивают
	sol.Add(0, 10, 5)
	require.Equal(t, []int{2}, res.Items)
}

func TestResult_Solution(t *testing.T) {
	inst := scenarioInstance(t)
	sol := dckp.NewSolutionFromItems(inst, []int{0, 2}, "test")
	sol.Feasible = true

	res := opt.FromSolution(sol, 0, 0, nil)
	rebuilt := res.Solution(inst)

	require.Equal(t, []int{0, 2}, rebuilt.Items())
	require.Equal(t, 25, rebuilt.TotalProfit)
	require.Equal(t, 11, rebuilt.TotalWeight)
	require.Equal(t, "test", rebuilt.Method)
}

func TestPipeline(t *testing.T) {
	inst := scenarioInstance(t)

	base := opt.Result{
		Items:       []int{2},
		Profit:      15,
		Weight:      6,
		Feasible:    true,
		Evaluations: 7,
		Method:      "constructor",
	}
	refiner := &swapRefiner{}
	p := opt.Pipeline{Constructor: fixedConstructor{res: base}, Refiner: refiner}

	res, err := p.Solve(context.Background(), inst)
	require.NoError(t, err)

	// Уточнитель получил решение конструктора
	require.Equal(t, []int{2}, refiner.seenSeed)

	require.Equal(t, 20, res.Profit)
	require.Equal(t, []int{1}, res.Items)
	require.Equal(t, 9, res.Evaluations)
	require.Equal(t, "constructor", res.Meta["constructor"])
	require.Equal(t, 15, res.Meta["constructor_profit"])
}

func TestPipeline_NoRefiner(t *testing.T) {
	inst := scenarioInstance(t)
	base := opt.Result{Items: []int{2}, Profit: 15, Feasible: true, Method: "constructor"}
	p := opt.Pipeline{Constructor: fixedConstructor{res: base}}

	res, err := p.Solve(context.Background(), inst)
	require.NoError(t, err)
	require.Equal(t, base.Profit, res.Profit)
	require.Equal(t, base.Method, res.Method)
}
