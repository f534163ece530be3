package grasp

import (
	"context"
	"math/rand"
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

func newSolver(t *testing.T, cfg Config, seed int64) *Solver {
	t.Helper()
	s, err := New(cfg, rand.New(rand.NewSource(seed)))
	require.NoError(t, err)
	return s
}

func TestNew_NilRng(t *testing.T) {
	_, err := New(DefaultConfig(), nil)
	require.Error(t, err)
}

func TestScore(t *testing.T) {
	inst := scenarioInstance(t)
	s := newSolver(t, DefaultConfig(), 1)
	empty := dckp.NewSolution()

	// Предмет 2 без конфликтов: чистое отношение прибыль/вес
	require.InDelta(t, 2.5, s.score(inst, 2, empty), 1e-9)
	// Предмет 0: 10/5 со штрафом за степень 1
	require.InDelta(t, 2.0/1.1, s.score(inst, 0, empty), 1e-9)
	// Предмет 1: 20/8 со штрафом за степень 1
	require.InDelta(t, 2.5/1.1, s.score(inst, 1, empty), 1e-9)
}

func TestScore_ZeroWeight(t *testing.T) {
	inst, err := dckp.NewInstance(2, 10, []int{1, 100}, []int{0, 1}, nil)
	require.NoError(t, err)
	s := newSolver(t, DefaultConfig(), 1)
	empty := dckp.NewSolution()

	// Предмет с нулевым весом ранжируется выше любого обычного
	require.Greater(t, s.score(inst, 0, empty), s.score(inst, 1, empty))
}

func TestBuildRCL(t *testing.T) {
	inst := scenarioInstance(t)
	s := newSolver(t, DefaultConfig(), 1)
	val, err := dckp.NewValidator(inst)
	require.NoError(t, err)
	empty := dckp.NewSolution()

	// alpha=0 — только лучший кандидат
	require.Equal(t, []int{2}, s.buildRCL(inst, val, empty, 0.0))

	// alpha=1 — все допустимые кандидаты по убыванию ранга
	require.Equal(t, []int{2, 1, 0}, s.buildRCL(inst, val, empty, 1.0))
}

func TestBuildRCL_Empty(t *testing.T) {
	inst := scenarioInstance(t)
	s := newSolver(t, DefaultConfig(), 1)
	val, err := dckp.NewValidator(inst)
	require.NoError(t, err)

	// После выбора предмета 2 остаток вместимости 4: никто не помещается
	partial := dckp.NewSolutionFromItems(inst, []int{2}, "test")
	require.Nil(t, s.buildRCL(inst, val, partial, 1.0))
}

func TestSelectFromRCL_Empty(t *testing.T) {
	s := newSolver(t, DefaultConfig(), 1)
	require.Equal(t, -1, s.selectFromRCL(nil))
}

func TestConstruct_GreedyLimit(t *testing.T) {
	inst := scenarioInstance(t)
	cfg := DefaultConfig()
	cfg.Alpha = 0.0
	s := newSolver(t, cfg, 1)

	sol, err := s.Construct(inst)
	require.NoError(t, err)
	require.Equal(t, []int{2}, sol.Items())
	require.Equal(t, 15, sol.TotalProfit)
	require.True(t, sol.Feasible)
	require.Equal(t, "GRASP_alpha0.00", sol.Method)
}

func TestSolve(t *testing.T) {
	inst := scenarioInstance(t)
	cfg := Config{Iterations: 10, Alpha: 0.0, ConflictPenalty: 0.1}
	s := newSolver(t, cfg, 1)

	res, err := s.Solve(context.Background(), inst)
	require.NoError(t, err)
	require.True(t, res.Feasible)
	require.Equal(t, 15, res.Profit)
	require.Equal(t, []int{2}, res.Items)
	require.Equal(t, "GRASP_MultiStart_10_alpha0.00", res.Method)
	require.Equal(t, 10, res.Meta["valid_runs"])
	require.InDelta(t, 15.0, res.Meta["mean_profit"].(float64), 1e-9)
}

func TestSolve_Reproducible(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	inst := dckp.RandomInstance(40, 1, 99, 0.1, rng)
	cfg := Config{Iterations: 25, Alpha: 0.5, ConflictPenalty: 0.1}

	a, err := newSolver(t, cfg, 9).Solve(context.Background(), inst)
	require.NoError(t, err)
	b, err := newSolver(t, cfg, 9).Solve(context.Background(), inst)
	require.NoError(t, err)

	require.Equal(t, a.Profit, b.Profit)
	require.Equal(t, a.Items, b.Items)
}

func TestSeed_Resets(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	inst := dckp.RandomInstance(40, 1, 99, 0.1, rng)
	cfg := Config{Iterations: 25, Alpha: 0.5, ConflictPenalty: 0.1}
	s := newSolver(t, cfg, 9)

	a, err := s.Solve(context.Background(), inst)
	require.NoError(t, err)

	// Пересев возвращает генератор в исходное состояние
	s.Seed(9)
	b, err := s.Solve(context.Background(), inst)
	require.NoError(t, err)

	require.Equal(t, a.Profit, b.Profit)
	require.Equal(t, a.Items, b.Items)
}

func TestSolve_ContextCancelled(t *testing.T) {
	inst := scenarioInstance(t)
	s := newSolver(t, DefaultConfig(), 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := s.Solve(ctx, inst)
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, "context", res.Meta["stopped"])
}

func TestTuneAlpha(t *testing.T) {
	inst := scenarioInstance(t)
	cfg := Config{Iterations: 5, Alpha: 0.3, ConflictPenalty: 0.1}
	s := newSolver(t, cfg, 1)

	results, err := s.TuneAlpha(context.Background(), inst)
	require.NoError(t, err)
	require.Len(t, results, 11)
	require.InDelta(t, 0.0, results[0].Meta["alpha"].(float64), 1e-9)
	require.InDelta(t, 1.0, results[10].Meta["alpha"].(float64), 1e-9)

	// Исходная alpha восстановлена
	require.InDelta(t, 0.3, s.Cfg.Alpha, 1e-9)
}

func TestConfig_Validate(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
	}{
		{"ZeroIterations", Config{Iterations: 0, Alpha: 0.3, ConflictPenalty: 0.1}},
		{"AlphaTooLarge", Config{Iterations: 10, Alpha: 1.5, ConflictPenalty: 0.1}},
		{"AlphaNegative", Config{Iterations: 10, Alpha: -0.1, ConflictPenalty: 0.1}},
		{"NegativePenalty", Config{Iterations: 10, Alpha: 0.3, ConflictPenalty: -1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Error(t, tc.cfg.Validate())
		})
	}
	require.NoError(t, DefaultConfig().Validate())
}
