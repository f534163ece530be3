package opt

import (
	"context"
	"time"

	"dckp/internal/dckp"
)

// Optimizer — конструктивный алгоритм: строит решение с нуля.
type Optimizer interface {
	Solve(ctx context.Context, inst *dckp.Instance) (Result, error)
}

// Refiner — алгоритм локального поиска: улучшает переданное решение.
// Исходное решение не модифицируется.
type Refiner interface {
	Improve(ctx context.Context, inst *dckp.Instance, seed *dckp.Solution) (Result, error)
}

type Result struct {
	Items    []int
	Profit   int
	Weight   int
	Feasible bool

	Evaluations int
	Iterations  int
	Duration    time.Duration
	Method      string
	Meta        map[string]any
}

// FromSolution снимает значение Result с решения. Список предметов
// копируется, дальнейшие изменения решения результат не затрагивают.
func FromSolution(sol *dckp.Solution, evals, iters int, meta map[string]any) Result {
	return Result{
		Items:       sol.Items(),
		Profit:      sol.TotalProfit,
		Weight:      sol.TotalWeight,
		Feasible:    sol.Feasible,
		Duration:    sol.Elapsed,
		Method:      sol.Method,
		Evaluations: evals,
		Iterations:  iters,
		Meta:        meta,
	}
}

// Solution восстанавливает решение из результата для передачи в Refiner.
func (r Result) Solution(inst *dckp.Instance) *dckp.Solution {
	sol := dckp.NewSolutionFromItems(inst, r.Items, r.Method)
	sol.Feasible = r.Feasible
	sol.Elapsed = r.Duration
	return sol
}

// Pipeline связывает конструктивный алгоритм с локальным поиском:
// сначала строится стартовое решение, затем оно улучшается.
type Pipeline struct {
	Constructor Optimizer
	Refiner     Refiner
}

func (p Pipeline) Solve(ctx context.Context, inst *dckp.Instance) (Result, error) {
	start := time.Now()

	base, err := p.Constructor.Solve(ctx, inst)
	if err != nil {
		return base, err
	}
	if p.Refiner == nil {
		return base, nil
	}

	refined, err := p.Refiner.Improve(ctx, inst, base.Solution(inst))
	if err != nil {
		return refined, err
	}

	refined.Evaluations += base.Evaluations
	refined.Duration = time.Since(start)
	if refined.Meta == nil {
		refined.Meta = map[string]any{}
	}
	refined.Meta["constructor"] = base.Method
	refined.Meta["constructor_profit"] = base.Profit
	return refined, nil
}
