package hillclimb

import (
	"context"
	"fmt"
	"time"

	"dckp/internal/dckp"
	"dckp/internal/opt"
)

// Solver — локальный поиск восхождением с правилом best improvement
// на окрестности Swap(1-1).
type Solver struct {
	Cfg Config
}

// New возвращает новый солвер с валидацией конфигурации.
func New(cfg Config) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Solver{Cfg: cfg}, nil
}

// Improve улучшает переданное решение: на каждом шаге строится вся
// окрестность Swap(1-1) и принимается сосед с наибольшей прибылью,
// строго превышающей текущую. Остановка — локальный оптимум или
// исчерпание лимита итераций. Прибыль строго растёт на каждом принятом
// шаге, зацикливание невозможно. Исходное решение не модифицируется.
func (s *Solver) Improve(ctx context.Context, inst *dckp.Instance, seed *dckp.Solution) (opt.Result, error) {
	start := time.Now()

	if err := inst.Validate(); err != nil {
		return opt.Result{}, err
	}
	if err := s.Cfg.Validate(); err != nil {
		return opt.Result{}, err
	}
	if seed == nil {
		return opt.Result{}, fmt.Errorf("стартовое решение не задано (nil)")
	}

	maxIter := s.Cfg.Iterations
	if maxIter <= 0 {
		maxIter = s.Cfg.IterationsPerItem * inst.Items
	}

	curr := seed.Clone()
	curr.Method = "HillClimbing"

	evals := 0
	iter := 0
	improvements := 0

	for iter < maxIter {
		// Для поддержки отмены через context
		if err := ctx.Err(); err != nil {
			curr.Elapsed = time.Since(start)
			res := opt.FromSolution(curr, evals, iter, map[string]any{
				"improvements": improvements,
				"stopped":      "context",
			})
			return res, err
		}

		neighborhood := swapNeighborhood(inst, curr)
		evals += len(neighborhood)

		best := bestImproving(curr, neighborhood)
		if best == nil {
			// Локальный оптимум достигнут
			break
		}

		curr = best
		improvements++
		iter++
	}

	curr.Elapsed = time.Since(start)
	return opt.FromSolution(curr, evals, iter, map[string]any{
		"improvements": improvements,
	}), nil
}

// swapNeighborhood генерирует всех допустимых соседей Swap(1-1):
// для каждого выбранного item_out и невыбранного item_in обмен допустим,
// если итоговый вес не превышает вместимость и item_in не конфликтует
// с оставшимися выбранными предметами.
func swapNeighborhood(inst *dckp.Instance, sol *dckp.Solution) []*dckp.Solution {
	inSolution := sol.Items()

	outSolution := make([]int, 0, inst.Items-len(inSolution))
	for i := 0; i < inst.Items; i++ {
		if !sol.Has(i) {
			outSolution = append(outSolution, i)
		}
	}

	// Предварительная оценка размера окрестности
	neighborhood := make([]*dckp.Solution, 0, len(inSolution)*len(outSolution)/4)

	for _, itemOut := range inSolution {
		weightFreed := inst.Weights[itemOut]
		profitLost := inst.Profits[itemOut]

		for _, itemIn := range outSolution {
			newWeight := sol.TotalWeight - weightFreed + inst.Weights[itemIn]
			if newWeight > inst.Capacity {
				continue
			}

			hasConflict := false
			for _, remaining := range inSolution {
				if remaining == itemOut {
					continue
				}
				if inst.HasConflict(itemIn, remaining) {
					hasConflict = true
					break
				}
			}
			if hasConflict {
				continue
			}

			neighbor := sol.Clone()
			neighbor.Remove(itemOut, profitLost, weightFreed)
			neighbor.Add(itemIn, inst.Profits[itemIn], inst.Weights[itemIn])
			neighbor.Feasible = true
			neighborhood = append(neighborhood, neighbor)
		}
	}

	return neighborhood
}

// bestImproving возвращает соседа с наибольшей прибылью, строго
// превышающей прибыль текущего решения, либо nil, если такого нет.
func bestImproving(curr *dckp.Solution, neighborhood []*dckp.Solution) *dckp.Solution {
	var best *dckp.Solution
	for _, neighbor := range neighborhood {
		if neighbor.TotalProfit <= curr.TotalProfit {
			continue
		}
		if best == nil || neighbor.TotalProfit > best.TotalProfit {
			best = neighbor
		}
	}
	return best
}
