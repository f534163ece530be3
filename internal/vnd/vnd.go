package vnd

import (
	"context"
	"fmt"
	"time"

	"dckp/internal/dckp"
	"dckp/internal/opt"
)

// Solver — спуск с переменными окрестностями (VND): окрестности
// обходятся по возрастанию «размера» хода; улучшение сбрасывает поиск
// к первой окрестности, неудача переводит к следующей.
type Solver struct {
	Cfg Config
}

// New возвращает новый VND-солвер с валидацией конфигурации.
func New(cfg Config) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Solver{Cfg: cfg}, nil
}

// Improve улучшает переданное решение до совместного локального оптимума
// всех окрестностей либо до исчерпания лимита итераций. Каждый принятый
// ход строго увеличивает прибыль, ограниченную сверху суммой всех
// прибылей, поэтому процесс конечен. Исходное решение не модифицируется.
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
	curr.Method = "VND"

	evals := 0
	iter := 0
	improvements := 0
	k := 0

	for k < len(s.Cfg.Order) && iter < maxIter {
		// Для поддержки отмены через context
		if err := ctx.Err(); err != nil {
			curr.Elapsed = time.Since(start)
			res := opt.FromSolution(curr, evals, iter, map[string]any{
				"improvements": improvements,
				"stopped":      "context",
			})
			return res, err
		}

		neighborhood := generate(s.Cfg.Order[k], inst, curr)
		evals += len(neighborhood)

		best := bestImproving(curr, neighborhood)
		if best != nil {
			curr = best
			// Перезапуск с первой окрестности: принятый ход мог
			// открыть пропущенные ранее варианты
			k = 0
			improvements++
		} else {
			k++
		}
		iter++
	}

	curr.Elapsed = time.Since(start)
	return opt.FromSolution(curr, evals, iter, map[string]any{
		"improvements": improvements,
		"neighborhoods": len(s.Cfg.Order),
	}), nil
}

// generate отображает тег окрестности на её генератор.
func generate(n Neighborhood, inst *dckp.Instance, sol *dckp.Solution) []*dckp.Solution {
	switch n {
	case NeighborhoodAddDrop:
		return addDropNeighborhood(inst, sol)
	case NeighborhoodSwap11:
		return swap11Neighborhood(inst, sol)
	case NeighborhoodSwap21:
		return swap21Neighborhood(inst, sol)
	default:
		return nil
	}
}

// addDropNeighborhood (N1): ход Add для каждого невыбранного предмета,
// проходящего проверки, и ход Drop для каждого выбранного (всегда
// допустим: удаление не нарушает ни вместимость, ни конфликты).
func addDropNeighborhood(inst *dckp.Instance, sol *dckp.Solution) []*dckp.Solution {
	neighborhood := make([]*dckp.Solution, 0, inst.Items)
	inSolution := sol.Items()

	for i := 0; i < inst.Items; i++ {
		if sol.Has(i) {
			continue
		}
		if sol.TotalWeight+inst.Weights[i] > inst.Capacity {
			continue
		}

		hasConflict := false
		for _, selected := range inSolution {
			if inst.HasConflict(i, selected) {
				hasConflict = true
				break
			}
		}
		if hasConflict {
			continue
		}

		neighbor := sol.Clone()
		neighbor.Add(i, inst.Profits[i], inst.Weights[i])
		neighbor.Feasible = true
		neighborhood = append(neighborhood, neighbor)
	}

	for _, item := range inSolution {
		neighbor := sol.Clone()
		neighbor.Remove(item, inst.Profits[item], inst.Weights[item])
		neighbor.Feasible = true
		neighborhood = append(neighborhood, neighbor)
	}

	return neighborhood
}

// swap11Neighborhood (N2): обмен один-на-один, та же окрестность,
// что у восхождения.
func swap11Neighborhood(inst *dckp.Instance, sol *dckp.Solution) []*dckp.Solution {
	inSolution := sol.Items()

	outSolution := make([]int, 0, inst.Items-len(inSolution))
	for i := 0; i < inst.Items; i++ {
		if !sol.Has(i) {
			outSolution = append(outSolution, i)
		}
	}

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

// swap21Neighborhood (N3): удаление пары выбранных предметов и добавление
// одного невыбранного. Ходы, которые заведомо не улучшают цель
// (прибыль входящего не превышает суммарную прибыль пары), не материализуются.
// Требует хотя бы двух выбранных предметов.
func swap21Neighborhood(inst *dckp.Instance, sol *dckp.Solution) []*dckp.Solution {
	inSolution := sol.Items()
	if len(inSolution) < 2 {
		return nil
	}

	outSolution := make([]int, 0, inst.Items-len(inSolution))
	for i := 0; i < inst.Items; i++ {
		if !sol.Has(i) {
			outSolution = append(outSolution, i)
		}
	}

	var neighborhood []*dckp.Solution

	for i := 0; i < len(inSolution); i++ {
		for j := i + 1; j < len(inSolution); j++ {
			itemOut1 := inSolution[i]
			itemOut2 := inSolution[j]

			freedWeight := inst.Weights[itemOut1] + inst.Weights[itemOut2]
			freedProfit := inst.Profits[itemOut1] + inst.Profits[itemOut2]

			for _, itemIn := range outSolution {
				if inst.Profits[itemIn] <= freedProfit {
					continue
				}

				newWeight := sol.TotalWeight - freedWeight + inst.Weights[itemIn]
				if newWeight > inst.Capacity {
					continue
				}

				hasConflict := false
				for _, remaining := range inSolution {
					if remaining == itemOut1 || remaining == itemOut2 {
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
				neighbor.Remove(itemOut1, inst.Profits[itemOut1], inst.Weights[itemOut1])
				neighbor.Remove(itemOut2, inst.Profits[itemOut2], inst.Weights[itemOut2])
				neighbor.Add(itemIn, inst.Profits[itemIn], inst.Weights[itemIn])
				neighbor.Feasible = true
				neighborhood = append(neighborhood, neighbor)
			}
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
