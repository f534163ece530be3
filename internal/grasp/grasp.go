package grasp

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"dckp/internal/dckp"
	"dckp/internal/opt"
)

// Сигнальное значение ранга для предметов с нулевым весом:
// такие предметы ничего не стоят и должны ранжироваться выше всех.
const zeroWeightScore = 1e9

// Solver — рандомизированный жадный конструктор (GRASP).
// Генератор случайных чисел принадлежит солверу и продвигается
// последовательно между вызовами: при одинаковом сиде и одинаковой
// последовательности вызовов результаты воспроизводятся бит-в-бит.
type Solver struct {
	Cfg Config
	Rng *rand.Rand
}

// candidate — транзиентная пара предмет/ранг, живёт только внутри buildRCL.
type candidate struct {
	item  int
	score float64
}

// New возвращает новый GRASP-солвер с валидацией конфигурации, с использованием
// инициализированного генератора случайных чисел. Используется в фабриках.
func New(cfg Config, rng *rand.Rand) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("генератор случайных чисел не инициализирован (nil)")
	}
	return &Solver{Cfg: cfg, Rng: rng}, nil
}

// Seed пересевает генератор для воспроизводимых повторных запусков.
func (s *Solver) Seed(seed int64) {
	s.Rng = rand.New(rand.NewSource(seed))
}

// score вычисляет ранг предмета относительно частичного решения.
// База — прибыль/вес; штрафной множитель 1/(1+penalty*c), где c —
// число конфликтов с уже выбранными предметами плюс степень предмета
// в графе конфликтов. Статическая составляющая отводит выбор от
// предметов, закрывающих много будущих вариантов.
func (s *Solver) score(inst *dckp.Instance, item int, partial *dckp.Solution) float64 {
	var base float64
	if inst.Weights[item] > 0 {
		base = float64(inst.Profits[item]) / float64(inst.Weights[item])
	} else {
		base = zeroWeightScore
	}

	conflictCount := 0
	for _, selected := range partial.Items() {
		if inst.HasConflict(item, selected) {
			conflictCount++
		}
	}
	conflictCount += inst.Degree(item)

	return base / (1.0 + s.Cfg.ConflictPenalty*float64(conflictCount))
}

// buildRCL строит ограниченный список кандидатов: все невыбранные
// предметы, проходящие проверки вместимости и конфликтов, ранжируются,
// и в список попадают те, чей ранг не ниже порога
// max - alpha*(max-min). Пустой список — сигнал, что рост решения
// больше невозможен.
func (s *Solver) buildRCL(inst *dckp.Instance, val *dckp.Validator, partial *dckp.Solution, alpha float64) []int {
	candidates := make([]candidate, 0, inst.Items-partial.Len())

	for i := 0; i < inst.Items; i++ {
		if partial.Has(i) {
			continue
		}
		if !val.CheckCapacity(partial.TotalWeight, inst.Weights[i]) {
			continue
		}
		if !val.CheckConflicts(i, partial) {
			continue
		}
		candidates = append(candidates, candidate{item: i, score: s.score(inst, i, partial)})
	}

	if len(candidates) == 0 {
		return nil
	}

	// Сортировка по убыванию ранга; при равенстве — по индексу,
	// чтобы порядок не зависел от алгоритма сортировки.
	sort.SliceStable(candidates, func(a, b int) bool {
		return candidates[a].score > candidates[b].score
	})

	maxScore := candidates[0].score
	minScore := candidates[len(candidates)-1].score
	threshold := maxScore - alpha*(maxScore-minScore)

	rcl := make([]int, 0, len(candidates))
	for _, c := range candidates {
		if c.score >= threshold {
			rcl = append(rcl, c.item)
		}
	}
	return rcl
}

// selectFromRCL выбирает случайный элемент списка; -1 на пустом списке.
func (s *Solver) selectFromRCL(rcl []int) int {
	if len(rcl) == 0 {
		return -1
	}
	return rcl[s.Rng.Intn(len(rcl))]
}

// construct строит одно решение: пока RCL не пуст, добавляется случайный
// кандидат. Завершение гарантировано: каждый шаг уменьшает остаток
// вместимости и может только добавлять конфликты.
func (s *Solver) construct(inst *dckp.Instance, val *dckp.Validator, alpha float64) *dckp.Solution {
	start := time.Now()

	sol := dckp.NewSolution()
	sol.Method = fmt.Sprintf("GRASP_alpha%.2f", alpha)

	for {
		rcl := s.buildRCL(inst, val, sol, alpha)
		if len(rcl) == 0 {
			break
		}
		item := s.selectFromRCL(rcl)
		if item < 0 {
			break
		}
		sol.Add(item, inst.Profits[item], inst.Weights[item])
	}

	val.Validate(sol)
	sol.Elapsed = time.Since(start)
	return sol
}

// Construct выполняет один проход конструирования с alpha из конфигурации.
func (s *Solver) Construct(inst *dckp.Instance) (*dckp.Solution, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	val, err := dckp.NewValidator(inst)
	if err != nil {
		return nil, err
	}
	return s.construct(inst, val, s.Cfg.Alpha), nil
}

// Solve — multi-start: Iterations независимых конструирований от пустого
// решения, удерживается лучшее допустимое по прибыли (при равенстве —
// первое найденное). Средняя прибыль по допустимым запускам попадает
// в Meta как диагностика.
func (s *Solver) Solve(ctx context.Context, inst *dckp.Instance) (opt.Result, error) {
	start := time.Now()

	if err := inst.Validate(); err != nil {
		return opt.Result{}, err
	}
	if err := s.Cfg.Validate(); err != nil {
		return opt.Result{}, err
	}
	if s.Rng == nil {
		return opt.Result{}, fmt.Errorf("генератор случайных чисел не инициализирован (nil)")
	}

	val, err := dckp.NewValidator(inst)
	if err != nil {
		return opt.Result{}, err
	}

	var best *dckp.Solution
	profitSum := 0.0
	validRuns := 0

	for iter := 0; iter < s.Cfg.Iterations; iter++ {
		// Для поддержки отмены через context
		if err := ctx.Err(); err != nil {
			if best == nil {
				best = dckp.NewSolution()
			}
			res := s.result(best, iter, validRuns, profitSum)
			res.Duration = time.Since(start)
			res.Meta["stopped"] = "context"
			return res, err
		}

		current := s.construct(inst, val, s.Cfg.Alpha)
		if !current.Feasible {
			continue
		}
		validRuns++
		profitSum += float64(current.TotalProfit)
		if best == nil || current.TotalProfit > best.TotalProfit {
			best = current
			dckp.Log(3, "итерация %d: новая лучшая прибыль = %d", iter+1, current.TotalProfit)
		}
	}

	if best == nil {
		best = dckp.NewSolution()
	}
	best.Method = fmt.Sprintf("GRASP_MultiStart_%d_alpha%.2f", s.Cfg.Iterations, s.Cfg.Alpha)
	best.Elapsed = time.Since(start)

	return s.result(best, s.Cfg.Iterations, validRuns, profitSum), nil
}

func (s *Solver) result(best *dckp.Solution, iters, validRuns int, profitSum float64) opt.Result {
	meanProfit := 0.0
	if validRuns > 0 {
		meanProfit = profitSum / float64(validRuns)
	}
	return opt.FromSolution(best, validRuns, iters, map[string]any{
		"alpha":            s.Cfg.Alpha,
		"conflict_penalty": s.Cfg.ConflictPenalty,
		"valid_runs":       validRuns,
		"mean_profit":      meanProfit,
	})
}

// TuneAlpha прогоняет multi-start по сетке alpha 0.0..1.0 с шагом 0.1
// и возвращает результат для каждого значения.
func (s *Solver) TuneAlpha(ctx context.Context, inst *dckp.Instance) ([]opt.Result, error) {
	alphas := []float64{0.0, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0}
	results := make([]opt.Result, 0, len(alphas))

	saved := s.Cfg.Alpha
	defer func() { s.Cfg.Alpha = saved }()

	for _, alpha := range alphas {
		s.Cfg.Alpha = alpha
		res, err := s.Solve(ctx, inst)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}
