package greedy

import (
	"context"
	"fmt"
	"sort"
	"time"

	"dckp/internal/dckp"
	"dckp/internal/opt"
)

// Solver — детерминированный жадный конструктор: один проход по предметам,
// отсортированным по выбранной стратегии.
type Solver struct {
	Cfg Config
}

// New возвращает новый жадный конструктор с валидацией конфигурации.
func New(cfg Config) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Solver{Cfg: cfg}, nil
}

// Solve — реализация эвристики.
func (s *Solver) Solve(ctx context.Context, inst *dckp.Instance) (opt.Result, error) {
	start := time.Now()

	if err := inst.Validate(); err != nil {
		return opt.Result{}, err
	}
	if err := s.Cfg.Validate(); err != nil {
		return opt.Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return opt.Result{}, err
	}

	val, err := dckp.NewValidator(inst)
	if err != nil {
		return opt.Result{}, err
	}

	sol := dckp.NewSolution()
	sol.Method = fmt.Sprintf("Greedy_%s", s.Cfg.Strategy)

	// Один проход по ранжированному списку: предмет добавляется,
	// если не нарушает ни вместимость, ни конфликты.
	for _, item := range s.sortByStrategy(inst) {
		if !val.CheckCapacity(sol.TotalWeight, inst.Weights[item]) {
			continue
		}
		if !val.CheckConflicts(item, sol) {
			continue
		}
		sol.Add(item, inst.Profits[item], inst.Weights[item])
	}

	val.Validate(sol)
	sol.Elapsed = time.Since(start)

	return opt.FromSolution(sol, inst.Items, 1, map[string]any{
		"strategy": string(s.Cfg.Strategy),
	}), nil
}

// score вычисляет ранг предмета для заданной стратегии.
// Больший ранг — более привлекательный предмет.
func score(inst *dckp.Instance, item int, strategy Strategy) float64 {
	switch strategy {
	case StrategyMaxProfit:
		return float64(inst.Profits[item])
	case StrategyMinWeight:
		return -float64(inst.Weights[item])
	case StrategyProfitWeight:
		if inst.Weights[item] == 0 {
			// Нулевой вес: предмет бесплатен, ранжируем по прибыли
			return float64(inst.Profits[item]) * 1000.0
		}
		return float64(inst.Profits[item]) / float64(inst.Weights[item])
	case StrategyMinConflicts:
		return -float64(inst.Degree(item))
	default:
		return 0.0
	}
}

// sortByStrategy возвращает индексы предметов по убыванию ранга.
// Сортировка стабильна: при равных рангах сохраняется порядок индексов.
func (s *Solver) sortByStrategy(inst *dckp.Instance) []int {
	order := make([]int, inst.Items)
	scores := make([]float64, inst.Items)
	for i := 0; i < inst.Items; i++ {
		order[i] = i
		scores[i] = score(inst, i, s.Cfg.Strategy)
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})
	return order
}

// ConstructAll запускает все стратегии и возвращает результаты
// в порядке Strategies.
func ConstructAll(ctx context.Context, inst *dckp.Instance) ([]opt.Result, error) {
	results := make([]opt.Result, 0, len(Strategies))
	for _, strategy := range Strategies {
		solver, err := New(Config{Strategy: strategy})
		if err != nil {
			return nil, err
		}
		res, err := solver.Solve(ctx, inst)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}
