package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"strconv"
	"strings"

	"dckp/internal/bench"
	"dckp/internal/dckp"
	"dckp/internal/grasp"
	"dckp/internal/greedy"
	"dckp/internal/hillclimb"
	"dckp/internal/opt"
	"dckp/internal/vnd"
)

// Фабрики

func newGreedyFactory(cfg greedy.Config) func(seed int64) opt.Optimizer {
	return func(seed int64) opt.Optimizer {
		solver, _ := greedy.New(cfg)
		return solver
	}
}

func newGRASPFactory(cfg grasp.Config) func(seed int64) opt.Optimizer {
	return func(seed int64) opt.Optimizer {
		solver, _ := grasp.New(cfg, rand.New(rand.NewSource(seed)))
		return solver
	}
}

func newPipelineFactory(cfg grasp.Config, refiner func() opt.Refiner) func(seed int64) opt.Optimizer {
	return func(seed int64) opt.Optimizer {
		constructor, _ := grasp.New(cfg, rand.New(rand.NewSource(seed)))
		return opt.Pipeline{Constructor: constructor, Refiner: refiner()}
	}
}

func main() {
	// CLI флаги для настройки параметров алгоритмов и политики запуска
	var (
		out          = flag.String("out", "artifacts/results.csv", "путь к выходному CSV-файлу")
		cases        = flag.String("cases", "100x0.02,500x0.05,1000x0.10", "конфигурации: количество предметов Х плотность конфликтов (через запятую)")
		algos        = flag.String("algos", "GREEDY,GRASP,GRASP+HC,GRASP+VND", "список алгоритмов: GREEDY, GRASP, GRASP+HC, GRASP+VND (через запятую)")
		runs         = flag.Int("runs", 30, "количество запусков каждого алгоритма (с разными сидами)")
		baseSeed     = flag.Int64("seed", 1000, "базовый сид для запусков алгоритмов")
		instanceSeed = flag.Int64("instance_seed", 777, "базовый сид для генерации экземпляров задачи (фиксирован для конфигурации)")
		perRunTO     = flag.Duration("per_run_timeout", 0, "таймаут одного запуска; 0 — без ограничения")
		logLvl       = flag.Int("log", 0, "уровень логирования (0 — тихо, 4 — максимально подробно)")

		// --- Жадный конструктор ---
		greedyStrategy = flag.String("greedy_strategy", "profit_weight", "стратегия ранжирования: max_profit | min_weight | profit_weight | min_conflicts")

		// --- GRASP ---
		graspIter    = flag.Int("grasp_iter", 100, "количество запусков конструирования (multi-start)")
		graspAlpha   = flag.Float64("grasp_alpha", 0.3, "регулятор жадности/случайности RCL в [0,1]")
		graspPenalty = flag.Float64("grasp_penalty", 0.1, "коэффициент штрафа за конфликты в функции ранга")

		// --- Восхождение (Swap 1-1) ---
		hcIter        = flag.Int("hc_iter", 0, "общий предел шагов улучшения (0 => hc_iter_per_item × n)")
		hcIterPerItem = flag.Int("hc_iter_per_item", 10, "предел шагов на один предмет (используется, если hc_iter == 0)")

		// --- VND ---
		vndIter        = flag.Int("vnd_iter", 0, "общий предел итераций (0 => vnd_iter_per_item × n)")
		vndIterPerItem = flag.Int("vnd_iter_per_item", 10, "предел итераций на один предмет (используется, если vnd_iter == 0)")
	)
	flag.Parse()

	dckp.InitLoggers(*logLvl)
	ctx := context.Background()

	benchCases, err := parseCases(*cases, *instanceSeed)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Конфликт:", err)
		os.Exit(2)
	}

	greedyCfg := greedy.Config{Strategy: greedy.Strategy(*greedyStrategy)}
	if err := greedyCfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "Конфликт в конфигурации жадного конструктора:", err)
		os.Exit(2)
	}

	graspCfg := grasp.Config{
		Iterations:      *graspIter,
		Alpha:           *graspAlpha,
		ConflictPenalty: *graspPenalty,
	}
	if err := graspCfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "Конфликт в конфигурации GRASP:", err)
		os.Exit(2)
	}

	hcCfg := hillclimb.Config{
		Iterations:        *hcIter,
		IterationsPerItem: *hcIterPerItem,
	}
	if err := hcCfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "Конфликт в конфигурации восхождения:", err)
		os.Exit(2)
	}

	vndCfg := vnd.DefaultConfig()
	vndCfg.Iterations = *vndIter
	vndCfg.IterationsPerItem = *vndIterPerItem
	if err := vndCfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "Конфликт в конфигурации VND:", err)
		os.Exit(2)
	}

	available := map[string]bench.Algorithm{
		"GREEDY": {Name: "GREEDY", Factory: newGreedyFactory(greedyCfg)},
		"GRASP":  {Name: "GRASP", Factory: newGRASPFactory(graspCfg)},
		"GRASP+HC": {Name: "GRASP+HC", Factory: newPipelineFactory(graspCfg, func() opt.Refiner {
			solver, _ := hillclimb.New(hcCfg)
			return solver
		})},
		"GRASP+VND": {Name: "GRASP+VND", Factory: newPipelineFactory(graspCfg, func() opt.Refiner {
			solver, _ := vnd.New(vndCfg)
			return solver
		})},
	}

	var selected []bench.Algorithm
	for _, a := range splitCSV(*algos) {
		al, ok := available[a]
		if !ok {
			fmt.Fprintf(os.Stderr, "Алгоритм не предоставлен в программе %q; доступные: %v\n", a, keys(available))
			os.Exit(2)
		}
		selected = append(selected, al)
	}

	runner := bench.Runner{
		Runs:          *runs,
		BaseSeed:      *baseSeed,
		PerRunTimeout: *perRunTO,
	}

	fmt.Println("Система:", bench.ReadSysInfo())

	var records []bench.Record
	for _, c := range benchCases {
		for _, a := range selected {
			fmt.Printf("Запущен алгоритм %s; %d предметов, плотность %.2f (общее кол-во запусков=%d)...\n", a.Name, c.Items, c.Density, runner.Runs)

			rec, err := runner.RunCase(ctx, c, a)
			if err != nil {
				fmt.Fprintln(os.Stderr, "Ошибка:", err)
				os.Exit(1)
			}
			records = append(records, rec)

			fmt.Printf("  Прибыль: лучшая=%d средняя=%.2f стандартное отклонение=%.2f | Время: среднее=%.2fms среднее отклонение=%.2fms | Допустимых=%d/%d\n",
				rec.ProfitBest, rec.ProfitMean, rec.ProfitStd,
				rec.TimeMeanMs, rec.TimeStdMs,
				rec.FeasibleRuns, rec.Runs,
			)
		}
	}

	if err := bench.WriteCSV(*out, records); err != nil {
		fmt.Fprintln(os.Stderr, "Ошибка при записи в CSV:", err)
		os.Exit(1)
	}
	fmt.Println("Saved:", *out)
}

// helpers

func parseCases(s string, baseInstanceSeed int64) ([]bench.Case, error) {
	parts := splitCSV(s)
	cases := make([]bench.Case, 0, len(parts))

	for i, p := range parts {
		nd := strings.Split(p, "x")
		if len(nd) != 2 {
			return nil, fmt.Errorf("конфигурация %q невалидной схемы, пример: 500x0.05", p)
		}
		items, err := strconv.Atoi(strings.TrimSpace(nd[0]))
		if err != nil {
			return nil, fmt.Errorf("конфигурация %q: ошибка парсинга количества предметов: %w", p, err)
		}
		density, err := strconv.ParseFloat(strings.TrimSpace(nd[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("конфигурация %q: ошибка парсинга плотности конфликтов: %w", p, err)
		}
		if items <= 0 {
			return nil, fmt.Errorf("конфигурация %q: количество предметов должно быть > 0", p)
		}
		if density < 0 || density > 1 {
			return nil, fmt.Errorf("конфигурация %q: плотность должна лежать в [0,1]", p)
		}

		seed := baseInstanceSeed + int64(i)*10_000 + int64(items)

		cases = append(cases, bench.Case{
			Items:        items,
			Density:      density,
			InstanceSeed: seed,
		})
	}

	return cases, nil
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func keys(m map[string]bench.Algorithm) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
