package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"

	"dckp/internal/bench"
	"dckp/internal/dckp"
	"dckp/internal/grasp"
	"dckp/internal/greedy"
	"dckp/internal/hillclimb"
	"dckp/internal/opt"
	"dckp/internal/vnd"
)

var (
	mode    = flag.String("mode", "single", "режим работы: single (все методы на одном экземпляре) или tune (калибровка alpha)")
	inputF  = flag.String("input", "", "путь к файлу экземпляра")
	outputF = flag.String("output", "results.csv", "путь к выходному CSV-файлу")
	bestF   = flag.String("best", "", "путь для сохранения лучшего решения (пусто — не сохранять)")
	seed    = flag.Int64("seed", 42, "сид генератора случайных чисел")
	logLvl  = flag.Int("log", 2, "уровень логирования (1 — ошибки, 4 — максимально подробно)")

	graspIter    = flag.Int("grasp_iter", 100, "количество запусков конструирования GRASP")
	graspAlpha   = flag.Float64("grasp_alpha", 0.3, "регулятор жадности/случайности RCL в [0,1]")
	graspPenalty = flag.Float64("grasp_penalty", 0.1, "коэффициент штрафа за конфликты")

	hcIterPerItem  = flag.Int("hc_iter_per_item", 10, "предел шагов восхождения на один предмет")
	vndIterPerItem = flag.Int("vnd_iter_per_item", 10, "предел итераций VND на один предмет")
)

func main() {
	flag.Parse()
	dckp.InitLoggers(*logLvl)

	if *inputF == "" {
		fmt.Fprintln(os.Stderr, "Не задан путь к экземпляру (-input)")
		os.Exit(2)
	}

	inst, err := dckp.ReadInstance(*inputF)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Ошибка при чтении экземпляра:", err)
		os.Exit(1)
	}

	fmt.Println("Экземпляр:", inst.Summary())
	fmt.Println("Система:", bench.ReadSysInfo())

	ctx := context.Background()
	name := filepath.Base(*inputF)

	graspCfg := grasp.Config{
		Iterations:      *graspIter,
		Alpha:           *graspAlpha,
		ConflictPenalty: *graspPenalty,
	}
	solver, err := grasp.New(graspCfg, rand.New(rand.NewSource(*seed)))
	if err != nil {
		fmt.Fprintln(os.Stderr, "Конфликт в конфигурации GRASP:", err)
		os.Exit(2)
	}

	var results []opt.Result

	switch *mode {
	case "single":
		results, err = runSingle(ctx, inst, solver)
	case "tune":
		results, err = solver.TuneAlpha(ctx, inst)
	default:
		fmt.Fprintf(os.Stderr, "Неизвестный режим %q\n", *mode)
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Ошибка:", err)
		os.Exit(1)
	}

	best := results[0]
	for _, res := range results {
		fmt.Printf("  [%s] прибыль=%d, вес=%d, предметов=%d, допустимо=%v, %.4fs\n",
			res.Method, res.Profit, res.Weight, len(res.Items), res.Feasible, res.Duration.Seconds())
		if res.Feasible && res.Profit > best.Profit {
			best = res
		}
	}
	fmt.Printf("Лучший метод: %s (прибыль %d)\n", best.Method, best.Profit)

	if err := writeResultsCSV(*outputF, name, results); err != nil {
		fmt.Fprintln(os.Stderr, "Ошибка при записи в CSV:", err)
		os.Exit(1)
	}
	fmt.Println("Saved:", *outputF)

	if *bestF != "" {
		if err := dckp.WriteSolution(*bestF, best.Solution(inst)); err != nil {
			fmt.Fprintln(os.Stderr, "Ошибка при сохранении решения:", err)
			os.Exit(1)
		}
		fmt.Println("Saved:", *bestF)
	}
}

// runSingle выполняет все методы на одном экземпляре: четыре жадные
// стратегии, GRASP multi-start и оба уточнителя поверх решения GRASP.
func runSingle(ctx context.Context, inst *dckp.Instance, solver *grasp.Solver) ([]opt.Result, error) {
	results, err := greedy.ConstructAll(ctx, inst)
	if err != nil {
		return nil, err
	}

	graspRes, err := solver.Solve(ctx, inst)
	if err != nil {
		return nil, err
	}
	results = append(results, graspRes)

	hcSolver, err := hillclimb.New(hillclimb.Config{IterationsPerItem: *hcIterPerItem})
	if err != nil {
		return nil, err
	}
	hcRes, err := hcSolver.Improve(ctx, inst, graspRes.Solution(inst))
	if err != nil {
		return nil, err
	}
	results = append(results, hcRes)

	vndCfg := vnd.DefaultConfig()
	vndCfg.IterationsPerItem = *vndIterPerItem
	vndSolver, err := vnd.New(vndCfg)
	if err != nil {
		return nil, err
	}
	vndRes, err := vndSolver.Improve(ctx, inst, graspRes.Solution(inst))
	if err != nil {
		return nil, err
	}
	results = append(results, vndRes)

	return results, nil
}

func writeResultsCSV(path, instance string, results []opt.Result) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"Instance", "Method", "Profit", "Weight", "NumItems", "Time", "Feasible"}); err != nil {
		return err
	}
	for _, res := range results {
		feasible := "No"
		if res.Feasible {
			feasible = "Yes"
		}
		row := []string{
			instance,
			res.Method,
			strconv.Itoa(res.Profit),
			strconv.Itoa(res.Weight),
			strconv.Itoa(len(res.Items)),
			strconv.FormatFloat(res.Duration.Seconds(), 'f', 6, 64),
			feasible,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}
