package bench

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"dckp/internal/dckp"
	"dckp/internal/opt"
)

type Algorithm struct {
	Name    string
	Factory func(seed int64) opt.Optimizer
}

// Case — конфигурация серии запусков: размер экземпляра, плотность
// конфликтов и сид генерации (фиксирован для конфигурации).
type Case struct {
	Items        int
	Density      float64
	InstanceSeed int64
}

type Record struct {
	Algo    string
	Items   int
	Density float64
	Runs    int

	TimeBestMs float64
	TimeMeanMs float64
	TimeStdMs  float64

	ProfitBest int
	ProfitMean float64
	ProfitStd  float64

	FeasibleRuns int
}

type Runner struct {
	Runs          int
	BaseSeed      int64
	PerRunTimeout time.Duration // 0 = без ограничения
}

func (r Runner) RunCase(ctx context.Context, c Case, algo Algorithm) (Record, error) {
	instRng := randForSeed(c.InstanceSeed)
	inst := dckp.RandomInstance(c.Items, 1, 99, c.Density, instRng)

	profits := make([]int, 0, r.Runs)
	timesMs := make([]float64, 0, r.Runs)
	feasible := 0

	for i := 0; i < r.Runs; i++ {
		runSeed := r.BaseSeed + int64(i)

		op := algo.Factory(runSeed)

		runCtx := ctx
		cancel := func() {}
		if r.PerRunTimeout > 0 {
			runCtx, cancel = context.WithTimeout(ctx, r.PerRunTimeout)
		}
		start := time.Now()
		res, err := op.Solve(runCtx, inst)
		dur := time.Since(start)
		cancel()

		if err != nil && runCtx.Err() != nil {
			return Record{}, fmt.Errorf("run %d: cancelled/timeout: %w", i, err)
		}
		if err != nil {
			return Record{}, fmt.Errorf("run %d: solve error: %w", i, err)
		}
		if res.Weight > inst.Capacity {
			return Record{}, fmt.Errorf("run %d: infeasible result weight %d (capacity %d)", i, res.Weight, inst.Capacity)
		}
		if res.Feasible {
			feasible++
		}

		profits = append(profits, res.Profit)
		timesMs = append(timesMs, float64(dur.Microseconds())/1000.0)
	}

	pStats := CalcIntStats(profits, true)
	tStats := CalcFloatStats(timesMs)

	return Record{
		Algo:    algo.Name,
		Items:   c.Items,
		Density: c.Density,
		Runs:    r.Runs,

		TimeBestMs: tStats.Best,
		TimeMeanMs: tStats.Mean,
		TimeStdMs:  tStats.Std,

		ProfitBest: pStats.Best,
		ProfitMean: pStats.Mean,
		ProfitStd:  pStats.Std,

		FeasibleRuns: feasible,
	}, nil
}

func WriteCSV(path string, records []Record) error {
	if dir := dirOf(path); dir != "" {
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

	header := []string{
		"algo", "items", "density", "runs",
		"time_best_ms", "time_mean_ms", "time_std_ms",
		"profit_best", "profit_mean", "profit_std",
		"feasible_runs",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range records {
		row := []string{
			r.Algo,
			itoa(r.Items),
			ftoa(r.Density),
			itoa(r.Runs),

			ftoa(r.TimeBestMs),
			ftoa(r.TimeMeanMs),
			ftoa(r.TimeStdMs),

			itoa(r.ProfitBest),
			ftoa(r.ProfitMean),
			ftoa(r.ProfitStd),

			itoa(r.FeasibleRuns),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}
