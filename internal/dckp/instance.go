package dckp

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
)

// Instance — неизменяемые данные задачи DCKP: рюкзак с попарными
// конфликтами между предметами. После загрузки не модифицируется.
type Instance struct {
	Items    int
	Capacity int
	// Profits и Weights имеют длину Items.
	Profits []int
	Weights []int
	// ConflictGraph[i] — список предметов, конфликтующих с i,
	// отсортированный по возрастанию (для бинарного поиска).
	ConflictGraph [][]int
}

// NewInstance строит экземпляр из массивов и списка конфликтных пар,
// валидируя данные. Пары симметричны; петли и дубликаты отбрасываются.
func NewInstance(items, capacity int, profits, weights []int, conflicts [][2]int) (*Instance, error) {
	inst := &Instance{
		Items:    items,
		Capacity: capacity,
		Profits:  profits,
		Weights:  weights,
	}
	inst.buildConflictGraph(conflicts)
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst, nil
}

func (inst *Instance) Validate() error {
	if inst == nil {
		return errors.New("instance is nil")
	}
	if inst.Items <= 0 {
		return fmt.Errorf("items must be > 0 (got %d)", inst.Items)
	}
	if inst.Capacity <= 0 {
		return fmt.Errorf("capacity must be > 0 (got %d)", inst.Capacity)
	}
	if len(inst.Profits) != inst.Items {
		return fmt.Errorf("profits length must be %d (got %d)", inst.Items, len(inst.Profits))
	}
	if len(inst.Weights) != inst.Items {
		return fmt.Errorf("weights length must be %d (got %d)", inst.Items, len(inst.Weights))
	}
	for i, v := range inst.Profits {
		if v < 0 {
			return fmt.Errorf("profits[%d] must be >= 0 (got %d)", i, v)
		}
	}
	for i, v := range inst.Weights {
		if v < 0 {
			return fmt.Errorf("weights[%d] must be >= 0 (got %d)", i, v)
		}
	}
	if len(inst.ConflictGraph) != inst.Items {
		return fmt.Errorf("conflict graph size must be %d (got %d)", inst.Items, len(inst.ConflictGraph))
	}
	for i, adj := range inst.ConflictGraph {
		for k, j := range adj {
			if j < 0 || j >= inst.Items {
				return fmt.Errorf("conflict %d-%d out of range [0,%d)", i, j, inst.Items)
			}
			if j == i {
				return fmt.Errorf("item %d conflicts with itself", i)
			}
			if k > 0 && adj[k-1] >= j {
				return fmt.Errorf("adjacency of item %d is not sorted or has duplicates", i)
			}
		}
	}
	return nil
}

// buildConflictGraph строит отсортированные списки смежности из пар.
// Невалидные пары (вне диапазона, петли) пропускаются, как и дубликаты.
func (inst *Instance) buildConflictGraph(conflicts [][2]int) {
	inst.ConflictGraph = make([][]int, inst.Items)
	seen := make(map[[2]int]bool, len(conflicts))
	for _, c := range conflicts {
		a, b := c[0], c[1]
		if a < 0 || a >= inst.Items || b < 0 || b >= inst.Items || a == b {
			continue
		}
		if a > b {
			a, b = b, a
		}
		if seen[[2]int{a, b}] {
			continue
		}
		seen[[2]int{a, b}] = true
		inst.ConflictGraph[a] = append(inst.ConflictGraph[a], b)
		inst.ConflictGraph[b] = append(inst.ConflictGraph[b], a)
	}
	for _, adj := range inst.ConflictGraph {
		sort.Ints(adj)
	}
}

// HasConflict сообщает, конфликтуют ли предметы a и b.
// Бинарный поиск по более короткому из двух списков смежности.
func (inst *Instance) HasConflict(a, b int) bool {
	if a < 0 || a >= inst.Items || b < 0 || b >= inst.Items {
		return false
	}
	adj := inst.ConflictGraph[a]
	target := b
	if len(inst.ConflictGraph[b]) < len(adj) {
		adj = inst.ConflictGraph[b]
		target = a
	}
	i := sort.SearchInts(adj, target)
	return i < len(adj) && adj[i] == target
}

// Degree возвращает число конфликтов предмета i в графе.
func (inst *Instance) Degree(i int) int {
	return len(inst.ConflictGraph[i])
}

// NumConflicts возвращает общее число конфликтных пар.
func (inst *Instance) NumConflicts() int {
	total := 0
	for _, adj := range inst.ConflictGraph {
		total += len(adj)
	}
	return total / 2
}

// ConflictDensity — плотность конфликтов в процентах от числа всех пар.
func (inst *Instance) ConflictDensity() float64 {
	if inst.Items <= 1 {
		return 0.0
	}
	return 200.0 * float64(inst.NumConflicts()) / (float64(inst.Items) * float64(inst.Items-1))
}

// Summary возвращает краткую сводку по экземпляру.
func (inst *Instance) Summary() string {
	minP, maxP := minMax(inst.Profits)
	minW, maxW := minMax(inst.Weights)
	return fmt.Sprintf("n=%d, W=%d, конфликтов=%d (%.2f%%), прибыль=[%d-%d], вес=[%d-%d]",
		inst.Items, inst.Capacity, inst.NumConflicts(), inst.ConflictDensity(),
		minP, maxP, minW, maxW)
}

func minMax(values []int) (int, int) {
	if len(values) == 0 {
		return 0, 0
	}
	lo, hi := values[0], values[0]
	for _, v := range values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// RandomInstance генерирует случайный экземпляр: прибыль и вес в диапазоне
// [minVal, maxVal], конфликтные пары с заданной плотностью density в [0,1].
// Вместимость — половина суммарного веса (стандарт для DCKP-наборов).
func RandomInstance(items, minVal, maxVal int, density float64, rng *rand.Rand) *Instance {
	if rng == nil {
		panic("генератор случайных чисел не инициализирован (nil)")
	}
	if items <= 0 || minVal < 0 || maxVal < minVal {
		panic("invalid instance bounds")
	}
	if density < 0 || density > 1 {
		panic("invalid conflict density")
	}
	profits := make([]int, items)
	weights := make([]int, items)
	span := maxVal - minVal + 1
	totalWeight := 0
	for i := 0; i < items; i++ {
		profits[i] = minVal
		weights[i] = minVal
		if span > 1 {
			profits[i] += rng.Intn(span)
			weights[i] += rng.Intn(span)
		}
		if weights[i] == 0 {
			weights[i] = 1
		}
		totalWeight += weights[i]
	}
	capacity := totalWeight / 2
	if capacity < 1 {
		capacity = 1
	}

	var conflicts [][2]int
	for i := 0; i < items; i++ {
		for j := i + 1; j < items; j++ {
			if rng.Float64() < density {
				conflicts = append(conflicts, [2]int{i, j})
			}
		}
	}

	inst, err := NewInstance(items, capacity, profits, weights, conflicts)
	if err != nil {
		panic(err)
	}
	return inst
}
