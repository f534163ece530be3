package dckp

import (
	"fmt"
	"sort"
	"time"
)

// Solution — изменяемое состояние кандидата: множество выбранных предметов
// и инкрементально поддерживаемые суммарные прибыль и вес.
// Флаг Feasible достоверен только после явного вызова Validator.Validate.
type Solution struct {
	selected map[int]struct{}

	TotalProfit int
	TotalWeight int
	Feasible    bool

	Elapsed time.Duration
	Method  string
}

// NewSolution возвращает пустое допустимое решение.
func NewSolution() *Solution {
	return &Solution{
		selected: make(map[int]struct{}),
		Feasible: true,
		Method:   "Unknown",
	}
}

// NewSolutionFromItems строит решение из списка предметов экземпляра inst.
func NewSolutionFromItems(inst *Instance, items []int, method string) *Solution {
	sol := NewSolution()
	sol.Method = method
	for _, item := range items {
		sol.Add(item, inst.Profits[item], inst.Weights[item])
	}
	return sol
}

// Add добавляет предмет. Повторное добавление уже присутствующего
// предмета — no-op, агрегаты не меняются.
func (s *Solution) Add(item, profit, weight int) {
	if _, ok := s.selected[item]; ok {
		return
	}
	s.selected[item] = struct{}{}
	s.TotalProfit += profit
	s.TotalWeight += weight
}

// Remove удаляет предмет. Удаление отсутствующего — no-op.
func (s *Solution) Remove(item, profit, weight int) {
	if _, ok := s.selected[item]; !ok {
		return
	}
	delete(s.selected, item)
	s.TotalProfit -= profit
	s.TotalWeight -= weight
}

func (s *Solution) Has(item int) bool {
	_, ok := s.selected[item]
	return ok
}

func (s *Solution) Len() int {
	return len(s.selected)
}

// Items возвращает выбранные предметы по возрастанию индекса.
// Отсортированный порядок фиксирует обход окрестностей и делает
// результаты воспроизводимыми при одинаковом сиде.
func (s *Solution) Items() []int {
	items := make([]int, 0, len(s.selected))
	for item := range s.selected {
		items = append(items, item)
	}
	sort.Ints(items)
	return items
}

// Clone возвращает независимую копию решения. Соседние решения всегда
// порождаются из копии, исходное не модифицируется.
func (s *Solution) Clone() *Solution {
	c := &Solution{
		selected:    make(map[int]struct{}, len(s.selected)),
		TotalProfit: s.TotalProfit,
		TotalWeight: s.TotalWeight,
		Feasible:    s.Feasible,
		Elapsed:     s.Elapsed,
		Method:      s.Method,
	}
	for item := range s.selected {
		c.selected[item] = struct{}{}
	}
	return c
}

// Clear сбрасывает решение в пустое состояние.
func (s *Solution) Clear() {
	s.selected = make(map[int]struct{})
	s.TotalProfit = 0
	s.TotalWeight = 0
	s.Feasible = true
	s.Elapsed = 0
}

func (s *Solution) String() string {
	status := "допустимо"
	if !s.Feasible {
		status = "недопустимо"
	}
	return fmt.Sprintf("[%s] прибыль=%d, вес=%d, предметов=%d, %s, %.4fs",
		s.Method, s.TotalProfit, s.TotalWeight, len(s.selected), status, s.Elapsed.Seconds())
}
