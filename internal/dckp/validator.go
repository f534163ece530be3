package dckp

import (
	"fmt"
	"strings"
)

// Validator — сервис проверки допустимости решений относительно экземпляра.
// Проверки не бросают ошибок: нарушение лишь помечает решение недопустимым.
type Validator struct {
	inst *Instance
}

func NewValidator(inst *Instance) (*Validator, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return &Validator{inst: inst}, nil
}

// CheckCapacity сообщает, помещается ли предмет с весом itemWeight
// в остаток вместимости при текущем весе currentWeight. Без побочных эффектов.
func (v *Validator) CheckCapacity(currentWeight, itemWeight int) bool {
	return currentWeight+itemWeight <= v.inst.Capacity
}

// CheckConflicts сообщает, что предмет item не конфликтует ни с одним
// из уже выбранных в sol.
func (v *Validator) CheckConflicts(item int, sol *Solution) bool {
	for _, selected := range sol.Items() {
		if v.inst.HasConflict(item, selected) {
			return false
		}
	}
	return true
}

// Validate выполняет полную перепроверку решения: агрегаты пересчитываются
// с нуля (любой дрейф отбрасывается), проверяются вместимость и все пары
// выбранных предметов. Флаг Feasible выставляется по результату.
// Нарушения логируются, но ошибкой не являются. Повторный вызов на
// неизменённом решении ничего не меняет.
func (v *Validator) Validate(sol *Solution) bool {
	v.recalculate(sol)

	valid := true
	if sol.TotalWeight > v.inst.Capacity {
		Log(1, "вместимость превышена: %d > %d (перевес %d)",
			sol.TotalWeight, v.inst.Capacity, sol.TotalWeight-v.inst.Capacity)
		valid = false
	}

	items := sol.Items()
	for i := 0; i < len(items); i++ {
		for j := i + 1; j < len(items); j++ {
			if v.inst.HasConflict(items[i], items[j]) {
				Log(1, "конфликт: %d <-> %d", items[i]+1, items[j]+1)
				valid = false
			}
		}
	}

	sol.Feasible = valid
	return valid
}

// Report возвращает развёрнутый отчёт о состоянии решения без изменения
// его полей.
func (v *Validator) Report(sol *Solution) string {
	var b strings.Builder

	items := sol.Items()
	fmt.Fprintf(&b, "Предметов: %d, Вес: %d/%d, Прибыль: %d",
		len(items), sol.TotalWeight, v.inst.Capacity, sol.TotalProfit)

	capacityOK := sol.TotalWeight <= v.inst.Capacity
	if capacityOK {
		b.WriteString(" | Вместимость: OK")
	} else {
		b.WriteString(" | Вместимость: НАРУШЕНА")
	}

	conflictCount := 0
	for i := 0; i < len(items); i++ {
		for j := i + 1; j < len(items); j++ {
			if v.inst.HasConflict(items[i], items[j]) {
				conflictCount++
			}
		}
	}
	fmt.Fprintf(&b, " | Конфликтов: %d", conflictCount)

	if capacityOK && conflictCount == 0 {
		b.WriteString(" | ДОПУСТИМО")
	} else {
		b.WriteString(" | НЕДОПУСТИМО")
	}
	return b.String()
}

// recalculate пересчитывает агрегаты решения напрямую по экземпляру.
func (v *Validator) recalculate(sol *Solution) {
	profit, weight := 0, 0
	for _, item := range sol.Items() {
		if item >= 0 && item < v.inst.Items {
			profit += v.inst.Profits[item]
			weight += v.inst.Weights[item]
		}
	}
	sol.TotalProfit = profit
	sol.TotalWeight = weight
}
