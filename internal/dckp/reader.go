package dckp

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
)

// ReadInstance читает экземпляр из текстового файла.
// Формат (поля разделяются любыми пробелами/переводами строк):
//
//	n W c
//	p_1 ... p_n
//	w_1 ... w_n
//	a b   (пары конфликтов, индексы с 1)
//
// Заявленное число конфликтов c не обязано совпадать с фактическим:
// пары читаются до конца файла, выходящие за диапазон — пропускаются.
func ReadInstance(path string) (*Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	sc.Split(bufio.ScanWords)

	nextInt := func(what string) (int, error) {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return 0, err
			}
			return 0, fmt.Errorf("%s: unexpected end of file reading %s", path, what)
		}
		v, err := strconv.Atoi(sc.Text())
		if err != nil {
			return 0, fmt.Errorf("%s: parsing %s: %w", path, what, err)
		}
		return v, nil
	}

	items, err := nextInt("item count")
	if err != nil {
		return nil, err
	}
	capacity, err := nextInt("capacity")
	if err != nil {
		return nil, err
	}
	declared, err := nextInt("conflict count")
	if err != nil {
		return nil, err
	}
	if items <= 0 || capacity <= 0 {
		return nil, fmt.Errorf("%s: invalid header: items=%d capacity=%d", path, items, capacity)
	}

	profits := make([]int, items)
	for i := range profits {
		if profits[i], err = nextInt(fmt.Sprintf("profit %d", i)); err != nil {
			return nil, err
		}
	}
	weights := make([]int, items)
	for i := range weights {
		if weights[i], err = nextInt(fmt.Sprintf("weight %d", i)); err != nil {
			return nil, err
		}
	}

	// Пары конфликтов до конца файла; конвертация из 1-базных индексов.
	var conflicts [][2]int
	for sc.Scan() {
		a, err := strconv.Atoi(sc.Text())
		if err != nil {
			return nil, fmt.Errorf("%s: parsing conflict pair: %w", path, err)
		}
		if !sc.Scan() {
			break
		}
		b, err := strconv.Atoi(sc.Text())
		if err != nil {
			return nil, fmt.Errorf("%s: parsing conflict pair: %w", path, err)
		}
		a--
		b--
		if a < 0 || a >= items || b < 0 || b >= items {
			continue
		}
		conflicts = append(conflicts, [2]int{a, b})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	inst, err := NewInstance(items, capacity, profits, weights, conflicts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if declared >= 0 && inst.NumConflicts() != declared {
		Log(3, "в %s заявлено %d конфликтов, прочитано %d", path, declared, inst.NumConflicts())
	}
	return inst, nil
}

// WriteSolution сохраняет решение в текстовый файл:
// первая строка — прибыль, вес и число предметов, вторая — предметы
// в 1-базной индексации.
func WriteSolution(path string, sol *Solution) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "%d %d %d\n", sol.TotalProfit, sol.TotalWeight, sol.Len())
	for _, item := range sol.Items() {
		fmt.Fprintf(w, "%d ", item+1)
	}
	fmt.Fprintln(w)
	return w.Flush()
}
