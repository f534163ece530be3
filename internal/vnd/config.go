package vnd

import "fmt"

// Тип окрестности
type Neighborhood string

const (
	NeighborhoodAddDrop Neighborhood = "add_drop"
	NeighborhoodSwap11  Neighborhood = "swap_1_1"
	NeighborhoodSwap21  Neighborhood = "swap_2_1"
)

type Config struct {
	// Iterations — жёсткий предел итераций состояния поиска.
	// Если 0, используется IterationsPerItem * n.
	Iterations        int
	IterationsPerItem int

	// Order — порядок обхода окрестностей по возрастанию «размера» хода.
	Order []Neighborhood
}

func DefaultConfig() Config {
	return Config{
		Iterations:        0,
		IterationsPerItem: 10,
		Order: []Neighborhood{
			NeighborhoodAddDrop,
			NeighborhoodSwap11,
			NeighborhoodSwap21,
		},
	}
}

func (c Config) Validate() error {
	if c.Iterations <= 0 && c.IterationsPerItem <= 0 {
		return fmt.Errorf(
			"должно быть задано Iterations > 0 или IterationsPerItem > 0",
		)
	}
	if len(c.Order) == 0 {
		return fmt.Errorf("порядок окрестностей пуст")
	}
	seen := map[Neighborhood]bool{}
	for _, n := range c.Order {
		switch n {
		case NeighborhoodAddDrop, NeighborhoodSwap11, NeighborhoodSwap21:
			// ok
		default:
			return fmt.Errorf(
				"неизвестный тип окрестности %q",
				n,
			)
		}
		if seen[n] {
			return fmt.Errorf("окрестность %q указана дважды", n)
		}
		seen[n] = true
	}
	return nil
}
