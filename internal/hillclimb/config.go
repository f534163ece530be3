package hillclimb

import "fmt"

type Config struct {
	// Iterations — жёсткий предел принятых шагов улучшения.
	// Если 0, используется IterationsPerItem * n.
	Iterations        int
	IterationsPerItem int
}

func DefaultConfig() Config {
	return Config{
		Iterations:        0,
		IterationsPerItem: 10,
	}
}

func (c Config) Validate() error {
	if c.Iterations <= 0 && c.IterationsPerItem <= 0 {
		return fmt.Errorf(
			"должно быть задано Iterations > 0 или IterationsPerItem > 0",
		)
	}
	return nil
}
