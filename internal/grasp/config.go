package grasp

import "fmt"

type Config struct {
	// Iterations — число независимых запусков конструирования (multi-start).
	Iterations int

	// Alpha — регулятор жадности/случайности RCL в [0,1]:
	// 0 — чисто жадный выбор, 1 — равновероятный среди всех допустимых.
	Alpha float64

	// ConflictPenalty — коэффициент штрафа за конфликты в функции ранга.
	// Эмпирическая константа, вынесена в конфигурацию.
	ConflictPenalty float64
}

func DefaultConfig() Config {
	return Config{
		Iterations:      100,
		Alpha:           0.3,
		ConflictPenalty: 0.1,
	}
}

func (c Config) Validate() error {
	if c.Iterations <= 0 {
		return fmt.Errorf(
			"Iterations должно быть > 0 (получено %d)",
			c.Iterations,
		)
	}
	if c.Alpha < 0 || c.Alpha > 1 {
		return fmt.Errorf(
			"alpha должно лежать в интервале [0,1] (получено %f)",
			c.Alpha,
		)
	}
	if c.ConflictPenalty < 0 {
		return fmt.Errorf(
			"ConflictPenalty должно быть >= 0 (получено %f)",
			c.ConflictPenalty,
		)
	}
	return nil
}
