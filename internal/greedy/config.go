package greedy

import "fmt"

// Стратегия ранжирования предметов
type Strategy string

const (
	StrategyMaxProfit    Strategy = "max_profit"
	StrategyMinWeight    Strategy = "min_weight"
	StrategyProfitWeight Strategy = "profit_weight"
	StrategyMinConflicts Strategy = "min_conflicts"
)

// Strategies — все стратегии в порядке перебора ConstructAll.
var Strategies = []Strategy{
	StrategyMaxProfit,
	StrategyMinWeight,
	StrategyProfitWeight,
	StrategyMinConflicts,
}

type Config struct {
	Strategy Strategy
}

func DefaultConfig() Config {
	return Config{
		Strategy: StrategyProfitWeight,
	}
}

func (c Config) Validate() error {
	switch c.Strategy {
	case StrategyMaxProfit, StrategyMinWeight, StrategyProfitWeight, StrategyMinConflicts:
		// ok
	default:
		return fmt.Errorf(
			"неизвестная стратегия %q",
			c.Strategy,
		)
	}
	return nil
}
