package ui

import "cell-society/internal/core"

type pheromoneField interface {
	FoodPheromone(i int) float64
	HomePheromone(i int) float64
}

type maxPheromone interface {
	MaxPheromone() float64
}

// PheromoneMasks returns the food and home pheromone levels of every cell
// normalised to [0, 1]. ok is false for rules without pheromones.
func PheromoneMasks(g *core.Grid) (food, home []float32, ok bool) {
	field, ok := g.Rule().(pheromoneField)
	if !ok {
		return nil, nil, false
	}
	limit := 1.0
	if m, ok := g.Rule().(maxPheromone); ok && m.MaxPheromone() > 0 {
		limit = m.MaxPheromone()
	}
	food = make([]float32, g.Len())
	home = make([]float32, g.Len())
	for i := range food {
		food[i] = float32(clamp01(field.FoodPheromone(i) / limit))
		home[i] = float32(clamp01(field.HomePheromone(i) / limit))
	}
	return food, home, true
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
