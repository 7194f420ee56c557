package factory

import (
	opensimplex "github.com/ojrac/opensimplex-go"

	"cell-society/internal/config"
	"cell-society/internal/core"
)

// initialStates samples one state per cell from the configured probability
// distribution. Without a distribution every state is equally likely.
func initialStates(cfg config.Simulation, numStates int, rng *core.RNG) ([]int, error) {
	probs := cfg.StateProbabilities
	if len(probs) == 0 {
		probs = make([]float64, numStates)
		for i := range probs {
			probs[i] = 1 / float64(numStates)
		}
	}
	if len(probs) != numStates {
		return nil, core.Configf("stateProbabilities", "expected %d probabilities, got %d", numStates, len(probs))
	}
	cum := cumulative(probs)

	states := make([]int, cfg.Rows*cfg.Cols)
	switch cfg.Layout {
	case config.LayoutNoise:
		noise := opensimplex.NewNormalized(cfg.Seed)
		scale := cfg.NoiseScale
		if scale <= 0 {
			scale = config.DefaultConfig().NoiseScale
		}
		for row := 0; row < cfg.Rows; row++ {
			for col := 0; col < cfg.Cols; col++ {
				v := octaveNoise(noise, float64(col), float64(row), 3, scale, 0.5)
				states[row*cfg.Cols+col] = sample(cum, v)
			}
		}
	default:
		for i := range states {
			states[i] = sample(cum, rng.Float64())
		}
	}
	return states, nil
}

// cumulative normalises probs into an ascending cumulative table ending at 1.
func cumulative(probs []float64) []float64 {
	total := 0.0
	for _, p := range probs {
		total += p
	}
	cum := make([]float64, len(probs))
	acc := 0.0
	for i, p := range probs {
		acc += p / total
		cum[i] = acc
	}
	cum[len(cum)-1] = 1
	return cum
}

// sample returns the first state whose cumulative probability exceeds u.
func sample(cum []float64, u float64) int {
	for i, c := range cum {
		if u < c {
			return i
		}
	}
	return len(cum) - 1
}

// octaveNoise layers several frequencies of noise into a value in [0, 1).
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total, amplitude, maxVal := 0.0, 1.0, 0.0
	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}
	return total / maxVal
}
