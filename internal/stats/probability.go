package stats

// Probabilities holds threshold-crossing probabilities over an outcome
// sample, each a fraction in [0, 1]. Thresholds are strict inequalities
// against the cumulative-growth percentage.
type Probabilities struct {
	Positive   float64 // P(outcome > 0)
	Above10    float64 // P(outcome > 10)
	Above20    float64 // P(outcome > 20)
	BelowNeg10 float64 // P(outcome < -10)
}

// ComputeProbabilities derives threshold-crossing probabilities from the
// outcome sample in a single pass. Sample order does not matter.
func ComputeProbabilities(sample []float64) (Probabilities, error) {
	n := len(sample)
	if n == 0 {
		return Probabilities{}, ErrEmptySample
	}

	var positive, above10, above20, belowNeg10 int
	for _, v := range sample {
		if v > 0 {
			positive++
		}
		if v > 10 {
			above10++
		}
		if v > 20 {
			above20++
		}
		if v < -10 {
			belowNeg10++
		}
	}

	total := float64(n)
	return Probabilities{
		Positive:   float64(positive) / total,
		Above10:    float64(above10) / total,
		Above20:    float64(above20) / total,
		BelowNeg10: float64(belowNeg10) / total,
	}, nil
}
