package stats

// Histogram holds equal-width bin counts over a sample's [Min, Max] range.
// Degenerate marks a zero-width range (Min == Max), in which case a unit
// range is substituted and every observation lands in bin 0.
type Histogram struct {
	Counts     []int
	Min        float64
	Max        float64
	Degenerate bool
}

// Bin assigns each sample value to one of bucketCount equal-width bins
// spanning [min(sample), max(sample)]. The bin index for a value is
// floor((v-min)/range * (bucketCount-1)), clamped into range. The sample
// does not need to be sorted.
func Bin(sample []float64, bucketCount int) (Histogram, error) {
	if len(sample) == 0 {
		return Histogram{}, ErrEmptySample
	}
	if bucketCount <= 0 {
		bucketCount = 1
	}

	minVal, maxVal := sample[0], sample[0]
	for _, v := range sample[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}

	h := Histogram{
		Counts: make([]int, bucketCount),
		Min:    minVal,
		Max:    maxVal,
	}

	span := maxVal - minVal
	if span <= 0 {
		// Zero-width distribution: substitute a unit range so the index
		// math below stays defined. Every value then maps to bin 0.
		span = 1.0
		h.Degenerate = true
	}

	for _, v := range sample {
		bin := int((v - minVal) / span * float64(bucketCount-1))
		if bin < 0 {
			bin = 0
		}
		if bin >= bucketCount {
			bin = bucketCount - 1
		}
		h.Counts[bin]++
	}

	return h, nil
}
