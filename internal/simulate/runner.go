package simulate

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"growthsim/internal/forecast"
)

// ErrNoTrials is returned when a run is requested with a non-positive trial
// count.
var ErrNoTrials = errors.New("simulate: trial count must be positive")

// chunkSize is the number of consecutive trial indices served by one
// NormalSource instance. Chunk boundaries depend only on the trial count,
// never on the worker count, so the produced samples are identical for any
// degree of parallelism given the same base seed.
const chunkSize = 256

// seedMix spreads consecutive chunk indices across the seed space (the
// LCG multiplier from PCG).
const seedMix int64 = 0x5851F42D4C957F2D

// Runner executes independent trials for one forecast record, fanning
// chunks of trial indices out to parallel workers.
type Runner struct {
	workers int
	seed    int64

	// progress, when non-nil, receives advisory completion updates at
	// roughly ten evenly spaced milestones. It may be called from multiple
	// goroutines and must not block.
	progress func(done, total int)
}

// NewRunner creates a Runner. workers <= 1 selects strictly sequential
// execution. The seed determines every draw of the run; pass a time-based
// value for production runs or a fixed one for reproducibility.
func NewRunner(workers int, seed int64, progress func(done, total int)) *Runner {
	if workers < 1 {
		workers = 1
	}
	return &Runner{workers: workers, seed: seed, progress: progress}
}

// Run executes trialCount independent trials of the record under the given
// noise model. It returns the outcome sample in trial order and one
// per-year sample per forecast year (perYear[y][i] is year y's simulated
// rate in trial i). Each trial writes only its own pre-sized slots, so the
// result is reproducible regardless of execution order.
func (r *Runner) Run(ctx context.Context, rec forecast.Record, noise NoiseModel, trialCount int) ([]float64, [][]float64, error) {
	if err := rec.Validate(); err != nil {
		return nil, nil, err
	}
	if trialCount <= 0 {
		return nil, nil, fmt.Errorf("%w: %d", ErrNoTrials, trialCount)
	}

	years := rec.NumYears()
	outcomes := make([]float64, trialCount)
	perYear := make([][]float64, years)
	for y := range perYear {
		perYear[y] = make([]float64, trialCount)
	}

	chunks := (trialCount + chunkSize - 1) / chunkSize

	runChunk := func(chunk int, done *atomic.Int64) {
		start := chunk * chunkSize
		end := min(start+chunkSize, trialCount)

		src := NewNormalSource(r.chunkSeed(chunk))
		rates := make([]float64, years)

		for i := start; i < end; i++ {
			outcomes[i] = Trial(rec, noise, src, rates)
			for y := 0; y < years; y++ {
				perYear[y][i] = rates[y]
			}
		}

		r.reportProgress(done, end-start, trialCount)
	}

	var done atomic.Int64

	if r.workers == 1 || chunks == 1 {
		for chunk := 0; chunk < chunks; chunk++ {
			if err := ctx.Err(); err != nil {
				return nil, nil, err
			}
			runChunk(chunk, &done)
		}
		return outcomes, perYear, nil
	}

	chunkCh := make(chan int, chunks)
	for chunk := 0; chunk < chunks; chunk++ {
		chunkCh <- chunk
	}
	close(chunkCh)

	var wg sync.WaitGroup
	workers := min(r.workers, chunks)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for chunk := range chunkCh {
				if ctx.Err() != nil {
					return
				}
				runChunk(chunk, &done)
			}
		}()
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	return outcomes, perYear, nil
}

// chunkSeed derives the deterministic seed for one trial chunk.
func (r *Runner) chunkSeed(chunk int) int64 {
	return r.seed + int64(chunk)*seedMix
}

// reportProgress bumps the completed-trial counter and invokes the progress
// callback whenever the count crosses a 10% milestone. The atomic counter is
// the only state shared between workers here; simulation work itself is
// never serialized.
func (r *Runner) reportProgress(done *atomic.Int64, completed, total int) {
	if r.progress == nil {
		return
	}

	after := done.Add(int64(completed))
	before := after - int64(completed)

	milestone := int64(total / 10)
	if milestone < 1 {
		milestone = 1
	}
	if after/milestone != before/milestone || after == int64(total) {
		r.progress(int(after), total)
	}
}
