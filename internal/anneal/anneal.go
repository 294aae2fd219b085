// Package anneal implements a generic simulated-annealing search with
// Metropolis acceptance, geometric cooling and periodic reheating.
package anneal

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/tokensmith/internal/seq"
)

const (
	DefaultTemperature  = 0.08
	DefaultCooling      = 0.9985
	DefaultReheatEvery  = 900
	DefaultReheatFactor = 3.0
)

// ErrInvalidOptions is returned by Options.Validate.
var ErrInvalidOptions = errors.New("invalid annealing options")

// Problem supplies the state-specific operations of a search. S is the state
// type and R is the report produced alongside each score.
//
// Mutate must return a new state and leave its argument untouched, so that
// the best state can be kept without copying.
type Problem[S any, R any] interface {
	Init(s *seq.Sequence) S
	Mutate(state S, s *seq.Sequence) S
	Evaluate(state S) (float64, R, error)
}

// Step is the observable outcome of one iteration.
type Step struct {
	Iteration   int
	Temperature float64
	Score       float64
	Current     float64
	Best        float64
	Accepted    bool
	Improved    bool
	Reheated    bool
}

// Observer receives every step of a run. It is called synchronously.
type Observer interface {
	Observe(Step)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Step)

// Observe calls f.
func (f ObserverFunc) Observe(s Step) { f(s) }

// Options controls the annealing schedule.
type Options struct {
	// Iterations is the fixed budget; there is no early exit.
	Iterations int
	// Temperature is the initial temperature T0.
	Temperature float64
	// Cooling multiplies the temperature every iteration.
	Cooling float64
	// ReheatEvery is the reheat period in iterations; zero disables reheating.
	ReheatEvery int
	// ReheatFactor multiplies the temperature on reheat, capped at T0.
	ReheatFactor float64

	Logger   hclog.Logger
	Observer Observer
}

// Validate checks the schedule.
func (o Options) Validate() error {
	switch {
	case o.Iterations < 0:
		return fmt.Errorf("%w: iterations must not be negative, got %d", ErrInvalidOptions, o.Iterations)
	case o.Temperature <= 0:
		return fmt.Errorf("%w: temperature must be positive, got %v", ErrInvalidOptions, o.Temperature)
	case o.Cooling <= 0 || o.Cooling > 1:
		return fmt.Errorf("%w: cooling must be in (0,1], got %v", ErrInvalidOptions, o.Cooling)
	case o.ReheatEvery < 0:
		return fmt.Errorf("%w: reheat period must not be negative, got %d", ErrInvalidOptions, o.ReheatEvery)
	case o.ReheatFactor < 1:
		return fmt.Errorf("%w: reheat factor must be at least 1, got %v", ErrInvalidOptions, o.ReheatFactor)
	}
	return nil
}

// Result is the outcome of a run.
type Result[S any, R any] struct {
	Best       S
	BestScore  float64
	BestReport R
	// Trace holds the best score after each iteration, index 0 being the
	// initial state. It is non-decreasing.
	Trace    []float64
	Accepted int
	Rejected int
	Reheats  int
}

// Annealer runs one search over a Problem.
type Annealer[S any, R any] struct {
	problem Problem[S, R]
	opts    Options
	logger  hclog.Logger
}

// New creates an Annealer. Options are validated here so Run cannot fail on them.
func New[S any, R any](problem Problem[S, R], opts Options) (*Annealer[S, R], error) {
	if problem == nil {
		return nil, fmt.Errorf("%w: nil problem", ErrInvalidOptions)
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Annealer[S, R]{problem: problem, opts: opts, logger: logger}, nil
}

// Run performs the search, drawing all randomness from s. It returns early
// only if ctx is cancelled or Evaluate fails.
func (a *Annealer[S, R]) Run(ctx context.Context, s *seq.Sequence) (*Result[S, R], error) {
	current := a.problem.Init(s)
	currentScore, currentReport, err := a.problem.Evaluate(current)
	if err != nil {
		return nil, fmt.Errorf("evaluate initial state: %w", err)
	}

	res := &Result[S, R]{
		Best:       current,
		BestScore:  currentScore,
		BestReport: currentReport,
		Trace:      make([]float64, 0, a.opts.Iterations+1),
	}
	res.Trace = append(res.Trace, currentScore)

	t0 := a.opts.Temperature
	temp := t0

	for i := 1; i <= a.opts.Iterations; i++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		candidate := a.problem.Mutate(current, s)
		score, report, err := a.problem.Evaluate(candidate)
		if err != nil {
			return res, fmt.Errorf("evaluate iteration %d: %w", i, err)
		}

		step := Step{Iteration: i, Temperature: temp, Score: score}
		if accept(score-currentScore, temp, s) {
			current, currentScore = candidate, score
			res.Accepted++
			step.Accepted = true
		} else {
			res.Rejected++
		}

		if score > res.BestScore {
			res.Best, res.BestScore, res.BestReport = candidate, score, report
			step.Improved = true
		}
		res.Trace = append(res.Trace, res.BestScore)

		temp *= a.opts.Cooling
		if a.opts.ReheatEvery > 0 && i%a.opts.ReheatEvery == 0 {
			temp = math.Min(temp*a.opts.ReheatFactor, t0)
			res.Reheats++
			step.Reheated = true
			a.logger.Trace("reheat", "iteration", i, "temperature", temp, "best", res.BestScore)
		}

		step.Current = currentScore
		step.Best = res.BestScore
		if a.opts.Observer != nil {
			a.opts.Observer.Observe(step)
		}
	}

	a.logger.Debug("annealing complete",
		"iterations", a.opts.Iterations,
		"best", res.BestScore,
		"accepted", res.Accepted,
		"rejected", res.Rejected,
		"reheats", res.Reheats)

	return res, nil
}

// accept is the Metropolis rule: never-worse moves always pass, worse moves
// pass with probability exp(delta/temp). A random draw is consumed only for
// worse moves.
func accept(delta, temp float64, s *seq.Sequence) bool {
	if delta >= 0 {
		return true
	}
	return s.Float64() < math.Exp(delta/temp)
}
