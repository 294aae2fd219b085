// Package metrics records optimiser progress as Prometheus metrics on a
// private registry, for export as a node-exporter textfile.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/jmylchreest/tokensmith/internal/anneal"
)

// Recorder owns the registry and the optimiser metric families.
// It is safe for concurrent use by several runs.
type Recorder struct {
	reg *prometheus.Registry

	iterations   *prometheus.CounterVec
	accepted     *prometheus.CounterVec
	improvements *prometheus.CounterVec
	reheats      *prometheus.CounterVec
	bestScore    *prometheus.GaugeVec
	temperature  *prometheus.GaugeVec
	scores       *prometheus.HistogramVec
}

// NewRecorder creates a Recorder with its own registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		reg: reg,

		// iterations counts annealing iterations by mode
		iterations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tokensmith_anneal_iterations_total",
			Help: "Total annealing iterations by mode",
		}, []string{"mode"}),

		accepted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tokensmith_anneal_accepted_total",
			Help: "Total accepted candidates by mode",
		}, []string{"mode"}),

		improvements: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tokensmith_anneal_improvements_total",
			Help: "Total new best candidates by mode",
		}, []string{"mode"}),

		reheats: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tokensmith_anneal_reheats_total",
			Help: "Total temperature reheats by mode",
		}, []string{"mode"}),

		bestScore: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "tokensmith_anneal_best_score",
			Help: "Best score found so far by mode",
		}, []string{"mode"}),

		temperature: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "tokensmith_anneal_temperature",
			Help: "Current annealing temperature by mode",
		}, []string{"mode"}),

		// scores spans the penalised region as well as the normal range
		scores: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tokensmith_anneal_candidate_score",
			Help:    "Scores of evaluated candidates by mode",
			Buckets: []float64{-6, -4, -2, -1, 0, 0.25, 0.5, 0.6, 0.7, 0.8, 0.9, 1},
		}, []string{"mode"}),
	}
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.reg
}

// Observer returns an anneal.Observer that records steps under the mode label.
func (r *Recorder) Observer(mode string) anneal.Observer {
	return &modeObserver{
		iterations:   r.iterations.WithLabelValues(mode),
		accepted:     r.accepted.WithLabelValues(mode),
		improvements: r.improvements.WithLabelValues(mode),
		reheats:      r.reheats.WithLabelValues(mode),
		bestScore:    r.bestScore.WithLabelValues(mode),
		temperature:  r.temperature.WithLabelValues(mode),
		scores:       r.scores.WithLabelValues(mode),
	}
}

// WriteFile writes every metric to path in the text exposition format.
// The file is replaced atomically.
func (r *Recorder) WriteFile(path string) error {
	return prometheus.WriteToTextfile(path, r.reg)
}

type modeObserver struct {
	iterations   prometheus.Counter
	accepted     prometheus.Counter
	improvements prometheus.Counter
	reheats      prometheus.Counter
	bestScore    prometheus.Gauge
	temperature  prometheus.Gauge
	scores       prometheus.Observer
}

func (o *modeObserver) Observe(s anneal.Step) {
	o.iterations.Inc()
	if s.Accepted {
		o.accepted.Inc()
	}
	if s.Improved {
		o.improvements.Inc()
	}
	if s.Reheated {
		o.reheats.Inc()
	}
	o.bestScore.Set(s.Best)
	o.temperature.Set(s.Temperature)
	o.scores.Observe(s.Score)
}
