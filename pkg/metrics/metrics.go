// Package metrics counts light transport events on a prometheus registry.
// A nil *Collector is valid and records nothing.
package metrics

import (
	"fmt"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

// Termination is the reason a path stopped
type Termination string

const (
	Escaped   Termination = "escaped"   // ray left the scene
	Roulette  Termination = "roulette"  // killed by Russian roulette
	Absorbed  Termination = "absorbed"  // zero throughput after a scattering event
	DepthCap  Termination = "depth"     // configured maximum depth reached
	Gathered  Termination = "gathered"  // photon density estimate taken
	Evaluated Termination = "evaluated" // non-recursive estimator finished
)

// Collector holds the counters for one registry
type Collector struct {
	paths          *prometheus.CounterVec
	roulette       *prometheus.CounterVec
	pathLength     *prometheus.HistogramVec
	invalidSamples *prometheus.CounterVec
	photonsEmitted prometheus.Counter
	photonsStored  prometheus.Counter
}

// New registers the light transport metrics on reg
func New(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)
	return &Collector{
		paths: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "lt_paths_total",
			Help: "Total radiance estimates by integrator and termination reason",
		}, []string{"integrator", "termination"}),

		roulette: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "lt_roulette_terminations_total",
			Help: "Total paths killed by Russian roulette",
		}, []string{"integrator"}),

		pathLength: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "lt_path_length_bounces",
			Help:    "Number of scattering events per path",
			Buckets: prometheus.ExponentialBuckets(1, 2, 8), // 1 to 128 bounces
		}, []string{"integrator"}),

		invalidSamples: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "lt_invalid_samples_total",
			Help: "Total NaN, infinite or negative throughput values clamped to zero",
		}, []string{"integrator"}),

		photonsEmitted: factory.NewCounter(prometheus.CounterOpts{
			Name: "lt_photons_emitted_total",
			Help: "Total photons emitted during photon map construction",
		}),

		photonsStored: factory.NewCounter(prometheus.CounterOpts{
			Name: "lt_photons_stored_total",
			Help: "Total photons stored at diffuse surfaces",
		}),
	}
}

// PathFinished records one finished radiance estimate
func (c *Collector) PathFinished(integrator string, reason Termination, bounces int) {
	if c == nil {
		return
	}
	c.paths.WithLabelValues(integrator, string(reason)).Inc()
	if reason == Roulette {
		c.roulette.WithLabelValues(integrator).Inc()
	}
	c.pathLength.WithLabelValues(integrator).Observe(float64(bounces))
}

// InvalidSample records a throughput value that had to be clamped
func (c *Collector) InvalidSample(integrator string) {
	if c == nil {
		return
	}
	c.invalidSamples.WithLabelValues(integrator).Inc()
}

// PhotonsEmitted adds n emitted photons
func (c *Collector) PhotonsEmitted(n int) {
	if c == nil {
		return
	}
	c.photonsEmitted.Add(float64(n))
}

// PhotonStored records one stored photon
func (c *Collector) PhotonStored() {
	if c == nil {
		return
	}
	c.photonsStored.Inc()
}

// Rows flattens every gathered sample into (name, labels, value) rows sorted by name
func Rows(g prometheus.Gatherer) ([][]string, error) {
	families, err := g.Gather()
	if err != nil {
		return nil, fmt.Errorf("metrics: gather: %w", err)
	}

	var rows [][]string
	for _, family := range families {
		for _, m := range family.GetMetric() {
			rows = append(rows, []string{family.GetName(), labels(m), value(m)})
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i][0] < rows[j][0]
	})
	return rows, nil
}

func labels(m *dto.Metric) string {
	pairs := make([]string, 0, len(m.GetLabel()))
	for _, l := range m.GetLabel() {
		pairs = append(pairs, l.GetName()+"="+l.GetValue())
	}
	return strings.Join(pairs, ",")
}

func value(m *dto.Metric) string {
	switch {
	case m.GetCounter() != nil:
		return fmt.Sprintf("%.0f", m.GetCounter().GetValue())
	case m.GetHistogram() != nil:
		h := m.GetHistogram()
		if h.GetSampleCount() == 0 {
			return "n=0"
		}
		return fmt.Sprintf("n=%d mean=%.2f", h.GetSampleCount(), h.GetSampleSum()/float64(h.GetSampleCount()))
	case m.GetGauge() != nil:
		return fmt.Sprintf("%g", m.GetGauge().GetValue())
	}
	return ""
}
