// Package metrics records in-process build statistics using Prometheus
// collector types. Nothing here is served over HTTP; the collected
// values are read back and logged as a one-line summary when a command
// finishes.
package metrics

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// Result labels the outcome of a single codebase build attempt.
type Result string

const (
	ResultRestored Result = "restored"
	ResultBuilt    Result = "built"
	ResultFailed   Result = "failed"
)

// Recorder owns the Prometheus collectors for one process's builds. The
// end-of-run log summary is rendered by gathering this registry back out,
// not by a separate hand-kept tally.
type Recorder struct {
	registry *prometheus.Registry
	builds   *prometheus.CounterVec
	duration prometheus.Histogram

	// OnResult, if set, is called synchronously after every RecordBuild
	// with the codebase name and outcome. Used to drive a progress bar.
	OnResult func(codebase string, result Result)
}

// NewRecorder constructs a Recorder with its own private registry, so
// multiple Contexts (e.g. in tests) never collide on metric names.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()

	builds := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "monorepo_builds_total",
		Help: "Count of codebase build attempts by outcome.",
	}, []string{"codebase", "result"})

	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "monorepo_build_duration_seconds",
		Help:    "Wall-clock duration of codebase builds that actually ran (excludes cache restores).",
		Buckets: prometheus.DefBuckets,
	})

	reg.MustRegister(builds, duration)

	return &Recorder{registry: reg, builds: builds, duration: duration}
}

// RecordBuild records the outcome of a build attempt for codebase.
func (r *Recorder) RecordBuild(codebase string, result Result) {
	r.builds.WithLabelValues(codebase, string(result)).Inc()

	if r.OnResult != nil {
		r.OnResult(codebase, result)
	}
}

// ObserveBuildDuration records how long an actual (non-restored) build
// took.
func (r *Recorder) ObserveBuildDuration(d time.Duration) {
	r.duration.Observe(d.Seconds())
}

// Summary renders a one-line human-readable summary of everything
// recorded so far, suitable for a single logrus field. It is derived by
// gathering the registry itself rather than from a separate tally, so
// the collectors above are the only source of truth.
func (r *Recorder) Summary() string {
	families, err := r.registry.Gather()
	if err != nil {
		return fmt.Sprintf("error gathering metrics: %v", err)
	}

	counts := map[string]float64{}
	var buildSeconds float64
	var buildSamples uint64

	for _, mf := range families {
		switch mf.GetName() {
		case "monorepo_builds_total":
			for _, m := range mf.GetMetric() {
				counts[resultLabel(m)] += m.GetCounter().GetValue()
			}
		case "monorepo_build_duration_seconds":
			for _, m := range mf.GetMetric() {
				h := m.GetHistogram()
				buildSamples += h.GetSampleCount()
				buildSeconds += h.GetSampleSum()
			}
		}
	}

	results := make([]string, 0, len(counts))
	for result := range counts {
		results = append(results, result)
	}
	sort.Strings(results)

	parts := make([]string, 0, len(results)+1)
	for _, result := range results {
		parts = append(parts, fmt.Sprintf("%s=%d", result, int(counts[result])))
	}
	if buildSamples > 0 {
		total := time.Duration(buildSeconds * float64(time.Second))
		parts = append(parts, fmt.Sprintf("build_time_total=%s", total.Round(time.Millisecond)))
	}
	return strings.Join(parts, " ")
}

// resultLabel extracts the "result" label value from a gathered metric.
func resultLabel(m *dto.Metric) string {
	for _, l := range m.GetLabel() {
		if l.GetName() == "result" {
			return l.GetValue()
		}
	}
	return ""
}
