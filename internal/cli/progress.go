package cli

import (
	"github.com/vbauerster/mpb/v7"
	"github.com/vbauerster/mpb/v7/decor"

	"github.com/coreos/monorepo/internal/metrics"
)

// progressReporter renders a single bar tracking how many codebase
// build attempts (restored, built, or failed) have completed so far.
// The total codebase count is not known up front, since the dependency
// graph is discovered lazily, so the bar's total grows alongside it.
type progressReporter struct {
	pool *mpb.Progress
	bar  *mpb.Bar
	n    int64
}

func newProgressReporter() *progressReporter {
	pool := mpb.New(mpb.WithWidth(40))
	bar := pool.AddBar(0,
		mpb.PrependDecorators(decor.Name("building")),
		mpb.AppendDecorators(decor.CountersNoUnit("%d codebases")),
	)
	return &progressReporter{pool: pool, bar: bar}
}

// onResult is installed as the Recorder's result callback.
func (r *progressReporter) onResult(_ string, _ metrics.Result) {
	r.n++
	r.bar.SetTotal(r.n, false)
	r.bar.Increment()
}

// done marks the bar complete and waits for rendering to finish.
func (r *progressReporter) done() {
	r.bar.SetTotal(r.n, true)
	r.pool.Wait()
}
