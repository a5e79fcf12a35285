package watcher

import (
	"time"

	"github.com/vanderheijden86/archguide/pkg/content"
	"github.com/vanderheijden86/archguide/pkg/debug"
)

// Reload is the outcome of re-reading a content file. On error Guide is
// nil and the caller keeps its current guide.
type Reload struct {
	Path  string
	Guide *content.Guide
	Err   error
}

// GuideWatcher re-parses a guide file whenever it changes.
type GuideWatcher struct {
	w       *Watcher
	results chan Reload
}

// WatchGuide starts watching a guide content file. Each settled change is
// parsed with content.Load and delivered on Reloads.
func WatchGuide(path string, opts ...WatcherOption) (*GuideWatcher, error) {
	gw := &GuideWatcher{results: make(chan Reload, 1)}
	opts = append(opts,
		WithOnChange(func() { gw.reload() }),
		WithOnError(func(err error) { gw.publish(Reload{Path: gw.w.Path(), Err: err}) }),
	)
	w, err := NewWatcher(path, opts...)
	if err != nil {
		return nil, err
	}
	gw.w = w
	if err := w.Start(); err != nil {
		return nil, err
	}
	return gw, nil
}

func (gw *GuideWatcher) reload() {
	start := time.Now()
	g, err := content.Load(gw.w.Path())
	debug.LogTiming("reload "+gw.w.Path(), time.Since(start))
	if err != nil {
		debug.Log("watcher: reload failed: %v", err)
	}
	gw.publish(Reload{Path: gw.w.Path(), Guide: g, Err: err})
}

// publish keeps only the newest result when the reader lags behind.
func (gw *GuideWatcher) publish(r Reload) {
	for {
		select {
		case gw.results <- r:
			return
		default:
		}
		select {
		case <-gw.results:
		default:
		}
	}
}

// Reloads delivers reload results.
func (gw *GuideWatcher) Reloads() <-chan Reload {
	return gw.results
}

// Path returns the watched file.
func (gw *GuideWatcher) Path() string {
	return gw.w.Path()
}

// IsPolling reports whether the underlying watcher polls.
func (gw *GuideWatcher) IsPolling() bool {
	return gw.w.IsPolling()
}

// Stop ends watching.
func (gw *GuideWatcher) Stop() {
	gw.w.Stop()
}
