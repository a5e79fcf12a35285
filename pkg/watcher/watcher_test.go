package watcher

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/vanderheijden86/archguide/pkg/content"
)

func TestDebouncer_CoalescesRapidTriggers(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)

	var callCount atomic.Int32
	for i := 0; i < 10; i++ {
		d.Trigger(func() {
			callCount.Add(1)
		})
		time.Sleep(10 * time.Millisecond)
	}

	time.Sleep(100 * time.Millisecond)

	if count := callCount.Load(); count != 1 {
		t.Errorf("expected 1 callback invocation, got %d", count)
	}
}

func TestDebouncer_Cancel(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)

	var called atomic.Bool
	d.Trigger(func() {
		called.Store(true)
	})
	d.Cancel()

	time.Sleep(100 * time.Millisecond)

	if called.Load() {
		t.Error("callback should not have been invoked after cancel")
	}
}

func TestDebouncer_DefaultDuration(t *testing.T) {
	d := NewDebouncer(0)
	if d.Duration() != DefaultDebounceDuration {
		t.Errorf("expected default duration %v, got %v", DefaultDebounceDuration, d.Duration())
	}
}

func writeGuide(t *testing.T, path string) {
	t.Helper()
	if err := content.Save(path, content.Builtin()); err != nil {
		t.Fatal(err)
	}
}

func TestWatcher_DetectsFileChange(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "guide.yaml")
	if err := os.WriteFile(tmpFile, []byte("initial"), 0644); err != nil {
		t.Fatal(err)
	}

	var (
		changeMu sync.Mutex
		changed  bool
	)
	w, err := NewWatcher(tmpFile,
		WithDebounceDuration(50*time.Millisecond),
		WithOnChange(func() {
			changeMu.Lock()
			changed = true
			changeMu.Unlock()
		}),
	)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(tmpFile, []byte("modified content"), 0644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(300 * time.Millisecond)

	changeMu.Lock()
	defer changeMu.Unlock()
	if !changed {
		t.Error("expected change to be detected")
	}
}

func TestWatcher_PollingFallback(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "guide.yaml")
	if err := os.WriteFile(tmpFile, []byte("initial"), 0644); err != nil {
		t.Fatal(err)
	}

	changed := make(chan struct{}, 1)
	w, err := NewWatcher(tmpFile,
		WithDebounceDuration(50*time.Millisecond),
		WithPollInterval(100*time.Millisecond),
		WithForcePoll(true),
		WithOnChange(func() {
			select {
			case changed <- struct{}{}:
			default:
			}
		}),
	)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if !w.IsPolling() {
		t.Error("expected watcher to be in polling mode")
	}

	go func() {
		time.Sleep(50 * time.Millisecond)
		os.WriteFile(tmpFile, []byte("modified via polling"), 0644)
	}()

	select {
	case <-changed:
	case <-time.After(500 * time.Millisecond):
		t.Error("timeout waiting for change notification")
	}
}

func TestWatcher_EnvForcePoll(t *testing.T) {
	t.Setenv(ForcePollEnvVar, "yes")

	tmpFile := filepath.Join(t.TempDir(), "guide.yaml")
	if err := os.WriteFile(tmpFile, []byte("initial"), 0644); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher(tmpFile,
		WithDebounceDuration(10*time.Millisecond),
		WithPollInterval(25*time.Millisecond),
	)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if !w.IsPolling() {
		t.Fatalf("expected polling mode when %s is set", ForcePollEnvVar)
	}
}

func TestWatcher_FileRemoved(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "guide.yaml")
	if err := os.WriteFile(tmpFile, []byte("initial"), 0644); err != nil {
		t.Fatal(err)
	}

	var (
		errMu    sync.Mutex
		gotError error
	)
	w, err := NewWatcher(tmpFile,
		WithDebounceDuration(50*time.Millisecond),
		WithPollInterval(100*time.Millisecond),
		WithForcePoll(true),
		WithOnError(func(err error) {
			errMu.Lock()
			gotError = err
			errMu.Unlock()
		}),
	)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	time.Sleep(50 * time.Millisecond)
	if err := os.Remove(tmpFile); err != nil {
		t.Fatal(err)
	}
	time.Sleep(300 * time.Millisecond)

	errMu.Lock()
	defer errMu.Unlock()
	if gotError != ErrFileRemoved {
		t.Errorf("expected ErrFileRemoved, got %v", gotError)
	}
}

func TestWatcher_StartStop(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "guide.yaml")
	if err := os.WriteFile(tmpFile, []byte("initial"), 0644); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher(tmpFile)
	if err != nil {
		t.Fatal(err)
	}
	if w.IsStarted() {
		t.Error("watcher should not be started initially")
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	if !w.IsStarted() {
		t.Error("watcher should be started after Start()")
	}
	if err := w.Start(); err != ErrAlreadyStarted {
		t.Errorf("expected ErrAlreadyStarted, got %v", err)
	}

	w.Stop()
	if w.IsStarted() {
		t.Error("watcher should not be started after Stop()")
	}
	// Double stop should be safe
	w.Stop()
}

func TestWatcher_PathAndInterval(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "guide.yaml")
	w, err := NewWatcher(tmpFile, WithPollInterval(500*time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}

	absPath, _ := filepath.Abs(tmpFile)
	if w.Path() != absPath {
		t.Errorf("expected path %s, got %s", absPath, w.Path())
	}
	if got := w.PollInterval(); got != 500*time.Millisecond {
		t.Errorf("expected poll interval 500ms, got %v", got)
	}
}

func TestEnvBool(t *testing.T) {
	tests := []struct {
		value    string
		expected bool
	}{
		{"1", true},
		{"true", true},
		{"TRUE", true},
		{"yes", true},
		{"y", true},
		{"on", true},
		{"0", false},
		{"false", false},
		{"no", false},
		{"", false},
		{"invalid", false},
	}

	for _, tc := range tests {
		t.Run(tc.value, func(t *testing.T) {
			t.Setenv("TEST_ENV_BOOL", tc.value)
			if got := envBool("TEST_ENV_BOOL"); got != tc.expected {
				t.Errorf("envBool(%q) = %v, expected %v", tc.value, got, tc.expected)
			}
		})
	}
}

func TestWatchGuide_ReloadsValidContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "guide.yaml")
	writeGuide(t, path)

	gw, err := WatchGuide(path,
		WithDebounceDuration(20*time.Millisecond),
		WithPollInterval(50*time.Millisecond),
		WithForcePoll(true),
	)
	if err != nil {
		t.Fatal(err)
	}
	defer gw.Stop()

	doc := content.Builtin()
	doc.Title = "Edited Title"
	time.Sleep(60 * time.Millisecond)
	if err := content.Save(path, doc); err != nil {
		t.Fatal(err)
	}

	select {
	case r := <-gw.Reloads():
		if r.Err != nil {
			t.Fatalf("reload error: %v", r.Err)
		}
		if r.Guide.Title != "Edited Title" {
			t.Errorf("reloaded title = %q", r.Guide.Title)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for reload")
	}
}

func TestWatchGuide_ReportsBrokenContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "guide.yaml")
	writeGuide(t, path)

	gw, err := WatchGuide(path,
		WithDebounceDuration(20*time.Millisecond),
		WithPollInterval(50*time.Millisecond),
		WithForcePoll(true),
	)
	if err != nil {
		t.Fatal(err)
	}
	defer gw.Stop()

	time.Sleep(60 * time.Millisecond)
	if err := os.WriteFile(path, []byte("title: [unterminated\n"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case r := <-gw.Reloads():
		if r.Err == nil || r.Guide != nil {
			t.Errorf("expected failed reload, got %+v", r)
		}
		if !strings.HasSuffix(r.Path, "guide.yaml") {
			t.Errorf("unexpected path %q", r.Path)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for reload")
	}
}
