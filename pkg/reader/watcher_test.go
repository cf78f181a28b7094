package reader

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestNewWatcher(t *testing.T) {
	watcher, err := NewWatcher(&WatcherConfig{Paths: []string{"testdata/cuts.yaml"}}, nil)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v, want nil", err)
	}
	defer func() { _ = watcher.Stop() }()

	if watcher.watcher == nil {
		t.Error("watcher.watcher is nil")
	}
	if watcher.debounce == nil {
		t.Error("watcher.debounce is nil")
	}
	if watcher.config.DebounceInterval != 100*time.Millisecond {
		t.Errorf("DebounceInterval = %v, want 100ms", watcher.config.DebounceInterval)
	}
	abs, _ := filepath.Abs("testdata/cuts.yaml")
	if !watcher.files[abs] {
		t.Errorf("files = %v, want %q", watcher.files, abs)
	}
}

func TestNewWatcher_NoPaths(t *testing.T) {
	if _, err := NewWatcher(&WatcherConfig{}, nil); err != ErrNoSources {
		t.Errorf("NewWatcher() error = %v, want ErrNoSources", err)
	}
	if _, err := NewWatcher(nil, nil); err != ErrNoSources {
		t.Errorf("NewWatcher(nil) error = %v, want ErrNoSources", err)
	}
}

func startWatcher(t *testing.T, path string) (*Watcher, <-chan struct{}, *atomic.Int32) {
	t.Helper()

	watcher, err := NewWatcher(&WatcherConfig{
		Paths:            []string{path},
		DebounceInterval: 50 * time.Millisecond,
	}, nil)
	if err != nil {
		t.Fatal(err)
	}

	var reloadCount atomic.Int32
	reloadCalled := make(chan struct{}, 10)
	onReload := func() error {
		reloadCount.Add(1)
		select {
		case reloadCalled <- struct{}{}:
		default:
		}
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(func() {
		cancel()
		_ = watcher.Stop()
	})

	go func() {
		_ = watcher.Watch(ctx, onReload)
	}()

	// Wait for watcher to start
	time.Sleep(100 * time.Millisecond)

	return watcher, reloadCalled, &reloadCount
}

func TestWatcher_Watch_Modify(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "cuts.yaml")
	writeDoc(t, tmpFile, "myInt: 1\n")

	_, reloadCalled, reloadCount := startWatcher(t, tmpFile)

	writeDoc(t, tmpFile, "myInt: 2\n")

	select {
	case <-reloadCalled:
	case <-time.After(time.Second):
		t.Fatal("Reload not called after file modification")
	}
	if reloadCount.Load() == 0 {
		t.Error("Reload was never called")
	}
}

func TestWatcher_Watch_ReplaceByRename(t *testing.T) {
	dir := t.TempDir()
	tmpFile := filepath.Join(dir, "cuts.yaml")
	writeDoc(t, tmpFile, "myInt: 1\n")

	_, reloadCalled, _ := startWatcher(t, tmpFile)

	staged := filepath.Join(dir, ".cuts.yaml.tmp")
	writeDoc(t, staged, "myInt: 2\n")
	if err := os.Rename(staged, tmpFile); err != nil {
		t.Fatal(err)
	}

	select {
	case <-reloadCalled:
	case <-time.After(time.Second):
		t.Fatal("Reload not called after the document was replaced")
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	tmpFile := filepath.Join(dir, "cuts.yaml")
	writeDoc(t, tmpFile, "myInt: 1\n")

	_, _, reloadCount := startWatcher(t, tmpFile)

	writeDoc(t, filepath.Join(dir, "other.yaml"), "myInt: 2\n")
	time.Sleep(200 * time.Millisecond)

	if n := reloadCount.Load(); n != 0 {
		t.Errorf("reload count = %d, want 0 for an unrelated file", n)
	}
}

func TestWatcher_Debouncing(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "cuts.yaml")
	writeDoc(t, tmpFile, "myInt: 0\n")

	_, reloadCalled, reloadCount := startWatcher(t, tmpFile)

	for i := 1; i <= 5; i++ {
		writeDoc(t, tmpFile, "myInt: "+string(rune('0'+i))+"\n")
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case <-reloadCalled:
	case <-time.After(time.Second):
		t.Fatal("Reload not called after burst of writes")
	}
	time.Sleep(150 * time.Millisecond)

	if n := reloadCount.Load(); n != 1 {
		t.Errorf("reload count = %d, want 1 after debouncing", n)
	}
}

func TestWatcher_DoubleStart(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "cuts.yaml")
	writeDoc(t, tmpFile, "myInt: 1\n")

	watcher, _, _ := startWatcher(t, tmpFile)

	err := watcher.Watch(context.Background(), func() error { return nil })
	if err == nil {
		t.Error("second Watch() should fail while the first is running")
	}
}

func TestWatcher_Stop(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "cuts.yaml")
	writeDoc(t, tmpFile, "myInt: 1\n")

	watcher, err := NewWatcher(&WatcherConfig{Paths: []string{tmpFile}}, nil)
	if err != nil {
		t.Fatal(err)
	}

	done := make(chan error, 1)
	go func() {
		done <- watcher.Watch(context.Background(), func() error { return nil })
	}()
	time.Sleep(50 * time.Millisecond)

	if err := watcher.Stop(); err != nil {
		t.Errorf("Stop() error = %v", err)
	}
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Watch() error = %v, want nil after Stop", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Watch() did not return after Stop")
	}

	if err := watcher.Stop(); err != nil {
		t.Errorf("second Stop() error = %v", err)
	}
}

func TestWatcher_ShouldProcessEvent(t *testing.T) {
	watcher, err := NewWatcher(&WatcherConfig{Paths: []string{"testdata/cuts.yaml"}}, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = watcher.Stop() }()

	abs, _ := filepath.Abs("testdata/cuts.yaml")
	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"write", fsnotify.Event{Name: abs, Op: fsnotify.Write}, true},
		{"create", fsnotify.Event{Name: abs, Op: fsnotify.Create}, true},
		{"relative name", fsnotify.Event{Name: "testdata/cuts.yaml", Op: fsnotify.Write}, true},
		{"chmod", fsnotify.Event{Name: abs, Op: fsnotify.Chmod}, false},
		{"other file", fsnotify.Event{Name: filepath.Join(filepath.Dir(abs), "other.yaml"), Op: fsnotify.Write}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := watcher.shouldProcessEvent(tt.event); got != tt.want {
				t.Errorf("shouldProcessEvent() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDebouncer_Trigger(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)
	defer d.Stop()

	var calls atomic.Int32
	for i := 0; i < 5; i++ {
		d.Trigger(func() { calls.Add(1) })
	}
	time.Sleep(100 * time.Millisecond)

	if n := calls.Load(); n != 1 {
		t.Errorf("callback calls = %d, want 1", n)
	}
}

func TestDebouncer_Stop(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)

	var calls atomic.Int32
	d.Trigger(func() { calls.Add(1) })
	d.Stop()
	d.Stop()
	time.Sleep(60 * time.Millisecond)

	if n := calls.Load(); n != 0 {
		t.Errorf("callback calls = %d, want 0 after Stop", n)
	}
}
