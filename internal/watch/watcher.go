// Package watch reports changes to files and directories.
//
// Changes are detected with fsnotify, or by polling modification times when
// a poll interval is configured or fsnotify is unavailable. Bursts of events
// for the same target (editors often write, rename and chmod in quick
// succession) are collapsed into one callback after a quiet period.
package watch

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Default timings.
const (
	DefaultDebounce     = 100 * time.Millisecond
	DefaultPollInterval = time.Second
)

// ErrRunning is returned when targets are added to a started watcher.
var ErrRunning = errors.New("watcher already running")

// Options configures a Watcher.
type Options struct {
	// Debounce is the quiet period before a change is reported.
	// Zero reports every change immediately.
	Debounce time.Duration
	// PollInterval > 0 selects polling instead of fsnotify.
	PollInterval time.Duration
	Logger       *slog.Logger
}

// target is one watched file or directory.
type target struct {
	path     string
	dir      bool
	match    func(name string) bool
	onChange func()
}

// covers reports whether a change to name concerns t.
func (t *target) covers(name string) bool {
	name = filepath.Clean(name)
	if !t.dir {
		return name == t.path
	}
	if filepath.Dir(name) != t.path {
		return false
	}
	return t.match == nil || t.match(filepath.Base(name))
}

// Watcher watches a set of files and directories.
type Watcher struct {
	mu      sync.Mutex
	logger  *slog.Logger
	opts    Options
	targets []*target
	timers  map[*target]*time.Timer

	// retryInterval paces re-adding directories that were missing at start.
	retryInterval time.Duration

	stopCh  chan struct{}
	doneCh  chan struct{}
	running bool
}

// New creates a watcher. Add targets, then call Start.
func New(opts Options) *Watcher {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		logger:        logger,
		opts:          opts,
		timers:        make(map[*target]*time.Timer),
		retryInterval: DefaultPollInterval,
	}
}

// AddFile watches a single file. The file may be replaced atomically
// (write to temp, rename over) or not exist yet.
func (w *Watcher) AddFile(path string, onChange func()) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	return w.add(&target{path: abs, onChange: onChange})
}

// AddDir watches the entries directly inside dir whose base name satisfies
// match (nil matches everything). A missing directory is not an error.
func (w *Watcher) AddDir(dir string, match func(name string) bool, onChange func()) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	return w.add(&target{path: abs, dir: true, match: match, onChange: onChange})
}

func (w *Watcher) add(t *target) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return ErrRunning
	}
	w.targets = append(w.targets, t)
	return nil
}

// Start begins watching in the background until ctx is done or Stop is
// called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	targets := append([]*target(nil), w.targets...)
	w.mu.Unlock()

	var loop func(ctx context.Context, stopCh <-chan struct{})

	if w.opts.PollInterval > 0 {
		loop = w.pollLoop(targets, w.opts.PollInterval)
	} else {
		fsw, err := fsnotify.NewWatcher()
		if err != nil {
			w.logger.Warn("fsnotify unavailable, polling instead", "error", err, "interval", DefaultPollInterval)
			loop = w.pollLoop(targets, DefaultPollInterval)
		} else {
			pending := w.addWatches(fsw, targets)
			loop = w.notifyLoop(fsw, targets, pending)
		}
	}

	w.mu.Lock()
	w.running = true
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	stopCh, doneCh := w.stopCh, w.doneCh
	w.mu.Unlock()

	go func() {
		defer close(doneCh)
		loop(ctx, stopCh)
		w.cancelTimers()
	}()

	w.logger.Debug("watcher started", "targets", len(targets), "poll", w.opts.PollInterval)
	return nil
}

// Stop stops watching and waits for the background goroutine to exit.
// Pending debounced callbacks are dropped.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	close(w.stopCh)
	doneCh := w.doneCh
	w.mu.Unlock()

	<-doneCh
	w.logger.Debug("watcher stopped")
}

// IsRunning returns whether the watcher is currently running.
func (w *Watcher) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

// watchDir is the directory fsnotify watches for t. Files are watched
// through their parent so atomic saves and re-creation are seen.
func (t *target) watchDir() string {
	if t.dir {
		return t.path
	}
	return filepath.Dir(t.path)
}

// addWatches registers fsnotify watches and returns the directories that
// could not be watched yet, mapped to the targets inside them.
func (w *Watcher) addWatches(fsw *fsnotify.Watcher, targets []*target) map[string][]*target {
	pending := make(map[string][]*target)
	seen := make(map[string]bool)
	for _, t := range targets {
		dir := t.watchDir()
		if _, ok := pending[dir]; ok {
			pending[dir] = append(pending[dir], t)
			continue
		}
		if seen[dir] {
			continue
		}
		seen[dir] = true
		if err := fsw.Add(dir); err != nil {
			w.logger.Warn("cannot watch directory yet, retrying", "path", dir, "error", err)
			pending[dir] = []*target{t}
		}
	}
	return pending
}

// retryPending adds watches for directories that have appeared since the
// last attempt. Their targets are reported as changed once watched.
func (w *Watcher) retryPending(fsw *fsnotify.Watcher, pending map[string][]*target) {
	for dir, targets := range pending {
		if err := fsw.Add(dir); err != nil {
			continue
		}
		delete(pending, dir)
		w.logger.Info("watching directory", "path", dir)
		for _, t := range targets {
			if fingerprint(t) != "missing" {
				w.trigger(t)
			}
		}
	}
}

func (w *Watcher) notifyLoop(fsw *fsnotify.Watcher, targets []*target, pending map[string][]*target) func(context.Context, <-chan struct{}) {
	return func(ctx context.Context, stopCh <-chan struct{}) {
		defer func() { _ = fsw.Close() }()

		var retryC <-chan time.Time
		if len(pending) > 0 {
			retry := time.NewTicker(w.retryInterval)
			defer retry.Stop()
			retryC = retry.C
		}

		for {
			select {
			case <-retryC:
				w.retryPending(fsw, pending)
				if len(pending) == 0 {
					retryC = nil
				}

			case event, ok := <-fsw.Events:
				if !ok {
					return
				}
				// Permission changes do not alter content
				if event.Op == fsnotify.Chmod {
					continue
				}
				for _, t := range targets {
					if t.covers(event.Name) {
						w.logger.Debug("change detected", "path", event.Name, "op", event.Op.String())
						w.trigger(t)
					}
				}

			case err, ok := <-fsw.Errors:
				if !ok {
					return
				}
				w.logger.Warn("file watcher error", "error", err)

			case <-ctx.Done():
				return
			case <-stopCh:
				return
			}
		}
	}
}

func (w *Watcher) pollLoop(targets []*target, interval time.Duration) func(context.Context, <-chan struct{}) {
	return func(ctx context.Context, stopCh <-chan struct{}) {
		last := make([]string, len(targets))
		for i, t := range targets {
			last[i] = fingerprint(t)
		}

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-stopCh:
				return
			case <-ticker.C:
				for i, t := range targets {
					fp := fingerprint(t)
					if fp != last[i] {
						last[i] = fp
						w.logger.Debug("change detected", "path", t.path)
						w.trigger(t)
					}
				}
			}
		}
	}
}

// trigger schedules t's callback after the debounce period, restarting the
// period if one is already pending.
func (w *Watcher) trigger(t *target) {
	if w.opts.Debounce <= 0 {
		t.onChange()
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.timers[t]; ok {
		timer.Reset(w.opts.Debounce)
		return
	}
	w.timers[t] = time.AfterFunc(w.opts.Debounce, func() {
		w.mu.Lock()
		delete(w.timers, t)
		running := w.running
		w.mu.Unlock()
		if running {
			t.onChange()
		}
	})
}

func (w *Watcher) cancelTimers() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for t, timer := range w.timers {
		timer.Stop()
		delete(w.timers, t)
	}
}
