package watcher

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/jasperwreed/sidebar/internal/storage"
)

// UpdateWatcher tails JSONL update feeds in a directory and hands every
// complete batch of parsed lines to its handlers.
type UpdateWatcher struct {
	watcher      *fsnotify.Watcher
	watchedPaths map[string]string
	activeFeeds  map[string]*FeedTail
	handlers     []BatchHandler
	logger       *log.Logger
	pollInterval time.Duration
	mu           sync.RWMutex
	stopCh       chan struct{}
	stopOnce     sync.Once
	wg           sync.WaitGroup
}

// FeedTail tracks a single feed file.
type FeedTail struct {
	Path       string
	File       *os.File
	Reader     *bufio.Reader
	LastOffset int64
	StartTime  time.Time
	Lines      int

	mu sync.Mutex
}

// Batch is the set of updates read from one feed in one pass.
type Batch struct {
	Path    string
	Updates []storage.Update
	Read    time.Time
}

// BatchHandler processes a batch of updates.
type BatchHandler func(batch Batch) error

// Option configures an UpdateWatcher.
type Option func(*UpdateWatcher)

// WithLogger sets the logger used for feed and handler errors.
func WithLogger(logger *log.Logger) Option {
	return func(w *UpdateWatcher) { w.logger = logger }
}

// WithPollInterval sets how often tracked feeds are re-read without an fs event.
func WithPollInterval(d time.Duration) Option {
	return func(w *UpdateWatcher) {
		if d > 0 {
			w.pollInterval = d
		}
	}
}

// NewUpdateWatcher creates a new update watcher
func NewUpdateWatcher(opts ...Option) (*UpdateWatcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fs watcher: %w", err)
	}

	w := &UpdateWatcher{
		watcher:      fsWatcher,
		watchedPaths: make(map[string]string),
		activeFeeds:  make(map[string]*FeedTail),
		handlers:     []BatchHandler{},
		logger:       log.Default(),
		pollInterval: 500 * time.Millisecond,
		stopCh:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// AddHandler adds a batch handler
func (w *UpdateWatcher) AddHandler(handler BatchHandler) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handlers = append(w.handlers, handler)
}

// WatchDirectory watches dir for feed files matching pattern and starts
// tailing the ones already present.
func (w *UpdateWatcher) WatchDirectory(dir string, pattern string) error {
	if strings.HasPrefix(dir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		dir = filepath.Join(home, dir[2:])
	}

	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return fmt.Errorf("directory does not exist: %s", dir)
	}
	if _, err := filepath.Match(pattern, ""); err != nil {
		return fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}

	w.mu.Lock()
	if _, ok := w.watchedPaths[dir]; !ok {
		if err := w.watcher.Add(dir); err != nil {
			w.mu.Unlock()
			return fmt.Errorf("failed to watch directory %s: %w", dir, err)
		}
	}
	w.watchedPaths[dir] = pattern
	w.mu.Unlock()

	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return fmt.Errorf("failed to scan directory: %w", err)
	}

	for _, path := range matches {
		if err := w.startTailing(path); err != nil {
			w.logger.Warn("failed to tail feed", "path", path, "err", err)
		}
	}

	return nil
}

// Start begins watching for file changes
func (w *UpdateWatcher) Start() error {
	w.wg.Add(1)
	go w.watchLoop()

	w.wg.Add(1)
	go w.tailLoop()

	return nil
}

// Stop stops the watcher. It is safe to call more than once.
func (w *UpdateWatcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.stopCh)
		w.wg.Wait()

		w.mu.Lock()
		defer w.mu.Unlock()

		for path, feed := range w.activeFeeds {
			feed.File.Close()
			delete(w.activeFeeds, path)
		}

		err = w.watcher.Close()
	})
	return err
}

func (w *UpdateWatcher) watchLoop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			switch {
			case event.Op&fsnotify.Write == fsnotify.Write:
				w.handleFileWrite(event.Name)
			case event.Op&fsnotify.Create == fsnotify.Create:
				if w.matches(event.Name) {
					if err := w.startTailing(event.Name); err != nil {
						w.logger.Warn("failed to tail feed", "path", event.Name, "err", err)
					}
				}
			case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
				w.stopTailing(event.Name)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("watcher error", "err", err)
		}
	}
}

// tailLoop re-reads every feed on a timer to pick up writes fsnotify missed.
func (w *UpdateWatcher) tailLoop() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.checkAllFeeds()
		}
	}
}

func (w *UpdateWatcher) matches(path string) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()

	pattern, ok := w.watchedPaths[filepath.Dir(path)]
	if !ok {
		return false
	}
	matched, _ := filepath.Match(pattern, filepath.Base(path))
	return matched
}

func (w *UpdateWatcher) handleFileWrite(path string) {
	w.mu.RLock()
	feed, exists := w.activeFeeds[path]
	w.mu.RUnlock()

	if exists {
		w.readNewLines(feed)
	}
}

// startTailing opens a feed and replays its existing content.
func (w *UpdateWatcher) startTailing(path string) error {
	w.mu.Lock()
	if _, exists := w.activeFeeds[path]; exists {
		w.mu.Unlock()
		return nil
	}

	file, err := os.Open(path)
	if err != nil {
		w.mu.Unlock()
		return fmt.Errorf("failed to open file: %w", err)
	}

	feed := &FeedTail{
		Path:      path,
		File:      file,
		Reader:    bufio.NewReader(file),
		StartTime: time.Now(),
	}
	w.activeFeeds[path] = feed
	w.mu.Unlock()

	w.readNewLines(feed)
	return nil
}

func (w *UpdateWatcher) stopTailing(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if feed, exists := w.activeFeeds[path]; exists {
		feed.File.Close()
		delete(w.activeFeeds, path)
	}
}

func (w *UpdateWatcher) checkAllFeeds() {
	w.mu.RLock()
	feeds := make([]*FeedTail, 0, len(w.activeFeeds))
	for _, feed := range w.activeFeeds {
		feeds = append(feeds, feed)
	}
	w.mu.RUnlock()

	for _, feed := range feeds {
		w.readNewLines(feed)
	}
}

// readNewLines reads every complete line past the last offset. A trailing
// line without a newline is left for the next pass.
func (w *UpdateWatcher) readNewLines(feed *FeedTail) {
	feed.mu.Lock()
	defer feed.mu.Unlock()

	if _, err := feed.File.Seek(feed.LastOffset, io.SeekStart); err != nil {
		w.logger.Error("failed to seek feed", "path", feed.Path, "err", err)
		return
	}
	feed.Reader.Reset(feed.File)

	batch := Batch{Path: feed.Path, Read: time.Now()}
	for {
		line, err := feed.Reader.ReadBytes('\n')
		if err != nil {
			if err != io.EOF {
				w.logger.Error("failed to read feed", "path", feed.Path, "err", err)
			}
			break
		}

		feed.LastOffset += int64(len(line))
		feed.Lines++

		trimmed := strings.TrimSpace(string(line))
		if trimmed == "" {
			continue
		}
		update, err := storage.ParseUpdateLine([]byte(trimmed))
		if err != nil {
			w.logger.Warn("skipping malformed update", "path", feed.Path, "line", feed.Lines, "err", err)
			continue
		}
		batch.Updates = append(batch.Updates, update)
	}

	if len(batch.Updates) > 0 {
		w.notifyHandlers(batch)
	}
}

func (w *UpdateWatcher) notifyHandlers(batch Batch) {
	w.mu.RLock()
	handlers := make([]BatchHandler, len(w.handlers))
	copy(handlers, w.handlers)
	w.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler(batch); err != nil {
			w.logger.Error("handler error", "path", batch.Path, "updates", len(batch.Updates), "err", err)
		}
	}
}

// GetActiveFeeds returns information about tailed feeds
func (w *UpdateWatcher) GetActiveFeeds() []FeedInfo {
	w.mu.RLock()
	defer w.mu.RUnlock()

	feeds := make([]FeedInfo, 0, len(w.activeFeeds))
	for _, feed := range w.activeFeeds {
		feed.mu.Lock()
		info := FeedInfo{
			Path:      feed.Path,
			StartTime: feed.StartTime,
			Offset:    feed.LastOffset,
			Lines:     feed.Lines,
		}
		feed.mu.Unlock()
		feeds = append(feeds, info)
	}

	return feeds
}

// FeedInfo contains information about a tailed feed
type FeedInfo struct {
	Path      string    `json:"path"`
	StartTime time.Time `json:"start_time"`
	Offset    int64     `json:"offset"`
	Lines     int       `json:"lines"`
}
