// Package watch reports source file changes through fsnotify.
package watch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Op is a bit set of change kinds.
type Op uint8

const (
	OpCreate Op = 1 << iota
	OpWrite
	OpRemove
	OpRename
	OpChmod
)

func (op Op) String() string {
	var parts []string
	for _, p := range []struct {
		bit  Op
		name string
	}{{OpCreate, "create"}, {OpWrite, "write"}, {OpRemove, "remove"}, {OpRename, "rename"}, {OpChmod, "chmod"}} {
		if op&p.bit != 0 {
			parts = append(parts, p.name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// Event is one change to a watched path.
type Event struct {
	Path string
	Op   Op
}

// skipDirs are never descended into.
var skipDirs = map[string]bool{".git": true, "node_modules": true, ".hg": true}

// Watcher watches directory trees and forwards events for paths accepted
// by its filter.
type Watcher struct {
	w      *fsnotify.Watcher
	filter func(path string) bool
	evC    chan Event
	erC    chan error

	done      chan struct{}
	stopped   chan struct{}
	closeOnce sync.Once

	mu    sync.Mutex
	files map[string]bool // watched through their parent directory
	dirs  map[string]bool // watched recursively
}

// New starts a watcher. A nil filter accepts every path.
func New(filter func(path string) bool) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	fw := &Watcher{
		w:       w,
		filter:  filter,
		evC:     make(chan Event, 128),
		erC:     make(chan error, 8),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
		files:   make(map[string]bool),
		dirs:    make(map[string]bool),
	}
	go fw.loop()
	return fw, nil
}

// Add watches root. A directory is watched recursively; a file is watched
// through its parent directory.
func (fw *Watcher) Add(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return err
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		fw.mu.Lock()
		fw.files[filepath.Clean(abs)] = true
		fw.mu.Unlock()
		return fw.w.Add(filepath.Dir(abs))
	}
	return filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != abs && skipDirs[d.Name()] {
			return filepath.SkipDir
		}
		fw.mu.Lock()
		fw.dirs[path] = true
		fw.mu.Unlock()
		return fw.w.Add(path)
	})
}

// Events delivers accepted changes. It is closed by Close.
func (fw *Watcher) Events() <-chan Event { return fw.evC }

// Errors delivers watcher errors; they are dropped when nobody reads.
func (fw *Watcher) Errors() <-chan error { return fw.erC }

// Close stops the watcher and waits for its event loop to exit. It is
// safe to call more than once.
func (fw *Watcher) Close() error {
	var err error
	fw.closeOnce.Do(func() {
		close(fw.done)
		<-fw.stopped
		err = fw.w.Close()
	})
	return err
}

func (fw *Watcher) loop() {
	defer close(fw.stopped)
	defer close(fw.evC)
	for {
		select {
		case <-fw.done:
			return
		case ev, ok := <-fw.w.Events:
			if !ok {
				return
			}
			fw.handle(ev)
		case err, ok := <-fw.w.Errors:
			if !ok {
				return
			}
			select {
			case fw.erC <- err:
			default:
			}
		}
	}
}

func (fw *Watcher) handle(ev fsnotify.Event) {
	path := filepath.Clean(ev.Name)
	if ev.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			if fw.inTree(filepath.Dir(path)) && !skipDirs[filepath.Base(path)] {
				_ = fw.Add(path)
			}
			return
		}
	}
	if !fw.accepts(path) {
		return
	}
	select {
	case fw.evC <- Event{Path: path, Op: translate(ev.Op)}:
	case <-fw.done:
	}
}

func (fw *Watcher) inTree(dir string) bool {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	return fw.dirs[dir]
}

// accepts reports whether path is an explicitly watched file, or lives in
// a recursively watched directory and passes the filter.
func (fw *Watcher) accepts(path string) bool {
	fw.mu.Lock()
	file, dir := fw.files[path], fw.dirs[filepath.Dir(path)]
	fw.mu.Unlock()
	if file {
		return true
	}
	return dir && (fw.filter == nil || fw.filter(path))
}

func translate(op fsnotify.Op) Op {
	var out Op
	if op&fsnotify.Create != 0 {
		out |= OpCreate
	}
	if op&fsnotify.Write != 0 {
		out |= OpWrite
	}
	if op&fsnotify.Remove != 0 {
		out |= OpRemove
	}
	if op&fsnotify.Rename != 0 {
		out |= OpRename
	}
	if op&fsnotify.Chmod != 0 {
		out |= OpChmod
	}
	return out
}

// Debounce groups events that arrive within delay of each other and emits
// each group as a sorted, de-duplicated path list. Removals are dropped.
// The returned channel closes when in closes or ctx is done.
func Debounce(ctx context.Context, in <-chan Event, delay time.Duration) <-chan []string {
	out := make(chan []string)
	go func() {
		defer close(out)
		pending := make(map[string]bool)
		var timer <-chan time.Time
		flush := func() bool {
			if len(pending) == 0 {
				return true
			}
			batch := make([]string, 0, len(pending))
			for p := range pending {
				batch = append(batch, p)
			}
			slices.Sort(batch)
			clear(pending)
			select {
			case out <- batch:
				return true
			case <-ctx.Done():
				return false
			}
		}
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-in:
				if !ok {
					flush()
					return
				}
				if ev.Op&(OpCreate|OpWrite|OpRename) == 0 {
					continue
				}
				pending[ev.Path] = true
				timer = time.After(delay)
			case <-timer:
				timer = nil
				if !flush() {
					return
				}
			}
		}
	}()
	return out
}
