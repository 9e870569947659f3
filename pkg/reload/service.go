// Package reload recompiles a menu when its document changes on disk.
package reload

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/manifold/nativemenu/pkg/logging"
	"github.com/manifold/nativemenu/pkg/menuspec"
)

// Target receives documents that differ from the last applied one.
type Target interface {
	Apply(doc *menuspec.Document) error
}

type Service struct {
	Path   string
	Loader *menuspec.Loader
	Target Target
	Logger logging.Logger
	Delay  time.Duration

	watcher *fsnotify.Watcher
	last    uint64
	loaded  bool
	mu      sync.Mutex
}

func (s *Service) InitializeDaemon() (err error) {
	if s.Loader == nil {
		s.Loader = menuspec.NewLoader()
	}
	if s.Delay == 0 {
		s.Delay = 100 * time.Millisecond
	}
	if err := s.remember(); err != nil {
		return err
	}
	s.watcher, err = fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	// editors often replace the file, so watch the directory instead
	return s.watcher.Add(filepath.Dir(s.Path))
}

func (s *Service) TerminateDaemon() error {
	if s.watcher == nil {
		return nil
	}
	return s.watcher.Close()
}

func (s *Service) Serve(ctx context.Context) {
	debounce := Debounce(s.Delay)
	target := filepath.Clean(s.Path)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if event.Op&fsnotify.Chmod == fsnotify.Chmod {
				continue
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				// a replaced file shows up again as Create
				continue
			}
			debounce(func() {
				changed, err := s.Reload()
				if err != nil {
					logging.Error(s.Logger, "reload: ", err)
					return
				}
				if changed {
					logging.Info(s.Logger, "reload: applied ", s.Path)
				}
			})
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			logging.Error(s.Logger, "reload: watcher error: ", err)
		}
	}
}

// Reload loads the document and applies it if it changed since the last
// successful apply.
func (s *Service) Reload() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.Loader.Load(s.Path)
	if err != nil {
		return false, err
	}
	fp, err := doc.Fingerprint()
	if err != nil {
		return false, err
	}
	if s.loaded && fp == s.last {
		logging.Debug(s.Logger, "reload: ", s.Path, " unchanged")
		return false, nil
	}
	if err := s.Target.Apply(doc); err != nil {
		return false, err
	}
	s.last, s.loaded = fp, true
	return true, nil
}

// remember records the fingerprint of the document the target already shows.
func (s *Service) remember() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.Loader.Load(s.Path)
	if err != nil {
		return err
	}
	fp, err := doc.Fingerprint()
	if err != nil {
		return err
	}
	s.last, s.loaded = fp, true
	return nil
}

// Debounce returns a function that runs only the last fn given to it within
// delay.
func Debounce(delay time.Duration) func(fn func()) {
	var mu sync.Mutex
	var timer *time.Timer
	return func(fn func()) {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(delay, fn)
	}
}
