// Package shell holds the receiving side of menu messages: notifiers that
// forward them and the context-menu owner that carries per-invocation data.
package shell

import (
	"fmt"
	"io"
	"sync"

	"github.com/manifold/nativemenu/pkg/logging"
)

// Writer writes each message on its own line.
type Writer struct {
	Output io.Writer
	Logger logging.ErrorLogger

	mu sync.Mutex
}

func (w *Writer) Notify(message string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, err := fmt.Fprintln(w.Output, message); err != nil {
		logging.Error(w.Logger, "shell: write failed: ", err)
	}
}

// Recorder keeps every message in memory.
type Recorder struct {
	mu       sync.Mutex
	messages []string
}

func (r *Recorder) Notify(message string) {
	r.mu.Lock()
	r.messages = append(r.messages, message)
	r.mu.Unlock()
}

// Messages returns a copy of what was received so far.
func (r *Recorder) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.messages))
	copy(out, r.messages)
	return out
}

// Reset drops recorded messages.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.messages = nil
	r.mu.Unlock()
}

// Multi fans a message out to several notifiers in order.
type Multi []interface{ Notify(string) }

func (m Multi) Notify(message string) {
	for _, n := range m {
		n.Notify(message)
	}
}

// ContextStore owns a context menu. The shell stores the payload right before
// the menu is shown and the dispatcher reads it when an item is clicked.
type ContextStore struct {
	mu   sync.RWMutex
	data string
}

func (s *ContextStore) Set(data string) {
	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
}

func (s *ContextStore) ContextData() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data
}
