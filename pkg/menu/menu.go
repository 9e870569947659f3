// Package menu compiles a menu document into native menu objects through a
// Toolkit and dispatches item activations back to the embedding shell.
package menu

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/manifold/nativemenu/pkg/logging"
	"github.com/manifold/nativemenu/pkg/menuspec"
)

// Kind selects the placement of a menu, which only changes the outbound
// message envelope.
type Kind int

const (
	ApplicationMenu Kind = iota
	ContextMenu
)

func (k Kind) String() string {
	switch k {
	case ApplicationMenu:
		return "application"
	case ContextMenu:
		return "context"
	default:
		return "unknown"
	}
}

// Notifier receives one message per dispatched activation.
type Notifier interface {
	Notify(message string)
}

// ContextSource is the owner of a context menu. ContextData is read at click
// time and holds whatever the shell stored before showing the menu.
type ContextSource interface {
	ContextData() string
}

type callbackContext struct {
	item     Handle
	id       string
	itemType menuspec.ItemType
}

// Menu is one compiled menu document and its bookkeeping.
type Menu struct {
	Title    string
	Kind     Kind
	AppName  string
	Notifier Notifier
	Owner    ContextSource
	Logger   logging.DebugLogger

	toolkit Toolkit
	doc     *menuspec.Document
	root    Handle

	items       map[string]Handle
	radioGroups map[string][]Handle

	// callbacks is append-only and released as a whole by Delete.
	callbacks []callbackContext
	byHandle  map[Handle]int

	compiled bool
	deleted  bool
	mu       sync.Mutex
}

// New returns an uncompiled menu for doc.
func New(tk Toolkit, doc *menuspec.Document, kind Kind) *Menu {
	return &Menu{
		Kind:        kind,
		AppName:     filepath.Base(os.Args[0]),
		toolkit:     tk,
		doc:         doc,
		items:       make(map[string]Handle, 16),
		radioGroups: make(map[string][]Handle, 4),
		byHandle:    make(map[Handle]int),
	}
}

// NewApplicationMenu parses menuJSON into an application menu.
func NewApplicationMenu(tk Toolkit, menuJSON []byte) (*Menu, error) {
	doc, err := menuspec.Parse(menuJSON)
	if err != nil {
		return nil, &LoadError{Op: "parse", Err: err}
	}
	return New(tk, doc, ApplicationMenu), nil
}

// NewContextMenu parses menuJSON into a context menu owned by owner.
func NewContextMenu(tk Toolkit, menuJSON []byte, owner ContextSource) (*Menu, error) {
	doc, err := menuspec.Parse(menuJSON)
	if err != nil {
		return nil, &LoadError{Op: "parse", Err: err}
	}
	m := New(tk, doc, ContextMenu)
	m.Owner = owner
	return m, nil
}

// Document returns the parsed description the menu was built from.
func (m *Menu) Document() *menuspec.Document {
	return m.doc
}

// Root returns the native root container, or zero before Compile.
func (m *Menu) Root() Handle {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.root
}

// Item looks up the native item registered for id.
func (m *Menu) Item(id string) (Handle, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.items[id]
	return h, ok
}

// RadioSiblings returns every member of the radio group id belongs to,
// including the item itself.
func (m *Menu) RadioSiblings(id string) ([]Handle, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.radioGroups[id]
	if !ok {
		return nil, false
	}
	out := make([]Handle, len(s))
	copy(out, s)
	return out, true
}

// Delete releases the native menu and all callback contexts. The menu must be
// detached from the UI first; later dispatches fail with ErrMenuDeleted.
func (m *Menu) Delete() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleted {
		return
	}
	m.deleted = true
	m.reset()
	m.doc = nil
}

// reset drops everything Compile created. Callers hold mu.
func (m *Menu) reset() {
	if m.root != 0 {
		m.toolkit.Release(m.root)
		m.root = 0
	}
	m.items = make(map[string]Handle)
	m.radioGroups = make(map[string][]Handle)
	m.callbacks = nil
	m.byHandle = make(map[Handle]int)
	m.compiled = false
}
