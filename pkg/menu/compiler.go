package menu

import (
	"fmt"

	"github.com/manifold/nativemenu/pkg/logging"
	"github.com/manifold/nativemenu/pkg/menuspec"
)

// Compile builds the native menu and returns its root container. A failed
// compile releases everything it created. Compiling twice returns the
// existing root.
func (m *Menu) Compile() (Handle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.deleted {
		return 0, &LoadError{Op: "compile", Err: ErrMenuDeleted}
	}
	if m.compiled {
		return m.root, nil
	}

	m.root = m.toolkit.NewMenu(m.Title)
	for _, n := range m.doc.Items {
		m.compile(m.root, n)
	}
	if err := m.indexRadioGroups(m.doc.RadioGroups); err != nil {
		m.reset()
		return 0, &LoadError{Op: "compile", Err: err}
	}
	m.compiled = true

	logging.Debug(m.Logger, fmt.Sprintf("menu: compiled %s menu with %d items, %d callbacks, %d radio members",
		m.Kind, len(m.items), len(m.callbacks), len(m.radioGroups)))
	return m.root, nil
}

func (m *Menu) compile(parent Handle, n menuspec.Node) {
	if n.IsHidden() {
		return
	}
	switch n := n.(type) {
	case *menuspec.Role:
		m.applyRole(n.Name, parent)
	case *menuspec.Submenu:
		holder := m.toolkit.NewItem(n.Label, "", "")
		sub := m.toolkit.NewMenu(n.Label)
		m.toolkit.SetSubmenu(holder, sub)
		m.toolkit.AddItem(parent, holder)
		for _, child := range n.Items {
			m.compile(sub, child)
		}
	case *menuspec.Leaf:
		m.compileLeaf(parent, n)
	}
}

func (m *Menu) compileLeaf(parent Handle, leaf *menuspec.Leaf) {
	switch leaf.Type {
	case menuspec.Text:
		m.addTextItem(parent, leaf)
	case menuspec.Separator:
		m.addSeparator(parent)
	case menuspec.Checkbox:
		m.addCheckboxItem(parent, leaf)
	case menuspec.Radio:
		m.addRadioItem(parent, leaf)
	default:
		logging.Debug(m.Logger, fmt.Sprintf("menu: ignoring item %q with type %q", leaf.ID, leaf.Type))
	}
}

// Load parses menuJSON and compiles it in one step.
func Load(tk Toolkit, menuJSON []byte, kind Kind, owner ContextSource) (*Menu, error) {
	doc, err := menuspec.Parse(menuJSON)
	if err != nil {
		return nil, &LoadError{Op: "parse", Err: err}
	}
	m := New(tk, doc, kind)
	m.Owner = owner
	if _, err := m.Compile(); err != nil {
		return nil, err
	}
	return m, nil
}
