// Package menutree is a Toolkit that builds plain Go values instead of native
// objects. It backs the tray host, the CLI and tests.
package menutree

import (
	"fmt"
	"sync"

	"github.com/manifold/nativemenu/pkg/menu"
)

type NodeKind string

const (
	MenuNode      NodeKind = "menu"
	ItemNode      NodeKind = "item"
	SeparatorNode NodeKind = "separator"
)

// Node is a menu container, an item or a separator.
type Node struct {
	Handle  menu.Handle
	Kind    NodeKind
	Title   string
	Action  string
	Key     string
	Mask    menu.ModifierFlags
	Enabled bool
	Checked bool

	// Submenu is set on items holding a submenu.
	Submenu *Node
	// Items is set on menu containers.
	Items []*Node
}

// Toolkit records every call into a tree of Nodes.
type Toolkit struct {
	// OnStateChange is called after SetState changes a node.
	OnStateChange func(n *Node)

	nodes map[menu.Handle]*Node
	next  menu.Handle
	mu    sync.Mutex
}

var _ menu.Toolkit = (*Toolkit)(nil)

func New() *Toolkit {
	return &Toolkit{nodes: make(map[menu.Handle]*Node)}
}

func (t *Toolkit) add(n *Node) menu.Handle {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.next++
	n.Handle = t.next
	t.nodes[n.Handle] = n
	return n.Handle
}

func (t *Toolkit) NewMenu(title string) menu.Handle {
	return t.add(&Node{Kind: MenuNode, Title: title, Enabled: true})
}

func (t *Toolkit) NewItem(title, action, key string) menu.Handle {
	return t.add(&Node{Kind: ItemNode, Title: title, Action: action, Key: key, Enabled: true})
}

func (t *Toolkit) NewSeparator() menu.Handle {
	return t.add(&Node{Kind: SeparatorNode})
}

func (t *Toolkit) AddItem(parent, item menu.Handle) {
	p, i := t.Node(parent), t.Node(item)
	if p == nil || i == nil {
		return
	}
	t.mu.Lock()
	p.Items = append(p.Items, i)
	t.mu.Unlock()
}

func (t *Toolkit) SetSubmenu(item, sub menu.Handle) {
	i, s := t.Node(item), t.Node(sub)
	if i == nil || s == nil {
		return
	}
	t.mu.Lock()
	i.Submenu = s
	t.mu.Unlock()
}

func (t *Toolkit) SetEnabled(item menu.Handle, enabled bool) {
	t.update(item, func(n *Node) { n.Enabled = enabled })
}

func (t *Toolkit) SetModifierMask(item menu.Handle, mask menu.ModifierFlags) {
	t.update(item, func(n *Node) { n.Mask = mask })
}

func (t *Toolkit) SetState(item menu.Handle, on bool) {
	n := t.Node(item)
	if n == nil {
		return
	}
	t.mu.Lock()
	changed := n.Checked != on
	n.Checked = on
	t.mu.Unlock()
	if changed && t.OnStateChange != nil {
		t.OnStateChange(n)
	}
}

func (t *Toolkit) State(item menu.Handle) bool {
	n := t.Node(item)
	if n == nil {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return n.Checked
}

// Release forgets the menu and everything below it.
func (t *Toolkit) Release(m menu.Handle) {
	n := t.Node(m)
	if n == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.forget(n)
}

func (t *Toolkit) forget(n *Node) {
	delete(t.nodes, n.Handle)
	if n.Submenu != nil {
		t.forget(n.Submenu)
	}
	for _, c := range n.Items {
		t.forget(c)
	}
}

func (t *Toolkit) update(h menu.Handle, fn func(n *Node)) {
	n := t.Node(h)
	if n == nil {
		return
	}
	t.mu.Lock()
	fn(n)
	t.mu.Unlock()
}

// Node returns the node for h, or nil if it was never created or was released.
func (t *Toolkit) Node(h menu.Handle) *Node {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.nodes[h]
}

// Live counts the nodes that have not been released.
func (t *Toolkit) Live() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.nodes)
}

// Find returns the first item below root with the given title, depth first.
func (t *Toolkit) Find(root menu.Handle, title string) *Node {
	r := t.Node(root)
	if r == nil {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return find(r, title)
}

func find(n *Node, title string) *Node {
	for _, c := range n.Items {
		if c.Kind == ItemNode && c.Title == title {
			return c
		}
		if c.Submenu != nil {
			if f := find(c.Submenu, title); f != nil {
				return f
			}
		}
	}
	return nil
}

// Activate simulates the user choosing item. Items bound to the dispatcher are
// routed to m; other items return their built-in action.
func (t *Toolkit) Activate(m *menu.Menu, item menu.Handle) (action string, err error) {
	n := t.Node(item)
	if n == nil {
		return "", fmt.Errorf("%w: handle %d", menu.ErrUnknownItem, item)
	}
	if n.Kind != ItemNode || n.Submenu != nil {
		return "", nil
	}
	if !n.Enabled {
		return "", nil
	}
	if n.Action == menu.CallbackAction {
		return n.Action, m.Dispatch(item)
	}
	return n.Action, nil
}

// Click activates the first item titled title below the menu's root.
func (t *Toolkit) Click(m *menu.Menu, title string) (string, error) {
	n := t.Find(m.Root(), title)
	if n == nil {
		return "", fmt.Errorf("%w: %q", menu.ErrUnknownItem, title)
	}
	return t.Activate(m, n.Handle)
}
