package tray

import (
	"strings"

	"github.com/manifold/nativemenu/pkg/menu"
	"github.com/manifold/nativemenu/pkg/menutree"
)

// Flatten turns the compiled tree below root into tray rows.
func Flatten(root *menutree.Node) []MenuItem {
	if root == nil {
		return nil
	}
	var items []MenuItem
	flatten(root, 0, &items)
	return items
}

func flatten(n *menutree.Node, depth int, items *[]MenuItem) {
	for _, c := range n.Items {
		switch {
		case c.Kind == menutree.SeparatorNode:
			*items = append(*items, MenuItem{Handle: uint64(c.Handle), Separator: true, Depth: depth})
		case c.Submenu != nil:
			*items = append(*items, MenuItem{
				Handle:  uint64(c.Handle),
				Title:   c.Title,
				Depth:   depth,
				Header:  true,
				Enabled: false,
			})
			flatten(c.Submenu, depth+1, items)
		default:
			*items = append(*items, row(c, depth))
		}
	}
}

func row(n *menutree.Node, depth int) MenuItem {
	return MenuItem{
		Handle:  uint64(n.Handle),
		Title:   n.Title,
		Tooltip: Shortcut(n.Key, n.Mask),
		Depth:   depth,
		Enabled: n.Enabled,
		Checked: n.Checked,
	}
}

// Shortcut describes a key equivalent for display, e.g. "Cmd+Shift+S".
func Shortcut(key string, mask menu.ModifierFlags) string {
	if key == "" {
		return ""
	}
	var parts []string
	for _, m := range []struct {
		flag menu.ModifierFlags
		name string
	}{
		{menu.ModifierControl, "Ctrl"},
		{menu.ModifierOption, "Alt"},
		{menu.ModifierShift, "Shift"},
		{menu.ModifierCommand, "Cmd"},
	} {
		if mask&m.flag != 0 {
			parts = append(parts, m.name)
		}
	}
	name := menu.KeyName(key)
	if name == key {
		name = strings.ToUpper(key)
	}
	return strings.Join(append(parts, name), "+")
}
