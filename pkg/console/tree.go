package console

import (
	"fmt"
	"strings"

	ct "github.com/daviddengcn/go-colortext"
	"github.com/manifold/nativemenu/pkg/menu"
	"github.com/manifold/nativemenu/pkg/menutree"
)

// PrintTree writes one line per node below root. The left column is the kind
// of row, the right column its title and bindings.
func (of *Console) PrintTree(root *menutree.Node) {
	if root == nil {
		return
	}
	of.printTree(root, 0)
}

func (of *Console) printTree(n *menutree.Node, depth int) {
	pad := strings.Repeat("  ", depth)
	for _, c := range n.Items {
		switch {
		case c.Kind == menutree.SeparatorNode:
			of.WriteLine("separator", pad+"----", ct.White, ct.None, false)
		case c.Submenu != nil:
			of.WriteLine("submenu", pad+c.Title, ct.Magenta, ct.None, false)
			of.printTree(c.Submenu, depth+1)
		default:
			kind, color := "item", ct.Cyan
			if c.Action != menu.CallbackAction {
				kind, color = "role", ct.Yellow
			}
			of.WriteLine(kind, pad+describe(c), color, ct.None, false)
		}
	}
}

func describe(n *menutree.Node) string {
	var b strings.Builder
	if n.Checked {
		b.WriteString("[x] ")
	}
	b.WriteString(n.Title)
	var attrs []string
	if n.Action != menu.CallbackAction && n.Action != "" {
		attrs = append(attrs, n.Action)
	}
	if n.Key != "" {
		attrs = append(attrs, "key="+menu.KeyName(n.Key))
	}
	if n.Mask != 0 {
		attrs = append(attrs, fmt.Sprintf("mask=%#x", uint(n.Mask)))
	}
	if !n.Enabled {
		attrs = append(attrs, "disabled")
	}
	if len(attrs) > 0 {
		b.WriteString(" (" + strings.Join(attrs, ", ") + ")")
	}
	return b.String()
}
