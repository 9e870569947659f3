package menu

import "github.com/manifold/nativemenu/pkg/logging"

type roleItem struct {
	title  string
	action string
	key    string
	mask   ModifierFlags
}

var (
	hideOthersItem = roleItem{"Hide Others", "hideOtherApplications:", "h", ModifierOption | ModifierCommand}
	showAllItem    = roleItem{"Show All", "unhideAllApplications:", "", 0}

	editMenuItems = []roleItem{
		{"Undo", "undo:", "z", 0},
		{"Redo", "redo:", "y", 0},
		{},
		{"Cut", "cut:", "x", 0},
		{"Copy", "copy:", "c", 0},
		{"Paste", "paste:", "v", 0},
		{"Select All", "selectAll:", "a", 0},
	}
)

var singletonRoles = map[string]roleItem{
	"hide":               {"Hide Window", "hide:", "h", 0},
	"hideothers":         hideOthersItem,
	"unhide":             showAllItem,
	"front":              {"Bring All to Front", "arrangeInFront:", "", 0},
	"undo":               {"Undo", "undo:", "z", 0},
	"redo":               {"Redo", "redo:", "y", 0},
	"cut":                {"Cut", "cut:", "x", 0},
	"copy":               {"Copy", "copy:", "c", 0},
	"paste":              {"Paste", "paste:", "v", 0},
	"delete":             {"Delete", "delete:", "", 0},
	"pasteandmatchstyle": {"Paste and Match Style", "pasteandmatchstyle:", "v", ModifierOption | ModifierShift | ModifierCommand},
	"selectall":          {"Select All", "selectAll:", "a", 0},
	"minimize":           {"Minimize", "miniaturize:", "m", 0},
	"zoom":               {"Zoom", "performZoom:", "", 0},
	"quit":               {"Quit", "terminate:", "q", 0},
	"togglefullscreen":   {"Toggle Full Screen", "toggleFullScreen:", "f", 0},
}

// IsRole reports whether name is a role the resolver knows.
func IsRole(name string) bool {
	if name == "appMenu" || name == "editMenu" {
		return true
	}
	_, ok := singletonRoles[name]
	return ok
}

// applyRole inserts the standard items for a role into parent. Role items
// invoke native actions directly and never reach the dispatcher.
func (m *Menu) applyRole(name string, parent Handle) {
	switch name {
	case "appMenu":
		m.addAppMenu(parent)
		return
	case "editMenu":
		m.addRoleSubmenu(parent, "Edit", editMenuItems)
		return
	}
	item, ok := singletonRoles[name]
	if !ok {
		logging.Debug(m.Logger, "menu: ignoring unknown role ", name)
		return
	}
	m.addRoleItem(parent, item)
}

func (m *Menu) addAppMenu(parent Handle) {
	app := m.AppName
	m.addRoleSubmenu(parent, app, []roleItem{
		{"Hide " + app, "hide:", "h", 0},
		hideOthersItem,
		showAllItem,
		{},
		{"Quit " + app, "terminate:", "q", 0},
	})
}

// addRoleSubmenu adds a titled submenu; a zero roleItem is a separator.
func (m *Menu) addRoleSubmenu(parent Handle, title string, items []roleItem) {
	holder := m.toolkit.NewItem(title, "", "")
	sub := m.toolkit.NewMenu(title)
	m.toolkit.SetSubmenu(holder, sub)
	m.toolkit.AddItem(parent, holder)
	for _, it := range items {
		if it.title == "" {
			m.addSeparator(sub)
			continue
		}
		m.addRoleItem(sub, it)
	}
}

func (m *Menu) addRoleItem(parent Handle, it roleItem) Handle {
	item := m.toolkit.NewItem(it.title, it.action, it.key)
	m.toolkit.SetEnabled(item, true)
	if it.mask != 0 {
		m.toolkit.SetModifierMask(item, it.mask)
	}
	m.toolkit.AddItem(parent, item)
	return item
}
