package menu

import "github.com/manifold/nativemenu/pkg/menuspec"

func (m *Menu) addTextItem(parent Handle, leaf *menuspec.Leaf) Handle {
	item := m.newCallbackItem(leaf)
	if leaf.Accelerator != nil && len(leaf.Accelerator.Modifiers) > 0 {
		m.toolkit.SetModifierMask(item, ResolveModifiers(leaf.Accelerator.Modifiers))
	}
	m.toolkit.AddItem(parent, item)
	m.register(leaf.ID, item)
	return item
}

func (m *Menu) addCheckboxItem(parent Handle, leaf *menuspec.Leaf) Handle {
	item := m.newCallbackItem(leaf)
	m.toolkit.SetState(item, leaf.Checked)
	m.toolkit.AddItem(parent, item)
	m.register(leaf.ID, item)
	return item
}

func (m *Menu) addRadioItem(parent Handle, leaf *menuspec.Leaf) Handle {
	item := m.newCallbackItem(leaf)
	m.toolkit.SetState(item, leaf.Checked)
	m.toolkit.AddItem(parent, item)
	m.register(leaf.ID, item)
	return item
}

func (m *Menu) addSeparator(parent Handle) {
	m.toolkit.AddItem(parent, m.toolkit.NewSeparator())
}

// newCallbackItem creates an item routed to the dispatcher and records its
// callback context.
func (m *Menu) newCallbackItem(leaf *menuspec.Leaf) Handle {
	var key string
	if leaf.Accelerator != nil {
		key = ResolveKey(leaf.Accelerator.Key)
	}
	item := m.toolkit.NewItem(leaf.Label, CallbackAction, key)

	m.callbacks = append(m.callbacks, callbackContext{
		item:     item,
		id:       leaf.ID,
		itemType: leaf.Type,
	})
	m.byHandle[item] = len(m.callbacks) - 1

	m.toolkit.SetEnabled(item, !leaf.Disabled)
	return item
}

// register maps id to item. Duplicate ids overwrite the earlier item.
func (m *Menu) register(id string, item Handle) {
	if id == "" {
		return
	}
	m.items[id] = item
}
