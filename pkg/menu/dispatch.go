package menu

import "github.com/manifold/nativemenu/pkg/menuspec"

// Dispatch handles one activation of item by the toolkit. Checkbox items
// toggle, radio items clear their group and check themselves, and the shell
// is notified. Clicking a radio item that is already checked does nothing.
func (m *Menu) Dispatch(item Handle) error {
	msg, send, err := m.activate(item)
	if err != nil || !send {
		return err
	}
	if m.Notifier != nil {
		m.Notifier.Notify(msg)
	}
	return nil
}

func (m *Menu) activate(item Handle) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.deleted {
		return "", false, ErrMenuDeleted
	}
	idx, ok := m.byHandle[item]
	if !ok {
		return "", false, ErrUnknownItem
	}
	cb := m.callbacks[idx]

	switch cb.itemType {
	case menuspec.Checkbox:
		m.toolkit.SetState(cb.item, !m.toolkit.State(cb.item))
	case menuspec.Radio:
		if m.toolkit.State(cb.item) {
			return "", false, nil
		}
		for _, sibling := range m.radioGroups[cb.id] {
			m.toolkit.SetState(sibling, false)
		}
		m.toolkit.SetState(cb.item, true)
	}

	if m.Kind == ContextMenu {
		var data string
		if m.Owner != nil {
			data = m.Owner.ContextData()
		}
		msg, err := contextMessage(cb.id, data)
		if err != nil {
			return "", false, err
		}
		return msg, true, nil
	}
	return applicationMessage(cb.id), true, nil
}
