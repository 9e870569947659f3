package menu

import (
	"fmt"

	"github.com/manifold/nativemenu/pkg/logging"
	"github.com/manifold/nativemenu/pkg/menuspec"
)

// indexRadioGroups gives every member its own copy of the full sibling list,
// so a click can clear the group without knowing which group it is in.
func (m *Menu) indexRadioGroups(groups []menuspec.RadioGroup) error {
	for i, g := range groups {
		if g.Length != len(g.Members) {
			logging.Debug(m.Logger, fmt.Sprintf("menu: radio group %d declares length %d but has %d members",
				i, g.Length, len(g.Members)))
		}
		siblings := make([]Handle, 0, len(g.Members))
		for _, id := range g.Members {
			item, ok := m.items[id]
			if !ok {
				return fmt.Errorf("radio group %d: %w %q", i, ErrUnknownRadioMember, id)
			}
			siblings = append(siblings, item)
		}
		for _, id := range g.Members {
			list := make([]Handle, len(siblings))
			copy(list, siblings)
			m.radioGroups[id] = list
		}
	}
	return nil
}
