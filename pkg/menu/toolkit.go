package menu

// Handle identifies a native object created by a Toolkit. Zero is never a
// valid handle.
type Handle uint64

// CallbackAction is the action selector bound to every item the dispatcher
// owns. Role items carry their own built-in selectors instead.
const CallbackAction = "menuItemCallback:"

// Toolkit is the native UI toolkit the compiler drives. Implementations are
// expected to be used from a single UI goroutine.
type Toolkit interface {
	// NewMenu creates an empty menu container.
	NewMenu(title string) Handle
	// NewItem creates an item bound to an action selector and key equivalent.
	NewItem(title, action, key string) Handle
	// NewSeparator creates a visual divider.
	NewSeparator() Handle
	// AddItem appends item to menu.
	AddItem(menu, item Handle)
	// SetSubmenu attaches a menu container below item.
	SetSubmenu(item, menu Handle)
	SetEnabled(item Handle, enabled bool)
	SetState(item Handle, on bool)
	State(item Handle) bool
	SetModifierMask(item Handle, mask ModifierFlags)
	// Release drops a menu container and everything attached below it.
	Release(menu Handle)
}
