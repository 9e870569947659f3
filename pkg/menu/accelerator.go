package menu

import "strconv"

// ModifierFlags is a native key-equivalent modifier mask.
type ModifierFlags uint

const (
	ModifierShift   ModifierFlags = 1 << 17
	ModifierControl ModifierFlags = 1 << 18
	ModifierOption  ModifierFlags = 1 << 19
	ModifierCommand ModifierFlags = 1 << 20
)

var namedKeys = map[string]rune{
	"Backspace": 0x0008,
	"Tab":       0x0009,
	"Return":    0x000d,
	"Escape":    0x001b,
	"Left":      0x001c,
	"Right":     0x001d,
	"Up":        0x001e,
	"Down":      0x001f,
	"Space":     0x0020,
	"Delete":    0x007f,
	"Home":      0x2196,
	"End":       0x2198,
	"Page Up":   0x21de,
	"Page Down": 0x21df,
	"NumLock":   0xf739,
}

// F1 is 0xf704 and the rest of F1..F35 follow contiguously.
const (
	functionKeyBase  = 0xf704
	functionKeyCount = 35
)

var modifierNames = map[string]ModifierFlags{
	"CmdOrCtrl":   ModifierCommand,
	"Super":       ModifierCommand,
	"OptionOrAlt": ModifierOption,
	"Shift":       ModifierShift,
	"Control":     ModifierControl,
}

func init() {
	for i := 0; i < functionKeyCount; i++ {
		namedKeys["F"+strconv.Itoa(i+1)] = rune(functionKeyBase + i)
	}
	for name, r := range namedKeys {
		keyNames[string(r)] = name
	}
}

// keyNames maps a native key equivalent back to its accelerator name.
var keyNames = make(map[string]string)

// KeyName is the inverse of ResolveKey for named keys.
func KeyName(key string) string {
	if name, ok := keyNames[key]; ok {
		return name
	}
	return key
}

// ResolveKey returns the native key equivalent for an accelerator key name.
// Names outside the table are used literally, so "s" stays "s".
func ResolveKey(name string) string {
	if r, ok := namedKeys[name]; ok {
		return string(r)
	}
	return name
}

// ResolveModifiers folds modifier names into a mask. Unknown names are ignored.
func ResolveModifiers(names []string) ModifierFlags {
	var mask ModifierFlags
	for _, name := range names {
		mask |= modifierNames[name]
	}
	return mask
}
