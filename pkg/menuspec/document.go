// Package menuspec decodes the declarative JSON menu description into a typed
// tree that the menu compiler walks.
package menuspec

import "github.com/mitchellh/hashstructure"

// ItemType selects which native item a Leaf becomes.
type ItemType string

const (
	Text      ItemType = "Text"
	Separator ItemType = "Separator"
	Checkbox  ItemType = "Checkbox"
	Radio     ItemType = "Radio"
)

// Node is one entry of an item list. It is always a *Leaf, *Submenu or *Role.
type Node interface {
	IsHidden() bool
	node()
}

// Accelerator is the keyboard shortcut of a Leaf.
type Accelerator struct {
	Key       string   `mapstructure:"Key"`
	Modifiers []string `mapstructure:"Modifiers"`
}

// Leaf is an interactive item or a separator.
type Leaf struct {
	Label       string
	ID          string
	Type        ItemType
	Disabled    bool
	Checked     bool
	Hidden      bool
	Accelerator *Accelerator
}

// Submenu is a titled container of further nodes.
type Submenu struct {
	Label  string
	Hidden bool
	Items  []Node
}

// Role is a standard OS-provided entry such as "copy" or "appMenu".
type Role struct {
	Name   string
	Hidden bool
}

func (l *Leaf) IsHidden() bool    { return l.Hidden }
func (s *Submenu) IsHidden() bool { return s.Hidden }
func (r *Role) IsHidden() bool    { return r.Hidden }

func (*Leaf) node()    {}
func (*Submenu) node() {}
func (*Role) node()    {}

// RadioGroup names the ids of mutually exclusive radio items.
type RadioGroup struct {
	Length  int      `mapstructure:"Length"`
	Members []string `mapstructure:"Members"`
}

// Document is a parsed menu description. It is not modified after Parse.
type Document struct {
	Items       []Node
	RadioGroups []RadioGroup
}

// Fingerprint hashes the document structure. Two documents with the same
// fingerprint compile to the same native tree.
func (d *Document) Fingerprint() (uint64, error) {
	return hashstructure.Hash(d, nil)
}
