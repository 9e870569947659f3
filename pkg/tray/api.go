package tray

type Menu struct {
	Icon    string     `json:"icon"`
	Title   string     `json:"title"`
	Tooltip string     `json:"tooltip"`
	Items   []MenuItem `json:"items"`
}

// MenuItem is one row of the flattened menu. The tray has no nested menus, so
// submenus are sent as a Header row followed by their items at Depth+1.
type MenuItem struct {
	Handle    uint64 `json:"handle"`
	Title     string `json:"title"`
	Tooltip   string `json:"tooltip"`
	Depth     int    `json:"depth"`
	Enabled   bool   `json:"enabled"`
	Checked   bool   `json:"checked"`
	Separator bool   `json:"separator,omitempty"`
	Header    bool   `json:"header,omitempty"`
}

type Message struct {
	Type  MessageType `json:"type"`
	Item  *MenuItem   `json:"item,omitempty"`
	Menu  *Menu       `json:"menu,omitempty"`
	Error *string     `json:"error,omitempty"`
}

type MessageType string

const (
	InitMenu    MessageType = "init-menu"
	ItemUpdate  MessageType = "item-update"
	ItemClicked MessageType = "item-clicked"
	Error       MessageType = "error"
)
