package menuspec

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mitchellh/mapstructure"
)

const (
	// DefaultLabel is used for items that have no "Label".
	DefaultLabel = "(empty)"
)

var (
	ErrMissingKey  = errors.New("missing key")
	ErrInvalidNode = errors.New("invalid menu node")
)

type leafFields struct {
	Label       *string      `mapstructure:"Label"`
	ID          *string      `mapstructure:"ID"`
	Type        string       `mapstructure:"Type"`
	Disabled    bool         `mapstructure:"Disabled"`
	Checked     bool         `mapstructure:"Checked"`
	Accelerator *Accelerator `mapstructure:"Accelerator"`
}

// Parse decodes a menu document. "Menu", "Menu.Items" and "RadioGroups" are
// required; anything else missing takes its default.
func Parse(data []byte) (*Document, error) {
	var root map[string]interface{}
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("decoding menu json: %w", err)
	}

	menu, err := object(root, "Menu")
	if err != nil {
		return nil, err
	}
	rawItems, err := array(menu, "Items", "Menu.")
	if err != nil {
		return nil, err
	}
	rawGroups, err := array(root, "RadioGroups", "")
	if err != nil {
		return nil, err
	}

	doc := &Document{}
	if doc.Items, err = parseNodes(rawItems, "Menu.Items"); err != nil {
		return nil, err
	}
	if err := mapstructure.Decode(rawGroups, &doc.RadioGroups); err != nil {
		return nil, fmt.Errorf("RadioGroups: %w", err)
	}
	return doc, nil
}

func parseNodes(raw []interface{}, path string) ([]Node, error) {
	nodes := make([]Node, 0, len(raw))
	for i, r := range raw {
		n, err := parseNode(r, fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func parseNode(raw interface{}, path string) (Node, error) {
	m, ok := raw.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%s: %w: expected object, got %T", path, ErrInvalidNode, raw)
	}

	var hidden bool
	if v, ok := field(m, "Hidden"); ok {
		if hidden, ok = v.(bool); !ok {
			return nil, fmt.Errorf("%s.Hidden: %w: expected bool, got %T", path, ErrInvalidNode, v)
		}
	}
	if hidden {
		// nothing else of a hidden node is read
		return &Leaf{Label: DefaultLabel, Hidden: true}, nil
	}

	if v, ok := field(m, "Role"); ok {
		name, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%s.Role: %w: expected string, got %T", path, ErrInvalidNode, v)
		}
		return &Role{Name: name}, nil
	}

	if v, ok := field(m, "SubMenu"); ok {
		children, ok := v.([]interface{})
		if !ok {
			return nil, fmt.Errorf("%s.SubMenu: %w: expected array, got %T", path, ErrInvalidNode, v)
		}
		sub := &Submenu{}
		if l, ok := field(m, "Label"); ok {
			if sub.Label, ok = l.(string); !ok {
				return nil, fmt.Errorf("%s.Label: %w: expected string, got %T", path, ErrInvalidNode, l)
			}
		}
		items, err := parseNodes(children, path+".SubMenu")
		if err != nil {
			return nil, err
		}
		sub.Items = items
		return sub, nil
	}

	var f leafFields
	if err := mapstructure.Decode(m, &f); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	leaf := &Leaf{
		Label:       DefaultLabel,
		Type:        ItemType(f.Type),
		Disabled:    f.Disabled,
		Checked:     f.Checked,
		Accelerator: f.Accelerator,
	}
	if f.Label != nil {
		leaf.Label = *f.Label
	}
	if f.ID != nil {
		leaf.ID = *f.ID
	}
	return leaf, nil
}

// field treats an explicit JSON null the same as an absent key.
func field(m map[string]interface{}, key string) (interface{}, bool) {
	v, ok := m[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

func object(m map[string]interface{}, key string) (map[string]interface{}, error) {
	v, ok := field(m, key)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingKey, key)
	}
	obj, ok := v.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%s: %w: expected object, got %T", key, ErrInvalidNode, v)
	}
	return obj, nil
}

func array(m map[string]interface{}, key, prefix string) ([]interface{}, error) {
	v, ok := field(m, key)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingKey, prefix+key)
	}
	arr, ok := v.([]interface{})
	if !ok {
		return nil, fmt.Errorf("%s%s: %w: expected array, got %T", prefix, key, ErrInvalidNode, v)
	}
	return arr, nil
}
