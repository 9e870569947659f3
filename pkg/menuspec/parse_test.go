package menuspec

import (
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `{
	"Menu": {"Items": [
		{"Role": "appMenu"},
		{"Label": "File", "SubMenu": [
			{"Type": "Text", "Label": "Open", "ID": "open", "Accelerator": {"Key": "o", "Modifiers": ["CmdOrCtrl"]}},
			{"Type": "Separator"},
			{"Type": "Checkbox", "Label": "Autosave", "ID": "autosave", "Checked": true, "Disabled": true}
		]},
		{"Type": "Radio", "ID": "r1", "Hidden": true}
	]},
	"RadioGroups": [{"Length": 1, "Members": ["r1"]}]
}`

func TestParse(t *testing.T) {
	doc, err := Parse([]byte(sample))
	require.Nil(t, err)
	require.Len(t, doc.Items, 3)

	t.Run("role", func(t *testing.T) {
		role, ok := doc.Items[0].(*Role)
		require.True(t, ok)
		assert.Equal(t, "appMenu", role.Name)
	})

	t.Run("submenu", func(t *testing.T) {
		sub, ok := doc.Items[1].(*Submenu)
		require.True(t, ok)
		assert.Equal(t, "File", sub.Label)
		require.Len(t, sub.Items, 3)

		open := sub.Items[0].(*Leaf)
		assert.Equal(t, &Leaf{
			Label:       "Open",
			ID:          "open",
			Type:        Text,
			Accelerator: &Accelerator{Key: "o", Modifiers: []string{"CmdOrCtrl"}},
		}, open)

		sep := sub.Items[1].(*Leaf)
		assert.Equal(t, Separator, sep.Type)
		assert.Equal(t, DefaultLabel, sep.Label)

		cb := sub.Items[2].(*Leaf)
		assert.True(t, cb.Checked)
		assert.True(t, cb.Disabled)
	})

	t.Run("hidden node is a stub", func(t *testing.T) {
		leaf := doc.Items[2].(*Leaf)
		assert.True(t, leaf.IsHidden())
		assert.Equal(t, DefaultLabel, leaf.Label)
		assert.Equal(t, ItemType(""), leaf.Type)
		assert.Equal(t, "", leaf.ID)
	})

	t.Run("radio groups", func(t *testing.T) {
		assert.Equal(t, []RadioGroup{{Length: 1, Members: []string{"r1"}}}, doc.RadioGroups)
	})
}

func TestParseRoleWinsOverSubmenu(t *testing.T) {
	doc, err := Parse([]byte(`{"Menu":{"Items":[{"Role":"copy","SubMenu":[],"Type":"Text"}]},"RadioGroups":[]}`))
	require.Nil(t, err)
	_, ok := doc.Items[0].(*Role)
	assert.True(t, ok)
}

func TestParseNullsAreAbsent(t *testing.T) {
	doc, err := Parse([]byte(`{"Menu":{"Items":[{"Role":null,"SubMenu":null,"Label":null,"Type":"Text"}]},"RadioGroups":[]}`))
	require.Nil(t, err)
	leaf, ok := doc.Items[0].(*Leaf)
	require.True(t, ok)
	assert.Equal(t, DefaultLabel, leaf.Label)
}

func TestParseHiddenSkipsFields(t *testing.T) {
	doc, err := Parse([]byte(`{"Menu":{"Items":[
		{"Hidden":true,"Label":7,"Disabled":"no"},
		{"Hidden":true,"Role":1},
		{"Hidden":true,"Label":"Bad","SubMenu":[{"Hidden":"yes"}]},
		{"Hidden":false,"Type":"Text","Label":"Shown"}
	]},"RadioGroups":[]}`))
	require.Nil(t, err)
	require.Len(t, doc.Items, 4)
	for _, n := range doc.Items[:3] {
		assert.True(t, n.IsHidden())
	}
	shown := doc.Items[3].(*Leaf)
	assert.False(t, shown.IsHidden())
	assert.Equal(t, "Shown", shown.Label)
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		err  error
	}{
		{"missing menu", `{"RadioGroups":[]}`, ErrMissingKey},
		{"missing items", `{"Menu":{},"RadioGroups":[]}`, ErrMissingKey},
		{"missing radio groups", `{"Menu":{"Items":[]}}`, ErrMissingKey},
		{"null document", `null`, ErrMissingKey},
		{"items not array", `{"Menu":{"Items":{}},"RadioGroups":[]}`, ErrInvalidNode},
		{"item not object", `{"Menu":{"Items":[1]},"RadioGroups":[]}`, ErrInvalidNode},
		{"role not string", `{"Menu":{"Items":[{"Role":1}]},"RadioGroups":[]}`, ErrInvalidNode},
		{"hidden not bool", `{"Menu":{"Items":[{"Hidden":"yes"}]},"RadioGroups":[]}`, ErrInvalidNode},
		{"nested error", `{"Menu":{"Items":[{"SubMenu":[{"SubMenu":"x"}]}]},"RadioGroups":[]}`, ErrInvalidNode},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Parse([]byte(c.src))
			require.NotNil(t, err)
			assert.True(t, errors.Is(err, c.err), err.Error())
		})
	}

	t.Run("wrong leaf field type", func(t *testing.T) {
		_, err := Parse([]byte(`{"Menu":{"Items":[{"Type":"Text","Disabled":"no"}]},"RadioGroups":[]}`))
		assert.NotNil(t, err)
	})

	t.Run("syntax", func(t *testing.T) {
		_, err := Parse([]byte(`{"Menu":`))
		assert.NotNil(t, err)
	})
}

func TestFingerprint(t *testing.T) {
	a, err := Parse([]byte(sample))
	require.Nil(t, err)
	b, err := Parse([]byte(sample))
	require.Nil(t, err)
	c, err := Parse([]byte(`{"Menu":{"Items":[{"Type":"Text","Label":"Other"}]},"RadioGroups":[]}`))
	require.Nil(t, err)

	fa, err := a.Fingerprint()
	require.Nil(t, err)
	fb, _ := b.Fingerprint()
	fc, _ := c.Fingerprint()
	assert.Equal(t, fa, fb)
	assert.NotEqual(t, fa, fc)
}

func TestLoader(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.Nil(t, afero.WriteFile(fs, "/menus/app.json", []byte(sample), 0644))
	l := &Loader{Fs: fs}

	doc, err := l.Load("/menus/app.json")
	require.Nil(t, err)
	assert.Len(t, doc.Items, 3)

	_, err = l.Load("/menus/missing.json")
	assert.NotNil(t, err)

	require.Nil(t, afero.WriteFile(fs, "/menus/broken.json", []byte(`{"Menu":{"Items":[]}}`), 0644))
	_, err = l.Load("/menus/broken.json")
	assert.True(t, errors.Is(err, ErrMissingKey))
}
