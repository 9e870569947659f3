package menutree

import (
	"errors"
	"testing"

	"github.com/manifold/nativemenu/pkg/menu"
	"github.com/manifold/nativemenu/pkg/shell"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToolkit(t *testing.T) {
	tk := New()
	root := tk.NewMenu("")
	file := tk.NewItem("File", "", "")
	sub := tk.NewMenu("File")
	tk.SetSubmenu(file, sub)
	tk.AddItem(root, file)

	open := tk.NewItem("Open", menu.CallbackAction, "o")
	tk.SetModifierMask(open, menu.ModifierCommand)
	tk.SetEnabled(open, false)
	tk.AddItem(sub, open)
	tk.AddItem(sub, tk.NewSeparator())

	t.Run("records the tree", func(t *testing.T) {
		r := tk.Node(root)
		require.Len(t, r.Items, 1)
		assert.Equal(t, tk.Node(sub), r.Items[0].Submenu)
		n := tk.Find(root, "Open")
		require.NotNil(t, n)
		assert.Equal(t, "o", n.Key)
		assert.Equal(t, menu.ModifierCommand, n.Mask)
		assert.False(t, n.Enabled)
		assert.Equal(t, 5, tk.Live())
	})

	t.Run("state changes are reported once", func(t *testing.T) {
		var changes []menu.Handle
		tk.OnStateChange = func(n *Node) { changes = append(changes, n.Handle) }
		tk.SetState(open, true)
		tk.SetState(open, true)
		tk.SetState(open, false)
		assert.Equal(t, []menu.Handle{open, open}, changes)
		assert.False(t, tk.State(open))
		tk.OnStateChange = nil
	})

	t.Run("unknown handles are ignored", func(t *testing.T) {
		assert.NotPanics(t, func() {
			tk.AddItem(999, open)
			tk.SetState(999, true)
			tk.Release(999)
		})
		assert.False(t, tk.State(999))
		assert.Nil(t, tk.Node(999))
	})

	t.Run("release forgets the subtree", func(t *testing.T) {
		tk.Release(root)
		assert.Equal(t, 0, tk.Live())
		assert.Nil(t, tk.Find(root, "Open"))
	})
}

func TestActivate(t *testing.T) {
	tk := New()
	m, err := menu.Load(tk, []byte(`{"Menu":{"Items":[
		{"Type":"Text","Label":"Open","ID":"open"},
		{"Type":"Text","Label":"Off","ID":"off","Disabled":true},
		{"Role":"quit"}
	]},"RadioGroups":[]}`), menu.ApplicationMenu, nil)
	require.Nil(t, err)
	rec := &shell.Recorder{}
	m.Notifier = rec

	action, err := tk.Click(m, "Open")
	require.Nil(t, err)
	assert.Equal(t, menu.CallbackAction, action)

	action, err = tk.Click(m, "Off")
	require.Nil(t, err)
	assert.Equal(t, "", action)

	action, err = tk.Click(m, "Quit")
	require.Nil(t, err)
	assert.Equal(t, "terminate:", action)

	_, err = tk.Click(m, "Nope")
	assert.True(t, errors.Is(err, menu.ErrUnknownItem))

	assert.Equal(t, []string{"MCopen"}, rec.Messages())
}
