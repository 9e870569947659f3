package menu_test

import (
	"errors"
	"testing"

	"github.com/manifold/nativemenu/pkg/menu"
	"github.com/manifold/nativemenu/pkg/menuspec"
	"github.com/manifold/nativemenu/pkg/menutree"
	"github.com/manifold/nativemenu/pkg/shell"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func load(t *testing.T, src string) (*menu.Menu, *menutree.Toolkit, *shell.Recorder) {
	t.Helper()
	tk := menutree.New()
	m, err := menu.NewApplicationMenu(tk, []byte(src))
	require.Nil(t, err)
	rec := &shell.Recorder{}
	m.Notifier = rec
	m.AppName = "Demo"
	_, err = m.Compile()
	require.Nil(t, err)
	return m, tk, rec
}

func titles(n *menutree.Node) []string {
	var out []string
	for _, c := range n.Items {
		if c.Kind == menutree.SeparatorNode {
			out = append(out, "---")
			continue
		}
		out = append(out, c.Title)
	}
	return out
}

func TestTextItemMessage(t *testing.T) {
	m, tk, rec := load(t, `{"Menu":{"Items":[{"Type":"Text","Label":"Open","ID":"open"}]},"RadioGroups":[]}`)

	_, err := tk.Click(m, "Open")
	require.Nil(t, err)
	assert.Equal(t, []string{"MCopen"}, rec.Messages())
}

func TestContextMenuMessage(t *testing.T) {
	tk := menutree.New()
	store := &shell.ContextStore{}
	m, err := menu.Load(tk, []byte(`{"Menu":{"Items":[{"Type":"Text","Label":"Delete","ID":"del"}]},"RadioGroups":[]}`),
		menu.ContextMenu, store)
	require.Nil(t, err)
	rec := &shell.Recorder{}
	m.Notifier = rec

	store.Set("42")
	_, err = tk.Click(m, "Delete")
	require.Nil(t, err)
	assert.Equal(t, []string{`XC{"menuItemID":"del","data":"42"}`}, rec.Messages())

	t.Run("reads data at click time", func(t *testing.T) {
		rec.Reset()
		store.Set("43")
		_, err = tk.Click(m, "Delete")
		require.Nil(t, err)
		assert.Equal(t, []string{`XC{"menuItemID":"del","data":"43"}`}, rec.Messages())
	})
}

func TestRadioGroup(t *testing.T) {
	m, tk, rec := load(t, `{
		"Menu": {"Items": [
			{"Type":"Radio","Label":"Small","ID":"a","Checked":true},
			{"Type":"Radio","Label":"Medium","ID":"b"},
			{"Type":"Radio","Label":"Large","ID":"c"}
		]},
		"RadioGroups": [{"Length":3,"Members":["a","b","c"]}]
	}`)

	ids := []string{"a", "b", "c"}
	labels := map[string]string{"a": "Small", "b": "Medium", "c": "Large"}
	checked := func() map[string]bool {
		out := map[string]bool{}
		for _, id := range ids {
			h, ok := m.Item(id)
			require.True(t, ok)
			out[id] = tk.State(h)
		}
		return out
	}

	t.Run("initial state", func(t *testing.T) {
		assert.Equal(t, map[string]bool{"a": true, "b": false, "c": false}, checked())
		siblings, ok := m.RadioSiblings("b")
		require.True(t, ok)
		assert.Len(t, siblings, 3)
	})

	t.Run("clicking checked member is a no-op", func(t *testing.T) {
		rec.Reset()
		_, err := tk.Click(m, "Small")
		require.Nil(t, err)
		assert.Empty(t, rec.Messages())
		assert.Equal(t, map[string]bool{"a": true, "b": false, "c": false}, checked())
	})

	for _, id := range []string{"b", "c", "a"} {
		t.Run("select "+id, func(t *testing.T) {
			rec.Reset()
			_, err := tk.Click(m, labels[id])
			require.Nil(t, err)
			assert.Equal(t, []string{"MC" + id}, rec.Messages())
			for _, other := range ids {
				assert.Equal(t, other == id, checked()[other], other)
			}

			rec.Reset()
			_, err = tk.Click(m, labels[id])
			require.Nil(t, err)
			assert.Empty(t, rec.Messages())
		})
	}
}

func TestCheckbox(t *testing.T) {
	m, tk, rec := load(t, `{"Menu":{"Items":[
		{"Type":"Checkbox","Label":"Wrap","ID":"wrap","Checked":true}
	]},"RadioGroups":[]}`)

	h, ok := m.Item("wrap")
	require.True(t, ok)
	assert.True(t, tk.State(h))

	require.Nil(t, m.Dispatch(h))
	assert.False(t, tk.State(h))
	require.Nil(t, m.Dispatch(h))
	assert.True(t, tk.State(h))
	assert.Equal(t, []string{"MCwrap", "MCwrap"}, rec.Messages())
}

func TestHiddenItems(t *testing.T) {
	m, tk, _ := load(t, `{"Menu":{"Items":[
		{"Type":"Text","Label":"Visible","ID":"v"},
		{"Type":"Text","Label":"Ghost","ID":"ghost","Hidden":true},
		{"Label":"Secret","Hidden":true,"SubMenu":[{"Type":"Text","Label":"Inner","ID":"inner"}]},
		{"Role":"copy","Hidden":true}
	]},"RadioGroups":[]}`)

	root := tk.Node(m.Root())
	assert.Equal(t, []string{"Visible"}, titles(root))
	_, ok := m.Item("ghost")
	assert.False(t, ok)
	_, ok = m.Item("inner")
	assert.False(t, ok)
	assert.Nil(t, tk.Find(m.Root(), "Ghost"))
}

func TestSubmenu(t *testing.T) {
	m, tk, rec := load(t, `{"Menu":{"Items":[
		{"SubMenu":[{"Type":"Text","Label":"Deep","ID":"deep"}]},
		{"Label":"File","SubMenu":[
			{"Type":"Text","Label":"New","ID":"new","Accelerator":{"Key":"n","Modifiers":["CmdOrCtrl"]}},
			{"Type":"Separator"},
			{"Label":"Recent","SubMenu":[]}
		]}
	]},"RadioGroups":[]}`)

	root := tk.Node(m.Root())
	require.Len(t, root.Items, 2)

	t.Run("empty label", func(t *testing.T) {
		holder := root.Items[0]
		assert.Equal(t, "", holder.Title)
		require.NotNil(t, holder.Submenu)
		assert.Equal(t, menutree.MenuNode, holder.Submenu.Kind)
		assert.Equal(t, []string{"Deep"}, titles(holder.Submenu))
	})

	t.Run("nested", func(t *testing.T) {
		file := root.Items[1]
		assert.Equal(t, "File", file.Title)
		require.NotNil(t, file.Submenu)
		assert.Equal(t, []string{"New", "---", "Recent"}, titles(file.Submenu))
		recent := file.Submenu.Items[2]
		require.NotNil(t, recent.Submenu)
		assert.Empty(t, recent.Submenu.Items)

		item := file.Submenu.Items[0]
		assert.Equal(t, "n", item.Key)
		assert.Equal(t, menu.ModifierCommand, item.Mask)
		assert.Equal(t, menu.CallbackAction, item.Action)
	})

	t.Run("clicks inside submenus dispatch", func(t *testing.T) {
		_, err := tk.Click(m, "New")
		require.Nil(t, err)
		assert.Equal(t, []string{"MCnew"}, rec.Messages())
	})
}

func TestLeafDefaults(t *testing.T) {
	m, tk, rec := load(t, `{"Menu":{"Items":[
		{"Type":"Text"},
		{"Type":"Text","Label":"Off","ID":"off","Disabled":true},
		{"Type":"Checkbox","Label":"Keyed","ID":"keyed","Accelerator":{"Key":"F5","Modifiers":["Shift"]}},
		{"Type":"Bogus","Label":"Nope","ID":"nope"},
		{"Label":"Untyped","ID":"untyped"}
	]},"RadioGroups":[]}`)

	root := tk.Node(m.Root())
	assert.Equal(t, []string{"(empty)", "Off", "Keyed"}, titles(root))

	h, ok := m.Item("off")
	require.True(t, ok)
	assert.False(t, tk.Node(h).Enabled)

	keyed := root.Items[2]
	assert.Equal(t, string(rune(0xf708)), keyed.Key)
	assert.Equal(t, menu.ModifierFlags(0), keyed.Mask, "only text items carry modifiers")

	_, ok = m.Item("nope")
	assert.False(t, ok)
	_, ok = m.Item("")
	assert.False(t, ok)

	t.Run("item with empty id still dispatches", func(t *testing.T) {
		_, err := tk.Click(m, "(empty)")
		require.Nil(t, err)
		assert.Equal(t, []string{"MC"}, rec.Messages())
	})
}

func TestDuplicateIDsOverwrite(t *testing.T) {
	m, tk, _ := load(t, `{"Menu":{"Items":[
		{"Type":"Text","Label":"First","ID":"dup"},
		{"Type":"Text","Label":"Second","ID":"dup"}
	]},"RadioGroups":[]}`)

	h, ok := m.Item("dup")
	require.True(t, ok)
	assert.Equal(t, "Second", tk.Node(h).Title)
}

func TestRoles(t *testing.T) {
	m, tk, rec := load(t, `{"Menu":{"Items":[
		{"Role":"appMenu"},
		{"Role":"editMenu"},
		{"Role":"hideothers"},
		{"Role":"pasteandmatchstyle"},
		{"Role":"togglefullscreen"},
		{"Role":"nosuchrole"}
	]},"RadioGroups":[]}`)

	root := tk.Node(m.Root())
	assert.Equal(t, []string{"Demo", "Edit", "Hide Others", "Paste and Match Style", "Toggle Full Screen"}, titles(root))

	t.Run("app menu", func(t *testing.T) {
		app := root.Items[0].Submenu
		require.NotNil(t, app)
		assert.Equal(t, []string{"Hide Demo", "Hide Others", "Show All", "---", "Quit Demo"}, titles(app))
		assert.Equal(t, "terminate:", app.Items[4].Action)
		assert.Equal(t, "q", app.Items[4].Key)
	})

	t.Run("edit menu", func(t *testing.T) {
		edit := root.Items[1].Submenu
		require.NotNil(t, edit)
		assert.Equal(t, []string{"Undo", "Redo", "---", "Cut", "Copy", "Paste", "Select All"}, titles(edit))
	})

	t.Run("pasteandmatchstyle inserts a single item", func(t *testing.T) {
		item := root.Items[3]
		assert.Equal(t, "pasteandmatchstyle:", item.Action)
		assert.Equal(t, menu.ModifierOption|menu.ModifierShift|menu.ModifierCommand, item.Mask)
		require.Len(t, root.Items, 5)
		assert.Equal(t, "toggleFullScreen:", root.Items[4].Action)
	})

	t.Run("role items bypass the dispatcher", func(t *testing.T) {
		action, err := tk.Click(m, "Toggle Full Screen")
		require.Nil(t, err)
		assert.Equal(t, "toggleFullScreen:", action)
		assert.Empty(t, rec.Messages())
	})

	assert.True(t, menu.IsRole("copy"))
	assert.True(t, menu.IsRole("appMenu"))
	assert.False(t, menu.IsRole("nosuchrole"))
}

func TestLoadErrors(t *testing.T) {
	cases := map[string]string{
		"missing radio groups": `{"Menu":{"Items":[{"Type":"Text","Label":"Open","ID":"open"}]}}`,
		"missing items":        `{"Menu":{},"RadioGroups":[]}`,
		"missing menu":         `{"RadioGroups":[]}`,
		"malformed json":       `{"Menu":`,
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			tk := menutree.New()
			m, err := menu.Load(tk, []byte(src), menu.ApplicationMenu, nil)
			require.NotNil(t, err)
			assert.Nil(t, m)

			var le *menu.LoadError
			assert.True(t, errors.As(err, &le))
			assert.Equal(t, 0, tk.Live(), "no menu may remain visible")
		})
	}

	t.Run("missing key is reported", func(t *testing.T) {
		_, err := menu.NewApplicationMenu(menutree.New(), []byte(cases["missing radio groups"]))
		assert.True(t, errors.Is(err, menuspec.ErrMissingKey))
	})
}

func TestUnknownRadioMember(t *testing.T) {
	tk := menutree.New()
	m, err := menu.NewApplicationMenu(tk, []byte(`{"Menu":{"Items":[
		{"Type":"Radio","Label":"A","ID":"a"}
	]},"RadioGroups":[{"Length":2,"Members":["a","missing"]}]}`))
	require.Nil(t, err)

	root, err := m.Compile()
	assert.Equal(t, menu.Handle(0), root)
	assert.True(t, errors.Is(err, menu.ErrUnknownRadioMember))
	var le *menu.LoadError
	assert.True(t, errors.As(err, &le))
	assert.Equal(t, 0, tk.Live())
	assert.Equal(t, menu.Handle(0), m.Root())
}

func TestDispatchErrors(t *testing.T) {
	m, tk, rec := load(t, `{"Menu":{"Items":[{"Type":"Text","Label":"Open","ID":"open"}]},"RadioGroups":[]}`)

	assert.True(t, errors.Is(m.Dispatch(menu.Handle(9999)), menu.ErrUnknownItem))

	h, ok := m.Item("open")
	require.True(t, ok)
	m.Delete()
	assert.Equal(t, 0, tk.Live())
	assert.True(t, errors.Is(m.Dispatch(h), menu.ErrMenuDeleted))
	assert.Empty(t, rec.Messages())

	_, err := m.Compile()
	assert.True(t, errors.Is(err, menu.ErrMenuDeleted))
}

func TestCompileTwiceReturnsSameRoot(t *testing.T) {
	m, tk, _ := load(t, `{"Menu":{"Items":[{"Type":"Text","Label":"Open","ID":"open"}]},"RadioGroups":[]}`)
	live := tk.Live()

	root, err := m.Compile()
	require.Nil(t, err)
	assert.Equal(t, m.Root(), root)
	assert.Equal(t, live, tk.Live())
}
