package main

import (
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/manifold/nativemenu/pkg/console"
	"github.com/manifold/nativemenu/pkg/logging/zap"
	"github.com/manifold/nativemenu/pkg/menu"
	"github.com/manifold/nativemenu/pkg/menuspec"
	"github.com/manifold/nativemenu/pkg/menutree"
	"github.com/spf13/cobra"
)

var dumpDocument bool

// `menuc compile` command
func compileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile FILE",
		Short: "Compiles a menu and prints the native tree",
		Long:  "Compiles a menu and prints the native tree. A broken menu exits non-zero.",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			m, tk, err := compileFile(args[0])
			fatal(err)
			defer m.Delete()

			if dumpDocument {
				spew.Fdump(os.Stdout, m.Document())
			}
			c := &console.Console{Output: os.Stdout, Padding: 9, Color: devMode}
			c.PrintTree(tk.Node(m.Root()))
		},
	}
	cmd.Flags().BoolVar(&dumpDocument, "dump", false, "dump the parsed document before the tree")
	return cmd
}

func compileFile(path string) (*menu.Menu, *menutree.Toolkit, error) {
	kind, err := menuKind()
	if err != nil {
		return nil, nil, err
	}
	doc, err := menuspec.NewLoader().Load(path)
	if err != nil {
		return nil, nil, &menu.LoadError{Op: "parse", Err: err}
	}
	tk := menutree.New()
	m := menu.New(tk, doc, kind)
	if appName != "" {
		m.AppName = appName
	}
	if devMode {
		m.Logger = zap.NewLogger()
	}
	if _, err := m.Compile(); err != nil {
		return nil, nil, err
	}
	return m, tk, nil
}
