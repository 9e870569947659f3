package main

import (
	"fmt"
	"os"

	"github.com/manifold/nativemenu/pkg/shell"
	"github.com/spf13/cobra"
)

// `menuc click` command
func clickCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "click FILE ID...",
		Short: "Simulates clicks and prints the emitted messages",
		Long: "Compiles a menu and activates the items with the given ids in order, " +
			"printing one line per message sent to the shell.",
		Args: cobra.MinimumNArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			m, tk, err := compileFile(args[0])
			fatal(err)
			defer m.Delete()

			store := &shell.ContextStore{}
			store.Set(contextData)
			m.Owner = store
			m.Notifier = &shell.Writer{Output: os.Stdout}

			for _, id := range args[1:] {
				h, ok := m.Item(id)
				if !ok {
					fatal(fmt.Errorf("no item with id %q", id))
				}
				action, err := tk.Activate(m, h)
				fatal(err)
				if action == "" {
					fmt.Fprintf(os.Stderr, "menuc: %q is disabled\n", id)
				}
			}
		},
	}
}
