package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/manifold/nativemenu/pkg/menu"
	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:   "menuc",
		Short: "Compiles declarative menus",
		Long:  "Compiles JSON menu descriptions into native menus and reports item clicks.",
	}

	devMode     bool
	kindName    string
	contextData string
	appName     string
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&devMode, "dev", "d", false, "run in debug mode")
	rootCmd.PersistentFlags().StringVarP(&kindName, "kind", "k", "application", "menu kind: application or context")
	rootCmd.PersistentFlags().StringVar(&contextData, "context-data", "", "payload reported with context menu clicks")
	rootCmd.PersistentFlags().StringVar(&appName, "app-name", "", "application name used by the appMenu role")
	rootCmd.AddCommand(compileCmd(), clickCmd(), trayCmd(), systrayCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func menuKind() (menu.Kind, error) {
	switch strings.ToLower(kindName) {
	case "application", "app":
		return menu.ApplicationMenu, nil
	case "context":
		return menu.ContextMenu, nil
	default:
		return 0, fmt.Errorf("unknown menu kind %q", kindName)
	}
}

func fatal(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, "menuc:", err)
		os.Exit(1)
	}
}
