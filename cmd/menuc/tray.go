package main

import (
	"context"
	"os"

	"github.com/manifold/nativemenu/pkg/daemon"
	"github.com/manifold/nativemenu/pkg/logging/zap"
	"github.com/manifold/nativemenu/pkg/menu"
	"github.com/manifold/nativemenu/pkg/menuspec"
	"github.com/manifold/nativemenu/pkg/reload"
	"github.com/manifold/nativemenu/pkg/shell"
	"github.com/manifold/nativemenu/pkg/tray"
	"github.com/manifold/nativemenu/pkg/tray/subprocess"
	"github.com/spf13/cobra"
)

var (
	watchFile bool
	logFile   string
)

// `menuc tray` command
func trayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tray FILE",
		Short: "Shows a menu in the system tray",
		Long: "Shows a menu in the system tray and writes one line per click to stdout. " +
			"With --watch the menu is recompiled whenever FILE changes.",
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			kind, err := menuKind()
			fatal(err)

			log := zap.NewLogger()
			loader := menuspec.NewLoader()
			store := &shell.ContextStore{}
			store.Set(contextData)

			var notifier menu.Notifier = &shell.Writer{Output: os.Stdout, Logger: log}
			if logFile != "" {
				f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
				fatal(err)
				defer f.Close()
				notifier = shell.Multi{notifier, &shell.Writer{Output: f, Logger: log}}
			}

			name := appName
			if name == "" {
				name = "menuc"
			}
			ts := &tray.Service{
				Path:     args[0],
				Kind:     kind,
				AppName:  name,
				Loader:   loader,
				Notifier: notifier,
				Owner:    store,
				Logger:   log,
			}
			components := []interface{}{ts}
			if watchFile {
				components = append(components, &reload.Service{
					Path:   args[0],
					Loader: loader,
					Target: ts,
					Logger: log,
				})
			}
			dm := daemon.New(components...)
			dm.Logger = log
			ts.Daemon = dm
			fatal(dm.Run(context.Background()))
		},
	}
	cmd.Flags().BoolVarP(&watchFile, "watch", "w", false, "recompile when the file changes")
	cmd.Flags().StringVar(&logFile, "log", "", "also append every message to this file")
	return cmd
}

// `menuc systray` command, started by `menuc tray`
func systrayCmd() *cobra.Command {
	return &cobra.Command{
		Use:    "systray",
		Short:  "Runs the tray subprocess",
		Hidden: true,
		Run: func(cmd *cobra.Command, args []string) {
			subprocess.Run()
		},
	}
}
