// Command tzig is a terminal multiplexing proxy: it sits between the user's
// terminal and a main shell, maintaining a parsed screen model and, on
// Ctrl+] (or the Kitty ESC[93;5u sequence), compositing a bordered floating
// shell window on top of a redraw of the main shell.
package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"tzig/internal/proxy"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "tzig: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "tzig",
		Short:   "Terminal multiplexing proxy with a toggleable floating shell",
		Long:    "tzig proxies a shell through a PTY, keeping a parsed screen model, and toggles an alternate-screen overlay with a floating shell window on Ctrl+] or the Kitty keyboard protocol's ESC[93;5u.",
		Version: buildVersion(),
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			shell := os.Getenv("SHELL")
			if shell == "" {
				shell = "/bin/sh"
			}
			return proxy.Run(shell)
		},
	}
	root.Flags().BoolP("version", "V", false, "print version and build info")
	return root
}

func buildVersion() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	v := info.Main.Version
	if v == "" {
		v = "(devel)"
	}
	return fmt.Sprintf("%s (%s)", v, info.GoVersion)
}
