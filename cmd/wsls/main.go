package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lexcodex/wsls/internal/wsls/runtime"
)

var (
	flagWorkspace   string
	flagLogPath     string
	flagMaxFileSize int64
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "wsls",
		Short: "Language server and tooling for whitespace programs",
	}
	root.PersistentFlags().StringVar(&flagWorkspace, "workspace", "", "Workspace root (defaults to the current directory)")
	root.PersistentFlags().StringVar(&flagLogPath, "log", "", "Tee log output into this file (stderr is always used)")
	root.PersistentFlags().Int64Var(&flagMaxFileSize, "max-file-size", 0, "Largest document the server will read, in bytes")

	root.AddCommand(newServeCmd(), newInspectCmd())
	return root
}

func buildRuntime() (*runtime.Runtime, error) {
	cfg := runtime.DefaultConfig()
	if flagWorkspace != "" {
		cfg.Workspace = flagWorkspace
		cfg.ConfigPath = ""
	}
	cfg.LogPath = flagLogPath
	cfg.MaxFileSize = flagMaxFileSize
	return runtime.New(cfg)
}
