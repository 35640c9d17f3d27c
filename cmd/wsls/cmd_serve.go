package main

import (
	"github.com/spf13/cobra"

	"github.com/lexcodex/wsls/server"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the language server over stdio",
		Long: `Serve speaks the Language Server Protocol over stdin and stdout using
Content-Length framed JSON-RPC. Logs go to stderr so they never collide
with protocol frames. The process exits 0 after a clean shutdown/exit
sequence from the client and non-zero otherwise.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := buildRuntime()
			if err != nil {
				return err
			}
			defer rt.Close()

			s := server.New(server.Options{MaxFileSize: rt.Config.MaxFileSize}, rt.Logger)
			return s.Run(cmd.Context(), server.Stdio())
		},
	}
}
