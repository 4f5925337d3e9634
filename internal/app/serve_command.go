package app

import (
	"strings"

	"github.com/spf13/cobra"

	clierr "github.com/swapsage/swapsage-cli/internal/errors"
	"github.com/swapsage/swapsage-cli/internal/server"
)

func (s *runtimeState) newServeCommand() *cobra.Command {
	var listenArg string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP quote/explain facade",
		RunE: func(cmd *cobra.Command, args []string) error {
			addr := strings.TrimSpace(listenArg)
			if addr == "" {
				addr = s.settings.ListenAddr
			}
			if addr == "" {
				return clierr.New(clierr.CodeUsage, "listen address is required (--listen or config)")
			}
			srv := server.New(s.aggregator, s.logger)
			if err := srv.ListenAndServe(addr); err != nil {
				return clierr.Wrap(clierr.CodeInternal, "http facade", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&listenArg, "listen", "", "Listen address, e.g. :8080")
	return cmd
}
