package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Crush251/touchplay/web"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "启动Web服务",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		defer log.Sync()

		ctx, stop := signalContext()
		defer stop()
		return web.New(cfg, log).Run(ctx)
	},
}
