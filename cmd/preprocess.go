package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Crush251/touchplay/sequence"
)

var preprocessOut string

func init() {
	preprocessCmd.Flags().StringVarP(&preprocessOut, "out", "o", "", "输出文件，默认 <exec_dir>/<谱面名>.exec.json")
	rootCmd.AddCommand(preprocessCmd)
}

var preprocessCmd = &cobra.Command{
	Use:   "preprocess <chart>",
	Short: "生成预计算序列文件",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		defer log.Sync()

		out := preprocessOut
		if out == "" {
			out = sequence.ExecPath(cfg.ExecDir, args[0])
		}
		_, err = sequence.NewPreprocessor(log).Generate(args[0], out)
		return err
	},
}
