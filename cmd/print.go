package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Crush251/touchplay/chart"
	"github.com/Crush251/touchplay/sequence"
	"github.com/Crush251/touchplay/synth"
)

func init() {
	rootCmd.AddCommand(printCmd)
}

var printCmd = &cobra.Command{
	Use:   "print <chart>",
	Short: "合成触摸序列并逐行打印 \"<ms> <id> <x> <y> <action>\"",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := chart.Load(args[0])
		if err != nil {
			return err
		}
		events, err := synth.Synthesize(c)
		if err != nil {
			return err
		}
		return sequence.WriteText(cmd.OutOrStdout(), sequence.FromEvents(events))
	},
}
