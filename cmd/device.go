package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Crush251/touchplay/dump"
	"github.com/Crush251/touchplay/transport"
)

var probePort string

func init() {
	probeCmd.Flags().StringVar(&probePort, "port", "", "串口名称，默认使用配置或自动查找")
	rootCmd.AddCommand(probeCmd, portsCmd)
}

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "在屏幕中央点一下，确认设备连通",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := setup()
		if err != nil {
			return err
		}
		name := probePort
		if name == "" {
			name = cfg.Transport.PortName
		}
		if name == "" {
			if name, err = transport.FindPort(); err != nil {
				return err
			}
		}

		con, err := dump.NewConsole(name, cfg.Transport.BaudRate)
		if err != nil {
			return err
		}
		defer con.Close()

		fmt.Printf("🔌 %s @ %d\n", name, cfg.Transport.BaudRate)
		for _, reply := range con.Center() {
			fmt.Printf("   ← %s\n", strings.TrimSpace(reply))
		}
		con.ReleaseAll()
		return nil
	},
}

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "列出串口",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ports, err := transport.ListPorts()
		if err != nil {
			return err
		}
		if len(ports) == 0 {
			fmt.Println("⚠️  没有找到串口")
			return nil
		}
		for _, p := range ports {
			fmt.Println(p)
		}
		return nil
	},
}
