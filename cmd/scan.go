package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tracklab/hdfsum/internal/utils"
)

var scanCmd = &cobra.Command{
	Use:   "scan <input_folder>",
	Short: "List the data files a process run would pick up",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		names, _, err := utils.ListDataFiles(args[0], cfg.InputExtensions)
		if err != nil {
			return err
		}
		if len(names) == 0 {
			fmt.Println("(no data files)")
			return nil
		}
		for _, n := range names {
			fmt.Println(n)
		}
		fmt.Printf("%d file(s)\n", len(names))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
}
