package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jeluard/cardano-zkvms/logger"
)

var rootCmdQuiet bool

var rootCmd = &cobra.Command{
	Use:   "zkvms-stark",
	Short: "Encode OpenVM STARK artifacts and cross-check both verification paths",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if rootCmdQuiet {
			logger.Disable()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&rootCmdQuiet, "quiet", "q", false, "disable logging")
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(vkCmd)
	rootCmd.AddCommand(proofCmd)
	rootCmd.AddCommand(commitCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
