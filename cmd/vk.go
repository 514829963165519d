package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jeluard/cardano-zkvms/artifact"
	"github.com/jeluard/cardano-zkvms/logger"
)

var (
	vkCmdBase    string
	vkCmdCommits string
	vkCmdOut     string
)

func init() {
	vkCmd.Flags().StringVar(&vkCmdBase, "base", "", "base verifying key file")
	vkCmd.Flags().StringVar(&vkCmdCommits, "commits", "", "commitment JSON file")
	vkCmd.Flags().StringVar(&vkCmdOut, "out", "", "output file")
}

var vkCmd = &cobra.Command{
	Use:   "vk",
	Short: "Assemble the portable verifying key from a base key and commitments",
	Run: func(cmd *cobra.Command, args []string) {
		// Sanity check the required arguments have been provided.
		if vkCmdBase == "" {
			panic("--base is required")
		}
		if vkCmdCommits == "" {
			panic("--commits is required")
		}
		if vkCmdOut == "" {
			panic("--out is required")
		}

		baseVK, err := artifact.LoadBaseVK(vkCmdBase)
		if err != nil {
			panic(err)
		}
		commits, err := artifact.LoadCommits(vkCmdCommits)
		if err != nil {
			panic(err)
		}
		vkBytes, err := artifact.BuildVerifyingKey(baseVK, commits.AppExeCommit, commits.AppVMCommit)
		if err != nil {
			panic(err)
		}
		if err := os.WriteFile(vkCmdOut, vkBytes, 0644); err != nil {
			panic(err)
		}
		log := logger.Logger()
		log.Info().Int("bytes", len(vkBytes)).Str("path", vkCmdOut).Msg("verifying key written")
	},
}
