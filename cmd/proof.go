package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jeluard/cardano-zkvms/artifact"
	"github.com/jeluard/cardano-zkvms/logger"
)

var (
	proofCmdIn  string
	proofCmdOut string
	proofCmdRaw bool
)

func init() {
	proofCmd.Flags().StringVar(&proofCmdIn, "proof", "", "proof JSON file")
	proofCmd.Flags().StringVar(&proofCmdOut, "out", "", "output file")
	proofCmd.Flags().BoolVar(&proofCmdRaw, "raw", false, "skip compression")
}

var proofCmd = &cobra.Command{
	Use:   "proof",
	Short: "Assemble and compress the proof bytes the portable verifier consumes",
	Run: func(cmd *cobra.Command, args []string) {
		// Sanity check the required arguments have been provided.
		if proofCmdIn == "" {
			panic("--proof is required")
		}
		if proofCmdOut == "" {
			panic("--out is required")
		}

		p, err := artifact.LoadProof(proofCmdIn)
		if err != nil {
			panic(err)
		}
		data, err := artifact.AssembleProof(p.Proof, p.UserPublicValues)
		if err != nil {
			panic(err)
		}
		if !proofCmdRaw {
			comp, err := artifact.NewCompressor()
			if err != nil {
				panic(err)
			}
			defer comp.Close()
			data = comp.Compress(data)
		}
		if err := os.WriteFile(proofCmdOut, data, 0644); err != nil {
			panic(err)
		}
		log := logger.Logger()
		log.Info().Int("bytes", len(data)).Str("path", proofCmdOut).Msg("proof bytes written")
	},
}
