package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jeluard/cardano-zkvms/artifact"
	"github.com/jeluard/cardano-zkvms/harness"
	"github.com/jeluard/cardano-zkvms/logger"
)

var (
	verifyCmdProof      string
	verifyCmdCommits    string
	verifyCmdVK         string
	verifyCmdWasm       string
	verifyCmdNativeBin  string
	verifyCmdNativeArgs string
	verifyCmdTimeout    time.Duration
	verifyCmdStrict     bool
)

func init() {
	verifyCmd.Flags().StringVar(&verifyCmdProof, "proof", "", "proof JSON file")
	verifyCmd.Flags().StringVar(&verifyCmdCommits, "commits", "", "commitment JSON file")
	verifyCmd.Flags().StringVar(&verifyCmdVK, "vk", "", "base verifying key file")
	verifyCmd.Flags().StringVar(&verifyCmdWasm, "wasm", "", "portable verifier wasm module")
	verifyCmd.Flags().StringVar(&verifyCmdNativeBin, "native-bin", "cargo", "reference verifier binary")
	verifyCmd.Flags().StringVar(&verifyCmdNativeArgs, "native-args", "openvm verify stark", "reference verifier leading arguments")
	verifyCmd.Flags().DurationVar(&verifyCmdTimeout, "timeout", harness.DefaultTimeout, "reference verifier timeout")
	verifyCmd.Flags().BoolVar(&verifyCmdStrict, "strict", false, "exit non-zero when a path fails")
}

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Run a proof through both verification paths and report each outcome",
	Run: func(cmd *cobra.Command, args []string) {
		// Sanity check the required arguments have been provided.
		if verifyCmdProof == "" {
			panic("--proof is required")
		}
		if verifyCmdCommits == "" {
			panic("--commits is required")
		}
		if verifyCmdVK == "" {
			panic("--vk is required")
		}
		if verifyCmdWasm == "" {
			panic("--wasm is required")
		}

		log := logger.Logger()
		comp, err := artifact.NewCompressor()
		if err != nil {
			panic(err)
		}
		defer comp.Close()

		native := &harness.ReferenceCLI{
			Bin:     verifyCmdNativeBin,
			Args:    strings.Fields(verifyCmdNativeArgs),
			Timeout: verifyCmdTimeout,
			Log:     log,
		}
		h := harness.New(native, harness.LoadWasmVerifier(verifyCmdWasm), comp, log)
		report, err := h.Run(cmd.Context(), harness.Inputs{
			ProofPath:   verifyCmdProof,
			CommitsPath: verifyCmdCommits,
			VKPath:      verifyCmdVK,
		})
		if err != nil {
			log.Error().Err(err).Msg("verification run aborted")
			os.Exit(1)
		}

		fmt.Printf("NativeVerify:   %s\n", report.Native)
		fmt.Printf("PortableVerify: %s\n", report.Portable)
		if report.Diverged() {
			fmt.Println("WARNING: verification paths disagree on identical inputs")
		}
		if verifyCmdStrict && (report.Native == harness.OutcomeFail || report.Portable == harness.OutcomeFail) {
			os.Exit(1)
		}
	},
}
