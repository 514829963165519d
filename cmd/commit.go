package cmd

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeluard/cardano-zkvms/encoding"
)

var commitCmd = &cobra.Command{
	Use:   "commit <program_hex> <expected_result> <commitment_hex>",
	Short: "Check the commitment a guest run reveals against a program and its result",
	Long: `Recomputes SHA256(program_bytes || result_string) and compares it against
the commitment revealed by the zkVM guest. Exits 0 on a match, 1 on a
mismatch and 2 on unusable input.`,
	Args: cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		program, err := encoding.DecodeHex(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid program hex: %v\n", err)
			os.Exit(2)
		}
		expectedResult := args[1]
		commitment := strings.TrimPrefix(strings.ToLower(args[2]), "0x")

		h := sha256.New()
		h.Write(program)
		h.Write([]byte(expectedResult))
		recomputed := hex.EncodeToString(h.Sum(nil))

		fmt.Printf("Program:          %s\n", args[0])
		fmt.Printf("Expected result:  %s\n", expectedResult)
		fmt.Printf("Verifier hash:    %s\n", recomputed)
		fmt.Printf("Proof commitment: %s\n", commitment)
		if recomputed != commitment {
			fmt.Println("MISMATCH - proof rejected")
			os.Exit(1)
		}
		fmt.Println("MATCH - proof is valid")
	},
}
