package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "keyforge",
	Short: "Keyforge - generate passwords and passphrases, check strength and breach exposure.",
	Long: `Keyforge is a command-line companion to the keyforge API for working with
secrets offline.

Features:
  - Generate random passwords from configurable character pools
  - Generate wordlist passphrases
  - Score password strength and check breach exposure via k-anonymity`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
