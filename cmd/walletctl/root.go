package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "walletctl",
	Short: "KeyGuardian wallet - encrypted API key storage",
	Long: `Walletctl is the operations CLI for the KeyGuardian wallet, an
encrypted store for API keys and other small credentials.

Secrets are sealed with AES-256-GCM before they touch disk, owned by
exactly one identity, and grouped into per-user categories. Walletctl
handles the tasks that happen outside the application:
  - Generating encryption keys
  - Verifying ciphertext integrity against the active key`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
