package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"keyguardian/wallet/pkg/wallet/cipherbox"
	"keyguardian/wallet/pkg/wallet/keysource"
)

var keygenFlags struct {
	output string
}

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate a new encryption key",
	Long: `Generate a fresh 256-bit AES encryption key, base64 encoded.

By default the key is printed to stdout. With --output it is written to
a file with owner-only permissions (0600), suitable for mounting as a
secrets file.

Examples:
  # Print a key to stdout
  walletctl keygen

  # Write a key into a mounted secrets directory
  walletctl keygen --output /etc/keyguardian/secrets/encryption-key`,
	RunE: generateKey,
}

func init() {
	rootCmd.AddCommand(keygenCmd)

	keygenCmd.Flags().StringVarP(&keygenFlags.output, "output", "o", "", "write key to file instead of stdout")
}

func generateKey(cmd *cobra.Command, args []string) error {
	key, err := cipherbox.GenerateKey()
	if err != nil {
		return fmt.Errorf("failed to generate key: %w", err)
	}

	if keygenFlags.output == "" {
		fmt.Println(key)
		return nil
	}

	// #nosec G304 - user-specified output path is expected for a CLI tool.
	if err := os.WriteFile(keygenFlags.output, []byte(key+"\n"), 0600); err != nil {
		return fmt.Errorf("failed to write key file: %w", err)
	}

	fmt.Printf("Key written to %s\n", keygenFlags.output)
	fmt.Println()
	fmt.Println("Store the key securely and never commit it to version control.")
	fmt.Println("Configuration snippet:")
	fmt.Println("vault:")
	fmt.Printf("  key_name: %q\n", keysource.DefaultKeyName)
	fmt.Println("  secrets_path: <directory containing the key file>")

	return nil
}
