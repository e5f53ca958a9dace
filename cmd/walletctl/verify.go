package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"keyguardian/wallet/pkg/config"
	"keyguardian/wallet/pkg/telemetry/logging"
	"keyguardian/wallet/pkg/wallet/cipherbox"
	"keyguardian/wallet/pkg/wallet/guard"
	"keyguardian/wallet/pkg/wallet/keysource"
	"keyguardian/wallet/pkg/wallet/maintenance"
	"keyguardian/wallet/pkg/wallet/store"
)

var verifyFlags struct {
	batchSize int
}

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify ciphertext integrity",
	Long: `Run a one-shot integrity sweep over the configured store.

Every stored ciphertext is opened with the active encryption key. Rows
that fail to decrypt are reported but never modified: a sweep full of
failures usually means the wrong key is loaded, not that the data is
lost.

The command exits non-zero if any secret fails to decrypt, so it can
gate key rotations in automation.

Examples:
  # Sweep the store from the default config
  walletctl verify

  # Sweep with an explicit config and smaller batches
  walletctl verify --config /etc/keyguardian/wallet.yaml --batch-size 100`,
	RunE: verifyStore,
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().IntVar(&verifyFlags.batchSize, "batch-size", 0, "secrets per scan batch (uses config if not specified)")
}

func verifyStore(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logLevel := cfg.Telemetry.Logging.Level
	if verbose {
		logLevel = "debug"
	}
	if _, err := logging.Setup(logging.Config{
		Level:     logLevel,
		Format:    cfg.Telemetry.Logging.Format,
		AddSource: cfg.Telemetry.Logging.AddSource,
	}); err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}

	ctx := context.Background()

	box, closeProviders, err := openCipherBox(ctx, &cfg.Vault)
	if err != nil {
		return err
	}
	defer closeProviders()

	st, err := store.New(&store.Config{
		Driver:       cfg.Storage.Driver,
		Path:         cfg.Storage.Path,
		MaxOpenConns: cfg.Storage.MaxOpenConns,
		MaxIdleConns: cfg.Storage.MaxIdleConns,
		WALMode:      cfg.Storage.WALMode,
		BusyTimeout:  cfg.Storage.BusyTimeout,
	}, guard.New(), box)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer st.Close()

	batchSize := verifyFlags.batchSize
	if batchSize <= 0 {
		batchSize = cfg.Maintenance.SweepBatchSize
	}

	sweeper := maintenance.NewSweeper(st, box, &maintenance.Config{
		BatchSize: batchSize,
	}, nil)

	fmt.Println("Verifying stored ciphertexts...")
	fmt.Println()

	report, err := sweeper.Sweep(ctx)
	if err != nil {
		return fmt.Errorf("sweep failed: %w", err)
	}

	fmt.Printf("Secrets scanned: %d\n", report.Scanned)
	fmt.Printf("Duration: %s\n", report.Duration.Round(time.Millisecond))

	if len(report.Corrupt) > 0 {
		fmt.Println()
		fmt.Printf("✗ %d secret(s) failed to decrypt:\n", len(report.Corrupt))
		for _, id := range report.Corrupt {
			fmt.Printf("  - %s\n", id)
		}
		return fmt.Errorf("%d of %d secrets failed integrity verification", len(report.Corrupt), report.Scanned)
	}

	fmt.Println()
	fmt.Println("✓ All secrets decrypt under the active key")
	return nil
}

// openCipherBox resolves the encryption key through the configured
// providers and returns a ready cipher box plus a provider cleanup func.
func openCipherBox(ctx context.Context, vault *config.VaultConfig) (*cipherbox.Box, func(), error) {
	var providers []keysource.Provider
	var fileProvider *keysource.FileProvider

	if vault.SecretsPath != "" {
		fp, err := keysource.NewFileProvider(vault.SecretsPath, vault.WatchSecrets)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open secrets directory: %w", err)
		}
		fileProvider = fp
		providers = append(providers, fp)
	}
	providers = append(providers, keysource.NewEnvProvider(vault.EnvPrefix))

	cleanup := func() {
		if fileProvider != nil {
			fileProvider.Close()
		}
	}

	manager := keysource.NewManager(providers...)
	keyMaterial, err := manager.ResolveEncryptionKey(ctx, vault.KeyName)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	box, err := cipherbox.New(keyMaterial)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to initialize cipher: %w", err)
	}

	return box, cleanup, nil
}
