package maintenance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"keyguardian/wallet/pkg/wallet/cipherbox"
	"keyguardian/wallet/pkg/wallet/store"
)

// Config contains configuration for the integrity sweeper.
type Config struct {
	// Schedule is a cron expression for scheduled sweeps.
	// Example: "0 3 * * *" (daily at 3 AM). Empty disables scheduling.
	Schedule string

	// BatchSize is the number of ciphertexts scanned per query.
	// Default: 100
	BatchSize int
}

// DefaultConfig returns the default sweeper configuration.
func DefaultConfig() *Config {
	return &Config{
		Schedule:  "0 3 * * *",
		BatchSize: 100,
	}
}

// Scanner is the store surface the sweeper needs.
type Scanner interface {
	ScanCiphertexts(ctx context.Context, afterID string, limit int) ([]store.CipherRow, error)
	Checkpoint(ctx context.Context) error
}

// SweepRecorder receives the outcome of each sweep run, typically for
// metrics.
type SweepRecorder interface {
	RecordSweep(status string, scanned, corrupt int, duration time.Duration)
}

// Report summarizes one sweep run.
type Report struct {
	// Scanned is the number of ciphertexts checked.
	Scanned int

	// Corrupt lists the ids of secrets the active key could not open.
	Corrupt []string

	// Duration is the sweep wall-clock time.
	Duration time.Duration
}

// Sweeper verifies that every stored ciphertext still opens under the
// active encryption key.
type Sweeper struct {
	scanner   Scanner
	box       *cipherbox.Box
	config    *Config
	recorder  SweepRecorder
	logger    *slog.Logger
	scheduler *Scheduler
}

// NewSweeper creates an integrity sweeper over the given store scanner
// and cipher box. The recorder may be nil.
func NewSweeper(scanner Scanner, box *cipherbox.Box, config *Config, recorder SweepRecorder) *Sweeper {
	if config == nil {
		config = DefaultConfig()
	}
	if config.BatchSize <= 0 {
		config.BatchSize = 100
	}

	sweeper := &Sweeper{
		scanner:  scanner,
		box:      box,
		config:   config,
		recorder: recorder,
		logger:   slog.Default().With("component", "wallet.maintenance"),
	}
	sweeper.scheduler = NewScheduler(sweeper)

	return sweeper
}

// Scheduler returns the cron scheduler bound to this sweeper.
func (sw *Sweeper) Scheduler() *Scheduler {
	return sw.scheduler
}

// Sweep walks all stored ciphertexts in batches and attempts to open each
// one. Corrupt rows are reported, never modified: a failed decryption may
// mean the wrong key is loaded, and deleting rows on that signal would turn
// a configuration mistake into data loss.
func (sw *Sweeper) Sweep(ctx context.Context) (*Report, error) {
	start := time.Now()
	report := &Report{}

	afterID := ""
	for {
		if err := ctx.Err(); err != nil {
			sw.recordOutcome("canceled", report, start)
			return report, err
		}

		batch, err := sw.scanner.ScanCiphertexts(ctx, afterID, sw.config.BatchSize)
		if err != nil {
			sw.recordOutcome("error", report, start)
			return report, fmt.Errorf("scan ciphertexts: %w", err)
		}
		if len(batch) == 0 {
			break
		}

		for _, row := range batch {
			report.Scanned++
			if _, err := sw.box.Open([]byte(row.Ciphertext)); err != nil {
				report.Corrupt = append(report.Corrupt, row.ID)
				sw.logger.Error("secret failed integrity check",
					"secret_id", row.ID,
					"owner_id", row.Owner,
					"error", err,
				)
			}
		}

		afterID = batch[len(batch)-1].ID
		if len(batch) < sw.config.BatchSize {
			break
		}
	}

	if err := sw.scanner.Checkpoint(ctx); err != nil {
		sw.logger.Warn("post-sweep checkpoint failed", "error", err)
	}

	report.Duration = time.Since(start)
	sw.recordOutcome("ok", report, start)

	if len(report.Corrupt) > 0 {
		sw.logger.Warn("integrity sweep found undecryptable secrets",
			"scanned", report.Scanned,
			"corrupt", len(report.Corrupt),
			"duration", report.Duration,
		)
	} else {
		sw.logger.Info("integrity sweep completed",
			"scanned", report.Scanned,
			"duration", report.Duration,
		)
	}

	return report, nil
}

func (sw *Sweeper) recordOutcome(status string, report *Report, start time.Time) {
	if sw.recorder == nil {
		return
	}
	sw.recorder.RecordSweep(status, report.Scanned, len(report.Corrupt), time.Since(start))
}
