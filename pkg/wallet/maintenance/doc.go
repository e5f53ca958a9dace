// Package maintenance runs background upkeep for the wallet store.
//
// The Sweeper walks every stored ciphertext in batches and attempts to
// decrypt each one, flagging rows the active key can no longer open --
// the earliest signal of a mis-rotated key or on-disk corruption. The
// Scheduler runs sweeps on a cron schedule.
package maintenance
