// Package timeouts centralizes the context deadlines handlers put on store
// calls. Each tier names a class of work; handlers pick a tier instead of
// inventing ad-hoc durations, so retuning one value adjusts every route that
// does that kind of work.
//
// Tier guidance:
//   - Ping: connectivity probes from the health endpoint
//   - Short: single-record lookups (a user by id, an event by id)
//   - Medium: list queries and ordinary writes
//   - Long: multi-collection work such as initiating a payout
//   - Batch: startup work (index builds, validators, catalog seeding)
package timeouts

import (
	"context"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Defaults applied until ConfigureFromEnv overrides them.
const (
	DefaultPing   = 2 * time.Second
	DefaultShort  = 5 * time.Second
	DefaultMedium = 10 * time.Second
	DefaultLong   = 30 * time.Second
	DefaultBatch  = 60 * time.Second
)

type tierSet struct {
	ping   time.Duration
	short  time.Duration
	medium time.Duration
	long   time.Duration
	batch  time.Duration
}

func defaults() tierSet {
	return tierSet{
		ping:   DefaultPing,
		short:  DefaultShort,
		medium: DefaultMedium,
		long:   DefaultLong,
		batch:  DefaultBatch,
	}
}

var (
	mu    sync.RWMutex
	tiers = defaults()
)

// Ping is the deadline for health-check connectivity probes.
func Ping() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return tiers.ping
}

// Short is the deadline for single-record reads.
func Short() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return tiers.short
}

// Medium is the deadline for list queries and ordinary writes.
func Medium() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return tiers.medium
}

// Long is the deadline for work spanning several collections. Initiating a
// payout reads the destination account, the order history, and prior payouts
// before it writes anything.
func Long() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return tiers.long
}

// Batch is the deadline for startup schema work: index builds, collection
// validators, seeding the app catalog.
func Batch() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return tiers.batch
}

// ConfigureFromEnv overrides tiers from TIMEOUT_PING, TIMEOUT_SHORT,
// TIMEOUT_MEDIUM, TIMEOUT_LONG, and TIMEOUT_BATCH. Values use Go duration
// syntax ("500ms", "2s", "1m"); an unset or malformed value keeps the
// current tier. Returns how many tiers were overridden.
func ConfigureFromEnv() int {
	mu.Lock()
	defer mu.Unlock()
	n := 0
	for _, t := range []struct {
		key string
		dst *time.Duration
	}{
		{"TIMEOUT_PING", &tiers.ping},
		{"TIMEOUT_SHORT", &tiers.short},
		{"TIMEOUT_MEDIUM", &tiers.medium},
		{"TIMEOUT_LONG", &tiers.long},
		{"TIMEOUT_BATCH", &tiers.batch},
	} {
		v := os.Getenv(t.key)
		if v == "" {
			continue
		}
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			*t.dst = d
			n++
		}
	}
	return n
}

// Reset restores the default tiers. Tests that override tiers call this in
// cleanup.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	tiers = defaults()
}

// WithTimeout wraps context.WithTimeout and, when the returned cancel finds
// the deadline was actually hit, logs a warning naming the operation. Used on
// heavyweight paths where a timeout is worth noticing.
func WithTimeout(parent context.Context, timeout time.Duration, log *zap.Logger, operation string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parent, timeout)
	return ctx, func() {
		if ctx.Err() == context.DeadlineExceeded && log != nil {
			log.Warn("operation timed out",
				zap.String("operation", operation),
				zap.Duration("timeout", timeout))
		}
		cancel()
	}
}
