package timeouts

import (
	"context"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	Reset()

	tests := []struct {
		name string
		got  time.Duration
		want time.Duration
	}{
		{"ping", Ping(), DefaultPing},
		{"short", Short(), DefaultShort},
		{"medium", Medium(), DefaultMedium},
		{"long", Long(), DefaultLong},
		{"batch", Batch(), DefaultBatch},
	}
	for _, tc := range tests {
		if tc.got != tc.want {
			t.Errorf("%s tier = %v, want %v", tc.name, tc.got, tc.want)
		}
	}
}

func TestConfigureFromEnv(t *testing.T) {
	t.Cleanup(Reset)

	t.Setenv("TIMEOUT_SHORT", "250ms")
	t.Setenv("TIMEOUT_BATCH", "2m")

	if n := ConfigureFromEnv(); n != 2 {
		t.Errorf("ConfigureFromEnv() = %d, want 2", n)
	}
	if got := Short(); got != 250*time.Millisecond {
		t.Errorf("Short() = %v, want 250ms", got)
	}
	if got := Batch(); got != 2*time.Minute {
		t.Errorf("Batch() = %v, want 2m", got)
	}
	// Tiers without an override keep their values.
	if got := Medium(); got != DefaultMedium {
		t.Errorf("Medium() = %v, want untouched default %v", got, DefaultMedium)
	}
}

func TestConfigureFromEnv_IgnoresBadValues(t *testing.T) {
	t.Cleanup(Reset)

	t.Setenv("TIMEOUT_MEDIUM", "soon")
	t.Setenv("TIMEOUT_LONG", "-5s")
	t.Setenv("TIMEOUT_PING", "0s")

	if n := ConfigureFromEnv(); n != 0 {
		t.Errorf("ConfigureFromEnv() = %d, want 0 for malformed and non-positive values", n)
	}
	if got := Medium(); got != DefaultMedium {
		t.Errorf("Medium() = %v after malformed override, want %v", got, DefaultMedium)
	}
	if got := Long(); got != DefaultLong {
		t.Errorf("Long() = %v after negative override, want %v", got, DefaultLong)
	}
	if got := Ping(); got != DefaultPing {
		t.Errorf("Ping() = %v after zero override, want %v", got, DefaultPing)
	}
}

func TestReset(t *testing.T) {
	t.Setenv("TIMEOUT_SHORT", "1s")
	if ConfigureFromEnv() != 1 {
		t.Fatal("override did not apply")
	}

	Reset()

	if got := Short(); got != DefaultShort {
		t.Errorf("Short() = %v after Reset, want %v", got, DefaultShort)
	}
}

func TestWithTimeout_SetsDeadline(t *testing.T) {
	ctx, cancel := WithTimeout(context.Background(), time.Minute, nil, "lookup")
	defer cancel()

	deadline, ok := ctx.Deadline()
	if !ok {
		t.Fatal("returned context has no deadline")
	}
	if remaining := time.Until(deadline); remaining <= 0 || remaining > time.Minute {
		t.Errorf("deadline %v from now, want within (0, 1m]", remaining)
	}

	cancel()
	if ctx.Err() != context.Canceled {
		t.Errorf("ctx.Err() = %v after cancel, want Canceled", ctx.Err())
	}
}

func TestWithTimeout_DeadlineHit(t *testing.T) {
	ctx, cancel := WithTimeout(context.Background(), time.Millisecond, nil, "slow operation")

	<-ctx.Done()
	if ctx.Err() != context.DeadlineExceeded {
		t.Fatalf("ctx.Err() = %v, want DeadlineExceeded", ctx.Err())
	}

	// The wrapped cancel inspects the context and logs; it must tolerate a
	// nil logger.
	cancel()
}
