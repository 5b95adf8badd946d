package skills

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRaceReturnsFirstWinnerAndCancelsTheOther(t *testing.T) {
	canceled := make(chan struct{}, 1)
	fast := func(ctx context.Context) error { return nil }
	slow := func(ctx context.Context) error {
		<-ctx.Done()
		canceled <- struct{}{}
		return ctx.Err()
	}

	if err := race(context.Background(), fast, slow); err != nil {
		t.Fatalf("race returned %v, want nil", err)
	}

	select {
	case <-canceled:
	case <-time.After(time.Second):
		t.Fatal("the losing fn was never canceled")
	}
}

func TestJoinWaitsForAllAndReturnsFirstError(t *testing.T) {
	errBoom := errors.New("boom")
	finished := make([]bool, 3)

	err := join(context.Background(),
		func(ctx context.Context) error { finished[0] = true; return nil },
		func(ctx context.Context) error { finished[1] = true; return errBoom },
		func(ctx context.Context) error { finished[2] = true; return nil },
	)

	if !errors.Is(err, errBoom) {
		t.Fatalf("join returned %v, want %v", err, errBoom)
	}
	for i, f := range finished {
		if !f {
			t.Errorf("fn %d never ran to completion", i)
		}
	}
}

func TestWithTimeoutExpiresTheWrappedFn(t *testing.T) {
	err := withTimeout(context.Background(), 10*time.Millisecond, func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("withTimeout returned %v, want DeadlineExceeded", err)
	}
}

func TestSleepReturnsAfterDuration(t *testing.T) {
	start := time.Now()
	if err := sleep(context.Background(), 20*time.Millisecond); err != nil {
		t.Fatalf("sleep returned %v, want nil", err)
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Errorf("sleep returned after %v, want >= 20ms", elapsed)
	}
}
